package wargamer

import (
	"fmt"
	"math"
	"strconv"
)

type identifierKind int

const (
	identifierInvalid identifierKind = iota
	identifierID
	identifierName
)

// Identifier selects an entity either by numeric ID or by approximate name.
// The zero value is invalid.
type Identifier struct {
	kind identifierKind
	id   int64
	name string
}

// ByID identifies an entity by its numeric ID.
func ByID(id int64) Identifier {
	return Identifier{kind: identifierID, id: id}
}

// ByName identifies an entity by a free-text name.
func ByName(name string) Identifier {
	return Identifier{kind: identifierName, name: name}
}

// ParseIdentifier builds an Identifier from an integer, a string or an
// Identifier. Anything else fails with ErrInvalidIdentifierType.
func ParseIdentifier(v any) (Identifier, error) {
	switch t := v.(type) {
	case Identifier:
		if t.kind == identifierInvalid {
			break
		}
		return t, nil
	case string:
		return ByName(t), nil
	case int:
		return ByID(int64(t)), nil
	case int8:
		return ByID(int64(t)), nil
	case int16:
		return ByID(int64(t)), nil
	case int32:
		return ByID(int64(t)), nil
	case int64:
		return ByID(t), nil
	case uint:
		return fromUnsigned(uint64(t))
	case uint8:
		return ByID(int64(t)), nil
	case uint16:
		return ByID(int64(t)), nil
	case uint32:
		return ByID(int64(t)), nil
	case uint64:
		return fromUnsigned(t)
	}

	return Identifier{}, sentinel(ErrInvalidIdentifierType,
		fmt.Sprintf("expected a string or integer as the entity identifier, got %T", v),
		map[string]interface{}{"type": fmt.Sprintf("%T", v)})
}

func fromUnsigned(v uint64) (Identifier, error) {
	if v > math.MaxInt64 {
		return Identifier{}, sentinel(ErrInvalidIdentifierType, "identifier overflows int64",
			map[string]interface{}{"value": v})
	}
	return ByID(int64(v)), nil
}

// ID returns the numeric ID for identifiers built with ByID.
func (i Identifier) ID() (int64, bool) {
	return i.id, i.kind == identifierID
}

// Name returns the name for identifiers built with ByName.
func (i Identifier) Name() (string, bool) {
	return i.name, i.kind == identifierName
}

func (i Identifier) String() string {
	switch i.kind {
	case identifierID:
		return strconv.FormatInt(i.id, 10)
	case identifierName:
		return strconv.Quote(i.name)
	default:
		return "<invalid>"
	}
}
