package wargamer

import (
	"github.com/goccy/go-json"
	"github.com/jmgilman/go/errors"
)

// Module is a vehicle module (gun, turret, engine, ...) from a module tree.
type Module struct {
	ID          int64  `json:"module_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Cost        int64  `json:"price_xp"`
	PriceCredit int64  `json:"price_credit"`
	IsDefault   bool   `json:"is_default"`
}

// ExtractTopModules returns, for each module type, the module with the
// highest experience cost.
//
// Modules are visited in ascending ID order (lexical order when the keys are
// not numeric), and a later module replaces the current one only when it is
// strictly more expensive, so the first of equally priced modules wins.
func ExtractTopModules(tree map[string]Module) map[string]Module {
	top := make(map[string]Module)
	for _, key := range sortedKeys(tree) {
		m := tree[key]
		current, ok := top[m.Type]
		if !ok || m.Cost > current.Cost {
			top[m.Type] = m
		}
	}
	return top
}

// ParseModuleTree decodes a module tree, either raw JSON or a value taken
// from a decoded record such as record["modules_tree"].
func ParseModuleTree(v any) (map[string]Module, error) {
	var data []byte
	switch t := v.(type) {
	case nil:
		return map[string]Module{}, nil
	case []byte:
		data = t
	case json.RawMessage:
		data = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to encode module tree")
		}
		data = b
	}

	var tree map[string]Module
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to decode module tree")
	}
	return tree, nil
}
