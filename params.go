package wargamer

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Params are request parameters. Values are encoded as follows:
//
//   - nil values are dropped
//   - slices and arrays are joined with commas
//   - time.Time values are formatted as RFC 3339 in UTC
//   - everything else is formatted with fmt
type Params map[string]any

// merge returns defaults overlaid with params. A nil value in params removes
// the default.
func merge(defaults, params Params) Params {
	out := make(Params, len(defaults)+len(params))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range params {
		out[k] = v
	}
	return out
}

// encode converts params to url.Values.
func (p Params) encode() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		if s, ok := encodeValue(v); ok {
			values.Set(k, s)
		}
	}
	return values
}

func encodeValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case []byte:
		return string(t), true
	case time.Time:
		return t.UTC().Format(time.RFC3339), true
	case *time.Time:
		if t == nil {
			return "", false
		}
		return t.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		return t.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := encodeValue(rv.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	case reflect.Pointer:
		if rv.IsNil() {
			return "", false
		}
		return encodeValue(rv.Elem().Interface())
	default:
		return fmt.Sprint(v), true
	}
}

// responseKey identifies a GET request for the response cache. The
// application ID is not part of the key.
func responseKey(rawURL string, values url.Values) uint64 {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "application_id" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := xxhash.New()
	_, _ = d.WriteString(rawURL)
	for _, k := range keys {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(k)
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(strings.Join(values[k], ","))
	}
	return d.Sum64()
}

// methodURL joins a base URI and an API method:
// "<base>/<method without surrounding slashes, lower-cased>/".
func methodURL(base, method string) string {
	return strings.TrimRight(base, "/") + "/" + normalizeMethod(method) + "/"
}

func normalizeMethod(method string) string {
	return strings.ToLower(strings.Trim(method, "/"))
}
