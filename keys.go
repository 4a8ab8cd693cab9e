package wargamer

import (
	"sort"
	"strconv"
)

// sortedKeys returns the keys of m in ascending numeric order when every key
// is an integer, and in lexical order otherwise.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	numeric := true
	for k := range m {
		keys = append(keys, k)
		if _, err := strconv.ParseInt(k, 10, 64); err != nil {
			numeric = false
		}
	}

	if numeric {
		sort.Slice(keys, func(a, b int) bool {
			x, _ := strconv.ParseInt(keys[a], 10, 64)
			y, _ := strconv.ParseInt(keys[b], 10, 64)
			return x < y
		})
	} else {
		sort.Strings(keys)
	}
	return keys
}
