// Package search implements the approximate name index used to resolve
// free-text entity names.
//
// An Index holds an ordered set of records and a list of searchable fields.
// Queries are scored per field on a scale from 0 (exact or prefix match) to 1
// (nothing in common):
//
//   - query and field values are lower-cased and split into letter/digit tokens
//   - a query token scores 0 against a field token it prefixes, the
//     subsequence ratio when its letters appear in order (accents folded),
//     and the normalized Levenshtein distance otherwise
//   - a field scores the mean of its best per-token scores, or the distance
//     between the whole strings when that is lower
//
// A record scores its best field. Records scoring at or below the threshold
// are returned, best first; equal scores keep the order the records were
// given in.
//
// Example:
//
//	idx := search.New([]string{"short_name"})
//	idx.Set(records)
//	if best, ok := idx.Best("wolverine"); ok {
//	    fmt.Println(best.Record["tank_id"])
//	}
package search
