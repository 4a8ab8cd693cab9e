package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultThreshold is the highest score a record may have and still match.
const DefaultThreshold = 0.4

// Record is a single searchable item as decoded from the remote API.
type Record = map[string]any

// Result is a matching record with its score.
type Result struct {
	// Record is the matched record.
	Record Record
	// Score ranges from 0 (perfect) to 1 (no similarity).
	Score float64
	// Position is the record's position in the set the index was built from.
	Position int
}

// Option configures an Index.
type Option func(*Index)

// WithThreshold sets the match threshold. Values outside [0, 1] are clamped.
func WithThreshold(threshold float64) Option {
	return func(i *Index) {
		switch {
		case threshold < 0:
			threshold = 0
		case threshold > 1:
			threshold = 1
		}
		i.threshold = threshold
	}
}

// Index is a fuzzy index over a set of records.
//
// Set replaces the contents; Search may run concurrently with other Search
// calls and with Set.
type Index struct {
	keys      []string
	threshold float64

	mu      sync.RWMutex
	records []Record
	fields  [][]field // fields[record][key]
}

// field is a pre-processed searchable value.
type field struct {
	norm   string
	tokens []string
}

// New creates an empty index searching the given record fields.
func New(keys []string, opts ...Option) *Index {
	idx := &Index{
		keys:      append([]string(nil), keys...),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Keys returns the searchable field names.
func (i *Index) Keys() []string {
	return append([]string(nil), i.keys...)
}

// Threshold returns the configured match threshold.
func (i *Index) Threshold() float64 {
	return i.threshold
}

// Set replaces the indexed records.
func (i *Index) Set(records []Record) {
	fields := make([][]field, len(records))
	for n, rec := range records {
		fields[n] = make([]field, len(i.keys))
		for k, key := range i.keys {
			fields[n][k] = newField(stringify(rec[key]))
		}
	}

	i.mu.Lock()
	i.records = append([]Record(nil), records...)
	i.fields = fields
	i.mu.Unlock()
}

// Len returns the number of indexed records.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.records)
}

// Search returns every record scoring within the threshold, best first.
func (i *Index) Search(query string) []Result {
	q := newField(query)
	if len(q.tokens) == 0 {
		return nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var results []Result
	for n, rec := range i.records {
		score := 1.0
		for _, f := range i.fields[n] {
			if s := scoreField(q, f); s < score {
				score = s
			}
		}
		if score <= i.threshold {
			results = append(results, Result{Record: rec, Score: score, Position: n})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score < results[b].Score
	})
	return results
}

// Best returns the single best match.
func (i *Index) Best(query string) (Result, bool) {
	results := i.Search(query)
	if len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}

func newField(s string) field {
	tokens := tokenize(strings.ToLower(s))
	return field{
		norm:   strings.Join(tokens, " "),
		tokens: tokens,
	}
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// scoreField scores a query against one field value.
func scoreField(q, f field) float64 {
	if len(f.tokens) == 0 {
		return 1
	}

	var sum float64
	for _, qt := range q.tokens {
		best := 1.0
		for _, ft := range f.tokens {
			if s := scoreToken(qt, ft); s < best {
				best = s
			}
			if best == 0 {
				break
			}
		}
		sum += best
	}
	score := sum / float64(len(q.tokens))

	if whole := distanceRatio(q.norm, f.norm); whole < score {
		score = whole
	}
	return score
}

// scoreToken scores one query token against one field token.
func scoreToken(q, f string) float64 {
	if strings.HasPrefix(f, q) {
		return 0
	}

	score := distanceRatio(q, f)
	if fuzzy.MatchNormalizedFold(q, f) {
		ql, fl := utf8.RuneCountInString(q), utf8.RuneCountInString(f)
		if fl > 0 && ql <= fl {
			if s := 0.5 * (1 - float64(ql)/float64(fl)); s < score {
				score = s
			}
		}
	}
	return score
}

// distanceRatio is the Levenshtein distance scaled by the longer length.
func distanceRatio(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}

	ratio := float64(fuzzy.LevenshteinDistance(a, b)) / float64(longest)
	if ratio > 1 {
		return 1
	}
	return ratio
}
