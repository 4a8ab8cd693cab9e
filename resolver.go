package wargamer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmgilman/go/errors"
	"golang.org/x/sync/singleflight"

	"github.com/jmgilman/go/wargamer/cache"
	"github.com/jmgilman/go/wargamer/search"
)

const (
	defaultThreshold = search.DefaultThreshold

	// sharedFetchTimeout bounds a shared index build or table fetch once it
	// is detached from the caller that started it.
	sharedFetchTimeout = time.Minute
)

// Getter fetches an API method. *Client implements it.
type Getter interface {
	Get(ctx context.Context, method string, params Params, opts ...RequestOption) (*Response, error)
}

// Lookup describes how entities of one kind are listed and fetched.
type Lookup struct {
	// SearchFields are the record fields matched against names.
	SearchFields []string
	// IdentifierKey is the field holding the entity ID, e.g. "tank_id".
	IdentifierKey string
	// IndexEndpoint lists every entity with the search fields.
	IndexEndpoint string
	// DataEndpoint returns entity details by ID.
	DataEndpoint string
}

// indexKey names the cached index of the lookup. Lookups sharing an endpoint
// but matching different fields get separate indexes.
func (l Lookup) indexKey() string {
	fields := slices.Clone(l.SearchFields)
	slices.Sort(fields)
	return normalizeMethod(l.IndexEndpoint) + "?fields=" + strings.Join(fields, ",") + "&id=" + l.IdentifierKey
}

// Resolver turns an Identifier into an entity record.
//
// Numeric identifiers are fetched directly. Names are matched against a
// fuzzy index built from the lookup's index endpoint; the index is kept in
// the names cache, one entry per endpoint and field set, until it expires.
type Resolver struct {
	getter    Getter
	names     *cache.Cache
	threshold float64
	logger    *slog.Logger
	group     singleflight.Group
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverThreshold sets the fuzzy match threshold.
func WithResolverThreshold(threshold float64) ResolverOption {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithResolverLogger sets the resolver's logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a Resolver fetching through getter and keeping indexes
// in names.
func NewResolver(getter Getter, names *cache.Cache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		getter:    getter,
		names:     names,
		threshold: defaultThreshold,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the record identified by id. A nil record with a nil
// error means nothing matched.
func (r *Resolver) Resolve(ctx context.Context, id Identifier, lookup Lookup) (Record, error) {
	if n, ok := id.ID(); ok {
		return r.fetch(ctx, lookup, n)
	}

	name, ok := id.Name()
	if !ok {
		return nil, sentinel(ErrInvalidIdentifierType, "identifier is neither an ID nor a name", nil)
	}

	idx, err := r.index(ctx, lookup)
	if err != nil {
		return nil, err
	}

	best, ok := idx.Best(name)
	if !ok {
		r.logger.DebugContext(ctx, "no entity matched", "name", name, "endpoint", lookup.IndexEndpoint)
		return nil, nil
	}

	matched, err := recordID(best.Record, lookup.IdentifierKey)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "entity matched",
		"name", name,
		"id", matched,
		"score", fmt.Sprintf("%.3f", best.Score))

	return r.fetch(ctx, lookup, matched)
}

// Index returns the search index for lookup, building it when the names
// cache holds none.
func (r *Resolver) Index(ctx context.Context, lookup Lookup) (*search.Index, error) {
	return r.index(ctx, lookup)
}

// fetch returns data[id] from the lookup's data endpoint.
func (r *Resolver) fetch(ctx context.Context, lookup Lookup, id int64) (Record, error) {
	resp, err := r.getter.Get(ctx, lookup.DataEndpoint, Params{lookup.IdentifierKey: id})
	if err != nil {
		return nil, err
	}

	records, err := resp.Records()
	if err != nil {
		return nil, err
	}
	return records[strconv.FormatInt(id, 10)], nil
}

func (r *Resolver) index(ctx context.Context, lookup Lookup) (*search.Index, error) {
	key := lookup.indexKey()
	slot := cache.NewSlot[*search.Index](r.names, key)
	if idx, ok := slot.Load(); ok {
		cache.LogHit(ctx, r.logger, "names", key)
		return idx, nil
	}
	cache.LogMiss(ctx, r.logger, "names", key)

	ch := r.group.DoChan(key, func() (any, error) {
		// Detached from the caller so that one caller giving up does not
		// fail the others waiting on the same build.
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		// A build that finished between the miss above and joining the
		// group has already stored its index.
		if r.names.Has(key) {
			if idx, ok := slot.Load(); ok {
				return idx, nil
			}
		}
		return r.build(buildCtx, lookup, slot)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*search.Index), nil
	case <-ctx.Done():
		return nil, contextError(ctx)
	}
}

// build fetches the listing, builds an index over it and stores it. Nothing
// is stored when the fetch fails.
func (r *Resolver) build(ctx context.Context, lookup Lookup, slot *cache.Slot[*search.Index]) (*search.Index, error) {
	fields := make([]string, 0, len(lookup.SearchFields)+1)
	fields = append(fields, lookup.SearchFields...)
	fields = append(fields, lookup.IdentifierKey)

	start := time.Now()
	resp, err := r.getter.Get(ctx, lookup.IndexEndpoint, Params{"fields": fields})
	if err != nil {
		return nil, err
	}

	entries, err := resp.Records()
	if err != nil {
		return nil, err
	}

	records := make([]search.Record, 0, len(entries))
	for _, key := range sortedKeys(entries) {
		if entries[key] != nil {
			records = append(records, entries[key])
		}
	}

	idx := search.New(lookup.SearchFields, search.WithThreshold(r.threshold))
	idx.Set(records)
	slot.Store(idx)

	r.logger.InfoContext(ctx, "built search index",
		"endpoint", lookup.IndexEndpoint,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds())

	return idx, nil
}

// recordID extracts an entity ID from a record field.
func recordID(rec Record, key string) (int64, error) {
	var (
		id  int64
		err error
	)

	switch v := rec[key].(type) {
	case json.Number:
		id, err = v.Int64()
	case float64:
		id = int64(v)
	case int:
		id = int64(v)
	case int64:
		id = v
	case string:
		id, err = strconv.ParseInt(v, 10, 64)
	default:
		err = fmt.Errorf("unsupported identifier value %v (%T)", v, v)
	}

	if err != nil {
		return 0, errors.WithContext(
			errors.Wrap(err, errors.CodeInternal, "matched record has no usable identifier"),
			"identifier_key", key,
		)
	}
	return id, nil
}
