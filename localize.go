package wargamer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/jmgilman/go/wargamer/cache"
)

// Localizer translates slugs using the tables returned by an API method such
// as "encyclopedia/info". Each method's data is fetched once and kept in the
// meta cache. The fetch is shared by concurrent callers and outlives any one
// caller's context.
type Localizer struct {
	getter Getter
	tables *cache.Cache
	logger *slog.Logger
	group  singleflight.Group
}

// NewLocalizer returns a Localizer fetching through getter and keeping
// tables in tables. A nil logger discards.
func NewLocalizer(getter Getter, tables *cache.Cache, logger *slog.Logger) *Localizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Localizer{getter: getter, tables: tables, logger: logger}
}

// Localize returns table[typ][slug] from the data of method.
//
// It fails with ErrInvalidTranslationType when typ is missing or not an
// object. An unknown slug reports false with a nil error.
func (l *Localizer) Localize(ctx context.Context, method, typ, slug string) (any, bool, error) {
	data, err := l.data(ctx, method)
	if err != nil {
		return nil, false, err
	}

	table, ok := data[typ].(map[string]any)
	if !ok {
		return nil, false, sentinel(ErrInvalidTranslationType,
			fmt.Sprintf("invalid translation type: %s", typ),
			map[string]interface{}{"method": method, "type": typ})
	}

	value, ok := table[slug]
	if !ok || value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

// LocalizeString is Localize for tables whose values are strings.
func (l *Localizer) LocalizeString(ctx context.Context, method, typ, slug string) (string, bool, error) {
	value, ok, err := l.Localize(ctx, method, typ, slug)
	if err != nil || !ok {
		return "", false, err
	}
	s, ok := value.(string)
	return s, ok, nil
}

func (l *Localizer) data(ctx context.Context, method string) (map[string]any, error) {
	key := normalizeMethod(method)
	slot := cache.NewSlot[map[string]any](l.tables, key)
	if data, ok := slot.Load(); ok {
		cache.LogHit(ctx, l.logger, "meta", key)
		return data, nil
	}
	cache.LogMiss(ctx, l.logger, "meta", key)

	ch := l.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		if l.tables.Has(key) {
			if data, ok := slot.Load(); ok {
				return data, nil
			}
		}

		resp, err := l.getter.Get(fetchCtx, method, nil)
		if err != nil {
			return nil, err
		}
		data, err := resp.Object()
		if err != nil {
			return nil, err
		}
		slot.Store(data)
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]any), nil
	case <-ctx.Done():
		return nil, contextError(ctx)
	}
}
