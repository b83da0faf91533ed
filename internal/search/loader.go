package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/target/marketplace-console/internal/core"
)

// Loader shares one backend call between identical concurrent queries and caches results for TTL.
// The cache is optional; cache failures fall back to the backend.
type Loader struct {
	cache  core.SearchCache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil cache or zero ttl disables caching.
func NewLoader(cache core.SearchCache, ttl time.Duration) *Loader {
	return &Loader{cache: cache, ttl: ttl, logger: slog.Default().With("component", "search_loader")}
}

func (l *Loader) caching() bool { return l != nil && l.cache != nil && l.ttl > 0 }

// Load returns the result for key, from cache, from an identical in-flight call, or from fetch.
// Callers that share one Loader across users must scope key to whatever changes the result.
func Load[T any](ctx context.Context, l *Loader, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if l.caching() {
		if raw, ok, err := l.cache.Get(ctx, key); err != nil {
			l.logger.WarnContext(ctx, "search cache read failed", "error", err)
		} else if ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		}
	}

	v, err, shared := l.group.Do(key, func() (any, error) {
		res, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if l.caching() {
			if raw, mErr := json.Marshal(res); mErr == nil {
				if sErr := l.cache.Set(context.WithoutCancel(ctx), key, raw, l.ttl); sErr != nil {
					l.logger.WarnContext(ctx, "search cache write failed", "error", sErr)
				}
			}
		}
		return res, nil
	})
	if err != nil {
		return zero, err
	}
	if shared {
		l.logger.DebugContext(ctx, "search result shared", "key", key)
	}
	return v.(T), nil
}
