package core

import (
	"context"
	"time"
)

// SearchCache stores serialized search results for a short TTL.
// A miss returns (nil, false, nil); errors are reported but callers treat them as a miss.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
