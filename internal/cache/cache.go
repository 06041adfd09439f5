// Package cache is the key-value layer search results live in. A backing
// Redis is optional; without one an in-process map provides the same TTL
// semantics (not shared across instances, gone on restart).
//
// Failure policy: a broken backend is a miss on read and a no-op on write.
// Searches must complete with zero cache availability.
package cache

import (
	"context"
	"time"
)

type Store interface {
	// Get returns the raw value for key, or ok=false when absent/expired/
	// unreachable.
	Get(ctx context.Context, key string) (value []byte, ok bool)

	// Set stores value under key for ttl. Errors are swallowed by
	// implementations; callers never fail because of a cache write.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes key. Used by the status round-trip probe and
	// administrative clears only.
	Delete(ctx context.Context, key string)
}
