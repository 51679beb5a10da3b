// Package provider defines the storage abstraction behind the resilient cache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). If a store performs internal transforms
// (e.g., compression), they MUST be fully reversed so that the bytes returned by
// Get are identical to the bytes provided to Set.
//
// The TTL passed to Set is the entry's physical retention window, which for
// resilient entries runs past the logical freshness tracked inside the stored
// frame. A provider that cuts retention short (global eviction windows, size
// pressure) narrows the stale-serving safety net but never breaks correctness:
// a dropped key is simply a miss on both fresh and stale reads.
//
// Keys under the decorator's "<namespace>:" prefix are owned by the cache.
// External code MUST NOT write values under that prefix; foreign writes fail
// strict frame validation and are deleted on read.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs.
// Must be safe for concurrent use and must be byte-for-byte
// transparent: Get must return exactly the []byte previously passed to Set for
// the same key. Implementations must not prepend/append metadata, transcode, or
// otherwise mutate values.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for the retention window. TTL <= 0 means no expiry.
	// May ignore cost if unsupported. Returns ok=false when the store
	// rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
