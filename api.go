package progcache

import (
	"context"
	"time"

	c "github.com/bbc/programmes-caching-library/codec"
	pr "github.com/bbc/programmes-caching-library/provider"
)

// Provider and Codec re-export the subpackage contracts so callers and the
// decorator can name them without extra imports.
type (
	Provider     = pr.Provider
	Codec[V any] = c.Codec[V]
)

// SetCostFunc reports the admission cost of a stored frame for providers
// that weigh entries (e.g. Ristretto).
type SetCostFunc func(key string, raw []byte) int64

// ProducerFunc computes a value on a cache miss. Blocking work should honor
// ctx; the decorator itself imposes no timeout. Tag transient failures with
// Tag so they become candidates for stale serving.
type ProducerFunc[V any] func(ctx context.Context) (V, error)

// Cache is the high-level, provider-agnostic resilient cache API.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
type Cache[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Get returns the entry only while it is logically fresh.
	Get(ctx context.Context, key string) (v V, ok bool)
	// GetStale ignores logical expiry: a hit means the bytes are still
	// within their physical retention window.
	GetStale(ctx context.Context, key string) (v V, ok bool)

	// Set stores value under the resolved ttl. Reports false when encoding
	// or the provider write fails; it never returns an error.
	Set(ctx context.Context, key string, value V, ttl TTL) bool
	// Delete removes the entry, reporting whether the provider accepted it.
	Delete(ctx context.Context, key string) bool

	// GetOrSet is the read-through path: fresh hit short-circuits, a miss
	// invokes produce, and a whitelisted producer failure falls back to the
	// physically retained copy when one exists.
	GetOrSet(ctx context.Context, key string, ttl TTL, produce ProducerFunc[V], opts ...ProduceOption) (V, error)

	// StaleServes reports how many times this instance returned a stale
	// value instead of a fresh computation. Observability only.
	StaleServes() uint64
}

// Options tune the behavior of the resilient cache.
// Only Namespace, Provider and Codec are required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Namespace string // logical namespace to avoid collisions. e.g. "programmes", "schedules"
	Provider  pr.Provider
	Codec     c.Codec[V]

	Logger     Logger                   // if nil, NopLogger is used
	Hooks      Hooks                    // if nil, NopHooks is used
	Buckets    map[Bucket]time.Duration // nil => DefaultBuckets
	Resilience time.Duration            // physical retention for resilient entries; 0 => 48h
	StaleOn    []FailureKind            // producer failure kinds eligible for stale serving
	FlushItems bool                     // delete each key ahead of its lookup (cache busting)
	Disabled   bool                     // default false (enabled)

	// IsEmpty decides whether a produced value counts as empty for the
	// null-TTL rule in GetOrSet. nil => zero-value check.
	IsEmpty func(V) bool

	ComputeSetCost SetCostFunc // default 1
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}

// ProduceOption adjusts a single GetOrSet call.
type ProduceOption func(*produceConfig)

type produceConfig struct {
	nullTTL TTL
}

// WithNullTTL stores empty producer results under ttl instead of skipping the
// write. The default is the None sentinel: empty results are not cached.
func WithNullTTL(ttl TTL) ProduceOption {
	return func(pc *produceConfig) { pc.nullTTL = ttl }
}
