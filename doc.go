// Package progcache implements a provider-agnostic resilient cache decorator.
// Every entry carries two lifetimes: a logical expiry (when the value goes
// stale and should normally be recomputed) and a longer physical retention
// (how long the raw bytes stay retrievable as a fallback). When a producer
// fails with a whitelisted failure kind, GetOrSet serves the retained stale
// value instead of propagating the failure.
//
// Components:
//   - Provider: byte store with TTL (e.g. Ristretto, BigCache, Redis).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - TTL: named bucket, raw second count, or absolute expire-at.
//   - FailureKind: tag carried by producer errors; matched against the
//     configured StaleOn allow-list.
//
// Keys:
//
//	<ns>:<key>  - entries, key normalized for store safety
//
// Read-through pattern:
//
//	v, err := cache.GetOrSet(ctx, k, progcache.ForBucket(progcache.Normal),
//	    func(ctx context.Context) (User, error) {
//	        return fetchUser(ctx, k) // tag transient failures with progcache.Tag
//	    })
package progcache
