package progcache

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/bbc/programmes-caching-library/internal/util"
	"github.com/bbc/programmes-caching-library/internal/wire"
)

const defaultResilience = 48 * time.Hour

type cache[V any] struct {
	ns             string
	provider       Provider
	codec          Codec[V]
	log            Logger
	hooks          Hooks
	enabled        bool
	flushItems     bool
	buckets        map[Bucket]time.Duration
	resilience     time.Duration
	staleOn        map[FailureKind]struct{}
	isEmpty        func(V) bool
	computeSetCost SetCostFunc

	// now is swapped in tests to step through expiry windows.
	now func() time.Time

	staleServes atomic.Uint64
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("progcache: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("progcache: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("progcache: namespace is required")
	}

	c := &cache[V]{
		ns:         opts.Namespace,
		provider:   opts.Provider,
		codec:      opts.Codec,
		enabled:    !opts.Disabled,
		flushItems: opts.FlushItems,
		now:        time.Now,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.resilience = coalesce[time.Duration](opts.Resilience, defaultResilience)

	c.buckets = opts.Buckets
	if c.buckets == nil {
		c.buckets = DefaultBuckets
	}

	c.staleOn = make(map[FailureKind]struct{}, len(opts.StaleOn))
	for _, k := range opts.StaleOn {
		c.staleOn[k] = struct{}{}
	}

	if opts.IsEmpty != nil {
		c.isEmpty = opts.IsEmpty
	} else {
		c.isEmpty = isZero[V]
	}

	if opts.ComputeSetCost != nil {
		c.computeSetCost = opts.ComputeSetCost
	} else {
		c.computeSetCost = func(_ string, _ []byte) int64 { return 1 }
	}

	return c, nil
}

// isZero is the default empty-result predicate for GetOrSet.
func isZero[V any](v V) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Close(ctx context.Context) error {
	if c.provider != nil {
		return c.provider.Close(ctx)
	}
	return nil
}

func (c *cache[V]) Get(ctx context.Context, key string) (V, bool) {
	return c.lookup(ctx, key, false)
}

func (c *cache[V]) GetStale(ctx context.Context, key string) (V, bool) {
	return c.lookup(ctx, key, true)
}

func (c *cache[V]) lookup(ctx context.Context, key string, allowStale bool) (V, bool) {
	var zero V
	if !c.enabled {
		return zero, false
	}
	k := c.storeKey(key)
	if c.flushItems {
		// cache busting: drop the entry so this lookup is a cold read
		if err := c.provider.Del(ctx, k); err != nil {
			c.log.Warn("flush delete failed", Fields{"key": k, "err": err})
		}
		c.hooks.Flushed(k)
	}
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil {
		c.log.Warn("provider read failed; treating as miss", Fields{"key": k, "err": err})
		return zero, false
	}
	if !ok {
		return zero, false
	}
	expiresAt, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = c.provider.Del(ctx, k) // self-heal corrupt
		c.hooks.SelfHeal(k, "corrupt")
		return zero, false
	}
	if !allowStale && expiresAt != 0 && c.now().After(time.Unix(0, expiresAt)) {
		// logically expired; the bytes stay behind for stale reads
		return zero, false
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		_ = c.provider.Del(ctx, k) // self-heal
		c.hooks.SelfHeal(k, "value_decode")
		return zero, false
	}
	return v, true
}

func (c *cache[V]) Set(ctx context.Context, key string, value V, ttl TTL) bool {
	if !c.enabled {
		return true
	}
	k := c.storeKey(key)
	lt := ttl.resolve(c.buckets, c.resilience, c.now())
	if lt.unknown {
		c.log.Warn("unknown ttl bucket; treating as no-cache", Fields{"key": k, "bucket": string(ttl.bucket)})
	}
	if !lt.cacheable {
		// kill any previous copy so the value is never retrievable
		if err := c.provider.Del(ctx, k); err != nil {
			c.log.Debug("delete on non-cacheable set failed", Fields{"key": k, "err": err})
		}
		return true
	}
	payload, err := c.codec.Encode(value)
	if err != nil {
		c.log.Error("encode failed", Fields{"key": k, "err": err})
		return false
	}
	var exp int64
	if !lt.expiresAt.IsZero() {
		exp = lt.expiresAt.UnixNano()
	}
	frame := wire.EncodeEntry(exp, payload)
	ok, err := c.provider.Set(ctx, k, frame, c.computeSetCost(k, frame), lt.retention)
	if err != nil {
		c.log.Error("provider write failed", Fields{"key": k, "err": err})
		return false
	}
	if !ok {
		c.hooks.ProviderSetRejected(k)
		c.log.Debug("Set rejected by provider (pressure)", Fields{"key": k})
	}
	return ok
}

func (c *cache[V]) Delete(ctx context.Context, key string) bool {
	if !c.enabled {
		return true
	}
	k := c.storeKey(key)
	if err := c.provider.Del(ctx, k); err != nil {
		c.log.Warn("delete failed", Fields{"key": k, "err": err})
		return false
	}
	return true
}

func (c *cache[V]) GetOrSet(ctx context.Context, key string, ttl TTL, produce ProducerFunc[V], opts ...ProduceOption) (V, error) {
	if v, ok := c.Get(ctx, key); ok {
		return v, nil
	}

	v, err := produce(ctx)
	if err != nil {
		if sv, ok := c.serveStale(ctx, key, err); ok {
			return sv, nil
		}
		var zero V
		return zero, err
	}

	cfg := produceConfig{nullTTL: ForBucket(None)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if c.isEmpty(v) {
		if cfg.nullTTL.IsNone() {
			return v, nil
		}
		c.Set(ctx, key, v, cfg.nullTTL)
		return v, nil
	}

	c.Set(ctx, key, v, ttl)
	return v, nil
}

// serveStale recovers from a producer failure by returning the physically
// retained copy. Only failures tagged with a whitelisted kind qualify; every
// other failure, and a qualifying failure with no retained copy, propagates
// unchanged from GetOrSet.
func (c *cache[V]) serveStale(ctx context.Context, key string, err error) (V, bool) {
	var zero V
	kind, tagged := KindOf(err)
	if !tagged {
		return zero, false
	}
	if _, ok := c.staleOn[kind]; !ok {
		return zero, false
	}
	sv, ok := c.GetStale(ctx, key)
	if !ok {
		return zero, false
	}
	n := c.staleServes.Add(1)
	c.log.Warn("serving stale cache entry after producer failure", Fields{
		"key":         key,
		"kind":        string(kind),
		"staleServes": n,
		"err":         err.Error(),
	})
	c.hooks.StaleServed(key, n, err)
	return sv, true
}

func (c *cache[V]) StaleServes() uint64 { return c.staleServes.Load() }

func (c *cache[V]) storeKey(userKey string) string {
	// isolate by namespace; normalized for store safety
	return util.StoreKey(c.ns, userKey)
}
