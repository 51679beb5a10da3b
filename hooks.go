package progcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A stale value was served in place of a failed recomputation.
	// serves is the process-lifetime stale-serve count including this one.
	StaleServed(key string, serves uint64, err error)

	// An entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// Flush mode removed a key ahead of a lookup.
	Flushed(storageKey string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) StaleServed(string, uint64, error) {}
func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) ProviderSetRejected(string)        {}
func (NopHooks) Flushed(string)                    {}
