// usage:
//
// import (
//
//	"log/slog"
//
//	progcache "github.com/bbc/programmes-caching-library"
//	"github.com/bbc/programmes-caching-library/codec"
//	asynchook "github.com/bbc/programmes-caching-library/hooks/async"
//	"github.com/bbc/programmes-caching-library/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery: 10, // sample logs: ~every 10th self-heal
//	    FlushEvery:    1,  // log every flush-mode delete
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := progcache.New[Programme](progcache.Options[Programme]{
//	    Namespace: "programmes",
//	    Provider:  provider,
//	    Codec:     codec.JSON[Programme]{},
//	    StaleOn:   []progcache.FailureKind{"backend_unavailable"},
//	    Hooks:     hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	progcache "github.com/bbc/programmes-caching-library"
)

type Hooks struct {
	inner progcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ progcache.Hooks = (*Hooks)(nil)

func New(inner progcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) StaleServed(k string, n uint64, err error) {
	h.try(func() { h.inner.StaleServed(k, n, err) })
}
func (h *Hooks) SelfHeal(k, r string)         { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) ProviderSetRejected(k string) { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) Flushed(k string)             { h.try(func() { h.inner.Flushed(k) }) }
