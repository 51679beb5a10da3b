package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	progcache "github.com/bbc/programmes-caching-library"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	FlushEvery    uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	flushCtr    atomic.Uint64
}

var _ progcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

// StaleServed is never sampled; each stale serve is a degraded-upstream signal.
func (h *Hooks) StaleServed(key string, serves uint64, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("progcache.stale_served",
		"key", h.redact(key),
		"serves", serves,
		"err", err)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("progcache.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("progcache.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) Flushed(storageKey string) {
	if h.l == nil || !sample(h.opts.FlushEvery, &h.flushCtr) {
		return
	}
	h.l.Debug("progcache.flushed",
		"key", h.redact(storageKey))
}
