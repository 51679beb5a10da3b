package progcache

import "time"

// Bucket names an enumerated cache lifetime class.
type Bucket string

const (
	// None is the "do not cache" sentinel. Writes under it store nothing and
	// it is the default null-TTL for empty GetOrSet results.
	None Bucket = "none"
	// Indefinite entries never expire, logically or physically.
	Indefinite Bucket = "indefinite"

	Short  Bucket = "short"
	Normal Bucket = "normal"
	Medium Bucket = "medium"
	Long   Bucket = "long"
	XLong  Bucket = "x-long"
	XXLong Bucket = "xx-long"
)

// DefaultBuckets maps the named buckets to their fixed lifetimes. Used when
// Options.Buckets is nil; pass a replacement table to retune all buckets.
var DefaultBuckets = map[Bucket]time.Duration{
	Short:  60 * time.Second,
	Normal: 5 * time.Minute,
	Medium: 20 * time.Minute,
	Long:   2 * time.Hour,
	XLong:  8 * time.Hour,
	XXLong: 24 * time.Hour,
}

type ttlKind uint8

const (
	ttlBucket ttlKind = iota
	ttlSeconds
	ttlAt
)

// TTL is a requested entry lifetime in one of three forms: a named bucket,
// a raw count of seconds, or an absolute expire-at instant.
type TTL struct {
	kind   ttlKind
	bucket Bucket
	secs   int
	at     time.Time
}

// ForBucket requests the lifetime of a named bucket.
func ForBucket(b Bucket) TTL { return TTL{kind: ttlBucket, bucket: b} }

// Seconds requests a raw lifetime of n seconds. Zero and negative values are
// not cacheable.
func Seconds(n int) TTL { return TTL{kind: ttlSeconds, secs: n} }

// At requests expire-at semantics: the value stays fresh until t.
func At(t time.Time) TTL { return TTL{kind: ttlAt, at: t} }

// IsNone reports whether the TTL is the "do not cache" sentinel.
func (t TTL) IsNone() bool { return t.kind == ttlBucket && t.bucket == None }

// lifetime is a resolved TTL: how long the provider keeps the bytes and when
// the entry stops being fresh.
type lifetime struct {
	// expiresAt is the logical expiry instant; zero means never stale.
	expiresAt time.Time
	// retention is the provider TTL; 0 means no physical expiry.
	retention time.Duration
	// cacheable is false for the None sentinel, non-positive raw seconds,
	// already-passed expire-at instants, and unknown buckets.
	cacheable bool
	// resilient entries outlive their logical expiry inside the retention
	// window and are candidates for stale serving.
	resilient bool
	// unknown marks a bucket name absent from the table.
	unknown bool
}

// resolve turns a TTL into a concrete lifetime against a bucket table, the
// configured resilience window, and the current time. Pure function.
//
// Short, None and Indefinite get no separate stale window: their provider TTL
// is the logical expiry itself. Every other form couples a logical expiry to
// the fixed resilience window, deliberately not derived from the requested
// lifetime, so a 5 minute entry is retained exactly as long as a 24 hour one.
func (t TTL) resolve(table map[Bucket]time.Duration, resilience time.Duration, now time.Time) lifetime {
	switch t.kind {
	case ttlSeconds:
		if t.secs <= 0 {
			return lifetime{}
		}
		d := time.Duration(t.secs) * time.Second
		return lifetime{
			expiresAt: now.Add(d),
			retention: resilience,
			cacheable: true,
			resilient: true,
		}

	case ttlAt:
		if !t.at.After(now) {
			return lifetime{}
		}
		return lifetime{
			expiresAt: t.at,
			retention: resilience,
			cacheable: true,
			resilient: true,
		}

	default: // bucket
		switch t.bucket {
		case None:
			return lifetime{}
		case Indefinite:
			return lifetime{cacheable: true}
		}
		d, ok := table[t.bucket]
		if !ok {
			return lifetime{unknown: true}
		}
		if t.bucket == Short {
			return lifetime{
				expiresAt: now.Add(d),
				retention: d,
				cacheable: true,
			}
		}
		return lifetime{
			expiresAt: now.Add(d),
			retention: resilience,
			cacheable: true,
			resilient: true,
		}
	}
}
