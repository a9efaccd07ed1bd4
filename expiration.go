package rendercache

import (
	"math"
	"time"
)

type expirationKind uint8

const (
	expireNever expirationKind = iota
	expireAfter
	expireDays
	expireAt
)

// maxInstant is the latest representable instant for cache entries
// (unix-nano range; stored as int64 on disk).
var maxInstant = time.Unix(0, math.MaxInt64)

// Expiration describes when a cache entry stops being served. It is a policy,
// not an instant: backends resolve it to an absolute time once, at write time,
// and never re-resolve it afterwards.
//
// The zero value is Never, so callers that don't care can pass
// rendercache.Never (or an empty Expiration) and move on.
type Expiration struct {
	kind expirationKind
	dur  time.Duration
	days int
	at   time.Time
}

// Never marks entries that only disappear through backend eviction or an
// explicit Remove.
var Never = Expiration{}

// After expires the entry d after the write. Zero or negative d resolves to
// an instant in the past: the entry is expired on the very next read, which
// makes After(0) an immediate-invalidate write.
func After(d time.Duration) Expiration {
	return Expiration{kind: expireAfter, dur: d}
}

// Days expires the entry n*24h after the write.
func Days(n int) Expiration {
	return Expiration{kind: expireDays, days: n}
}

// At expires the entry at the absolute instant t.
func At(t time.Time) Expiration {
	return Expiration{kind: expireAt, at: t}
}

// ResolveFrom computes the absolute expiration instant as of now.
func (e Expiration) ResolveFrom(now time.Time) time.Time {
	switch e.kind {
	case expireAfter:
		return now.Add(e.dur)
	case expireDays:
		return now.Add(time.Duration(e.days) * 24 * time.Hour)
	case expireAt:
		return e.at
	default:
		return maxInstant
	}
}

func (e Expiration) resolve() time.Time {
	return e.ResolveFrom(time.Now())
}

// expiredAt reports whether an entry with the resolved instant at is expired
// as of now. An entry is expired the moment now reaches the instant.
func expiredAt(at, now time.Time) bool {
	return !now.Before(at)
}
