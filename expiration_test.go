package rendercache

import (
	"testing"
	"time"
)

func TestNeverResolvesToMaxInstant(t *testing.T) {
	now := time.Now()
	if got := Never.ResolveFrom(now); !got.Equal(maxInstant) {
		t.Fatalf("Never resolved to %v, want max instant", got)
	}
	// the zero value is Never
	var zero Expiration
	if got := zero.ResolveFrom(now); !got.Equal(maxInstant) {
		t.Fatalf("zero Expiration resolved to %v, want max instant", got)
	}
	if expiredAt(maxInstant, now) {
		t.Fatalf("max instant must not read as expired")
	}
}

func TestAfterAndDaysResolveFromWriteTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := After(90 * time.Minute).ResolveFrom(now); !got.Equal(now.Add(90 * time.Minute)) {
		t.Fatalf("After: got %v", got)
	}
	if got := Days(3).ResolveFrom(now); !got.Equal(now.Add(72 * time.Hour)) {
		t.Fatalf("Days: got %v", got)
	}

	// resolution happens once; a different "now" must not leak in
	later := now.Add(time.Hour)
	resolved := After(time.Minute).ResolveFrom(now)
	if resolved.Equal(After(time.Minute).ResolveFrom(later)) {
		t.Fatalf("resolution should depend on the write-time clock")
	}
}

func TestAtResolvesToGivenInstant(t *testing.T) {
	at := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := At(at).ResolveFrom(time.Now()); !got.Equal(at) {
		t.Fatalf("At: got %v want %v", got, at)
	}
}

func TestNonPositiveDurationIsImmediatelyExpired(t *testing.T) {
	now := time.Now()
	for _, d := range []time.Duration{0, -time.Second} {
		resolved := After(d).ResolveFrom(now)
		if !expiredAt(resolved, now) {
			t.Fatalf("After(%v) should be expired immediately", d)
		}
	}
}

func TestExpiryBoundaryIsInclusive(t *testing.T) {
	now := time.Now()
	if !expiredAt(now, now) {
		t.Fatalf("entry must be expired the moment now reaches the instant")
	}
	if expiredAt(now.Add(time.Nanosecond), now) {
		t.Fatalf("entry expired one nanosecond early")
	}
}
