package rendercache

import (
	"context"
	"testing"
	"time"
)

func newMemForTest(t *testing.T) *MemoryCache[string, int] {
	t.Helper()
	m, err := NewMemory[string, int](MemoryOptions[string, int]{})
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

// TestMemoryEndToEnd walks the set/overwrite/remove sequence on one key.
func TestMemoryEndToEnd(t *testing.T) {
	ctx := context.Background()
	m := newMemForTest(t)

	if _, ok := m.Get(ctx, "A"); ok {
		t.Fatalf("expected initial miss")
	}

	if err := m.Set(ctx, "A", 42, Never); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m.Wait()
	if got, ok := m.Get(ctx, "A"); !ok || got != 42 {
		t.Fatalf("Get after set: ok=%v got=%d", ok, got)
	}

	// overwrite
	if err := m.Set(ctx, "A", 43, Never); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	m.Wait()
	if got, ok := m.Get(ctx, "A"); !ok || got != 43 {
		t.Fatalf("Get after overwrite: ok=%v got=%d", ok, got)
	}

	if err := m.Remove(ctx, "A"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	m.Wait()
	if _, ok := m.Get(ctx, "A"); ok {
		t.Fatalf("expected miss after remove")
	}
}

func TestMemoryIdempotentSet(t *testing.T) {
	ctx := context.Background()
	m := newMemForTest(t)

	for i := 0; i < 2; i++ {
		if err := m.Set(ctx, "k", 7, Never); err != nil {
			t.Fatalf("Set #%d: %v", i, err)
		}
	}
	m.Wait()
	if got, ok := m.Get(ctx, "k"); !ok || got != 7 {
		t.Fatalf("Get: ok=%v got=%d", ok, got)
	}
}

func TestMemoryPastExpirationIsMiss(t *testing.T) {
	ctx := context.Background()
	m := newMemForTest(t)

	if err := m.Set(ctx, "old", 1, At(time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m.Wait()
	if _, ok := m.Get(ctx, "old"); ok {
		t.Fatalf("entry with past expiration must read as absent")
	}
}

func TestMemoryEntryExpiresOverTime(t *testing.T) {
	ctx := context.Background()
	m := newMemForTest(t)

	if err := m.Set(ctx, "ttl", 5, After(30*time.Millisecond)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m.Wait()
	if got, ok := m.Get(ctx, "ttl"); !ok || got != 5 {
		t.Fatalf("Get before expiry: ok=%v got=%d", ok, got)
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := m.Get(ctx, "ttl"); ok {
		t.Fatalf("Get after expiry should miss")
	}
}

type sizeDesc struct {
	URL    string
	Width  int
	Height int
}

// TestMemoryStructKeys checks the default key-to-string mapping on a
// description-shaped key.
func TestMemoryStructKeys(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory[sizeDesc, string](MemoryOptions[sizeDesc, string]{})
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(m.Close)

	a := sizeDesc{URL: "https://example.com/x.png", Width: 64, Height: 64}
	b := sizeDesc{URL: "https://example.com/x.png", Width: 128, Height: 128}

	if err := m.Set(ctx, a, "small", Never); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	if err := m.Set(ctx, b, "large", Never); err != nil {
		t.Fatalf("Set b: %v", err)
	}
	m.Wait()

	if got, ok := m.Get(ctx, a); !ok || got != "small" {
		t.Fatalf("Get a: ok=%v got=%q", ok, got)
	}
	if got, ok := m.Get(ctx, b); !ok || got != "large" {
		t.Fatalf("Get b: ok=%v got=%q", ok, got)
	}
	// an equal key (fresh value, same fields) must hit the same entry
	if got, ok := m.Get(ctx, sizeDesc{URL: a.URL, Width: 64, Height: 64}); !ok || got != "small" {
		t.Fatalf("Get equal key: ok=%v got=%q", ok, got)
	}
}
