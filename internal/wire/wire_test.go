package wire

import (
	"bytes"
	"math"
	"testing"
)

func mustDecode(t *testing.T, b []byte) (int64, []byte) {
	t.Helper()
	at, p, err := DecodeEntry(b)
	if err != nil {
		t.Fatalf("DecodeEntry error: %v", err)
	}
	return at, p
}

func TestEntryRTEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		expiresAt int64
		payload   []byte
	}{
		{0, nil},
		{-42, []byte("hello")}, // past instants are legal
		{math.MaxInt64, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := EncodeEntry(tc.expiresAt, tc.payload)
		at, p := mustDecode(t, enc)
		if at != tc.expiresAt {
			t.Fatalf("expiresAt mismatch: got %d want %d", at, tc.expiresAt)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestEntryRejectsTrailingBytes(t *testing.T) {
	enc := EncodeEntry(7, []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := DecodeEntry(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestEntryCorruptHeadersAndLengths(t *testing.T) {
	enc := EncodeEntry(1, []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := DecodeEntry(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := DecodeEntry(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// wrong kind
	badKind := append([]byte(nil), enc...)
	badKind[5] = kindEntry + 1
	if _, _, err := DecodeEntry(badKind); err == nil {
		t.Fatalf("expected error on bad kind")
	}

	// truncated header
	if _, _, err := DecodeEntry(enc[:headerLen-1]); err == nil {
		t.Fatalf("expected error on truncated header")
	}

	// payload shorter than declared
	if _, _, err := DecodeEntry(enc[:len(enc)-1]); err == nil {
		t.Fatalf("expected error on short payload")
	}
}
