// Package wire frames cache entries for byte-oriented backends (disk files,
// compact memory). An entry carries the resolved absolute expiration instant
// next to the codec payload so every backend evaluates expiry the same way.
//
// Decoding is strict: bad magic, unknown version, truncated lengths and
// trailing bytes are all ErrCorrupt. Callers treat ErrCorrupt as a cache
// miss, never as a fatal error.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version   byte = 1
	kindEntry byte = 1
)

var (
	ErrCorrupt = errors.New("rendercache: corrupt entry")
	magic4     = [...]byte{'R', 'C', 'H', 'E'}
)

const headerLen = 4 + 1 + 1 + 8 + 4

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | kind(1=entry) | expiresAt(i64 be, unix nano) | vlen(u32 be) | payload(vlen)
func EncodeEntry(expiresAt int64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindEntry)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(expiresAt))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func DecodeEntry(b []byte) (expiresAt int64, payload []byte, err error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version || b[5] != kindEntry {
		return 0, nil, ErrCorrupt
	}

	off := 6

	expiresAt = int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // exact length; trailing junk is corruption
		return 0, nil, ErrCorrupt
	}

	return expiresAt, b[off : off+vlen], nil
}
