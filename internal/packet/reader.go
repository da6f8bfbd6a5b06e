package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrFrameSize is returned when a client frame does not match the exact
// fixed layout size its handler declared.
var ErrFrameSize = errors.New("packet: frame size mismatch")

// Reader reads fields from a client packet payload. All multi-byte fields
// are little-endian. A Reader can only be obtained through NewReader, which
// enforces the exact layout size before any field is read.
type Reader struct {
	data []byte
	off  int
}

// NewReader validates that data is exactly size bytes long and returns a
// Reader positioned at offset 0. Handlers must call this before reading any
// field; a mismatched frame is rejected without interpreting a single byte.
func NewReader(data []byte, size int) (*Reader, error) {
	if len(data) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(data), size)
	}
	return &Reader{data: data}, nil
}

// U8 reads 1 unsigned byte.
func (r *Reader) U8() uint8 {
	if r.off >= len(r.data) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// U16 reads 2 bytes as little-endian uint16.
func (r *Reader) U16() uint16 {
	if r.off+2 > len(r.data) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

// U32 reads 4 bytes as little-endian uint32.
func (r *Reader) U32() uint32 {
	if r.off+4 > len(r.data) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

// U64 reads 8 bytes as little-endian uint64.
func (r *Reader) U64() uint64 {
	if r.off+8 > len(r.data) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v
}

// F32 reads 4 bytes as a little-endian IEEE 754 float.
func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// CString reads a fixed n-byte field holding a NUL-padded string and returns
// the portion before the first NUL.
func (r *Reader) CString(n int) string {
	raw := r.Bytes(n)
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	if r.off+n > len(r.data) {
		remaining := r.data[r.off:]
		r.off = len(r.data)
		return remaining
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// Skip advances past n bytes without interpreting them.
func (r *Reader) Skip(n int) {
	r.off += n
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}
