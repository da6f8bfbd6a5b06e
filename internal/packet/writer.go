package packet

import (
	"encoding/binary"
	"math"
)

// Writer builds a server reply frame. All multi-byte writes are
// little-endian. The first field of every frame is the packet type.
type Writer struct {
	buf []byte
}

func NewWriter(t Type) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.U16(uint16(t))
	return w
}

// U8 writes 1 byte.
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// U16 writes 2 bytes little-endian.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// U32 writes 4 bytes little-endian.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// U64 writes 8 bytes little-endian.
func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// F32 writes a little-endian IEEE 754 float.
func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// CString writes s into a fixed n-byte field, NUL-padded. Strings longer
// than n-1 bytes are truncated so the field always ends with a NUL.
func (w *Writer) CString(s string, n int) {
	field := make([]byte, n)
	if len(s) >= n {
		s = s[:n-1]
	}
	copy(field, s)
	w.buf = append(w.buf, field...)
}

// Bytes writes raw bytes.
func (w *Writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Frame returns the encoded frame: [u16 type][payload].
func (w *Writer) Frame() []byte {
	return w.buf
}

// Len returns the current frame length.
func (w *Writer) Len() int {
	return len(w.buf)
}
