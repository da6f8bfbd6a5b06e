package net

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Micenas/R1EMU/internal/packet"
)

// ReadFrame reads one client frame from r.
// Wire format: [2 bytes LE: total length including the 4-byte header]
// [2 bytes LE: packet type][payload].
// Returns the packet type and the payload bytes.
func ReadFrame(r io.Reader) (packet.Type, []byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("read frame header: %w", err)
	}

	totalLen := int(binary.LittleEndian.Uint16(header[0:2]))
	t := packet.Type(binary.LittleEndian.Uint16(header[2:4]))

	payloadLen := totalLen - 4
	if payloadLen < 0 || payloadLen > 65531 {
		return 0, nil, fmt.Errorf("invalid frame length: %d", totalLen)
	}
	if payloadLen == 0 {
		return t, nil, nil
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("read frame payload (%d bytes): %w", payloadLen, err)
	}
	return t, payload, nil
}

// WriteFrame writes one server frame to w. data already begins with the
// 2-byte packet type; the 2-byte length header is prepended here.
// Wire format: [2 bytes LE: len(data)+2][data].
func WriteFrame(w io.Writer, data []byte) error {
	totalLen := len(data) + 2
	if totalLen > 65535 {
		return fmt.Errorf("frame too large: %d", totalLen)
	}
	var header [2]byte
	binary.LittleEndian.PutUint16(header[:], uint16(totalLen))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	return nil
}
