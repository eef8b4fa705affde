// Package wide converts UTF-8 views into zero-terminated UTF-16 heap
// buffers for consumers that expect wide strings.
package wide

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/strview"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ToUTF16 encodes v as little-endian UTF-16 in a new buffer on a. The
// buffer ends with a 16-bit zero: one extra zero byte followed by the
// buffer's own terminator.
func ToUTF16(a heapcore.Allocator, v strview.View) (*bytebuf.Buffer, error) {
	enc, err := utf16le.NewEncoder().Bytes(v.Bytes())
	if err != nil {
		return nil, fmt.Errorf("wide: encode: %w", err)
	}
	buf := bytebuf.NewWithCap(a, uintptr(len(enc))+2)
	if errk := buf.Extend(append(enc, 0)); errk != heapcore.None {
		buf.Free()
		return nil, errk
	}
	return buf, nil
}

// Units returns the code units of a buffer produced by ToUTF16, excluding
// the terminating zero unit.
func Units(buf *bytebuf.Buffer) []uint16 {
	b := buf.Bytes() // trailing zero byte of the terminator unit included
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return units
}

// FromUTF16 decodes little-endian UTF-16 bytes into a UTF-8 buffer on a.
func FromUTF16(a heapcore.Allocator, b []byte) (*bytebuf.Buffer, error) {
	dec, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("wide: decode: %w", err)
	}
	return bytebuf.FromBytes(a, dec), nil
}
