// Package strbuf provides an owned, growable UTF-8 string on top of
// bytebuf. Its contents are always valid UTF-8 and zero-terminated.
package strbuf

import (
	"fmt"
	"unicode/utf8"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/strview"
)

// String is a heap-allocated UTF-8 string.
type String struct {
	buf *bytebuf.Buffer
}

// New returns an empty string on a.
func New(a heapcore.Allocator) *String {
	return &String{buf: bytebuf.New(a)}
}

// NewWithCap returns an empty string with room for capacity bytes.
func NewWithCap(a heapcore.Allocator, capacity uintptr) *String {
	return &String{buf: bytebuf.NewWithCap(a, capacity+1)}
}

// FromView copies v into a new string.
func FromView(a heapcore.Allocator, v strview.View) *String {
	return &String{buf: bytebuf.FromBytes(a, v.Bytes())}
}

// Clone copies s into a new string on the same allocator.
func (s *String) Clone() *String {
	return &String{buf: s.buf.Clone()}
}

// PushRune appends r. It fails for surrogates and values beyond U+10FFFF.
func (s *String) PushRune(r rune) error {
	if !utf8.ValidRune(r) {
		return fmt.Errorf("strbuf: invalid scalar value %#x", r)
	}
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	return s.buf.Extend(enc[:n]).Err()
}

// PushView appends v. On failure s is unchanged.
func (s *String) PushView(v strview.View) heapcore.ErrorKind {
	return s.buf.Extend(v.Bytes())
}

// PopRune removes and returns the last scalar value, or utf8.RuneError if
// s is empty.
func (s *String) PopRune() rune {
	b := s.buf.Bytes()
	if len(b) == 0 {
		return utf8.RuneError
	}
	r, size := utf8.DecodeLastRune(b)
	s.buf.Truncate(len(b) - size)
	return r
}

// AsView borrows the contents as a view.
func (s *String) AsView() strview.View {
	return strview.NewUnchecked(s.buf.Bytes())
}

// Bytes borrows the contents as bytes.
func (s *String) Bytes() []byte { return s.buf.Bytes() }

// Len returns the number of scalar values. O(n).
func (s *String) Len() int { return s.AsView().Len() }

// ByteLen returns the length in bytes.
func (s *String) ByteLen() int { return s.buf.Len() }

// Buffer exposes the underlying zero-terminated buffer.
func (s *String) Buffer() *bytebuf.Buffer { return s.buf }

func (s *String) String() string { return string(s.buf.Bytes()) }

// Free releases the string's memory.
func (s *String) Free() { s.buf.Free() }
