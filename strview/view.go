package strview

import (
	"bytes"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/pavanmanishd/heapcore/fault"
)

// View is an immutable borrowed UTF-8 string.
type View struct {
	b []byte
}

// New returns a view over b. Faults if b is not valid UTF-8.
func New(b []byte) View {
	if !utf8.Valid(b) {
		fault.Raise("strview", "invalid UTF-8")
	}
	return View{b: b}
}

// NewUnchecked returns a view over b without validating it.
func NewUnchecked(b []byte) View {
	return View{b: b}
}

// FromString returns a view over the bytes of s. Go strings may hold
// arbitrary bytes, so s is validated.
func FromString(s string) View {
	return New(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// FromCStr returns a view up to, and excluding, the first zero byte of b.
// Faults if b holds no terminator or the prefix is not valid UTF-8.
func FromCStr(b []byte) View {
	return New(b[:cstrLen(b)])
}

// FromCStrWithNull is like FromCStr but the view includes the terminator.
func FromCStrWithNull(b []byte) View {
	return New(b[:cstrLen(b)+1])
}

// FromCStrUnchecked is FromCStr without UTF-8 validation.
func FromCStrUnchecked(b []byte) View {
	return View{b: b[:cstrLen(b)]}
}

// FromRaw scans the memory at p for a zero byte and views the bytes before
// it. The memory must be readable up to and including the terminator.
func FromRaw(p unsafe.Pointer) View {
	return New(unsafe.Slice((*byte)(p), rawLen(p)))
}

// FromRawWithNull is like FromRaw but the view includes the terminator.
func FromRawWithNull(p unsafe.Pointer) View {
	return New(unsafe.Slice((*byte)(p), rawLen(p)+1))
}

// FromPtr views n bytes at p. Faults if n exceeds math.MaxInt or the bytes
// are not valid UTF-8.
func FromPtr(p unsafe.Pointer, n uintptr) View {
	return New(ptrBytes(p, n))
}

// FromPtrUnchecked views n bytes at p without validating them.
func FromPtrUnchecked(p unsafe.Pointer, n uintptr) View {
	return View{b: ptrBytes(p, n)}
}

// Bytes returns the viewed bytes. They must not be modified through a View.
func (v View) Bytes() []byte { return v.b }

// String returns a copy of the view as a Go string.
func (v View) String() string { return string(v.b) }

// Ptr returns the address of the first byte, or nil for an empty view.
func (v View) Ptr() unsafe.Pointer { return unsafe.Pointer(unsafe.SliceData(v.b)) }

// ByteLen returns the length of the view in bytes.
func (v View) ByteLen() int { return len(v.b) }

// Len returns the number of Unicode scalar values in the view. O(n).
func (v View) Len() int { return charLen(v.b) }

// CharAt returns the scalar value at character position pos, or
// utf8.RuneError if pos is out of range.
func (v View) CharAt(pos int) rune { return charAt(v.b, pos) }

// Substring returns the sub-view of bytes [start, end). Faults if
// start > end, end > ByteLen, or either boundary splits a UTF-8 sequence.
func (v View) Substring(start, end int) View {
	checkRange(v.b, start, end)
	return View{b: v.b[start:end:end]}
}

func cstrLen(b []byte) int {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		fault.Raise("strview", "missing null terminator")
	}
	return i
}

func rawLen(p unsafe.Pointer) int {
	if p == nil {
		fault.Raise("strview", "nil C string")
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		if n == math.MaxInt-1 {
			fault.Raise("strview", "C string exceeds maximum length")
		}
		n++
	}
	return n
}

func ptrBytes(p unsafe.Pointer, n uintptr) []byte {
	if n > math.MaxInt {
		fault.Raise("strview", "length %d exceeds maximum %d", n, math.MaxInt)
	}
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), int(n))
}

// charLen counts UTF-8 lead bytes.
func charLen(b []byte) int {
	n := 0
	for _, c := range b {
		if c&0xC0 != 0x80 {
			n++
		}
	}
	return n
}

func charAt(b []byte, pos int) rune {
	if pos < 0 {
		return utf8.RuneError
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if pos == 0 {
			return r
		}
		pos--
		i += size
	}
	return utf8.RuneError
}

func checkRange(b []byte, start, end int) {
	switch {
	case start < 0 || start > end:
		fault.Raise("strview", "substring: invalid range [%d, %d)", start, end)
	case end > len(b):
		fault.Raise("strview", "substring: end %d out of range for length %d", end, len(b))
	case start < len(b) && !utf8.RuneStart(b[start]):
		fault.Raise("strview", "substring: start %d splits a UTF-8 sequence", start)
	case end < len(b) && !utf8.RuneStart(b[end]):
		fault.Raise("strview", "substring: end %d splits a UTF-8 sequence", end)
	}
}
