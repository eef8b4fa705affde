package strview

import "unsafe"

// MutView is a borrowed UTF-8 string whose bytes may be modified in place.
// Writes must keep the view valid UTF-8.
type MutView struct {
	View
}

// NewMut returns a mutable view over b. Faults if b is not valid UTF-8.
func NewMut(b []byte) MutView { return MutView{New(b)} }

// NewMutUnchecked returns a mutable view over b without validating it.
func NewMutUnchecked(b []byte) MutView { return MutView{NewUnchecked(b)} }

// MutFromCStr returns a mutable view up to the first zero byte of b.
func MutFromCStr(b []byte) MutView { return MutView{FromCStr(b)} }

// MutFromCStrWithNull is like MutFromCStr but includes the terminator.
func MutFromCStrWithNull(b []byte) MutView { return MutView{FromCStrWithNull(b)} }

// MutFromPtr views n writable bytes at p.
func MutFromPtr(p unsafe.Pointer, n uintptr) MutView { return MutView{FromPtr(p, n)} }

// AsConst returns an immutable view of the same bytes.
func (m MutView) AsConst() View { return m.View }

// Substring returns the mutable sub-view of bytes [start, end).
func (m MutView) Substring(start, end int) MutView {
	return MutView{m.View.Substring(start, end)}
}
