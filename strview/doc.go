// Package strview provides borrowed UTF-8 string views.
//
// A View is a (pointer, length) pair over bytes it does not own: a
// bytebuf.Buffer, a heap block, a Go slice, or foreign memory reached
// through an unsafe.Pointer. Views never allocate and never free.
//
// Checked constructors validate UTF-8 and fault on invalid input.
// Unchecked constructors trust the caller. Every operation assumes the
// view is valid UTF-8.
//
// Two failure policies coexist on purpose. CharAt never faults and
// returns utf8.RuneError (U+FFFD) for an out-of-range position, while
// Substring faults on any boundary that is reversed, out of range, or
// inside a multi-byte sequence, because a malformed sub-view would break
// every view derived from it.
//
// Numeric conversions parse the whole view with no trimming. On failure
// they return the zero value and an error wrapping ErrParse.
package strview
