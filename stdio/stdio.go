// Package stdio is the byte-stream boundary of heapcore. Writers accept
// borrowed element views and readers produce heap-owned strings.
package stdio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
	"unsafe"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/strbuf"
	"github.com/pavanmanishd/heapcore/strview"
	"github.com/pavanmanishd/heapcore/vec"
)

var (
	// ErrInvalidInput reports a view that cannot be written as bytes.
	ErrInvalidInput = errors.New("stdio: invalid input")
	// ErrInvalidData reports input that is not valid UTF-8.
	ErrInvalidData = errors.New("stdio: invalid data")
)

// Slice is a borrowed view of Len elements of Stride bytes each.
type Slice struct {
	Ptr    unsafe.Pointer
	Len    uintptr
	Stride uintptr
}

// SliceOf borrows b as a byte slice view.
func SliceOf(b []byte) Slice {
	return Slice{Ptr: unsafe.Pointer(unsafe.SliceData(b)), Len: uintptr(len(b)), Stride: 1}
}

// SliceOfVec borrows the active elements of v.
func SliceOfVec(v *vec.Vec) Slice {
	return Slice{Ptr: v.Ptr(), Len: uintptr(v.Len()), Stride: v.Stride()}
}

// Write writes every byte of s to w. Views whose elements are not single
// bytes are rejected before their memory is read.
func Write(w io.Writer, s Slice) error {
	if s.Stride != 1 {
		return fmt.Errorf("%w: element stride %d, want 1", ErrInvalidInput, s.Stride)
	}
	if s.Len == 0 {
		return nil
	}
	_, err := w.Write(unsafe.Slice((*byte)(s.Ptr), s.Len))
	return err
}

// Print writes v to w.
func Print(w io.Writer, v strview.View) error {
	return Write(w, SliceOf(v.Bytes()))
}

// PrintLine writes v and a newline to w.
func PrintLine(w io.Writer, v strview.View) error {
	if err := Print(w, v); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadLine reads one line, newline included, into a new string on a.
// A final line without a newline is returned with a nil error; io.EOF is
// returned only when nothing was read.
func ReadLine(a heapcore.Allocator, r *bufio.Reader) (*strbuf.String, error) {
	line, err := r.ReadBytes('\n')
	if err != nil && (!errors.Is(err, io.EOF) || len(line) == 0) {
		return nil, err
	}
	if !utf8.Valid(line) {
		return nil, ErrInvalidData
	}
	return strbuf.FromView(a, strview.NewUnchecked(line)), nil
}

// Read is ReadLine without the trailing newline.
func Read(a heapcore.Allocator, r *bufio.Reader) (*strbuf.String, error) {
	s, err := ReadLine(a, r)
	if err != nil {
		return nil, err
	}
	if b := s.Bytes(); len(b) > 0 && b[len(b)-1] == '\n' {
		s.PopRune()
	}
	return s, nil
}
