// Package vec provides a growable array of fixed-size elements on a
// heapcore.Allocator.
//
// Elements are opaque runs of Stride bytes copied in and out through
// unsafe.Pointer. Capacity grows by bytebuf.NextCap, the same rule the
// byte buffer uses. A Vec has a single owner and is not goroutine-safe.
package vec

import (
	"errors"
	"math"
	"unsafe"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/fault"
)

// ErrIndex is returned by Insert and Remove for an index past the end.
var ErrIndex = errors.New("vec: index out of range")

// Vec is a contiguous sequence of elements of Stride bytes each.
// A new Vec allocates nothing until the first element is added.
type Vec struct {
	alloc  heapcore.Allocator
	ptr    unsafe.Pointer
	stride uintptr
	len    uintptr
	cap    uintptr
}

// New returns an empty vector of stride-byte elements. Faults if stride is
// zero.
func New(a heapcore.Allocator, stride uintptr) *Vec {
	if stride == 0 {
		fault.Raise("vec", "zero element size")
	}
	return &Vec{alloc: a, stride: stride}
}

// NewWithCap returns an empty vector with room for capacity elements.
// Faults if stride or capacity is zero. If the allocation fails the
// vector is returned unallocated, as from New.
func NewWithCap(a heapcore.Allocator, stride, capacity uintptr) *Vec {
	v := New(a, stride)
	if capacity == 0 {
		fault.Raise("vec", "zero capacity")
	}
	v.resize(capacity)
	return v
}

// Of returns an empty vector whose elements are T values.
// T must not contain Go pointers.
func Of[T any](a heapcore.Allocator) *Vec {
	var zero T
	return New(a, unsafe.Sizeof(zero))
}

// Clone deep-copies the vector. The copy's capacity equals its length.
// Faults if the allocation fails.
func (v *Vec) Clone() *Vec {
	v.mustBeLive()
	c := New(v.alloc, v.stride)
	if v.len == 0 {
		return c
	}
	if errk := c.resize(v.len); errk != heapcore.None {
		fault.Raise("vec", "clone: allocating %d elements failed: %v", v.len, errk)
	}
	copy(c.bytes(0, v.len), v.Bytes())
	c.len = v.len
	return c
}

// Len returns the number of elements.
func (v *Vec) Len() int { return int(v.len) }

// Cap returns the number of elements that fit without reallocating.
func (v *Vec) Cap() int { return int(v.cap) }

// Stride returns the size of each element in bytes.
func (v *Vec) Stride() uintptr { return v.stride }

// Allocator returns the allocator backing the vector.
func (v *Vec) Allocator() heapcore.Allocator { return v.alloc }

// Ptr returns the address of the first element, or nil if nothing has been
// allocated yet.
func (v *Vec) Ptr() unsafe.Pointer {
	v.mustBeLive()
	return v.ptr
}

// Bytes returns the active elements as raw bytes borrowing the vector.
func (v *Vec) Bytes() []byte {
	v.mustBeLive()
	return v.bytes(0, v.len)
}

// Get returns the address of element i, or nil if i is out of range. The
// address is invalidated by any growth.
func (v *Vec) Get(i int) unsafe.Pointer {
	v.mustBeLive()
	if i < 0 || uintptr(i) >= v.len {
		return nil
	}
	return v.at(uintptr(i))
}

// Push copies Stride bytes from value onto the end of the vector.
func (v *Vec) Push(value unsafe.Pointer) heapcore.ErrorKind {
	v.mustBeLive()
	if v.len == v.cap {
		if errk := v.grow(v.len + 1); errk != heapcore.None {
			return errk
		}
	}
	copy(v.bytes(v.len, 1), unsafe.Slice((*byte)(value), v.stride))
	v.len++
	return heapcore.None
}

// Pop removes the last element and returns its address, or nil if the
// vector is empty. The element stays readable until the next mutation.
func (v *Vec) Pop() unsafe.Pointer {
	v.mustBeLive()
	if v.len == 0 {
		return nil
	}
	v.len--
	return v.at(v.len)
}

// Insert copies value into position i, shifting later elements up.
// It returns ErrIndex if i > Len, or the allocation error if growing fails.
func (v *Vec) Insert(value unsafe.Pointer, i int) error {
	v.mustBeLive()
	if i < 0 || uintptr(i) > v.len {
		return ErrIndex
	}
	if v.len == v.cap {
		if errk := v.grow(v.len + 1); errk != heapcore.None {
			return errk
		}
	}
	pos := uintptr(i)
	copy(v.bytes(pos+1, v.len-pos), v.bytes(pos, v.len-pos))
	copy(v.bytes(pos, 1), unsafe.Slice((*byte)(value), v.stride))
	v.len++
	return nil
}

// Remove deletes element i, shifting later elements down. It returns
// ErrIndex if i is out of range.
func (v *Vec) Remove(i int) error {
	v.mustBeLive()
	if i < 0 || uintptr(i) >= v.len {
		return ErrIndex
	}
	pos := uintptr(i)
	copy(v.bytes(pos, v.len-pos-1), v.bytes(pos+1, v.len-pos-1))
	v.len--
	return nil
}

// Extend appends n elements of stride bytes read from p. Faults if stride
// differs from the vector's. On failure the vector is left unchanged.
func (v *Vec) Extend(p unsafe.Pointer, n, stride uintptr) heapcore.ErrorKind {
	v.mustBeLive()
	if stride != v.stride {
		fault.Raise("vec", "extend: element size %d does not match %d", stride, v.stride)
	}
	if n == 0 {
		return heapcore.None
	}
	need := v.len + n
	if need < v.len {
		return heapcore.OutOfMemory
	}
	if need > v.cap {
		if errk := v.grow(need); errk != heapcore.None {
			return errk
		}
	}
	copy(v.bytes(v.len, n), unsafe.Slice((*byte)(p), n*stride))
	v.len = need
	return heapcore.None
}

// Truncate keeps the first n elements. It is a no-op if n >= Len().
func (v *Vec) Truncate(n int) {
	v.mustBeLive()
	if n >= 0 && uintptr(n) < v.len {
		v.len = uintptr(n)
	}
}

// Clear removes every element, keeping the capacity.
func (v *Vec) Clear() { v.Truncate(0) }

// Reserve makes room for at least additional more elements. Faults if
// additional is zero. On failure the vector is left unchanged.
func (v *Vec) Reserve(additional uintptr) heapcore.ErrorKind {
	v.mustBeLive()
	if additional == 0 {
		fault.Raise("vec", "reserve: zero elements")
	}
	need := v.len + additional
	if need < v.len {
		return heapcore.OutOfMemory
	}
	if need <= v.cap {
		return heapcore.None
	}
	return v.resize(need)
}

// Shrink releases capacity beyond Len(). An empty vector gives back its
// whole allocation.
func (v *Vec) Shrink() heapcore.ErrorKind {
	v.mustBeLive()
	switch {
	case v.cap == v.len:
		return heapcore.None
	case v.len == 0:
		v.alloc.Deallocate(&v.ptr, v.cap*v.stride)
		v.cap = 0
		return heapcore.None
	}
	return v.resize(v.len)
}

// Free releases the vector's memory. The vector is unusable afterwards.
func (v *Vec) Free() {
	v.mustBeLive()
	if v.ptr != nil {
		v.alloc.Deallocate(&v.ptr, v.cap*v.stride)
	}
	v.stride, v.len, v.cap = 0, 0, 0
}

// At returns element i as a *T, or nil if i is out of range. Faults if T
// is not Stride bytes wide.
func At[T any](v *Vec, i int) *T {
	var zero T
	if unsafe.Sizeof(zero) != v.stride {
		fault.Raise("vec", "element type of %d bytes read from %d-byte elements", unsafe.Sizeof(zero), v.stride)
	}
	return (*T)(v.Get(i))
}

// PushValue pushes a copy of x. Faults if T is not Stride bytes wide.
func PushValue[T any](v *Vec, x T) heapcore.ErrorKind {
	if unsafe.Sizeof(x) != v.stride {
		fault.Raise("vec", "element type of %d bytes pushed onto %d-byte elements", unsafe.Sizeof(x), v.stride)
	}
	return v.Push(unsafe.Pointer(&x))
}

func (v *Vec) grow(need uintptr) heapcore.ErrorKind {
	return v.resize(bytebuf.NextCap(v.cap, need))
}

// resize moves the elements to a block of newCap elements. The first
// allocation goes through Allocate since there is no block to move.
func (v *Vec) resize(newCap uintptr) heapcore.ErrorKind {
	if newCap > math.MaxInt/v.stride {
		return heapcore.OutOfMemory
	}
	size := newCap * v.stride
	if v.ptr == nil {
		p := v.alloc.Allocate(size)
		if p == nil {
			return heapcore.OutOfMemory
		}
		v.ptr = p
	} else if errk := v.alloc.Reallocate(&v.ptr, v.cap*v.stride, size); errk != heapcore.None {
		return errk
	}
	v.cap = newCap
	return heapcore.None
}

func (v *Vec) at(i uintptr) unsafe.Pointer { return unsafe.Add(v.ptr, i*v.stride) }

func (v *Vec) bytes(i, n uintptr) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(v.at(i)), n*v.stride)
}

func (v *Vec) mustBeLive() {
	if v.stride == 0 {
		fault.Raise("vec", "use after free")
	}
}
