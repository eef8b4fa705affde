package heapcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int64
	Tag  [8]byte
}

func TestNew(t *testing.T) {
	h := NewHeap()
	defer h.Release()

	p := New(h, point{X: 1, Y: 2, Tag: [8]byte{'a'}})
	require.NotNil(t, p)
	assert.Equal(t, int64(1), p.X)
	assert.Equal(t, int64(2), p.Y)
	assert.Equal(t, byte('a'), p.Tag[0])

	p.X = 42
	assert.Equal(t, int64(42), p.X)

	Delete(h, p)
	assert.Zero(t, h.LiveBlocks())
}

func TestNewZeroed(t *testing.T) {
	h := NewHeap()
	defer h.Release()

	// Recycle a dirty block first
	d := New(h, point{X: -1, Y: -1})
	Delete(h, d)

	p := NewZeroed[point](h)
	require.NotNil(t, p)
	assert.Equal(t, point{}, *p)
	Delete(h, p)
}

func TestNewExhausted(t *testing.T) {
	h := NewHeap(WithChunkSize(4096), WithLimit(1))
	defer h.Release()

	assert.Nil(t, New(h, point{}))
	assert.Nil(t, NewZeroed[point](h))
}

func TestNewZeroSizedTypeFaults(t *testing.T) {
	h := NewHeap()
	defer h.Release()

	assert.Panics(t, func() { New(h, struct{}{}) })
}

func TestDefaultHeap(t *testing.T) {
	require.Same(t, Default(), Default())

	before := Default().LiveBlocks()
	p := AllocateZeroed(48)
	require.NotNil(t, p)
	assert.Equal(t, None, Reallocate(&p, 48, 480))
	Deallocate(&p, 480)
	assert.Nil(t, p)

	q := Allocate(16)
	Deallocate(&q, 16)
	assert.Equal(t, before, Default().LiveBlocks())
}
