package strbuf

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/strview"
)

func TestPushPopRune(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	s := New(h)
	for _, r := range "a🦀b" {
		require.NoError(t, s.PushRune(r))
	}
	assert.Equal(t, "a🦀b", s.String())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 6, s.ByteLen())

	assert.Equal(t, 'b', s.PopRune())
	assert.Equal(t, '🦀', s.PopRune())
	assert.Equal(t, "a", s.String())
	assert.Equal(t, byte(0), s.Buffer().BytesWithNull()[1])

	assert.Equal(t, 'a', s.PopRune())
	assert.Equal(t, utf8.RuneError, s.PopRune())
	s.Free()
}

func TestPushRuneRejectsInvalidScalars(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	s := New(h)
	assert.Error(t, s.PushRune(0xD800))
	assert.Error(t, s.PushRune(0x110000))
	assert.Zero(t, s.ByteLen())
	s.Free()
}

func TestPushView(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	s := FromView(h, strview.FromString("33"))
	require.Equal(t, heapcore.None, s.PushView(strview.FromString("marrow")))
	assert.Equal(t, "33marrow", s.AsView().String())

	n, err := s.AsView().Substring(0, 2).ToInt()
	require.NoError(t, err)
	assert.Equal(t, 33, n)
	s.Free()
}

func TestClone(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	s := NewWithCap(h, 8)
	require.NoError(t, s.PushRune('é'))
	c := s.Clone()
	require.NoError(t, c.PushRune('!'))

	assert.Equal(t, "é", s.String())
	assert.Equal(t, "é!", c.String())
	assert.Equal(t, []byte("é!"), c.Bytes())
	s.Free()
	c.Free()
	assert.Zero(t, h.LiveBlocks())
}
