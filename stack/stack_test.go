package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "Root", Root.String())
	require.Equal(t, "ListItemObject", ListItemObject.String())
	require.Equal(t, "Kind(42)", Kind(42).String())
}

func TestPushPopOrderIsLIFO(t *testing.T) {
	s := NewFrames()
	require.True(t, s.Push(Frame{Kind: Root}))
	require.True(t, s.Push(Frame{Kind: Object, DeclaredLen: 1}))
	require.Equal(t, 2, s.Len())

	top, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, Object, top.Kind)
	require.Equal(t, 1, top.DeclaredLen)

	top, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, Root, top.Kind)

	_, ok = s.Pop()
	require.False(t, ok)
}

func TestTopReturnsMutablePointer(t *testing.T) {
	s := NewFrames()
	s.Push(Frame{Kind: ArrayInline, Index: 0})
	s.Top().Index++
	top, _ := s.Pop()
	require.Equal(t, 1, top.Index)
}

func TestTopOnEmptyStackIsNil(t *testing.T) {
	s := NewFrames()
	require.Nil(t, s.Top())
}

func TestPushRefusesBeyondMaxDepth(t *testing.T) {
	s := NewFrames()
	for i := 0; i < MaxDepth; i++ {
		require.True(t, s.Push(Frame{Kind: Object}))
	}
	require.False(t, s.Push(Frame{Kind: Object}))
	require.Equal(t, MaxDepth, s.Len())
}

func TestDelimiterWalksDownToNearestArrayFrame(t *testing.T) {
	s := NewFrames()
	s.Push(Frame{Kind: Root})
	require.Equal(t, byte(','), s.Delimiter())

	s.Push(Frame{Kind: ArrayInline, Delimiter: '|'})
	require.Equal(t, byte('|'), s.Delimiter())

	s.Push(Frame{Kind: ListItemObject})
	require.Equal(t, byte('|'), s.Delimiter(), "non-array frames on top don't shadow the enclosing array's delimiter")
}
