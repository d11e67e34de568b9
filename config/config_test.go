package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := New()
	require.Equal(t, 2, o.IndentSize)
	require.True(t, o.Strict)
	require.Equal(t, 1000, o.MaxNestingDepth)
	require.Equal(t, 1000, o.MaxNumberLength)
	require.Equal(t, byte(','), o.Delimiter)
}

func TestWithLenientTogglesStrict(t *testing.T) {
	o := New(WithLenient())
	require.False(t, o.Strict)
}

func TestWithStrictOverridesLenient(t *testing.T) {
	o := New(WithLenient(), WithStrict(true))
	require.True(t, o.Strict)
}

func TestOptionsComposeInOrder(t *testing.T) {
	o := New(
		WithIndentSize(4),
		WithMaxNestingDepth(10),
		WithMaxNumberLength(20),
		WithDelimiter('|'),
	)
	require.Equal(t, 4, o.IndentSize)
	require.Equal(t, 10, o.MaxNestingDepth)
	require.Equal(t, 20, o.MaxNumberLength)
	require.Equal(t, byte('|'), o.Delimiter)
}
