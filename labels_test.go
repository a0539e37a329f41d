package charhop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charhop/charhop/host"
)

func positions(n int) []host.Position {
	out := make([]host.Position, n)
	for i := range out {
		out[i] = host.Position{Line: i + 1, Col: 1}
	}
	return out
}

func TestAlphabetSize(t *testing.T) {
	assert.Len(t, []rune(Alphabet), 38)
	assert.NotContains(t, Alphabet, string(RepeatGlyph))
}

func TestAssignLabelsBijection(t *testing.T) {
	// for any candidate count up to the alphabet size, the first N
	// symbols map 1:1 onto the first N candidates
	alphabet := []rune(Alphabet)
	for _, n := range []int{0, 1, 2, 37, 38} {
		pos := positions(n)
		a := assignLabels(pos)

		require.Len(t, a.keys, n, "n=%d", n)
		require.Len(t, a.table, n, "n=%d", n)
		assert.Empty(t, a.remainder, "n=%d", n)
		for i := 0; i < n; i++ {
			assert.Equal(t, alphabet[i], a.keys[i])
			assert.Equal(t, pos[i], a.table[alphabet[i]])
		}

		_, ok := a.repeatPosition()
		assert.False(t, ok, "n=%d", n)
	}
}

func TestAssignLabelsOverflow(t *testing.T) {
	for _, n := range []int{39, 50, 100} {
		pos := positions(n)
		a := assignLabels(pos)

		require.Len(t, a.keys, 38, "n=%d", n)
		require.Len(t, a.remainder, n-38, "n=%d", n)
		// remainder preserves candidate order
		for i, p := range a.remainder {
			assert.Equal(t, pos[38+i], p)
		}

		rp, ok := a.repeatPosition()
		require.True(t, ok)
		assert.Equal(t, pos[38], rp)
	}
}
