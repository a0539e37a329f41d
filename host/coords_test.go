package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteColumn(t *testing.T) {
	testValues := []struct {
		line string
		char int
		col  int
	}{
		{"abc", 0, 1},
		{"abc", 2, 3},
		{"abc", 3, 4},  // one past the end
		{"abc", 10, 4}, // clamps
		{"", 0, 1},
		{"日本語x", 0, 1},
		{"日本語x", 1, 4},
		{"日本語x", 3, 10},
		{"café au lait", 4, 6}, // é is two bytes
	}
	for _, tv := range testValues {
		assert.Equal(t, tv.col, ByteColumn(tv.line, tv.char), "ByteColumn(%q, %d)", tv.line, tv.char)
	}
}

func TestCharOffset(t *testing.T) {
	testValues := []struct {
		line string
		col  int
		char int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"abc", 4, 3},
		{"abc", 100, 3}, // clamps
		{"", 1, 0},
		{"日本語x", 1, 0},
		{"日本語x", 4, 1},
		{"日本語x", 10, 3},
		{"日本語x", 5, 1}, // mid-rune lands on the rune it is inside
	}
	for _, tv := range testValues {
		assert.Equal(t, tv.char, CharOffset(tv.line, tv.col), "CharOffset(%q, %d)", tv.line, tv.col)
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	line := "ab日本cd語ef"
	for char := 0; char <= 8; char++ {
		assert.Equal(t, char, CharOffset(line, ByteColumn(line, char)), "char=%d", char)
	}
}
