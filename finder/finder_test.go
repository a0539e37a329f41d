package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	testValues := []struct {
		name      string
		ch        rune
		lines     []string
		wordStart bool
		offset    int
		expect    []Candidate
	}{
		{
			name:   "literal occurrences across lines",
			ch:     'o',
			lines:  []string{"fox", "box", "cow"},
			expect: []Candidate{{0, 1}, {1, 1}, {2, 1}},
		},
		{
			name:   "no match yields empty, not error",
			ch:     'z',
			lines:  []string{"fox", "box"},
			expect: nil,
		},
		{
			name:   "offset applies to first line only",
			ch:     'o',
			lines:  []string{"oo-oo", "oo"},
			offset: 3,
			expect: []Candidate{{0, 3}, {0, 4}, {1, 0}, {1, 1}},
		},
		{
			name:      "word start at beginning of line",
			ch:        'f',
			lines:     []string{"fox fof"},
			wordStart: true,
			expect:    []Candidate{{0, 0}, {0, 4}},
		},
		{
			name:      "mid-word occurrences filtered in word mode",
			ch:        'o',
			lines:     []string{"foo oof"},
			wordStart: true,
			expect:    []Candidate{{0, 4}},
		},
		{
			name:      "underscore continues a word",
			ch:        'b',
			lines:     []string{"a_b a-b"},
			wordStart: true,
			expect:    []Candidate{{0, 6}},
		},
		{
			name:   "multibyte characters count as one",
			ch:     'é',
			lines:  []string{"caféé", "日本é"},
			expect: []Candidate{{0, 3}, {0, 4}, {1, 2}},
		},
		{
			name:      "word start after CJK letter is not a boundary",
			ch:        'x',
			lines:     []string{"日x x"},
			wordStart: true,
			expect:    []Candidate{{0, 3}},
		},
		{
			name:   "empty lines are skipped",
			ch:     'a',
			lines:  []string{"", "a", ""},
			expect: []Candidate{{1, 0}},
		},
	}

	for _, tv := range testValues {
		t.Run(tv.name, func(t *testing.T) {
			got := Find(tv.ch, tv.lines, tv.wordStart, tv.offset)
			assert.Equal(t, tv.expect, got)
		})
	}
}

func TestFindDoesNotMutateInput(t *testing.T) {
	lines := []string{"abc", "abc"}
	Find('b', lines, false, 1)
	assert.Equal(t, []string{"abc", "abc"}, lines)
}
