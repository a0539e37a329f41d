// Package finder locates every occurrence of a character within a set
// of text lines. It is deliberately dumb: it knows nothing about
// viewports, directions, or labels. Callers hand it the exact lines to
// scan, already ordered the way candidates should be prioritized.
package finder

import "unicode"

// Candidate is one match. Both offsets are 0-based: Line indexes into
// the scanned lines, Char counts characters (not bytes) within that
// line.
type Candidate struct {
	Line int
	Char int
}

// Find returns every occurrence of ch in lines, in appearance order.
// Each line is scanned in a single pass and the inputs are never
// mutated. A search with no matches returns an empty result, not an
// error.
//
// offset applies to lines[0] only: characters with index < offset are
// skipped. This is how the caller excludes characters already passed
// on the cursor's own line.
//
// When wordStart is set, only matches at a word start are reported. A
// position is a word start when it has no preceding character on its
// line, or the preceding character is not a word character (letter,
// digit or underscore).
func Find(ch rune, lines []string, wordStart bool, offset int) []Candidate {
	var out []Candidate
	for li, line := range lines {
		start := 0
		if li == 0 {
			start = offset
		}

		prev := rune(0)
		hasPrev := false
		ci := 0
		for _, r := range line {
			if ci >= start && r == ch {
				if !wordStart || isWordStart(prev, hasPrev) {
					out = append(out, Candidate{Line: li, Char: ci})
				}
			}
			prev = r
			hasPrev = true
			ci++
		}
	}
	return out
}

func isWordStart(prev rune, hasPrev bool) bool {
	return !hasPrev || !isWordRune(prev)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
