package charhop

import "github.com/charhop/charhop/host"

// Alphabet is the fixed set of label keys, in priority order: the
// i-th candidate gets the i-th symbol. 38 symbols total.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789,."

// RepeatGlyph is the reserved key that jumps to the first candidate
// beyond the alphabet and re-runs the scan from there. It is also the
// glyph rendered on every remainder marker. It is deliberately not
// part of Alphabet.
const RepeatGlyph rune = ';'

// assignment is the outcome of zipping candidates with the alphabet.
// keys preserves assignment order; table maps each key back to its
// position. Positions beyond the alphabet land in remainder, still in
// candidate order.
type assignment struct {
	keys      []rune
	table     map[rune]host.Position
	remainder []host.Position
}

// assignLabels pairs the i-th position with the i-th alphabet symbol.
// It is a pure, order-preserving zip; no searching, no backtracking.
// Zero positions yields an empty assignment.
func assignLabels(positions []host.Position) assignment {
	a := assignment{
		table: make(map[rune]host.Position),
	}
	alphabet := []rune(Alphabet)
	for i, pos := range positions {
		if i >= len(alphabet) {
			a.remainder = append(a.remainder, positions[i:]...)
			break
		}
		a.keys = append(a.keys, alphabet[i])
		a.table[alphabet[i]] = pos
	}
	return a
}

// repeatPosition returns the position reachable via RepeatGlyph, which
// is always the first remainder entry at assignment time.
func (a assignment) repeatPosition() (host.Position, bool) {
	if len(a.remainder) == 0 {
		return host.Position{}, false
	}
	return a.remainder[0], true
}
