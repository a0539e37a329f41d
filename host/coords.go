package host

import "unicode/utf8"

// ByteColumn converts a 0-based character offset within line to the
// 1-based byte column the host expects. Offsets past the end of the
// line clamp to one past the last byte.
func ByteColumn(line string, char int) int {
	if char <= 0 {
		return 1
	}
	n := 0
	for i := range line {
		if n == char {
			return i + 1
		}
		n++
	}
	return len(line) + 1
}

// CharOffset converts a 1-based byte column back to a 0-based
// character offset within line. Columns past the end of the line clamp
// to the character count. A column landing mid-rune counts the rune it
// falls inside, matching how hosts report the cursor on multibyte text.
func CharOffset(line string, col int) int {
	if col <= 1 {
		return 0
	}
	return utf8.RuneCountInString(line[:clampByte(line, col-1)])
}

func clampByte(line string, b int) int {
	if b > len(line) {
		return len(line)
	}
	// back up to a rune boundary
	for b > 0 && !utf8.RuneStart(line[b]) {
		b--
	}
	return b
}
