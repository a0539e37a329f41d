// Package host defines the boundary between the jump engine and the
// editor that embeds it. The engine never talks to a terminal or a
// buffer directly; everything goes through the Host interface, so that
// it can be swapped out for testing.
package host

import "context"

// KeyEscape is the cancel key. It is what the engine synthesizes to
// unblock a pending ReadKey when a selection times out, and what hosts
// should report when the user presses escape.
const KeyEscape rune = 0x1b

// Position is a location in the host's buffer. Both fields are 1-based,
// and Col counts bytes, not characters, because that is the unit the
// host's cursor and marker calls operate in. Convert with ByteColumn /
// CharOffset at the boundary, never earlier.
type Position struct {
	Line int
	Col  int
}

// MarkerClass identifies the kind of overlay a marker renders.
type MarkerClass int

const (
	// MarkerLabel is a selectable label drawn over a candidate.
	MarkerLabel MarkerClass = iota
	// MarkerRemainder flags a candidate beyond the label alphabet.
	MarkerRemainder
	// MarkerCursor marks the reference cursor position while a
	// selection is pending.
	MarkerCursor
)

// String returns the marker class name as used in host highlight groups.
func (c MarkerClass) String() string {
	switch c {
	case MarkerLabel:
		return "label"
	case MarkerRemainder:
		return "remainder"
	case MarkerCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// Marker describes one single-row, single-column overlay region.
type Marker struct {
	Class MarkerClass
	Line  int // 1-based
	Col   int // 1-based, bytes
	// Length is the byte length of the region being overlaid.
	Length int
	// Glyph is the character shown in place of the region. Unused for
	// MarkerCursor, which only restyles the cell.
	Glyph rune
	// Conceal requests that the underlying text be hidden behind Glyph.
	Conceal bool
}

// Handle identifies a rendered marker. Handles are only meaningful to
// the host that issued them and must not be reused across sessions.
type Handle uint64

// Host is the capability set the jump engine requires from the editor.
//
// Reads and writes other than ReadKey are expected to complete quickly;
// ReadKey suspends until the user presses a key or SendKey injects one.
// Implementations must guarantee that a SendKey call unblocks a pending
// ReadKey, which is how the timeout path reclaims a stuck capture.
type Host interface {
	// Cursor returns the current cursor position.
	Cursor(ctx context.Context) (Position, error)

	// ViewportTop returns the 1-based line number of the first
	// visible line.
	ViewportTop(ctx context.Context) (int, error)

	// CurrentLine returns the text of the line the cursor is on.
	CurrentLine(ctx context.Context) (string, error)

	// VisibleLines returns the text of every visible line, in order.
	VisibleLines(ctx context.Context) ([]string, error)

	// SetConcealLevel configures how concealed regions render. It must
	// be called before label markers are created, or the labels will
	// not collapse to a single glyph.
	SetConcealLevel(ctx context.Context, level int) error

	// ReadKey blocks until a single key arrives.
	ReadKey(ctx context.Context) (rune, error)

	// SendKey injects a synthetic key press. It never blocks; if the
	// host cannot accept the key it is dropped.
	SendKey(r rune)

	// MoveCursor places the cursor at p.
	MoveCursor(ctx context.Context, p Position) error

	// CreateMarkers renders all markers in one round-trip and returns
	// one handle per marker, in argument order.
	CreateMarkers(ctx context.Context, markers []Marker) ([]Handle, error)

	// ClearMarkers removes previously created markers in one
	// round-trip. Unknown handles are ignored.
	ClearMarkers(ctx context.Context, handles []Handle) error

	// NotifyEvent emits a fire-and-forget lifecycle notification for
	// external listeners.
	NotifyEvent(ctx context.Context, name string)

	// SetSessionFlag exposes whether a jump session is in progress to
	// external tooling.
	SetSessionFlag(ctx context.Context, active bool)
}
