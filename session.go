package charhop

import (
	"context"
	"sync"
	"unicode/utf8"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/charhop/charhop/config"
	"github.com/charhop/charhop/finder"
	"github.com/charhop/charhop/highlight"
	"github.com/charhop/charhop/host"
)

// Direction selects which side of the cursor a jump scans.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State is where a session currently is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateCollectingInput
	StateScanning
	StateLabeling
	StateAwaitingSelection
	StateResolved
	StateTimedOut
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCollectingInput:
		return "CollectingInput"
	case StateScanning:
		return "Scanning"
	case StateLabeling:
		return "Labeling"
	case StateAwaitingSelection:
		return "AwaitingSelection"
	case StateResolved:
		return "Resolved"
	case StateTimedOut:
		return "TimedOut"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Lifecycle notifications emitted through Host.NotifyEvent.
const (
	EventEnter = "charhop-enter"
	EventLeave = "charhop-leave"
)

// concealLevel is what labels need to collapse to a single glyph.
const concealLevel = 2

// Session is the state of one jump invocation, from trigger to
// resolution. Sessions are single-use: a rescan after the repeat glyph
// creates a fresh instance, so marker handles never outlive the
// session that created them.
type Session struct {
	host   host.Host
	config *config.Config
	hl     *highlight.Controller

	dir        Direction
	searchChar rune
	state      State
	assigned   assignment
	origin     host.Position

	cancelOnce sync.Once
	cancelCh   chan struct{}
	doneCh     chan struct{}
}

func newSession(h host.Host, cfg *config.Config, dir Direction, ch rune) *Session {
	return &Session{
		host:       h,
		config:     cfg,
		hl:         highlight.New(h),
		dir:        dir,
		searchChar: ch,
		state:      StateIdle,
		cancelCh:   make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// cancel tears down the session. It signals any pending key capture,
// waits for run to exit so no two sessions ever read keys at the same
// time, then clears the visual state. Idempotent: only the first call
// does anything, and the marker clear itself is a no-op on an
// already-empty controller.
func (s *Session) cancel(ctx context.Context) {
	s.cancelOnce.Do(func() {
		close(s.cancelCh)
		<-s.doneCh
		s.state = StateCancelled
		if err := s.hl.Clear(ctx); err != nil {
			tracer.Printf("failed to clear markers during cancel: %s", err)
		}
		s.assigned = assignment{}
	})
}

// run drives the session from CollectingInput to a terminal state. It
// returns true when the repeat glyph consumed the first remainder
// position and the caller should re-run the jump from the new cursor
// position with the same search character.
func (s *Session) run(ctx context.Context) (rescan bool, err error) {
	defer close(s.doneCh)
	if pdebug.Enabled {
		g := pdebug.Marker("Session.run (%s)", s.dir)
		defer g.End()
	}

	s.state = StateCollectingInput
	if s.searchChar == 0 {
		key, outcome, err := s.readKey(ctx)
		switch outcome {
		case awaitCancelled:
			return false, nil
		case awaitFailed:
			s.state = StateIdle
			return false, err
		}
		if key == host.KeyEscape {
			s.state = StateResolved
			return false, nil
		}
		s.searchChar = key
	}

	s.state = StateScanning
	var (
		top     int
		cursor  host.Position
		curLine string
		visible []string
	)
	b := host.NewBatch(s.host)
	b.ViewportTop(&top)
	b.Cursor(&cursor)
	b.CurrentLine(&curLine)
	b.VisibleLines(&visible)
	if err := b.Flush(ctx); err != nil {
		s.state = StateIdle
		return false, err
	}

	cursorChar := host.CharOffset(curLine, cursor.Col)
	sub, err := newSubRange(s.dir, visible, top, cursor, curLine, cursorChar)
	if err != nil {
		s.state = StateIdle
		return false, err
	}

	cands := finder.Find(s.searchChar, sub.lines, s.config.WordJump, sub.offset)
	tracer.Printf("scan %s for %q: %d candidates", s.dir, s.searchChar, len(cands))
	if len(cands) == 0 {
		// nothing to do, and that is not an error
		s.state = StateResolved
		return false, nil
	}

	positions := make([]host.Position, len(cands))
	for i, c := range cands {
		positions[i] = sub.absolute(c)
	}

	s.origin = cursor
	if s.config.JumpOnTrigger {
		// the first candidate is consumed by the immediate move and
		// never receives a label
		if err := s.host.MoveCursor(ctx, positions[0]); err != nil {
			s.state = StateIdle
			return false, errors.Wrap(err, `host call "move-cursor" failed`)
		}
		s.origin = positions[0]
		positions = positions[1:]
	}

	if len(positions) == 0 {
		s.state = StateResolved
		return false, nil
	}

	s.state = StateLabeling
	s.assigned = assignLabels(positions)
	if err := s.hl.Render(ctx, concealLevel, s.buildMarkers()); err != nil {
		s.state = StateIdle
		return false, err
	}

	s.host.SetSessionFlag(ctx, true)
	s.host.NotifyEvent(ctx, EventEnter)
	defer func() {
		s.host.NotifyEvent(ctx, EventLeave)
		s.host.SetSessionFlag(ctx, false)
	}()

	s.state = StateAwaitingSelection
	key, outcome, err := s.await(ctx)
	switch outcome {
	case awaitTimedOut:
		s.state = StateTimedOut
		return false, s.hl.Clear(ctx)
	case awaitCancelled:
		// markers already cleared by cancel()
		return false, nil
	case awaitFailed:
		clearErr := s.hl.Clear(ctx)
		s.state = StateIdle
		if clearErr != nil {
			tracer.Printf("failed to clear markers after error: %s", clearErr)
		}
		return false, err
	}

	return s.resolve(ctx, key)
}

// resolve applies the resolution rules, in priority order: the repeat
// glyph with pending overflow wins over label matches, and anything
// unrecognized (escape included) cancels without moving the cursor.
func (s *Session) resolve(ctx context.Context, key rune) (bool, error) {
	if key == RepeatGlyph {
		if rp, ok := s.assigned.repeatPosition(); ok {
			if err := s.hl.Clear(ctx); err != nil {
				return false, err
			}
			if err := s.host.MoveCursor(ctx, rp); err != nil {
				return false, errors.Wrap(err, `host call "move-cursor" failed`)
			}
			s.state = StateResolved
			return true, nil
		}
	}

	if pos, ok := s.assigned.table[key]; ok {
		if err := s.hl.Clear(ctx); err != nil {
			return false, err
		}
		if err := s.host.MoveCursor(ctx, pos); err != nil {
			return false, errors.Wrap(err, `host call "move-cursor" failed`)
		}
		s.state = StateResolved
		return false, nil
	}

	s.state = StateResolved
	return false, s.hl.Clear(ctx)
}

// buildMarkers lays out one marker per label, one per remainder
// position, and one for the reference cursor position.
func (s *Session) buildMarkers() []host.Marker {
	length := utf8.RuneLen(s.searchChar)
	ms := make([]host.Marker, 0, len(s.assigned.keys)+len(s.assigned.remainder)+1)
	for _, k := range s.assigned.keys {
		p := s.assigned.table[k]
		ms = append(ms, host.Marker{
			Class:   host.MarkerLabel,
			Line:    p.Line,
			Col:     p.Col,
			Length:  length,
			Glyph:   k,
			Conceal: true,
		})
	}
	for _, p := range s.assigned.remainder {
		ms = append(ms, host.Marker{
			Class:   host.MarkerRemainder,
			Line:    p.Line,
			Col:     p.Col,
			Length:  length,
			Glyph:   RepeatGlyph,
			Conceal: true,
		})
	}
	ms = append(ms, host.Marker{
		Class:  host.MarkerCursor,
		Line:   s.origin.Line,
		Col:    s.origin.Col,
		Length: 1,
	})
	return ms
}

// subRange is the directional slice of the viewport handed to the
// finder, plus what is needed to map candidates back to absolute host
// positions.
type subRange struct {
	dir        Direction
	lines      []string
	offset     int
	cursorLine int // absolute, 1-based
}

// newSubRange computes the directional sub-range. Forward keeps the
// cursor's line (offset excluding characters before the cursor) through
// the bottom of the viewport. Backward keeps the top of the viewport
// through the cursor's line truncated to the text before the cursor
// column, then reverses line order so the line nearest the cursor gets
// label priority.
func newSubRange(dir Direction, visible []string, top int, cursor host.Position, curLine string, cursorChar int) (*subRange, error) {
	row := cursor.Line - top
	if row < 0 || row >= len(visible) {
		return nil, errors.Errorf("cursor line %d outside viewport starting at line %d (%d visible)", cursor.Line, top, len(visible))
	}

	r := &subRange{dir: dir, cursorLine: cursor.Line}
	switch dir {
	case Forward:
		r.lines = make([]string, 0, len(visible)-row)
		r.lines = append(r.lines, curLine)
		r.lines = append(r.lines, visible[row+1:]...)
		r.offset = cursorChar
	case Backward:
		r.lines = make([]string, 0, row+1)
		r.lines = append(r.lines, truncateChars(curLine, cursorChar))
		for i := row - 1; i >= 0; i-- {
			r.lines = append(r.lines, visible[i])
		}
	}
	return r, nil
}

// absolute converts a candidate back to a 1-based host position with a
// byte column. This is the only place candidate coordinates cross the
// host boundary.
func (r *subRange) absolute(c finder.Candidate) host.Position {
	line := r.cursorLine + c.Line
	if r.dir == Backward {
		line = r.cursorLine - c.Line
	}
	return host.Position{
		Line: line,
		Col:  host.ByteColumn(r.lines[c.Line], c.Char),
	}
}

// truncateChars returns the first n characters of s.
func truncateChars(s string, n int) string {
	return s[:host.ByteColumn(s, n)-1]
}
