// Package ui is a small tcell-based file viewer that doubles as the
// reference host.Host implementation: it is the in-process equivalent
// of the editor the jump engine is meant to be embedded in.
package ui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/charhop/charhop/config"
	"github.com/charhop/charhop/host"
)

// Jumper is the slice of the jump engine the viewer drives. The
// concrete implementation is charhop.CharHop; the indirection exists
// so this package does not depend on the engine package it hosts.
type Jumper interface {
	Forward(ctx context.Context) error
	Backward(ctx context.Context) error
	Repeat(ctx context.Context) error
	RepeatOpposite(ctx context.Context) error
	Cancel(ctx context.Context)
}

type keyEvent struct {
	r   rune
	key tcell.Key
}

// Viewer displays a file and implements host.Host on top of tcell.
type Viewer struct {
	mutex  sync.Mutex
	screen tcell.Screen
	lines  []string

	top     int // 0-based first visible line
	curLine int // 0-based
	curChar int // 0-based character offset

	conceal    int
	flag       bool
	status     string
	markers    map[host.Handle]host.Marker
	nextHandle host.Handle

	styles styleSet
	evCh   chan keyEvent
}

type styleSet struct {
	text      tcell.Style
	label     tcell.Style
	remainder tcell.Style
	cursor    tcell.Style
	status    tcell.Style
}

func newStyleSet(cfg *config.Config) styleSet {
	return styleSet{
		text:      tcell.StyleDefault,
		label:     tcell.StyleDefault.Foreground(tcell.GetColor(cfg.Style.Label)).Bold(true),
		remainder: tcell.StyleDefault.Foreground(tcell.GetColor(cfg.Style.Remainder)),
		cursor:    tcell.StyleDefault.Foreground(tcell.GetColor(cfg.Style.Cursor)).Reverse(true),
		status:    tcell.StyleDefault.Reverse(true),
	}
}

// New creates a viewer for lines. Call Init before Run.
func New(lines []string, cfg *config.Config) *Viewer {
	if cfg == nil {
		cfg = config.New()
	}
	return &Viewer{
		lines:   lines,
		markers: make(map[host.Handle]host.Marker),
		styles:  newStyleSet(cfg),
		evCh:    make(chan keyEvent, 16),
	}
}

// Init sets up the terminal screen and starts the event pump.
func (v *Viewer) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "failed to create tcell screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize tcell screen")
	}
	v.initWithScreen(screen)
	return nil
}

// initWithScreen wires an already-initialized screen. Split out so
// tests can inject a simulation screen.
func (v *Viewer) initWithScreen(screen tcell.Screen) {
	v.mutex.Lock()
	v.screen = screen
	v.mutex.Unlock()
	go v.pollEvents()
}

// pollEvents pumps tcell events into evCh. Polling runs in its own
// goroutine so the main loop can select on a channel instead of being
// stuck inside tcell.
func (v *Viewer) pollEvents() {
	defer func() { _ = recover() }()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			close(v.evCh)
			return
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			ke := keyEvent{key: e.Key()}
			switch {
			case e.Key() == tcell.KeyRune:
				ke.r = e.Rune()
			case e.Key() == tcell.KeyEscape:
				ke.r = host.KeyEscape
			}
			v.evCh <- ke
		case *tcell.EventResize:
			v.screen.Sync()
			v.evCh <- keyEvent{key: tcell.KeyNUL}
		}
	}
}

// Close shuts the terminal down.
func (v *Viewer) Close() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.screen != nil {
		v.screen.Fini()
		v.screen = nil
	}
}

// Run is the viewer's main loop. f and F trigger forward/backward
// jumps, ; and , repeat the last jump (same / opposite direction),
// h j k l and the arrow keys move, q quits.
func (v *Viewer) Run(ctx context.Context, jumper Jumper) error {
	for {
		v.draw()

		var ev keyEvent
		select {
		case <-ctx.Done():
			jumper.Cancel(ctx)
			return ctx.Err()
		case e, ok := <-v.evCh:
			if !ok {
				return nil
			}
			ev = e
		}

		var err error
		switch {
		case ev.r == 'q':
			return nil
		case ev.r == 'f':
			err = jumper.Forward(ctx)
		case ev.r == 'F':
			err = jumper.Backward(ctx)
		case ev.r == ';':
			err = jumper.Repeat(ctx)
		case ev.r == ',':
			err = jumper.RepeatOpposite(ctx)
		case ev.r == 'h' || ev.key == tcell.KeyLeft:
			v.moveCursorBy(0, -1)
		case ev.r == 'l' || ev.key == tcell.KeyRight:
			v.moveCursorBy(0, 1)
		case ev.r == 'j' || ev.key == tcell.KeyDown:
			v.moveCursorBy(1, 0)
		case ev.r == 'k' || ev.key == tcell.KeyUp:
			v.moveCursorBy(-1, 0)
		case ev.r == 'g':
			v.moveCursorTo(0, 0)
		case ev.r == 'G':
			v.moveCursorTo(len(v.lines)-1, 0)
		}
		if err != nil {
			v.setStatus(err.Error())
		}
	}
}

func (v *Viewer) setStatus(msg string) {
	v.mutex.Lock()
	v.status = msg
	v.mutex.Unlock()
}

// height returns how many text rows fit above the status line.
func (v *Viewer) height() int {
	_, h := v.screen.Size()
	if h < 1 {
		return 0
	}
	return h - 1
}

func (v *Viewer) moveCursorBy(dl, dc int) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.placeCursor(v.curLine+dl, v.curChar+dc)
}

func (v *Viewer) moveCursorTo(line, char int) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.placeCursor(line, char)
}

// placeCursor clamps and stores the cursor, scrolling to keep it
// visible. Caller holds the mutex.
func (v *Viewer) placeCursor(line, char int) {
	if line < 0 {
		line = 0
	}
	if line >= len(v.lines) {
		line = len(v.lines) - 1
	}
	if line < 0 {
		return
	}
	max := len([]rune(v.lines[line])) - 1
	if max < 0 {
		max = 0
	}
	if char < 0 {
		char = 0
	}
	if char > max {
		char = max
	}
	v.curLine = line
	v.curChar = char

	h := v.height()
	if h <= 0 {
		return
	}
	if v.curLine < v.top {
		v.top = v.curLine
	}
	if v.curLine >= v.top+h {
		v.top = v.curLine - h + 1
	}
}

// displayColumn returns the screen column of a character offset,
// accounting for double-width runes.
func displayColumn(line string, char int) int {
	w := 0
	for i, r := range []rune(line) {
		if i >= char {
			break
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// draw renders the visible lines, overlays the live markers, and
// paints the status line.
func (v *Viewer) draw() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.screen == nil {
		return
	}
	if pdebug.Enabled {
		g := pdebug.Marker("Viewer.draw")
		defer g.End()
	}

	v.screen.Clear()
	w, _ := v.screen.Size()
	h := v.height()

	// markers indexed by absolute (1-based line, 1-based byte col)
	type cellKey struct{ line, col int }
	overlay := make(map[cellKey]host.Marker, len(v.markers))
	for _, m := range v.markers {
		overlay[cellKey{m.Line, m.Col}] = m
	}

	for row := 0; row < h; row++ {
		li := v.top + row
		if li >= len(v.lines) {
			break
		}
		line := v.lines[li]
		x := 0
		for bi, r := range line {
			if x >= w {
				break
			}
			style := v.styles.text
			glyph := r
			if m, ok := overlay[cellKey{li + 1, bi + 1}]; ok {
				switch m.Class {
				case host.MarkerLabel:
					style = v.styles.label
					if m.Conceal && v.conceal > 0 {
						glyph = m.Glyph
					}
				case host.MarkerRemainder:
					style = v.styles.remainder
					if m.Conceal && v.conceal > 0 {
						glyph = m.Glyph
					}
				case host.MarkerCursor:
					style = v.styles.cursor
				}
			}
			v.screen.SetContent(x, row, glyph, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	v.drawStatus(w, h)
	if v.curLine < len(v.lines) {
		v.screen.ShowCursor(displayColumn(v.lines[v.curLine], v.curChar), v.curLine-v.top)
	}
	v.screen.Show()
}

// drawStatus paints the bottom row. Caller holds the mutex.
func (v *Viewer) drawStatus(w, row int) {
	msg := v.status
	if v.flag {
		msg = "[jump] " + msg
	}
	x := 0
	for _, r := range msg {
		if x >= w {
			break
		}
		v.screen.SetContent(x, row, r, nil, v.styles.status)
		x += runewidth.RuneWidth(r)
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, row, ' ', nil, v.styles.status)
	}
}
