// Package charhop implements single-character jump navigation: the
// user triggers a jump, types a character, every visible occurrence of
// that character gets a one-key label, and pressing a label key moves
// the cursor there. The package drives the whole interaction as an
// explicit session state machine against an abstract editor host.
package charhop

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/charhop/charhop/config"
	"github.com/charhop/charhop/host"
)

type traceLogger interface {
	Printf(string, ...interface{})
}
type nullTraceLogger struct{}

func (ntl nullTraceLogger) Printf(_ string, _ ...interface{}) {}

var tracer traceLogger = nullTraceLogger{}

func init() {
	if v, err := strconv.ParseBool(os.Getenv("CHARHOP_TRACE")); err == nil && v {
		tracer = log.New(os.Stderr, "charhop: ", log.LstdFlags)
		tracer.Printf("==== INITIALIZED tracer ====")
	}
}

// CharHop is the long-lived coordinator. It owns the configuration,
// the host connection, the single active-session slot, and the last
// search so that repeat entry points can reuse it. All per-invocation
// state lives in the Session, never here.
type CharHop struct {
	mutex  sync.Mutex
	host   host.Host
	config *config.Config

	active   *Session
	lastChar rune
	lastDir  Direction
}

// New creates a CharHop talking to h. A nil cfg uses the defaults.
func New(h host.Host, cfg *config.Config) *CharHop {
	if cfg == nil {
		cfg = config.New()
	}
	return &CharHop{
		host:   h,
		config: cfg,
	}
}

// Forward starts a jump below/after the cursor. It prompts the host
// for the search character.
func (c *CharHop) Forward(ctx context.Context) error {
	return c.jump(ctx, Forward, 0)
}

// Backward starts a jump above/before the cursor. It prompts the host
// for the search character.
func (c *CharHop) Backward(ctx context.Context) error {
	return c.jump(ctx, Backward, 0)
}

// Repeat re-runs the previous jump with the same character and
// direction. Without a previous jump it does nothing.
func (c *CharHop) Repeat(ctx context.Context) error {
	ch, dir, ok := c.last()
	if !ok {
		return nil
	}
	return c.jump(ctx, dir, ch)
}

// RepeatOpposite re-runs the previous jump with the same character in
// the opposite direction. Without a previous jump it does nothing.
func (c *CharHop) RepeatOpposite(ctx context.Context) error {
	ch, dir, ok := c.last()
	if !ok {
		return nil
	}
	return c.jump(ctx, dir.Opposite(), ch)
}

// Cancel tears down the active session's visual state, if any. It is
// idempotent and safe to call when no session is active.
func (c *CharHop) Cancel(ctx context.Context) {
	c.mutex.Lock()
	s := c.active
	c.active = nil
	c.mutex.Unlock()

	if s == nil {
		return
	}
	tracer.Printf("cancelling active session")
	s.cancel(ctx)
}

// Active reports whether a session is currently live.
func (c *CharHop) Active() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.active != nil
}

func (c *CharHop) last() (rune, Direction, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.lastChar == 0 {
		return 0, Forward, false
	}
	return c.lastChar, c.lastDir, true
}

func (c *CharHop) setLast(ch rune, dir Direction) {
	c.mutex.Lock()
	c.lastChar = ch
	c.lastDir = dir
	c.mutex.Unlock()
}

func (c *CharHop) setActive(s *Session) {
	c.mutex.Lock()
	c.active = s
	c.mutex.Unlock()
}

func (c *CharHop) clearActive(s *Session) {
	c.mutex.Lock()
	if c.active == s {
		c.active = nil
	}
	c.mutex.Unlock()
}

// jump runs session instances until one resolves without requesting a
// rescan. A rescan happens when the user presses RepeatGlyph with
// overflow candidates pending: the cursor has moved to the first
// remainder position and the whole jump re-runs from there as a fresh
// session, reusing the search character and direction.
func (c *CharHop) jump(ctx context.Context, dir Direction, ch rune) error {
	// a new invocation supersedes whatever is in flight
	c.Cancel(ctx)

	for {
		s := newSession(c.host, c.config, dir, ch)
		c.setActive(s)
		again, err := s.run(ctx)
		c.clearActive(s)

		if s.searchChar != 0 {
			c.setLast(s.searchChar, dir)
		}
		if err != nil || !again {
			return err
		}
		ch = s.searchChar
	}
}
