package charhop

import (
	"context"
	"time"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/charhop/charhop/host"
)

type awaitOutcome int

const (
	awaitKey awaitOutcome = iota
	awaitTimedOut
	awaitCancelled
	awaitFailed
)

type readResult struct {
	key rune
	err error
}

// capture starts a single key read in its own goroutine. The returned
// channel is buffered so the goroutine can always complete its send
// even when the caller has already moved on.
func (s *Session) capture(ctx context.Context) <-chan readResult {
	resCh := make(chan readResult, 1)
	go func() {
		key, err := s.host.ReadKey(ctx)
		resCh <- readResult{key: key, err: err}
	}()
	return resCh
}

// readKey blocks for the next key, honoring cancellation but not the
// timeout. It is used while collecting the search character, where the
// host's own input prompt governs how long the user may take. Losing
// arms send a synthetic escape so the host's pending read unblocks,
// then drain the capture result to keep the goroutine from leaking.
func (s *Session) readKey(ctx context.Context) (rune, awaitOutcome, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Session.readKey")
		defer g.End()
	}

	resCh := s.capture(ctx)

	select {
	case r := <-resCh:
		if r.err != nil {
			return 0, awaitFailed, errors.Wrap(r.err, `host call "read-key" failed`)
		}
		return r.key, awaitKey, nil
	case <-s.cancelCh:
		s.host.SendKey(host.KeyEscape)
		<-resCh
		return 0, awaitCancelled, nil
	case <-ctx.Done():
		s.host.SendKey(host.KeyEscape)
		<-resCh
		return 0, awaitFailed, errors.Wrap(ctx.Err(), "input aborted")
	}
}

// await races a single key capture against the configured timeout and
// external cancellation. Exactly one arm of the select wins, so a key
// arriving after the timeout fired can never trigger a second
// resolution. Whenever the capture loses the race, a synthetic escape
// is sent to the host to unblock its pending key read, and the capture
// result is drained so the goroutine cannot leak.
func (s *Session) await(ctx context.Context) (rune, awaitOutcome, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Session.await (timeout=%s)", s.config.TimeoutDuration())
		defer g.End()
	}

	resCh := s.capture(ctx)

	timer := time.NewTimer(s.config.TimeoutDuration())
	defer timer.Stop()

	select {
	case r := <-resCh:
		if r.err != nil {
			return 0, awaitFailed, errors.Wrap(r.err, `host call "read-key" failed`)
		}
		return r.key, awaitKey, nil
	case <-timer.C:
		s.host.SendKey(host.KeyEscape)
		<-resCh
		return 0, awaitTimedOut, nil
	case <-s.cancelCh:
		s.host.SendKey(host.KeyEscape)
		<-resCh
		return 0, awaitCancelled, nil
	case <-ctx.Done():
		s.host.SendKey(host.KeyEscape)
		<-resCh
		return 0, awaitFailed, errors.Wrap(ctx.Err(), "selection aborted")
	}
}
