package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/charhop/charhop/host"
)

// The Viewer is the editor side of the host boundary. All positions
// exchanged here are 1-based with byte columns, per the host contract.

func (v *Viewer) Cursor(_ context.Context) (host.Position, error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return host.Position{
		Line: v.curLine + 1,
		Col:  host.ByteColumn(v.lines[v.curLine], v.curChar),
	}, nil
}

func (v *Viewer) ViewportTop(_ context.Context) (int, error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.top + 1, nil
}

func (v *Viewer) CurrentLine(_ context.Context) (string, error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.lines[v.curLine], nil
}

func (v *Viewer) VisibleLines(_ context.Context) ([]string, error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	end := v.top + v.height()
	if end > len(v.lines) {
		end = len(v.lines)
	}
	return v.lines[v.top:end], nil
}

func (v *Viewer) SetConcealLevel(_ context.Context, level int) error {
	v.mutex.Lock()
	v.conceal = level
	v.mutex.Unlock()
	return nil
}

// ReadKey waits for the next key from the event pump. Injected keys
// from SendKey travel through the same channel, which is what lets a
// timed-out session unblock this call.
func (v *Viewer) ReadKey(ctx context.Context) (rune, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case ev, ok := <-v.evCh:
			if !ok {
				return 0, context.Canceled
			}
			if ev.r == 0 && ev.key == tcell.KeyNUL {
				// resize tick, not input
				continue
			}
			if ev.r != 0 {
				return ev.r, nil
			}
			// non-rune keys cancel the pending capture
			return host.KeyEscape, nil
		}
	}
}

func (v *Viewer) SendKey(r rune) {
	select {
	case v.evCh <- keyEvent{r: r}:
	default:
	}
}

func (v *Viewer) MoveCursor(_ context.Context, p host.Position) error {
	v.mutex.Lock()
	line := p.Line - 1
	if line < 0 || line >= len(v.lines) {
		v.mutex.Unlock()
		return nil
	}
	v.placeCursor(line, host.CharOffset(v.lines[line], p.Col))
	v.mutex.Unlock()
	v.draw()
	return nil
}

func (v *Viewer) CreateMarkers(_ context.Context, markers []host.Marker) ([]host.Handle, error) {
	v.mutex.Lock()
	handles := make([]host.Handle, len(markers))
	for i, m := range markers {
		v.nextHandle++
		v.markers[v.nextHandle] = m
		handles[i] = v.nextHandle
	}
	v.mutex.Unlock()
	v.draw()
	return handles, nil
}

func (v *Viewer) ClearMarkers(_ context.Context, handles []host.Handle) error {
	v.mutex.Lock()
	for _, h := range handles {
		delete(v.markers, h)
	}
	v.mutex.Unlock()
	v.draw()
	return nil
}

func (v *Viewer) NotifyEvent(_ context.Context, name string) {
	v.setStatus(name)
}

func (v *Viewer) SetSessionFlag(_ context.Context, active bool) {
	v.mutex.Lock()
	v.flag = active
	v.mutex.Unlock()
}
