package host

import (
	"context"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
)

// Batch queues host calls and executes them strictly in queue order.
// Results land in the destination pointers handed to the queueing
// methods, so a caller can issue several reads in one logical
// round-trip and only check a single error:
//
//	var cur Position
//	var lines []string
//	b := NewBatch(h)
//	b.Cursor(&cur)
//	b.VisibleLines(&lines)
//	if err := b.Flush(ctx); err != nil { ... }
//
// Order matters: later calls may depend on host state set by earlier
// ones (conceal level before marker creation, for one), which is why
// the steps are replayed exactly as queued and the first failure
// aborts the rest.
type Batch struct {
	host  Host
	steps []batchStep
}

type batchStep struct {
	name string
	fn   func(ctx context.Context) error
}

// NewBatch creates an empty batch bound to h.
func NewBatch(h Host) *Batch {
	return &Batch{host: h}
}

func (b *Batch) add(name string, fn func(ctx context.Context) error) *Batch {
	b.steps = append(b.steps, batchStep{name: name, fn: fn})
	return b
}

// Cursor queues a cursor read into dst.
func (b *Batch) Cursor(dst *Position) *Batch {
	return b.add("cursor", func(ctx context.Context) error {
		p, err := b.host.Cursor(ctx)
		if err != nil {
			return err
		}
		*dst = p
		return nil
	})
}

// ViewportTop queues a viewport-top read into dst.
func (b *Batch) ViewportTop(dst *int) *Batch {
	return b.add("viewport-top", func(ctx context.Context) error {
		n, err := b.host.ViewportTop(ctx)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	})
}

// CurrentLine queues a current-line read into dst.
func (b *Batch) CurrentLine(dst *string) *Batch {
	return b.add("current-line", func(ctx context.Context) error {
		s, err := b.host.CurrentLine(ctx)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	})
}

// VisibleLines queues a visible-lines read into dst.
func (b *Batch) VisibleLines(dst *[]string) *Batch {
	return b.add("visible-lines", func(ctx context.Context) error {
		lines, err := b.host.VisibleLines(ctx)
		if err != nil {
			return err
		}
		*dst = lines
		return nil
	})
}

// SetConcealLevel queues a conceal-level change.
func (b *Batch) SetConcealLevel(level int) *Batch {
	return b.add("set-conceal-level", func(ctx context.Context) error {
		return b.host.SetConcealLevel(ctx, level)
	})
}

// MoveCursor queues a cursor move to p.
func (b *Batch) MoveCursor(p Position) *Batch {
	return b.add("move-cursor", func(ctx context.Context) error {
		return b.host.MoveCursor(ctx, p)
	})
}

// CreateMarkers queues creation of markers, with the resulting handles
// stored into dst.
func (b *Batch) CreateMarkers(markers []Marker, dst *[]Handle) *Batch {
	return b.add("create-markers", func(ctx context.Context) error {
		handles, err := b.host.CreateMarkers(ctx, markers)
		if err != nil {
			return err
		}
		*dst = handles
		return nil
	})
}

// ClearMarkers queues removal of the given markers.
func (b *Batch) ClearMarkers(handles []Handle) *Batch {
	return b.add("clear-markers", func(ctx context.Context) error {
		return b.host.ClearMarkers(ctx, handles)
	})
}

// Len returns the number of queued steps.
func (b *Batch) Len() int {
	return len(b.steps)
}

// Flush executes every queued step in order. The first error stops the
// batch; the returned error names the failing call. Flush drains the
// queue, so a Batch may be reused afterwards.
func (b *Batch) Flush(ctx context.Context) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Batch.Flush (%d steps)", len(b.steps))
		defer g.End()
	}

	steps := b.steps
	b.steps = nil
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return errors.Wrapf(err, "host call %q failed", s.name)
		}
	}
	return nil
}
