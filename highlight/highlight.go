// Package highlight owns the visual side of a jump session: creating
// the label, remainder and cursor markers in one batched host call, and
// tearing them down again in one batched call when the session ends.
package highlight

import (
	"context"
	"sync"

	"github.com/google/btree"
	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/charhop/charhop/host"
)

// markerItem tracks one live marker. Items sort by screen position so
// that clears are issued in deterministic order.
type markerItem struct {
	line   int
	col    int
	handle host.Handle
}

// Less fulfills btree.Item.
func (m markerItem) Less(than btree.Item) bool {
	o := than.(markerItem)
	if m.line != o.line {
		return m.line < o.line
	}
	if m.col != o.col {
		return m.col < o.col
	}
	return m.handle < o.handle
}

// Controller renders and clears the markers of exactly one session.
// Handles returned by the host on creation are the only handles ever
// passed back on clear; once cleared, a controller is empty and may be
// rendered into again, but sessions create a fresh controller instead
// so stale handles can never leak across session boundaries.
type Controller struct {
	host  host.Host
	mutex sync.Mutex
	tree  *btree.BTree
}

// New creates an empty controller talking to h.
func New(h host.Host) *Controller {
	return &Controller{
		host: h,
		tree: btree.New(8),
	}
}

// Render creates all markers in a single batched request, preceded by
// the conceal-level call in the same batch so labels collapse to their
// glyph. Rendering zero markers is a no-op. On failure nothing is
// recorded: a host that errored out of the batch has not returned any
// handles we could clear later.
func (c *Controller) Render(ctx context.Context, concealLevel int, markers []host.Marker) error {
	if len(markers) == 0 {
		return nil
	}
	if pdebug.Enabled {
		g := pdebug.Marker("highlight.Controller.Render (%d markers)", len(markers))
		defer g.End()
	}

	var handles []host.Handle
	b := host.NewBatch(c.host)
	b.SetConcealLevel(concealLevel)
	b.CreateMarkers(markers, &handles)
	if err := b.Flush(ctx); err != nil {
		return err
	}
	if len(handles) != len(markers) {
		return errors.Errorf("host returned %d handles for %d markers", len(handles), len(markers))
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i, m := range markers {
		c.tree.ReplaceOrInsert(markerItem{line: m.Line, col: m.Col, handle: handles[i]})
	}
	return nil
}

// Clear removes every live marker in a single batched request, in
// screen order. Clearing an empty controller is a no-op, which makes
// redundant cancellation safe: the second call finds nothing to do.
func (c *Controller) Clear(ctx context.Context) error {
	c.mutex.Lock()
	var handles []host.Handle
	c.tree.Ascend(func(it btree.Item) bool {
		handles = append(handles, it.(markerItem).handle)
		return true
	})
	c.tree.Clear(false)
	c.mutex.Unlock()

	if len(handles) == 0 {
		return nil
	}
	if err := c.host.ClearMarkers(ctx, handles); err != nil {
		return errors.Wrap(err, "failed to clear markers")
	}
	return nil
}

// Len returns the number of live markers.
func (c *Controller) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.tree.Len()
}
