package host_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charhop/charhop/host"
	"github.com/charhop/charhop/internal/mock"
)

func TestBatchOrderAndResults(t *testing.T) {
	ctx := context.Background()
	h := mock.NewHost([]string{"alpha", "beta"}, host.Position{Line: 2, Col: 3})

	var (
		top     int
		cursor  host.Position
		curLine string
		visible []string
	)
	b := host.NewBatch(h)
	b.ViewportTop(&top)
	b.Cursor(&cursor)
	b.CurrentLine(&curLine)
	b.VisibleLines(&visible)
	require.Equal(t, 4, b.Len())
	require.NoError(t, b.Flush(ctx))

	assert.Equal(t, 1, top)
	assert.Equal(t, host.Position{Line: 2, Col: 3}, cursor)
	assert.Equal(t, "beta", curLine)
	assert.Equal(t, []string{"alpha", "beta"}, visible)

	// calls must be replayed exactly as queued
	assert.Equal(t, []string{"ViewportTop", "Cursor", "CurrentLine", "VisibleLines"}, h.Order())

	// Flush drains the queue
	assert.Equal(t, 0, b.Len())
}

func TestBatchStopsAtFirstError(t *testing.T) {
	ctx := context.Background()
	h := mock.NewHost([]string{"alpha"}, host.Position{Line: 1, Col: 1})
	h.FailWith("Cursor", errors.New("boom"))

	var (
		cursor  host.Position
		visible []string
	)
	b := host.NewBatch(h)
	b.Cursor(&cursor)
	b.VisibleLines(&visible)
	err := b.Flush(ctx)
	require.Error(t, err)

	// the error names the failing call and carries the cause
	assert.Contains(t, err.Error(), `host call "cursor" failed`)
	assert.Contains(t, err.Error(), "boom")

	// later steps never ran
	assert.Equal(t, 0, h.Calls("VisibleLines"))
	assert.Nil(t, visible)
}

func TestBatchConcealBeforeMarkers(t *testing.T) {
	ctx := context.Background()
	h := mock.NewHost([]string{"alpha"}, host.Position{Line: 1, Col: 1})

	var handles []host.Handle
	markers := []host.Marker{{Class: host.MarkerLabel, Line: 1, Col: 1, Length: 1, Glyph: 'a', Conceal: true}}
	b := host.NewBatch(h)
	b.SetConcealLevel(2)
	b.CreateMarkers(markers, &handles)
	require.NoError(t, b.Flush(ctx))

	require.Len(t, handles, 1)
	assert.Equal(t, []string{"SetConcealLevel", "CreateMarkers"}, h.Order())
	assert.Equal(t, 2, h.ConcealLevel())
}
