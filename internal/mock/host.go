// Package mock provides a scriptable in-memory host for tests.
package mock

import (
	"context"
	"sync"

	"github.com/charhop/charhop/host"
)

// Host is an in-memory host.Host. Keys are scripted via SendKey (or
// QueueKeys before the jump starts); every call is recorded through
// the embedded Interceptor. Errors can be injected per call name via
// FailWith to exercise the host I/O failure paths.
type Host struct {
	*Interceptor

	mutex      sync.Mutex
	lines      []string
	top        int // 1-based
	height     int
	cursor     host.Position
	conceal    int
	flag       bool
	events     []string
	markers    map[host.Handle]host.Marker
	nextHandle host.Handle
	fail       map[string]error

	keyCh chan rune
}

// NewHost creates a mock host showing lines with the viewport starting
// at line 1 and the cursor at cursor.
func NewHost(lines []string, cursor host.Position) *Host {
	return &Host{
		Interceptor: NewInterceptor(),
		lines:       lines,
		top:         1,
		height:      len(lines),
		cursor:      cursor,
		markers:     make(map[host.Handle]host.Marker),
		fail:        make(map[string]error),
		keyCh:       make(chan rune, 16),
	}
}

// SetViewport narrows the visible region to height lines starting at
// top (1-based).
func (h *Host) SetViewport(top, height int) {
	h.mutex.Lock()
	h.top = top
	h.height = height
	h.mutex.Unlock()
}

// FailWith makes the named call (as recorded by the Interceptor)
// return err.
func (h *Host) FailWith(name string, err error) {
	h.mutex.Lock()
	h.fail[name] = err
	h.mutex.Unlock()
}

// QueueKeys buffers keys to be returned by subsequent ReadKey calls.
func (h *Host) QueueKeys(keys ...rune) {
	for _, k := range keys {
		h.keyCh <- k
	}
}

func (h *Host) failure(name string) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.fail[name]
}

func (h *Host) Cursor(_ context.Context) (host.Position, error) {
	h.Record("Cursor", nil)
	if err := h.failure("Cursor"); err != nil {
		return host.Position{}, err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.cursor, nil
}

func (h *Host) ViewportTop(_ context.Context) (int, error) {
	h.Record("ViewportTop", nil)
	if err := h.failure("ViewportTop"); err != nil {
		return 0, err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.top, nil
}

func (h *Host) CurrentLine(_ context.Context) (string, error) {
	h.Record("CurrentLine", nil)
	if err := h.failure("CurrentLine"); err != nil {
		return "", err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.lines[h.cursor.Line-1], nil
}

func (h *Host) VisibleLines(_ context.Context) ([]string, error) {
	h.Record("VisibleLines", nil)
	if err := h.failure("VisibleLines"); err != nil {
		return nil, err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	end := h.top - 1 + h.height
	if end > len(h.lines) {
		end = len(h.lines)
	}
	return h.lines[h.top-1 : end], nil
}

func (h *Host) SetConcealLevel(_ context.Context, level int) error {
	h.Record("SetConcealLevel", []interface{}{level})
	if err := h.failure("SetConcealLevel"); err != nil {
		return err
	}
	h.mutex.Lock()
	h.conceal = level
	h.mutex.Unlock()
	return nil
}

func (h *Host) ReadKey(ctx context.Context) (rune, error) {
	h.Record("ReadKey", nil)
	if err := h.failure("ReadKey"); err != nil {
		return 0, err
	}
	select {
	case k := <-h.keyCh:
		return k, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (h *Host) SendKey(r rune) {
	h.Record("SendKey", []interface{}{r})
	select {
	case h.keyCh <- r:
	default:
	}
}

func (h *Host) MoveCursor(_ context.Context, p host.Position) error {
	h.Record("MoveCursor", []interface{}{p})
	if err := h.failure("MoveCursor"); err != nil {
		return err
	}
	h.mutex.Lock()
	h.cursor = p
	h.mutex.Unlock()
	return nil
}

func (h *Host) CreateMarkers(_ context.Context, markers []host.Marker) ([]host.Handle, error) {
	h.Record("CreateMarkers", []interface{}{markers})
	if err := h.failure("CreateMarkers"); err != nil {
		return nil, err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	handles := make([]host.Handle, len(markers))
	for i, m := range markers {
		h.nextHandle++
		h.markers[h.nextHandle] = m
		handles[i] = h.nextHandle
	}
	return handles, nil
}

func (h *Host) ClearMarkers(_ context.Context, handles []host.Handle) error {
	h.Record("ClearMarkers", []interface{}{handles})
	if err := h.failure("ClearMarkers"); err != nil {
		return err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, hd := range handles {
		delete(h.markers, hd)
	}
	return nil
}

func (h *Host) NotifyEvent(_ context.Context, name string) {
	h.Record("NotifyEvent", []interface{}{name})
	h.mutex.Lock()
	h.events = append(h.events, name)
	h.mutex.Unlock()
}

func (h *Host) SetSessionFlag(_ context.Context, active bool) {
	h.Record("SetSessionFlag", []interface{}{active})
	h.mutex.Lock()
	h.flag = active
	h.mutex.Unlock()
}

// CursorPos returns the current cursor position.
func (h *Host) CursorPos() host.Position {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.cursor
}

// LiveMarkers returns the markers currently rendered.
func (h *Host) LiveMarkers() []host.Marker {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := make([]host.Marker, 0, len(h.markers))
	for _, m := range h.markers {
		out = append(out, m)
	}
	return out
}

// SessionFlag returns the last value passed to SetSessionFlag.
func (h *Host) SessionFlag() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.flag
}

// EventNames returns every NotifyEvent name in order.
func (h *Host) EventNames() []string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := make([]string, len(h.events))
	copy(out, h.events)
	return out
}

// ConcealLevel returns the last conceal level set.
func (h *Host) ConcealLevel() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.conceal
}
