package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelslider/texel"
)

// UIManager owns a flat, z-ordered widget list and composes it to a buffer.
// It routes keys to the focused widget and gives the widget under a press
// exclusive mouse capture until release, so only one contact is ever live.
type UIManager struct {
	mu       sync.Mutex // protects widgets, focus, capture, buffer
	dirtyMu  sync.Mutex // protects dirty flag and notifier
	W, H     int
	widgets  []Widget // later entries draw on top
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	capture  Widget
	buf      [][]texel.Cell
	dirty    bool
}

func NewUIManager() *UIManager {
	return &UIManager{
		bgStyle: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	}
}

// SetBackground sets the style used to clear the surface.
func (u *UIManager) SetBackground(style tcell.Style) {
	u.mu.Lock()
	u.bgStyle = style
	u.mu.Unlock()
	u.InvalidateAll()
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

func (u *UIManager) RequestRefresh() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.requestRefreshLocked()
}

// Resize changes the surface size. A resize interrupts any capture in
// progress.
func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
	captured := u.releaseCaptureLocked()
	u.mu.Unlock()

	if captured != nil {
		captured.CancelCapture()
	}
	u.InvalidateAll()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	u.widgets = append(u.widgets, w)
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	u.mu.Unlock()
	u.InvalidateAll()
}

func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	captured := u.focusLocked(w)
	u.mu.Unlock()
	if captured != nil {
		captured.CancelCapture()
	}
}

// Focused returns the focused widget, or nil.
func (u *UIManager) Focused() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.focused
}

func (u *UIManager) focusLocked(w Widget) CaptureCanceller {
	if w == nil || !w.Focusable() || u.focused == w {
		return nil
	}
	var captured CaptureCanceller
	if u.capture != nil && u.capture != w {
		captured = u.releaseCaptureLocked()
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
	return captured
}

// CancelCapture drops the active mouse capture, if any, telling the widget
// its gesture was interrupted.
func (u *UIManager) CancelCapture() {
	u.mu.Lock()
	captured := u.releaseCaptureLocked()
	u.mu.Unlock()
	if captured != nil {
		captured.CancelCapture()
		u.InvalidateAll()
	}
}

func (u *UIManager) releaseCaptureLocked() CaptureCanceller {
	w := u.capture
	u.capture = nil
	if cc, ok := w.(CaptureCanceller); ok {
		return cc
	}
	return nil
}

func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	if u.focused != nil && u.focused.HandleKey(ev) {
		u.mu.Unlock()
		u.InvalidateAll()
		return true
	}

	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		captured, moved := u.cycleFocusLocked(forward)
		u.mu.Unlock()
		if captured != nil {
			captured.CancelCapture()
		}
		if moved {
			u.InvalidateAll()
		}
		return moved
	}
	u.mu.Unlock()
	return false
}

func (u *UIManager) cycleFocusLocked(forward bool) (CaptureCanceller, bool) {
	var focusable []Widget
	cur := -1
	for _, w := range u.widgets {
		if !w.Focusable() {
			continue
		}
		if w == u.focused {
			cur = len(focusable)
		}
		focusable = append(focusable, w)
	}
	if len(focusable) == 0 {
		return nil, false
	}
	next := 0
	switch {
	case cur < 0 && !forward:
		next = len(focusable) - 1
	case cur >= 0 && forward:
		next = (cur + 1) % len(focusable)
	case cur >= 0:
		next = (cur - 1 + len(focusable)) % len(focusable)
	}
	if focusable[next] == u.focused {
		return nil, false
	}
	return u.focusLocked(focusable[next]), true
}

// HandleMouse routes mouse events for click-to-focus and capture drags.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	prevIsDown := u.capture != nil
	nowDown := buttons&tcell.Button1 != 0

	// Start capture on press over a widget
	if !prevIsDown && nowDown {
		w := u.topmostAtLocked(x, y)
		if w == nil {
			u.mu.Unlock()
			return false
		}
		u.focusLocked(w)
		u.capture = w
		if mw, ok := w.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		u.mu.Unlock()
		u.InvalidateAll()
		return true
	}

	// While captured, forward all mouse events
	if u.capture != nil {
		if mw, ok := u.capture.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		if !nowDown {
			u.capture = nil
		}
		u.mu.Unlock()
		u.InvalidateAll()
		return true
	}

	// Wheel and hover go to the widget under the cursor
	handled := false
	if w := u.topmostAtLocked(x, y); w != nil {
		if mw, ok := w.(MouseAware); ok {
			handled = mw.HandleMouse(ev)
		}
	}
	u.mu.Unlock()
	if handled {
		u.InvalidateAll()
	}
	return handled
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if u.widgets[i].HitTest(x, y) {
			return u.widgets[i]
		}
	}
	return nil
}

// Invalidate marks a region for redraw. The whole surface is recomposed on
// the next Render, so the region only matters for emptiness.
func (u *UIManager) Invalidate(r Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	u.InvalidateAll()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.dirty = true
	u.requestRefreshLocked()
}

// Internal helper - assumes dirtyMu is held
func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

// Render recomposes the surface when dirty and returns the framebuffer.
func (u *UIManager) Render() [][]texel.Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.dirtyMu.Lock()
	dirty := u.dirty
	u.dirty = false
	u.dirtyMu.Unlock()

	if u.buf == nil || len(u.buf) != u.H || (u.H > 0 && len(u.buf[0]) != u.W) {
		u.buf = texel.NewBuffer(u.W, u.H, u.bgStyle)
		dirty = true
	}
	if !dirty {
		return u.buf
	}

	full := Rect{X: 0, Y: 0, W: u.W, H: u.H}
	p := NewPainter(u.buf, full)
	p.Fill(full, ' ', u.bgStyle)
	for _, w := range u.widgets {
		w.Draw(p)
	}
	return u.buf
}
