// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/slider.go
// Summary: Horizontal seek slider bound to a slider.Reconciler.
// Usage: Mouse drags on the thumb become gesture sessions; presses elsewhere
// on the track are taps; Left/Right/Home/End nudge when focused.

package widgets

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelslider/slider"
	"github.com/framegrace/texelslider/texelui/core"
)

// mousePointer is the only contact a terminal can report.
const mousePointer slider.PointerID = 0

// Slider draws a one-row track with a thumb. The track is W-1 cells wide so
// the thumb column always fits inside the widget.
type Slider struct {
	core.BaseWidget
	FillStyle  tcell.Style // track before the thumb
	TrackStyle tcell.Style // trailing track
	ThumbStyle tcell.Style
	ThumbRune  rune
	FillRune   rune
	TrackRune  rune

	rec    *slider.Reconciler
	cancel func()

	mu     sync.Mutex
	frame  slider.Frame
	inv    func(core.Rect)
	bounds core.Rect

	// gesture bookkeeping, touched only from the UI goroutine
	dragging  bool
	swallow   bool
	downX     int
	lastDelta float64
}

// NewSlider creates a slider of width w at (x, y) driving rec. The
// reconciler's track width is resized to match the widget.
func NewSlider(x, y, w int, rec *slider.Reconciler) *Slider {
	s := &Slider{
		FillStyle:  tcell.StyleDefault.Foreground(tcell.NewHexColor(0xff0066)),
		TrackStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		ThumbStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		ThumbRune:  '●',
		FillRune:   '━',
		TrackRune:  '─',
		rec:        rec,
	}
	s.SetFocusable(true)
	s.SetPosition(x, y)
	s.frame = rec.Snapshot()
	s.cancel = rec.Subscribe(s.onFrame)
	s.Resize(w, 1)
	return s
}

// Close detaches the widget from its reconciler.
func (s *Slider) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Slider) SetInvalidator(fn func(core.Rect)) {
	s.mu.Lock()
	s.inv = fn
	s.mu.Unlock()
}

func (s *Slider) onFrame(f slider.Frame) {
	s.mu.Lock()
	if f.Seq <= s.frame.Seq {
		s.mu.Unlock()
		return
	}
	s.frame = f
	inv := s.inv
	r := s.bounds
	s.mu.Unlock()
	if inv != nil {
		inv(r)
	}
}

// Frame returns the last frame received from the reconciler.
func (s *Slider) Frame() slider.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Slider) SetPosition(x, y int) {
	s.BaseWidget.SetPosition(x, y)
	s.mu.Lock()
	s.bounds = s.Rect
	s.mu.Unlock()
}

// Resize keeps the reconciler's track width in step with the widget.
func (s *Slider) Resize(w, h int) {
	s.BaseWidget.Resize(w, h)
	s.mu.Lock()
	s.bounds = s.Rect
	s.mu.Unlock()
	// Widths of one cell or less leave no track; the reconciler keeps its
	// last geometry. Rejections are logged by the reconciler.
	if w > 1 {
		_ = s.rec.Resize(float64(w - 1))
	}
}

// ThumbColumn returns the absolute column of the thumb.
func (s *Slider) ThumbColumn() int {
	f := s.Frame()
	col := int(math.Round(f.ThumbX))
	if col > s.Rect.W-1 {
		col = s.Rect.W - 1
	}
	if col < 0 {
		col = 0
	}
	return s.Rect.X + col
}

func (s *Slider) Draw(p *core.Painter) {
	if s.Rect.W <= 0 || s.Rect.H <= 0 {
		return
	}
	f := s.Frame()
	y := s.Rect.Y + s.Rect.H/2
	thumb := s.ThumbColumn()
	trailing := int(math.Round(f.TrailingWidth))
	last := s.Rect.X + s.Rect.W - 1

	for x := s.Rect.X; x <= last; x++ {
		switch {
		case x == thumb:
			continue
		case x > last-trailing:
			p.SetCell(x, y, s.TrackRune, s.TrackStyle)
		default:
			p.SetCell(x, y, s.FillRune, s.FillStyle)
		}
	}

	style := s.ThumbStyle
	if f.Dragging {
		style = style.Reverse(true)
	} else if s.IsFocused() {
		style = style.Underline(true)
	}
	p.SetCell(thumb, y, s.ThumbRune, style)
}

// HandleMouse maps Button1 press/motion/release to gesture events. The
// UIManager forwards every event until release once a press lands here.
func (s *Slider) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	if s.dragging {
		s.lastDelta = float64(x - s.downX)
		if down {
			s.rec.Move(mousePointer, s.lastDelta)
		} else {
			s.rec.Up(mousePointer, s.lastDelta)
			s.dragging = false
		}
		return true
	}
	if s.swallow {
		if !down {
			s.swallow = false
		}
		return true
	}
	if !down || !s.HitTest(x, y) {
		return false
	}

	if abs(x-s.ThumbColumn()) <= 1 {
		if s.rec.Down(mousePointer) {
			s.dragging = true
			s.downX = x
			s.lastDelta = 0
		}
		return true
	}
	s.rec.Tap(float64(x - s.Rect.X))
	s.swallow = true
	return true
}

// CancelCapture ends an interrupted drag. The session still commits.
func (s *Slider) CancelCapture() {
	s.swallow = false
	if !s.dragging {
		return
	}
	s.dragging = false
	s.rec.Cancel(mousePointer, s.lastDelta)
}

func (s *Slider) Blur() {
	s.CancelCapture()
	s.BaseWidget.Blur()
}

// HandleKey steps the position by one unit, or jumps to an end.
func (s *Slider) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		s.rec.Step(-1)
	case tcell.KeyRight:
		s.rec.Step(1)
	case tcell.KeyHome:
		s.rec.Step(-s.rec.Total())
	case tcell.KeyEnd:
		s.rec.Step(s.rec.Total())
	default:
		return false
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
