// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/timer/timer.go
// Summary: Playback timer driving a seek slider.
// Usage: Advances the position once per interval until the end, and adopts
// whatever position the user commits on the slider.

package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/framegrace/texelslider/config"
	"github.com/framegrace/texelslider/slider"
	"github.com/framegrace/texelslider/texel"
	"github.com/framegrace/texelslider/texelui/adapter"
	"github.com/framegrace/texelslider/texelui/widgets"
)

// placeholderTrack is the track width used until the first Resize.
const placeholderTrack = 100

// timerApp is unexported to hide implementation details.
type timerApp struct {
	*adapter.UIApp

	settings config.SliderSettings
	log      *zap.Logger
	rec      *slider.Reconciler

	bg     *widgets.Pane
	title  *widgets.Label
	status *widgets.Label
	frame  *widgets.Border
	bar    *widgets.Slider
	pause  *widgets.Checkbox

	mu       sync.Mutex
	position int
	paused   bool
}

// New builds the timer app. Invalid slider geometry is reported here rather
// than at render time.
func New(settings config.SliderSettings, log *zap.Logger) (texel.App, error) {
	return newTimerApp(settings, log)
}

func newTimerApp(settings config.SliderSettings, log *zap.Logger) (*timerApp, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if settings.Interval <= 0 {
		settings.Interval = time.Second
	}
	if settings.Orientation == config.Vertical {
		log.Warn("vertical orientation is not supported, rendering horizontally")
	}
	a := &timerApp{
		settings: settings,
		log:      log.Named("timer"),
		position: settings.CurrentPosition,
	}

	width := float64(placeholderTrack)
	if settings.TrackWidth > 1 {
		width = float64(settings.TrackWidth - 1)
	}
	rec, err := slider.New(slider.Config{
		Current:    settings.CurrentPosition,
		Total:      settings.TotalDuration,
		TrackWidth: width,
	}, slider.WithLogger(log), slider.WithCommitHandler(a.onCommit))
	if err != nil {
		return nil, fmt.Errorf("timer: %w", err)
	}
	a.rec = rec
	a.position = rec.Committed()

	a.title = widgets.NewLabel(0, 0, 0, 1, "texelslider")
	a.title.Align = widgets.AlignCenter
	a.status = widgets.NewLabel(0, 0, 0, 1, a.statusText())
	a.status.Align = widgets.AlignCenter

	a.bar = widgets.NewSlider(0, 0, placeholderTrack+1, rec)
	if c := tcell.GetColor(settings.PrimaryColor); c != tcell.ColorDefault {
		a.bar.FillStyle = a.bar.FillStyle.Foreground(c)
	}
	if c := tcell.GetColor(settings.SecondaryColor); c != tcell.ColorDefault {
		a.bar.TrackStyle = a.bar.TrackStyle.Foreground(c)
		a.bar.ThumbStyle = a.bar.ThumbStyle.Foreground(c)
	}
	if settings.ThumbRune != 0 {
		a.bar.ThumbRune = settings.ThumbRune
	}

	a.frame = widgets.NewBorder(0, 0, 0, 0, a.bar.TrackStyle)
	a.frame.Title = "seek"

	a.pause = widgets.NewCheckbox(0, 0, "Pause")
	a.pause.OnChange = a.setPaused

	a.UIApp = adapter.NewUIApp("Timer", nil)
	ui := a.UI()
	a.bg = widgets.NewPane(0, 0, 0, 0, tcell.StyleDefault.Background(tcell.ColorBlack))
	ui.AddWidget(a.bg)
	ui.AddWidget(a.title)
	ui.AddWidget(a.status)
	ui.AddWidget(a.frame)
	ui.AddWidget(a.bar)
	ui.AddWidget(a.pause)
	ui.Focus(a.bar)
	a.OnResize(a.layout)
	return a, nil
}

// layout centres the widgets vertically with a two-cell side margin.
func (a *timerApp) layout(w, h int) {
	mid := h / 2
	trackW := w - 4
	if a.settings.TrackWidth > 1 && a.settings.TrackWidth < trackW {
		trackW = a.settings.TrackWidth
	}
	left := (w - trackW) / 2

	a.bg.Resize(w, h)
	a.title.SetPosition(0, 0)
	a.title.Resize(w, 1)
	a.status.SetPosition(0, mid-2)
	a.status.Resize(w, 1)
	a.bar.SetPosition(left, mid)
	if trackW > 1 {
		a.bar.Resize(trackW, 1)
	}
	a.frame.Surround(a.bar.Rect)
	a.pause.SetPosition(left, mid+2)
}

// Run ticks until Stop, advancing the position like a playback clock.
func (a *timerApp) Run() error {
	ticker := time.NewTicker(a.settings.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.tick()
		case <-a.Done():
			return nil
		}
	}
}

// tick advances the position by one unit unless paused or at the end. The
// push is dropped by the slider while the user is dragging.
//
// Positions are pushed while a.mu is held, so a commit can never be followed
// by a push of the value it replaced. PushExternal does not call back into
// the timer.
func (a *timerApp) tick() {
	a.mu.Lock()
	if a.paused || a.position >= a.settings.TotalDuration {
		a.mu.Unlock()
		return
	}
	a.position++
	pos := a.position
	shown := a.rec.PushExternal(pos)
	a.mu.Unlock()

	if !shown {
		a.log.Debug("tick not shown, slider is being dragged", zap.Int("position", pos))
	}
	a.UI().InvalidateAll()
}

// onCommit adopts a user-committed position, then pushes it back so the
// slider snaps to the exact unit.
func (a *timerApp) onCommit(position int) {
	a.mu.Lock()
	a.position = position
	a.rec.PushExternal(position)
	a.mu.Unlock()

	a.log.Info("position committed", zap.Int("position", position))
	a.UI().InvalidateAll()
}

func (a *timerApp) setPaused(paused bool) {
	a.mu.Lock()
	a.paused = paused
	a.mu.Unlock()
	a.UI().InvalidateAll()
}

// Render refreshes the status line from the current position first, so it
// always matches the timer however ticks and commits interleave.
func (a *timerApp) Render() [][]texel.Cell {
	a.status.SetText(a.statusText())
	return a.UIApp.Render()
}

// Position returns the timer's current position.
func (a *timerApp) Position() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

func (a *timerApp) statusText() string {
	a.mu.Lock()
	pos, paused := a.position, a.paused
	a.mu.Unlock()
	text := fmt.Sprintf("%s / %s", formatClock(pos), formatClock(a.settings.TotalDuration))
	if paused {
		text += "  (paused)"
	}
	return text
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (a *timerApp) GetTitle() string {
	return "Timer"
}
