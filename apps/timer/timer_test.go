package timer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/framegrace/texelslider/config"
	"github.com/framegrace/texelslider/slider"
)

func settings() config.SliderSettings {
	return config.SliderSettings{
		TotalDuration: 30,
		Interval:      time.Second,
		TrackWidth:    301, // 300 cell track: one unit is ten cells
		Orientation:   config.Horizontal,
		PrimaryColor:  "#ff0066",
		ThumbRune:     '●',
	}
}

func newApp(t *testing.T, s config.SliderSettings) *timerApp {
	t.Helper()
	app, err := newTimerApp(s, nil)
	if err != nil {
		t.Fatalf("newTimerApp: %v", err)
	}
	app.Resize(400, 9)
	return app
}

func mouse(a *timerApp, x, y int, b tcell.ButtonMask) {
	a.HandleMouse(tcell.NewEventMouse(x, y, b, 0))
}

func TestTimerRenderDimensions(t *testing.T) {
	app := newApp(t, settings())
	buf := app.Render()
	if len(buf) != 9 || len(buf[0]) != 400 {
		t.Fatalf("unexpected buffer dimensions: %dx%d", len(buf), len(buf[0]))
	}
	if got := app.bar.ThumbColumn(); buf[4][got].Ch != '●' {
		t.Fatalf("expected thumb at column %d, got %q", got, buf[4][got].Ch)
	}
	if buf[3][48].Ch != '┌' || buf[5][350].Ch != '┘' {
		t.Fatalf("track frame misplaced: %q %q", buf[3][48].Ch, buf[5][350].Ch)
	}
	app.Stop()
}

func TestTimerRejectsInvalidDuration(t *testing.T) {
	s := settings()
	s.TotalDuration = 0
	if _, err := New(s, nil); !errors.Is(err, slider.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestTickAdvancesUntilTotal(t *testing.T) {
	s := settings()
	s.CurrentPosition = 28
	app := newApp(t, s)
	for i := 0; i < 5; i++ {
		app.tick()
	}
	if got := app.Position(); got != 30 {
		t.Fatalf("expected timer to stop at 30, got %d", got)
	}
	if got := app.rec.Snapshot().ThumbX; got != 300 {
		t.Fatalf("expected thumb at the end, got %v", got)
	}
	app.Render()
	if got := app.status.Text(); got != "00:30 / 00:30" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestDragScenarioThroughApp(t *testing.T) {
	s := settings()
	s.CurrentPosition = 4
	app := newApp(t, s)
	app.tick()
	if got := app.rec.Snapshot().ThumbX; got != 50 {
		t.Fatalf("expected pixel 50 after tick, got %v", got)
	}

	thumb := app.bar.ThumbColumn()
	row := 4
	mouse(app, thumb, row, tcell.Button1)
	mouse(app, thumb+125, row, tcell.Button1)
	if got := app.rec.Snapshot().ThumbX; got != 175 {
		t.Fatalf("expected live pixel 175, got %v", got)
	}

	// Ticks keep counting but the thumb stays with the pointer.
	app.tick()
	app.tick()
	if got := app.rec.Snapshot().ThumbX; got != 175 {
		t.Fatalf("tick moved the thumb during drag: %v", got)
	}

	mouse(app, thumb+125, row, tcell.ButtonNone)
	if got := app.Position(); got != 18 {
		t.Fatalf("expected timer to adopt 18, got %d", got)
	}
	if got := app.rec.Snapshot().ThumbX; got != 180 {
		t.Fatalf("expected thumb snapped to 180, got %v", got)
	}

	app.tick()
	if got := app.Position(); got != 19 {
		t.Fatalf("expected ticking to resume from 18, got %d", got)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	app := newApp(t, settings())
	app.pause.Toggle()
	app.tick()
	if got := app.Position(); got != 0 {
		t.Fatalf("paused timer advanced to %d", got)
	}
	app.Render()
	if got := app.status.Text(); got != "00:00 / 00:30  (paused)" {
		t.Fatalf("unexpected status %q", got)
	}
	app.pause.Toggle()
	app.tick()
	if got := app.Position(); got != 1 {
		t.Fatalf("expected resume to 1, got %d", got)
	}
}

func TestStopCancelsActiveDrag(t *testing.T) {
	app := newApp(t, settings())
	thumb := app.bar.ThumbColumn()
	mouse(app, thumb, 4, tcell.Button1)
	mouse(app, thumb+42, 4, tcell.Button1)
	app.Stop()
	if app.rec.Dragging() {
		t.Fatalf("stop left the drag active")
	}
	if got := app.Position(); got != 4 {
		t.Fatalf("expected cancelled drag to commit 4, got %d", got)
	}
}

func TestVerticalOrientationWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := settings()
	s.Orientation = config.Vertical
	if _, err := newTimerApp(s, zap.New(core)); err != nil {
		t.Fatalf("newTimerApp: %v", err)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestRunStopsOnStop(t *testing.T) {
	s := settings()
	s.Interval = 5 * time.Millisecond
	app := newApp(t, s)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	deadline := time.After(2 * time.Second)
	for app.Position() == 0 {
		select {
		case <-deadline:
			t.Fatalf("timer never ticked")
		case <-time.After(5 * time.Millisecond):
		}
	}
	app.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Stop")
	}
}

func TestCommitDuringTickIsNotUndone(t *testing.T) {
	s := settings()
	s.CurrentPosition = 4
	app := newApp(t, s)

	blocked := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	app.rec.Subscribe(func(f slider.Frame) {
		if f.Logical != 5 {
			return
		}
		once.Do(func() {
			close(blocked)
			<-release
		})
	})

	ticked := make(chan struct{})
	go func() {
		app.tick()
		close(ticked)
	}()
	<-blocked

	tapped := make(chan struct{})
	go func() {
		app.rec.Tap(180)
		close(tapped)
	}()
	deadline := time.Now().Add(time.Second)
	for app.rec.Committed() != 18 {
		if time.Now().After(deadline) {
			t.Fatalf("tap never committed")
		}
		time.Sleep(time.Millisecond)
	}
	close(release)
	<-ticked
	<-tapped

	if got, committed := app.Position(), app.rec.Committed(); got != 18 || committed != 18 {
		t.Fatalf("timer and slider diverged: timer=%d slider=%d", got, committed)
	}
	if got := app.rec.Snapshot().ThumbX; got != 180 {
		t.Fatalf("expected thumb at 180, got %v", got)
	}
	app.Render()
	if got := app.status.Text(); got != "00:18 / 00:30" {
		t.Fatalf("status out of step with timer: %q", got)
	}
}
