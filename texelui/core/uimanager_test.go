package core_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelslider/texelui/core"
	"github.com/framegrace/texelslider/texelui/widgets"
)

func TestUIManagerRendersPaneAndLabel(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(20, 5)

	pane := widgets.NewPane(0, 0, 20, 5, tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	ui.AddWidget(pane)
	ui.AddWidget(widgets.NewLabel(1, 1, 0, 1, "hi"))

	buf := ui.Render()
	if len(buf) != 5 || len(buf[0]) != 20 {
		t.Fatalf("unexpected buffer size %dx%d", len(buf[0]), len(buf))
	}
	if buf[1][1].Ch != 'h' || buf[1][2].Ch != 'i' {
		t.Fatalf("label not drawn: %q%q", buf[1][1].Ch, buf[1][2].Ch)
	}
}

type captureWidget struct {
	core.BaseWidget
	events    []tcell.ButtonMask
	cancelled int
}

func (c *captureWidget) Draw(p *core.Painter) {}

func (c *captureWidget) HandleMouse(ev *tcell.EventMouse) bool {
	c.events = append(c.events, ev.Buttons())
	return true
}

func (c *captureWidget) CancelCapture() { c.cancelled++ }

func newCaptureWidget(x, y, w, h int) *captureWidget {
	c := &captureWidget{}
	c.SetPosition(x, y)
	c.Resize(w, h)
	c.SetFocusable(true)
	return c
}

// Events outside a captured widget still reach it until release.
func TestUIManagerCaptureForwardsUntilRelease(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(20, 5)
	a := newCaptureWidget(0, 0, 5, 1)
	b := newCaptureWidget(10, 0, 5, 1)
	ui.AddWidget(a)
	ui.AddWidget(b)

	ui.HandleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(12, 0, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(12, 0, tcell.ButtonNone, 0))

	if len(a.events) != 3 {
		t.Fatalf("expected captured widget to see 3 events, got %d", len(a.events))
	}
	if len(b.events) != 0 {
		t.Fatalf("widget under cursor received events during capture")
	}
	if ui.Focused() != a {
		t.Fatalf("press should focus the captured widget")
	}
	if a.cancelled != 0 {
		t.Fatalf("normal release must not cancel")
	}
}

func TestUIManagerResizeCancelsCapture(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(20, 5)
	a := newCaptureWidget(0, 0, 5, 1)
	ui.AddWidget(a)

	ui.HandleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, 0))
	ui.Resize(30, 5)
	if a.cancelled != 1 {
		t.Fatalf("expected one cancel, got %d", a.cancelled)
	}
	ui.CancelCapture()
	if a.cancelled != 1 {
		t.Fatalf("cancel without capture must be a no-op")
	}
}

func TestUIManagerTabCyclesFocus(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(20, 5)
	a := newCaptureWidget(0, 0, 5, 1)
	b := newCaptureWidget(10, 0, 5, 1)
	ui.AddWidget(widgets.NewPane(0, 0, 20, 5, tcell.StyleDefault))
	ui.AddWidget(a)
	ui.AddWidget(b)

	tab := tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)
	ui.HandleKey(tab)
	if ui.Focused() != a {
		t.Fatalf("expected first tab to focus a")
	}
	ui.HandleKey(tab)
	if ui.Focused() != b || a.IsFocused() {
		t.Fatalf("expected focus to move to b")
	}
	ui.HandleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if ui.Focused() != a {
		t.Fatalf("expected backtab to return to a")
	}
}

func TestUIManagerRefreshNotifier(t *testing.T) {
	ui := core.NewUIManager()
	ch := make(chan bool, 1)
	ui.SetRefreshNotifier(ch)
	ui.Resize(4, 1)
	select {
	case <-ch:
	default:
		t.Fatalf("expected refresh request after resize")
	}
}
