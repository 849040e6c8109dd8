package adapter

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelslider/texel"
	"github.com/framegrace/texelslider/texelui/core"
)

// UIApp adapts a TexelUI UIManager to the texel.App interface.
type UIApp struct {
	title    string
	ui       *core.UIManager
	stopCh   chan struct{}
	onResize func(w, h int)
}

func NewUIApp(title string, ui *core.UIManager) *UIApp {
	if ui == nil {
		ui = core.NewUIManager()
	}
	return &UIApp{title: title, ui: ui, stopCh: make(chan struct{})}
}

func (a *UIApp) Run() error { <-a.stopCh; return nil }

// Stop ends Run. A gesture still in flight is cancelled so it commits.
func (a *UIApp) Stop() {
	select {
	case <-a.stopCh:
	default:
		a.ui.CancelCapture()
		close(a.stopCh)
	}
}

// Interrupt cancels an in-flight gesture, e.g. when the terminal loses
// focus mid-drag.
func (a *UIApp) Interrupt() { a.ui.CancelCapture() }

// Done is closed once Stop has been called.
func (a *UIApp) Done() <-chan struct{} { return a.stopCh }

func (a *UIApp) Resize(cols, rows int) {
	a.ui.Resize(cols, rows)
	if a.onResize != nil {
		a.onResize(cols, rows)
	}
}

// OnResize registers a layout callback run after every Resize.
func (a *UIApp) OnResize(fn func(w, h int)) { a.onResize = fn }

func (a *UIApp) Render() [][]texel.Cell { return a.ui.Render() }

func (a *UIApp) GetTitle() string {
	if a.title == "" {
		return "TexelUI"
	}
	return a.title
}

func (a *UIApp) HandleKey(ev *tcell.EventKey) { a.ui.HandleKey(ev) }

func (a *UIApp) HandleMouse(ev *tcell.EventMouse) { a.ui.HandleMouse(ev) }

func (a *UIApp) SetRefreshNotifier(ch chan<- bool) { a.ui.SetRefreshNotifier(ch) }

// UI exposes the manager for composition.
func (a *UIApp) UI() *core.UIManager { return a.ui }
