package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelslider/texelui/core"
)

// Checkbox is a toggleable widget that displays a checked or unchecked state.
// Format: [X] Label or [ ] Label
// When focused, shows a cursor: > [X] Label
type Checkbox struct {
	core.BaseWidget
	Label    string
	Checked  bool
	Style    tcell.Style
	OnChange func(checked bool)

	pressed bool
}

// NewCheckbox creates a checkbox at the specified position.
// Width is calculated automatically based on label width.
func NewCheckbox(x, y int, label string) *Checkbox {
	c := &Checkbox{Label: label}
	c.Style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	c.SetFocusedStyle(tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack).Bold(true), true)
	c.SetPosition(x, y)
	// "> [X] " + label
	c.Resize(6+runewidth.StringWidth(label), 1)
	c.SetFocusable(true)
	return c
}

func (c *Checkbox) Draw(painter *core.Painter) {
	style := c.EffectiveStyle(c.Style)
	painter.Fill(core.Rect{X: c.Rect.X, Y: c.Rect.Y, W: c.Rect.W, H: 1}, ' ', style)

	cursor := "  "
	if c.IsFocused() {
		cursor = "> "
	}
	check := "[ ] "
	if c.Checked {
		check = "[X] "
	}
	painter.DrawText(c.Rect.X, c.Rect.Y, cursor+check+c.Label, style)
}

// HandleKey toggles on Space or Enter.
func (c *Checkbox) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		c.Toggle()
		return true
	}
	return false
}

// HandleMouse toggles once per left press inside the widget. Motion while
// the button is held does not toggle again.
func (c *Checkbox) HandleMouse(ev *tcell.EventMouse) bool {
	down := ev.Buttons()&tcell.Button1 != 0
	if !down {
		c.pressed = false
		return false
	}
	x, y := ev.Position()
	if c.pressed || !c.HitTest(x, y) {
		return c.pressed
	}
	c.pressed = true
	c.Toggle()
	return true
}

// Toggle switches the checked state and triggers OnChange.
func (c *Checkbox) Toggle() {
	c.Checked = !c.Checked
	if c.OnChange != nil {
		c.OnChange(c.Checked)
	}
}

// CancelCapture forgets a press that never saw its release.
func (c *Checkbox) CancelCapture() { c.pressed = false }
