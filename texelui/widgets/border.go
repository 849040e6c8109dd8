package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelslider/texelui/core"
)

// Border draws a frame around its Rect with an optional title on the top
// edge. It is decoration only and never takes mouse input, so widgets it
// surrounds keep receiving presses.
type Border struct {
	core.BaseWidget
	Style   tcell.Style
	Charset [6]rune // h, v, tl, tr, bl, br
	Title   string
}

func NewBorder(x, y, w, h int, style tcell.Style) *Border {
	b := &Border{Style: style}
	b.Charset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}
	b.SetPosition(x, y)
	b.Resize(w, h)
	return b
}

// ClientRect is the area inside the frame.
func (b *Border) ClientRect() core.Rect {
	r := b.Rect
	if r.W < 2 || r.H < 2 {
		return core.Rect{X: r.X, Y: r.Y}
	}
	return core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// Surround places and sizes the border so that inner is its client area.
func (b *Border) Surround(inner core.Rect) {
	b.SetPosition(inner.X-1, inner.Y-1)
	b.Resize(inner.W+2, inner.H+2)
}

func (b *Border) HitTest(x, y int) bool { return false }

func (b *Border) Draw(p *core.Painter) {
	p.DrawBorder(b.Rect, b.Style, b.Charset)
	if b.Title == "" || b.Rect.W < 5 {
		return
	}
	title := runewidth.Truncate(" "+b.Title+" ", b.Rect.W-4, "…")
	p.DrawText(b.Rect.X+2, b.Rect.Y, title, b.Style)
}
