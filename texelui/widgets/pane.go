package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelslider/texelui/core"
)

// Pane fills its rect with a background style.
type Pane struct {
	core.BaseWidget
	Style tcell.Style
}

func NewPane(x, y, w, h int, style tcell.Style) *Pane {
	p := &Pane{Style: style}
	p.SetPosition(x, y)
	p.Resize(w, h)
	return p
}

func (p *Pane) Draw(painter *core.Painter) {
	painter.Fill(p.Rect, ' ', p.EffectiveStyle(p.Style))
}
