package widgets

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelslider/texelui/core"
)

// Alignment controls horizontal placement of label text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label draws a single line of text. SetText is safe to call from any
// goroutine.
type Label struct {
	core.BaseWidget
	Style tcell.Style
	Align Alignment

	mu     sync.Mutex
	text   string
	inv    func(core.Rect)
	bounds core.Rect
}

// NewLabel creates a label. A zero width is sized to the text.
func NewLabel(x, y, w, h int, text string) *Label {
	l := &Label{
		Style: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		text:  text,
	}
	l.SetPosition(x, y)
	if w == 0 {
		w = runewidth.StringWidth(text)
	}
	if h == 0 {
		h = 1
	}
	l.Resize(w, h)
	return l
}

func (l *Label) SetInvalidator(fn func(core.Rect)) {
	l.mu.Lock()
	l.inv = fn
	l.mu.Unlock()
}

func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

func (l *Label) SetText(text string) {
	l.mu.Lock()
	if l.text == text {
		l.mu.Unlock()
		return
	}
	l.text = text
	inv, r := l.inv, l.bounds
	l.mu.Unlock()
	if inv != nil {
		inv(r)
	}
}

func (l *Label) SetPosition(x, y int) {
	l.BaseWidget.SetPosition(x, y)
	l.mu.Lock()
	l.bounds = l.Rect
	l.mu.Unlock()
}

func (l *Label) Resize(w, h int) {
	l.BaseWidget.Resize(w, h)
	l.mu.Lock()
	l.bounds = l.Rect
	l.mu.Unlock()
}

func (l *Label) Draw(p *core.Painter) {
	text := l.Text()
	if l.Rect.W <= 0 || l.Rect.H <= 0 {
		return
	}
	text = runewidth.Truncate(text, l.Rect.W, "…")
	tw := runewidth.StringWidth(text)
	x := l.Rect.X
	switch l.Align {
	case AlignCenter:
		x += (l.Rect.W - tw) / 2
	case AlignRight:
		x += l.Rect.W - tw
	}
	style := l.EffectiveStyle(l.Style)
	p.Fill(core.Rect{X: l.Rect.X, Y: l.Rect.Y, W: l.Rect.W, H: 1}, ' ', style)
	p.DrawText(x, l.Rect.Y, text, style)
}
