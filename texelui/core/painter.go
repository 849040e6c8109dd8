package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelslider/texel"
)

// Painter writes cells into a buffer, restricted to a clip rectangle.
type Painter struct {
	buf  [][]texel.Cell
	clip Rect
}

func NewPainter(buf [][]texel.Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

func (p *Painter) Clip() Rect { return p.clip }

// SetCell writes one cell if it is inside both the clip and the buffer.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = texel.Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText writes s starting at (x, y) and returns the number of columns
// used. Wide runes take two columns; the second is left blank.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(col, y, r, style)
		if w == 2 {
			p.SetCell(col+1, y, ' ', style)
		}
		col += w
	}
	return col - x
}

// DrawBorder frames r using charset {h, v, tl, tr, bl, br}.
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		p.SetCell(x, r.Y, charset[0], style)
		p.SetCell(x, bottom, charset[0], style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		p.SetCell(r.X, y, charset[1], style)
		p.SetCell(right, y, charset[1], style)
	}
	p.SetCell(r.X, r.Y, charset[2], style)
	p.SetCell(right, r.Y, charset[3], style)
	p.SetCell(r.X, bottom, charset[4], style)
	p.SetCell(right, bottom, charset[5], style)
}
