// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/app.go
// Summary: Contracts between hosted apps and the screen runner.

package texel

import "github.com/gdamore/tcell/v2"

// Cell is one terminal cell of a rendered buffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// App is a self-contained program that renders into a cell buffer.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
}

// MouseHandler is implemented by apps that consume mouse events.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// NewBuffer allocates a rows x cols buffer filled with blanks in style.
func NewBuffer(cols, rows int, style tcell.Style) [][]Cell {
	if cols <= 0 || rows <= 0 {
		return [][]Cell{}
	}
	buf := make([][]Cell, rows)
	for y := range buf {
		row := make([]Cell, cols)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}
