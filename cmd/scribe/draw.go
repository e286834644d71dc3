package main

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
)

// gutterPad separates line numbers from text.
const gutterPad = 1

func (a *app) draw() {
	a.buf.Sync()
	width, height := a.screen.Size()
	if width == 0 || height == 0 {
		return
	}
	textRows := height - 1 // last row is the status line
	a.ed.SetPageSize(textRows)
	a.scrollToCursor(textRows)

	a.screen.Clear()

	gutter := gutterWidth(a.buf.LineCount()) + gutterPad
	mainPt := a.buf.LineCol(a.ed.Cursors().Main().Pos)
	selected := a.selectionMap()

	numStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row := 0; row < textRows; row++ {
		line := a.topLine + row
		if line >= a.buf.LineCount() {
			break
		}
		num := fmt.Sprintf("%*d", gutter-gutterPad, line+1)
		for i, r := range num {
			a.screen.SetContent(i, row, r, nil, numStyle)
		}
		a.drawLine(row, line, gutter, width, selected)
	}

	a.screen.ShowCursor(gutter+a.cellCol(mainPt), mainPt.Line-a.topLine)
	a.drawStatus(height-1, width, mainPt)
	a.screen.Show()
}

func (a *app) drawLine(row, line, gutter, width int, selected map[buffer.Offset]bool) {
	start := a.buf.LineStart(line)
	end := a.buf.LineEnd(line)
	x := gutter
	for off := start; off < end && x < width; off++ {
		r, ok := a.buf.RuneAt(off)
		if !ok {
			break
		}
		style := a.theme.StyleFor(a.buf.ClassAt(off))
		if selected[off] {
			style = style.Background(a.theme.Selection)
		}
		if r == '\t' {
			w := a.cfg.TabWidth
			for i := 0; i < w && x < width; i++ {
				a.screen.SetContent(x, row, ' ', nil, style)
				x++
			}
			continue
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (a *app) drawStatus(row, width int, pt buffer.Point) {
	style := tcell.StyleDefault.Reverse(true)
	name := filepath.Base(a.buf.Path())
	if name == "." {
		name = "[no file]"
	}
	mark := ""
	if a.buf.Modified() {
		mark = " [+]"
	}
	warn := ""
	switch {
	case a.buf.Deleted():
		warn = "  file deleted on disk"
	case a.buf.ModifiedOnDisk():
		warn = "  file changed on disk"
	}
	left := fmt.Sprintf(" %s%s%s", name, mark, warn)
	right := fmt.Sprintf("%d:%d ", pt.Line+1, pt.Col+1)
	if n := a.ed.Cursors().Count(); n > 1 {
		right = fmt.Sprintf("%d cursors  %s", n, right)
	}

	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width-len(right); x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}
	for _, r := range right {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// selectionMap marks every offset covered by a selection. Buffers this
// frontend handles stay small, so a per-frame map is fine.
func (a *app) selectionMap() map[buffer.Offset]bool {
	m := make(map[buffer.Offset]bool)
	for _, c := range a.ed.Cursors().All() {
		for off := c.Start(); off < c.End(); off++ {
			m[off] = true
		}
	}
	return m
}

// scrollToCursor keeps the main cursor inside the viewport.
func (a *app) scrollToCursor(textRows int) {
	if textRows <= 0 {
		return
	}
	line := a.buf.LineCol(a.ed.Cursors().Main().Pos).Line
	if line < a.topLine {
		a.topLine = line
	}
	if line >= a.topLine+textRows {
		a.topLine = line - textRows + 1
	}
	if a.topLine < 0 {
		a.topLine = 0
	}
}

// cellCol converts a rune column to a screen column, expanding tabs and
// wide runes.
func (a *app) cellCol(pt buffer.Point) int {
	start := a.buf.LineStart(pt.Line)
	x := 0
	for i := 0; i < pt.Col; i++ {
		r, ok := a.buf.RuneAt(start + buffer.Offset(i))
		if !ok {
			break
		}
		if r == '\t' {
			x += a.cfg.TabWidth
			continue
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

func gutterWidth(lines int) int {
	w := 1
	for lines >= 10 {
		lines /= 10
		w++
	}
	if w < 3 {
		w = 3
	}
	return w
}
