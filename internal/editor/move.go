package editor

import (
	"unicode"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// move applies a movement action to every cursor. With Extend the anchor
// stays put; otherwise the selection collapses.
func (e *Editor) move(a Action) {
	for i := 0; i < e.cursors.Count(); i++ {
		c := e.cursors.At(i)
		switch a.Kind {
		case ActMoveLeft:
			e.moveHorizontal(c, -1, a.Extend)
		case ActMoveRight:
			e.moveHorizontal(c, +1, a.Extend)
		case ActMoveUp:
			e.moveVertical(c, -1, a.Extend)
		case ActMoveDown:
			e.moveVertical(c, +1, a.Extend)
		case ActMovePageUp:
			e.moveVertical(c, -e.pageSize, a.Extend)
		case ActMovePageDown:
			e.moveVertical(c, +e.pageSize, a.Extend)
		case ActMoveWordLeft:
			e.place(c, e.prevWordBoundary(c.Pos), a.Extend)
		case ActMoveWordRight:
			e.place(c, e.nextWordBoundary(c.Pos), a.Extend)
		case ActMoveHome:
			e.place(c, e.homeTarget(c.Pos), a.Extend)
		case ActMoveEnd:
			line := e.buf.LineCol(c.Pos).Line
			e.place(c, e.buf.LineEnd(line), a.Extend)
		}
	}
	e.cursors.Normalize()
}

// place moves a cursor's position, extending or collapsing the selection.
func (e *Editor) place(c *cursor.Cursor, pos buffer.Offset, extend bool) {
	if extend {
		*c = c.ExtendTo(pos)
	} else {
		*c = c.MoveTo(pos)
	}
}

// moveHorizontal moves one rune. Without extend, a selected cursor
// collapses to the selection edge in the movement direction instead of
// moving past it.
func (e *Editor) moveHorizontal(c *cursor.Cursor, dir int, extend bool) {
	if !extend && c.HasSelection() {
		if dir < 0 {
			*c = c.MoveTo(c.Start())
		} else {
			*c = c.MoveTo(c.End())
		}
		return
	}
	e.place(c, c.Pos+dir, extend)
}

// moveVertical moves by lines, steering toward the sticky wanted column so
// a pass over short lines does not lose the target.
func (e *Editor) moveVertical(c *cursor.Cursor, lines int, extend bool) {
	pt := e.buf.LineCol(c.Pos)
	want := c.WantCol
	if want < 0 {
		want = pt.Col
	}

	target := pt.Line + lines
	if target < 0 {
		target = 0
	}
	if max := e.buf.LineCount() - 1; target > max {
		target = max
	}

	pos := e.buf.PosFromLineCol(buffer.Point{Line: target, Col: want})
	e.place(c, pos, extend)
	c.WantCol = want
}

// homeTarget implements smart home: jump to the first non-blank rune,
// unless already there, in which case jump to column 0.
func (e *Editor) homeTarget(pos buffer.Offset) buffer.Offset {
	line := e.buf.LineCol(pos).Line
	indent := e.buf.FirstNonBlank(line)
	if pos == indent {
		return e.buf.LineStart(line)
	}
	return indent
}

// Word boundaries: a word is a run of letters, digits and underscores.

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// prevWordBoundary returns the start of the word ending at or before pos.
func (e *Editor) prevWordBoundary(pos buffer.Offset) buffer.Offset {
	for pos > 0 {
		r, _ := e.buf.RuneAt(pos - 1)
		if isWordRune(r) {
			break
		}
		pos--
	}
	for pos > 0 {
		r, _ := e.buf.RuneAt(pos - 1)
		if !isWordRune(r) {
			break
		}
		pos--
	}
	return pos
}

// nextWordBoundary returns the end of the word starting at or after pos.
func (e *Editor) nextWordBoundary(pos buffer.Offset) buffer.Offset {
	n := e.buf.Len()
	for pos < n {
		r, _ := e.buf.RuneAt(pos)
		if isWordRune(r) {
			break
		}
		pos++
	}
	for pos < n {
		r, _ := e.buf.RuneAt(pos)
		if !isWordRune(r) {
			break
		}
		pos++
	}
	return pos
}

// wordAround returns the word range containing pos, or an empty range at
// pos when it sits on no word.
func (e *Editor) wordAround(pos buffer.Offset) buffer.Range {
	start, end := pos, pos
	for start > 0 {
		r, _ := e.buf.RuneAt(start - 1)
		if !isWordRune(r) {
			break
		}
		start--
	}
	n := e.buf.Len()
	for end < n {
		r, _ := e.buf.RuneAt(end)
		if !isWordRune(r) {
			break
		}
		end++
	}
	return buffer.Range{Start: start, End: end}
}
