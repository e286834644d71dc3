package editor

import (
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// tab inserts spaces up to the next tab stop at a bare cursor, or indents
// every covered line by one tab width when the cursor has a selection.
func (e *Editor) tab() {
	e.forEachCursor(func(c *cursor.Cursor) {
		if !c.HasSelection() {
			col := e.buf.LineCol(c.Pos).Col
			n := e.tabWidth - col%e.tabWidth
			res, ok := e.apply(buffer.NewInsert(c.Pos, repeatSpaces(n)))
			if !ok {
				return
			}
			*c = c.MoveTo(res.NewRange.End)
			return
		}
		e.indentBlock(c)
	})
}

// indentBlock inserts a full tab width at column 0 of every covered line.
// The selection's edges move by exactly what was inserted left of them: an
// edge at column 0 stays, so the new spaces join the selection.
func (e *Editor) indentBlock(c *cursor.Cursor) {
	first, last := e.lineSpan(*c)
	for line := last; line >= first; line-- {
		start := e.buf.LineStart(line)
		e.apply(buffer.NewInsert(start, repeatSpaces(e.tabWidth)))
		if c.Pos > start {
			c.Pos += e.tabWidth
		}
		if c.Anchor > start {
			c.Anchor += e.tabWidth
		}
	}
}

// backtab removes up to one tab width of leading whitespace from every
// covered line. Partially indented lines lose only what they have, so the
// per-line delta can differ from the configured width; each selection edge
// moves by the exact delta applied on its side.
func (e *Editor) backtab() {
	e.forEachCursor(func(c *cursor.Cursor) {
		first, last := e.lineSpan(*c)
		for line := last; line >= first; line-- {
			k := e.leadingSpace(line)
			if k > e.tabWidth {
				k = e.tabWidth
			}
			if k == 0 {
				continue
			}
			start := e.buf.LineStart(line)
			ed := buffer.NewDelete(start, start+k)
			e.apply(ed)
			*c = cursor.TransformCursor(*c, ed)
		}
	})
}
