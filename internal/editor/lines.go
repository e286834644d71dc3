package editor

import (
	"strings"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// blockBounds returns the whole-line block covered by a cursor: the start
// of its first line through the start of the line after its last (or the
// buffer end when the block reaches it).
func (e *Editor) blockBounds(c cursor.Cursor) (start, end buffer.Offset) {
	first, last := e.lineSpan(c)
	start = e.buf.LineStart(first)
	if last+1 < e.buf.LineCount() {
		end = e.buf.LineStart(last + 1)
	} else {
		end = e.buf.Len()
	}
	return start, end
}

// duplicateLines copies each cursor's covered lines below themselves; the
// cursor and selection move onto the copy. Cursors sharing lines share one
// block, so a line is never copied twice, which rules out the usual
// left-of-pending shift: blocks are gathered first, then duplicated
// bottom-up with every cursor at or past a block riding onto its copy.
func (e *Editor) duplicateLines() {
	type block struct{ start, end buffer.Offset }
	var blocks []block
	for i := 0; i < e.cursors.Count(); i++ {
		start, end := e.blockBounds(*e.cursors.At(i))
		if n := len(blocks); n > 0 && start < blocks[n-1].end {
			if end > blocks[n-1].end {
				blocks[n-1].end = end
			}
			continue
		}
		blocks = append(blocks, block{start, end})
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		text := e.buf.TextRange(b.start, b.end)
		if !strings.HasSuffix(text, "\n") {
			// Block at EOF without newline: open a line for the copy.
			text = "\n" + text
		}
		if _, ok := e.apply(buffer.NewInsert(b.end, text)); !ok {
			continue
		}
		n := len([]rune(text))
		for j := 0; j < e.cursors.Count(); j++ {
			c := e.cursors.At(j)
			if c.Pos >= b.start {
				c.Pos += n
			}
			if c.Anchor >= b.start {
				c.Anchor += n
			}
		}
	}
	e.cursors.Normalize()
}

// moveLines swaps the main cursor's whole-line block with the adjacent
// line. Only valid with a single cursor; a multi-cursor set is a no-op.
func (e *Editor) moveLines(dir int) {
	if e.cursors.IsMulti() {
		return
	}
	c := e.cursors.At(0)
	first, last := e.lineSpan(*c)
	if dir < 0 {
		e.moveBlockUp(c, first, last)
	} else {
		e.moveBlockDown(c, first, last)
	}
}

// moveBlockUp relocates the line above the block to just after it. The
// block's text shifts left by the moved line's length; cursor and selection
// keep their offsets relative to the moved text.
func (e *Editor) moveBlockUp(c *cursor.Cursor, first, last int) {
	if first == 0 {
		return
	}
	start, end := e.blockBounds(*c)
	aboveStart := e.buf.LineStart(first - 1)
	above := e.buf.TextRange(aboveStart, start) // includes its newline
	aboveLen := len([]rune(above))

	e.apply(buffer.NewDelete(aboveStart, start))
	insertAt := end - aboveLen
	if insertAt >= e.buf.Len() && !strings.HasSuffix(e.buf.TextRange(0, e.buf.Len()), "\n") {
		// Block now ends the buffer without a newline; the moved line goes
		// below it, so the newline swaps sides.
		e.apply(buffer.NewInsert(e.buf.Len(), "\n"+strings.TrimSuffix(above, "\n")))
	} else {
		e.apply(buffer.NewInsert(insertAt, above))
	}

	c.Pos -= aboveLen
	c.Anchor -= aboveLen
}

// moveBlockDown relocates the line below the block to just before it.
func (e *Editor) moveBlockDown(c *cursor.Cursor, first, last int) {
	if last+1 >= e.buf.LineCount() {
		return
	}
	start, end := e.blockBounds(*c)
	var belowEnd buffer.Offset
	if last+2 < e.buf.LineCount() {
		belowEnd = e.buf.LineStart(last + 2)
	} else {
		belowEnd = e.buf.Len()
	}
	below := e.buf.TextRange(end, belowEnd)
	belowLen := len([]rune(below))
	if belowLen == 0 {
		return
	}

	e.apply(buffer.NewDelete(end, belowEnd))
	if strings.HasSuffix(below, "\n") {
		e.apply(buffer.NewInsert(start, below))
		c.Pos += belowLen
		c.Anchor += belowLen
		return
	}

	// The moved line ended the buffer without a newline: it gains the
	// block's final newline, which the block gives up at the new end.
	e.apply(buffer.NewInsert(start, below+"\n"))
	c.Pos += belowLen + 1
	c.Anchor += belowLen + 1
	n := e.buf.Len()
	if r, ok := e.buf.RuneAt(n - 1); ok && r == '\n' {
		e.apply(buffer.NewDelete(n-1, n))
	}
}
