package editor

import (
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// toggleComment comments a block in or out with the line-comment token.
//
// The block counts as commented only if every non-empty covered line starts
// (after leading whitespace) with the token. Commenting out inserts the
// token at the minimum leading-whitespace column across covered lines, so
// the markers line up; commenting in strips the token plus one following
// space where present. Empty lines are left alone in both directions.
func (e *Editor) toggleComment() {
	if e.commentToken == "" {
		return
	}
	e.forEachCursor(func(c *cursor.Cursor) {
		first, last := e.lineSpan(*c)
		if e.blockCommented(first, last) {
			e.uncommentLines(c, first, last)
		} else {
			e.commentLines(c, first, last)
		}
	})
}

// blockCommented reports whether every non-empty line in [first, last]
// begins with the comment token after its leading whitespace.
func (e *Editor) blockCommented(first, last int) bool {
	sawContent := false
	for line := first; line <= last; line++ {
		if e.lineIsBlank(line) {
			continue
		}
		sawContent = true
		if !e.lineHasToken(line) {
			return false
		}
	}
	return sawContent
}

func (e *Editor) lineHasToken(line int) bool {
	at := e.buf.FirstNonBlank(line)
	end := e.buf.LineEnd(line)
	tok := []rune(e.commentToken)
	if at+len(tok) > end {
		return false
	}
	for i, r := range tok {
		got, _ := e.buf.RuneAt(at + i)
		if got != r {
			return false
		}
	}
	return true
}

// commentLines inserts the token at the block's minimum indent column.
func (e *Editor) commentLines(c *cursor.Cursor, first, last int) {
	col := e.minIndentColumn(first, last)
	ins := e.commentToken + " "
	for line := last; line >= first; line-- {
		if e.lineIsBlank(line) {
			continue
		}
		at := e.buf.LineStart(line) + col
		ed := buffer.NewInsert(at, ins)
		e.apply(ed)
		*c = cursor.TransformCursor(*c, ed)
	}
}

// uncommentLines strips the token, plus one following space if present,
// from every non-empty line.
func (e *Editor) uncommentLines(c *cursor.Cursor, first, last int) {
	tokLen := len([]rune(e.commentToken))
	for line := last; line >= first; line-- {
		if e.lineIsBlank(line) {
			continue
		}
		at := e.buf.FirstNonBlank(line)
		end := at + tokLen
		if r, ok := e.buf.RuneAt(end); ok && r == ' ' {
			end++
		}
		ed := buffer.NewDelete(at, end)
		e.apply(ed)
		*c = cursor.TransformCursor(*c, ed)
	}
}

// minIndentColumn returns the smallest leading-whitespace width across the
// non-empty lines of the block (0 when all lines are empty).
func (e *Editor) minIndentColumn(first, last int) int {
	min := -1
	for line := first; line <= last; line++ {
		if e.lineIsBlank(line) {
			continue
		}
		ws := e.leadingSpace(line)
		if min < 0 || ws < min {
			min = ws
		}
	}
	if min < 0 {
		return 0
	}
	return min
}
