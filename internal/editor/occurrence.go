package editor

import (
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
	"github.com/scribe-editor/scribe/internal/search"
)

// selectAll replaces all cursors with one selection spanning the buffer.
func (e *Editor) selectAll() {
	e.cursors.SetAll([]cursor.Cursor{cursor.NewSelection(0, e.buf.Len())})
}

// selectWord expands each cursor without a selection to the word under it.
func (e *Editor) selectWord() {
	for i := 0; i < e.cursors.Count(); i++ {
		c := e.cursors.At(i)
		if c.HasSelection() {
			continue
		}
		r := e.wordAround(c.Pos)
		if !r.IsEmpty() {
			*c = cursor.NewSelection(r.Start, r.End)
		}
	}
	e.cursors.Normalize()
}

// selectLine expands each cursor to cover its whole lines including the
// trailing newline, so repeated presses grow downward.
func (e *Editor) selectLine() {
	for i := 0; i < e.cursors.Count(); i++ {
		c := e.cursors.At(i)
		start, end := e.blockBounds(*c)
		*c = cursor.NewSelection(start, end)
	}
	e.cursors.Normalize()
}

// selectNextOccurrence adds a cursor on the next match of the selection
// shared by every cursor, making it the main cursor.
//
// Preconditions: every cursor selects the same non-empty text. The scan
// starts at the main cursor's selection end and is bounded by the next
// cursor's start; when the main cursor is last, the scan wraps around past
// the buffer start up to the first cursor. No match is a no-op.
func (e *Editor) selectNextOccurrence() {
	needle, ok := e.commonSelection()
	if !ok {
		return
	}

	mainIdx := e.cursors.MainIndex()
	main := e.cursors.Get(mainIdx)
	from := main.End()

	var bound buffer.Offset
	wrap := mainIdx+1 >= e.cursors.Count()
	if wrap {
		bound = e.buf.Len()
	} else {
		bound = e.cursors.Get(mainIdx + 1).Start()
	}

	if m, ok := e.findIn(needle, from, bound); ok {
		e.cursors.Add(cursor.NewSelection(m, m+len([]rune(needle))))
		return
	}
	if !wrap {
		return
	}
	if m, ok := e.findIn(needle, 0, e.cursors.Get(0).Start()); ok {
		e.cursors.Add(cursor.NewSelection(m, m+len([]rune(needle))))
	}
}

// commonSelection returns the text selected by every cursor, or false when
// any cursor has no selection or the selections differ.
func (e *Editor) commonSelection() (string, bool) {
	texts := e.selectedText()
	if len(texts) == 0 || texts[0] == "" {
		return "", false
	}
	for _, t := range texts[1:] {
		if t != texts[0] {
			return "", false
		}
	}
	return texts[0], true
}

// findIn returns the first match of needle fully inside [from, bound).
func (e *Editor) findIn(needle string, from, bound buffer.Offset) (buffer.Offset, bool) {
	if from >= bound {
		return 0, false
	}
	for _, m := range search.Find(e.buf.TextRange(from, bound), needle) {
		return from + m, true
	}
	return 0, false
}
