// Package editor resolves input events into actions and applies them to a
// (buffer, cursor set, edit log) triple in one coordinated pass. It is the
// only writer of the buffer; every mutation flows through here so the edit
// log sees everything and cursor state stays consistent.
package editor

import (
	"strings"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
	"github.com/scribe-editor/scribe/internal/engine/history"
	"github.com/scribe-editor/scribe/internal/search"
)

// DefaultPageSize is the number of lines a page movement covers when the
// UI has not reported a viewport height.
const DefaultPageSize = 20

// Editor coordinates one buffer, its cursors and its edit log.
type Editor struct {
	buf     *buffer.Buffer
	cursors *cursor.Set
	log     *history.Log

	tabWidth     int
	commentToken string
	pageSize     int

	// clipboard is the process-wide clipboard, used whenever a single
	// cursor is active. Per-cursor clipboards live on the cursors.
	clipboard string

	sess *search.Session
}

// Option configures an Editor.
type Option func(*Editor)

// WithTabWidth sets the indentation width.
func WithTabWidth(w int) Option {
	return func(e *Editor) {
		if w > 0 {
			e.tabWidth = w
		}
	}
}

// WithCommentToken sets the line-comment token for comment toggling.
func WithCommentToken(tok string) Option {
	return func(e *Editor) { e.commentToken = tok }
}

// WithLog sets the edit log (shared when several editors view one buffer).
func WithLog(l *history.Log) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an editor over a buffer with one cursor at offset 0.
func New(buf *buffer.Buffer, opts ...Option) *Editor {
	e := &Editor{
		buf:          buf,
		cursors:      cursor.NewSet(0),
		log:          history.NewLog(0),
		tabWidth:     4,
		commentToken: "//",
		pageSize:     DefaultPageSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Buffer returns the editor's buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursors returns the editor's cursor set.
func (e *Editor) Cursors() *cursor.Set {
	return e.cursors
}

// Log returns the editor's edit log.
func (e *Editor) Log() *history.Log {
	return e.log
}

// SetPageSize tells the editor the viewport height for page movement.
func (e *Editor) SetPageSize(n int) {
	if n > 0 {
		e.pageSize = n
	}
}

// State returns the cursor-state slice consulted by Resolve.
func (e *Editor) State() State {
	return State{HasSelection: e.cursors.HasSelection()}
}

// Handle resolves and applies one input event.
func (e *Editor) Handle(ev KeyEvent) error {
	return e.Apply(Resolve(ev, e.State()))
}

// Apply performs one logical action. Exactly one normalization pass runs at
// the end: cursors clamped to the buffer, re-sorted, overlaps merged.
func (e *Editor) Apply(a Action) error {
	var err error

	switch a.Kind {
	case ActNone:
		return nil

	case ActMoveLeft, ActMoveRight, ActMoveUp, ActMoveDown,
		ActMoveWordLeft, ActMoveWordRight, ActMoveHome, ActMoveEnd,
		ActMovePageUp, ActMovePageDown:
		e.move(a)

	case ActInsertRune:
		e.editing(a.Kind, func() { e.insertText(string(a.Rune)) })
	case ActInsertNewline:
		e.editing(a.Kind, func() { e.insertText("\n") })
	case ActInsertLineBelow:
		e.editing(a.Kind, e.insertLineBelow)
	case ActInsertLineAbove:
		e.editing(a.Kind, e.insertLineAbove)
	case ActBackspace:
		e.editing(a.Kind, e.backspace)
	case ActDeleteForward:
		e.editing(a.Kind, e.deleteForward)

	case ActTab:
		e.editing(a.Kind, e.tab)
	case ActBacktab:
		e.editing(a.Kind, e.backtab)
	case ActDuplicateLines:
		e.editing(a.Kind, e.duplicateLines)
	case ActMoveLinesUp:
		e.editing(a.Kind, func() { e.moveLines(-1) })
	case ActMoveLinesDown:
		e.editing(a.Kind, func() { e.moveLines(+1) })
	case ActToggleComment:
		e.editing(a.Kind, e.toggleComment)

	case ActSelectAll:
		e.selectAll()
	case ActSelectWord:
		e.selectWord()
	case ActSelectLine:
		e.selectLine()
	case ActSelectNextOccurrence:
		e.selectNextOccurrence()
	case ActEscape:
		e.cursors.Single()
		e.sess = nil

	case ActCopy:
		e.copySelection()
	case ActCut:
		e.editing(a.Kind, e.cutSelection)
	case ActPaste:
		e.editing(a.Kind, e.paste)

	case ActFindNext:
		e.findStep(+1)
	case ActFindPrev:
		e.findStep(-1)

	case ActUndo:
		if snaps, ok := e.log.Undo(e.buf); ok {
			e.cursors.Restore(snaps)
		}
	case ActRedo:
		if snaps, ok := e.log.Redo(e.buf); ok {
			e.cursors.Restore(snaps)
		}

	case ActSave:
		err = e.save()
	}

	e.cursors.ClampAll(e.buf.Len())
	return err
}

// editing wraps a mutating action with the log's group bookkeeping.
// Typing that replaces a selection is multi-step too, so it forces a
// boundary even though plain typing does not.
func (e *Editor) editing(k ActionKind, fn func()) {
	force := forcesBoundary(k)
	if (k == ActInsertRune || k == ActInsertNewline) && e.cursors.HasSelection() {
		force = true
	}
	e.log.BeginAction(e.cursors, force)
	fn()
	e.log.EndAction(e.cursors, force)
}

// forEachCursor runs fn for every cursor in ascending order, shifting all
// not-yet-processed cursors by the buffer length delta each edit produced.
// Only edits strictly left of a pending cursor can have occurred, so the
// plain shift keeps every pending position exact without re-scanning.
func (e *Editor) forEachCursor(fn func(c *cursor.Cursor)) {
	for i := 0; i < e.cursors.Count(); i++ {
		before := e.buf.Len()
		fn(e.cursors.At(i))
		if delta := e.buf.Len() - before; delta != 0 {
			e.cursors.ShiftFrom(i+1, delta)
		}
	}
	e.cursors.Normalize()
}

// apply routes one edit through the buffer and records it in the log.
// A rejected edit reports ok=false; callers must leave their cursor where
// it was rather than trust the zero result.
func (e *Editor) apply(ed buffer.Edit) (buffer.EditResult, bool) {
	res, err := e.buf.Apply(ed)
	if err != nil {
		return res, false
	}
	e.log.Record(history.NewReplaceOp(res.OldRange, res.OldText, ed.NewText))
	return res, true
}

// insertText types text at every cursor, replacing selections.
func (e *Editor) insertText(text string) {
	e.forEachCursor(func(c *cursor.Cursor) {
		r := c.Range()
		res, ok := e.apply(buffer.NewReplace(r.Start, r.End, text))
		if !ok {
			return
		}
		*c = c.MoveTo(res.NewRange.End)
	})
}

// insertLineBelow opens a new line under each cursor's line and moves the
// cursor to it, regardless of column.
func (e *Editor) insertLineBelow() {
	e.forEachCursor(func(c *cursor.Cursor) {
		line := e.buf.LineCol(c.Pos).Line
		end := e.buf.LineEnd(line)
		res, ok := e.apply(buffer.NewInsert(end, "\n"))
		if !ok {
			return
		}
		*c = c.MoveTo(res.NewRange.End)
	})
}

// insertLineAbove opens a new line above each cursor's line.
func (e *Editor) insertLineAbove() {
	e.forEachCursor(func(c *cursor.Cursor) {
		line := e.buf.LineCol(c.Pos).Line
		start := e.buf.LineStart(line)
		e.apply(buffer.NewInsert(start, "\n"))
		*c = c.MoveTo(start)
	})
}

// backspace deletes the selection, or the rune before the cursor.
func (e *Editor) backspace() {
	e.forEachCursor(func(c *cursor.Cursor) {
		if c.HasSelection() {
			r := c.Range()
			e.apply(buffer.NewDelete(r.Start, r.End))
			*c = c.MoveTo(r.Start)
			return
		}
		if c.Pos == 0 {
			return
		}
		e.apply(buffer.NewDelete(c.Pos-1, c.Pos))
		*c = c.MoveTo(c.Pos - 1)
	})
}

// deleteForward deletes the selection, or the rune at the cursor.
func (e *Editor) deleteForward() {
	e.forEachCursor(func(c *cursor.Cursor) {
		if c.HasSelection() {
			r := c.Range()
			e.apply(buffer.NewDelete(r.Start, r.End))
			*c = c.MoveTo(r.Start)
			return
		}
		if c.Pos >= e.buf.Len() {
			return
		}
		e.apply(buffer.NewDelete(c.Pos, c.Pos+1))
	})
}

// save normalizes through regular logged edits (trailing spaces stripped,
// trailing newline ensured) so undo stays exact, then writes to disk.
func (e *Editor) save() error {
	e.editing(ActSave, e.normalizeForSave)
	return e.buf.Save()
}

// normalizeForSave strips trailing spaces per line and ensures a final
// newline, bottom-up so earlier offsets stay valid.
func (e *Editor) normalizeForSave() {
	if n := e.buf.Len(); n > 0 {
		if r, _ := e.buf.RuneAt(n - 1); r != '\n' {
			e.apply(buffer.NewInsert(n, "\n"))
		}
	}
	for line := e.buf.LineCount() - 1; line >= 0; line-- {
		start := e.buf.LineStart(line)
		end := e.buf.LineEnd(line)
		trim := end
		for trim > start {
			r, _ := e.buf.RuneAt(trim - 1)
			if r != ' ' && r != '\t' {
				break
			}
			trim--
		}
		if trim < end {
			ed := buffer.NewDelete(trim, end)
			e.apply(ed)
			// This runs outside the forEachCursor delta pass, so every
			// cursor edge is remapped across the edit.
			cursor.TransformSet(e.cursors, ed)
		}
	}
}

// selectedText returns the text each cursor selects, in cursor order.
func (e *Editor) selectedText() []string {
	out := make([]string, e.cursors.Count())
	for i := 0; i < e.cursors.Count(); i++ {
		c := e.cursors.Get(i)
		out[i] = e.buf.TextRange(c.Start(), c.End())
	}
	return out
}

// lineSpan returns the first and last line covered by a cursor's selection.
// A selection ending at column 0 does not cover that final line.
func (e *Editor) lineSpan(c cursor.Cursor) (first, last int) {
	first = e.buf.LineCol(c.Start()).Line
	endPt := e.buf.LineCol(c.End())
	last = endPt.Line
	if c.HasSelection() && endPt.Col == 0 && last > first {
		last--
	}
	return first, last
}

// leadingSpace returns the number of leading whitespace runes on a line.
func (e *Editor) leadingSpace(line int) int {
	return e.buf.FirstNonBlank(line) - e.buf.LineStart(line)
}

// lineIsBlank reports whether a line holds only whitespace.
func (e *Editor) lineIsBlank(line int) bool {
	return e.buf.FirstNonBlank(line) >= e.buf.LineEnd(line)
}

func repeatSpaces(n int) string {
	return strings.Repeat(" ", n)
}
