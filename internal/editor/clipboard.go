package editor

import (
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// Clipboard policy: with one cursor the process-wide clipboard is used;
// with several, each cursor owns its own clipboard. Paste falls back to the
// shared clipboard for every cursor when none of them carries per-cursor
// content.

// Clipboard returns the shared clipboard content.
func (e *Editor) Clipboard() string {
	return e.clipboard
}

// SetClipboard replaces the shared clipboard, e.g. from the OS clipboard.
func (e *Editor) SetClipboard(s string) {
	e.clipboard = s
}

// copySelection copies each cursor's selected text. No selection anywhere
// is a no-op.
func (e *Editor) copySelection() {
	if !e.cursors.HasSelection() {
		return
	}
	if !e.cursors.IsMulti() {
		c := e.cursors.Get(0)
		e.clipboard = e.buf.TextRange(c.Start(), c.End())
		return
	}
	for i := 0; i < e.cursors.Count(); i++ {
		c := e.cursors.At(i)
		c.Clip = e.buf.TextRange(c.Start(), c.End())
	}
}

// cutSelection copies, then deletes, each selection.
func (e *Editor) cutSelection() {
	if !e.cursors.HasSelection() {
		return
	}
	e.copySelection()
	e.forEachCursor(func(c *cursor.Cursor) {
		if !c.HasSelection() {
			return
		}
		r := c.Range()
		e.apply(buffer.NewDelete(r.Start, r.End))
		*c = c.MoveTo(r.Start)
	})
}

// paste inserts clipboard content at every cursor, replacing selections.
func (e *Editor) paste() {
	usePerCursor := false
	if e.cursors.IsMulti() {
		for i := 0; i < e.cursors.Count(); i++ {
			if e.cursors.Get(i).Clip != "" {
				usePerCursor = true
				break
			}
		}
	}

	e.forEachCursor(func(c *cursor.Cursor) {
		text := e.clipboard
		if usePerCursor {
			text = c.Clip
		}
		if text == "" && c.HasSelection() {
			// Nothing to paste for this cursor; leave its selection alone.
			return
		}
		if text == "" {
			return
		}
		r := c.Range()
		res, ok := e.apply(buffer.NewReplace(r.Start, r.End, text))
		if !ok {
			return
		}
		clip := c.Clip
		*c = c.MoveTo(res.NewRange.End)
		c.Clip = clip
	})
}
