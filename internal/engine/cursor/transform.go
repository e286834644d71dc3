package cursor

import "github.com/scribe-editor/scribe/internal/engine/buffer"

// Edit aliases buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset maps an offset across an edit.
//
//   - edit entirely before the offset: shift by the edit's delta
//   - edit at or after the offset: unchanged
//   - edit spanning the offset: move to the end of the new text
func TransformOffset(offset Offset, e Edit) Offset {
	if e.Range.End <= offset {
		return offset + e.Delta()
	}
	if e.Range.Start >= offset {
		return offset
	}
	return e.Range.Start + len([]rune(e.NewText))
}

// TransformCursor maps a cursor's position and anchor across an edit
// independently.
func TransformCursor(c Cursor, e Edit) Cursor {
	c.Pos = TransformOffset(c.Pos, e)
	c.Anchor = TransformOffset(c.Anchor, e)
	return c
}

// TransformSet maps every cursor across an edit and normalizes.
func TransformSet(s *Set, e Edit) {
	for i := range s.cursors {
		s.cursors[i] = TransformCursor(s.cursors[i], e)
	}
	s.Normalize()
}
