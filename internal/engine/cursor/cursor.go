// Package cursor implements the ordered, non-overlapping cursor collection
// for one editing session: selections with anchor/position pairs, a tracked
// main cursor, per-cursor clipboards, and the offset transforms that keep
// everything consistent while the buffer length changes under multi-cursor
// edits.
package cursor

import (
	"fmt"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
)

// Offset and Range alias the buffer types for convenience.
type (
	Offset = buffer.Offset
	Range  = buffer.Range
)

// Cursor is one editing position: the moving position Pos, a selection
// anchor, a sticky wanted column for vertical movement, and a per-cursor
// clipboard used only when multiple cursors are active.
//
// Anchor == Pos means no selection. The selection range is always derived:
// [min(Pos, Anchor), max(Pos, Anchor)).
type Cursor struct {
	Pos    Offset
	Anchor Offset

	// WantCol is the column vertical movement aims for across short lines.
	// Negative means unset.
	WantCol int

	// Clip is this cursor's private clipboard.
	Clip string
}

// New creates a cursor with no selection at the given offset.
func New(offset Offset) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{Pos: offset, Anchor: offset, WantCol: -1}
}

// NewSelection creates a cursor selecting from anchor to pos.
func NewSelection(anchor, pos Offset) Cursor {
	return Cursor{Pos: pos, Anchor: anchor, WantCol: -1}
}

// HasSelection reports whether the cursor selects a non-empty range.
func (c Cursor) HasSelection() bool {
	return c.Pos != c.Anchor
}

// Start returns the lower bound of the selection range.
func (c Cursor) Start() Offset {
	if c.Anchor < c.Pos {
		return c.Anchor
	}
	return c.Pos
}

// End returns the upper bound of the selection range.
func (c Cursor) End() Offset {
	if c.Anchor > c.Pos {
		return c.Anchor
	}
	return c.Pos
}

// Range returns the selection as a forward range.
func (c Cursor) Range() Range {
	return Range{Start: c.Start(), End: c.End()}
}

// Len returns the selection length.
func (c Cursor) Len() int {
	return c.End() - c.Start()
}

// IsForward reports whether Pos is the trailing end of the selection.
func (c Cursor) IsForward() bool {
	return c.Pos >= c.Anchor
}

// MoveTo returns the cursor collapsed at offset, dropping the selection
// and the wanted column.
func (c Cursor) MoveTo(offset Offset) Cursor {
	if offset < 0 {
		offset = 0
	}
	c.Pos = offset
	c.Anchor = offset
	c.WantCol = -1
	return c
}

// ExtendTo returns the cursor with Pos moved and the anchor kept.
func (c Cursor) ExtendTo(offset Offset) Cursor {
	if offset < 0 {
		offset = 0
	}
	c.Pos = offset
	c.WantCol = -1
	return c
}

// Collapse returns the cursor with the selection dropped, keeping Pos.
func (c Cursor) Collapse() Cursor {
	c.Anchor = c.Pos
	return c
}

// Shift returns the cursor with both Pos and Anchor moved by delta.
func (c Cursor) Shift(delta int) Cursor {
	c.Pos += delta
	c.Anchor += delta
	if c.Pos < 0 {
		c.Pos = 0
	}
	if c.Anchor < 0 {
		c.Anchor = 0
	}
	return c
}

// Clamp returns the cursor limited to [0, maxOffset].
func (c Cursor) Clamp(maxOffset Offset) Cursor {
	if c.Pos > maxOffset {
		c.Pos = maxOffset
	}
	if c.Pos < 0 {
		c.Pos = 0
	}
	if c.Anchor > maxOffset {
		c.Anchor = maxOffset
	}
	if c.Anchor < 0 {
		c.Anchor = 0
	}
	return c
}

// String returns a human-readable representation.
func (c Cursor) String() string {
	if !c.HasSelection() {
		return fmt.Sprintf("Cursor(%d)", c.Pos)
	}
	return fmt.Sprintf("Cursor(%d..%d@%d)", c.Start(), c.End(), c.Pos)
}

// Snap is the part of cursor state captured in undo snapshots: the position
// and the selection anchor. Clipboards and wanted columns are transient and
// not restored by undo.
type Snap struct {
	Pos    Offset
	Anchor Offset
}
