// Package history implements the atomic edit log: self-inverting operations
// grouped into undo units, each carrying the cursor snapshots needed to
// restore state bit-for-bit across undo and redo.
package history

import (
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// Offset and Range alias the buffer types for convenience.
type (
	Offset = buffer.Offset
	Range  = buffer.Range
)

// Op is one recorded edit: the original range, the text it held, and the
// text that replaced it. Given both texts an Op inverts exactly.
type Op struct {
	Range   Range
	OldText string
	NewText string
}

// NewInsertOp records an insertion at offset.
func NewInsertOp(offset Offset, text string) Op {
	return Op{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDeleteOp records a deletion of removed from r.
func NewDeleteOp(r Range, removed string) Op {
	return Op{Range: r, OldText: removed}
}

// NewReplaceOp records a replacement of old with new over r.
func NewReplaceOp(r Range, oldText, newText string) Op {
	return Op{Range: r, OldText: oldText, NewText: newText}
}

// NewRange returns the range occupied by NewText after the op applied.
func (op Op) NewRange() Range {
	return Range{Start: op.Range.Start, End: op.Range.Start + len([]rune(op.NewText))}
}

// Delta returns the change in buffer length caused by the op, in runes.
func (op Op) Delta() int {
	return len([]rune(op.NewText)) - op.Range.Len()
}

// Forward returns the edit that applies this op.
func (op Op) Forward() buffer.Edit {
	return buffer.Edit{Range: op.Range, NewText: op.NewText}
}

// Inverse returns the edit that undoes this op.
func (op Op) Inverse() buffer.Edit {
	return buffer.Edit{Range: op.NewRange(), NewText: op.OldText}
}

// Invert returns the op that undoes this one.
func (op Op) Invert() Op {
	return Op{Range: op.NewRange(), OldText: op.NewText, NewText: op.OldText}
}

// Snap aliases cursor.Snap for convenience.
type Snap = cursor.Snap
