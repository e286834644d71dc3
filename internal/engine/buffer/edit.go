package buffer

import "fmt"

// Edit specifies a range to replace and the new text. An Edit with an empty
// range is an insertion; one with empty NewText is a deletion.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset Offset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end Offset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// NewReplace creates an Edit that replaces a range with new text.
func NewReplace(start, end Offset, text string) Edit {
	return Edit{Range: Range{Start: start, End: end}, NewText: text}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// IsInsert returns true if this is a pure insertion.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion.
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsNoOp returns true if the edit changes nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit, in runes.
func (e Edit) Delta() int {
	return len([]rune(e.NewText)) - e.Range.Len()
}

// EditResult describes an applied edit.
type EditResult struct {
	OldRange Range  // range that was replaced
	NewRange Range  // range occupied by the new text
	OldText  string // text that was removed
	Delta    int    // change in buffer length, in runes
}
