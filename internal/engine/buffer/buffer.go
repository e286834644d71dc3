package buffer

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/scribe-editor/scribe/internal/highlight"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// ID uniquely identifies a buffer. Multiple editors referencing the same
// document share one buffer by ID.
type ID = uuid.UUID

// Buffer owns the canonical text of one document plus its derived indices.
type Buffer struct {
	id    ID
	chars []rune

	// Derived, valid only when dirty is false.
	lines       []Offset          // line start offsets, strictly increasing, lines[0] == 0
	linesIndent []Offset          // first non-blank offset per line, same length as lines
	classes     []highlight.Class // per-rune semantic class

	tok highlight.Tokenizer

	dirty          bool // derived indices stale
	modified       bool // differs from disk
	modifiedOnDisk bool // conflict: both sides changed
	deleted        bool // file vanished from disk

	file *FileState
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:    uuid.New(),
		tok:   highlight.None,
		dirty: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.chars = []rune(s)
	return b
}

// ID returns the buffer's stable identifier.
func (b *Buffer) ID() ID {
	return b.id
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return len(b.chars)
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return string(b.chars)
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextRange(start, end Offset) string {
	start, end = b.clampRange(start, end)
	return string(b.chars[start:end])
}

// RuneAt returns the rune at offset, or false if out of range.
func (b *Buffer) RuneAt(offset Offset) (rune, bool) {
	if offset < 0 || offset >= len(b.chars) {
		return 0, false
	}
	return b.chars[offset], true
}

// Runes returns a copy of the runes in [start, end), clamped to the buffer.
// The copy stays valid across later mutations.
func (b *Buffer) Runes(start, end Offset) []rune {
	start, end = b.clampRange(start, end)
	out := make([]rune, end-start)
	copy(out, b.chars[start:end])
	return out
}

func (b *Buffer) clampRange(start, end Offset) (Offset, Offset) {
	if start < 0 {
		start = 0
	}
	if end > len(b.chars) {
		end = len(b.chars)
	}
	if start > end {
		start = end
	}
	return start, end
}

// Write operations. These mutate chars in place and mark the buffer dirty;
// derived indices are rebuilt on the next Sync.

// Insert inserts text at offset and returns the end of the inserted text.
func (b *Buffer) Insert(offset Offset, text string) (Offset, error) {
	if offset < 0 || offset > len(b.chars) {
		return 0, ErrOffsetOutOfRange
	}
	ins := []rune(text)
	b.chars = append(b.chars[:offset], append(ins, b.chars[offset:]...)...)
	b.markEdited()
	return offset + len(ins), nil
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end Offset) error {
	if start < 0 || start > end || end > len(b.chars) {
		return ErrRangeInvalid
	}
	b.chars = append(b.chars[:start], b.chars[end:]...)
	b.markEdited()
	return nil
}

// Replace replaces [start, end) with text and returns the end of the new text.
func (b *Buffer) Replace(start, end Offset, text string) (Offset, error) {
	if start < 0 || start > end || end > len(b.chars) {
		return 0, ErrRangeInvalid
	}
	ins := []rune(text)
	b.chars = append(b.chars[:start], append(ins, b.chars[end:]...)...)
	b.markEdited()
	return start + len(ins), nil
}

// Apply applies an edit and reports what changed.
func (b *Buffer) Apply(e Edit) (EditResult, error) {
	if e.Range.Start < 0 || e.Range.Start > e.Range.End || e.Range.End > len(b.chars) {
		return EditResult{}, ErrRangeInvalid
	}
	oldText := string(b.chars[e.Range.Start:e.Range.End])
	newEnd, err := b.Replace(e.Range.Start, e.Range.End, e.NewText)
	if err != nil {
		return EditResult{}, err
	}
	return EditResult{
		OldRange: e.Range,
		NewRange: Range{Start: e.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    (newEnd - e.Range.Start) - e.Range.Len(),
	}, nil
}

func (b *Buffer) markEdited() {
	b.dirty = true
	b.modified = true
}

// Sync rebuilds the derived indices if the buffer is dirty: one pass over
// chars for line starts and first-non-blank offsets, then one call to the
// tokenizer over the full UTF-8 text to repopulate the class array.
// Idempotent; safe to call before any derived read.
func (b *Buffer) Sync() {
	if !b.dirty {
		return
	}

	b.lines = b.lines[:0]
	b.linesIndent = b.linesIndent[:0]
	b.lines = append(b.lines, 0)
	indent := -1
	for i, r := range b.chars {
		if indent < 0 && !unicode.IsSpace(r) {
			indent = i
		}
		if r == '\n' {
			if indent < 0 {
				indent = i
			}
			b.linesIndent = append(b.linesIndent, indent)
			b.lines = append(b.lines, i+1)
			indent = -1
		}
	}
	if indent < 0 {
		indent = len(b.chars)
	}
	b.linesIndent = append(b.linesIndent, indent)

	b.rehighlight()
	b.dirty = false
}

// rehighlight reruns the tokenizer over the whole buffer and maps its byte
// spans onto the per-rune class array.
func (b *Buffer) rehighlight() {
	if cap(b.classes) < len(b.chars) {
		b.classes = make([]highlight.Class, len(b.chars))
	} else {
		b.classes = b.classes[:len(b.chars)]
		for i := range b.classes {
			b.classes[i] = highlight.ClassText
		}
	}

	text := []byte(string(b.chars))
	spans := b.tok.Tokenize(text)
	if len(spans) == 0 {
		return
	}

	// Both runes and spans advance left to right; merge in one pass.
	si := 0
	byteAt := 0
	for i, r := range b.chars {
		for si < len(spans) && spans[si].End <= byteAt {
			si++
		}
		if si >= len(spans) {
			break
		}
		if spans[si].Start <= byteAt {
			b.classes[i] = spans[si].Class
		}
		byteAt += runeLen(r)
	}
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// ClassAt returns the semantic class of the rune at offset.
func (b *Buffer) ClassAt(offset Offset) highlight.Class {
	b.Sync()
	if offset < 0 || offset >= len(b.classes) {
		return highlight.ClassText
	}
	return b.classes[offset]
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.Sync()
	return len(b.lines)
}

// LineStart returns the offset of the first rune of a line.
func (b *Buffer) LineStart(line int) Offset {
	b.Sync()
	if line < 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.chars)
	}
	return b.lines[line]
}

// LineEnd returns the offset just past the last content rune of a line,
// before its newline.
func (b *Buffer) LineEnd(line int) Offset {
	b.Sync()
	if line < 0 {
		return 0
	}
	if line+1 < len(b.lines) {
		return b.lines[line+1] - 1
	}
	return len(b.chars)
}

// LineText returns a line's text without its newline.
func (b *Buffer) LineText(line int) string {
	return b.TextRange(b.LineStart(line), b.LineEnd(line))
}

// FirstNonBlank returns the offset of the first non-space rune of a line,
// or the line's end when the line is blank.
func (b *Buffer) FirstNonBlank(line int) Offset {
	b.Sync()
	if line < 0 {
		line = 0
	}
	if line >= len(b.linesIndent) {
		return len(b.chars)
	}
	return b.linesIndent[line]
}

// LineCol converts an offset to a line/column point by binary search over
// the line index. Offsets are clamped to [0, Len].
func (b *Buffer) LineCol(offset Offset) Point {
	b.Sync()
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.chars) {
		offset = len(b.chars)
	}
	line := sort.SearchInts(b.lines, offset+1) - 1
	return Point{Line: line, Col: offset - b.lines[line]}
}

// PosFromLineCol is the inverse of LineCol. Out-of-range lines and columns
// are clamped to valid positions.
func (b *Buffer) PosFromLineCol(p Point) Offset {
	b.Sync()
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lines) {
		return len(b.chars)
	}
	pos := b.lines[p.Line] + p.Col
	end := b.lineEndForClamp(p.Line)
	if pos > end {
		pos = end
	}
	if pos < b.lines[p.Line] {
		pos = b.lines[p.Line]
	}
	return pos
}

// lineEndForClamp returns the highest valid cursor position on a line:
// just before the newline, or the buffer end on the last line.
func (b *Buffer) lineEndForClamp(line int) Offset {
	if line+1 < len(b.lines) {
		return b.lines[line+1] - 1
	}
	return len(b.chars)
}

// Flags.

// Modified reports whether the buffer differs from its on-disk content.
func (b *Buffer) Modified() bool { return b.modified }

// ModifiedOnDisk reports a conflict: the file changed on disk while the
// buffer carries local edits.
func (b *Buffer) ModifiedOnDisk() bool { return b.modifiedOnDisk }

// Deleted reports that the backing file vanished from disk.
func (b *Buffer) Deleted() bool { return b.deleted }

// SetText replaces the entire content, as on load.
func (b *Buffer) SetText(s string) {
	b.chars = []rune(s)
	b.dirty = true
}

// SearchIter is a lazy, restartable scan for a literal needle. Matches are
// non-overlapping and reported left to right.
type SearchIter struct {
	b      *Buffer
	needle []rune
	pos    Offset
}

// Search returns an iterator over match start offsets for needle.
func (b *Buffer) Search(needle string) *SearchIter {
	return &SearchIter{b: b, needle: []rune(needle)}
}

// Next returns the next match start, or false when exhausted.
func (it *SearchIter) Next() (Offset, bool) {
	n := len(it.needle)
	if n == 0 {
		return 0, false
	}
	chars := it.b.chars
	for i := it.pos; i+n <= len(chars); i++ {
		if matchAt(chars, it.needle, i) {
			it.pos = i + n
			return i, true
		}
	}
	it.pos = len(chars)
	return 0, false
}

// Reset restarts the scan from the beginning of the buffer.
func (it *SearchIter) Reset() {
	it.pos = 0
}

func matchAt(chars, needle []rune, at Offset) bool {
	for j, r := range needle {
		if chars[at+j] != r {
			return false
		}
	}
	return true
}

// stripTrailingSpace removes trailing spaces and tabs from every line.
// Used by Save; mutates the buffer like any other edit when something
// actually changes.
func (b *Buffer) stripTrailingSpace() {
	text := string(b.chars)
	lines := strings.Split(text, "\n")
	changed := false
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed != line {
			lines[i] = trimmed
			changed = true
		}
	}
	if changed {
		b.chars = []rune(strings.Join(lines, "\n"))
		b.dirty = true
	}
}
