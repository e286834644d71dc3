package lsp

import "github.com/scribe-editor/scribe/internal/engine/buffer"

// PositionFor converts a buffer rune offset to a protocol position, with
// the character measured in UTF-16 code units.
func PositionFor(b *buffer.Buffer, offset buffer.Offset) Position {
	p := b.LineCol(offset)
	line := b.Runes(b.LineStart(p.Line), b.LineStart(p.Line)+p.Col)
	col := 0
	for _, r := range line {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return Position{Line: p.Line, Character: col}
}

// OffsetFor converts a protocol position back to a buffer rune offset,
// clamping to valid positions.
func OffsetFor(b *buffer.Buffer, pos Position) buffer.Offset {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= b.LineCount() {
		return b.Len()
	}
	start := b.LineStart(pos.Line)
	end := b.LineEnd(pos.Line)
	units := 0
	for off := start; off < end; off++ {
		if units >= pos.Character {
			return off
		}
		r, _ := b.RuneAt(off)
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return end
}
