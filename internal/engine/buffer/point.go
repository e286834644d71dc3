package buffer

import "fmt"

// Offset is a rune position in the buffer. Valid offsets for a buffer of
// length n are [0, n]; n addresses the end-of-buffer insertion point.
type Offset = int

// Point is a line and column position. Both are 0-indexed; Column counts
// runes from the start of the line.
type Point struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Col != other.Col {
		if p.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}
