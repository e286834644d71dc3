package history

import "time"

// Group is an ordered list of ops applied as one atomic undo unit, plus the
// cursor snapshots bracketing it: Before is taken when the group records its
// first op, After when the group closes.
type Group struct {
	Ops    []Op
	Before []Snap
	After  []Snap

	openedAt time.Time
}

// IsEmpty reports whether the group recorded no ops.
func (g *Group) IsEmpty() bool {
	return len(g.Ops) == 0
}

// Delta returns the total change in buffer length across the group.
func (g *Group) Delta() int {
	total := 0
	for _, op := range g.Ops {
		total += op.Delta()
	}
	return total
}
