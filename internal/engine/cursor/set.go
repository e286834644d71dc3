package cursor

import "sort"

// Set is the ordered, non-overlapping collection of all active cursors for
// one editing session, plus the index of the main cursor. The main cursor
// drives single-cursor features such as viewport centering and search.
//
// Invariant after Normalize: cursors sorted ascending by range start, no two
// ranges overlap.
type Set struct {
	cursors []Cursor
	main    int
}

// NewSet creates a set with a single cursor at the given offset.
func NewSet(offset Offset) *Set {
	return &Set{cursors: []Cursor{New(offset)}}
}

// NewSetFrom creates a normalized set from explicit cursors. An empty slice
// yields a single cursor at 0.
func NewSetFrom(cursors []Cursor) *Set {
	if len(cursors) == 0 {
		return NewSet(0)
	}
	s := &Set{cursors: make([]Cursor, len(cursors))}
	copy(s.cursors, cursors)
	s.Normalize()
	return s
}

// Count returns the number of cursors.
func (s *Set) Count() int {
	return len(s.cursors)
}

// IsMulti reports whether more than one cursor is active.
func (s *Set) IsMulti() bool {
	return len(s.cursors) > 1
}

// At returns a pointer to the cursor at index i for in-place mutation.
// The pointer is invalidated by Normalize, Add and Remove.
func (s *Set) At(i int) *Cursor {
	return &s.cursors[i]
}

// Get returns a copy of the cursor at index i.
func (s *Set) Get(i int) Cursor {
	return s.cursors[i]
}

// Main returns a copy of the main cursor.
func (s *Set) Main() Cursor {
	return s.cursors[s.main]
}

// MainIndex returns the index of the main cursor.
func (s *Set) MainIndex() int {
	return s.main
}

// All returns a copy of all cursors in order.
func (s *Set) All() []Cursor {
	out := make([]Cursor, len(s.cursors))
	copy(out, s.cursors)
	return out
}

// Add inserts a cursor and makes it the main cursor, then normalizes.
func (s *Set) Add(c Cursor) {
	s.cursors = append(s.cursors, c)
	s.main = len(s.cursors) - 1
	s.Normalize()
}

// Single collapses the set to just the main cursor; its selection and
// per-cursor clipboard are cleared. This is the escape behavior.
func (s *Set) Single() {
	main := s.cursors[s.main]
	main = main.Collapse()
	main.Clip = ""
	s.cursors = s.cursors[:1]
	s.cursors[0] = main
	s.main = 0
}

// SetAll replaces every cursor and normalizes. The main cursor becomes the
// one covering the previous main's range start.
func (s *Set) SetAll(cursors []Cursor) {
	if len(cursors) == 0 {
		return
	}
	s.cursors = s.cursors[:0]
	s.cursors = append(s.cursors, cursors...)
	if s.main >= len(s.cursors) {
		s.main = len(s.cursors) - 1
	}
	s.Normalize()
}

// ShiftFrom moves every cursor at index >= from by delta. This is the
// cumulative correction applied to not-yet-processed cursors after an edit
// changes the buffer length: only edits strictly left of those cursors can
// have occurred, so a plain shift is exact.
func (s *Set) ShiftFrom(from int, delta int) {
	for i := from; i < len(s.cursors); i++ {
		s.cursors[i] = s.cursors[i].Shift(delta)
	}
}

// ClampAll limits every cursor to [0, maxOffset] and normalizes.
func (s *Set) ClampAll(maxOffset Offset) {
	for i := range s.cursors {
		s.cursors[i] = s.cursors[i].Clamp(maxOffset)
	}
	s.Normalize()
}

// HasSelection reports whether any cursor selects a non-empty range.
func (s *Set) HasSelection() bool {
	for _, c := range s.cursors {
		if c.HasSelection() {
			return true
		}
	}
	return false
}

// CollapseAll drops every selection, keeping positions.
func (s *Set) CollapseAll() {
	for i := range s.cursors {
		s.cursors[i] = s.cursors[i].Collapse()
	}
	s.Normalize()
}

// Normalize restores the set invariant: sort by range start, relocate the
// main cursor by its pre-sort range start, then merge touching or
// overlapping neighbors in one pass.
func (s *Set) Normalize() {
	if len(s.cursors) == 0 {
		s.cursors = append(s.cursors, New(0))
		s.main = 0
		return
	}
	if s.main >= len(s.cursors) {
		s.main = len(s.cursors) - 1
	}
	mainStart := s.cursors[s.main].Start()

	sort.SliceStable(s.cursors, func(i, j int) bool {
		si, sj := s.cursors[i].Start(), s.cursors[j].Start()
		if si != sj {
			return si < sj
		}
		return s.cursors[i].End() > s.cursors[j].End()
	})

	merged := s.cursors[:1]
	for _, c := range s.cursors[1:] {
		last := &merged[len(merged)-1]
		if c.Start() <= last.End() {
			*last = merge(*last, c)
		} else {
			merged = append(merged, c)
		}
	}
	s.cursors = merged

	s.relocateMain(mainStart)
}

// relocateMain finds the cursor now covering the main cursor's pre-action
// range start. Position-based, not index-based: sorting and merging have
// invalidated any index taken before the action.
func (s *Set) relocateMain(start Offset) {
	for i, c := range s.cursors {
		if c.Start() <= start && start <= c.End() {
			s.main = i
			return
		}
		if c.Start() > start {
			s.main = i
			return
		}
	}
	s.main = len(s.cursors) - 1
}

// merge combines two touching or overlapping cursors. The union range is
// kept; the anchor direction is inherited from whichever cursor was
// extending further in its own direction. A zero-width result carries no
// selection.
func merge(a, b Cursor) Cursor {
	start := a.Start()
	if b.Start() < start {
		start = b.Start()
	}
	end := a.End()
	if b.End() > end {
		end = b.End()
	}
	if start == end {
		out := New(start)
		out.Clip = pickClip(a, b)
		return out
	}

	backward := false
	switch {
	case !a.IsForward() && !b.IsForward():
		backward = true
	case !a.IsForward() && a.Start() <= b.Start() && a.Len() >= b.Len():
		// The backward cursor reaches the union's left edge and extends at
		// least as far as the forward one.
		backward = true
	case !b.IsForward() && b.Start() <= a.Start() && b.Len() >= a.Len():
		backward = true
	}

	var out Cursor
	if backward {
		out = NewSelection(end, start)
	} else {
		out = NewSelection(start, end)
	}
	out.Clip = pickClip(a, b)
	return out
}

// pickClip keeps the first non-empty per-cursor clipboard across a merge.
func pickClip(a, b Cursor) string {
	if a.Clip != "" {
		return a.Clip
	}
	return b.Clip
}

// Snapshot captures every cursor's (position, anchor) pair in order.
func (s *Set) Snapshot() []Snap {
	out := make([]Snap, len(s.cursors))
	for i, c := range s.cursors {
		out[i] = Snap{Pos: c.Pos, Anchor: c.Anchor}
	}
	return out
}

// Restore replaces the set's positions from a snapshot. Clipboards and
// wanted columns are reset; the main cursor is relocated by range start.
func (s *Set) Restore(snaps []Snap) {
	if len(snaps) == 0 {
		return
	}
	s.cursors = s.cursors[:0]
	for _, snap := range snaps {
		s.cursors = append(s.cursors, NewSelection(snap.Anchor, snap.Pos))
	}
	if s.main >= len(s.cursors) {
		s.main = len(s.cursors) - 1
	}
	s.Normalize()
}
