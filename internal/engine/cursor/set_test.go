package cursor

import "testing"

func TestAddSortsAndSetsMain(t *testing.T) {
	s := NewSet(10)
	s.Add(New(2))
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if got := s.Get(0).Pos; got != 2 {
		t.Errorf("cursors[0].Pos = %d, want 2", got)
	}
	if got := s.Main().Pos; got != 2 {
		t.Errorf("Main().Pos = %d, want 2 (last added)", got)
	}
}

func TestAddDuplicateMerges(t *testing.T) {
	s := NewSet(5)
	s.Add(New(5))
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after merging identical cursors", s.Count())
	}
}

func TestNormalizeMergesOverlap(t *testing.T) {
	tests := []struct {
		name        string
		cursors     []Cursor
		wantCount   int
		wantStart   Offset
		wantEnd     Offset
		wantForward bool
	}{
		{
			name:        "overlapping forward selections",
			cursors:     []Cursor{NewSelection(0, 5), NewSelection(3, 8)},
			wantCount:   1,
			wantStart:   0,
			wantEnd:     8,
			wantForward: true,
		},
		{
			name:        "touching selections",
			cursors:     []Cursor{NewSelection(0, 3), NewSelection(3, 6)},
			wantCount:   1,
			wantStart:   0,
			wantEnd:     6,
			wantForward: true,
		},
		{
			name:        "both backward stays backward",
			cursors:     []Cursor{NewSelection(5, 0), NewSelection(8, 3)},
			wantCount:   1,
			wantStart:   0,
			wantEnd:     8,
			wantForward: false,
		},
		{
			name:        "longer backward from left edge wins",
			cursors:     []Cursor{NewSelection(6, 0), NewSelection(4, 7)},
			wantCount:   1,
			wantStart:   0,
			wantEnd:     7,
			wantForward: false,
		},
		{
			name:      "disjoint stay separate",
			cursors:   []Cursor{NewSelection(0, 2), NewSelection(4, 6)},
			wantCount: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSetFrom(tt.cursors)
			if s.Count() != tt.wantCount {
				t.Fatalf("Count() = %d, want %d", s.Count(), tt.wantCount)
			}
			if tt.wantCount != 1 {
				return
			}
			c := s.Get(0)
			if c.Start() != tt.wantStart || c.End() != tt.wantEnd {
				t.Errorf("range = [%d,%d), want [%d,%d)", c.Start(), c.End(), tt.wantStart, tt.wantEnd)
			}
			if c.IsForward() != tt.wantForward {
				t.Errorf("IsForward() = %v, want %v", c.IsForward(), tt.wantForward)
			}
		})
	}
}

func TestNormalizeKeepsOrder(t *testing.T) {
	s := NewSetFrom([]Cursor{New(9), New(1), New(5)})
	want := []Offset{1, 5, 9}
	for i, w := range want {
		if got := s.Get(i).Pos; got != w {
			t.Errorf("cursors[%d].Pos = %d, want %d", i, got, w)
		}
	}
}

func TestMainRelocatesAfterMerge(t *testing.T) {
	s := NewSet(2)
	s.At(0).Anchor = 0
	s.At(0).Pos = 4 // main selects [0,4)
	s.Add(NewSelection(3, 8))
	// The two selections merged; the surviving cursor must still be main.
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	if s.MainIndex() != 0 {
		t.Errorf("MainIndex() = %d, want 0", s.MainIndex())
	}
}

func TestMainFollowsRangeStart(t *testing.T) {
	s := NewSetFrom([]Cursor{New(1), New(5), New(9)})
	s.main = 1 // main at offset 5
	s.Add(New(7))
	// Added cursor becomes main and sorts between 5 and 9.
	if got := s.Main().Pos; got != 7 {
		t.Errorf("Main().Pos = %d, want 7", got)
	}
}

func TestSingleKeepsMain(t *testing.T) {
	s := NewSetFrom([]Cursor{New(1), NewSelection(3, 6), New(8)})
	s.main = 1
	s.Single()
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	c := s.Main()
	if c.Pos != 6 {
		t.Errorf("Pos = %d, want 6 (collapsed main)", c.Pos)
	}
	if c.HasSelection() {
		t.Error("selection must be dropped")
	}
}

func TestShiftFrom(t *testing.T) {
	s := NewSetFrom([]Cursor{New(1), New(5), New(9)})
	s.ShiftFrom(1, 3)
	want := []Offset{1, 8, 12}
	for i, w := range want {
		if got := s.Get(i).Pos; got != w {
			t.Errorf("cursors[%d].Pos = %d, want %d", i, got, w)
		}
	}
}

func TestClampAll(t *testing.T) {
	s := NewSetFrom([]Cursor{New(2), NewSelection(4, 12)})
	s.ClampAll(6)
	for i, c := range s.All() {
		if c.Pos > 6 || c.Anchor > 6 {
			t.Errorf("cursors[%d] = %v not clamped to 6", i, c)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := NewSetFrom([]Cursor{NewSelection(0, 3), New(7)})
	snaps := s.Snapshot()

	s.SetAll([]Cursor{New(1)})
	s.Restore(snaps)

	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	c := s.Get(0)
	if c.Anchor != 0 || c.Pos != 3 {
		t.Errorf("cursors[0] = anchor %d pos %d, want 0/3", c.Anchor, c.Pos)
	}
	if got := s.Get(1).Pos; got != 7 {
		t.Errorf("cursors[1].Pos = %d, want 7", got)
	}
}

func TestMergeKeepsClip(t *testing.T) {
	a := NewSelection(0, 4)
	a.Clip = "kept"
	b := NewSelection(2, 6)
	s := NewSetFrom([]Cursor{a, b})
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	if got := s.Get(0).Clip; got != "kept" {
		t.Errorf("Clip = %q, want %q", got, "kept")
	}
}
