package history

import (
	"testing"
	"time"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// fixedClock lets tests control debounce decisions exactly.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLog(debounce time.Duration) (*Log, *fixedClock) {
	clk := &fixedClock{t: time.Unix(1000, 0)}
	l := NewLog(debounce)
	l.now = clk.now
	return l, clk
}

// record drives a full action through the log while applying the edit to
// the buffer, the way the editor does.
func record(t *testing.T, l *Log, b *buffer.Buffer, set *cursor.Set, op Op, force bool) {
	t.Helper()
	l.BeginAction(set, force)
	if _, err := b.Apply(op.Forward()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	l.Record(op)
	l.EndAction(set, force)
}

func TestOpInverse(t *testing.T) {
	tests := []struct {
		name string
		op   Op
	}{
		{"insert", NewInsertOp(2, "xyz")},
		{"delete", NewDeleteOp(buffer.Range{Start: 2, End: 5}, "cde")},
		{"replace", NewReplaceOp(buffer.Range{Start: 1, End: 4}, "bcd", "Q")},
		{"grow", NewReplaceOp(buffer.Range{Start: 0, End: 1}, "a", "longer")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewFromString("abcdefgh")
			before := b.Text()
			if _, err := b.Apply(tt.op.Forward()); err != nil {
				t.Fatalf("forward: %v", err)
			}
			if _, err := b.Apply(tt.op.Inverse()); err != nil {
				t.Fatalf("inverse: %v", err)
			}
			if got := b.Text(); got != before {
				t.Errorf("round trip = %q, want %q", got, before)
			}
		})
	}
}

func TestInvertTwiceIsIdentity(t *testing.T) {
	op := NewReplaceOp(buffer.Range{Start: 3, End: 6}, "old", "newer")
	if got := op.Invert().Invert(); got != op {
		t.Errorf("double invert = %+v, want %+v", got, op)
	}
}

func TestUndoRestoresTextAndCursors(t *testing.T) {
	b := buffer.NewFromString("hello")
	set := cursor.NewSet(5)
	l, _ := newTestLog(time.Second)

	op := NewInsertOp(5, "!")
	l.BeginAction(set, false)
	if _, err := b.Apply(op.Forward()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	l.Record(op)
	set.SetAll([]cursor.Cursor{cursor.New(6)})
	l.EndAction(set, false)
	if got := b.Text(); got != "hello!" {
		t.Fatalf("Text() = %q", got)
	}

	snaps, ok := l.Undo(b)
	if !ok {
		t.Fatal("Undo reported nothing to undo")
	}
	if got := b.Text(); got != "hello" {
		t.Errorf("Text() after undo = %q, want %q", got, "hello")
	}
	set.Restore(snaps)
	if got := set.Main().Pos; got != 5 {
		t.Errorf("cursor after undo = %d, want 5", got)
	}

	snaps, ok = l.Redo(b)
	if !ok {
		t.Fatal("Redo reported nothing to redo")
	}
	set.Restore(snaps)
	if got := set.Main().Pos; got != 6 {
		t.Errorf("cursor after redo = %d, want 6", got)
	}
}

func TestUndoRedoCycle(t *testing.T) {
	b := buffer.NewFromString("ab")
	set := cursor.NewSet(0)
	l, clk := newTestLog(time.Second)

	record(t, l, b, set, NewInsertOp(2, "c"), false)
	clk.advance(2 * time.Second)
	record(t, l, b, set, NewInsertOp(3, "d"), false)
	if got := b.Text(); got != "abcd" {
		t.Fatalf("Text() = %q", got)
	}

	if _, ok := l.Undo(b); !ok {
		t.Fatal("first undo failed")
	}
	if got := b.Text(); got != "abc" {
		t.Errorf("after first undo = %q", got)
	}
	if _, ok := l.Undo(b); !ok {
		t.Fatal("second undo failed")
	}
	if got := b.Text(); got != "ab" {
		t.Errorf("after second undo = %q", got)
	}
	if _, ok := l.Undo(b); ok {
		t.Error("undo on empty log must be a no-op")
	}

	if _, ok := l.Redo(b); !ok {
		t.Fatal("first redo failed")
	}
	if got := b.Text(); got != "abc" {
		t.Errorf("after first redo = %q", got)
	}
	if _, ok := l.Redo(b); !ok {
		t.Fatal("second redo failed")
	}
	if got := b.Text(); got != "abcd" {
		t.Errorf("after second redo = %q", got)
	}
	if _, ok := l.Redo(b); ok {
		t.Error("redo on empty stack must be a no-op")
	}
}

func TestDebounceGroupsKeystrokes(t *testing.T) {
	b := buffer.NewFromString("")
	set := cursor.NewSet(0)
	l, clk := newTestLog(500 * time.Millisecond)

	// Three quick keystrokes fuse into one group.
	record(t, l, b, set, NewInsertOp(0, "a"), false)
	clk.advance(100 * time.Millisecond)
	record(t, l, b, set, NewInsertOp(1, "b"), false)
	clk.advance(100 * time.Millisecond)
	record(t, l, b, set, NewInsertOp(2, "c"), false)

	// A pause, then one more.
	clk.advance(time.Second)
	record(t, l, b, set, NewInsertOp(3, "d"), false)

	if got := l.Depth(); got != 2 {
		t.Fatalf("Depth() = %d, want 2", got)
	}
	l.Undo(b)
	if got := b.Text(); got != "abc" {
		t.Errorf("after undo = %q, want %q (single keystroke undone)", got, "abc")
	}
	l.Undo(b)
	if got := b.Text(); got != "" {
		t.Errorf("after second undo = %q, want empty (burst undone as one)", got)
	}
}

func TestForcedBoundaryNeverFuses(t *testing.T) {
	b := buffer.NewFromString("")
	set := cursor.NewSet(0)
	l, _ := newTestLog(time.Hour)

	record(t, l, b, set, NewInsertOp(0, "a"), false)
	record(t, l, b, set, NewInsertOp(1, "PASTE"), true)
	record(t, l, b, set, NewInsertOp(6, "b"), false)

	if got := l.Depth(); got != 3 {
		t.Fatalf("Depth() = %d, want 3 (forced boundaries on both sides)", got)
	}
	l.Undo(b)
	if got := b.Text(); got != "aPASTE" {
		t.Errorf("after undo = %q, want %q", got, "aPASTE")
	}
	l.Undo(b)
	if got := b.Text(); got != "a" {
		t.Errorf("after second undo = %q, want %q", got, "a")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	b := buffer.NewFromString("")
	set := cursor.NewSet(0)
	l, clk := newTestLog(500 * time.Millisecond)

	record(t, l, b, set, NewInsertOp(0, "a"), false)
	l.Undo(b)
	if !l.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	clk.advance(time.Second)
	record(t, l, b, set, NewInsertOp(0, "b"), false)
	if l.CanRedo() {
		t.Error("new edit must clear redo history")
	}
}

func TestUndoClosesOpenGroupFirst(t *testing.T) {
	b := buffer.NewFromString("")
	set := cursor.NewSet(0)
	l, clk := newTestLog(time.Hour)

	record(t, l, b, set, NewInsertOp(0, "a"), false)
	clk.advance(time.Millisecond)
	record(t, l, b, set, NewInsertOp(1, "b"), false)

	// The group is still open; undo must close it and undo it whole.
	if _, ok := l.Undo(b); !ok {
		t.Fatal("undo failed")
	}
	if got := b.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestMultiOpGroupUndoesInReverse(t *testing.T) {
	b := buffer.NewFromString("ab\ncd")
	set := cursor.NewSet(0)
	l, _ := newTestLog(time.Hour)

	// One action inserting at two cursors: offsets recorded post-shift.
	l.BeginAction(set, true)
	for _, op := range []Op{NewInsertOp(0, "X"), NewInsertOp(4, "Y")} {
		if _, err := b.Apply(op.Forward()); err != nil {
			t.Fatalf("apply: %v", err)
		}
		l.Record(op)
	}
	l.EndAction(set, true)
	if got := b.Text(); got != "Xab\nYcd" {
		t.Fatalf("Text() = %q", got)
	}

	if _, ok := l.Undo(b); !ok {
		t.Fatal("undo failed")
	}
	if got := b.Text(); got != "ab\ncd" {
		t.Errorf("Text() after undo = %q, want %q", got, "ab\ncd")
	}
	if _, ok := l.Redo(b); !ok {
		t.Fatal("redo failed")
	}
	if got := b.Text(); got != "Xab\nYcd" {
		t.Errorf("Text() after redo = %q, want %q", got, "Xab\nYcd")
	}
}

func TestEmptyActionLeavesNoGroup(t *testing.T) {
	b := buffer.NewFromString("x")
	set := cursor.NewSet(0)
	l, _ := newTestLog(time.Hour)

	l.BeginAction(set, true)
	l.EndAction(set, true)

	if l.CanUndo() {
		t.Error("action with no edits must not create an undo group")
	}
	if _, ok := l.Undo(b); ok {
		t.Error("undo must be a silent no-op")
	}
}
