package history

import (
	"time"

	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
)

// DefaultDebounce is the pause in typing after which the next edit starts a
// new undo group.
const DefaultDebounce = 500 * time.Millisecond

// Log records edit groups against a buffer and replays them for undo/redo.
//
// Group boundaries follow two rules: a debounce interval since the previous
// edit starts a new group, and inherently multi-step actions (paste,
// indent, line moves and the like) force a boundary both before and after
// so they never fuse with surrounding keystrokes.
type Log struct {
	undo []*Group
	redo []*Group
	open *Group

	debounce time.Duration
	lastEdit time.Time

	// now is the clock, swappable in tests.
	now func() time.Time
}

// NewLog creates a log with the given debounce interval; zero or negative
// means DefaultDebounce.
func NewLog(debounce time.Duration) *Log {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Log{debounce: debounce, now: time.Now}
}

// BeginAction prepares the log for the edits of one editor action. It
// decides whether a group boundary is required: always when forced, and
// otherwise when the debounce interval elapsed since the last edit. The
// cursor snapshot becomes the new group's Before state.
func (l *Log) BeginAction(set *cursor.Set, force bool) {
	now := l.now()
	if l.open != nil && (force || now.Sub(l.lastEdit) > l.debounce) {
		l.closeOpen()
	}
	if l.open == nil {
		l.open = &Group{openedAt: now}
	}
	if l.open.IsEmpty() {
		// No edit recorded yet: the pre-edit snapshot is the current state.
		l.open.Before = set.Snapshot()
	}
}

// Record appends an op to the open group and invalidates redo history.
// BeginAction must have been called for the current action.
func (l *Log) Record(op Op) {
	if l.open == nil {
		l.open = &Group{openedAt: l.now()}
	}
	l.open.Ops = append(l.open.Ops, op)
	l.redo = l.redo[:0]
}

// EndAction closes out one editor action: the After snapshot is refreshed
// so a close at any later point carries the state as of the last edit, and
// a forced boundary seals the group immediately.
func (l *Log) EndAction(set *cursor.Set, force bool) {
	if l.open == nil {
		return
	}
	l.open.After = set.Snapshot()
	l.lastEdit = l.now()
	if force {
		l.closeOpen()
	}
}

func (l *Log) closeOpen() {
	if l.open == nil {
		return
	}
	if !l.open.IsEmpty() {
		l.undo = append(l.undo, l.open)
	}
	l.open = nil
}

// CanUndo reports whether an undo target exists.
func (l *Log) CanUndo() bool {
	return len(l.undo) > 0 || (l.open != nil && !l.open.IsEmpty())
}

// CanRedo reports whether a redo target exists.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// Depth returns the number of closed undo groups.
func (l *Log) Depth() int {
	n := len(l.undo)
	if l.open != nil && !l.open.IsEmpty() {
		n++
	}
	return n
}

// Undo pops the most recent group (closing the open one first), applies the
// inverse of every op in reverse order, and returns the group's Before
// snapshot for the caller to restore. A silent no-op on an empty log.
func (l *Log) Undo(b *buffer.Buffer) ([]Snap, bool) {
	l.closeOpen()
	if len(l.undo) == 0 {
		return nil, false
	}
	g := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]

	for i := len(g.Ops) - 1; i >= 0; i-- {
		// Inverse ranges are exact by construction; a failure here means
		// the log and buffer disagree, which undo cannot repair.
		if _, err := b.Apply(g.Ops[i].Inverse()); err != nil {
			l.undo = append(l.undo, g)
			return nil, false
		}
	}

	l.redo = append(l.redo, g)
	return g.Before, true
}

// Redo re-applies the most recently undone group in forward order and
// returns its After snapshot. A silent no-op on an empty redo stack.
func (l *Log) Redo(b *buffer.Buffer) ([]Snap, bool) {
	if len(l.redo) == 0 {
		return nil, false
	}
	g := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]

	for i := range g.Ops {
		if _, err := b.Apply(g.Ops[i].Forward()); err != nil {
			l.redo = append(l.redo, g)
			return nil, false
		}
	}

	l.undo = append(l.undo, g)
	return g.After, true
}

// Clear removes all history.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
	l.open = nil
}
