package editor

// ActionKind is the closed set of logical editor actions.
type ActionKind int

const (
	ActNone ActionKind = iota

	// Movement. Extend on the Action turns each into selection extension.
	ActMoveLeft
	ActMoveRight
	ActMoveUp
	ActMoveDown
	ActMoveWordLeft
	ActMoveWordRight
	ActMoveHome
	ActMoveEnd
	ActMovePageUp
	ActMovePageDown

	// Text entry.
	ActInsertRune
	ActInsertNewline
	ActInsertLineBelow
	ActInsertLineAbove

	// Deletion.
	ActBackspace
	ActDeleteForward

	// Indentation.
	ActTab
	ActBacktab

	// Line operations.
	ActDuplicateLines
	ActMoveLinesUp
	ActMoveLinesDown
	ActToggleComment

	// Selection.
	ActSelectAll
	ActSelectWord
	ActSelectLine
	ActSelectNextOccurrence
	ActEscape

	// Clipboard.
	ActCopy
	ActCut
	ActPaste

	// Search.
	ActFindNext
	ActFindPrev

	// History and persistence.
	ActUndo
	ActRedo
	ActSave
)

// Action is one resolved logical action.
type Action struct {
	Kind   ActionKind
	Rune   rune // for ActInsertRune
	Extend bool // shift-modified movement extends the selection
}

// forcesBoundary reports whether an action is inherently multi-step and
// must not fuse with surrounding keystrokes in the undo log. These force a
// group boundary both before and after.
func forcesBoundary(k ActionKind) bool {
	switch k {
	case ActPaste, ActCut, ActDuplicateLines, ActTab, ActBacktab,
		ActMoveLinesUp, ActMoveLinesDown, ActToggleComment,
		ActInsertLineAbove, ActInsertLineBelow, ActSave:
		return true
	}
	return false
}

// Resolve classifies an input event into an action. It is a pure function
// of the event and the cursor state; applying the action is a separate
// step so the mapping stays independently testable.
func Resolve(ev KeyEvent, st State) Action {
	switch ev.Key {
	case KeyRune:
		if ev.Ctrl {
			return resolveCtrlRune(ev, st)
		}
		return Action{Kind: ActInsertRune, Rune: ev.Rune}

	case KeyLeft:
		if ev.Ctrl {
			return Action{Kind: ActMoveWordLeft, Extend: ev.Shift}
		}
		return Action{Kind: ActMoveLeft, Extend: ev.Shift}
	case KeyRight:
		if ev.Ctrl {
			return Action{Kind: ActMoveWordRight, Extend: ev.Shift}
		}
		return Action{Kind: ActMoveRight, Extend: ev.Shift}
	case KeyUp:
		if ev.Alt {
			return Action{Kind: ActMoveLinesUp}
		}
		return Action{Kind: ActMoveUp, Extend: ev.Shift}
	case KeyDown:
		if ev.Alt {
			if ev.Shift {
				return Action{Kind: ActDuplicateLines}
			}
			return Action{Kind: ActMoveLinesDown}
		}
		return Action{Kind: ActMoveDown, Extend: ev.Shift}
	case KeyHome:
		return Action{Kind: ActMoveHome, Extend: ev.Shift}
	case KeyEnd:
		return Action{Kind: ActMoveEnd, Extend: ev.Shift}
	case KeyPageUp:
		return Action{Kind: ActMovePageUp, Extend: ev.Shift}
	case KeyPageDown:
		return Action{Kind: ActMovePageDown, Extend: ev.Shift}

	case KeyBackspace:
		return Action{Kind: ActBackspace}
	case KeyDelete:
		return Action{Kind: ActDeleteForward}
	case KeyEnter:
		if ev.Ctrl && ev.Shift {
			return Action{Kind: ActInsertLineAbove}
		}
		if ev.Ctrl {
			return Action{Kind: ActInsertLineBelow}
		}
		return Action{Kind: ActInsertNewline}
	case KeyTab:
		if ev.Shift {
			return Action{Kind: ActBacktab}
		}
		return Action{Kind: ActTab}
	case KeyEscape:
		return Action{Kind: ActEscape}
	case KeyF3:
		if ev.Shift {
			return Action{Kind: ActFindPrev}
		}
		return Action{Kind: ActFindNext}
	}
	return Action{Kind: ActNone}
}

// State is the slice of cursor state Resolve may consult.
type State struct {
	HasSelection bool
}

func resolveCtrlRune(ev KeyEvent, st State) Action {
	switch ev.Rune {
	case 'z', 'Z':
		if ev.Shift {
			return Action{Kind: ActRedo}
		}
		return Action{Kind: ActUndo}
	case 'y', 'Y':
		return Action{Kind: ActRedo}
	case 's', 'S':
		return Action{Kind: ActSave}
	case 'c', 'C':
		return Action{Kind: ActCopy}
	case 'x', 'X':
		return Action{Kind: ActCut}
	case 'v', 'V':
		return Action{Kind: ActPaste}
	case 'a', 'A':
		return Action{Kind: ActSelectAll}
	case 'l', 'L':
		return Action{Kind: ActSelectLine}
	case 'd', 'D':
		if st.HasSelection {
			return Action{Kind: ActSelectNextOccurrence}
		}
		return Action{Kind: ActSelectWord}
	case '/':
		return Action{Kind: ActToggleComment}
	}
	return Action{Kind: ActNone}
}
