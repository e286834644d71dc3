package editor

// Key identifies a non-printing key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
	KeyF3
)

// KeyEvent is one decoded input event: a key, the rune for KeyRune, and
// modifier state.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Shift bool
	Ctrl  bool
	Alt   bool
}
