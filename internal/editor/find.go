package editor

import (
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/cursor"
	"github.com/scribe-editor/scribe/internal/search"
)

// OpenSearch starts a search session for needle, seeds the active match at
// the first result at or after the main cursor, and selects it.
func (e *Editor) OpenSearch(needle string) {
	if needle == "" {
		e.sess = nil
		return
	}
	e.sess = search.NewSession(needle, search.Find(e.buf.Text(), needle))
	if m, ok := e.sess.NearestAtOrAfter(e.cursors.Main().Pos); ok {
		e.gotoMatch(m)
	}
}

// Search returns the active search session, or nil.
func (e *Editor) Search() *search.Session {
	return e.sess
}

// findStep cycles the active match forward or backward with wraparound.
func (e *Editor) findStep(dir int) {
	if e.sess == nil {
		return
	}
	var m int
	var ok bool
	if dir > 0 {
		m, ok = e.sess.Next()
	} else {
		m, ok = e.sess.Prev()
	}
	if ok {
		e.gotoMatch(m)
	}
}

// gotoMatch collapses to a single cursor selecting the match.
func (e *Editor) gotoMatch(m int) {
	n := len([]rune(e.sess.Needle))
	e.cursors.SetAll([]cursor.Cursor{cursor.NewSelection(m, m+n)})
}

// JumpTo collapses to a single cursor at offset, as for a go-to-definition
// result landing in this buffer.
func (e *Editor) JumpTo(offset buffer.Offset) {
	if offset < 0 {
		offset = 0
	}
	if offset > e.buf.Len() {
		offset = e.buf.Len()
	}
	e.cursors.SetAll([]cursor.Cursor{cursor.New(offset)})
}
