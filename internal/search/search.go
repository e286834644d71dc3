// Package search provides literal text search over buffer content: a
// stateless scan producing ordered match offsets, and a session that cycles
// through results with wraparound.
package search

// Find returns the start offsets (in runes) of every non-overlapping
// occurrence of needle in text, left to right, case-sensitive.
func Find(text, needle string) []int {
	if needle == "" {
		return nil
	}
	var out []int
	runes := []rune(text)
	nr := []rune(needle)
	for i := 0; i+len(nr) <= len(runes); i++ {
		if matchAt(runes, nr, i) {
			out = append(out, i)
			i += len(nr) - 1
		}
	}
	return out
}

func matchAt(runes, needle []rune, at int) bool {
	for j, r := range needle {
		if runes[at+j] != r {
			return false
		}
	}
	return true
}

// Session holds the results of one search and the index of the active
// match. Next and Prev cycle with wraparound.
type Session struct {
	Needle  string
	matches []int
	active  int
}

// NewSession creates a session over precomputed match offsets.
func NewSession(needle string, matches []int) *Session {
	return &Session{Needle: needle, matches: matches}
}

// Empty reports whether the session has no matches.
func (s *Session) Empty() bool {
	return len(s.matches) == 0
}

// Count returns the number of matches.
func (s *Session) Count() int {
	return len(s.matches)
}

// Matches returns all match start offsets in order.
func (s *Session) Matches() []int {
	return s.matches
}

// Active returns the current match offset, or false when empty.
func (s *Session) Active() (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	return s.matches[s.active], true
}

// ActiveIndex returns the index of the current match.
func (s *Session) ActiveIndex() int {
	return s.active
}

// NearestAtOrAfter seeds the active match: the first result starting at or
// after pos, or the first result overall when none qualifies.
func (s *Session) NearestAtOrAfter(pos int) (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.active = 0
	for i, m := range s.matches {
		if m >= pos {
			s.active = i
			break
		}
	}
	return s.matches[s.active], true
}

// Next advances to the next match, wrapping past the end.
func (s *Session) Next() (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.active = (s.active + 1) % len(s.matches)
	return s.matches[s.active], true
}

// Prev steps to the previous match, wrapping past the start.
func (s *Session) Prev() (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.active = (s.active - 1 + len(s.matches)) % len(s.matches)
	return s.matches[s.active], true
}
