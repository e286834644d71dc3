package buffer

import (
	"errors"
	"testing"

	"github.com/scribe-editor/scribe/internal/highlight"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		offset  Offset
		text    string
		want    string
		wantEnd Offset
	}{
		{"empty buffer", "", 0, "hello", "hello", 5},
		{"at start", "world", 0, "hello ", "hello world", 6},
		{"at end", "hello", 5, " world", "hello world", 11},
		{"middle", "held", 2, "llo wor", "hello world", 9},
		{"multibyte", "ab", 1, "é", "aéb", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			end, err := b.Insert(tt.offset, tt.text)
			if err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if end != tt.wantEnd {
				t.Errorf("end = %d, want %d", end, tt.wantEnd)
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if !b.Modified() {
				t.Error("buffer not marked modified")
			}
		})
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := NewFromString("ab")
	if _, err := b.Insert(3, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("err = %v, want ErrOffsetOutOfRange", err)
	}
	if _, err := b.Insert(-1, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("err = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end Offset
		want       string
	}{
		{"middle", "hello world", 5, 11, "hello"},
		{"start", "hello world", 0, 6, "world"},
		{"all", "hello", 0, 5, ""},
		{"empty range", "hello", 2, 2, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			if err := b.Delete(tt.start, tt.end); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteInvalidRange(t *testing.T) {
	b := NewFromString("abc")
	if err := b.Delete(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("err = %v, want ErrRangeInvalid", err)
	}
	if err := b.Delete(0, 4); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("err = %v, want ErrRangeInvalid", err)
	}
}

func TestApply(t *testing.T) {
	b := NewFromString("hello world")
	res, err := b.Apply(NewReplace(6, 11, "go"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := b.Text(); got != "hello go" {
		t.Errorf("Text() = %q, want %q", got, "hello go")
	}
	if res.OldText != "world" {
		t.Errorf("OldText = %q, want %q", res.OldText, "world")
	}
	if res.NewRange != (Range{Start: 6, End: 8}) {
		t.Errorf("NewRange = %v, want [6,8)", res.NewRange)
	}
	if res.Delta != -3 {
		t.Errorf("Delta = %d, want -3", res.Delta)
	}
}

func TestLineIndex(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines int
		starts    []Offset
	}{
		{"empty", "", 1, []Offset{0}},
		{"one line no newline", "abc", 1, []Offset{0}},
		{"trailing newline", "abc\n", 2, []Offset{0, 4}},
		{"three lines", "a\nbb\nccc", 3, []Offset{0, 2, 5}},
		{"blank lines", "\n\n", 3, []Offset{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.text)
			if got := b.LineCount(); got != tt.wantLines {
				t.Fatalf("LineCount() = %d, want %d", got, tt.wantLines)
			}
			for i, want := range tt.starts {
				if got := b.LineStart(i); got != want {
					t.Errorf("LineStart(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestLineIndexTracksEdits(t *testing.T) {
	b := NewFromString("a\nb")
	if got := b.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	if _, err := b.Insert(1, "\nx"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := b.LineCount(); got != 3 {
		t.Errorf("LineCount() after insert = %d, want 3", got)
	}
	if got := b.LineText(1); got != "x" {
		t.Errorf("LineText(1) = %q, want %q", got, "x")
	}
}

func TestLineEndAndText(t *testing.T) {
	b := NewFromString("ab\ncde\n")
	if got := b.LineEnd(0); got != 2 {
		t.Errorf("LineEnd(0) = %d, want 2", got)
	}
	if got := b.LineEnd(1); got != 6 {
		t.Errorf("LineEnd(1) = %d, want 6", got)
	}
	if got := b.LineText(1); got != "cde" {
		t.Errorf("LineText(1) = %q, want %q", got, "cde")
	}
	if got := b.LineText(2); got != "" {
		t.Errorf("LineText(2) = %q, want empty", got)
	}
}

func TestFirstNonBlank(t *testing.T) {
	b := NewFromString("  ab\n\t\tc\n\n   \nx")
	tests := []struct {
		line int
		want Offset
	}{
		{0, 2},  // "  ab"
		{1, 7},  // "\t\tc"
		{2, 9},  // blank line: its own end
		{3, 13}, // spaces only: line end
		{4, 14}, // "x"
	}
	for _, tt := range tests {
		if got := b.FirstNonBlank(tt.line); got != tt.want {
			t.Errorf("FirstNonBlank(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestLineColRoundTrip(t *testing.T) {
	b := NewFromString("ab\ncde\n\nf")
	for off := 0; off <= b.Len(); off++ {
		pt := b.LineCol(off)
		if back := b.PosFromLineCol(pt); back != off {
			t.Errorf("offset %d -> %v -> %d", off, pt, back)
		}
	}
}

func TestLineCol(t *testing.T) {
	b := NewFromString("ab\ncde")
	tests := []struct {
		offset Offset
		want   Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}}, // on the newline
		{3, Point{1, 0}},
		{6, Point{1, 3}}, // end of buffer
		{-5, Point{0, 0}},
		{99, Point{1, 3}},
	}
	for _, tt := range tests {
		if got := b.LineCol(tt.offset); got != tt.want {
			t.Errorf("LineCol(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestPosFromLineColClamps(t *testing.T) {
	b := NewFromString("ab\ncde")
	tests := []struct {
		p    Point
		want Offset
	}{
		{Point{0, 0}, 0},
		{Point{0, 99}, 2}, // clamped to before the newline
		{Point{1, 1}, 4},
		{Point{1, 99}, 6}, // last line clamps to buffer end
		{Point{-1, 0}, 0},
		{Point{9, 0}, 6},
	}
	for _, tt := range tests {
		if got := b.PosFromLineCol(tt.p); got != tt.want {
			t.Errorf("PosFromLineCol(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestSearchIter(t *testing.T) {
	b := NewFromString("foo bar foo baz foo")
	it := b.Search("foo")
	var got []Offset
	for {
		off, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, off)
	}
	want := []Offset{0, 8, 16}
	if len(got) != len(want) {
		t.Fatalf("matches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matches = %v, want %v", got, want)
		}
	}
}

func TestSearchIterNonOverlapping(t *testing.T) {
	b := NewFromString("aaaa")
	it := b.Search("aa")
	first, ok := it.Next()
	if !ok || first != 0 {
		t.Fatalf("first = %d, %v", first, ok)
	}
	second, ok := it.Next()
	if !ok || second != 2 {
		t.Fatalf("second = %d, %v; matches must not overlap", second, ok)
	}
	if _, ok := it.Next(); ok {
		t.Error("expected exhausted iterator")
	}
}

func TestSearchIterEmptyNeedle(t *testing.T) {
	b := NewFromString("abc")
	if _, ok := b.Search("").Next(); ok {
		t.Error("empty needle must never match")
	}
}

func TestSearchIterReset(t *testing.T) {
	b := NewFromString("xx")
	it := b.Search("x")
	it.Next()
	it.Next()
	it.Reset()
	if off, ok := it.Next(); !ok || off != 0 {
		t.Errorf("after Reset: %d, %v; want 0, true", off, ok)
	}
}

func TestRunesReturnsCopy(t *testing.T) {
	b := NewFromString("abc")
	r := b.Runes(0, 3)
	if _, err := b.Insert(0, "zz"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if string(r) != "abc" {
		t.Errorf("copy mutated: %q", string(r))
	}
}

func TestClassAtMapsByteSpansToRunes(t *testing.T) {
	// The leading é is two bytes but one rune; the tokenizer reports byte
	// spans, ClassAt answers in rune offsets.
	b := NewFromString("é := true", WithTokenizer(highlight.NewGoTokenizer()))
	if got := b.ClassAt(0); got != highlight.ClassText {
		t.Errorf("ClassAt(0) = %v, want ClassText", got)
	}
	for off := 5; off < 9; off++ {
		if got := b.ClassAt(off); got != highlight.ClassConstant {
			t.Errorf("ClassAt(%d) = %v, want ClassConstant", off, got)
		}
	}
}

func TestClassAtTracksEdits(t *testing.T) {
	b := NewFromString("x", WithTokenizer(highlight.NewGoTokenizer()))
	if got := b.ClassAt(0); got != highlight.ClassText {
		t.Fatalf("ClassAt(0) = %v, want ClassText", got)
	}
	if _, err := b.Insert(0, "// "); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := b.ClassAt(3); got != highlight.ClassComment {
		t.Errorf("ClassAt(3) = %v, want ClassComment after edit", got)
	}
}

func TestTextRangeClamps(t *testing.T) {
	b := NewFromString("abc")
	if got := b.TextRange(-2, 99); got != "abc" {
		t.Errorf("TextRange(-2, 99) = %q, want %q", got, "abc")
	}
	if got := b.TextRange(2, 1); got != "" {
		t.Errorf("TextRange(2, 1) = %q, want empty", got)
	}
}
