// Package highlight provides the token classification used for syntax coloring.
//
// The core consumes a Tokenizer as a pure function: full buffer bytes in,
// ordered spans out. Re-tokenization is always whole-buffer; there is no
// incremental path.
package highlight

// Class is the semantic class of a run of text.
type Class uint8

const (
	ClassText Class = iota
	ClassComment
	ClassString
	ClassNumber
	ClassKeyword
	ClassType
	ClassConstant
	ClassFunction
	ClassOperator

	classCount
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassText:
		return "text"
	case ClassComment:
		return "comment"
	case ClassString:
		return "string"
	case ClassNumber:
		return "number"
	case ClassKeyword:
		return "keyword"
	case ClassType:
		return "type"
	case ClassConstant:
		return "constant"
	case ClassFunction:
		return "function"
	case ClassOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) tagged with a class.
type Span struct {
	Start int
	End   int
	Class Class
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Tokenizer classifies text into ordered, non-overlapping spans.
// Byte ranges not covered by any span default to ClassText.
type Tokenizer interface {
	Tokenize(text []byte) []Span
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(text []byte) []Span

// Tokenize calls f.
func (f Func) Tokenize(text []byte) []Span {
	return f(text)
}

// None is a Tokenizer that emits no spans; everything renders as plain text.
var None Tokenizer = Func(func([]byte) []Span { return nil })
