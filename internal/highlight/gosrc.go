package highlight

import (
	"unicode"
	"unicode/utf8"
)

// GoTokenizer is a keyword and state based tokenizer for Go-like source.
// It recognizes line comments, block comments, string and rune literals,
// numbers and keywords. It is deliberately approximate; the editor only
// needs stable coloring, not a real lexer.
type GoTokenizer struct {
	keywords  map[string]Class
	lineToken string
}

// NewGoTokenizer creates a tokenizer for Go source.
func NewGoTokenizer() *GoTokenizer {
	t := &GoTokenizer{
		keywords:  make(map[string]Class),
		lineToken: "//",
	}
	t.addKeywords(ClassKeyword,
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var")
	t.addKeywords(ClassType,
		"bool", "byte", "complex64", "complex128", "error", "float32",
		"float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "any")
	t.addKeywords(ClassConstant, "true", "false", "nil", "iota")
	t.addKeywords(ClassFunction,
		"append", "cap", "close", "copy", "delete", "len", "make", "new",
		"panic", "print", "println", "recover", "clear", "min", "max")
	return t
}

func (t *GoTokenizer) addKeywords(class Class, words ...string) {
	for _, w := range words {
		t.keywords[w] = class
	}
}

// Tokenize scans the whole text in one pass and returns ordered spans.
func (t *GoTokenizer) Tokenize(text []byte) []Span {
	var spans []Span
	i := 0
	n := len(text)

	for i < n {
		c := text[i]

		switch {
		case c == '/' && i+1 < n && text[i+1] == '/':
			end := i
			for end < n && text[end] != '\n' {
				end++
			}
			spans = append(spans, Span{Start: i, End: end, Class: ClassComment})
			i = end

		case c == '/' && i+1 < n && text[i+1] == '*':
			end := i + 2
			for end+1 < n && !(text[end] == '*' && text[end+1] == '/') {
				end++
			}
			if end+1 < n {
				end += 2
			} else {
				end = n
			}
			spans = append(spans, Span{Start: i, End: end, Class: ClassComment})
			i = end

		case c == '"' || c == '`' || c == '\'':
			end := t.scanString(text, i)
			spans = append(spans, Span{Start: i, End: end, Class: ClassString})
			i = end

		case c >= '0' && c <= '9':
			end := i
			for end < n && isNumByte(text[end]) {
				end++
			}
			spans = append(spans, Span{Start: i, End: end, Class: ClassNumber})
			i = end

		case isIdentStart(rune(c)) || c >= utf8.RuneSelf:
			start := i
			for i < n {
				r, size := utf8.DecodeRune(text[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			word := string(text[start:i])
			if class, ok := t.keywords[word]; ok {
				spans = append(spans, Span{Start: start, End: i, Class: class})
			}

		default:
			i++
		}
	}

	return spans
}

// scanString returns the end of the literal starting at i, honoring escapes.
// Unterminated literals run to end of line (or end of text for raw strings).
func (t *GoTokenizer) scanString(text []byte, i int) int {
	quote := text[i]
	j := i + 1
	for j < len(text) {
		c := text[j]
		if quote != '`' && c == '\\' {
			j += 2
			continue
		}
		if c == quote {
			return j + 1
		}
		if quote != '`' && c == '\n' {
			return j
		}
		j++
	}
	return len(text)
}

func isNumByte(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '_' ||
		c == 'x' || c == 'X' || c == 'b' || c == 'o' ||
		c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
