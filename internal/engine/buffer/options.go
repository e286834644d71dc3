package buffer

import "github.com/scribe-editor/scribe/internal/highlight"

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithTokenizer sets the tokenizer invoked on every Sync.
func WithTokenizer(tok highlight.Tokenizer) Option {
	return func(b *Buffer) {
		if tok != nil {
			b.tok = tok
		}
	}
}

// WithID sets an explicit buffer identity, used when several editors must
// agree on a shared identifier up front.
func WithID(id ID) Option {
	return func(b *Buffer) {
		b.id = id
	}
}
