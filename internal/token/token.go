package token

import (
	"antext/internal/source"
)

// Token represents a single source token with its location.
// Text is filled only for Kind == Text; the reserved marks carry
// their identity in Kind alone.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsText reports whether the token is a literal text run.
func (t Token) IsText() bool { return t.Kind == Text }

// Terminates reports whether the token ends a caption line.
func (t Token) Terminates() bool {
	return t.Kind == Newline || t.Kind == EOF
}
