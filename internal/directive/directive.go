// Package directive interprets bracketed [...] groups of the Animated
// Text format into typed directive records.
//
// Grammar: [keyword/field1/field2/...]. Recognized keywords are
// case-sensitive: "meta", "t", "spk", "esc". Unknown keywords pass
// through as opaque records so that a document written for a richer
// implementation still loads here.
package directive

import (
	"antext/internal/source"
)

// Kind discriminates the directive union.
type Kind uint8

const (
	// Unknown is the forward-compatible pass-through variant.
	Unknown Kind = iota
	// Meta is [meta/key/value], file-level metadata.
	Meta
	// Timing is [t/startMs] or [t/startMs/endMs].
	Timing
	// Speaker is [spk/id], the duet/idol speaker tag.
	Speaker
	// Escape is [esc/name], a reserved character literal.
	Escape
)

func (k Kind) String() string {
	switch k {
	case Meta:
		return "meta"
	case Timing:
		return "t"
	case Speaker:
		return "spk"
	case Escape:
		return "esc"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

// Directive is a closed tagged union over the recognized directive
// forms. Only the fields of the active Kind are meaningful.
type Directive struct {
	Kind Kind
	Span source.Span

	// Meta
	Key   string
	Value string

	// Timing, в миллисекундах
	Start  uint32
	End    uint32
	HasEnd bool

	// Speaker
	ID string

	// Escape: развёрнутый литерал ("[", "]" или "/")
	Literal string

	// Unknown: сырые поля, включая ключевое слово
	Raw []string
}

// именованные escape-последовательности; сырые зарезервированные байты
// внутри поля невозможны по построению
var escapeNames = map[string]string{
	"lbr": "[",
	"rbr": "]",
	"sol": "/",
}

// ControlRune returns the first C0/DEL character in s. The wire format
// has no representation for control characters (a lone '\r' would not
// survive newline normalization), so both content and directive fields
// reject them at parse time.
func ControlRune(s string) (rune, bool) {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return r, true
		}
	}
	return 0, false
}

// EscapeName возвращает имя escape-директивы для зарезервированного символа.
func EscapeName(r rune) (string, bool) {
	switch r {
	case '[':
		return "lbr", true
	case ']':
		return "rbr", true
	case '/':
		return "sol", true
	}
	return "", false
}
