package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Text represents a run of literal characters.
	Text
	// LBracket represents '[', the directive opener.
	LBracket // [
	// RBracket represents ']', the directive closer.
	RBracket // ]
	// Slash represents '/', field and syllable separator.
	Slash // /
	// Newline represents '\n', the line terminator.
	Newline // \n
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Text:
		return "Text"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Slash:
		return "Slash"
	case Newline:
		return "Newline"
	}
	return "Unknown"
}

// IsReserved reports whether the token is one of the reserved marks.
func (k Kind) IsReserved() bool {
	switch k {
	case LBracket, RBracket, Slash:
		return true
	default:
		return false
	}
}
