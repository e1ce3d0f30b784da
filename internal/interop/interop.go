// Package interop converts between the canonical doc.Document model
// and foreign caption formats.
//
// LRC, SRT and WebVTT are bidirectional. All three carry line-level
// timing only, so converting a syllable-timed document through them is
// lossy: syllable timing is dropped, and LRC/SRT additionally drop
// speaker tags. TTML and AMLL are declared for interface completeness
// and fail with UnsupportedError until implemented.
package interop

import (
	"fmt"
	"strings"

	"antext/internal/diag"
	"antext/internal/doc"
)

// Format identifies a foreign caption format.
type Format uint8

const (
	LRC Format = iota
	SRT
	WebVTT
	TTML
	AMLL
)

func (f Format) String() string {
	switch f {
	case LRC:
		return "lrc"
	case SRT:
		return "srt"
	case WebVTT:
		return "vtt"
	case TTML:
		return "ttml"
	case AMLL:
		return "amll"
	}
	return "unknown"
}

// FromName resolves a format by name or file extension.
func FromName(name string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "lrc":
		return LRC, true
	case "srt":
		return SRT, true
	case "vtt", "webvtt":
		return WebVTT, true
	case "ttml":
		return TTML, true
	case "amll":
		return AMLL, true
	}
	return 0, false
}

// UnsupportedError is returned for formats that are declared but not
// implemented in this core.
type UnsupportedError struct {
	Format Format
	Op     string // "import" или "export"
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s %s is not supported", diag.InteropUnsupportedFormat.ID(), e.Op, e.Format)
}

// ParseError reports malformed foreign input with its 1-based line number.
type ParseError struct {
	Format Format
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: line %d: %s", diag.InteropMalformedInput.ID(), e.Format, e.Line, e.Msg)
}

// Import parses foreign bytes into a document.
func Import(f Format, data []byte) (*doc.Document, error) {
	switch f {
	case LRC:
		return importLRC(data)
	case SRT:
		return importSRT(data)
	case WebVTT:
		return importVTT(data)
	default:
		return nil, &UnsupportedError{Format: f, Op: "import"}
	}
}

// Export renders a document into foreign bytes. The document is
// treated as read-only.
func Export(f Format, d *doc.Document) ([]byte, error) {
	switch f {
	case LRC:
		return exportLRC(d)
	case SRT:
		return exportSRT(d)
	case WebVTT:
		return exportVTT(d)
	default:
		return nil, &UnsupportedError{Format: f, Op: "export"}
	}
}
