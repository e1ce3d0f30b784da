package diag

import (
	"fmt"
	"sort"
	"strings"

	"antext/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for CLI short output and golden tests.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		loc, _ := fs.Resolve(d.Primary)
		rendered = append(rendered, goldenDiagnostic{
			Severity: strings.ToLower(d.Severity.String()),
			Code:     d.Code.ID(),
			Path:     fs.Get(d.Primary.File).Path,
			Line:     loc.Line,
			Column:   loc.Col,
			Message:  sanitizeMessage(d.Message),
		})
		if includeNotes {
			for _, note := range d.Notes {
				nloc, _ := fs.Resolve(note.Span)
				rendered = append(rendered, goldenDiagnostic{
					Severity: "note",
					Code:     d.Code.ID(),
					Path:     fs.Get(note.Span.File).Path,
					Line:     nloc.Line,
					Column:   nloc.Col,
					Message:  sanitizeMessage(note.Msg),
				})
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
