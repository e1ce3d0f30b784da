package diag_test

import (
	"strings"
	"testing"

	"antext/internal/diag"
	"antext/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("song.antx", []byte("[t/oops]Hello\n[t/500/100]World\n"))

	diags := []diag.Diagnostic{
		diag.NewError(diag.BuildNonMonotonicTiming,
			source.Span{File: id, Start: 14, End: 25},
			"line end 100ms precedes start 500ms"),
		diag.NewError(diag.SynInvalidTimestamp,
			source.Span{File: id, Start: 1, End: 7},
			"invalid timestamp \"oops\"").
			WithNote(source.Span{File: id, Start: 0, End: 8}, "expected milliseconds"),
	}

	got := diag.FormatShortDiagnostics(diags, fs, false)
	want := strings.Join([]string{
		"error SYN2003 song.antx:1:2 invalid timestamp \"oops\"",
		"error BLD3001 song.antx:2:1 line end 100ms precedes start 500ms",
	}, "\n")
	if got != want {
		t.Errorf("short output:\n%s\nwant:\n%s", got, want)
	}

	// с заметками добавляется строка note с кодом родителя
	withNotes := diag.FormatShortDiagnostics(diags, fs, true)
	if !strings.Contains(withNotes, "note SYN2003 song.antx:1:1 expected milliseconds") {
		t.Errorf("notes output missing note line:\n%s", withNotes)
	}

	if diag.FormatShortDiagnostics(nil, fs, false) != "" {
		t.Error("empty input should render to empty string")
	}
}
