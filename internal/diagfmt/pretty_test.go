package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"antext/internal/diag"
	"antext/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("songs/test.antx", []byte("[t/1000/500]Hello\n"))
	bag := diag.NewBag(10)
	d := diag.NewError(
		diag.BuildNonMonotonicTiming,
		source.Span{File: id, Start: 1, End: 11},
		"line end 500ms precedes start 1000ms",
	)
	bag.Add(d.WithNote(source.Span{File: id, Start: 3, End: 7}, "start declared here"))
	return bag, fs, id
}

func TestPrettyHeader(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	got := buf.String()
	want := "songs/test.antx:1:2: ERROR BLD3001: line end 500ms precedes start 1000ms\n"
	if got != want {
		t.Errorf("Pretty = %q, want %q", got, want)
	}
}

func TestPrettyContextUnderline(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: true})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output too short: %q", buf.String())
	}
	if lines[1] != "  [t/1000/500]Hello" {
		t.Errorf("context line = %q", lines[1])
	}
	// Span байты 1..11 — подчёркивание начинается со второй колонки.
	want := "   ^" + strings.Repeat("~", 9)
	if lines[2] != want {
		t.Errorf("underline = %q, want %q", lines[2], want)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: start declared here") {
		t.Errorf("notes missing: %q", buf.String())
	}
}

func TestPrettyMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.antx", []byte("hi\n"))
	bag := diag.NewBag(10)
	for range 5 {
		bag.Add(diag.NewError(diag.SynMalformedField, source.Span{File: id}, "boom"))
	}
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Max: 2})
	got := buf.String()
	if strings.Count(got, "SYN2002") != 2 {
		t.Errorf("want 2 diagnostics, got %q", got)
	}
	if !strings.Contains(got, "... and 3 more") {
		t.Errorf("missing truncation marker: %q", got)
	}
}

func TestPrettyBasenamePath(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(buf.String(), "test.antx:1:2:") {
		t.Errorf("basename path: %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, _ := makeBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "BLD3001" || d.Severity != "ERROR" {
		t.Errorf("diag = %+v", d)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 2 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "start declared here" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.antx", []byte("hi\n"))
	bag := diag.NewBag(10)
	for range 4 {
		bag.Add(diag.NewError(diag.SynInvalidTimestamp, source.Span{File: id}, "bad"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 3})
	if out.Count != 3 {
		t.Errorf("count = %d, want 3", out.Count)
	}
}
