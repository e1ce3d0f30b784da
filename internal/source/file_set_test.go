package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"antext/internal/source"
)

func TestAddVirtualNormalizes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.antx", []byte("\xEF\xBB\xBFhello\r\nworld\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "hello\nworld\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&source.FileVirtual == 0 {
		t.Errorf("expected FileVirtual flag")
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Errorf("expected FileHadBOM flag")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Errorf("expected FileNormalizedCRLF flag")
	}
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.antx")
	if err := os.WriteFile(path, []byte("[t/0/1000]Hello\nWorld\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)

	// "World" начинается на второй строке, смещение 16
	start, end := fs.Resolve(source.Span{File: id, Start: 16, End: 21})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %v, want 2:1", start)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Errorf("end = %v, want 2:6", end)
	}

	if got := f.GetLine(2); got != "World" {
		t.Errorf("GetLine(2) = %q, want %q", got, "World")
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q, want empty", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 5, End: 10}
	b := source.Span{File: 0, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("Cover = %v, want 0:2-10", c)
	}

	other := source.Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must not change span, got %v", got)
	}
}
