package parser_test

import (
	"strings"
	"testing"

	"antext/internal/diag"
	"antext/internal/doc"
	"antext/internal/lexer"
	"antext/internal/parser"
	"antext/internal/source"
)

func parse(t *testing.T, input string) (*doc.Document, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("test.antx", []byte(input))))
	bag := diag.NewBag(16)
	res := parser.ParseDocument(lx, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if res.Ok {
		return res.Doc, bag
	}
	return nil, bag
}

func mustParse(t *testing.T, input string) *doc.Document {
	t.Helper()
	d, bag := parse(t, input)
	if d == nil {
		first, _ := bag.First()
		t.Fatalf("parse of %q failed: %s %s", input, first.Code.ID(), first.Message)
	}
	return d
}

func mustFail(t *testing.T, input string, code diag.Code) diag.Diagnostic {
	t.Helper()
	d, bag := parse(t, input)
	if d != nil {
		t.Fatalf("parse of %q succeeded, expected %s", input, code.ID())
	}
	first, ok := bag.First()
	if !ok {
		t.Fatalf("parse of %q failed without diagnostics", input)
	}
	if first.Code != code {
		t.Fatalf("parse of %q failed with %s %q, want %s", input, first.Code.ID(), first.Message, code.ID())
	}
	return first
}

func TestMetaAndTimedLine(t *testing.T) {
	// сценарий: метаданные + одна строка с таймингом
	d := mustParse(t, "[meta/title/Test]\n[t/0/1000]Hello\n")

	if got := d.Meta["title"]; got != "Test" {
		t.Errorf("meta title = %q, want %q", got, "Test")
	}
	if len(d.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(d.Lines))
	}
	l := d.Lines[0]
	if l.Start != doc.At(0) || l.End != doc.At(1000) {
		t.Errorf("line timing = %v..%v, want 0ms..1000ms", l.Start, l.End)
	}
	if len(l.Syllables) != 1 || l.Syllables[0].Text != "Hello" {
		t.Errorf("syllables = %+v", l.Syllables)
	}
}

func TestNonMonotonicLineTiming(t *testing.T) {
	mustFail(t, "[t/1000/500]X\n", diag.BuildNonMonotonicTiming)
}

func TestUnknownDirectivePassesThrough(t *testing.T) {
	d := mustParse(t, "[unknown/a/b]\n")
	if len(d.Lines) != 0 {
		t.Errorf("lines = %d, want 0", len(d.Lines))
	}
	if len(d.Extra) != 1 {
		t.Fatalf("extra = %+v, want one opaque directive", d.Extra)
	}
	got := d.Extra[0].Fields
	if len(got) != 3 || got[0] != "unknown" || got[1] != "a" || got[2] != "b" {
		t.Errorf("fields = %v", got)
	}
}

func TestUnknownDirectiveOnLine(t *testing.T) {
	// после начала строки опаковая директива принадлежит строке
	d := mustParse(t, "Hello[x/1]\n")
	if len(d.Extra) != 0 {
		t.Errorf("document extra = %+v, want none", d.Extra)
	}
	if len(d.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(d.Lines))
	}
	l := d.Lines[0]
	if len(l.Extra) != 1 || len(l.Extra[0].Fields) != 2 || l.Extra[0].Fields[0] != "x" {
		t.Errorf("line extra = %+v", l.Extra)
	}
	if got := l.Text(); got != "Hello" {
		t.Errorf("text = %q", got)
	}
}

func TestControlCharactersRejected(t *testing.T) {
	cases := []string{
		"a\tb\n", // таб в содержимом
		"a\rb\n", // одинокий '\r' переживает нормализацию
		"a\x00b\n",
		"a\x7fb\n",
		"[meta/title/a\tb]\n", // и в полях директив
		"[x/a\tb]\n",
	}
	for _, input := range cases {
		first := mustFail(t, input, diag.SynMalformedField)
		if !strings.Contains(first.Message, "control character") {
			t.Errorf("parse of %q: message = %q", input, first.Message)
		}
	}
}

func TestSyllables(t *testing.T) {
	d := mustParse(t, "[t/0/1000]He[t/0]/llo[t/400]\n")
	l := d.Lines[0]
	if len(l.Syllables) != 2 {
		t.Fatalf("syllables = %+v", l.Syllables)
	}
	if l.Syllables[0].Text != "He" || l.Syllables[0].Start != doc.At(0) {
		t.Errorf("syllable 0 = %+v", l.Syllables[0])
	}
	if l.Syllables[1].Text != "llo" || l.Syllables[1].Start != doc.At(400) {
		t.Errorf("syllable 1 = %+v", l.Syllables[1])
	}
}

func TestTimingOnlyLine(t *testing.T) {
	// инструментальная пауза: тайминг без текста
	d := mustParse(t, "[t/5000/9000]\n")
	l := d.Lines[0]
	if len(l.Syllables) != 0 {
		t.Errorf("syllables = %+v, want none", l.Syllables)
	}
	if l.Start != doc.At(5000) || l.End != doc.At(9000) {
		t.Errorf("timing = %v..%v", l.Start, l.End)
	}
}

func TestSpeakers(t *testing.T) {
	d := mustParse(t, "[spk/mia]Hello\n[spk/seb]World\n")
	if d.Lines[0].Speaker != "mia" || d.Lines[1].Speaker != "seb" {
		t.Errorf("speakers = %q, %q", d.Lines[0].Speaker, d.Lines[1].Speaker)
	}

	// повторный тег переопределяет
	d = mustParse(t, "[spk/mia][spk/seb]Hello\n")
	if d.Lines[0].Speaker != "seb" {
		t.Errorf("speaker = %q, want seb", d.Lines[0].Speaker)
	}
}

func TestRosterValidation(t *testing.T) {
	mustParse(t, "[meta/roster/mia,seb]\n[spk/mia]Hi\n")
	mustFail(t, "[meta/roster/mia,seb]\n[spk/keith]Hi\n", diag.BuildUnknownSpeaker)

	// состав может прийти и из опций (манифест проекта)
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("test.antx", []byte("[spk/keith]Hi\n"))))
	bag := diag.NewBag(4)
	res := parser.ParseDocument(lx, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Roster:   []string{"keith"},
	})
	if !res.Ok {
		t.Error("speaker from options roster must be accepted")
	}
}

func TestMetaAfterFirstLine(t *testing.T) {
	mustFail(t, "Hello\n[meta/title/Test]\n", diag.SynMalformedField)
}

func TestStrayAndUnterminatedBrackets(t *testing.T) {
	mustFail(t, "Hello]world\n", diag.SynMalformedField)
	mustFail(t, "[t/0/100", diag.SynUnterminatedBracket)
	mustFail(t, "[t/0/100\nx", diag.SynUnterminatedBracket)
}

func TestEscapes(t *testing.T) {
	d := mustParse(t, "[esc/lbr]verse[esc/rbr] a[esc/sol]b\n")
	if got := d.Lines[0].Text(); got != "[verse] a/b" {
		t.Errorf("text = %q", got)
	}
}

func TestEmptySyllables(t *testing.T) {
	mustFail(t, "/Hello\n", diag.SynMalformedField)
	mustFail(t, "Hello/\n", diag.SynMalformedField)
	mustFail(t, "He//llo\n", diag.SynMalformedField)
}

func TestBlankLinesSkipped(t *testing.T) {
	d := mustParse(t, "Hello\n\n\nWorld\n")
	if len(d.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(d.Lines))
	}
}

func TestMonotonicAcrossLines(t *testing.T) {
	mustParse(t, "[t/0/1000]a\n[t/1000/2000]b\n")
	mustParse(t, "[t/1000]a\n[t/1000]b\n") // равенство допустимо
	first := mustFail(t, "[t/2000]a\n[t/1000]b\n", diag.BuildNonMonotonicTiming)
	if !strings.Contains(first.Message, "before previous line") {
		t.Errorf("message = %q", first.Message)
	}
}

func TestSyllableMonotonicity(t *testing.T) {
	mustFail(t, "[t/0/1000]He[t/500]/llo[t/100]\n", diag.BuildNonMonotonicTiming)
	mustFail(t, "[t/0/1000]He[t/0]/llo[t/1500]\n", diag.BuildNonMonotonicTiming)
}

func TestLastLineWithoutNewline(t *testing.T) {
	d := mustParse(t, "Hello")
	if len(d.Lines) != 1 || d.Lines[0].Text() != "Hello" {
		t.Errorf("lines = %+v", d.Lines)
	}
}

func TestFailFastProducesNoDocument(t *testing.T) {
	d, bag := parse(t, "ok line\n[t/broken\nmore\n")
	if d != nil {
		t.Error("failed parse must not return a document")
	}
	if !bag.HasErrors() {
		t.Error("expected an error diagnostic")
	}
}
