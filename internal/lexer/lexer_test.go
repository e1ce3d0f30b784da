package lexer_test

import (
	"testing"

	"antext/internal/lexer"
	"antext/internal/source"
	"antext/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(t *testing.T, input string) *lexer.Lexer {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.antx", []byte(input))
	return lexer.New(fs.Get(id))
}

func collect(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestScanPlainLine(t *testing.T) {
	lx := makeTestLexer(t, "Hello world\n")
	toks := collect(lx)

	want := []token.Kind{token.Text, token.Newline, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[0].Text != "Hello world" {
		t.Errorf("text = %q, want %q", toks[0].Text, "Hello world")
	}
}

func TestScanDirectiveAndSeparators(t *testing.T) {
	lx := makeTestLexer(t, "[t/0/1000]He/llo")
	toks := collect(lx)

	want := []struct {
		kind token.Kind
		text string
	}{
		{token.LBracket, ""},
		{token.Text, "t"},
		{token.Slash, ""},
		{token.Text, "0"},
		{token.Slash, ""},
		{token.Text, "1000"},
		{token.RBracket, ""},
		{token.Text, "He"},
		{token.Slash, ""},
		{token.Text, "llo"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: got %s %q, want %s %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestSpansCoverInput(t *testing.T) {
	input := "[spk/a]Привет/мир\n"
	lx := makeTestLexer(t, input)
	toks := collect(lx)

	var off uint32
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		if tok.Span.Start != off {
			t.Fatalf("token %s starts at %d, want %d", tok.Kind, tok.Span.Start, off)
		}
		if tok.Span.Empty() {
			t.Fatalf("token %s has empty span", tok.Kind)
		}
		off = tok.Span.End
	}
	if int(off) != len(input) {
		t.Errorf("tokens cover %d bytes, want %d", off, len(input))
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx := makeTestLexer(t, "")
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %s", tok.Kind)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := makeTestLexer(t, "abc")
	p := lx.Peek()
	n := lx.Next()
	if p != n {
		t.Errorf("Peek = %v, Next = %v", p, n)
	}
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Errorf("expected EOF after single text run, got %s", tok.Kind)
	}
}
