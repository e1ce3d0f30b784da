package token_test

import (
	"testing"

	"antext/internal/token"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want string
	}{
		{token.Invalid, "Invalid"},
		{token.EOF, "EOF"},
		{token.Text, "Text"},
		{token.LBracket, "LBracket"},
		{token.RBracket, "RBracket"},
		{token.Slash, "Slash"},
		{token.Newline, "Newline"},
		{token.Kind(200), "Unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestIsReserved(t *testing.T) {
	reserved := []token.Kind{token.LBracket, token.RBracket, token.Slash}
	for _, k := range reserved {
		if !k.IsReserved() {
			t.Errorf("%s should be reserved", k)
		}
	}
	for _, k := range []token.Kind{token.Text, token.Newline, token.EOF} {
		if k.IsReserved() {
			t.Errorf("%s should not be reserved", k)
		}
	}
}
