package token_test

import (
	"testing"

	"nut/internal/token"
)

func TestClass(t *testing.T) {
	cases := map[token.Kind]token.Class{
		token.IntLit:     token.ClassLiteral,
		token.FloatLit:   token.ClassLiteral,
		token.Ident:      token.ClassIdent,
		token.KwReturn:   token.ClassKeyword,
		token.EOF:        token.ClassOther,
		token.Invalid:    token.ClassOther,
		token.MinusMinus: token.ClassPunct,
	}
	for k, want := range cases {
		if got := k.Class(); got != want {
			t.Errorf("%v.Class() = %v, want %v", k, got, want)
		}
	}
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Assign, token.Bang,
		token.PlusPlus, token.MinusMinus, token.Semicolon, token.Comma,
		token.LParen, token.RParen, token.LBrace, token.RBrace,
	}
	for _, k := range ops {
		if k.Class() != token.ClassPunct {
			t.Fatalf("%v should be punctuation", k)
		}
	}
}

func TestKeywords(t *testing.T) {
	if k, ok := token.LookupKeyword("return"); !ok || k != token.KwReturn {
		t.Fatalf("return must be a keyword")
	}
	for _, s := range []string{"Return", "int", "void", "if"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("%q must not be a keyword", s)
		}
	}
}

func TestSpelling(t *testing.T) {
	cases := map[token.Kind]string{
		token.PlusPlus:  "++",
		token.Semicolon: ";",
		token.Ident:     "identifier",
		token.EOF:       "end of file",
		token.KwReturn:  "return",
	}
	for k, want := range cases {
		if got := k.Spelling(); got != want {
			t.Errorf("%v.Spelling() = %q, want %q", k, got, want)
		}
	}
	if token.RBrace.String() != "RBrace" {
		t.Errorf("unexpected String(): %q", token.RBrace.String())
	}
}
