package lexer

import (
	"fmt"

	"nut/internal/diag"
	"nut/internal/token"
)

// punctuation in match order: two-byte operators first.
var punctuation = [...]struct {
	text string
	kind token.Kind
}{
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"=", token.Assign},
	{"!", token.Bang},
	{";", token.Semicolon},
	{",", token.Comma},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, p := range punctuation {
		if lx.cursor.EatPrefix(p.text) {
			return lx.tokenFrom(p.kind, start)
		}
	}

	// целая руна, чтобы Span не резал UTF-8
	r, size := lx.nextRune()
	lx.cursor.Off += size
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}
