package lexer

import (
	"nut/internal/diag"
	"nut/internal/token"
)

// scanNumber reads decimal literals: 0, 123, 1.0, 1., .5, 1e-3, 1.0e+10.
// A fraction or exponent makes it a FloatLit. Malformed input is reported
// and comes back as Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.eatWhile(isDec)
	if lx.cursor.Eat('.') {
		kind = token.FloatLit
		lx.eatWhile(isDec)
	}
	if lx.cursor.Eat('e') || lx.cursor.Eat('E') {
		kind = token.FloatLit
		if !lx.cursor.Eat('+') {
			lx.cursor.Eat('-')
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		lx.eatWhile(isDec)
	}

	// хвост вида "12abc": не число и не идентификатор
	if r, _ := lx.nextRune(); identRune(r, false) {
		for r, size := lx.nextRune(); size > 0 && identRune(r, false); r, size = lx.nextRune() {
			lx.cursor.Off += size
		}
		return lx.badNumber(start, "invalid digit in number literal")
	}
	return lx.tokenFrom(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
