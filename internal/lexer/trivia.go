package lexer

import (
	"nut/internal/diag"
	"nut/internal/token"
)

// collectLeadingTrivia moves whitespace and comments in front of the next
// token into lx.hold. Runs of blanks and runs of newlines each become one
// trivia. Block comments do not nest.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case isSpace(b):
			lx.eatWhile(isSpace)
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			lx.eatWhile(func(c byte) bool { return c == '\n' })
			lx.pushTrivia(token.TriviaNewline, start)
		case lx.cursor.EatPrefix("//"):
			lx.eatWhile(func(c byte) bool { return c != '\n' })
			lx.pushTrivia(token.TriviaLineComment, start)
		case lx.cursor.EatPrefix("/*"):
			lx.skipBlockComment(start)
			lx.pushTrivia(token.TriviaBlockComment, start)
		default:
			return
		}
	}
}

// skipBlockComment consumes up to and including "*/"; without one it
// reports and stops at EOF.
func (lx *Lexer) skipBlockComment(start Mark) {
	for !lx.cursor.EatPrefix("*/") {
		if lx.cursor.EOF() {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatWhile(pred func(byte) bool) {
	for !lx.cursor.EOF() && pred(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
