package lexer

import (
	"fmt"
	"unicode/utf8"

	"nut/internal/diag"
	"nut/internal/source"
	"nut/internal/token"
)

// maxTokenLength bounds one identifier or literal. A longer token is
// reported and ends the scan of the file.
const maxTokenLength = 4096

// Lexer produces the significant tokens of one file; whitespace and
// comments ride along in Token.Leading.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	peeked *token.Token
	hold   []token.Trivia // trivia перед ещё не выданным токеном
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning EOF; trailing trivia is dropped.
func (lx *Lexer) Next() token.Token {
	if tok := lx.peeked; tok != nil {
		lx.peeked = nil
		return *tok
	}

	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		lx.hold = nil
		off := lx.cursor.Off
		return token.Token{Kind: token.EOF, Span: source.Span{File: lx.file.ID, Start: off, End: off}}
	}

	tok := lx.scan()
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token is longer than %d bytes", maxTokenLength))
		lx.cursor.SkipToEnd()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}
	tok.Leading, lx.hold = lx.hold, nil
	return tok
}

func (lx *Lexer) scan() token.Token {
	switch ch := lx.cursor.Peek(); {
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '_', ch >= utf8.RuneSelf, (ch|0x20) >= 'a' && (ch|0x20) <= 'z':
		return lx.scanWord()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the token Next would return without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.peeked == nil {
		tok := lx.Next()
		lx.peeked = &tok
	}
	return *lx.peeked
}

// All drains the lexer; the result always ends with EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) tokenFrom(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
