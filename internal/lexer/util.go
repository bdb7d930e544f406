package lexer

import (
	"unicode"
	"unicode/utf8"

	"nut/internal/token"
)

// identRune reports whether r may appear in an identifier. Digits are
// allowed everywhere except the first position.
func identRune(r rune, first bool) bool {
	switch {
	case r == '_':
		return true
	case r < utf8.RuneSelf:
		b := byte(r)
		return (b|0x20) >= 'a' && (b|0x20) <= 'z' || !first && isDec(b)
	default:
		return unicode.IsLetter(r) || !first && unicode.IsDigit(r)
	}
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

// nextRune декодирует руну под курсором; size 0 на EOF.
func (lx *Lexer) nextRune() (r rune, size uint32) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, n := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	return r, uint32(n) // n <= utf8.UTFMax
}

// scanWord reads an identifier and classifies it as keyword or Ident.
// Non-identifier input falls through to operator scanning.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	for first := true; ; first = false {
		r, size := lx.nextRune()
		if size == 0 || !identRune(r, first) {
			break
		}
		lx.cursor.Off += size
	}
	if lx.cursor.Off == uint32(start) {
		return lx.scanOperatorOrPunct()
	}
	tok := lx.tokenFrom(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
