package token

import "nut/internal/source"

// Token is one lexeme. Text is the exact source slice for identifiers and
// literals; Leading holds the trivia consumed before it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Class groups kinds for tooling output.
type Class uint8

const (
	ClassOther Class = iota // EOF, Invalid
	ClassIdent
	ClassLiteral
	ClassKeyword
	ClassPunct // operators and delimiters
)

var classNames = [...]string{
	ClassOther:   "other",
	ClassIdent:   "ident",
	ClassLiteral: "literal",
	ClassKeyword: "keyword",
	ClassPunct:   "punct",
}

func (c Class) String() string { return classNames[c] }

// Class of a kind; every kind with a fixed spelling other than a keyword is
// punctuation.
func (k Kind) Class() Class {
	switch {
	case k == Ident:
		return ClassIdent
	case k == IntLit || k == FloatLit:
		return ClassLiteral
	case k == KwReturn:
		return ClassKeyword
	case int(k) < len(kindSpellings) && kindSpellings[k] != "":
		return ClassPunct
	}
	return ClassOther
}
