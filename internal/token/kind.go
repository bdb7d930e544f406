package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token. Builtin type names are identifiers too.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit

	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Assign represents the assignment operator token.
	Assign // =
	// Bang represents the logical not operator token.
	Bang // !
	// PlusPlus represents the increment operator token.
	PlusPlus // ++
	// MinusMinus represents the decrement operator token.
	MinusMinus // --
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	KwReturn:   "KwReturn",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Assign:     "Assign",
	Bang:       "Bang",
	PlusPlus:   "PlusPlus",
	MinusMinus: "MinusMinus",
	Semicolon:  "Semicolon",
	Comma:      "Comma",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
}

var kindSpellings = [...]string{
	KwReturn:   "return",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Assign:     "=",
	Bang:       "!",
	PlusPlus:   "++",
	MinusMinus: "--",
	Semicolon:  ";",
	Comma:      ",",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the fixed source text of punctuation and keyword kinds,
// or a descriptive name for the variable ones ("identifier", "end of file").
func (k Kind) Spelling() string {
	switch k {
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case EOF:
		return "end of file"
	case Invalid:
		return "invalid token"
	}
	if int(k) < len(kindSpellings) && kindSpellings[k] != "" {
		return kindSpellings[k]
	}
	return k.String()
}
