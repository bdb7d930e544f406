package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynExpectSemicolon  Code = 2012
	SynExpectIdentifier Code = 2102
	SynExpectType       Code = 2202
	SynExpectExpression Code = 2203
	SynUndeclaredIdent  Code = 2301
	SynRedeclaration    Code = 2302
	SynNotATypeName     Code = 2303

	// Семантические
	SemaInfo                  Code = 3000
	SemaError                 Code = 3001
	SemaUnresolvedType        Code = 3005
	SemaTypeMismatch          Code = 3015
	SemaCallOnNonIdentifier   Code = 3201
	SemaNotAFunction          Code = 3202
	SemaArityMismatch         Code = 3203
	SemaNotAValue             Code = 3204
	SemaDeclaredVoid          Code = 3205
	SemaInitializerMismatch   Code = 3206
	SemaArgumentMismatch      Code = 3207
	SemaReturnExpectsValue    Code = 3208
	SemaReturnUnexpectedValue Code = 3209
	SemaReturnMismatch        Code = 3210
	SemaUnusedResult          Code = 3301
	SemaUnreachableCode       Code = 3302
	SemaInternal              Code = 3999

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Ошибки проекта / конфигурации
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectType:               "Expect type",
	SynExpectExpression:         "Expect expression",
	SynUndeclaredIdent:          "Use of undeclared identifier",
	SynRedeclaration:            "Redeclaration in the same scope",
	SynNotATypeName:             "Name does not denote a type",
	SemaInfo:                    "Semantic information",
	SemaError:                   "Semantic error",
	SemaUnresolvedType:          "Unresolved type name",
	SemaTypeMismatch:            "Incompatible operand types",
	SemaCallOnNonIdentifier:     "Call on a non-identifier",
	SemaNotAFunction:            "Called object is not a function",
	SemaArityMismatch:           "Wrong number of arguments",
	SemaNotAValue:               "Name used as a value does not denote a variable",
	SemaDeclaredVoid:            "Variable declared with a noncopyable type",
	SemaInitializerMismatch:     "Initializer type mismatch",
	SemaArgumentMismatch:        "Argument type mismatch",
	SemaReturnExpectsValue:      "Missing return value",
	SemaReturnUnexpectedValue:   "Unexpected return value",
	SemaReturnMismatch:          "Return type mismatch",
	SemaUnusedResult:            "Unused expression result",
	SemaUnreachableCode:         "Unreachable code",
	SemaInternal:                "Internal compiler error",
	IOLoadFileError:             "Failed to load file",
	ProjInfo:                    "Project information",
	ProjInvalidConfig:           "Invalid project configuration",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
