// Package token defines lexical token kinds and trivia for the nut front end.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
//   - Builtin type names (int, float, char, void) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
package token
