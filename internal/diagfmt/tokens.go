package diagfmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nut/internal/source"
	"nut/internal/token"
)

// TokenOutput is one element of the `nut tokens --format json` array.
type TokenOutput struct {
	Kind    string   `json:"kind"`
	Class   string   `json:"class"`
	Text    string   `json:"text,omitempty"`
	Line    uint32   `json:"line"`
	Col     uint32   `json:"col"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Leading []string `json:"leading,omitempty"`
}

// untilEOF cuts the stream after the first EOF token.
func untilEOF(tokens []token.Token) []token.Token {
	for i := range tokens {
		if tokens[i].Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

func triviaKinds(tok *token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		out = append(out, tr.Kind.String())
	}
	return out
}

// FormatTokensPretty: одна строка на токен,
//
//	   3  Ident      ident   1:13-1:14 "x" [Space BlockComment Space]
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	bw := bufio.NewWriter(w)
	for i, tok := range untilEOF(tokens) {
		from, to := fs.Resolve(tok.Span)
		fmt.Fprintf(bw, "%4d  %-10s %-7s %d:%d-%d:%d", i+1, tok.Kind, tok.Kind.Class(), from.Line, from.Col, to.Line, to.Col)
		if tok.Text != "" {
			fmt.Fprintf(bw, " %q", tok.Text)
		}
		if kinds := triviaKinds(&tok); len(kinds) > 0 {
			fmt.Fprintf(bw, " [%s]", strings.Join(kinds, " "))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tokens = untilEOF(tokens)
	out := make([]TokenOutput, len(tokens))
	for i := range tokens {
		tok := &tokens[i]
		pos, _ := fs.Resolve(tok.Span)
		out[i] = TokenOutput{
			Kind:    tok.Kind.String(),
			Class:   tok.Kind.Class().String(),
			Text:    tok.Text,
			Line:    pos.Line,
			Col:     pos.Col,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Leading: triviaKinds(tok),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
