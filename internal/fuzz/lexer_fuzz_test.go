package fuzztests

import (
	"testing"

	"nut/internal/diag"
	"nut/internal/lexer"
	"nut/internal/source"
	"nut/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.nut", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		size := uint32(len(file.Content))
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || tok.Span.End > size {
				t.Fatalf("token %v has span %v after offset %d (size %d)", tok.Kind, tok.Span, prevEnd, size)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}
