package driver

import (
	"context"
	"strconv"

	"nut/internal/diag"
	"nut/internal/lexer"
	"nut/internal/source"
	"nut/internal/token"
	"nut/internal/trace"
)

// TokenizeResult is the token stream of one file, EOF included.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes all of it. Lexical errors go to Bag and do
// not stop the scan; only a load failure is returned.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "lex")
	defer span.End(path)

	res := &TokenizeResult{FileSet: source.NewFileSet(), Bag: diag.NewBag(maxDiagnostics)}
	id, err := res.FileSet.Load(path)
	if err != nil {
		return nil, err
	}
	res.File = res.FileSet.Get(id)
	res.Tokens = lexer.New(res.File, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}}).All()
	span.WithExtra("tokens", strconv.Itoa(len(res.Tokens)))
	return res, nil
}
