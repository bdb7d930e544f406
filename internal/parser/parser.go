package parser

import (
	"context"
	"fmt"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/lexer"
	"nut/internal/source"
	"nut/internal/token"
	"nut/internal/trace"
	"nut/internal/types"
)

type Options struct {
	Reporter diag.Reporter   // receives the lexer's and the parser's diagnostics; may be nil
	Builtins *types.Builtins // nil selects types.Default()
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx     *lexer.Lexer
	file   *source.File
	tree   *ast.Tree
	scopes *scopeStack
	rep    *firstError
	last   source.Span // span последнего съеденного токена
}

// ParseFile parses one file into tree and returns the Program node.
// The first lexical or syntax error stops parsing and is returned as *Error;
// the returned root is then NoNodeID and tree may hold detached nodes.
func ParseFile(ctx context.Context, file *source.File, tree *ast.Tree, opts Options) (ast.NodeID, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "parse")
	defer span.End("")

	if opts.Builtins == nil {
		opts.Builtins = types.Default()
	}
	rep := &firstError{out: opts.Reporter}
	p := &Parser{
		lx:     lexer.New(file, lexer.Options{Reporter: rep}),
		file:   file,
		tree:   tree,
		scopes: newScopeStack(opts.Builtins),
		rep:    rep,
	}

	root, ok := p.parseProgram()
	if !ok {
		if rep.first == nil {
			// unreachable unless a failing path forgot to report
			rep.first = &diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken, Primary: p.lx.Peek().Span, Message: "unexpected token"}
		}
		span.WithExtra("error", rep.first.Code.ID())
		return ast.NoNodeID, &Error{Diag: *rep.first}
	}
	span.WithExtra("nodes", fmt.Sprint(tree.Len()))
	return root, nil
}

// parseProgram parses function_decl* до EOF.
func (p *Parser) parseProgram() (ast.NodeID, bool) {
	root := p.tree.New(ast.Program, p.lx.Peek().Span)
	for !p.at(token.EOF) {
		fn, ok := p.parseFunctionDecl()
		if !ok {
			return ast.NoNodeID, false
		}
		p.tree.AddChild(root, fn)
	}
	return root, true
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.last = tok.Span
	}
	return tok
}

// expect съедает токен нужного вида или репортит ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errAtPeek(code, msg)
	return token.Token{Kind: token.Invalid}, false
}

// errAtPeek reports at the upcoming token. An Invalid token was already
// reported by the lexer and is not reported twice.
func (p *Parser) errAtPeek(code diag.Code, msg string) {
	tok := p.lx.Peek()
	if tok.Kind == token.Invalid {
		return
	}
	sp := tok.Span
	if tok.Kind == token.EOF && p.last.End > 0 {
		// EOF after trailing trivia: point right after the last real token
		sp = source.Span{File: p.last.File, Start: p.last.End, End: p.last.End}
	}
	p.report(code, sp, msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(p.rep, code, sp, msg)
}

// got renders the upcoming token for "expected X, got Y" messages.
func (p *Parser) got() string {
	tok := p.lx.Peek()
	if tok.Text != "" {
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Kind.Spelling()
}
