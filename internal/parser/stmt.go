package parser

import (
	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/token"
)

// parseBlock parses '{' statement* '}'. A block opens no layer of its own.
func (p *Parser) parseBlock() (ast.NodeID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	block := p.tree.New(ast.StatementBlock, open.Span)
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.errAtPeek(diag.SynUnclosedBrace, "expected '}' before end of file")
			return ast.NoNodeID, false
		}
		stmt, ok := p.parseStatement()
		if !ok {
			return ast.NoNodeID, false
		}
		p.tree.AddChild(block, stmt)
	}
	p.advance()
	return block, true
}

// parseStatement wraps a declaration, a return or a bare expression into a
// Statement node and consumes the trailing ';'.
func (p *Parser) parseStatement() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	stmt := p.tree.New(ast.Statement, tok.Span)

	var (
		inner ast.NodeID
		ok    bool
	)
	switch {
	case tok.Kind == token.KwReturn:
		inner, ok = p.parseReturn()
	case tok.Kind == token.Ident && p.scopes.isType(tok.Text):
		inner, ok = p.parseDeclaration()
	default:
		var expr ast.NodeID
		expr, ok = p.parseExpr()
		if ok {
			inner = p.tree.New(ast.ExprWrapper, p.tree.Get(expr).Span)
			p.tree.AddChild(inner, expr)
		}
	}
	if !ok {
		return ast.NoNodeID, false
	}
	p.tree.AddChild(stmt, inner)

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';', got "+p.got()); !ok {
		return ast.NoNodeID, false
	}
	return stmt, true
}

// parseReturn parses 'return' expr?.
func (p *Parser) parseReturn() (ast.NodeID, bool) {
	kw := p.advance()
	ret := p.tree.New(ast.ReturnStmt, kw.Span)
	if p.at(token.Semicolon) {
		return ret, true
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoNodeID, false
	}
	p.tree.AddChild(ret, expr)
	return ret, true
}
