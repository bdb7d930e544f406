package parser

import (
	"fmt"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/token"
)

// parseFunctionDecl parses type_spec IDENT '(' params? ')' block.
//
// The function name goes into the enclosing layer before the body is parsed
// so recursive calls resolve. Parameters and body locals share one new layer.
func (p *Parser) parseFunctionDecl() (ast.NodeID, bool) {
	typ, ok := p.parseTypeSpec()
	if !ok {
		return ast.NoNodeID, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name, got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.declare(nameTok) {
		return ast.NoNodeID, false
	}
	fn := p.tree.NewNamed(ast.FunctionDecl, nameTok.Span, nameTok.Text)
	p.tree.AddChild(fn, typ)

	p.scopes.push()
	defer p.scopes.pop()

	args, ok := p.parseArgumentList()
	if !ok {
		return ast.NoNodeID, false
	}
	p.tree.AddChild(fn, args)

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	p.tree.AddChild(fn, body)
	return fn, true
}

// parseArgumentList parses '(' (type_spec IDENT (',' type_spec IDENT)*)? ')'.
func (p *Parser) parseArgumentList() (ast.NodeID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name, got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	list := p.tree.New(ast.ArgumentList, open.Span)
	if p.at(token.RParen) {
		p.advance()
		return list, true
	}
	for {
		arg, ok := p.parseArgument()
		if !ok {
			return ast.NoNodeID, false
		}
		p.tree.AddChild(list, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ',' or ')' in parameter list, got "+p.got()); !ok {
			return ast.NoNodeID, false
		}
		return list, true
	}
}

func (p *Parser) parseArgument() (ast.NodeID, bool) {
	start := p.lx.Peek().Span
	typ, ok := p.parseTypeSpec()
	if !ok {
		return ast.NoNodeID, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name, got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.declare(nameTok) {
		return ast.NoNodeID, false
	}
	arg := p.tree.NewNamed(ast.Argument, start, nameTok.Text)
	p.tree.AddChild(arg, typ)
	return arg, true
}

// parseDeclaration parses type_spec IDENT ('=' expr)?.
// The name is visible inside its own initializer.
func (p *Parser) parseDeclaration() (ast.NodeID, bool) {
	start := p.lx.Peek().Span
	typ, ok := p.parseTypeSpec()
	if !ok {
		return ast.NoNodeID, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name, got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.declare(nameTok) {
		return ast.NoNodeID, false
	}
	decl := p.tree.NewNamed(ast.DeclarationStmt, start, nameTok.Text)
	p.tree.AddChild(decl, typ)

	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		p.tree.AddChild(decl, init)
	}
	return decl, true
}

// parseTypeSpec accepts only builtin type names.
func (p *Parser) parseTypeSpec() (ast.NodeID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type name, got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.scopes.isType(tok.Text) {
		p.report(diag.SynNotATypeName, tok.Span, fmt.Sprintf("%q does not name a type", tok.Text))
		return ast.NoNodeID, false
	}
	return p.tree.NewNamed(ast.TypeSpecifier, tok.Span, tok.Text), true
}

func (p *Parser) declare(tok token.Token) bool {
	msg, ok := p.scopes.declare(p.file, tok.Text, tok.Span)
	if !ok {
		p.report(diag.SynRedeclaration, tok.Span, msg)
	}
	return ok
}
