package parser

import (
	"fmt"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/token"
)

// Binding powers. Бинарные: левая/правая сила; '=' правоассоциативно.
const (
	bpAssign   = 10
	bpAdditive = 20
	bpMul      = 30
	bpPrefix   = 40
	bpCall     = 50
)

func infixBP(k token.Kind) (lbp, rbp int, kind ast.Kind) {
	switch k {
	case token.Assign:
		return bpAssign, bpAssign, ast.AssignExpr
	case token.Plus:
		return bpAdditive, bpAdditive + 1, ast.AddExpr
	case token.Minus:
		return bpAdditive, bpAdditive + 1, ast.SubExpr
	case token.Star:
		return bpMul, bpMul + 1, ast.MulExpr
	case token.Slash:
		return bpMul, bpMul + 1, ast.DivExpr
	default:
		return 0, 0, ast.KindFreed
	}
}

func prefixKind(k token.Kind) (ast.Kind, bool) {
	switch k {
	case token.Minus:
		return ast.NegExpr, true
	case token.Bang:
		return ast.NotExpr, true
	case token.PlusPlus:
		return ast.IncExpr, true
	case token.MinusMinus:
		return ast.DecExpr, true
	default:
		return ast.KindFreed, false
	}
}

// parseExpr - главная точка входа для выражений.
func (p *Parser) parseExpr() (ast.NodeID, bool) {
	return p.parseExprBP(0)
}

// parseExprBP is the Pratt loop: prefix/primary, then infix and call operators whose
// left binding power reaches minBP.
func (p *Parser) parseExprBP(minBP int) (ast.NodeID, bool) {
	left, ok := p.parsePrefix()
	if !ok {
		return ast.NoNodeID, false
	}

	for {
		tok := p.lx.Peek()
		if tok.Kind == token.LParen {
			if bpCall < minBP {
				break
			}
			if left, ok = p.parseCall(left); !ok {
				return ast.NoNodeID, false
			}
			continue
		}

		lbp, rbp, kind := infixBP(tok.Kind)
		if lbp == 0 || lbp < minBP {
			break
		}
		opTok := p.advance()
		right, ok := p.parseExprBP(rbp)
		if !ok {
			return ast.NoNodeID, false
		}
		// узел бинарного выражения указывает на оператор
		bin := p.tree.New(kind, opTok.Span)
		p.tree.AddChild(bin, left)
		p.tree.AddChild(bin, right)
		left = bin
	}
	return left, true
}

func (p *Parser) parsePrefix() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	kind, ok := prefixKind(tok.Kind)
	if !ok {
		return p.parsePrimary()
	}
	p.advance()
	operand, ok := p.parseExprBP(bpPrefix)
	if !ok {
		return ast.NoNodeID, false
	}
	un := p.tree.New(kind, tok.Span)
	p.tree.AddChild(un, operand)
	return un, true
}

// parsePrimary parses INT | FLOAT | IDENT | '(' expr ')'.
func (p *Parser) parsePrimary() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.tree.NewLiteral(ast.IntegerLiteralExpr, tok.Span, tok.Text), true
	case token.FloatLit:
		p.advance()
		return p.tree.NewLiteral(ast.FloatLiteralExpr, tok.Span, tok.Text), true
	case token.Ident:
		p.advance()
		if !p.scopes.declared(tok.Text) {
			p.report(diag.SynUndeclaredIdent, tok.Span, fmt.Sprintf("use of undeclared identifier '%s'", tok.Text))
			return ast.NoNodeID, false
		}
		return p.tree.NewNamed(ast.IdentifierExpr, tok.Span, tok.Text), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')', got "+p.got()); !ok {
			return ast.NoNodeID, false
		}
		wrap := p.tree.New(ast.ExprWrapper, tok.Span)
		p.tree.AddChild(wrap, inner)
		return wrap, true
	default:
		p.errAtPeek(diag.SynExpectExpression, "expected expression, got "+p.got())
		return ast.NoNodeID, false
	}
}

// parseCall parses callee '(' (expr (',' expr)*)? ')'. Arguments become direct
// children after the callee. Any expression may be called syntactically.
func (p *Parser) parseCall(callee ast.NodeID) (ast.NodeID, bool) {
	p.advance() // '('
	var args []ast.NodeID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoNodeID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ',' or ')' in call, got "+p.got())
	if !ok {
		return ast.NoNodeID, false
	}
	call := p.tree.New(ast.FunctionCallExpr, p.tree.Get(callee).Span.Cover(closeTok.Span))
	p.tree.AddChild(call, callee)
	for _, a := range args {
		p.tree.AddChild(call, a)
	}
	return call, true
}
