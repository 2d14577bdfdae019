package parser

import (
	"strconv"

	"github.com/metaphox/storyscript/ast"
)

// ── Expression parsing ───────────────────────────────────────────────────────

// parseExpression is the entry point of the precedence ladder. It returns
// false when no expression could be built; "Expected expression." has been
// reported in that case.
func (p *Parser) parseExpression() (ast.Expression, bool) {
	return p.parseAssignment()
}

// parseAssignment parses `target = value` (right-associative). Only a plain
// variable is a valid target; anything else is reported and the left side is
// returned unchanged.
func (p *Parser) parseAssignment() (ast.Expression, bool) {
	expr, ok := p.parseLogicalOr()
	if !ok {
		return nil, false
	}
	if !p.match(ast.ASSIGN) {
		return expr, true
	}

	equals := p.previous
	value, ok := p.parseAssignment()
	if !ok {
		return nil, false
	}
	switch expr.(type) {
	case *ast.VariableExpr:
		return &ast.BinaryExpr{Loc: expr.Location(), Left: expr, Op: equals, Right: value}, true
	}
	p.errorAt(equals, "Invalid assignment target.")
	return expr, true
}

func (p *Parser) parseLogicalOr() (ast.Expression, bool) {
	return p.parseBinary(p.parseLogicalAnd, ast.OR)
}

func (p *Parser) parseLogicalAnd() (ast.Expression, bool) {
	return p.parseBinary(p.parseEquality, ast.AND)
}

func (p *Parser) parseEquality() (ast.Expression, bool) {
	return p.parseBinary(p.parseComparison, ast.EQ, ast.NEQ)
}

func (p *Parser) parseComparison() (ast.Expression, bool) {
	return p.parseBinary(p.parseTerm, ast.GT, ast.GTE, ast.LT, ast.LTE)
}

func (p *Parser) parseTerm() (ast.Expression, bool) {
	return p.parseBinary(p.parseFactor, ast.PLUS, ast.MINUS)
}

func (p *Parser) parseFactor() (ast.Expression, bool) {
	return p.parseBinary(p.parseUnary, ast.MULTIPLY, ast.DIVIDE, ast.MODULO)
}

// parseBinary parses one left-associative level: an operand from next, then
// as long as the current token is one of ops, another operand folded into a
// BinaryExpr with everything parsed so far on the left.
func (p *Parser) parseBinary(next func() (ast.Expression, bool), ops ...ast.TokenType) (ast.Expression, bool) {
	left, ok := next()
	if !ok {
		return nil, false
	}
	for p.match(ops...) {
		op := p.previous
		right, ok := next()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{Loc: left.Location(), Left: left, Op: op, Right: right}
	}
	return left, true
}

// parseUnary parses prefix '-', '!' and 'not'. It recurses so chains such as
// `!!x` and `- -1` nest.
func (p *Parser) parseUnary() (ast.Expression, bool) {
	if p.match(ast.MINUS, ast.NOT) {
		op := p.previous
		right, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{Loc: p.loc(op), Op: op, Right: right}, true
	}
	return p.parseCall()
}

// parseCall parses a primary followed by any number of `(args)` and `.name`
// suffixes.
func (p *Parser) parseCall() (ast.Expression, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch {
		case p.match(ast.LPAREN):
			if expr, ok = p.finishCall(expr); !ok {
				return nil, false
			}
		case p.match(ast.DOT):
			name := p.consume(ast.IDENTIFIER, "Expected property name after '.'.")
			expr = &ast.PropertyExpr{Loc: expr.Location(), Object: expr, Name: name}
		default:
			return expr, true
		}
	}
}

// finishCall parses the argument list after '(' and the closing ')'.
func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, bool) {
	var args []ast.Expression
	if !p.check(ast.RPAREN) {
		for {
			arg, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.match(ast.COMMA) {
				break
			}
		}
	}
	paren := p.consume(ast.RPAREN, "Expected ')' after arguments.")
	return &ast.CallExpr{Loc: callee.Location(), Callee: callee, Paren: paren, Args: args}, true
}

// parsePrimary parses literals, identifiers and parenthesised expressions.
// Parentheses leave no node of their own.
func (p *Parser) parsePrimary() (ast.Expression, bool) {
	loc := p.loc(p.current)

	switch {
	case p.match(ast.FALSE):
		return &ast.LiteralExpr{Loc: loc, Value: ast.NewBool(false)}, true
	case p.match(ast.TRUE):
		return &ast.LiteralExpr{Loc: loc, Value: ast.NewBool(true)}, true

	case p.match(ast.NUMBER):
		// A digit run too long for float64 is reported and kept as 0.
		n, err := strconv.ParseFloat(p.previous.Lexeme, 64)
		if err != nil {
			p.errorAt(p.previous, "Invalid number literal.")
			n = 0
		}
		return &ast.LiteralExpr{Loc: loc, Value: ast.NewNumber(n)}, true

	case p.match(ast.STRING):
		lex := p.previous.Lexeme
		return &ast.LiteralExpr{Loc: loc, Value: ast.NewString(lex[1 : len(lex)-1])}, true

	case p.match(ast.IDENTIFIER):
		return &ast.VariableExpr{Loc: loc, Name: p.previous}, true

	case p.match(ast.LPAREN):
		expr, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		p.consume(ast.RPAREN, "Expected ')' after expression.")
		return expr, true
	}

	p.error("Expected expression.")
	return nil, false
}
