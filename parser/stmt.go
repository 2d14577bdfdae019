package parser

import "github.com/metaphox/storyscript/ast"

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement dispatches on the current keyword. Anything else is an
// expression statement.
func (p *Parser) parseStatement() (ast.Statement, bool) {
	switch {
	case p.match(ast.IF):
		return p.parseIfStatement()
	case p.match(ast.WHILE):
		return p.parseWhileStatement()
	case p.match(ast.VAR):
		return p.parseVarDeclaration()
	case p.match(ast.LBRACE):
		return p.parseBlockStatement()
	case p.match(ast.RETURN):
		return p.parseReturnStatement()
	case p.match(ast.SAY):
		return p.parseSayStatement()
	case p.match(ast.GOTO):
		return p.parseGotoStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarDeclaration parses `var name [= expr];`.
func (p *Parser) parseVarDeclaration() (ast.Statement, bool) {
	loc := p.loc(p.previous)
	name := p.consume(ast.IDENTIFIER, "Expected variable name.")

	var initializer ast.Expression
	if p.match(ast.ASSIGN) {
		var ok bool
		if initializer, ok = p.parseExpression(); !ok {
			return nil, false
		}
	}
	p.consume(ast.SEMICOLON, "Expected ';' after variable declaration.")
	return &ast.VarStmt{Loc: loc, Name: name, Initializer: initializer}, true
}

// parseBlock parses statements up to the closing '}'. The opening '{' has
// already been consumed.
func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	loc := p.loc(p.previous)

	var stmts []ast.Statement
	for !p.check(ast.RBRACE) && !p.check(ast.EOF) {
		s, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		stmts = append(stmts, s)
	}
	p.consume(ast.RBRACE, "Expected '}' after block.")
	return &ast.BlockStmt{Loc: loc, Statements: stmts}, true
}

// parseBlockStatement wraps parseBlock so a failed block does not leak a
// typed nil into the Statement interface.
func (p *Parser) parseBlockStatement() (ast.Statement, bool) {
	b, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return b, true
}

// parseIfStatement parses `if (cond) stmt [else stmt]`.
func (p *Parser) parseIfStatement() (ast.Statement, bool) {
	loc := p.loc(p.previous)
	p.consume(ast.LPAREN, "Expected '(' after 'if'.")
	cond, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	p.consume(ast.RPAREN, "Expected ')' after if condition.")

	then, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	var els ast.Statement
	if p.match(ast.ELSE) {
		if els, ok = p.parseStatement(); !ok {
			return nil, false
		}
	}
	return &ast.IfStmt{Loc: loc, Condition: cond, Then: then, Else: els}, true
}

// parseWhileStatement parses `while (cond) stmt`.
func (p *Parser) parseWhileStatement() (ast.Statement, bool) {
	loc := p.loc(p.previous)
	p.consume(ast.LPAREN, "Expected '(' after 'while'.")
	cond, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	p.consume(ast.RPAREN, "Expected ')' after while condition.")

	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Loc: loc, Condition: cond, Body: body}, true
}

// parseReturnStatement parses `return [expr];`.
func (p *Parser) parseReturnStatement() (ast.Statement, bool) {
	keyword := p.previous

	var value ast.Expression
	if !p.check(ast.SEMICOLON) {
		var ok bool
		if value, ok = p.parseExpression(); !ok {
			return nil, false
		}
	}
	p.consume(ast.SEMICOLON, "Expected ';' after return value.")
	return &ast.ReturnStmt{Loc: p.loc(keyword), Keyword: keyword, Value: value}, true
}

// parseSayStatement parses `say expr;`.
func (p *Parser) parseSayStatement() (ast.Statement, bool) {
	loc := p.loc(p.previous)
	msg, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	p.consume(ast.SEMICOLON, "Expected ';' after message.")
	return &ast.SayStmt{Loc: loc, Message: msg}, true
}

// parseGotoStatement parses `goto(expr);`.
func (p *Parser) parseGotoStatement() (ast.Statement, bool) {
	loc := p.loc(p.previous)
	p.consume(ast.LPAREN, "Expected '(' after 'goto'.")
	dest, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	p.consume(ast.RPAREN, "Expected ')' after goto destination.")
	p.consume(ast.SEMICOLON, "Expected ';' after goto statement.")
	return &ast.GotoStmt{Loc: loc, Destination: dest}, true
}

// parseExpressionStatement parses `expr;`.
func (p *Parser) parseExpressionStatement() (ast.Statement, bool) {
	loc := p.loc(p.current)
	expr, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	p.consume(ast.SEMICOLON, "Expected ';' after expression.")
	return &ast.ExpressionStmt{Loc: loc, Expr: expr}, true
}
