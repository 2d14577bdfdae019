package parser

import "github.com/metaphox/storyscript/ast"

// ── Declaration parsing ───────────────────────────────────────────────────────

// parseRoom parses `room name { ... }` after the 'room' keyword.
// The body mixes item declarations, `when name { ... }` handlers and
// `name: expr;` properties in any order.
func (p *Parser) parseRoom() (*ast.Room, bool) {
	loc := p.loc(p.previous)
	name := p.consume(ast.IDENTIFIER, "Expected room name.")
	p.consume(ast.LBRACE, "Expected '{' after room name.")

	var (
		props  []ast.Property
		items  []*ast.Item
		events []ast.EventHandler
	)
	for !p.check(ast.RBRACE) && !p.check(ast.EOF) {
		switch {
		case p.match(ast.ITEM):
			item, ok := p.parseItem()
			if !ok {
				return nil, false
			}
			items = append(items, item)

		case p.match(ast.WHEN):
			event := p.parseEventName()
			p.consume(ast.LBRACE, "Expected '{' after event type.")
			body, ok := p.parseBlock()
			if !ok {
				return nil, false
			}
			events = append(events, ast.EventHandler{Name: event.Lexeme, Body: body})

		default:
			prop, ok := p.parseProperty()
			if !ok {
				return nil, false
			}
			props = append(props, prop)
		}
	}
	p.consume(ast.RBRACE, "Expected '}' after room body.")

	return &ast.Room{
		Loc:        loc,
		Name:       name,
		Properties: props,
		Items:      items,
		Events:     events,
	}, true
}

// parseEventName accepts an identifier or the built-in 'entered' event.
func (p *Parser) parseEventName() ast.Token {
	if p.match(ast.ENTERED) {
		return p.previous
	}
	return p.consume(ast.IDENTIFIER, "Expected event type after 'when'.")
}

// parseItem parses `item name { prop: expr; ... }` after the 'item' keyword.
func (p *Parser) parseItem() (*ast.Item, bool) {
	loc := p.loc(p.previous)
	name := p.consume(ast.IDENTIFIER, "Expected item name.")
	p.consume(ast.LBRACE, "Expected '{' after item name.")

	var props []ast.Property
	for !p.check(ast.RBRACE) && !p.check(ast.EOF) {
		prop, ok := p.parseProperty()
		if !ok {
			return nil, false
		}
		props = append(props, prop)
	}
	p.consume(ast.RBRACE, "Expected '}' after item body.")

	return &ast.Item{Loc: loc, Name: name, Properties: props}, true
}

// parseProperty parses `name: expr;`.
func (p *Parser) parseProperty() (ast.Property, bool) {
	name := p.consume(ast.IDENTIFIER, "Expected property name.")
	p.consume(ast.COLON, "Expected ':' after property name.")
	value, ok := p.parseExpression()
	if !ok {
		return ast.Property{}, false
	}
	p.consume(ast.SEMICOLON, "Expected ';' after property value.")
	return ast.Property{Name: name.Lexeme, Value: value}, true
}

// parseFunction parses `function name(a, b) { ... }` after the 'function'
// keyword. An empty parameter list is legal.
func (p *Parser) parseFunction() (*ast.FunctionStmt, bool) {
	loc := p.loc(p.previous)
	name := p.consume(ast.IDENTIFIER, "Expected function name.")
	p.consume(ast.LPAREN, "Expected '(' after function name.")

	var params []ast.Token
	if !p.check(ast.RPAREN) {
		for {
			params = append(params, p.consume(ast.IDENTIFIER, "Expected parameter name."))
			if !p.match(ast.COMMA) {
				break
			}
		}
	}
	p.consume(ast.RPAREN, "Expected ')' after parameters.")
	p.consume(ast.LBRACE, "Expected '{' before function body.")

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.FunctionStmt{Loc: loc, Name: name, Params: params, Body: body}, true
}
