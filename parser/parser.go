// Package parser implements the StoryScript recursive-descent parser.
//
// The parser reads tokens from a [lexer.Lexer] and builds an [ast.Program].
// Expressions use a fixed precedence ladder where each level delegates to the
// next tighter one:
//
//	assignment  =            (right-associative)
//	or          or
//	and         and
//	equality    == !=
//	comparison  < > <= >=
//	term        + -
//	factor      * / %
//	unary       - ! not      (prefix, recursive)
//	call        f(...)  a.b  (postfix, iterative)
//	primary     literals, identifiers, ( expr )
//
// Usage:
//
//	l := lexer.New(source, "castle.story")
//	p := parser.New(l)
//	prog := p.Parse()
//	if p.HadError() { ... }
//
// Error recovery has two tiers. A missing required token is reported and the
// parser carries on as if it had been there. A production that cannot build a
// node at all fails back to the top-level loop, which skips tokens until the
// next statement boundary or declaration keyword. Parse always returns a
// Program; callers must check HadError.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/metaphox/storyscript/ast"
	"github.com/metaphox/storyscript/lexer"
)

// Diagnostic is one parse error.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// Error renders the diagnostic as "Error at <line>:<column> - <message>".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("Error at %d:%d - %s", d.Line, d.Column, d.Message)
}

// ErrorList is the set of diagnostics of one parse, in report order.
type ErrorList []Diagnostic

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	msgs := make([]string, len(el))
	for i, d := range el {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}

// Parser holds all state needed to parse one StoryScript source.
// Create one with [New] and call [Parser.Parse] once.
type Parser struct {
	l        *lexer.Lexer
	start    ast.SourceLocation // where the program begins
	current  ast.Token          // lookahead
	previous ast.Token          // last consumed token

	hadError bool
	errors   ErrorList

	diag io.Writer
	log  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithDiagnostics sets where parse errors are printed. The default is
// os.Stderr; use io.Discard to only collect them.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Parser) {
		if w != nil {
			p.diag = w
		}
	}
}

// WithLogger sets the logger used for recovery traces at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.log = logger
		}
	}
}

// New creates a Parser reading from l and loads the first lookahead token.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:     l,
		start: l.CurrentLocation(),
		diag:  os.Stderr,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	return p
}

// ParseString parses src in one call. The returned error is an ErrorList
// when any parse error was reported; the Program is returned either way.
func ParseString(src, filename string, opts ...Option) (*ast.Program, error) {
	p := New(lexer.New(src, filename), opts...)
	prog := p.Parse()
	if p.HadError() {
		return prog, p.Errors()
	}
	return prog, nil
}

// HadError reports whether any parse error was reported.
func (p *Parser) HadError() bool { return p.hadError }

// Errors returns all diagnostics reported so far.
func (p *Parser) Errors() ErrorList { return p.errors }

// Parse builds the Program. It never panics on malformed input: each failed
// top-level item is skipped by synchronize and parsing continues.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{Loc: p.start}
	for !p.check(ast.EOF) {
		if !p.declaration(prog) {
			p.synchronize()
		}
	}
	return prog
}

// declaration parses one top-level item into prog.
func (p *Parser) declaration(prog *ast.Program) bool {
	switch {
	case p.match(ast.ROOM):
		room, ok := p.parseRoom()
		if !ok {
			return false
		}
		prog.AddRoom(room)
	case p.match(ast.FUNCTION):
		fn, ok := p.parseFunction()
		if !ok {
			return false
		}
		prog.AddFunction(fn)
	default:
		stmt, ok := p.parseStatement()
		if !ok {
			return false
		}
		prog.AddStatement(stmt)
	}
	return true
}

// ── Token management ─────────────────────────────────────────────────────────

func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.l.NextToken()
}

func (p *Parser) check(tt ast.TokenType) bool {
	return p.current.Type == tt
}

// match consumes the current token if it has any of the given types.
func (p *Parser) match(types ...ast.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume returns the current token after consuming it when it has type tt.
// Otherwise it reports message and returns the current token unconsumed, so
// the caller can keep building a best-effort node.
func (p *Parser) consume(tt ast.TokenType, message string) ast.Token {
	if p.check(tt) {
		p.advance()
		return p.previous
	}
	p.error(message)
	return p.current
}

// loc returns the location of tok in the file being parsed.
func (p *Parser) loc(tok ast.Token) ast.SourceLocation {
	return tok.Location(p.l.Filename())
}

// ── Diagnostics and recovery ─────────────────────────────────────────────────

// error reports message at the current token.
func (p *Parser) error(message string) {
	p.errorAt(p.current, message)
}

func (p *Parser) errorAt(tok ast.Token, message string) {
	p.hadError = true
	d := Diagnostic{Line: tok.Line, Column: tok.Column, Message: message}
	p.errors = append(p.errors, d)
	fmt.Fprintln(p.diag, d.Error())
}

// synchronize discards tokens after a failed top-level item. It always skips
// the offending token, then stops after a ';' or before a token that starts
// a declaration or statement.
func (p *Parser) synchronize() {
	from := p.current
	skipped := 1
	p.advance()

	for !p.check(ast.EOF) {
		if p.previous.Type == ast.SEMICOLON {
			break
		}
		if startsDeclaration(p.current.Type) {
			break
		}
		p.advance()
		skipped++
	}

	p.log.Debug("parser resynchronized",
		slog.String("from", p.loc(from).String()),
		slog.String("resume", p.loc(p.current).String()),
		slog.Int("skipped", skipped))
}

func startsDeclaration(tt ast.TokenType) bool {
	switch tt {
	case ast.ROOM, ast.ITEM, ast.FUNCTION, ast.VAR, ast.IF,
		ast.WHILE, ast.RETURN, ast.SAY, ast.GOTO:
		return true
	}
	return false
}
