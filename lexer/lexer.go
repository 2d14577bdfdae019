// Package lexer implements the StoryScript lexer (tokeniser).
//
// The lexer converts a StoryScript source string into a flat stream of
// [ast.Token] values. Call [New] to create a lexer and then call
// [Lexer.NextToken] repeatedly until you receive a token with
// Type == [ast.EOF], or call [Lexer.Tokenize] to collect the whole stream.
//
// Design notes:
//   - Single-pass, byte-by-byte scanning over a fully loaded string.
//   - No shared mutable state; every [Lexer] is independent and the keyword
//     table in package ast is read-only.
//   - Line and column are tracked for every token (1-based) and always name
//     the token's first character.
//   - Comments (// …) are consumed silently; no token is emitted.
//   - Lexing never fails. Bad input produces an [ast.UNKNOWN] token whose
//     lexeme is the error message, and scanning resumes after it.
package lexer

import (
	"fmt"
	"io"
	"os"

	"github.com/metaphox/storyscript/ast"
)

// Messages carried by UNKNOWN tokens.
const (
	MsgUnterminatedString  = "Unterminated string."
	MsgUnexpectedCharacter = "Unexpected character."
)

// Lexer holds all state required to tokenise a single StoryScript source.
// Create one with [New]; never share a Lexer between goroutines.
type Lexer struct {
	input    string // the full source text
	filename string // label used in locations and diagnostics

	pos  int // index of the next unread byte
	line int // 1-based line of input[pos]
	col  int // 1-based column of input[pos]

	diag io.Writer // destination of Error
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithDiagnostics sets the writer Error reports to. The default is os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(l *Lexer) {
		if w != nil {
			l.diag = w
		}
	}
}

// New creates a [Lexer] over source. filename is only used to label
// locations and diagnostics.
func New(source, filename string, opts ...Option) *Lexer {
	l := &Lexer{
		input:    source,
		filename: filename,
		line:     1,
		col:      1,
		diag:     os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Filename returns the label given to [New].
func (l *Lexer) Filename() string { return l.filename }

// NextToken scans and returns the next token.
//
// Whitespace and line comments are skipped first. Once the input is
// exhausted every call returns an [ast.EOF] token at the same position.
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespaceAndComments()

	start, line, col := l.pos, l.line, l.col
	if l.atEnd() {
		return ast.Token{Type: ast.EOF, Line: line, Column: col}
	}

	c := l.advance()
	switch {
	case isLetter(c):
		return l.readIdentifier(start, line, col)
	case isDigit(c):
		return l.readNumber(start, line, col)
	}

	tt := ast.UNKNOWN
	switch c {
	// ── Single-character symbols ────────────────────────────────────────────
	case '(':
		tt = ast.LPAREN
	case ')':
		tt = ast.RPAREN
	case '{':
		tt = ast.LBRACE
	case '}':
		tt = ast.RBRACE
	case ':':
		tt = ast.COLON
	case ',':
		tt = ast.COMMA
	case ';':
		tt = ast.SEMICOLON
	case '.':
		tt = ast.DOT
	case '+':
		tt = ast.PLUS
	case '-':
		tt = ast.MINUS
	case '*':
		tt = ast.MULTIPLY
	case '/':
		// "//" never reaches here; skipWhitespaceAndComments ate it.
		tt = ast.DIVIDE
	case '%':
		tt = ast.MODULO

	// ── One or two characters ───────────────────────────────────────────────
	case '=':
		tt = l.either('=', ast.EQ, ast.ASSIGN)
	case '!':
		tt = l.either('=', ast.NEQ, ast.NOT)
	case '<':
		tt = l.either('=', ast.LTE, ast.LT)
	case '>':
		tt = l.either('=', ast.GTE, ast.GT)

	// ── String literal ──────────────────────────────────────────────────────
	case '"':
		return l.readString(start, line, col)

	default:
		return ast.Token{Type: ast.UNKNOWN, Lexeme: MsgUnexpectedCharacter, Line: line, Column: col}
	}

	return l.makeToken(tt, start, line, col)
}

// PeekToken returns the next token without consuming it. A following call to
// [Lexer.NextToken] returns the same token.
func (l *Lexer) PeekToken() ast.Token {
	pos, line, col := l.pos, l.line, l.col
	tok := l.NextToken()
	l.pos, l.line, l.col = pos, line, col
	return tok
}

// Tokenize scans the remaining input and returns every token up to and
// including the terminating [ast.EOF].
func (l *Lexer) Tokenize() []ast.Token {
	var tokens []ast.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == ast.EOF {
			return tokens
		}
	}
}

// CurrentLocation returns the position of the next unread character.
func (l *Lexer) CurrentLocation() ast.SourceLocation {
	return ast.SourceLocation{Filename: l.filename, Line: l.line, Column: l.col}
}

// Error reports message at the current location as
// "<filename>:<line>:<column>: Error: <message>". It only writes the
// diagnostic; lexing is not affected.
func (l *Lexer) Error(message string) {
	l.ErrorAt(l.CurrentLocation(), message)
}

// ErrorAt is like Error but reports at loc.
func (l *Lexer) ErrorAt(loc ast.SourceLocation, message string) {
	fmt.Fprintf(l.diag, "%s:%d:%d: Error: %s\n", loc.Filename, loc.Line, loc.Column, message)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// advance consumes one byte and returns it, keeping line and column in step.
// A newline moves to column 1 of the next line.
func (l *Lexer) advance() byte {
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

// peek returns the next unread byte, or 0 at end of input.
func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

// peekNext returns the byte after peek, or 0.
func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// either consumes expected and returns two when it is the next byte,
// otherwise returns one without consuming anything.
func (l *Lexer) either(expected byte, two, one ast.TokenType) ast.TokenType {
	if l.peek() != expected {
		return one
	}
	l.advance()
	return two
}

// makeToken builds a token whose lexeme is input[start:pos].
func (l *Lexer) makeToken(tt ast.TokenType, start, line, col int) ast.Token {
	return ast.Token{Type: tt, Lexeme: l.input[start:l.pos], Line: line, Column: col}
}

// skipWhitespaceAndComments advances past spaces, tabs, carriage returns,
// newlines and "//" line comments. The newline ending a comment is left for
// the next iteration so the line counter sees it.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekNext() != '/' {
				return // lone '/' is the division operator
			}
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// readIdentifier scans the rest of an identifier whose first byte has already
// been consumed and classifies it against the keyword table.
func (l *Lexer) readIdentifier(start, line, col int) ast.Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	return l.makeToken(ast.LookupIdent(l.input[start:l.pos]), start, line, col)
}

// readNumber scans an integer part and an optional fraction. The '.' is only
// taken when a digit follows it, so "12." scans as NUMBER "12" and leaves the
// dot for the next call.
func (l *Lexer) readNumber(start, line, col int) ast.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(ast.NUMBER, start, line, col)
}

// readString scans up to and including the closing quote. Newlines inside
// the literal are allowed. The lexeme keeps both quotes; no escape sequences
// are interpreted.
func (l *Lexer) readString(start, line, col int) ast.Token {
	for !l.atEnd() && l.peek() != '"' {
		l.advance()
	}
	if l.atEnd() {
		return ast.Token{Type: ast.UNKNOWN, Lexeme: MsgUnterminatedString, Line: line, Column: col}
	}
	l.advance() // closing '"'
	return l.makeToken(ast.STRING, start, line, col)
}

// isLetter reports whether b may start or continue an identifier:
// [a-zA-Z_].
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
