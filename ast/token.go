// Package ast defines the tokens, source locations and syntax tree nodes of
// StoryScript, the scripting language used to describe interactive-fiction
// worlds.
//
// Tokens are the smallest meaningful units of a StoryScript file. Every token
// carries its type, the exact text it was scanned from, and the position of its
// first character. Positions are 1-based: the first character of a file is
// line 1, column 1.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
//
// The order of the constants is part of the contract: tokenNames is indexed by
// TokenType and the display names are shared with other StoryScript tools.
type TokenType int

const (
	// ── Keywords ───────────────────────────────────────────────────────────────

	// ROOM declares a location: room hall { ... }
	ROOM TokenType = iota
	// ITEM declares an object inside a room: item lamp { ... }
	ITEM
	// VAR declares a variable: var x = 1;
	VAR
	// FUNCTION declares a named function: function greet(who) { ... }
	FUNCTION
	IF
	ELSE
	WHILE
	// FOR is reserved; no statement uses it yet.
	FOR
	RETURN
	// WHEN introduces an event handler inside a room: when entered { ... }
	WHEN
	// ENTERED is the built-in room event name.
	ENTERED
	// SAY prints a message to the player: say "Hello";
	SAY
	// GOTO moves the player to another room: goto(hall);
	GOTO
	TRUE
	FALSE
	// NOT is produced for both the keyword "not" and the character '!'.
	NOT
	AND
	OR

	// ── Names and values ──────────────────────────────────────────────────────

	// IDENTIFIER is [a-zA-Z_][a-zA-Z0-9_]* when it is not a keyword.
	IDENTIFIER
	// STRING is a double-quoted literal. The lexeme keeps both quotes.
	STRING
	// NUMBER is a decimal literal with an optional fractional part: 12, 3.5
	NUMBER

	// ── Operators ─────────────────────────────────────────────────────────────

	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	MODULO
	ASSIGN
	EQ
	NEQ
	LT
	GT
	LTE
	GTE

	// ── Structure symbols ─────────────────────────────────────────────────────

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COLON
	COMMA
	SEMICOLON
	DOT

	// ── Special ───────────────────────────────────────────────────────────────

	// EOF marks the end of input. The lexer keeps returning it once reached.
	EOF
	// UNKNOWN reports a lexical error. Its lexeme is the error message.
	UNKNOWN
	// COMMENT is reserved; comments are skipped and never emitted.
	COMMENT

	numTokenTypes
)

// tokenNames holds the display name of every TokenType. The keyed literal
// keeps the table aligned with the constants above.
var tokenNames = [numTokenTypes]string{
	ROOM:     "ROOM",
	ITEM:     "ITEM",
	VAR:      "VAR",
	FUNCTION: "FUNCTION",
	IF:       "IF",
	ELSE:     "ELSE",
	WHILE:    "WHILE",
	FOR:      "FOR",
	RETURN:   "RETURN",
	WHEN:     "WHEN",
	ENTERED:  "ENTERED",
	SAY:      "SAY",
	GOTO:     "GOTO",
	TRUE:     "TRUE",
	FALSE:    "FALSE",
	NOT:      "NOT",
	AND:      "AND",
	OR:       "OR",

	IDENTIFIER: "IDENTIFIER",
	STRING:     "STRING",
	NUMBER:     "NUMBER",

	PLUS:     "PLUS",
	MINUS:    "MINUS",
	MULTIPLY: "MULTIPLY",
	DIVIDE:   "DIVIDE",
	MODULO:   "MODULO",
	ASSIGN:   "ASSIGN",
	EQ:       "EQ",
	NEQ:      "NEQ",
	LT:       "LT",
	GT:       "GT",
	LTE:      "LTE",
	GTE:      "GTE",

	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COLON:     "COLON",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
	DOT:       "DOT",

	EOF:     "EOF_TOKEN",
	UNKNOWN: "UNKNOWN",
	COMMENT: "COMMENT",
}

// String returns the display name of the token type, e.g. "NUMBER".
func (tt TokenType) String() string {
	if tt < 0 || tt >= numTokenTypes {
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
	return tokenNames[tt]
}

// TokenTypes returns every defined TokenType in declaration order.
func TokenTypes() []TokenType {
	out := make([]TokenType, 0, numTokenTypes)
	for tt := TokenType(0); tt < numTokenTypes; tt++ {
		out = append(out, tt)
	}
	return out
}

// keywords maps the text of every StoryScript keyword to its TokenType.
// Lookups are case-sensitive. The map is never written after initialization.
var keywords = map[string]TokenType{
	"room":     ROOM,
	"item":     ITEM,
	"var":      VAR,
	"function": FUNCTION,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"return":   RETURN,
	"when":     WHEN,
	"entered":  ENTERED,
	"say":      SAY,
	"goto":     GOTO,
	"true":     TRUE,
	"false":    FALSE,
	"not":      NOT,
	"and":      AND,
	"or":       OR,
}

// LookupIdent returns the keyword TokenType for ident, or IDENTIFIER when
// ident is not reserved.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENTIFIER
}

// Token is a single lexical unit produced by the lexer.
//
// Fields:
//   - Type  : the category of this token
//   - Lexeme: the exact source text, or the message for UNKNOWN tokens
//   - Line  : 1-based line of the first character
//   - Column: 1-based column of the first character
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

// String renders the token as "[TYPE, 'lexeme', line: L, col: C]".
func (t Token) String() string {
	return fmt.Sprintf("[%s, '%s', line: %d, col: %d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// Location returns the position of t inside filename.
func (t Token) Location(filename string) SourceLocation {
	return SourceLocation{Filename: filename, Line: t.Line, Column: t.Column}
}
