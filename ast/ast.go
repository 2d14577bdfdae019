// Node types of the StoryScript syntax tree.
//
// The hierarchy is closed:
//
//	Node (interface)
//	  Expression (interface)
//	    LiteralExpr, VariableExpr, BinaryExpr, UnaryExpr, CallExpr, PropertyExpr
//	  Statement (interface)
//	    ExpressionStmt, VarStmt, BlockStmt, IfStmt, WhileStmt
//	    FunctionStmt, ReturnStmt, SayStmt, GotoStmt
//	  Room, Item, Program
//
// The marker methods are unexported, so a type switch over the kinds listed
// above is exhaustive. Every node records the location where its production
// started; nodes are not modified after the parser builds them.

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element of the tree.
type Node interface {
	// Location returns where the node's production started.
	Location() SourceLocation
	// String returns a compact, source-like rendering for debugging and tests.
	String() string
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node executed for its effect.
type Statement interface {
	Node
	statementNode()
}

// ── Values ────────────────────────────────────────────────────────────────────

// ValueKind discriminates the Value union.
type ValueKind int

const (
	NumberValue ValueKind = iota
	StringValue
	BoolValue
)

func (k ValueKind) String() string {
	switch k {
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case BoolValue:
		return "boolean"
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a literal constant: a number, a string or a boolean.
// Only the field selected by Kind is meaningful.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
}

// NewNumber returns a number Value.
func NewNumber(n float64) Value { return Value{Kind: NumberValue, Num: n} }

// NewString returns a string Value.
func NewString(s string) Value { return Value{Kind: StringValue, Str: s} }

// NewBool returns a boolean Value.
func NewBool(b bool) Value { return Value{Kind: BoolValue, Bool: b} }

// Interface returns the Go value held by v (float64, string or bool).
func (v Value) Interface() any {
	switch v.Kind {
	case StringValue:
		return v.Str
	case BoolValue:
		return v.Bool
	}
	return v.Num
}

// String renders numbers in shortest form, strings quoted, booleans as
// true/false.
func (v Value) String() string {
	switch v.Kind {
	case StringValue:
		return strconv.Quote(v.Str)
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}

// ── Expressions ───────────────────────────────────────────────────────────────

// LiteralExpr is a constant: 42, "hello", true.
type LiteralExpr struct {
	Loc   SourceLocation
	Value Value
}

func (e *LiteralExpr) expressionNode()          {}
func (e *LiteralExpr) Location() SourceLocation { return e.Loc }
func (e *LiteralExpr) String() string           { return e.Value.String() }

// VariableExpr is a reference to a named variable or function.
type VariableExpr struct {
	Loc  SourceLocation
	Name Token
}

func (e *VariableExpr) expressionNode()          {}
func (e *VariableExpr) Location() SourceLocation { return e.Loc }
func (e *VariableExpr) String() string           { return e.Name.Lexeme }

// BinaryExpr is an infix operation: left op right.
//
// Assignment is a BinaryExpr whose Op is ASSIGN and whose Left is always a
// *VariableExpr.
type BinaryExpr struct {
	Loc   SourceLocation
	Left  Expression
	Op    Token
	Right Expression
}

func (e *BinaryExpr) expressionNode()          {}
func (e *BinaryExpr) Location() SourceLocation { return e.Loc }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.Lexeme, e.Right.String())
}

// IsAssignment reports whether e is an assignment (x = value).
func (e *BinaryExpr) IsAssignment() bool { return e.Op.Type == ASSIGN }

// UnaryExpr is a prefix operation: -x, !done, not done.
type UnaryExpr struct {
	Loc   SourceLocation
	Op    Token
	Right Expression
}

func (e *UnaryExpr) expressionNode()          {}
func (e *UnaryExpr) Location() SourceLocation { return e.Loc }
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Op.Lexeme, e.Right.String())
}

// CallExpr is a call: callee(arg, ...).
// Paren is the closing parenthesis, kept for diagnostics.
type CallExpr struct {
	Loc    SourceLocation
	Callee Expression
	Paren  Token
	Args   []Expression
}

func (e *CallExpr) expressionNode()          {}
func (e *CallExpr) Location() SourceLocation { return e.Loc }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(args, ", "))
}

// PropertyExpr is a property access: object.name.
type PropertyExpr struct {
	Loc    SourceLocation
	Object Expression
	Name   Token
}

func (e *PropertyExpr) expressionNode()          {}
func (e *PropertyExpr) Location() SourceLocation { return e.Loc }
func (e *PropertyExpr) String() string {
	return e.Object.String() + "." + e.Name.Lexeme
}

// ── Statements ────────────────────────────────────────────────────────────────

// ExpressionStmt is an expression followed by ';'.
type ExpressionStmt struct {
	Loc  SourceLocation
	Expr Expression
}

func (s *ExpressionStmt) statementNode()           {}
func (s *ExpressionStmt) Location() SourceLocation { return s.Loc }
func (s *ExpressionStmt) String() string           { return s.Expr.String() + ";" }

// VarStmt declares a variable. Initializer is nil for "var x;".
type VarStmt struct {
	Loc         SourceLocation
	Name        Token
	Initializer Expression
}

func (s *VarStmt) statementNode()           {}
func (s *VarStmt) Location() SourceLocation { return s.Loc }
func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return fmt.Sprintf("var %s;", s.Name.Lexeme)
	}
	return fmt.Sprintf("var %s = %s;", s.Name.Lexeme, s.Initializer.String())
}

// BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	Loc        SourceLocation
	Statements []Statement
}

func (s *BlockStmt) statementNode()           {}
func (s *BlockStmt) Location() SourceLocation { return s.Loc }
func (s *BlockStmt) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, st := range s.Statements {
		b.WriteString(st.String())
		b.WriteByte(' ')
	}
	b.WriteString("}")
	return b.String()
}

// IfStmt is a conditional. Else is nil when there is no else branch.
type IfStmt struct {
	Loc       SourceLocation
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStmt) statementNode()           {}
func (s *IfStmt) Location() SourceLocation { return s.Loc }
func (s *IfStmt) String() string {
	out := fmt.Sprintf("if (%s) %s", s.Condition.String(), s.Then.String())
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is a conditional loop.
type WhileStmt struct {
	Loc       SourceLocation
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) statementNode()           {}
func (s *WhileStmt) Location() SourceLocation { return s.Loc }
func (s *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", s.Condition.String(), s.Body.String())
}

// FunctionStmt is a named function declaration.
//
//	function greet(who) { say "Hello " + who; }
type FunctionStmt struct {
	Loc    SourceLocation
	Name   Token
	Params []Token
	Body   *BlockStmt
}

func (s *FunctionStmt) statementNode()           {}
func (s *FunctionStmt) Location() SourceLocation { return s.Loc }
func (s *FunctionStmt) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Lexeme
	}
	return fmt.Sprintf("function %s(%s) %s", s.Name.Lexeme, strings.Join(params, ", "), s.Body.String())
}

// ReturnStmt returns from a function. Value is nil for a bare "return;".
type ReturnStmt struct {
	Loc     SourceLocation
	Keyword Token
	Value   Expression
}

func (s *ReturnStmt) statementNode()           {}
func (s *ReturnStmt) Location() SourceLocation { return s.Loc }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value.String())
}

// SayStmt shows a message to the player.
type SayStmt struct {
	Loc     SourceLocation
	Message Expression
}

func (s *SayStmt) statementNode()           {}
func (s *SayStmt) Location() SourceLocation { return s.Loc }
func (s *SayStmt) String() string           { return fmt.Sprintf("say %s;", s.Message.String()) }

// GotoStmt moves the player to another room.
type GotoStmt struct {
	Loc         SourceLocation
	Destination Expression
}

func (s *GotoStmt) statementNode()           {}
func (s *GotoStmt) Location() SourceLocation { return s.Loc }
func (s *GotoStmt) String() string {
	return fmt.Sprintf("goto(%s);", s.Destination.String())
}

// ── Structures ────────────────────────────────────────────────────────────────

// Property is one "name: value;" entry of a room or item body.
type Property struct {
	Name  string
	Value Expression
}

// EventHandler is one "when name { ... }" entry of a room body.
type EventHandler struct {
	Name string
	Body *BlockStmt
}

// Room is a location of the story world.
//
//	room hall {
//	    description: "A long hall.";
//	    item lamp { lit: false; }
//	    when entered { say "You enter the hall."; }
//	}
type Room struct {
	Loc        SourceLocation
	Name       Token
	Properties []Property
	Items      []*Item
	Events     []EventHandler
}

func (r *Room) Location() SourceLocation { return r.Loc }
func (r *Room) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "room %s { ", r.Name.Lexeme)
	writeProperties(&b, r.Properties)
	for _, it := range r.Items {
		b.WriteString(it.String())
		b.WriteByte(' ')
	}
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "when %s %s ", ev.Name, ev.Body.String())
	}
	b.WriteString("}")
	return b.String()
}

// Property returns the value of the named property, or nil.
func (r *Room) Property(name string) Expression {
	return lookupProperty(r.Properties, name)
}

// Item is an object placed inside a room.
type Item struct {
	Loc        SourceLocation
	Name       Token
	Properties []Property
}

func (it *Item) Location() SourceLocation { return it.Loc }
func (it *Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "item %s { ", it.Name.Lexeme)
	writeProperties(&b, it.Properties)
	b.WriteString("}")
	return b.String()
}

// Property returns the value of the named property, or nil.
func (it *Item) Property(name string) Expression {
	return lookupProperty(it.Properties, name)
}

func writeProperties(b *strings.Builder, props []Property) {
	for _, p := range props {
		fmt.Fprintf(b, "%s: %s; ", p.Name, p.Value.String())
	}
}

// lookupProperty returns the first property with the given name.
func lookupProperty(props []Property, name string) Expression {
	for _, p := range props {
		if p.Name == name {
			return p.Value
		}
	}
	return nil
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root node returned by the parser. It owns the whole tree.
// Rooms, statements and functions each keep their declaration order.
type Program struct {
	Loc        SourceLocation
	Rooms      []*Room
	Statements []Statement
	Functions  []*FunctionStmt
}

func (p *Program) AddRoom(r *Room)             { p.Rooms = append(p.Rooms, r) }
func (p *Program) AddStatement(s Statement)    { p.Statements = append(p.Statements, s) }
func (p *Program) AddFunction(f *FunctionStmt) { p.Functions = append(p.Functions, f) }
func (p *Program) Location() SourceLocation    { return p.Loc }

// String returns rooms, then functions, then statements, one per line.
func (p *Program) String() string {
	var b strings.Builder
	for _, r := range p.Rooms {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	for _, f := range p.Functions {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}
