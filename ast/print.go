package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented, one-node-per-line dump of the tree to w.
// Each line starts with the node kind and its location.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints label followed by node one level deeper.
func (p *printer) child(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) properties(props []Property) {
	for _, prop := range props {
		p.child("Property "+prop.Name, prop.Value)
	}
}

func (p *printer) print(node Node) {
	if isNil(node) {
		p.printf("<nil>\n")
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.Loc)
		p.indent++
		for _, r := range n.Rooms {
			p.print(r)
		}
		for _, f := range n.Functions {
			p.print(f)
		}
		for _, s := range n.Statements {
			p.print(s)
		}
		p.indent--

	case *Room:
		p.printf("Room %s %s\n", n.Name.Lexeme, n.Loc)
		p.indent++
		p.properties(n.Properties)
		for _, it := range n.Items {
			p.print(it)
		}
		for _, ev := range n.Events {
			p.child("When "+ev.Name, ev.Body)
		}
		p.indent--

	case *Item:
		p.printf("Item %s %s\n", n.Name.Lexeme, n.Loc)
		p.indent++
		p.properties(n.Properties)
		p.indent--

	case *FunctionStmt:
		params := make([]string, len(n.Params))
		for i, prm := range n.Params {
			params[i] = prm.Lexeme
		}
		p.printf("Function %s(%s) %s\n", n.Name.Lexeme, strings.Join(params, ", "), n.Loc)
		p.indent++
		p.print(n.Body)
		p.indent--

	case *BlockStmt:
		p.printf("Block %s\n", n.Loc)
		p.indent++
		for _, s := range n.Statements {
			p.print(s)
		}
		p.indent--

	case *ExpressionStmt:
		p.printf("ExpressionStmt %s\n", n.Loc)
		p.indent++
		p.print(n.Expr)
		p.indent--

	case *VarStmt:
		p.printf("Var %s %s\n", n.Name.Lexeme, n.Loc)
		if n.Initializer != nil {
			p.indent++
			p.print(n.Initializer)
			p.indent--
		}

	case *IfStmt:
		p.printf("If %s\n", n.Loc)
		p.indent++
		p.child("Cond", n.Condition)
		p.child("Then", n.Then)
		if n.Else != nil {
			p.child("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("While %s\n", n.Loc)
		p.indent++
		p.child("Cond", n.Condition)
		p.child("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("Return %s\n", n.Loc)
		if n.Value != nil {
			p.indent++
			p.print(n.Value)
			p.indent--
		}

	case *SayStmt:
		p.printf("Say %s\n", n.Loc)
		p.indent++
		p.print(n.Message)
		p.indent--

	case *GotoStmt:
		p.printf("Goto %s\n", n.Loc)
		p.indent++
		p.print(n.Destination)
		p.indent--

	case *LiteralExpr:
		p.printf("Literal %s %s\n", n.Value, n.Loc)

	case *VariableExpr:
		p.printf("Variable %s %s\n", n.Name.Lexeme, n.Loc)

	case *BinaryExpr:
		p.printf("Binary %s %s\n", n.Op.Lexeme, n.Loc)
		p.indent++
		p.print(n.Left)
		p.print(n.Right)
		p.indent--

	case *UnaryExpr:
		p.printf("Unary %s %s\n", n.Op.Lexeme, n.Loc)
		p.indent++
		p.print(n.Right)
		p.indent--

	case *CallExpr:
		p.printf("Call %s\n", n.Loc)
		p.indent++
		p.child("Callee", n.Callee)
		for i, a := range n.Args {
			p.child(fmt.Sprintf("Arg %d", i), a)
		}
		p.indent--

	case *PropertyExpr:
		p.printf("Property .%s %s\n", n.Name.Lexeme, n.Loc)
		p.indent++
		p.print(n.Object)
		p.indent--

	default:
		p.printf("%T\n", n)
	}
}
