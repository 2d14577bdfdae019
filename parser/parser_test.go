// Package parser_test contains tests for the StoryScript parser.
//
// Each test parses a snippet, inspects the returned tree via type assertions
// and fails with a descriptive message on mismatch.
//
// Test categories:
//   - Expressions:  precedence, associativity, unary chains, calls, property access
//   - Statements:   var, if/else, while, block, return, say, goto
//   - Structures:   room, item, event handlers, function, program ordering
//   - Errors:       diagnostics format, invalid assignment, recovery and termination
package parser_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/metaphox/storyscript/ast"
	"github.com/metaphox/storyscript/lexer"
	"github.com/metaphox/storyscript/parser"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// parse runs the parser on input and fails the test if any error was reported.
func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input, "test.story"), parser.WithDiagnostics(io.Discard))
	prog := p.Parse()
	if p.HadError() {
		t.Fatalf("unexpected parse errors:\n%v", p.Errors())
	}
	return prog
}

// parseWithErrors runs the parser and returns the program and the parser so
// the test can inspect diagnostics.
func parseWithErrors(t *testing.T, input string) (*ast.Program, *parser.Parser) {
	t.Helper()
	p := parser.New(lexer.New(input, "test.story"), parser.WithDiagnostics(io.Discard))
	prog := p.Parse()
	if prog == nil {
		t.Fatal("Parse returned nil program")
	}
	return prog, p
}

// firstStmt parses input and returns its only top-level statement.
func firstStmt(t *testing.T, input string) ast.Statement {
	t.Helper()
	prog := parse(t, input)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	return prog.Statements[0]
}

// exprOf parses `input` as a single expression statement and returns the
// expression.
func exprOf(t *testing.T, input string) ast.Expression {
	t.Helper()
	s := firstStmt(t, input)
	es, ok := s.(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStmt, got %T", s)
	}
	return es.Expr
}

func assertNumber(t *testing.T, expr ast.Expression, want float64) {
	t.Helper()
	lit, ok := expr.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("expected *ast.LiteralExpr, got %T (%s)", expr, expr)
	}
	if lit.Value.Kind != ast.NumberValue || lit.Value.Num != want {
		t.Fatalf("literal: got %s, want %v", lit.Value, want)
	}
}

func assertVariable(t *testing.T, expr ast.Expression, name string) {
	t.Helper()
	v, ok := expr.(*ast.VariableExpr)
	if !ok {
		t.Fatalf("expected *ast.VariableExpr, got %T", expr)
	}
	if v.Name.Lexeme != name {
		t.Fatalf("variable: got %q, want %q", v.Name.Lexeme, name)
	}
}

func assertBinary(t *testing.T, expr ast.Expression, op ast.TokenType) *ast.BinaryExpr {
	t.Helper()
	b, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T (%s)", expr, expr)
	}
	if b.Op.Type != op {
		t.Fatalf("operator: got %s, want %s", b.Op.Type, op)
	}
	return b
}

func assertLoc(t *testing.T, n ast.Node, line, col int) {
	t.Helper()
	loc := n.Location()
	if loc.Line != line || loc.Column != col {
		t.Errorf("%T location: got %d:%d, want %d:%d", n, loc.Line, loc.Column, line, col)
	}
	if loc.Filename != "test.story" {
		t.Errorf("%T filename: got %q", n, loc.Filename)
	}
}

// ── Expressions ───────────────────────────────────────────────────────────────

func TestParser_Precedence(t *testing.T) {
	s := firstStmt(t, `var x = 1 + 2 * 3;`)
	vs, ok := s.(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", s)
	}
	if vs.Name.Lexeme != "x" {
		t.Errorf("name: got %q", vs.Name.Lexeme)
	}

	sum := assertBinary(t, vs.Initializer, ast.PLUS)
	assertNumber(t, sum.Left, 1)
	prod := assertBinary(t, sum.Right, ast.MULTIPLY)
	assertNumber(t, prod.Left, 2)
	assertNumber(t, prod.Right, 3)
}

// TestParser_PrecedenceTable checks the whole ladder through String().
func TestParser_PrecedenceTable(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`1 - 2 - 3;`, `((1 - 2) - 3)`},
		{`8 / 4 % 3;`, `((8 / 4) % 3)`},
		{`(1 + 2) * 3;`, `((1 + 2) * 3)`},
		{`-a * b;`, `((- a) * b)`},
		{`!!done;`, `(! (! done))`},
		{`not a and b;`, `((not a) and b)`},
		{`a or b and c;`, `(a or (b and c))`},
		{`a == b < c;`, `(a == (b < c))`},
		{`a != b == c;`, `((a != b) == c)`},
		{`a + 1 >= b - 1;`, `((a + 1) >= (b - 1))`},
		{`x = y = 3;`, `(x = (y = 3))`},
		{`x = a or b;`, `(x = (a or b))`},
		{`f(1)(2);`, `f(1)(2)`},
		{`-f(x);`, `(- f(x))`},
		{`a.b.c;`, `a.b.c`},
		{`lamp.toggle(1, "on");`, `lamp.toggle(1, "on")`},
	}

	for _, tt := range tests {
		expr := exprOf(t, tt.input)
		if got := expr.String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParser_Assignment(t *testing.T) {
	expr := exprOf(t, `score = score + 1;`)
	b := assertBinary(t, expr, ast.ASSIGN)
	if !b.IsAssignment() {
		t.Error("IsAssignment: got false")
	}
	assertVariable(t, b.Left, "score")
	assertBinary(t, b.Right, ast.PLUS)
}

func TestParser_Literals(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{`42;`, ast.NewNumber(42)},
		{`3.5;`, ast.NewNumber(3.5)},
		{`"A long hall.";`, ast.NewString("A long hall.")},
		{`"";`, ast.NewString("")},
		{`true;`, ast.NewBool(true)},
		{`false;`, ast.NewBool(false)},
	}
	for _, tt := range tests {
		lit, ok := exprOf(t, tt.input).(*ast.LiteralExpr)
		if !ok {
			t.Fatalf("%s: not a literal", tt.input)
		}
		if lit.Value != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.input, lit.Value, tt.want)
		}
	}
}

func TestParser_Call(t *testing.T) {
	expr := exprOf(t, `describe(lamp, 2 + 3);`)
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", expr)
	}
	assertVariable(t, call.Callee, "describe")
	if len(call.Args) != 2 {
		t.Fatalf("args: got %d, want 2", len(call.Args))
	}
	assertVariable(t, call.Args[0], "lamp")
	assertBinary(t, call.Args[1], ast.PLUS)
	if call.Paren.Type != ast.RPAREN || call.Paren.Column != 21 {
		t.Errorf("paren: got %s", call.Paren)
	}
	assertLoc(t, call, 1, 1)

	empty := exprOf(t, `look();`).(*ast.CallExpr)
	if len(empty.Args) != 0 {
		t.Errorf("empty call args: got %d", len(empty.Args))
	}
}

// TestParser_PropertyAccess checks that `a.b` keeps the receiver.
func TestParser_PropertyAccess(t *testing.T) {
	expr := exprOf(t, `player.inventory.size;`)
	outer, ok := expr.(*ast.PropertyExpr)
	if !ok {
		t.Fatalf("expected *ast.PropertyExpr, got %T", expr)
	}
	if outer.Name.Lexeme != "size" {
		t.Errorf("outer name: got %q", outer.Name.Lexeme)
	}
	inner, ok := outer.Object.(*ast.PropertyExpr)
	if !ok {
		t.Fatalf("expected inner *ast.PropertyExpr, got %T", outer.Object)
	}
	if inner.Name.Lexeme != "inventory" {
		t.Errorf("inner name: got %q", inner.Name.Lexeme)
	}
	assertVariable(t, inner.Object, "player")
	assertLoc(t, outer, 1, 1)
}

// TestParser_PropertyAssignment documents that only plain variables are
// assignable.
func TestParser_PropertyAssignment(t *testing.T) {
	prog, p := parseWithErrors(t, `lamp.lit = true;`)
	if !p.HadError() {
		t.Fatal("expected an error")
	}
	if got := p.Errors()[0].Message; got != "Invalid assignment target." {
		t.Errorf("message: got %q", got)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements: got %d, want 1", len(prog.Statements))
	}
	es := prog.Statements[0].(*ast.ExpressionStmt)
	if _, ok := es.Expr.(*ast.PropertyExpr); !ok {
		t.Errorf("expected the left side to survive, got %T", es.Expr)
	}
}

func TestParser_ExpressionLocations(t *testing.T) {
	expr := exprOf(t, "\n  a + -b;")
	b := assertBinary(t, expr, ast.PLUS)
	assertLoc(t, b, 2, 3)
	assertLoc(t, b.Right, 2, 7)
}

// ── Statements ────────────────────────────────────────────────────────────────

func TestParser_VarWithoutInitializer(t *testing.T) {
	vs, ok := firstStmt(t, `var torch;`).(*ast.VarStmt)
	if !ok {
		t.Fatal("expected *ast.VarStmt")
	}
	if vs.Initializer != nil {
		t.Errorf("initializer: got %s, want nil", vs.Initializer)
	}
	assertLoc(t, vs, 1, 1)
}

func TestParser_IfElse(t *testing.T) {
	s := firstStmt(t, `if (x > 1) say "big"; else { say "small"; }`)
	is, ok := s.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", s)
	}
	assertBinary(t, is.Condition, ast.GT)
	if _, ok := is.Then.(*ast.SayStmt); !ok {
		t.Errorf("then: got %T", is.Then)
	}
	blk, ok := is.Else.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("else: got %T", is.Else)
	}
	if len(blk.Statements) != 1 {
		t.Errorf("else block: got %d statements", len(blk.Statements))
	}
}

func TestParser_IfWithoutElse(t *testing.T) {
	is := firstStmt(t, `if (lit) say "bright";`).(*ast.IfStmt)
	if is.Else != nil {
		t.Errorf("else: got %T, want nil", is.Else)
	}
}

func TestParser_While(t *testing.T) {
	ws, ok := firstStmt(t, `while (n < 3) { n = n + 1; say n; }`).(*ast.WhileStmt)
	if !ok {
		t.Fatal("expected *ast.WhileStmt")
	}
	assertBinary(t, ws.Condition, ast.LT)
	body, ok := ws.Body.(*ast.BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("body: got %s", ws.Body)
	}
}

func TestParser_Block(t *testing.T) {
	blk, ok := firstStmt(t, `{ var a = 1; { say a; } }`).(*ast.BlockStmt)
	if !ok {
		t.Fatal("expected *ast.BlockStmt")
	}
	if len(blk.Statements) != 2 {
		t.Fatalf("statements: got %d", len(blk.Statements))
	}
	if _, ok := blk.Statements[1].(*ast.BlockStmt); !ok {
		t.Errorf("nested: got %T", blk.Statements[1])
	}
	assertLoc(t, blk, 1, 1)
}

func TestParser_SayAndGoto(t *testing.T) {
	prog := parse(t, "say \"You see a door.\";\ngoto(garden);")
	if len(prog.Statements) != 2 {
		t.Fatalf("statements: got %d", len(prog.Statements))
	}
	say, ok := prog.Statements[0].(*ast.SayStmt)
	if !ok {
		t.Fatalf("expected *ast.SayStmt, got %T", prog.Statements[0])
	}
	if say.Message.String() != `"You see a door."` {
		t.Errorf("message: got %s", say.Message)
	}
	gt, ok := prog.Statements[1].(*ast.GotoStmt)
	if !ok {
		t.Fatalf("expected *ast.GotoStmt, got %T", prog.Statements[1])
	}
	assertVariable(t, gt.Destination, "garden")
	assertLoc(t, gt, 2, 1)
}

// ── Structures ────────────────────────────────────────────────────────────────

const hallSource = `room hall {
    description: "A long hall.";
    item lamp { lit: false; weight: 2; }
    when entered { say "Welcome."; }
    exits: 2;
    when look { say description; }
}`

func TestParser_Room(t *testing.T) {
	prog := parse(t, hallSource)
	if len(prog.Rooms) != 1 {
		t.Fatalf("rooms: got %d", len(prog.Rooms))
	}
	room := prog.Rooms[0]
	if room.Name.Lexeme != "hall" {
		t.Errorf("name: got %q", room.Name.Lexeme)
	}
	assertLoc(t, room, 1, 1)

	if len(room.Properties) != 2 ||
		room.Properties[0].Name != "description" ||
		room.Properties[1].Name != "exits" {
		t.Errorf("properties: got %+v", room.Properties)
	}
	assertNumber(t, room.Property("exits"), 2)
	if room.Property("missing") != nil {
		t.Error("Property(missing): expected nil")
	}

	if len(room.Items) != 1 {
		t.Fatalf("items: got %d", len(room.Items))
	}
	lamp := room.Items[0]
	if lamp.Name.Lexeme != "lamp" || len(lamp.Properties) != 2 {
		t.Errorf("item: got %s", lamp)
	}
	if lamp.Properties[0].Name != "lit" || lamp.Properties[1].Name != "weight" {
		t.Errorf("item properties out of order: %+v", lamp.Properties)
	}
	assertLoc(t, lamp, 3, 5)

	if len(room.Events) != 2 {
		t.Fatalf("events: got %d", len(room.Events))
	}
	if room.Events[0].Name != "entered" || room.Events[1].Name != "look" {
		t.Errorf("events: got %q, %q", room.Events[0].Name, room.Events[1].Name)
	}
	if n := len(room.Events[0].Body.Statements); n != 1 {
		t.Errorf("entered body: got %d statements", n)
	}
}

func TestParser_Function(t *testing.T) {
	prog := parse(t, `function greet(who, times) { say who; return times; }
function noop() { return; }`)
	if len(prog.Functions) != 2 {
		t.Fatalf("functions: got %d", len(prog.Functions))
	}

	greet := prog.Functions[0]
	if greet.Name.Lexeme != "greet" {
		t.Errorf("name: got %q", greet.Name.Lexeme)
	}
	if len(greet.Params) != 2 || greet.Params[0].Lexeme != "who" || greet.Params[1].Lexeme != "times" {
		t.Errorf("params: got %v", greet.Params)
	}
	if len(greet.Body.Statements) != 2 {
		t.Errorf("body: got %d statements", len(greet.Body.Statements))
	}
	ret := greet.Body.Statements[1].(*ast.ReturnStmt)
	if ret.Keyword.Type != ast.RETURN {
		t.Errorf("return keyword: got %s", ret.Keyword)
	}

	noop := prog.Functions[1]
	if len(noop.Params) != 0 {
		t.Errorf("noop params: got %v", noop.Params)
	}
	if r := noop.Body.Statements[0].(*ast.ReturnStmt); r.Value != nil {
		t.Errorf("bare return value: got %s", r.Value)
	}
	assertLoc(t, noop, 2, 1)
}

// TestParser_ProgramOrdering checks that rooms, functions and statements each
// keep declaration order in their own list.
func TestParser_ProgramOrdering(t *testing.T) {
	prog := parse(t, `
var a = 1;
room first { }
function f() { }
say a;
room second { }
function g() { }
goto(first);`)

	if len(prog.Rooms) != 2 || prog.Rooms[0].Name.Lexeme != "first" || prog.Rooms[1].Name.Lexeme != "second" {
		t.Errorf("rooms: got %v", prog.Rooms)
	}
	if len(prog.Functions) != 2 || prog.Functions[0].Name.Lexeme != "f" || prog.Functions[1].Name.Lexeme != "g" {
		t.Errorf("functions: got %v", prog.Functions)
	}
	if len(prog.Statements) != 3 {
		t.Fatalf("statements: got %d", len(prog.Statements))
	}
	for i, want := range []string{"*ast.VarStmt", "*ast.SayStmt", "*ast.GotoStmt"} {
		if got := typeName(prog.Statements[i]); got != want {
			t.Errorf("statement %d: got %s, want %s", i, got, want)
		}
	}
}

func typeName(n ast.Node) string {
	switch n.(type) {
	case *ast.VarStmt:
		return "*ast.VarStmt"
	case *ast.SayStmt:
		return "*ast.SayStmt"
	case *ast.GotoStmt:
		return "*ast.GotoStmt"
	}
	return "other"
}

func TestParser_EmptyProgram(t *testing.T) {
	for _, in := range []string{"", "  \n", "// nothing here"} {
		prog := parse(t, in)
		if len(prog.Rooms)+len(prog.Functions)+len(prog.Statements) != 0 {
			t.Errorf("%q: expected empty program", in)
		}
		assertLoc(t, prog, 1, 1)
	}
}

// ── Errors and recovery ───────────────────────────────────────────────────────

func TestParser_DiagnosticFormat(t *testing.T) {
	var buf bytes.Buffer
	p := parser.New(lexer.New("var x = 1", "test.story"), parser.WithDiagnostics(&buf))
	p.Parse()

	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	want := "Error at 1:10 - Expected ';' after variable declaration.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	errs := p.Errors()
	if len(errs) != 1 || errs[0].Line != 1 || errs[0].Column != 10 {
		t.Errorf("errors: got %v", errs)
	}
}

func TestParser_InvalidAssignment(t *testing.T) {
	prog, p := parseWithErrors(t, `1 = 2;`)
	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	if got := p.Errors()[0].Error(); got != "Error at 1:3 - Invalid assignment target." {
		t.Errorf("got %q", got)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements: got %d, want 1", len(prog.Statements))
	}
	assertNumber(t, prog.Statements[0].(*ast.ExpressionStmt).Expr, 1)
}

// TestParser_MissingTokenIsLocal checks that a missing ')' only produces a
// diagnostic and the statement is still built.
func TestParser_MissingTokenIsLocal(t *testing.T) {
	prog, p := parseWithErrors(t, `goto(hall; say "next";`)
	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("statements: got %d, want 2", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.GotoStmt); !ok {
		t.Errorf("first: got %T", prog.Statements[0])
	}
}

func TestParser_RecoveryAfterBadStatement(t *testing.T) {
	prog, p := parseWithErrors(t, `say ); say "ok";`)
	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	if got := p.Errors()[0].Message; got != "Expected expression." {
		t.Errorf("message: got %q", got)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements: got %d, want 1", len(prog.Statements))
	}
	say := prog.Statements[0].(*ast.SayStmt)
	if say.Message.String() != `"ok"` {
		t.Errorf("recovered statement: got %s", say)
	}
}

// TestParser_RecoveryAtKeyword checks that recovery resumes at a declaration
// keyword without needing a ';'.
func TestParser_RecoveryAtKeyword(t *testing.T) {
	prog, p := parseWithErrors(t, `room hall { name: } } room garden { }`)
	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	if len(prog.Rooms) != 1 || prog.Rooms[0].Name.Lexeme != "garden" {
		t.Errorf("rooms: got %v", prog.Rooms)
	}
}

func TestParser_UnterminatedRoom(t *testing.T) {
	prog, p := parseWithErrors(t, `room hall { description: "x";`)
	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	last := p.Errors()[len(p.Errors())-1]
	if last.Message != "Expected '}' after room body." {
		t.Errorf("message: got %q", last.Message)
	}
	if len(prog.Rooms) != 1 {
		t.Errorf("rooms: got %d, want the best-effort room", len(prog.Rooms))
	}
}

// TestParser_Terminates feeds malformed inputs that must not hang the parser.
func TestParser_Terminates(t *testing.T) {
	inputs := []string{
		`}}}`,
		`)))`,
		`room`,
		`room {`,
		`room hall { item`,
		`room hall { when`,
		`room hall { when entered {`,
		`function`,
		`function f(`,
		`function f(a b c) {`,
		`if (`,
		`while (x`,
		`@@@`,
		`"unterminated`,
		`var = ;`,
		`a.`,
		`f(1, 2`,
		`for (;;) { }`,
		strings.Repeat("{", 50),
		strings.Repeat("room r { x: ", 20),
	}
	for _, in := range inputs {
		if _, p := parseWithErrors(t, in); !p.HadError() {
			t.Errorf("%q: expected HadError", in)
		}
	}
}

func TestParser_ParseString(t *testing.T) {
	prog, err := parser.ParseString(hallSource, "hall.story", parser.WithDiagnostics(io.Discard))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Rooms[0].Location().Filename != "hall.story" {
		t.Errorf("filename: got %q", prog.Rooms[0].Location().Filename)
	}

	_, err = parser.ParseString("say ; 1 = 2;", "bad.story", parser.WithDiagnostics(io.Discard))
	el, ok := err.(parser.ErrorList)
	if !ok {
		t.Fatalf("expected parser.ErrorList, got %T", err)
	}
	if len(el) != 2 {
		t.Errorf("errors: got %d, want 2:\n%v", len(el), el)
	}
	if !strings.Contains(el.Error(), "\n") {
		t.Errorf("joined message: got %q", el.Error())
	}
}

// TestParser_Castle parses the sample world in testdata end to end.
func TestParser_Castle(t *testing.T) {
	src, err := os.ReadFile("testdata/castle.story")
	if err != nil {
		t.Fatal(err)
	}
	prog := parse(t, string(src))

	if len(prog.Rooms) != 2 || len(prog.Functions) != 2 || len(prog.Statements) != 4 {
		t.Fatalf("got %d rooms, %d functions, %d statements",
			len(prog.Rooms), len(prog.Functions), len(prog.Statements))
	}

	hall := prog.Rooms[0]
	if len(hall.Items) != 1 || len(hall.Events) != 2 {
		t.Errorf("hall: got %d items, %d events", len(hall.Items), len(hall.Events))
	}
	assertNumber(t, hall.Items[0].Property("weight"), 1.5)

	entered := hall.Events[0].Body.Statements
	is, ok := entered[1].(*ast.IfStmt)
	if !ok {
		t.Fatalf("entered[1]: got %T", entered[1])
	}
	if got := is.Condition.String(); got != "((visits > 1) and (not hasKey))" {
		t.Errorf("condition: got %s", got)
	}

	isEven := prog.Functions[1].Body.Statements[0].(*ast.ReturnStmt)
	if got := isEven.Value.String(); got != "((n % 2) == 0)" {
		t.Errorf("isEven: got %s", got)
	}
}

// TestParser_NumberOverflow checks that a literal too large for float64 is
// reported and leaves a finite value in the tree.
func TestParser_NumberOverflow(t *testing.T) {
	prog, p := parseWithErrors(t, "var x = "+strings.Repeat("9", 400)+";")
	if !p.HadError() {
		t.Fatal("expected HadError")
	}
	if got := p.Errors()[0].Error(); got != "Error at 1:9 - Invalid number literal." {
		t.Errorf("got %q", got)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("statements: got %d, want 1", len(prog.Statements))
	}
	assertNumber(t, prog.Statements[0].(*ast.VarStmt).Initializer, 0)

	var buf bytes.Buffer
	if err := ast.FprintJSON(&buf, prog); err != nil {
		t.Errorf("FprintJSON: %v", err)
	}
}

// TestParser_RecoveryLogged checks the debug record written on each
// resynchronization.
func TestParser_RecoveryLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := parser.New(lexer.New("say ); say 1;", "test.story"),
		parser.WithDiagnostics(io.Discard),
		parser.WithLogger(logger))
	p.Parse()

	out := buf.String()
	for _, want := range []string{
		`level=DEBUG`,
		`msg="parser resynchronized"`,
		`from=test.story:1:5`,
		`resume=test.story:1:8`,
		`skipped=2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log record missing %s:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "parser resynchronized"); n != 1 {
		t.Errorf("got %d recovery records, want 1", n)
	}
}

// TestParser_NoRecoveryNoLog checks that a clean parse writes nothing at
// debug level.
func TestParser_NoRecoveryNoLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := parser.New(lexer.New(hallSource, "test.story"), parser.WithLogger(logger))
	p.Parse()
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}
