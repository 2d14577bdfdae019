package ast

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes an indented JSON representation of the tree to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToMap(node))
}

// FprintYAML writes a YAML representation of the tree to w.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToMap(node)); err != nil {
		return err
	}
	return enc.Close()
}

// ToMap converts node into nested maps and slices suitable for generic
// encoders. Every node map has a "type" and a "loc" key.
func ToMap(node Node) any {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]any{
			"type":       "Program",
			"loc":        n.Loc.String(),
			"rooms":      mapSlice(n.Rooms),
			"functions":  mapSlice(n.Functions),
			"statements": mapSlice(n.Statements),
		}

	case *Room:
		events := make([]any, len(n.Events))
		for i, ev := range n.Events {
			events[i] = map[string]any{"name": ev.Name, "body": ToMap(ev.Body)}
		}
		return map[string]any{
			"type":       "Room",
			"loc":        n.Loc.String(),
			"name":       n.Name.Lexeme,
			"properties": propertiesToMap(n.Properties),
			"items":      mapSlice(n.Items),
			"events":     events,
		}

	case *Item:
		return map[string]any{
			"type":       "Item",
			"loc":        n.Loc.String(),
			"name":       n.Name.Lexeme,
			"properties": propertiesToMap(n.Properties),
		}

	case *FunctionStmt:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		return map[string]any{
			"type":   "Function",
			"loc":    n.Loc.String(),
			"name":   n.Name.Lexeme,
			"params": params,
			"body":   ToMap(n.Body),
		}

	case *BlockStmt:
		return map[string]any{
			"type":       "Block",
			"loc":        n.Loc.String(),
			"statements": mapSlice(n.Statements),
		}

	case *ExpressionStmt:
		return map[string]any{
			"type": "ExpressionStmt",
			"loc":  n.Loc.String(),
			"expr": ToMap(n.Expr),
		}

	case *VarStmt:
		m := map[string]any{
			"type": "Var",
			"loc":  n.Loc.String(),
			"name": n.Name.Lexeme,
		}
		if n.Initializer != nil {
			m["initializer"] = ToMap(n.Initializer)
		}
		return m

	case *IfStmt:
		m := map[string]any{
			"type":      "If",
			"loc":       n.Loc.String(),
			"condition": ToMap(n.Condition),
			"then":      ToMap(n.Then),
		}
		if n.Else != nil {
			m["else"] = ToMap(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]any{
			"type":      "While",
			"loc":       n.Loc.String(),
			"condition": ToMap(n.Condition),
			"body":      ToMap(n.Body),
		}

	case *ReturnStmt:
		m := map[string]any{
			"type": "Return",
			"loc":  n.Loc.String(),
		}
		if n.Value != nil {
			m["value"] = ToMap(n.Value)
		}
		return m

	case *SayStmt:
		return map[string]any{
			"type":    "Say",
			"loc":     n.Loc.String(),
			"message": ToMap(n.Message),
		}

	case *GotoStmt:
		return map[string]any{
			"type":        "Goto",
			"loc":         n.Loc.String(),
			"destination": ToMap(n.Destination),
		}

	case *LiteralExpr:
		return map[string]any{
			"type":  "Literal",
			"loc":   n.Loc.String(),
			"kind":  n.Value.Kind.String(),
			"value": literalValue(n.Value),
		}

	case *VariableExpr:
		return map[string]any{
			"type": "Variable",
			"loc":  n.Loc.String(),
			"name": n.Name.Lexeme,
		}

	case *BinaryExpr:
		return map[string]any{
			"type":  "Binary",
			"loc":   n.Loc.String(),
			"op":    n.Op.Lexeme,
			"left":  ToMap(n.Left),
			"right": ToMap(n.Right),
		}

	case *UnaryExpr:
		return map[string]any{
			"type":    "Unary",
			"loc":     n.Loc.String(),
			"op":      n.Op.Lexeme,
			"operand": ToMap(n.Right),
		}

	case *CallExpr:
		return map[string]any{
			"type":   "Call",
			"loc":    n.Loc.String(),
			"callee": ToMap(n.Callee),
			"args":   mapSlice(n.Args),
		}

	case *PropertyExpr:
		return map[string]any{
			"type":   "Property",
			"loc":    n.Loc.String(),
			"object": ToMap(n.Object),
			"name":   n.Name.Lexeme,
		}
	}
	return nil
}

// literalValue returns v as a plain Go value. Infinities and NaN have no JSON
// form and are rendered as strings such as "+Inf".
func literalValue(v Value) any {
	if v.Kind == NumberValue && (math.IsInf(v.Num, 0) || math.IsNaN(v.Num)) {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Interface()
}

func propertiesToMap(props []Property) []any {
	out := make([]any, len(props))
	for i, p := range props {
		out[i] = map[string]any{"name": p.Name, "value": ToMap(p.Value)}
	}
	return out
}

func mapSlice[T Node](nodes []T) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToMap(n)
	}
	return out
}
