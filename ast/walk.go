package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a tree in depth-first order, visiting children in source
// order. Nil children are skipped.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, r := range n.Rooms {
			Walk(r, v)
		}
		for _, f := range n.Functions {
			Walk(f, v)
		}
		for _, s := range n.Statements {
			Walk(s, v)
		}

	case *Room:
		for _, p := range n.Properties {
			Walk(p.Value, v)
		}
		for _, it := range n.Items {
			Walk(it, v)
		}
		for _, ev := range n.Events {
			Walk(ev.Body, v)
		}

	case *Item:
		for _, p := range n.Properties {
			Walk(p.Value, v)
		}

	case *ExpressionStmt:
		Walk(n.Expr, v)

	case *VarStmt:
		Walk(n.Initializer, v)

	case *BlockStmt:
		for _, s := range n.Statements {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Condition, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *WhileStmt:
		Walk(n.Condition, v)
		Walk(n.Body, v)

	case *FunctionStmt:
		Walk(n.Body, v)

	case *ReturnStmt:
		Walk(n.Value, v)

	case *SayStmt:
		Walk(n.Message, v)

	case *GotoStmt:
		Walk(n.Destination, v)

	case *BinaryExpr:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *UnaryExpr:
		Walk(n.Right, v)

	case *CallExpr:
		Walk(n.Callee, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *PropertyExpr:
		Walk(n.Object, v)

	case *LiteralExpr, *VariableExpr:
		// leaves
	}
}

// Inspect calls f for every node below and including root.
func Inspect(root Node, f func(Node)) {
	Walk(root, func(n Node) bool {
		f(n)
		return true
	})
}

// isNil reports whether node is nil, including typed nil pointers stored in
// an interface (a missing else branch, a var without initializer).
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *BlockStmt:
		return n == nil
	case *FunctionStmt:
		return n == nil
	case *Room:
		return n == nil
	case *Item:
		return n == nil
	case *Program:
		return n == nil
	}
	return false
}
