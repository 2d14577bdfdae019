package ast

import "fmt"

// SourceLocation is a position in a named source file.
// Line and Column are 1-based; Column counts bytes within the line.
type SourceLocation struct {
	Filename string
	Line     int
	Column   int
}

// String returns "file:line:col", or "line:col" when Filename is empty.
func (l SourceLocation) String() string {
	if l.Filename == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// IsValid reports whether the location points into a file (Line > 0).
func (l SourceLocation) IsValid() bool {
	return l.Line > 0
}
