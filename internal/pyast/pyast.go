// Package pyast defines the position-annotated Python syntax tree the
// translator consumes. Nodes carry 1-based start/end lines and the 0-based
// byte column just past the node's last character; the column is what lets
// the comment pass tell trailing comments apart from translated code.
package pyast

// Pos locates a node in its source file.
type Pos struct {
	Line    uint32 // 1-based first line
	EndLine uint32 // 1-based last line
	EndCol  uint32 // 0-based byte offset just past the node on EndLine
}

// Node is implemented by every statement and expression.
type Node interface {
	Pos() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Base carries the source position embedded in every node.
type Base struct {
	Span Pos
}

func (b Base) Pos() Pos { return b.Span }
