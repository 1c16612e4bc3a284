package pyast

// Module is the root node: one parsed source file.
type Module struct {
	Base
	Body []Stmt
}

// Param is one positional parameter of a function definition. A default is
// recorded as the literal's source text plus its runtime type name; nil
// Default means the parameter has no default.
type Param struct {
	Name    string
	Default *Constant
}

// FunctionDef declares a function or method.
type FunctionDef struct {
	Base
	Name   string
	Params []Param
	// BadParams is set when the definition uses parameter kinds the
	// translator does not model (varargs, kw-only, splats); the declaration
	// pass skips such functions silently.
	BadParams bool
	Body      []Stmt
}

// ClassDef declares a class. Bases keeps the expressions as written; only
// plain identifiers are accepted downstream.
type ClassDef struct {
	Base
	Name  string
	Bases []Expr
	Body  []Stmt
}

// Assign is a single-target assignment.
type Assign struct {
	Base
	Target Expr
	Value  Expr
}

// If is a conditional. An elif clause parses as a nested If (Elif set) as
// the sole statement of Else; ElseLine records the line of the else/elif
// introducer so the block header can be emitted at its true position.
type If struct {
	Base
	Test     Expr
	Body     []Stmt
	ElseLine uint32
	Else     []Stmt
	Elif     bool
}

// While is a while loop.
type While struct {
	Base
	Test Expr
	Body []Stmt
}

// For is a for loop over an iterable expression.
type For struct {
	Base
	Target Expr
	Iter   Expr
	Body   []Stmt
}

// Return exits the enclosing function; Value may be nil.
type Return struct {
	Base
	Value Expr
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	Base
	Value Expr
}

// Break, Continue and Pass are the loop/no-op statements.
type (
	Break    struct{ Base }
	Continue struct{ Base }
	Pass     struct{ Base }
)

// BadStmt preserves a statement kind the tree has no model for. It always
// degrades to pass-through; Kind names the original grammar node.
type BadStmt struct {
	Base
	Kind string
}

func (*Module) stmtNode()      {}
func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Assign) stmtNode()      {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*BadStmt) stmtNode()     {}
