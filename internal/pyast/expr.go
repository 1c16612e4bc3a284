package pyast

// OpKind enumerates binary, boolean and unary operators.
type OpKind uint8

const (
	OpInvalid OpKind = iota
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitOr
	OpBitAnd
	OpBitXor
	OpAnd
	OpOr
	OpNot
	OpInvert
	OpUAdd
	OpUSub
)

func (op OpKind) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpLShift:
		return "<<"
	case OpRShift:
		return ">>"
	case OpBitOr:
		return "|"
	case OpBitAnd:
		return "&"
	case OpBitXor:
		return "^"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpInvert:
		return "~"
	case OpUAdd:
		return "+"
	case OpUSub:
		return "-"
	default:
		return "?"
	}
}

// CmpKind enumerates comparison operators, including the membership and
// identity tests the translator refuses.
type CmpKind uint8

const (
	CmpInvalid CmpKind = iota
	CmpEq
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIn
	CmpNotIn
	CmpIs
	CmpIsNot
)

func (c CmpKind) String() string {
	switch c {
	case CmpEq:
		return "=="
	case CmpNotEq:
		return "!="
	case CmpLt:
		return "<"
	case CmpLtE:
		return "<="
	case CmpGt:
		return ">"
	case CmpGtE:
		return ">="
	case CmpIn:
		return "in"
	case CmpNotIn:
		return "not in"
	case CmpIs:
		return "is"
	case CmpIsNot:
		return "is not"
	default:
		return "?"
	}
}

// Name is an identifier reference.
type Name struct {
	Base
	Ident string
}

// Constant is a literal. Raw holds the value's source text (for strings,
// the unquoted content); Type is the Python runtime type name ("int",
// "float", "str", "bool", "NoneType").
type Constant struct {
	Base
	Raw  string
	Type string
}

// BinOp is a binary arithmetic/bitwise/shift operation.
type BinOp struct {
	Base
	Op    OpKind
	Left  Expr
	Right Expr
}

// BoolOp is a short-circuit chain of two or more operands joined by one
// operator (nested same-operator chains are flattened by the parser).
type BoolOp struct {
	Base
	Op     OpKind
	Values []Expr
}

// UnaryOp applies a unary operator.
type UnaryOp struct {
	Base
	Op      OpKind
	Operand Expr
}

// Compare is a possibly chained comparison: Left Ops[0] Comparators[0]
// Ops[1] Comparators[1] …
type Compare struct {
	Base
	Left        Expr
	Ops         []CmpKind
	Comparators []Expr
}

// Call applies arguments to a callee expression.
type Call struct {
	Base
	Func Expr
	Args []Expr
}

// Attribute accesses a named member of a value.
type Attribute struct {
	Base
	Value Expr
	Attr  string
}

// Subscript is an indexed access.
type Subscript struct {
	Base
	Value Expr
	Index Expr
}

// List, Tuple and Set are the collection literals.
type (
	List struct {
		Base
		Elts []Expr
	}
	Tuple struct {
		Base
		Elts []Expr
	}
	Set struct {
		Base
		Elts []Expr
	}
)

// BadExpr preserves an expression kind the tree has no model for.
type BadExpr struct {
	Base
	Kind string
}

func (*Name) exprNode()      {}
func (*Constant) exprNode()  {}
func (*BinOp) exprNode()     {}
func (*BoolOp) exprNode()    {}
func (*UnaryOp) exprNode()   {}
func (*Compare) exprNode()   {}
func (*Call) exprNode()      {}
func (*Attribute) exprNode() {}
func (*Subscript) exprNode() {}
func (*List) exprNode()      {}
func (*Tuple) exprNode()     {}
func (*Set) exprNode()       {}
func (*BadExpr) exprNode()   {}
