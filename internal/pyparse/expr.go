package pyparse

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"catalyst/internal/pyast"
)

var binOps = map[string]pyast.OpKind{
	"+":  pyast.OpAdd,
	"-":  pyast.OpSub,
	"*":  pyast.OpMult,
	"/":  pyast.OpDiv,
	"//": pyast.OpFloorDiv,
	"%":  pyast.OpMod,
	"**": pyast.OpPow,
	"<<": pyast.OpLShift,
	">>": pyast.OpRShift,
	"|":  pyast.OpBitOr,
	"&":  pyast.OpBitAnd,
	"^":  pyast.OpBitXor,
}

var cmpOps = map[string]pyast.CmpKind{
	"==":     pyast.CmpEq,
	"!=":     pyast.CmpNotEq,
	"<":      pyast.CmpLt,
	"<=":     pyast.CmpLtE,
	">":      pyast.CmpGt,
	">=":     pyast.CmpGtE,
	"in":     pyast.CmpIn,
	"not in": pyast.CmpNotIn,
	"is":     pyast.CmpIs,
	"is not": pyast.CmpIsNot,
}

func (c *converter) expr(n *sitter.Node) pyast.Expr {
	if n == nil {
		return &pyast.BadExpr{Kind: "missing"}
	}
	switch n.Kind() {
	case "identifier":
		return &pyast.Name{Base: c.base(n), Ident: c.text(n)}
	case "integer":
		return &pyast.Constant{Base: c.base(n), Raw: c.text(n), Type: "int"}
	case "float":
		return &pyast.Constant{Base: c.base(n), Raw: c.text(n), Type: "float"}
	case "true":
		return &pyast.Constant{Base: c.base(n), Raw: "True", Type: "bool"}
	case "false":
		return &pyast.Constant{Base: c.base(n), Raw: "False", Type: "bool"}
	case "none":
		return &pyast.Constant{Base: c.base(n), Raw: "None", Type: "NoneType"}
	case "string":
		return c.stringLit(n)
	case "binary_operator":
		opNode := n.ChildByFieldName("operator")
		op, ok := binOps[nodeText(c, opNode)]
		if !ok {
			return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
		}
		return &pyast.BinOp{
			Base:  c.base(n),
			Op:    op,
			Left:  c.expr(n.ChildByFieldName("left")),
			Right: c.expr(n.ChildByFieldName("right")),
		}
	case "boolean_operator":
		return c.boolChain(n)
	case "not_operator":
		return &pyast.UnaryOp{
			Base:    c.base(n),
			Op:      pyast.OpNot,
			Operand: c.expr(n.ChildByFieldName("argument")),
		}
	case "unary_operator":
		var op pyast.OpKind
		switch nodeText(c, n.ChildByFieldName("operator")) {
		case "-":
			op = pyast.OpUSub
		case "+":
			op = pyast.OpUAdd
		case "~":
			op = pyast.OpInvert
		default:
			return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
		}
		return &pyast.UnaryOp{
			Base:    c.base(n),
			Op:      op,
			Operand: c.expr(n.ChildByFieldName("argument")),
		}
	case "comparison_operator":
		return c.comparison(n)
	case "call":
		return c.call(n)
	case "attribute":
		attr := n.ChildByFieldName("attribute")
		if attr == nil {
			return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
		}
		return &pyast.Attribute{
			Base:  c.base(n),
			Value: c.expr(n.ChildByFieldName("object")),
			Attr:  c.text(attr),
		}
	case "subscript":
		idx := n.ChildByFieldName("subscript")
		if idx == nil || idx.Kind() == "slice" {
			return &pyast.BadExpr{Base: c.base(n), Kind: "slice"}
		}
		return &pyast.Subscript{
			Base:  c.base(n),
			Value: c.expr(n.ChildByFieldName("value")),
			Index: c.expr(idx),
		}
	case "list":
		return &pyast.List{Base: c.base(n), Elts: c.elements(n)}
	case "tuple":
		return &pyast.Tuple{Base: c.base(n), Elts: c.elements(n)}
	case "set":
		return &pyast.Set{Base: c.base(n), Elts: c.elements(n)}
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return c.expr(n.NamedChild(0))
		}
		return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
	default:
		return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
	}
}

func (c *converter) elements(n *sitter.Node) []pyast.Expr {
	out := make([]pyast.Expr, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		out = append(out, c.expr(n.NamedChild(i)))
	}
	return out
}

// boolChain flattens nested same-operator boolean chains (a or b or c) into
// one BoolOp with three operands, matching how the translator types them.
func (c *converter) boolChain(n *sitter.Node) pyast.Expr {
	opText := nodeText(c, n.ChildByFieldName("operator"))
	var op pyast.OpKind
	switch opText {
	case "and":
		op = pyast.OpAnd
	case "or":
		op = pyast.OpOr
	default:
		return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
	}

	chain := &pyast.BoolOp{Base: c.base(n), Op: op}
	var gather func(node *sitter.Node)
	gather = func(node *sitter.Node) {
		if node.Kind() == "boolean_operator" && nodeText(c, node.ChildByFieldName("operator")) == opText {
			gather(node.ChildByFieldName("left"))
			gather(node.ChildByFieldName("right"))
			return
		}
		chain.Values = append(chain.Values, c.expr(node))
	}
	gather(n)
	return chain
}

func (c *converter) comparison(n *sitter.Node) pyast.Expr {
	cmp := &pyast.Compare{Base: c.base(n)}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.IsNamed() {
			if cmp.Left == nil {
				cmp.Left = c.expr(child)
			} else {
				cmp.Comparators = append(cmp.Comparators, c.expr(child))
			}
			continue
		}
		if kind, ok := cmpOps[c.text(child)]; ok {
			cmp.Ops = append(cmp.Ops, kind)
		}
	}
	if cmp.Left == nil || len(cmp.Ops) == 0 || len(cmp.Ops) != len(cmp.Comparators) {
		return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
	}
	return cmp
}

func (c *converter) call(n *sitter.Node) pyast.Expr {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return &pyast.BadExpr{Base: c.base(n), Kind: n.Kind()}
	}
	out := &pyast.Call{Base: c.base(n), Func: c.expr(fn)}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := uint(0); i < args.NamedChildCount(); i++ {
			arg := args.NamedChild(i)
			if arg.Kind() == "keyword_argument" {
				out.Args = append(out.Args, &pyast.BadExpr{Base: c.base(arg), Kind: "keyword_argument"})
				continue
			}
			out.Args = append(out.Args, c.expr(arg))
		}
	}
	return out
}

// stringLit unwraps a plain string literal. Prefixed strings (f, r, b) keep
// semantics the translator cannot honor, so they lower to BadExpr.
func (c *converter) stringLit(n *sitter.Node) pyast.Expr {
	raw := c.text(n)
	if raw == "" {
		return &pyast.BadExpr{Base: c.base(n), Kind: "string"}
	}
	if raw[0] != '\'' && raw[0] != '"' {
		return &pyast.BadExpr{Base: c.base(n), Kind: "prefixed string"}
	}
	content := raw
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(content, q) && strings.HasSuffix(content, q) && len(content) >= 2*len(q) {
			content = content[len(q) : len(content)-len(q)]
			break
		}
	}
	return &pyast.Constant{Base: c.base(n), Raw: content, Type: "str"}
}

func nodeText(c *converter, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return c.text(n)
}
