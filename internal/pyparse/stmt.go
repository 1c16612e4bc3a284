package pyparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"catalyst/internal/pyast"
)

// block lowers the named statements of a block-like node, skipping comments
// (the comment pass works from raw source text, not the tree).
func (c *converter) block(n *sitter.Node) []pyast.Stmt {
	out := make([]pyast.Stmt, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, c.stmt(child))
	}
	return out
}

func (c *converter) stmt(n *sitter.Node) pyast.Stmt {
	switch n.Kind() {
	case "function_definition":
		return c.functionDef(n)
	case "class_definition":
		return c.classDef(n)
	case "expression_statement":
		return c.exprStmt(n)
	case "if_statement":
		return c.ifStmt(n)
	case "while_statement":
		if hasClause(n, "else_clause") {
			return &pyast.BadStmt{Base: c.base(n), Kind: "while-else"}
		}
		return &pyast.While{
			Base: c.base(n),
			Test: c.expr(n.ChildByFieldName("condition")),
			Body: c.block(n.ChildByFieldName("body")),
		}
	case "for_statement":
		if hasClause(n, "else_clause") {
			return &pyast.BadStmt{Base: c.base(n), Kind: "for-else"}
		}
		return &pyast.For{
			Base:   c.base(n),
			Target: c.expr(n.ChildByFieldName("left")),
			Iter:   c.expr(n.ChildByFieldName("right")),
			Body:   c.block(n.ChildByFieldName("body")),
		}
	case "return_statement":
		ret := &pyast.Return{Base: c.base(n)}
		if n.NamedChildCount() > 0 {
			ret.Value = c.expr(n.NamedChild(0))
		}
		return ret
	case "break_statement":
		return &pyast.Break{Base: c.base(n)}
	case "continue_statement":
		return &pyast.Continue{Base: c.base(n)}
	case "pass_statement":
		return &pyast.Pass{Base: c.base(n)}
	default:
		return &pyast.BadStmt{Base: c.base(n), Kind: n.Kind()}
	}
}

func (c *converter) functionDef(n *sitter.Node) pyast.Stmt {
	def := &pyast.FunctionDef{Base: c.base(n)}
	name := n.ChildByFieldName("name")
	if name == nil {
		return &pyast.BadStmt{Base: c.base(n), Kind: n.Kind()}
	}
	def.Name = c.text(name)

	params := n.ChildByFieldName("parameters")
	if params != nil {
		for i := uint(0); i < params.NamedChildCount(); i++ {
			p := params.NamedChild(i)
			switch p.Kind() {
			case "identifier":
				def.Params = append(def.Params, pyast.Param{Name: c.text(p)})
			case "default_parameter":
				nameNode := p.ChildByFieldName("name")
				valueNode := p.ChildByFieldName("value")
				lit, ok := c.expr(valueNode).(*pyast.Constant)
				if nameNode == nil || !ok {
					def.BadParams = true
					continue
				}
				def.Params = append(def.Params, pyast.Param{
					Name:    c.text(nameNode),
					Default: lit,
				})
			default:
				// *args, **kwargs, keyword-only markers, typed parameters.
				def.BadParams = true
			}
		}
	}

	def.Body = c.block(n.ChildByFieldName("body"))
	return def
}

func (c *converter) classDef(n *sitter.Node) pyast.Stmt {
	def := &pyast.ClassDef{Base: c.base(n)}
	name := n.ChildByFieldName("name")
	if name == nil {
		return &pyast.BadStmt{Base: c.base(n), Kind: n.Kind()}
	}
	def.Name = c.text(name)

	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			def.Bases = append(def.Bases, c.expr(supers.NamedChild(i)))
		}
	}

	def.Body = c.block(n.ChildByFieldName("body"))
	return def
}

func (c *converter) exprStmt(n *sitter.Node) pyast.Stmt {
	if n.NamedChildCount() == 0 {
		return &pyast.BadStmt{Base: c.base(n), Kind: n.Kind()}
	}
	inner := n.NamedChild(0)
	switch inner.Kind() {
	case "assignment":
		left := inner.ChildByFieldName("left")
		right := inner.ChildByFieldName("right")
		if left == nil || right == nil || right.Kind() == "assignment" {
			// x = y = … and annotation-only forms stay unsupported.
			return &pyast.BadStmt{Base: c.base(n), Kind: "assignment"}
		}
		return &pyast.Assign{
			Base:   c.base(n),
			Target: c.expr(left),
			Value:  c.expr(right),
		}
	case "augmented_assignment":
		return &pyast.BadStmt{Base: c.base(n), Kind: "augmented_assignment"}
	default:
		return &pyast.ExprStmt{Base: c.base(n), Value: c.expr(inner)}
	}
}

func (c *converter) ifStmt(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.If{
		Base: c.base(n),
		Test: c.expr(n.ChildByFieldName("condition")),
		Body: c.block(n.ChildByFieldName("consequence")),
	}

	// tree-sitter hangs every elif/else under the same "alternative" field;
	// fold them right-to-left so elif chains nest the way the translator
	// walks them.
	var clauses []*sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if k := child.Kind(); k == "elif_clause" || k == "else_clause" {
			clauses = append(clauses, child)
		}
	}

	cur := stmt
	for _, clause := range clauses {
		switch clause.Kind() {
		case "elif_clause":
			nested := &pyast.If{
				Base: c.base(clause),
				Test: c.expr(clause.ChildByFieldName("condition")),
				Body: c.block(clause.ChildByFieldName("consequence")),
				Elif: true,
			}
			cur.ElseLine = nested.Span.Line
			cur.Else = []pyast.Stmt{nested}
			cur = nested
		case "else_clause":
			cur.ElseLine = c.base(clause).Span.Line
			if body := clause.ChildByFieldName("body"); body != nil {
				cur.Else = c.block(body)
			}
		}
	}
	return stmt
}

func hasClause(n *sitter.Node, kind string) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}
