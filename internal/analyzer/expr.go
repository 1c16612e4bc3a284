package analyzer

import (
	"strconv"
	"strings"

	"catalyst/internal/pyast"
	"catalyst/internal/types"
)

var binSpelling = map[pyast.OpKind]string{
	pyast.OpAdd:    " + ",
	pyast.OpSub:    " - ",
	pyast.OpMult:   " * ",
	pyast.OpMod:    " % ",
	pyast.OpLShift: " << ",
	pyast.OpRShift: " >> ",
	pyast.OpBitOr:  " | ",
	pyast.OpBitAnd: " & ",
	pyast.OpBitXor: " ^ ",
}

var cmpSpelling = map[pyast.CmpKind]string{
	pyast.CmpEq:    " == ",
	pyast.CmpNotEq: " != ",
	pyast.CmpLt:    " < ",
	pyast.CmpLtE:   " <= ",
	pyast.CmpGt:    " > ",
	pyast.CmpGtE:   " >= ",
}

// translateExpr renders an expression into C++ source text and infers its
// type tag. Any untranslatable sub-expression poisons the whole expression:
// the caller degrades the enclosing statement to a pass-through.
func (a *Analyzer) translateExpr(e pyast.Expr, sc *scope) (string, types.Tag, error) {
	switch n := e.(type) {
	case *pyast.Name:
		return a.translateName(n, sc)
	case *pyast.Constant:
		return a.translateConstant(n)
	case *pyast.BinOp:
		return a.translateBinOp(n, sc)
	case *pyast.BoolOp:
		return a.translateBoolOp(n, sc)
	case *pyast.UnaryOp:
		return a.translateUnaryOp(n, sc)
	case *pyast.Compare:
		return a.translateCompare(n, sc)
	case *pyast.Call:
		return a.translateCall(n, sc)
	case *pyast.Attribute:
		return a.translateAttribute(n, sc)
	case *pyast.Subscript:
		return a.translateSubscript(n, sc)
	case *pyast.List, *pyast.Tuple, *pyast.Set:
		return "", types.Invalid, notTranslatablef("collection literals are only supported as assignment values")
	case *pyast.BadExpr:
		return "", types.Invalid, notTranslatablef("unsupported expression: %s", n.Kind)
	default:
		return "", types.Invalid, notTranslatablef("unsupported expression")
	}
}

func (a *Analyzer) translateName(n *pyast.Name, sc *scope) (string, types.Tag, error) {
	text := n.Ident
	if sc.classMember(n.Ident) {
		text = "this->" + n.Ident
		if attr, ok := sc.attribute(n.Ident); ok {
			return text, attr.Type.Tag(), nil
		}
		// A class collection read as a bare name; its element type is not
		// the expression's type, so it reads back as auto.
		return text, types.Auto, nil
	}
	slot, err := sc.slot(n.Ident)
	if err == nil {
		return text, slot.Tag(), nil
	}
	if sc.collection(n.Ident) {
		return text, types.Auto, nil
	}
	return "", types.Invalid, convertLookup(err)
}

func (a *Analyzer) translateConstant(n *pyast.Constant) (string, types.Tag, error) {
	switch types.FromRuntimeName(n.Type) {
	case types.Str:
		a.file.AddInclude("string")
		return `"` + escapeString(n.Raw) + `"`, types.Str, nil
	case types.Int:
		return n.Raw, types.Int, nil
	case types.Float:
		return n.Raw, types.Float, nil
	case types.Bool:
		if n.Raw == "True" {
			return "true", types.Bool, nil
		}
		return "false", types.Bool, nil
	case types.None:
		return "", types.Invalid, notTranslatablef("'None' has no usable value representation")
	default:
		return "", types.Invalid, notTranslatablef("unsupported literal %q", n.Raw)
	}
}

func (a *Analyzer) translateBinOp(n *pyast.BinOp, sc *scope) (string, types.Tag, error) {
	left, lt, err := a.translateExpr(n.Left, sc)
	if err != nil {
		return "", types.Invalid, err
	}
	right, rt, err := a.translateExpr(n.Right, sc)
	if err != nil {
		return "", types.Invalid, err
	}
	switch n.Op {
	case pyast.OpDiv:
		// Python / always divides as real numbers; the cast is dropped only
		// when both operands already are float.
		inner := "(" + left + " / " + right + ")"
		if lt != types.Float || rt != types.Float {
			return "(double)" + inner, types.Float, nil
		}
		return inner, types.Float, nil
	case pyast.OpFloorDiv:
		inner := "(" + left + " / " + right + ")"
		if lt != types.Int || rt != types.Int {
			return "(int)" + inner, types.Int, nil
		}
		return inner, types.Int, nil
	case pyast.OpPow:
		a.file.AddInclude("cmath")
		return "std::pow(" + left + "," + right + ")", types.Float, nil
	}
	sp, ok := binSpelling[n.Op]
	if !ok {
		return "", types.Invalid, notTranslatablef("unsupported binary operator '%s'", n.Op)
	}
	if n.Op == pyast.OpMod && (lt == types.Float || rt == types.Float) {
		return "", types.Invalid, notTranslatablef("'%%' on floating-point operands is not supported")
	}
	return "(" + left + sp + right + ")", types.Unify(lt, rt), nil
}

func (a *Analyzer) translateBoolOp(n *pyast.BoolOp, sc *scope) (string, types.Tag, error) {
	if len(n.Values) < 2 {
		return "", types.Invalid, notTranslatablef("boolean chain requires at least two operands")
	}
	sp := " && "
	if n.Op == pyast.OpOr {
		sp = " || "
	}
	// The chain's value is an operand, not a truth value: its type is the
	// common operand type, or auto when the operands disagree.
	result := types.Invalid
	parts := make([]string, 0, len(n.Values))
	for i, v := range n.Values {
		text, tag, err := a.translateExpr(v, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		if i == 0 {
			result = tag
		} else if tag != result {
			result = types.Auto
		}
		parts = append(parts, text)
	}
	return "(" + strings.Join(parts, sp) + ")", result, nil
}

func (a *Analyzer) translateUnaryOp(n *pyast.UnaryOp, sc *scope) (string, types.Tag, error) {
	operand, _, err := a.translateExpr(n.Operand, sc)
	if err != nil {
		return "", types.Invalid, err
	}
	// Everything but logical negation yields int, whatever the operand.
	switch n.Op {
	case pyast.OpNot:
		return "(!" + operand + ")", types.Bool, nil
	case pyast.OpUSub:
		return "(-" + operand + ")", types.Int, nil
	case pyast.OpUAdd:
		return "(+" + operand + ")", types.Int, nil
	case pyast.OpInvert:
		return "(~" + operand + ")", types.Int, nil
	default:
		return "", types.Invalid, notTranslatablef("unsupported unary operator '%s'", n.Op)
	}
}

func (a *Analyzer) translateCompare(n *pyast.Compare, sc *scope) (string, types.Tag, error) {
	if len(n.Ops) == 0 || len(n.Ops) != len(n.Comparators) {
		return "", types.Invalid, notTranslatablef("malformed comparison")
	}
	left, _, err := a.translateExpr(n.Left, sc)
	if err != nil {
		return "", types.Invalid, err
	}
	pairs := make([]string, 0, len(n.Ops))
	for i, op := range n.Ops {
		sp, ok := cmpSpelling[op]
		if !ok {
			// in / not in / is have no direct relational spelling.
			return "", types.Invalid, notTranslatablef("unsupported comparison operator '%s'", op)
		}
		right, _, err := a.translateExpr(n.Comparators[i], sc)
		if err != nil {
			return "", types.Invalid, err
		}
		pairs = append(pairs, "("+left+sp+right+")")
		left = right
	}
	if len(pairs) == 1 {
		return pairs[0], types.Bool, nil
	}
	return "(" + strings.Join(pairs, " && ") + ")", types.Bool, nil
}

func (a *Analyzer) translateAttribute(n *pyast.Attribute, sc *scope) (string, types.Tag, error) {
	base, ok := n.Value.(*pyast.Name)
	if !ok || base.Ident != "self" {
		return "", types.Invalid, notTranslatablef("attribute access is only supported on 'self'")
	}
	if sc.class == nil {
		return "", types.Invalid, notTranslatablef("'self' used outside a method")
	}
	if attr, ok := sc.class.Attributes[n.Attr]; ok {
		return "this->" + n.Attr, attr.Type.Tag(), nil
	}
	if _, ok := sc.class.Vectors[n.Attr]; ok {
		return "this->" + n.Attr, types.Auto, nil
	}
	if _, ok := sc.class.Tuples[n.Attr]; ok {
		return "this->" + n.Attr, types.Auto, nil
	}
	if _, ok := sc.class.Sets[n.Attr]; ok {
		return "this->" + n.Attr, types.Auto, nil
	}
	return "", types.Invalid, notTranslatablef("'self.%s' used before declaration", n.Attr)
}

func (a *Analyzer) translateSubscript(n *pyast.Subscript, sc *scope) (string, types.Tag, error) {
	base, ok := n.Value.(*pyast.Name)
	if !ok {
		return "", types.Invalid, notTranslatablef("indexing is only supported on names")
	}
	name := base.Ident
	prefix := name
	if sc.classMember(name) {
		prefix = "this->" + name
	}
	if vec, ok := sc.vector(name); ok {
		idx, _, err := a.translateExpr(n.Index, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		return prefix + "[" + idx + "]", vec.Elem.Tag(), nil
	}
	if tup, ok := sc.tuple(name); ok {
		lit, ok := n.Index.(*pyast.Constant)
		if !ok || types.FromRuntimeName(lit.Type) != types.Int {
			return "", types.Invalid, notTranslatablef("tuple index must be an integer literal")
		}
		i, err := strconv.Atoi(lit.Raw)
		if err != nil || i < 0 || i >= tup.Arity() {
			return "", types.Invalid, notTranslatablef("tuple index %s out of range for '%s'", lit.Raw, name)
		}
		return "std::get<" + strconv.Itoa(i) + ">(" + prefix + ")", tup.ElemTypes[i], nil
	}
	if slot, err := sc.slot(name); err == nil {
		idx, _, err := a.translateExpr(n.Index, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		return prefix + "[" + idx + "]", slot.Tag(), nil
	}
	return "", types.Invalid, notTranslatablef("'%s' used before declaration", name)
}

func escapeString(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			b.WriteByte(c)
			i++
			b.WriteByte(raw[i])
			continue
		}
		if c == '"' {
			b.WriteString(`\"`)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
