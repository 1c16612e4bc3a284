package analyzer

import (
	"strings"

	"catalyst/internal/cpp"
	"catalyst/internal/diag"
	"catalyst/internal/pyast"
	"catalyst/internal/source"
	"catalyst/internal/types"
)

// statement translates one statement into sc.fn, degrading to a verbatim
// pass-through block when the statement cannot be represented. It returns
// the last fragment emitted, which is where an enclosing block's closing
// brace attaches.
func (a *Analyzer) statement(st pyast.Stmt, sc *scope) *cpp.CodeLine {
	frag, err := a.translateStmt(st, sc)
	if err != nil {
		return a.passThrough(st.Pos(), reasonOf(err), sc)
	}
	return frag
}

func (a *Analyzer) translateStmt(st pyast.Stmt, sc *scope) (*cpp.CodeLine, error) {
	switch n := st.(type) {
	case *pyast.Assign:
		return a.assignStmt(n, sc)
	case *pyast.If:
		return a.ifChain(n, sc, false)
	case *pyast.While:
		return a.whileStmt(n, sc)
	case *pyast.For:
		return a.forStmt(n, sc)
	case *pyast.Return:
		return a.returnStmt(n, sc)
	case *pyast.ExprStmt:
		return a.exprStmt(n, sc)
	case *pyast.Break:
		if !sc.loop {
			return nil, notTranslatablef("'break' outside a loop")
		}
		return a.emit(n.Pos(), sc, "break;"), nil
	case *pyast.Continue:
		if !sc.loop {
			return nil, notTranslatablef("'continue' outside a loop")
		}
		return a.emit(n.Pos(), sc, "continue;"), nil
	case *pyast.Pass:
		return nil, nil
	case *pyast.FunctionDef:
		return nil, notTranslatablef("nested function definitions are not supported")
	case *pyast.ClassDef:
		return nil, notTranslatablef("nested class definitions are not supported")
	case *pyast.BadStmt:
		return nil, notTranslatablef("unsupported statement: %s", n.Kind)
	default:
		return nil, notTranslatablef("unsupported statement")
	}
}

// block translates a statement list, returning the last emitted fragment
// (nil when the body produced nothing, e.g. a lone pass).
func (a *Analyzer) block(body []pyast.Stmt, sc *scope) *cpp.CodeLine {
	var last *cpp.CodeLine
	for _, st := range body {
		if frag := a.statement(st, sc); frag != nil {
			last = frag
		}
	}
	return last
}

// closeBlock attaches the block's closing brace to its last fragment, or to
// the header when the body emitted nothing.
func closeBlock(header, last *cpp.CodeLine) {
	if last == nil {
		last = header
	}
	last.Closers++
}

func (a *Analyzer) emit(pos pyast.Pos, sc *scope, code string) *cpp.CodeLine {
	frag := cpp.NewCodeLine(pos.Line, pos.EndLine, pos.EndCol, sc.indent, code)
	sc.fn.AddLine(frag)
	return frag
}

// passThrough copies the statement's source lines verbatim as inert
// comments, the refusal reason leading the block, and records a warning.
func (a *Analyzer) passThrough(pos pyast.Pos, reason string, sc *scope) *cpp.CodeLine {
	pad := strings.Repeat(a.unit, sc.indent)
	var b strings.Builder
	b.WriteString("// ")
	b.WriteString(reason)
	for line := pos.Line; line <= pos.EndLine; line++ {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString("// ")
		b.WriteString(a.src.Line(line))
	}
	frag := cpp.NewCodeLine(pos.Line, pos.EndLine, pos.EndCol, sc.indent, b.String())
	frag.Reason = reason
	sc.fn.AddLine(frag)
	diag.ReportWarning(a.rep, diag.TranslatePassThrough, a.span(pos), reason)
	return frag
}

func (a *Analyzer) span(pos pyast.Pos) source.LineSpan {
	return source.LineSpan{File: a.src.ID, Start: pos.Line, End: pos.EndLine}
}

func (a *Analyzer) assignStmt(n *pyast.Assign, sc *scope) (*cpp.CodeLine, error) {
	switch target := n.Target.(type) {
	case *pyast.Name:
		return a.assignName(n, target.Ident, sc)
	case *pyast.Attribute:
		return a.assignSelfAttr(n, target, sc)
	case *pyast.Subscript:
		return a.assignIndexed(n, target, sc)
	default:
		return nil, notTranslatablef("unsupported assignment target")
	}
}

func (a *Analyzer) assignName(n *pyast.Assign, name string, sc *scope) (*cpp.CodeLine, error) {
	if decl, err, handled := a.collectionDecl(n, name, sc); handled {
		return decl, err
	}
	if sc.collection(name) {
		return nil, notTranslatablef("cannot reassign collection '%s'", name)
	}

	text, tag, err := a.translateExpr(n.Value, sc)
	if err != nil {
		return nil, err
	}
	if tag == types.Void {
		return nil, notTranslatablef("cannot assign a value-less expression to '%s'", name)
	}

	// Bare-name assignment binds locally; class attributes are only written
	// through self.
	var slot *types.Slot
	if p, ok := sc.fn.Param(name); ok {
		slot = p.Type
	} else if v, ok := sc.fn.Variables[name]; ok {
		slot = v.Type
	}

	if slot != nil {
		if err := retype(slot, tag, name); err != nil {
			return nil, err
		}
	} else {
		sc.fn.Variables[name] = cpp.NewVariable(name, n.Span.Line, tag)
	}
	return a.emit(n.Pos(), sc, name+" = "+text+";"), nil
}

// retype applies the redeclaration rule: same type is fine, a float slot
// absorbs an int value, auto sharpens to whatever arrives first. Everything
// else leaves the slot untouched and degrades.
func retype(slot *types.Slot, tag types.Tag, name string) error {
	old := slot.Tag()
	switch {
	case tag == old || tag == types.Auto:
		return nil
	case old == types.Float && tag == types.Int:
		return nil
	case old == types.Auto:
		slot.Set(tag)
		return nil
	default:
		return notTranslatablef("cannot retype '%s' from %s to %s", name, old, tag)
	}
}

func (a *Analyzer) assignSelfAttr(n *pyast.Assign, target *pyast.Attribute, sc *scope) (*cpp.CodeLine, error) {
	base, ok := target.Value.(*pyast.Name)
	if !ok || base.Ident != "self" {
		return nil, notTranslatablef("unsupported assignment target")
	}
	if sc.class == nil {
		return nil, notTranslatablef("'self' used outside a method")
	}
	attr := target.Attr

	if decl, err, handled := a.classCollectionDecl(n, attr, sc); handled {
		return decl, err
	}
	if _, ok := sc.class.Vectors[attr]; ok {
		return nil, notTranslatablef("cannot reassign collection '%s'", attr)
	}
	if _, ok := sc.class.Tuples[attr]; ok {
		return nil, notTranslatablef("cannot reassign collection '%s'", attr)
	}
	if _, ok := sc.class.Sets[attr]; ok {
		return nil, notTranslatablef("cannot reassign collection '%s'", attr)
	}

	text, tag, err := a.translateExpr(n.Value, sc)
	if err != nil {
		return nil, err
	}
	if tag == types.Void {
		return nil, notTranslatablef("cannot assign a value-less expression to '%s'", attr)
	}
	if existing, ok := sc.class.Attributes[attr]; ok {
		if err := retype(existing.Type, tag, attr); err != nil {
			return nil, err
		}
	} else {
		// Attributes are declared in the class body, never by the
		// declaration-typing pass, hence line 0.
		sc.class.AddAttribute(cpp.NewVariable(attr, 0, tag))
	}
	return a.emit(n.Pos(), sc, "this->"+attr+" = "+text+";"), nil
}

func (a *Analyzer) assignIndexed(n *pyast.Assign, target *pyast.Subscript, sc *scope) (*cpp.CodeLine, error) {
	base, ok := target.Value.(*pyast.Name)
	if !ok {
		return nil, notTranslatablef("indexing is only supported on names")
	}
	name := base.Ident
	if _, ok := sc.tuple(name); ok {
		return nil, notTranslatablef("tuples are immutable; indexed assignment is not supported")
	}
	vec, ok := sc.vector(name)
	if !ok {
		return nil, notTranslatablef("indexed assignment is only supported on vectors")
	}
	idx, _, err := a.translateExpr(target.Index, sc)
	if err != nil {
		return nil, err
	}
	text, tag, err := a.translateExpr(n.Value, sc)
	if err != nil {
		return nil, err
	}
	if tag != vec.Elem.Tag() {
		return nil, notTranslatablef("cannot store %s in vector '%s' of %s", tag, name, vec.Elem.Tag())
	}
	prefix := name
	if sc.classMember(name) {
		prefix = "this->" + name
	}
	return a.emit(n.Pos(), sc, prefix+"["+idx+"] = "+text+";"), nil
}

// collectionDecl handles `name = [..] | (..) | {..}` at function scope.
// The third result reports whether the value was a collection literal at
// all; false means the caller continues down the scalar path.
func (a *Analyzer) collectionDecl(n *pyast.Assign, name string, sc *scope) (*cpp.CodeLine, error, bool) {
	switch lit := n.Value.(type) {
	case *pyast.List:
		elems, tag, err := a.homogeneousElems(lit.Elts, sc, "list")
		if err != nil {
			return nil, err, true
		}
		if err := a.checkFresh(name, sc); err != nil {
			return nil, err, true
		}
		vec := cpp.NewVector(name, tag, elems)
		sc.fn.Vectors[name] = vec
		a.file.AddInclude("vector")
		return a.emit(n.Pos(), sc, vec.Declaration()), nil, true
	case *pyast.Set:
		elems, tag, err := a.homogeneousElems(lit.Elts, sc, "set")
		if err != nil {
			return nil, err, true
		}
		if err := a.checkFresh(name, sc); err != nil {
			return nil, err, true
		}
		set := cpp.NewSet(name, tag, elems)
		sc.fn.Sets[name] = set
		a.file.AddInclude("unordered_set")
		return a.emit(n.Pos(), sc, set.Declaration()), nil, true
	case *pyast.Tuple:
		elems, tags, err := a.tupleElems(lit.Elts, sc)
		if err != nil {
			return nil, err, true
		}
		if err := a.checkFresh(name, sc); err != nil {
			return nil, err, true
		}
		tup := cpp.NewTuple(name, tags, elems)
		sc.fn.Tuples[name] = tup
		a.file.AddInclude("tuple")
		return a.emit(n.Pos(), sc, tup.Declaration()), nil, true
	default:
		return nil, nil, false
	}
}

// classCollectionDecl is the self.<attr> counterpart: the declaration lands
// in the class body, so no fragment is emitted here.
func (a *Analyzer) classCollectionDecl(n *pyast.Assign, attr string, sc *scope) (*cpp.CodeLine, error, bool) {
	switch lit := n.Value.(type) {
	case *pyast.List:
		elems, tag, err := a.homogeneousElems(lit.Elts, sc, "list")
		if err != nil {
			return nil, err, true
		}
		if err := a.checkFreshAttr(attr, sc); err != nil {
			return nil, err, true
		}
		sc.class.AddVector(cpp.NewVector(attr, tag, elems))
		a.file.AddInclude("vector")
		return nil, nil, true
	case *pyast.Set:
		elems, tag, err := a.homogeneousElems(lit.Elts, sc, "set")
		if err != nil {
			return nil, err, true
		}
		if err := a.checkFreshAttr(attr, sc); err != nil {
			return nil, err, true
		}
		sc.class.AddSet(cpp.NewSet(attr, tag, elems))
		a.file.AddInclude("unordered_set")
		return nil, nil, true
	case *pyast.Tuple:
		elems, tags, err := a.tupleElems(lit.Elts, sc)
		if err != nil {
			return nil, err, true
		}
		if err := a.checkFreshAttr(attr, sc); err != nil {
			return nil, err, true
		}
		sc.class.AddTuple(cpp.NewTuple(attr, tags, elems))
		a.file.AddInclude("tuple")
		return nil, nil, true
	default:
		return nil, nil, false
	}
}

func (a *Analyzer) checkFresh(name string, sc *scope) error {
	if _, ok := sc.fn.Param(name); ok {
		return notTranslatablef("cannot redeclare parameter '%s' as a collection", name)
	}
	if _, ok := sc.fn.Variables[name]; ok {
		return notTranslatablef("cannot redeclare variable '%s' as a collection", name)
	}
	if sc.collection(name) {
		return notTranslatablef("cannot reassign collection '%s'", name)
	}
	return nil
}

func (a *Analyzer) checkFreshAttr(attr string, sc *scope) error {
	if _, ok := sc.class.Attributes[attr]; ok {
		return notTranslatablef("cannot redeclare attribute '%s' as a collection", attr)
	}
	if _, ok := sc.class.Vectors[attr]; ok {
		return notTranslatablef("cannot reassign collection '%s'", attr)
	}
	if _, ok := sc.class.Tuples[attr]; ok {
		return notTranslatablef("cannot reassign collection '%s'", attr)
	}
	if _, ok := sc.class.Sets[attr]; ok {
		return notTranslatablef("cannot reassign collection '%s'", attr)
	}
	return nil
}

// homogeneousElems renders list/set elements and enforces a single element
// type. An empty literal leaves the element slot auto.
func (a *Analyzer) homogeneousElems(elts []pyast.Expr, sc *scope, kind string) ([]string, types.Tag, error) {
	tag := types.Auto
	elems := make([]string, 0, len(elts))
	for i, el := range elts {
		text, t, err := a.translateExpr(el, sc)
		if err != nil {
			return nil, types.Invalid, err
		}
		if i == 0 {
			tag = t
		} else if t != tag {
			return nil, types.Invalid, notTranslatablef("heterogeneous %s literals are not supported", kind)
		}
		elems = append(elems, text)
	}
	return elems, tag, nil
}

func (a *Analyzer) tupleElems(elts []pyast.Expr, sc *scope) ([]string, []types.Tag, error) {
	if len(elts) == 0 {
		return nil, nil, notTranslatablef("empty tuple literals are not supported")
	}
	elems := make([]string, 0, len(elts))
	tags := make([]types.Tag, 0, len(elts))
	for _, el := range elts {
		text, t, err := a.translateExpr(el, sc)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, text)
		tags = append(tags, t)
	}
	return elems, tags, nil
}

// ifChain emits an if (or else-if) header, its body, and any else arm.
// Elif clauses arrive as a nested single-statement else holding an If with
// its Elif flag set; they render as else-if at their true source line.
func (a *Analyzer) ifChain(n *pyast.If, sc *scope, elif bool) (*cpp.CodeLine, error) {
	test, _, err := a.translateExpr(n.Test, sc)
	if err != nil {
		return nil, err
	}
	keyword := "if ("
	if elif {
		keyword = "else if ("
	}
	testPos := n.Test.Pos()
	header := cpp.NewCodeLine(n.Span.Line, testPos.EndLine, testPos.EndCol, sc.indent, keyword+test+") {")
	sc.fn.AddLine(header)

	last := a.block(n.Body, sc.child())
	closeBlock(header, last)
	tail := last
	if tail == nil {
		tail = header
	}

	if len(n.Else) == 0 {
		return tail, nil
	}
	if inner, ok := elifArm(n.Else); ok {
		// The if-part is already emitted; a failure inside the elif chain
		// must not degrade fragments that exist. The pass-through covers the
		// remaining arms only.
		arm, err := a.ifChain(inner, sc, true)
		if err != nil {
			return a.passThrough(chainSpan(inner), reasonOf(err), sc), nil
		}
		return arm, nil
	}
	elseHeader := cpp.NewCodeLine(n.ElseLine, n.ElseLine, 0, sc.indent, "else {")
	sc.fn.AddLine(elseHeader)
	elseLast := a.block(n.Else, sc.child())
	closeBlock(elseHeader, elseLast)
	if elseLast != nil {
		return elseLast, nil
	}
	return elseHeader, nil
}

// chainSpan widens an elif arm's position over every arm that follows it,
// so a failing test degrades the whole remaining chain in one block.
func chainSpan(n *pyast.If) pyast.Pos {
	pos := n.Pos()
	cur := n
	for len(cur.Else) > 0 {
		last := cur.Else[len(cur.Else)-1].Pos()
		if last.EndLine > pos.EndLine {
			pos.EndLine = last.EndLine
			pos.EndCol = last.EndCol
		}
		inner, ok := elifArm(cur.Else)
		if !ok {
			break
		}
		cur = inner
	}
	return pos
}

func elifArm(els []pyast.Stmt) (*pyast.If, bool) {
	if len(els) != 1 {
		return nil, false
	}
	inner, ok := els[0].(*pyast.If)
	if !ok || !inner.Elif {
		return nil, false
	}
	return inner, true
}

func (a *Analyzer) whileStmt(n *pyast.While, sc *scope) (*cpp.CodeLine, error) {
	test, _, err := a.translateExpr(n.Test, sc)
	if err != nil {
		return nil, err
	}
	testPos := n.Test.Pos()
	header := cpp.NewCodeLine(n.Span.Line, testPos.EndLine, testPos.EndCol, sc.indent, "while ("+test+") {")
	sc.fn.AddLine(header)
	last := a.block(n.Body, sc.loopChild())
	closeBlock(header, last)
	if last != nil {
		return last, nil
	}
	return header, nil
}

func (a *Analyzer) forStmt(n *pyast.For, sc *scope) (*cpp.CodeLine, error) {
	target, ok := n.Target.(*pyast.Name)
	if !ok {
		return nil, notTranslatablef("for-loop target must be a single name")
	}
	start, stop, step, err := a.rangeBounds(n.Iter, sc)
	if err != nil {
		return nil, err
	}

	name := target.Ident
	if slot, lookErr := sc.slot(name); lookErr == nil {
		if slot.Tag() != types.Int && slot.Tag() != types.Auto {
			return nil, notTranslatablef("loop variable '%s' is already %s", name, slot.Tag())
		}
	} else if !sc.collection(name) {
		// Loop variables are declared in the header, never by the typing
		// pass.
		sc.fn.Variables[name] = cpp.NewVariable(name, 0, types.Int)
	} else {
		return nil, notTranslatablef("cannot reuse collection '%s' as a loop variable", name)
	}

	iterPos := n.Iter.Pos()
	code := "for (int " + name + " = " + start + "; " + name + " < " + stop + "; " + name + " += " + step + ") {"
	header := cpp.NewCodeLine(n.Span.Line, iterPos.EndLine, iterPos.EndCol, sc.indent, code)
	sc.fn.AddLine(header)
	last := a.block(n.Body, sc.loopChild())
	closeBlock(header, last)
	if last != nil {
		return last, nil
	}
	return header, nil
}

// rangeBounds extracts the loop bounds from a range(...) call or a bare
// integer literal shorthand.
func (a *Analyzer) rangeBounds(iter pyast.Expr, sc *scope) (start, stop, step string, err error) {
	switch it := iter.(type) {
	case *pyast.Call:
		callee, ok := it.Func.(*pyast.Name)
		if !ok || callee.Ident != "range" {
			return "", "", "", notTranslatablef("for loops only iterate over range()")
		}
		if len(it.Args) < 1 || len(it.Args) > 3 {
			return "", "", "", notTranslatablef("range expects 1 to 3 arguments, got %d", len(it.Args))
		}
		parts := make([]string, 0, 3)
		for _, arg := range it.Args {
			text, tag, argErr := a.translateExpr(arg, sc)
			if argErr != nil {
				return "", "", "", argErr
			}
			if tag != types.Int && tag != types.Auto {
				return "", "", "", notTranslatablef("range arguments must be int, got %s", tag)
			}
			parts = append(parts, text)
		}
		switch len(parts) {
		case 1:
			return "0", parts[0], "1", nil
		case 2:
			return parts[0], parts[1], "1", nil
		default:
			return parts[0], parts[1], parts[2], nil
		}
	case *pyast.Constant:
		if types.FromRuntimeName(it.Type) != types.Int {
			return "", "", "", notTranslatablef("for loops only iterate over range()")
		}
		return "0", it.Raw, "1", nil
	default:
		return "", "", "", notTranslatablef("for loops only iterate over range()")
	}
}

func (a *Analyzer) returnStmt(n *pyast.Return, sc *scope) (*cpp.CodeLine, error) {
	if sc.fn.IsEntry() {
		return nil, notTranslatablef("'return' outside a function")
	}
	if n.Value == nil {
		return a.emit(n.Pos(), sc, "return;"), nil
	}
	text, tag, err := a.translateExpr(n.Value, sc)
	if err != nil {
		return nil, err
	}
	// Constructors keep their sentinel return type regardless of what the
	// body tries to hand back.
	if sc.fn.Return.Tag() != types.Constructor {
		sc.fn.Return.UnifyWith(tag)
	}
	return a.emit(n.Pos(), sc, "return "+text+";"), nil
}

func (a *Analyzer) exprStmt(n *pyast.ExprStmt, sc *scope) (*cpp.CodeLine, error) {
	switch v := n.Value.(type) {
	case *pyast.Constant:
		if types.FromRuntimeName(v.Type) == types.Str {
			return a.docComment(n, v, sc), nil
		}
		return nil, notTranslatablef("expression result is unused")
	case *pyast.Call:
		text, _, err := a.translateCall(v, sc)
		if err != nil {
			return nil, err
		}
		return a.emit(n.Pos(), sc, text+";"), nil
	default:
		return nil, notTranslatablef("expression result is unused")
	}
}

// docComment turns a bare string statement into a block comment in place.
func (a *Analyzer) docComment(n *pyast.ExprStmt, lit *pyast.Constant, sc *scope) *cpp.CodeLine {
	pad := strings.Repeat(a.unit, sc.indent)
	var b strings.Builder
	b.WriteString("/*")
	for _, line := range strings.Split(lit.Raw, "\n") {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString(strings.TrimSpace(line))
	}
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString("*/")
	return a.emit(n.Pos(), sc, b.String())
}
