package analyzer

import (
	"strings"

	"catalyst/internal/cpp"
	"catalyst/internal/pyast"
	"catalyst/internal/types"
)

func (a *Analyzer) translateCall(n *pyast.Call, sc *scope) (string, types.Tag, error) {
	switch callee := n.Func.(type) {
	case *pyast.Name:
		return a.translateNamedCall(n, callee.Ident, sc)
	case *pyast.Attribute:
		return a.translateMethodCall(n, callee, sc)
	default:
		return "", types.Invalid, notTranslatablef("unsupported call target")
	}
}

func (a *Analyzer) translateNamedCall(n *pyast.Call, name string, sc *scope) (string, types.Tag, error) {
	switch name {
	case "print":
		return a.translatePrint(n, sc)
	case "sqrt":
		return a.translateMathCall(n, sc, "std::sqrt", 1)
	case "pow":
		return a.translateMathCall(n, sc, "std::pow", 2)
	case "log":
		return a.translateLog(n, sc)
	case "len":
		return a.translateLen(n, sc)
	case "range":
		return "", types.Invalid, notTranslatablef("range() is only supported as a for-loop iterable")
	case "str", "int", "float", "bool":
		return a.translateCast(n, name, sc)
	}
	if _, ok := a.file.Class(name); ok {
		return "", types.Invalid, notTranslatablef("class instantiation is not supported")
	}
	if fn, ok := a.file.Function(name); ok {
		return a.translateUserCall(n, fn, name, sc)
	}
	return "", types.Invalid, notTranslatablef("'%s' is not a known function", name)
}

// translatePrint joins the arguments into a single insertion chain. Mixing
// value categories is the caller's problem, exactly as it was in the source.
func (a *Analyzer) translatePrint(n *pyast.Call, sc *scope) (string, types.Tag, error) {
	if len(n.Args) == 0 {
		return "", types.Invalid, notTranslatablef("print() without arguments is not supported")
	}
	parts := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		text, _, err := a.translateExpr(arg, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		parts = append(parts, text)
	}
	a.file.AddInclude("iostream")
	return "std::cout << " + strings.Join(parts, " + ") + " << std::endl", types.Void, nil
}

func (a *Analyzer) translateMathCall(n *pyast.Call, sc *scope, spelling string, arity int) (string, types.Tag, error) {
	if len(n.Args) != arity {
		return "", types.Invalid, notTranslatablef("%s expects %d argument(s), got %d",
			strings.TrimPrefix(spelling, "std::"), arity, len(n.Args))
	}
	parts := make([]string, 0, arity)
	for _, arg := range n.Args {
		text, tag, err := a.translateExpr(arg, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		if !tag.Numeric() && tag != types.Auto {
			return "", types.Invalid, notTranslatablef("%s argument must be numeric",
				strings.TrimPrefix(spelling, "std::"))
		}
		parts = append(parts, text)
	}
	a.file.AddInclude("cmath")
	return spelling + "(" + strings.Join(parts, ",") + ")", types.Float, nil
}

// translateLog handles the one- and two-argument forms; the base-10 case
// gets the dedicated function, any other base falls back to the quotient
// identity.
func (a *Analyzer) translateLog(n *pyast.Call, sc *scope) (string, types.Tag, error) {
	if len(n.Args) < 1 || len(n.Args) > 2 {
		return "", types.Invalid, notTranslatablef("log expects 1 or 2 arguments, got %d", len(n.Args))
	}
	value, tag, err := a.translateExpr(n.Args[0], sc)
	if err != nil {
		return "", types.Invalid, err
	}
	if !tag.Numeric() && tag != types.Auto {
		return "", types.Invalid, notTranslatablef("log argument must be numeric")
	}
	a.file.AddInclude("cmath")
	if len(n.Args) == 1 {
		return "std::log(" + value + ")", types.Float, nil
	}
	base, _, err := a.translateExpr(n.Args[1], sc)
	if err != nil {
		return "", types.Invalid, err
	}
	if base == "10" {
		return "std::log10(" + value + ")", types.Float, nil
	}
	return "std::log(" + value + ") / std::log(" + base + ")", types.Float, nil
}

func (a *Analyzer) translateLen(n *pyast.Call, sc *scope) (string, types.Tag, error) {
	if len(n.Args) != 1 {
		return "", types.Invalid, notTranslatablef("len expects 1 argument, got %d", len(n.Args))
	}
	base, ok := n.Args[0].(*pyast.Name)
	if !ok {
		return "", types.Invalid, notTranslatablef("len argument must be a name")
	}
	name := base.Ident
	prefix := name
	if sc.classMember(name) {
		prefix = "this->" + name
	}
	if _, ok := sc.tuple(name); ok {
		return "std::tuple_size<decltype(" + prefix + ")>::value", types.Int, nil
	}
	if _, ok := sc.vector(name); ok {
		return prefix + ".size()", types.Int, nil
	}
	if _, ok := sc.set(name); ok {
		return prefix + ".size()", types.Int, nil
	}
	if slot, err := sc.slot(name); err == nil {
		if slot.Tag() != types.Str {
			return "", types.Invalid, notTranslatablef("len is not supported for %s values", slot.Tag())
		}
		return prefix + ".length()", types.Int, nil
	}
	return "", types.Invalid, notTranslatablef("'%s' used before declaration", name)
}

var castSpelling = map[string]string{
	"int":   "(int)",
	"float": "(double)",
	"bool":  "(bool)",
}

var castTag = map[string]types.Tag{
	"str":   types.Str,
	"int":   types.Int,
	"float": types.Float,
	"bool":  types.Bool,
}

func (a *Analyzer) translateCast(n *pyast.Call, name string, sc *scope) (string, types.Tag, error) {
	if len(n.Args) != 1 {
		return "", types.Invalid, notTranslatablef("%s expects 1 argument, got %d", name, len(n.Args))
	}
	arg, _, err := a.translateExpr(n.Args[0], sc)
	if err != nil {
		return "", types.Invalid, err
	}
	if name == "str" {
		a.file.AddInclude("string")
		return "std::to_string(" + arg + ")", types.Str, nil
	}
	return castSpelling[name] + "(" + arg + ")", castTag[name], nil
}

// translateUserCall renders a call to a registered user function and folds
// the argument types into the parameter slots in place, so earlier emitted
// references to those parameters sharpen retroactively.
func (a *Analyzer) translateUserCall(n *pyast.Call, fn *cpp.Function, name string, sc *scope) (string, types.Tag, error) {
	required := 0
	for _, p := range fn.Params {
		if p.Default == "" {
			required++
		}
	}
	if len(n.Args) < required || len(n.Args) > len(fn.Params) {
		return "", types.Invalid, notTranslatablef("'%s' expects %d..%d arguments, got %d",
			name, required, len(fn.Params), len(n.Args))
	}
	parts := make([]string, 0, len(n.Args))
	for i, arg := range n.Args {
		text, tag, err := a.translateExpr(arg, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		fn.Params[i].Var.Type.UnifyWith(tag)
		parts = append(parts, text)
	}
	return name + "(" + strings.Join(parts, ", ") + ")", fn.Return.Tag(), nil
}

// translateMethodCall handles the collection mutation surface: append on
// vectors; add, remove, discard on sets; clear on both. Everything else on
// a dotted callee degrades.
func (a *Analyzer) translateMethodCall(n *pyast.Call, callee *pyast.Attribute, sc *scope) (string, types.Tag, error) {
	var name, prefix string
	switch recv := callee.Value.(type) {
	case *pyast.Name:
		name = recv.Ident
		prefix = name
		if sc.classMember(name) {
			prefix = "this->" + name
		}
	case *pyast.Attribute:
		base, ok := recv.Value.(*pyast.Name)
		if !ok || base.Ident != "self" {
			return "", types.Invalid, notTranslatablef("unsupported call target")
		}
		if sc.class == nil {
			return "", types.Invalid, notTranslatablef("'self' used outside a method")
		}
		name = recv.Attr
		prefix = "this->" + name
	default:
		return "", types.Invalid, notTranslatablef("unsupported call target")
	}

	if vec, ok := sc.vector(name); ok {
		return a.translateVectorMethod(n, vec, name, prefix, callee.Attr, sc)
	}
	if set, ok := sc.set(name); ok {
		return a.translateSetMethod(n, set, name, prefix, callee.Attr, sc)
	}
	if _, ok := sc.tuple(name); ok {
		return "", types.Invalid, notTranslatablef("tuples are immutable; '%s' is not supported", callee.Attr)
	}
	if _, err := sc.slot(name); err == nil {
		return "", types.Invalid, notTranslatablef("method calls on '%s' values are not supported", name)
	}
	return "", types.Invalid, notTranslatablef("'%s' used before declaration", name)
}

func (a *Analyzer) translateVectorMethod(n *pyast.Call, vec *cpp.Vector, name, prefix, method string, sc *scope) (string, types.Tag, error) {
	switch method {
	case "append":
		arg, tag, err := a.oneElementArg(n, name, method, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		if tag != vec.Elem.Tag() {
			return "", types.Invalid, notTranslatablef("cannot append %s to vector '%s' of %s",
				tag, name, vec.Elem.Tag())
		}
		return prefix + ".push_back(" + arg + ")", types.Void, nil
	case "clear":
		if len(n.Args) != 0 {
			return "", types.Invalid, notTranslatablef("clear takes no arguments")
		}
		return prefix + ".clear()", types.Void, nil
	default:
		return "", types.Invalid, notTranslatablef("unsupported vector operation '%s'", method)
	}
}

func (a *Analyzer) translateSetMethod(n *pyast.Call, set *cpp.Set, name, prefix, method string, sc *scope) (string, types.Tag, error) {
	switch method {
	case "add", "remove", "discard":
		arg, tag, err := a.oneElementArg(n, name, method, sc)
		if err != nil {
			return "", types.Invalid, err
		}
		if tag != set.Elem.Tag() {
			return "", types.Invalid, notTranslatablef("cannot %s %s in set '%s' of %s",
				method, tag, name, set.Elem.Tag())
		}
		spelling := ".insert("
		if method != "add" {
			spelling = ".erase("
		}
		return prefix + spelling + arg + ")", types.Void, nil
	case "clear":
		if len(n.Args) != 0 {
			return "", types.Invalid, notTranslatablef("clear takes no arguments")
		}
		return prefix + ".clear()", types.Void, nil
	default:
		return "", types.Invalid, notTranslatablef("unsupported set operation '%s'", method)
	}
}

func (a *Analyzer) oneElementArg(n *pyast.Call, name, method string, sc *scope) (string, types.Tag, error) {
	if len(n.Args) != 1 {
		return "", types.Invalid, notTranslatablef("%s expects 1 argument, got %d", method, len(n.Args))
	}
	return a.translateExpr(n.Args[0], sc)
}
