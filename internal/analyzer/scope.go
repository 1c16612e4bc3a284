package analyzer

import (
	"catalyst/internal/cpp"
	"catalyst/internal/types"
)

// scope is the lookup context for one function or method body. fn is the
// target the fragments land in; class is non-nil only inside a method and
// widens every lookup with the class-level tables. indent tracks the
// current block depth in indentation units.
type scope struct {
	fn     *cpp.Function
	class  *cpp.Class
	indent int
	loop   bool
}

func (sc *scope) child() *scope {
	return &scope{fn: sc.fn, class: sc.class, indent: sc.indent + 1, loop: sc.loop}
}

func (sc *scope) loopChild() *scope {
	c := sc.child()
	c.loop = true
	return c
}

// attribute resolves name to a class attribute when inside a method.
func (sc *scope) attribute(name string) (*cpp.Variable, bool) {
	if sc.class == nil {
		return nil, false
	}
	v, ok := sc.class.Attributes[name]
	return v, ok
}

// slot resolves a bare name to its type slot. Method scopes consult the
// class attribute table before the function's own params and locals, so a
// method body sees attributes without the self prefix the way the source
// declared them through it.
func (sc *scope) slot(name string) (*types.Slot, error) {
	if attr, ok := sc.attribute(name); ok {
		return attr.Type, nil
	}
	if p, ok := sc.fn.Param(name); ok {
		return p.Type, nil
	}
	if v, ok := sc.fn.Variables[name]; ok {
		return v.Type, nil
	}
	return nil, &symbolNotFoundError{name: name}
}

// vector resolves name to a vector, the class table first inside a method,
// then the function's own.
func (sc *scope) vector(name string) (*cpp.Vector, bool) {
	if sc.class != nil {
		if v, ok := sc.class.Vectors[name]; ok {
			return v, true
		}
	}
	if v, ok := sc.fn.Vectors[name]; ok {
		return v, true
	}
	return nil, false
}

func (sc *scope) tuple(name string) (*cpp.Tuple, bool) {
	if sc.class != nil {
		if t, ok := sc.class.Tuples[name]; ok {
			return t, true
		}
	}
	if t, ok := sc.fn.Tuples[name]; ok {
		return t, true
	}
	return nil, false
}

func (sc *scope) set(name string) (*cpp.Set, bool) {
	if sc.class != nil {
		if s, ok := sc.class.Sets[name]; ok {
			return s, true
		}
	}
	if s, ok := sc.fn.Sets[name]; ok {
		return s, true
	}
	return nil, false
}

// collection reports whether name is bound to any collection in scope.
func (sc *scope) collection(name string) bool {
	if _, ok := sc.vector(name); ok {
		return true
	}
	if _, ok := sc.tuple(name); ok {
		return true
	}
	_, ok := sc.set(name)
	return ok
}

// classMember reports whether name resolves to the enclosing class, which
// decides the this-> prefix. Class tables take precedence over the
// function's own, so a parameter shadowed by an attribute still renders as
// a member access.
func (sc *scope) classMember(name string) bool {
	if sc.class == nil {
		return false
	}
	if _, ok := sc.class.Attributes[name]; ok {
		return true
	}
	if _, ok := sc.class.Vectors[name]; ok {
		return true
	}
	if _, ok := sc.class.Tuples[name]; ok {
		return true
	}
	_, ok := sc.class.Sets[name]
	return ok
}
