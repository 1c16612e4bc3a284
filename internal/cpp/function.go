package cpp

import (
	"sort"
	"strings"

	"catalyst/internal/source"
	"catalyst/internal/types"
)

// Param is one ordered function parameter. Default holds the rendered
// literal ("5", "\"abc\"") or "" when the parameter has none.
type Param struct {
	Var     *Variable
	Default string
}

// Function represents one translated function or method. Methods live in
// the file table under "Class::name"; the constructor under
// "Class::__init__" with its return slot pinned to the constructor
// sentinel.
type Function struct {
	Name string
	// Span is the declaration's line range in the Python source, used to
	// attribute uncovered comment lines. The entry function has no span.
	Span   source.LineSpan
	Params []Param

	// Lines maps the original source line of each translated statement to
	// its fragment. Ranges are pairwise disjoint; sorted by start line they
	// reproduce source order.
	Lines map[uint32]*CodeLine

	Variables map[string]*Variable
	Vectors   map[string]*Vector
	Tuples    map[string]*Tuple
	Sets      map[string]*Set

	// Return starts "void" and accumulates the highest-precedence type seen
	// across the function's returns.
	Return *types.Slot
}

// NewFunction creates an empty function covering span.
func NewFunction(name string, span source.LineSpan) *Function {
	return &Function{
		Name:      name,
		Span:      span,
		Lines:     make(map[uint32]*CodeLine),
		Variables: make(map[string]*Variable),
		Vectors:   make(map[string]*Vector),
		Tuples:    make(map[string]*Tuple),
		Sets:      make(map[string]*Set),
		Return:    types.NewSlot(types.Void),
	}
}

// AddParam appends an ordered parameter.
func (f *Function) AddParam(v *Variable, defaultText string) {
	f.Params = append(f.Params, Param{Var: v, Default: defaultText})
}

// Param returns the parameter named name, if any.
func (f *Function) Param(name string) (*Variable, bool) {
	for _, p := range f.Params {
		if p.Var.Name == name {
			return p.Var, true
		}
	}
	return nil, false
}

// AddLine registers a fragment under its start line.
func (f *Function) AddLine(l *CodeLine) {
	f.Lines[l.Start] = l
}

// SortedLines returns the fragments in source order.
func (f *Function) SortedLines() []*CodeLine {
	out := make([]*CodeLine, 0, len(f.Lines))
	for _, l := range f.Lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// IsEntry reports whether this is the synthetic entry function.
func (f *Function) IsEntry() bool { return f.Name == EntryName }

// Signature renders the definition header, defaults included.
func (f *Function) Signature() string {
	return f.SignatureAs(f.renderedName(), true)
}

// ForwardDeclaration renders the prototype, defaults omitted.
func (f *Function) ForwardDeclaration() string {
	return f.SignatureAs(f.renderedName(), false)
}

// SignatureAs renders the header under an explicit name; constructors pass
// their class name here.
func (f *Function) SignatureAs(name string, withDefaults bool) string {
	if f.IsEntry() {
		return "int main(int argc, char **argv)"
	}

	var b strings.Builder
	b.WriteString(f.Return.Tag().Spelling())
	b.WriteString(name)
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Var.Type.Tag().Spelling())
		b.WriteString(p.Var.Name)
		if withDefaults && p.Default != "" {
			b.WriteString("=")
			b.WriteString(p.Default)
		}
	}
	b.WriteString(")")
	return b.String()
}

func (f *Function) renderedName() string {
	if f.IsEntry() {
		return "main"
	}
	return f.Name
}

// Text renders the full definition. The entry function gains the implicit
// success return after all user fragments.
func (f *Function) Text(unit string) string {
	return f.TextAs(f.renderedName(), unit)
}

// TextAs renders the definition under an explicit name.
func (f *Function) TextAs(name, unit string) string {
	var b strings.Builder
	b.WriteString(f.SignatureAs(name, true))
	b.WriteString("\n{\n")
	for _, line := range f.SortedLines() {
		b.WriteString(line.Format(unit))
		b.WriteString("\n")
	}
	if f.IsEntry() {
		b.WriteString("\n")
		b.WriteString(unit)
		b.WriteString("return 0;\n")
	}
	b.WriteString("}")
	return b.String()
}
