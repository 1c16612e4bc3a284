// Package analyzer builds the C++ model from a parsed Python module in two
// passes. The first pass registers every top-level function, class and
// method so call sites can resolve forward references; the second pass
// translates the bodies in source order, free statements landing in the
// synthetic entry function. Translation never fails: anything the model
// cannot express degrades to an inert pass-through fragment and a warning.
package analyzer

import (
	"path/filepath"
	"strings"

	"catalyst/internal/cpp"
	"catalyst/internal/diag"
	"catalyst/internal/pyast"
	"catalyst/internal/source"
	"catalyst/internal/types"
)

const defaultIndentUnit = "    "

// Options tunes the generated output.
type Options struct {
	// IndentUnit is the text of one indentation level; four spaces when
	// empty.
	IndentUnit string
}

// Analyzer translates one module into one cpp.File.
type Analyzer struct {
	file *cpp.File
	src  *source.File
	rep  diag.Reporter
	unit string

	// Declaration-pass results, keyed by the defining node so a duplicate
	// definition's body never leaks into the survivor.
	fns     map[*pyast.FunctionDef]*cpp.Function
	classes map[*pyast.ClassDef]*cpp.Class
}

// New creates an analyzer for src. A nil reporter discards diagnostics.
func New(src *source.File, rep diag.Reporter, opts Options) *Analyzer {
	unit := opts.IndentUnit
	if unit == "" {
		unit = defaultIndentUnit
	}
	if rep == nil {
		rep = diag.NopReporter{}
	}
	name := strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path))
	return &Analyzer{
		file:    cpp.NewFile(name),
		src:     src,
		rep:     rep,
		unit:    unit,
		fns:     make(map[*pyast.FunctionDef]*cpp.Function),
		classes: make(map[*pyast.ClassDef]*cpp.Class),
	}
}

// IndentUnit returns the effective indentation unit.
func (a *Analyzer) IndentUnit() string { return a.unit }

// Run executes both passes and returns the populated model.
func (a *Analyzer) Run(mod *pyast.Module) *cpp.File {
	a.registerDeclarations(mod)
	a.translateBodies(mod)
	return a.file
}

func (a *Analyzer) registerDeclarations(mod *pyast.Module) {
	for _, st := range mod.Body {
		switch n := st.(type) {
		case *pyast.FunctionDef:
			a.registerFunction(n, nil)
		case *pyast.ClassDef:
			a.registerClass(n)
		}
	}
}

func (a *Analyzer) registerFunction(def *pyast.FunctionDef, cls *cpp.Class) {
	span := a.span(def.Span)
	if def.BadParams {
		diag.ReportWarning(a.rep, diag.TranslateSkippedFunc, span,
			"function '"+def.Name+"' skipped: unsupported parameter list")
		return
	}

	fn := cpp.NewFunction(def.Name, span)
	params := def.Params
	if cls != nil && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	for _, p := range params {
		tag := types.Auto
		text := ""
		if p.Default != nil {
			if rendered, t, err := a.translateConstant(p.Default); err == nil {
				tag, text = t, rendered
			}
		}
		fn.AddParam(cpp.NewVariable(p.Name, 0, tag), text)
	}

	key := def.Name
	if cls != nil {
		key = cpp.QualifiedName(cls.Name, def.Name)
		if def.Name == "__init__" {
			fn.Return.Set(types.Constructor)
		}
	}
	if !a.file.AddFunction(key, fn) {
		diag.ReportWarning(a.rep, diag.TranslateDuplicateName, span,
			"duplicate definition of '"+key+"'; later definition ignored")
		return
	}
	if cls != nil {
		cls.AddMethod(fn)
	}
	a.fns[def] = fn
}

func (a *Analyzer) registerClass(def *pyast.ClassDef) {
	span := a.span(def.Span)
	bases := make([]string, 0, len(def.Bases))
	for _, b := range def.Bases {
		name, ok := b.(*pyast.Name)
		if !ok {
			diag.ReportWarning(a.rep, diag.TranslateSkippedClass, span,
				"class '"+def.Name+"' skipped: unsupported base class expression")
			return
		}
		bases = append(bases, name.Ident)
	}

	cls := cpp.NewClass(def.Name, span, bases)
	if !a.file.AddClass(cls) {
		diag.ReportWarning(a.rep, diag.TranslateDuplicateName, span,
			"duplicate definition of '"+def.Name+"'; later definition ignored")
		return
	}
	a.classes[def] = cls
	for _, member := range def.Body {
		if m, ok := member.(*pyast.FunctionDef); ok {
			a.registerFunction(m, cls)
		}
	}
}

func (a *Analyzer) translateBodies(mod *pyast.Module) {
	// Function and method bodies first, in source order.
	for _, st := range mod.Body {
		switch n := st.(type) {
		case *pyast.FunctionDef:
			if fn, ok := a.fns[n]; ok {
				a.block(n.Body, &scope{fn: fn, indent: 1})
			}
		case *pyast.ClassDef:
			a.translateClassBody(n)
		}
	}

	// Then the free top-level statements, which form the entry body.
	entry := &scope{fn: a.file.Entry(), indent: 1}
	for _, st := range mod.Body {
		switch st.(type) {
		case *pyast.FunctionDef, *pyast.ClassDef:
		default:
			a.statement(st, entry)
		}
	}
}

func (a *Analyzer) translateClassBody(def *pyast.ClassDef) {
	cls, ok := a.classes[def]
	if !ok {
		return
	}
	for _, member := range def.Body {
		switch m := member.(type) {
		case *pyast.FunctionDef:
			if fn, ok := a.fns[m]; ok {
				a.block(m.Body, &scope{fn: fn, class: cls, indent: 1})
			}
		case *pyast.ExprStmt:
			// Class docstrings have no rendered position; drop them.
			if lit, ok := m.Value.(*pyast.Constant); ok && types.FromRuntimeName(lit.Type) == types.Str {
				continue
			}
			diag.ReportInfo(a.rep, diag.TranslateInfo, a.span(m.Pos()),
				"class-level statement ignored")
		default:
			diag.ReportInfo(a.rep, diag.TranslateInfo, a.span(member.Pos()),
				"class-level statement ignored")
		}
	}
}
