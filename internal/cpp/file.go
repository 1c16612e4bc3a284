package cpp

import (
	"strings"

	"catalyst/internal/source"
	"catalyst/internal/types"
)

// File is one translation unit: the typed model of everything translated
// from a single Python source file, plus the external dependencies the
// generated code requires.
type File struct {
	Name string

	// Includes is the ordered set of required headers, first use first.
	Includes []string

	Functions     map[string]*Function
	functionOrder []string

	Classes    map[string]*Class
	classOrder []string
}

// NewFile creates a unit whose entry function is already registered, so
// top-level statements always have a home.
func NewFile(name string) *File {
	f := &File{
		Name:      name,
		Functions: make(map[string]*Function),
		Classes:   make(map[string]*Class),
	}
	entry := NewFunction(EntryName, source.LineSpan{})
	entry.Return.Set(types.Int)
	f.AddFunction(EntryName, entry)
	return f
}

// AddInclude appends a header if it is not present yet.
func (f *File) AddInclude(name string) {
	for _, inc := range f.Includes {
		if inc == name {
			return
		}
	}
	f.Includes = append(f.Includes, name)
}

// AddFunction registers fn under key. A duplicate key is rejected, not
// overwritten.
func (f *File) AddFunction(key string, fn *Function) bool {
	if _, exists := f.Functions[key]; exists {
		return false
	}
	f.Functions[key] = fn
	f.functionOrder = append(f.functionOrder, key)
	return true
}

// Function returns the function registered under key.
func (f *File) Function(key string) (*Function, bool) {
	fn, ok := f.Functions[key]
	return fn, ok
}

// FunctionOrder returns registration order of function keys.
func (f *File) FunctionOrder() []string { return f.functionOrder }

// Entry returns the synthetic entry function.
func (f *File) Entry() *Function { return f.Functions[EntryName] }

// AddClass registers a class. Duplicates are rejected.
func (f *File) AddClass(c *Class) bool {
	if _, exists := f.Classes[c.Name]; exists {
		return false
	}
	f.Classes[c.Name] = c
	f.classOrder = append(f.classOrder, c.Name)
	return true
}

// Class returns the class named name.
func (f *File) Class(name string) (*Class, bool) {
	c, ok := f.Classes[name]
	return c, ok
}

// ClassOrder returns registration order of class names.
func (f *File) ClassOrder() []string { return f.classOrder }

// Text assembles the complete output file: includes, class forward
// declarations, function prototypes (methods and the entry function are
// skipped), class definitions, then function definitions in registration
// order. The entry function was registered first and therefore leads.
func (f *File) Text(unit string) string {
	var b strings.Builder

	for _, inc := range f.Includes {
		b.WriteString("#include <")
		b.WriteString(inc)
		b.WriteString(">\n")
	}

	for _, name := range f.classOrder {
		b.WriteString(f.Classes[name].ForwardDeclaration())
		b.WriteString("\n")
	}

	for _, key := range f.functionOrder {
		if strings.Contains(key, "::") || key == EntryName {
			continue
		}
		b.WriteString(f.Functions[key].ForwardDeclaration())
		b.WriteString(";\n")
	}
	b.WriteString("\n")

	for _, name := range f.classOrder {
		b.WriteString(f.Classes[name].Text(unit))
		b.WriteString("\n\n")
	}

	for _, key := range f.functionOrder {
		if strings.Contains(key, "::") {
			continue
		}
		b.WriteString(f.Functions[key].Text(unit))
		b.WriteString("\n\n")
	}

	return b.String()
}
