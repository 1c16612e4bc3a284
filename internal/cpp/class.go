package cpp

import (
	"strings"

	"catalyst/internal/source"
)

// Class represents one translated Python class.
type Class struct {
	Name  string
	Span  source.LineSpan
	Bases []string

	Attributes map[string]*Variable
	attrOrder  []string

	Methods     map[string]*Function
	methodOrder []string

	Vectors     map[string]*Vector
	Tuples      map[string]*Tuple
	Sets        map[string]*Set
	vectorOrder []string
	tupleOrder  []string
	setOrder    []string
}

func NewClass(name string, span source.LineSpan, bases []string) *Class {
	return &Class{
		Name:       name,
		Span:       span,
		Bases:      bases,
		Attributes: make(map[string]*Variable),
		Methods:    make(map[string]*Function),
		Vectors:    make(map[string]*Vector),
		Tuples:     make(map[string]*Tuple),
		Sets:       make(map[string]*Set),
	}
}

// AddAttribute registers an instance attribute, keeping declaration order.
func (c *Class) AddAttribute(v *Variable) {
	if _, ok := c.Attributes[v.Name]; !ok {
		c.attrOrder = append(c.attrOrder, v.Name)
	}
	c.Attributes[v.Name] = v
}

// AddMethod registers a method, keeping declaration order.
func (c *Class) AddMethod(f *Function) {
	if _, ok := c.Methods[f.Name]; !ok {
		c.methodOrder = append(c.methodOrder, f.Name)
	}
	c.Methods[f.Name] = f
}

// AddVector registers a vector attribute.
func (c *Class) AddVector(v *Vector) {
	if _, ok := c.Vectors[v.Name]; !ok {
		c.vectorOrder = append(c.vectorOrder, v.Name)
	}
	c.Vectors[v.Name] = v
}

// AddTuple registers a tuple attribute.
func (c *Class) AddTuple(t *Tuple) {
	if _, ok := c.Tuples[t.Name]; !ok {
		c.tupleOrder = append(c.tupleOrder, t.Name)
	}
	c.Tuples[t.Name] = t
}

// AddSet registers a set attribute.
func (c *Class) AddSet(s *Set) {
	if _, ok := c.Sets[s.Name]; !ok {
		c.setOrder = append(c.setOrder, s.Name)
	}
	c.Sets[s.Name] = s
}

// ForwardDeclaration renders the class prototype.
func (c *Class) ForwardDeclaration() string {
	return "class " + c.Name + ";"
}

// Text renders the full class definition: attributes, collection members,
// then methods, the constructor under the class's own name.
func (c *Class) Text(unit string) string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(c.Name)
	if len(c.Bases) > 0 {
		b.WriteString(" : public ")
		b.WriteString(strings.Join(c.Bases, ", public "))
	}
	b.WriteString("\n{\npublic:\n")

	for _, name := range c.attrOrder {
		attr := c.Attributes[name]
		b.WriteString(unit)
		b.WriteString(attr.Type.Tag().Spelling())
		b.WriteString(attr.Name)
		b.WriteString(";\n")
	}
	for _, name := range c.vectorOrder {
		b.WriteString(unit)
		b.WriteString(c.Vectors[name].Declaration())
		b.WriteString("\n")
	}
	for _, name := range c.tupleOrder {
		b.WriteString(unit)
		b.WriteString(c.Tuples[name].Declaration())
		b.WriteString("\n")
	}
	for _, name := range c.setOrder {
		b.WriteString(unit)
		b.WriteString(c.Sets[name].Declaration())
		b.WriteString("\n")
	}

	for _, name := range c.methodOrder {
		method := c.Methods[name]
		rendered := name
		if name == "__init__" {
			rendered = c.Name
		}
		for _, line := range strings.Split(method.TextAs(rendered, unit), "\n") {
			if strings.TrimSpace(line) != "" {
				b.WriteString(unit)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("};\n")
	return b.String()
}
