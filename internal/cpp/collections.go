package cpp

import (
	"fmt"
	"strings"

	"catalyst/internal/types"
)

// Vector is a homogeneous list. The element slot is fixed at creation and
// every append must match it exactly.
type Vector struct {
	Name  string
	Elem  *types.Slot
	Elems []string // rendered initializer elements
}

func NewVector(name string, elem types.Tag, elems []string) *Vector {
	return &Vector{Name: name, Elem: types.NewSlot(elem), Elems: elems}
}

// Declaration renders the C++ definition with its initializer.
func (v *Vector) Declaration() string {
	return fmt.Sprintf("std::vector<%s> %s = { %s };",
		v.Elem.Tag().Spelling(), v.Name, strings.Join(v.Elems, ", "))
}

// Access renders an indexed element access.
func (v *Vector) Access(index string) string {
	return fmt.Sprintf("%s[%s]", v.Name, index)
}

// Tuple is a fixed-arity collection with one static type per slot.
type Tuple struct {
	Name      string
	ElemTypes []types.Tag
	Elems     []string
}

func NewTuple(name string, elemTypes []types.Tag, elems []string) *Tuple {
	return &Tuple{Name: name, ElemTypes: elemTypes, Elems: elems}
}

func (t *Tuple) Declaration() string {
	spellings := make([]string, len(t.ElemTypes))
	for i, tag := range t.ElemTypes {
		spellings[i] = tag.Spelling()
	}
	return fmt.Sprintf("std::tuple<%s> %s = std::make_tuple(%s);",
		strings.Join(spellings, ", "), t.Name, strings.Join(t.Elems, ", "))
}

// Access renders a std::get access for a literal slot index.
func (t *Tuple) Access(index int) string {
	return fmt.Sprintf("std::get<%d>(%s)", index, t.Name)
}

// Arity returns the fixed number of slots.
func (t *Tuple) Arity() int { return len(t.ElemTypes) }

// Set is a homogeneous unordered set.
type Set struct {
	Name  string
	Elem  *types.Slot
	Elems []string
}

func NewSet(name string, elem types.Tag, elems []string) *Set {
	return &Set{Name: name, Elem: types.NewSlot(elem), Elems: elems}
}

func (s *Set) Declaration() string {
	return fmt.Sprintf("std::unordered_set<%s> %s = { %s };",
		s.Elem.Tag().Spelling(), s.Name, strings.Join(s.Elems, ", "))
}
