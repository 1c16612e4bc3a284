package types

// Tag identifies one of the type categories the translator can reason about.
// The set mirrors the Python runtime types that survive translation plus the
// bookkeeping tags used while a signature is still being discovered.
type Tag uint8

const (
	Str Tag = iota
	Float
	Int
	Bool
	Auto
	None
	Void
	// Constructor is the sentinel return tag of a class constructor; it is
	// never unified and renders as an empty spelling.
	Constructor
	Invalid
)

// rank positions for the precedence lattice. Lower rank wins a unification.
// Tags missing from this table are outside the lattice.
var ranks = map[Tag]uint8{
	Str:   0,
	Float: 1,
	Int:   2,
	Bool:  3,
	Auto:  8,
	None:  9,
	Void:  9,
}

// Rank returns the precedence rank of t and whether t participates in the
// lattice at all.
func Rank(t Tag) (uint8, bool) {
	r, ok := ranks[t]
	return r, ok
}

// Unify combines two tags into the one that can represent both without
// precision loss: the higher-precedence (lower-ranked) tag. Any combination
// involving a tag outside the lattice degrades to Auto instead of guessing.
func Unify(a, b Tag) Tag {
	ra, okA := Rank(a)
	rb, okB := Rank(b)
	if !okA || !okB {
		return Auto
	}
	if ra < rb {
		return a
	}
	if rb < ra {
		return b
	}
	if a == b {
		return a
	}
	// None and Void share the bottom rank; the tie collapses to Void so the
	// result never depends on operand order.
	return Void
}

func (t Tag) String() string {
	switch t {
	case Str:
		return "str"
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Auto:
		return "auto"
	case None:
		return "None"
	case Void:
		return "void"
	case Constructor:
		return "constructor"
	default:
		return "invalid"
	}
}

// Spelling returns the C++ type text for t. The trailing space is part of
// the spelling so declaration typing is a plain prefix concatenation.
func (t Tag) Spelling() string {
	switch t {
	case Str:
		return "std::string "
	case Float:
		return "double "
	case Int:
		return "int "
	case Bool:
		return "bool "
	case Auto:
		return "auto "
	case None, Void:
		return "void "
	case Constructor:
		return ""
	default:
		return "auto "
	}
}

// Numeric reports whether t is an arithmetic tag.
func (t Tag) Numeric() bool {
	switch t {
	case Float, Int, Bool:
		return true
	default:
		return false
	}
}

// FromRuntimeName maps a Python runtime type name onto a Tag.
func FromRuntimeName(name string) Tag {
	switch name {
	case "str":
		return Str
	case "float":
		return Float
	case "int":
		return Int
	case "bool":
		return Bool
	case "NoneType":
		return None
	default:
		return Invalid
	}
}
