package types

// Slot is a single mutable type cell attached to a symbol. Signatures are
// discovered, not declared: a parameter's tag may sharpen after later call
// sites are analyzed, and every symbol holding the slot observes the update.
type Slot struct {
	tag Tag
}

// NewSlot returns a slot holding the given tag.
func NewSlot(t Tag) *Slot { return &Slot{tag: t} }

// Tag returns the current tag.
func (s *Slot) Tag() Tag { return s.tag }

// Set overwrites the current tag.
func (s *Slot) Set(t Tag) { s.tag = t }

// UnifyWith folds t into the slot in place via the lattice rule.
func (s *Slot) UnifyWith(t Tag) {
	s.tag = Unify(s.tag, t)
}
