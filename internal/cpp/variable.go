// Package cpp models the translated C++ file: functions, classes, typed
// collections and their ordered code lines. The model is built by the
// analyzer and rendered to text afterwards, so every value here keeps the
// source positions needed for the declaration-typing and comment passes.
package cpp

import (
	"catalyst/internal/types"
)

// EntryName is the reserved key of the synthetic entry function. "0" can
// never collide with a user function because it is not a valid Python
// identifier; the renderer spells it "main".
const EntryName = "0"

// QualifiedName builds the function-table key of a method.
func QualifiedName(class, method string) string {
	return class + "::" + method
}

// Variable is one named, typed slot in a scope. The type cell is shared:
// refining it at a call site updates every holder.
type Variable struct {
	Name string
	// Line is the 1-based declaration line; 0 means the declaration is not
	// eligible for the typing pass (parameters, loop headers).
	Line uint32
	Type *types.Slot
}

// NewVariable creates a variable with a fresh type slot.
func NewVariable(name string, line uint32, tag types.Tag) *Variable {
	return &Variable{Name: name, Line: line, Type: types.NewSlot(tag)}
}
