package analyzer

import (
	"errors"
	"fmt"
)

// NotTranslatableError reports that a construct cannot be represented
// faithfully. It carries the reason recorded on the resulting pass-through
// fragment and is the only failure kind that reaches the statement
// translator.
type NotTranslatableError struct {
	Reason string
}

func (e *NotTranslatableError) Error() string { return e.Reason }

func notTranslatablef(format string, args ...any) error {
	return &NotTranslatableError{Reason: fmt.Sprintf(format, args...)}
}

// symbolNotFoundError is a name-lookup miss. It never crosses a statement
// boundary: every caller converts it into NotTranslatableError so an
// undeclared or forward-referenced name degrades the enclosing statement
// instead of surfacing as a different failure class.
type symbolNotFoundError struct {
	name string
}

func (e *symbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %q not found", e.name)
}

// convertLookup rewrites a symbol miss into the canonical "used before
// declaration" refusal, passing other errors through untouched.
func convertLookup(err error) error {
	var miss *symbolNotFoundError
	if errors.As(err, &miss) {
		return notTranslatablef("'%s' used before declaration", miss.name)
	}
	return err
}

// reasonOf extracts the pass-through reason from err.
func reasonOf(err error) string {
	var nt *NotTranslatableError
	if errors.As(err, &nt) {
		return nt.Reason
	}
	return err.Error()
}
