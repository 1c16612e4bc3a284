package diag

import (
	"catalyst/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.LineSpan
	Msg  string
}

// Diagnostic is one reported finding, located by source line span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.LineSpan
	Notes    []Note
}

// WithNote returns a copy of d with an extra note appended.
func (d Diagnostic) WithNote(sp source.LineSpan, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
