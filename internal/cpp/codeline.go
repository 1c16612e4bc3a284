package cpp

import (
	"strings"
)

// CodeLine is one emitted logical statement or block: the source line range
// it replaces, the generated text, an optional trailing comment recovered by
// the comment pass, and, only for pass-throughs, the refusal reason.
type CodeLine struct {
	Start  uint32 // 1-based first source line
	End    uint32 // 1-based last source line
	EndCol uint32 // byte offset just past the translated code on Start's line
	Indent int
	Code   string
	// Comment is the trailing source comment, without the '#'.
	Comment string
	// Reason is set only when Code is an inert verbatim copy.
	Reason string
	// Closers counts block-closing braces appended after this line, each one
	// indent level further out. A statement ending several nested blocks at
	// once carries one closer per block.
	Closers int
}

// NewCodeLine builds a fragment covering [start, end].
func NewCodeLine(start, end, endCol uint32, indent int, code string) *CodeLine {
	return &CodeLine{Start: start, End: end, EndCol: endCol, Indent: indent, Code: code}
}

// Format renders the line with the given indent unit. Multi-line code embeds
// its own continuation indentation; only the first line is prefixed here.
func (l *CodeLine) Format(unit string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(unit, l.Indent))
	b.WriteString(l.Code)
	if l.Comment != "" {
		b.WriteString("\t// ")
		b.WriteString(l.Comment)
	}
	for i := 1; i <= l.Closers; i++ {
		depth := l.Indent - i
		if depth < 0 {
			depth = 0
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat(unit, depth))
		b.WriteString("}")
	}
	return b.String()
}
