package source

import (
	"fmt"
)

// LineSpan is an inclusive 1-based range of source lines within one file.
// Every code fragment the translator emits carries one; the comment pass
// uses them to decide which original lines are already covered.
type LineSpan struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s LineSpan) Empty() bool {
	return s.Start == 0 || s.End < s.Start
}

// Len returns the number of lines covered by the span.
func (s LineSpan) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start + 1
}

func (s LineSpan) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether the 1-based line falls inside the span.
func (s LineSpan) Contains(line uint32) bool {
	return !s.Empty() && s.Start <= line && line <= s.End
}

// Cover extends the span to include other. Spans from different files are
// left untouched.
func (s LineSpan) Cover(other LineSpan) LineSpan {
	if s.File != other.File || other.Empty() {
		return s
	}
	if s.Empty() {
		return other
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Overlaps reports whether two spans share at least one line.
func (s LineSpan) Overlaps(other LineSpan) bool {
	if s.File != other.File || s.Empty() || other.Empty() {
		return false
	}
	return s.Start <= other.End && other.Start <= s.End
}
