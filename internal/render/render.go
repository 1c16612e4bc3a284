// Package render finishes a translated model: it types the first
// assignment of every discovered variable, reattaches the source comments
// the syntax tree never carried, and assembles the final C++ text.
package render

import (
	"strings"

	"catalyst/internal/cpp"
	"catalyst/internal/source"
	"catalyst/internal/types"
)

// Finalize runs the typing and comment passes and returns the complete
// output text.
func Finalize(file *cpp.File, src *source.File, unit string) string {
	ApplyVariableTypes(file)
	AttachComments(file, src)
	return file.Text(unit)
}

// ApplyVariableTypes prefixes the resolved type spelling onto each
// variable's declaring fragment. It runs after all bodies are translated,
// when call-site refinement can no longer sharpen a slot. Variables with
// line 0 are declared elsewhere (parameters, loop headers, attributes) and
// are skipped.
func ApplyVariableTypes(file *cpp.File) {
	for _, fn := range allFunctions(file) {
		for _, v := range fn.Variables {
			if v.Line == 0 {
				continue
			}
			frag, ok := fn.Lines[v.Line]
			if !ok {
				continue
			}
			frag.Code = v.Type.Tag().Spelling() + frag.Code
			if v.Type.Tag() == types.Str {
				file.AddInclude("string")
			}
		}
	}
	for _, name := range file.ClassOrder() {
		cls, _ := file.Class(name)
		for _, attr := range cls.Attributes {
			if attr.Type.Tag() == types.Str {
				file.AddInclude("string")
			}
		}
	}
}

// AttachComments walks every source line once. Lines covered by a fragment
// may contribute a trailing comment to it; uncovered comment lines become
// standalone comment fragments in the function whose span holds them, and
// uncovered blank lines become empty fragments so the output keeps the
// source's vertical rhythm. Anything else uncovered is structural syntax
// (def/class/else headers) that the model already represents.
func AttachComments(file *cpp.File, src *source.File) {
	fns := allFunctions(file)
	covered := make(map[uint32]bool)

	for _, fn := range fns {
		for _, frag := range fn.Lines {
			for line := frag.Start; line <= frag.End; line++ {
				covered[line] = true
			}
			// Pass-through fragments copy their lines verbatim, comments
			// included.
			if frag.Reason != "" || frag.Comment != "" {
				continue
			}
			raw := src.Line(frag.Start)
			if int(frag.EndCol) >= len(raw) {
				continue
			}
			rest := strings.TrimSpace(raw[frag.EndCol:])
			if trimmed, ok := strings.CutPrefix(rest, "#"); ok {
				frag.Comment = strings.TrimSpace(trimmed)
			}
		}
	}

	entry := file.Entry()
	for line := uint32(1); line <= uint32(src.LineCount()); line++ {
		if covered[line] {
			continue
		}
		text := strings.TrimSpace(src.Line(line))
		owner := owningFunction(fns, entry, line)
		switch {
		case text == "":
			owner.AddLine(cpp.NewCodeLine(line, line, 0, 0, ""))
		case strings.HasPrefix(text, "#"):
			comment := "// " + strings.TrimSpace(strings.TrimPrefix(text, "#"))
			owner.AddLine(cpp.NewCodeLine(line, line, 0, 1, comment))
		}
	}
}

func owningFunction(fns []*cpp.Function, entry *cpp.Function, line uint32) *cpp.Function {
	for _, fn := range fns {
		if !fn.IsEntry() && fn.Span.Contains(line) {
			return fn
		}
	}
	return entry
}

func allFunctions(file *cpp.File) []*cpp.Function {
	keys := file.FunctionOrder()
	out := make([]*cpp.Function, 0, len(keys))
	for _, key := range keys {
		if fn, ok := file.Function(key); ok {
			out = append(out, fn)
		}
	}
	return out
}
