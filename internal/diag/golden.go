package diag

import (
	"fmt"
	"sort"
	"strings"

	"catalyst/internal/source"
)

// FormatShort renders diagnostics one per line in a stable order, suitable
// for CLI output and golden comparisons in tests:
//
//	WARNING TRN2001 example.py:27-28: membership test not supported
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(diags))
	for _, d := range diags {
		// Load-failure diagnostics carry a zero span whose FileID may not
		// exist in the set.
		path := ""
		if fs != nil && int(d.Primary.File) < fs.Len() {
			path = fs.Get(d.Primary.File).Path
		}
		loc := fmt.Sprintf("%d", d.Primary.Start)
		if d.Primary.End > d.Primary.Start {
			loc = fmt.Sprintf("%d-%d", d.Primary.Start, d.Primary.End)
		}
		block := fmt.Sprintf("%s %s %s:%s: %s",
			d.Severity, d.Code, path, loc, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				block += fmt.Sprintf("\n  note %d: %s", n.Span.Start, n.Msg)
			}
		}
		blocks = append(blocks, block)
	}
	sort.Strings(blocks)
	return strings.Join(blocks, "\n")
}
