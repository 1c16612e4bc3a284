package diag

import (
	"strings"
	"testing"

	"catalyst/internal/source"
)

func span(file source.FileID, start, end uint32) source.LineSpan {
	return source.LineSpan{File: file, Start: start, End: end}
}

func TestBag_Limit(t *testing.T) {
	bag := NewBag(2)
	for i := uint32(1); i <= 3; i++ {
		ok := bag.Add(Diagnostic{Code: TranslatePassThrough, Severity: SevWarning, Primary: span(0, i, i)})
		if i <= 2 && !ok {
			t.Errorf("add %d rejected under limit", i)
		}
		if i == 3 && ok {
			t.Error("add over limit accepted")
		}
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBag_SeverityQueries(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Diagnostic{Severity: SevInfo, Code: TranslateInfo})
	if bag.HasWarnings() || bag.HasErrors() {
		t.Error("info alone must not trip warning or error checks")
	}
	bag.Add(Diagnostic{Severity: SevWarning, Code: TranslatePassThrough})
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Error("warning must trip HasWarnings only")
	}
	bag.Add(Diagnostic{Severity: SevError, Code: IOLoadFileError})
	if !bag.HasErrors() {
		t.Error("error not detected")
	}
}

func TestBag_SortOrdersBySpanThenSeverity(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Diagnostic{Severity: SevInfo, Code: TranslateInfo, Primary: span(0, 9, 9)})
	bag.Add(Diagnostic{Severity: SevWarning, Code: TranslatePassThrough, Primary: span(0, 2, 3)})
	bag.Add(Diagnostic{Severity: SevError, Code: IOLoadFileError, Primary: span(0, 2, 3)})
	bag.Sort()

	items := bag.Items()
	if items[0].Severity != SevError {
		t.Errorf("first = %v, want the error at 2-3", items[0])
	}
	if items[1].Severity != SevWarning {
		t.Errorf("second = %v, want the warning at 2-3", items[1])
	}
	if items[2].Primary.Start != 9 {
		t.Errorf("third = %v, want the info at 9", items[2])
	}
}

func TestBag_DedupKeepsFirstPerCodeAndSpan(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Diagnostic{Code: TranslatePassThrough, Primary: span(0, 1, 1), Message: "first"})
	bag.Add(Diagnostic{Code: TranslatePassThrough, Primary: span(0, 1, 1), Message: "repeat"})
	bag.Add(Diagnostic{Code: TranslatePassThrough, Primary: span(0, 2, 2), Message: "other line"})
	bag.Dedup()

	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Message != "first" {
		t.Errorf("survivor = %q, want the first occurrence", bag.Items()[0].Message)
	}
}

func TestBag_MergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: TranslateInfo})
	b := NewBag(2)
	b.Add(Diagnostic{Code: TranslatePassThrough})
	b.Add(Diagnostic{Code: TranslateDuplicateName})

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("merged len = %d, want 3", a.Len())
	}
	a.Merge(nil)
	if a.Len() != 3 {
		t.Error("nil merge changed the bag")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("example.py", []byte("x = 1\ny = 2\nz = 3"))

	diags := []Diagnostic{
		{
			Severity: SevWarning, Code: TranslatePassThrough,
			Primary: source.LineSpan{File: id, Start: 2, End: 3},
			Message: "unsupported comparison operator 'in'",
		},
		{
			Severity: SevInfo, Code: TranslateInfo,
			Primary: source.LineSpan{File: id, Start: 1, End: 1},
			Message: "class-level statement ignored",
		},
	}

	out := FormatShort(diags, fs, false)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "INFO TRN2000 example.py:1: class-level statement ignored" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "WARNING TRN2001 example.py:2-3: unsupported comparison operator 'in'" {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestFormatShort_FileMissingFromSet(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{
		Severity: SevError, Code: IOLoadFileError,
		Message: "failed to load file: open a.py: no such file",
	}}
	got := FormatShort(diags, fs, false)
	want := "ERROR IO0100 :0: failed to load file: open a.py: no such file"
	if got != want {
		t.Errorf("FormatShort = %q, want %q", got, want)
	}
}

func TestFormatShort_Notes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("example.py", []byte("x = 1"))
	d := Diagnostic{
		Severity: SevWarning, Code: TranslateDuplicateName,
		Primary: source.LineSpan{File: id, Start: 4, End: 4},
		Message: "duplicate definition of 'f'",
	}.WithNote(source.LineSpan{File: id, Start: 1, End: 1}, "first defined here")

	out := FormatShort([]Diagnostic{d}, fs, true)
	if !strings.Contains(out, "\n  note 1: first defined here") {
		t.Errorf("note missing:\n%s", out)
	}
}
