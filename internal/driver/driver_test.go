package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalyst/internal/pipeline"
	"catalyst/internal/pyparse"
	"catalyst/internal/source"
)

func TestOutputPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"main.py", "main.cpp"},
		{"pkg/util.py", "pkg/util.cpp"},
		{"noext", "noext.cpp"},
	}
	for _, tc := range cases {
		if got := OutputPath(tc.in); got != tc.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestListSourceFiles_SortedRecursive(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("b.py")
	mustWrite("a.py")
	mustWrite("sub/c.py")
	mustWrite("readme.md")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("found %d files, want 3: %v", len(files), files)
	}
	want := []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "sub", "c.py"),
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestTranslateFile_RecordsStageTimings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	parser, err := pyparse.NewParser()
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	res, err := TranslateFile(context.Background(), parser, fileSet, id, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, stage := range []pipeline.Stage{pipeline.StageParse, pipeline.StageAnalyze, pipeline.StageRender} {
		if !res.Stages.Has(stage) {
			t.Errorf("stage %s not recorded", stage)
		}
	}
	if res.Stages.Has(pipeline.StageWrite) {
		t.Error("write stage recorded before anything was written")
	}
	if len(res.Timing.Phases) != 3 {
		t.Errorf("timing phases = %d, want 3", len(res.Timing.Phases))
	}
}

func TestWriteOutput_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "deep", "main.cpp")
	if err := WriteOutput(path, "int main() {}\n"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "int main() {}\n" {
		t.Errorf("content = %q", got)
	}
}
