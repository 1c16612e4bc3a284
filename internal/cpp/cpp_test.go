package cpp

import (
	"strings"
	"testing"

	"catalyst/internal/source"
	"catalyst/internal/types"
)

func TestCollectionDeclarations(t *testing.T) {
	vec := NewVector("t", types.Int, []string{"1", "2", "3"})
	if got, want := vec.Declaration(), "std::vector<int > t = { 1, 2, 3 };"; got != want {
		t.Errorf("vector declaration = %q, want %q", got, want)
	}

	tup := NewTuple("p", []types.Tag{types.Int, types.Str}, []string{"1", `"a"`})
	if got, want := tup.Declaration(), `std::tuple<int , std::string > p = std::make_tuple(1, "a");`; got != want {
		t.Errorf("tuple declaration = %q, want %q", got, want)
	}
	if got, want := tup.Access(1), "std::get<1>(p)"; got != want {
		t.Errorf("tuple access = %q, want %q", got, want)
	}

	set := NewSet("s", types.Float, []string{"1.0"})
	if got, want := set.Declaration(), "std::unordered_set<double > s = { 1.0 };"; got != want {
		t.Errorf("set declaration = %q, want %q", got, want)
	}
}

func TestCodeLineFormat_Closers(t *testing.T) {
	line := NewCodeLine(3, 3, 0, 2, "x = 1;")
	line.Closers = 2
	got := line.Format("  ")
	want := "    x = 1;\n  }\n}"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestCodeLineFormat_TrailingComment(t *testing.T) {
	line := NewCodeLine(1, 1, 0, 1, "int x = 5;")
	line.Comment = "seed value"
	got := line.Format("    ")
	want := "    int x = 5;\t// seed value"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFunctionSignatures(t *testing.T) {
	fn := NewFunction("scale", source.LineSpan{Start: 1, End: 2})
	fn.AddParam(NewVariable("x", 0, types.Int), "")
	fn.AddParam(NewVariable("k", 0, types.Float), "2.0")
	fn.Return.Set(types.Float)

	if got, want := fn.Signature(), "double scale(int x, double k=2.0)"; got != want {
		t.Errorf("Signature = %q, want %q", got, want)
	}
	if got, want := fn.ForwardDeclaration(), "double scale(int x, double k)"; got != want {
		t.Errorf("ForwardDeclaration = %q, want %q", got, want)
	}
}

func TestEntryFunction_RendersAsMain(t *testing.T) {
	file := NewFile("example")
	entry := file.Entry()
	if entry == nil {
		t.Fatal("new file has no entry function")
	}
	if got, want := entry.Signature(), "int main(int argc, char **argv)"; got != want {
		t.Fatalf("entry signature = %q, want %q", got, want)
	}
	entry.AddLine(NewCodeLine(1, 1, 0, 1, "int x = 5;"))

	text := entry.Text("    ")
	if !strings.Contains(text, "int main(int argc, char **argv)\n{\n    int x = 5;\n") {
		t.Errorf("entry text missing body: %q", text)
	}
	if !strings.Contains(text, "    return 0;\n}") {
		t.Errorf("entry text missing implicit return: %q", text)
	}
}

func TestConstructorSignature_NoReturnSpelling(t *testing.T) {
	fn := NewFunction("__init__", source.LineSpan{Start: 2, End: 3})
	fn.Return.Set(types.Constructor)
	fn.AddParam(NewVariable("x", 0, types.Int), "")
	if got, want := fn.SignatureAs("Point", true), "Point(int x)"; got != want {
		t.Errorf("constructor signature = %q, want %q", got, want)
	}
}

func TestFile_DuplicateRegistrationRejected(t *testing.T) {
	file := NewFile("example")
	first := NewFunction("f", source.LineSpan{Start: 1, End: 1})
	if !file.AddFunction("f", first) {
		t.Fatal("first registration rejected")
	}
	second := NewFunction("f", source.LineSpan{Start: 5, End: 5})
	if file.AddFunction("f", second) {
		t.Fatal("duplicate registration accepted")
	}
	got, _ := file.Function("f")
	if got != first {
		t.Fatal("duplicate overwrote the original function")
	}
}

func TestFile_TextOrder(t *testing.T) {
	file := NewFile("example")
	file.AddInclude("iostream")
	file.AddInclude("iostream") // dedup
	file.AddInclude("cmath")

	fn := NewFunction("helper", source.LineSpan{Start: 1, End: 2})
	fn.Return.Set(types.Int)
	fn.AddLine(NewCodeLine(2, 2, 0, 1, "return 1;"))
	file.AddFunction("helper", fn)

	cls := NewClass("Point", source.LineSpan{Start: 4, End: 6}, nil)
	file.AddClass(cls)

	file.Entry().AddLine(NewCodeLine(8, 8, 0, 1, "std::cout << helper() << std::endl;"))

	text := file.Text("    ")

	mustContainInOrder(t, text,
		"#include <iostream>",
		"#include <cmath>",
		"class Point;",
		"int helper();",
		"class Point",
		"int main(int argc, char **argv)",
		"int helper()",
	)
	if strings.Count(text, "#include <iostream>") != 1 {
		t.Error("include not deduplicated")
	}
}

func TestClass_Text(t *testing.T) {
	cls := NewClass("Circle", source.LineSpan{Start: 1, End: 5}, []string{"Shape"})
	cls.AddAttribute(NewVariable("radius", 0, types.Float))

	ctor := NewFunction("__init__", source.LineSpan{Start: 2, End: 3})
	ctor.Return.Set(types.Constructor)
	ctor.AddParam(NewVariable("radius", 0, types.Float), "")
	ctor.AddLine(NewCodeLine(3, 3, 0, 1, "this->radius = radius;"))
	cls.AddMethod(ctor)

	text := cls.Text("    ")
	mustContainInOrder(t, text,
		"class Circle : public Shape",
		"public:",
		"    double radius;",
		"    Circle(double radius)",
		"this->radius = radius;",
	)
	if strings.Contains(text, "__init__") {
		t.Errorf("constructor kept python name: %q", text)
	}
}

func mustContainInOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	rest := text
	for _, part := range parts {
		idx := strings.Index(rest, part)
		if idx < 0 {
			t.Fatalf("missing or out of order: %q\nin:\n%s", part, text)
		}
		rest = rest[idx+len(part):]
	}
}
