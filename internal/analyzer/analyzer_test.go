package analyzer

import (
	"strings"
	"testing"

	"catalyst/internal/cpp"
	"catalyst/internal/diag"
	"catalyst/internal/pyast"
	"catalyst/internal/source"
	"catalyst/internal/types"
)

func at(line uint32) pyast.Base {
	return pyast.Base{Span: pyast.Pos{Line: line, EndLine: line}}
}

func spanning(start, end uint32) pyast.Base {
	return pyast.Base{Span: pyast.Pos{Line: start, EndLine: end}}
}

func name(line uint32, ident string) *pyast.Name {
	return &pyast.Name{Base: at(line), Ident: ident}
}

func intLit(line uint32, raw string) *pyast.Constant {
	return &pyast.Constant{Base: at(line), Raw: raw, Type: "int"}
}

func strLit(line uint32, raw string) *pyast.Constant {
	return &pyast.Constant{Base: at(line), Raw: raw, Type: "str"}
}

func assign(line uint32, target string, value pyast.Expr) *pyast.Assign {
	return &pyast.Assign{Base: at(line), Target: name(line, target), Value: value}
}

// run analyzes a module built over the given source lines and returns the
// model plus the collected diagnostics.
func run(t *testing.T, lines []string, body ...pyast.Stmt) (*cpp.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("example.py", []byte(strings.Join(lines, "\n")))
	bag := diag.NewBag(64)
	az := New(fs.Get(id), diag.BagReporter{Bag: bag}, Options{})
	file := az.Run(&pyast.Module{Body: body})
	return file, bag
}

func entryCode(t *testing.T, file *cpp.File, line uint32) string {
	t.Helper()
	frag, ok := file.Entry().Lines[line]
	if !ok {
		t.Fatalf("no fragment at line %d", line)
	}
	return frag.Code
}

func TestCallSite_RefinesParameterAndReturn(t *testing.T) {
	def := &pyast.FunctionDef{
		Base:   spanning(1, 2),
		Name:   "double",
		Params: []pyast.Param{{Name: "x"}},
		Body: []pyast.Stmt{
			&pyast.Return{Base: at(2), Value: &pyast.BinOp{
				Base: at(2), Op: pyast.OpMult,
				Left: name(2, "x"), Right: intLit(2, "2"),
			}},
		},
	}
	call := assign(4, "y", &pyast.Call{Base: at(4), Func: name(4, "double"), Args: []pyast.Expr{intLit(4, "5")}})

	file, bag := run(t, []string{"def double(x):", "    return x * 2", "", "y = double(5)"}, def, call)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	fn, ok := file.Function("double")
	if !ok {
		t.Fatal("function not registered")
	}
	if got := fn.Params[0].Var.Type.Tag(); got != types.Int {
		t.Errorf("parameter tag = %s, want int", got)
	}
	if got := fn.Return.Tag(); got != types.Int {
		t.Errorf("return tag = %s, want int", got)
	}
	if got := file.Entry().Variables["y"].Type.Tag(); got != types.Int {
		t.Errorf("y tag = %s, want int", got)
	}
	if got, want := entryCode(t, file, 4), "y = double(5);"; got != want {
		t.Errorf("call fragment = %q, want %q", got, want)
	}
}

func TestRetype_NonWideningFails(t *testing.T) {
	file, bag := run(t,
		[]string{"x = 5", `x = "s"`},
		assign(1, "x", intLit(1, "5")),
		assign(2, "x", strLit(2, "s")),
	)

	if got := file.Entry().Variables["x"].Type.Tag(); got != types.Int {
		t.Errorf("x tag = %s, want int (unchanged)", got)
	}
	frag := file.Entry().Lines[2]
	if frag == nil || frag.Reason == "" {
		t.Fatal("second assignment did not degrade")
	}
	if want := "cannot retype 'x' from int to str"; frag.Reason != want {
		t.Errorf("reason = %q, want %q", frag.Reason, want)
	}
	if !bag.HasWarnings() {
		t.Error("degradation not reported")
	}
}

func TestRetype_FloatAbsorbsInt(t *testing.T) {
	file, bag := run(t,
		[]string{"f = 1.5", "f = 2"},
		assign(1, "f", &pyast.Constant{Base: at(1), Raw: "1.5", Type: "float"}),
		assign(2, "f", intLit(2, "2")),
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if got := file.Entry().Variables["f"].Type.Tag(); got != types.Float {
		t.Errorf("f tag = %s, want float", got)
	}
	if got, want := entryCode(t, file, 2), "f = 2;"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
}

func TestDivision_AlwaysFloat(t *testing.T) {
	file, _ := run(t,
		[]string{"a = 1", "b = 2", "c = a / b"},
		assign(1, "a", intLit(1, "1")),
		assign(2, "b", intLit(2, "2")),
		assign(3, "c", &pyast.BinOp{Base: at(3), Op: pyast.OpDiv, Left: name(3, "a"), Right: name(3, "b")}),
	)
	if got, want := entryCode(t, file, 3), "c = (double)(a / b);"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
	if got := file.Entry().Variables["c"].Type.Tag(); got != types.Float {
		t.Errorf("c tag = %s, want float", got)
	}
}

func TestFloorDivision_CastsOnlyMixedOperands(t *testing.T) {
	file, _ := run(t,
		[]string{"a = 7", "b = 2.0", "c = a // 2", "d = b // 2"},
		assign(1, "a", intLit(1, "7")),
		assign(2, "b", &pyast.Constant{Base: at(2), Raw: "2.0", Type: "float"}),
		assign(3, "c", &pyast.BinOp{Base: at(3), Op: pyast.OpFloorDiv, Left: name(3, "a"), Right: intLit(3, "2")}),
		assign(4, "d", &pyast.BinOp{Base: at(4), Op: pyast.OpFloorDiv, Left: name(4, "b"), Right: intLit(4, "2")}),
	)
	if got, want := entryCode(t, file, 3), "c = (a / 2);"; got != want {
		t.Errorf("int//int fragment = %q, want %q", got, want)
	}
	if got, want := entryCode(t, file, 4), "d = (int)(b / 2);"; got != want {
		t.Errorf("float//int fragment = %q, want %q", got, want)
	}
}

func TestIfElse_BlockLayout(t *testing.T) {
	cond := &pyast.Compare{
		Base: at(2), Left: name(2, "x"),
		Ops:         []pyast.CmpKind{pyast.CmpGt},
		Comparators: []pyast.Expr{intLit(2, "0")},
	}
	ifStmt := &pyast.If{
		Base:     pyast.Base{Span: pyast.Pos{Line: 2, EndLine: 5}},
		Test:     cond,
		Body:     []pyast.Stmt{assign(3, "y", intLit(3, "1"))},
		ElseLine: 4,
		Else:     []pyast.Stmt{assign(5, "y", intLit(5, "2"))},
	}
	file, _ := run(t,
		[]string{"x = 1", "if x > 0:", "    y = 1", "else:", "    y = 2"},
		assign(1, "x", intLit(1, "1")),
		ifStmt,
	)

	entry := file.Entry()
	if got, want := entry.Lines[2].Code, "if ((x > 0)) {"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if entry.Lines[3].Closers != 1 {
		t.Errorf("then-branch closers = %d, want 1", entry.Lines[3].Closers)
	}
	if got, want := entry.Lines[4].Code, "else {"; got != want {
		t.Errorf("else header = %q, want %q", got, want)
	}
	if entry.Lines[5].Closers != 1 {
		t.Errorf("else-branch closers = %d, want 1", entry.Lines[5].Closers)
	}
}

func TestElif_RendersAsElseIf(t *testing.T) {
	inner := &pyast.If{
		Base: pyast.Base{Span: pyast.Pos{Line: 5, EndLine: 6}},
		Test: name(5, "b"),
		Body: []pyast.Stmt{assign(6, "y", intLit(6, "2"))},
		Elif: true,
	}
	outer := &pyast.If{
		Base:     pyast.Base{Span: pyast.Pos{Line: 3, EndLine: 6}},
		Test:     name(3, "a"),
		Body:     []pyast.Stmt{assign(4, "y", intLit(4, "1"))},
		ElseLine: 5,
		Else:     []pyast.Stmt{inner},
	}
	file, bag := run(t,
		[]string{"a = 1", "b = 1", "if a:", "    y = 1", "elif b:", "    y = 2"},
		assign(1, "a", intLit(1, "1")),
		assign(2, "b", intLit(2, "1")),
		outer,
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	header := file.Entry().Lines[5]
	if header == nil {
		t.Fatal("no elif header fragment")
	}
	if got, want := header.Code, "else if (b) {"; got != want {
		t.Errorf("elif header = %q, want %q", got, want)
	}
	if file.Entry().Lines[6].Closers != 1 {
		t.Errorf("elif branch closers = %d, want 1", file.Entry().Lines[6].Closers)
	}
}

func TestVectorAppend_TypeMismatchDegrades(t *testing.T) {
	file, bag := run(t,
		[]string{"v = [1, 2]", `v.append("x")`, "v.append(3)"},
		assign(1, "v", &pyast.List{Base: at(1), Elts: []pyast.Expr{intLit(1, "1"), intLit(1, "2")}}),
		&pyast.ExprStmt{Base: at(2), Value: &pyast.Call{
			Base: at(2),
			Func: &pyast.Attribute{Base: at(2), Value: name(2, "v"), Attr: "append"},
			Args: []pyast.Expr{strLit(2, "x")},
		}},
		&pyast.ExprStmt{Base: at(3), Value: &pyast.Call{
			Base: at(3),
			Func: &pyast.Attribute{Base: at(3), Value: name(3, "v"), Attr: "append"},
			Args: []pyast.Expr{intLit(3, "3")},
		}},
	)

	if got, want := entryCode(t, file, 1), "std::vector<int > v = { 1, 2 };"; got != want {
		t.Errorf("declaration = %q, want %q", got, want)
	}
	if frag := file.Entry().Lines[2]; frag.Reason != "cannot append str to vector 'v' of int" {
		t.Errorf("mismatch reason = %q", frag.Reason)
	}
	if got, want := entryCode(t, file, 3), "v.push_back(3);"; got != want {
		t.Errorf("append fragment = %q, want %q", got, want)
	}
	if got := file.Entry().Vectors["v"].Elem.Tag(); got != types.Int {
		t.Errorf("element tag = %s, want int (unchanged)", got)
	}
	if !bag.HasWarnings() {
		t.Error("mismatch not reported")
	}
}

func TestForRange_HeaderAndLoopVar(t *testing.T) {
	loop := &pyast.For{
		Base:   pyast.Base{Span: pyast.Pos{Line: 1, EndLine: 2}},
		Target: name(1, "i"),
		Iter: &pyast.Call{Base: at(1), Func: name(1, "range"), Args: []pyast.Expr{
			intLit(1, "1"), intLit(1, "10"), intLit(1, "2"),
		}},
		Body: []pyast.Stmt{
			&pyast.ExprStmt{Base: at(2), Value: &pyast.Call{
				Base: at(2), Func: name(2, "print"), Args: []pyast.Expr{name(2, "i")},
			}},
		},
	}
	file, bag := run(t, []string{"for i in range(1, 10, 2):", "    print(i)"}, loop)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if got, want := entryCode(t, file, 1), "for (int i = 1; i < 10; i += 2) {"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if got, want := entryCode(t, file, 2), "std::cout << i << std::endl;"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if file.Entry().Lines[2].Closers != 1 {
		t.Error("loop body missing closing brace")
	}
	if got := file.Entry().Variables["i"].Type.Tag(); got != types.Int {
		t.Errorf("loop var tag = %s, want int", got)
	}
	if file.Entry().Variables["i"].Line != 0 {
		t.Error("loop var must not be retyped by the declaration pass")
	}
}

func TestMembershipTest_PassThroughVerbatim(t *testing.T) {
	ifStmt := &pyast.If{
		Base: pyast.Base{Span: pyast.Pos{Line: 2, EndLine: 3}},
		Test: &pyast.Compare{
			Base: at(2), Left: name(2, "x"),
			Ops:         []pyast.CmpKind{pyast.CmpIn},
			Comparators: []pyast.Expr{name(2, "y")},
		},
		Body: []pyast.Stmt{&pyast.Pass{Base: at(3)}},
	}
	file, bag := run(t,
		[]string{"x = 1", "if x in y:", "    pass"},
		assign(1, "x", intLit(1, "1")),
		ifStmt,
	)

	frag := file.Entry().Lines[2]
	if frag == nil {
		t.Fatal("no pass-through fragment")
	}
	want := "// unsupported comparison operator 'in'\n    // if x in y:\n    //     pass"
	if frag.Code != want {
		t.Errorf("pass-through = %q, want %q", frag.Code, want)
	}
	if frag.Start != 2 || frag.End != 3 {
		t.Errorf("pass-through span = %d-%d, want 2-3", frag.Start, frag.End)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.TranslatePassThrough {
			found = true
		}
	}
	if !found {
		t.Error("pass-through not reported")
	}
}

func TestClass_ConstructorAndMethod(t *testing.T) {
	ctor := &pyast.FunctionDef{
		Base:   spanning(2, 3),
		Name:   "__init__",
		Params: []pyast.Param{{Name: "self"}, {Name: "x"}},
		Body: []pyast.Stmt{
			&pyast.Assign{
				Base:   at(3),
				Target: &pyast.Attribute{Base: at(3), Value: name(3, "self"), Attr: "x"},
				Value:  name(3, "x"),
			},
		},
	}
	getter := &pyast.FunctionDef{
		Base:   spanning(4, 5),
		Name:   "get",
		Params: []pyast.Param{{Name: "self"}},
		Body: []pyast.Stmt{
			&pyast.Return{Base: at(5), Value: &pyast.Attribute{Base: at(5), Value: name(5, "self"), Attr: "x"}},
		},
	}
	cls := &pyast.ClassDef{Base: spanning(1, 5), Name: "Point", Body: []pyast.Stmt{ctor, getter}}

	file, bag := run(t,
		[]string{"class Point:", "    def __init__(self, x):", "        self.x = x", "    def get(self):", "        return self.x"},
		cls,
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	ctorFn, ok := file.Function("Point::__init__")
	if !ok {
		t.Fatal("constructor not registered under qualified key")
	}
	if got := ctorFn.Return.Tag(); got != types.Constructor {
		t.Errorf("constructor return = %s, want constructor sentinel", got)
	}
	if len(ctorFn.Params) != 1 || ctorFn.Params[0].Var.Name != "x" {
		t.Fatalf("self not stripped from params: %+v", ctorFn.Params)
	}
	if got, want := ctorFn.Lines[3].Code, "this->x = x;"; got != want {
		t.Errorf("ctor body = %q, want %q", got, want)
	}

	point, ok := file.Class("Point")
	if !ok {
		t.Fatal("class not registered")
	}
	if _, ok := point.Attributes["x"]; !ok {
		t.Fatal("attribute x not discovered")
	}
	getFn, _ := file.Function("Point::get")
	if got, want := getFn.Lines[5].Code, "return this->x;"; got != want {
		t.Errorf("method body = %q, want %q", got, want)
	}
}

func TestDuplicateFunction_SecondDefinitionIgnored(t *testing.T) {
	first := &pyast.FunctionDef{
		Base: spanning(1, 2), Name: "f",
		Body: []pyast.Stmt{&pyast.Return{Base: at(2), Value: intLit(2, "1")}},
	}
	second := &pyast.FunctionDef{
		Base: spanning(4, 5), Name: "f",
		Body: []pyast.Stmt{&pyast.Return{Base: at(5), Value: strLit(5, "two")}},
	}
	file, bag := run(t,
		[]string{"def f():", "    return 1", "", "def f():", `    return "two"`},
		first, second,
	)

	fn, _ := file.Function("f")
	if got := fn.Return.Tag(); got != types.Int {
		t.Errorf("survivor return = %s, want int (duplicate body leaked)", got)
	}
	if _, ok := fn.Lines[5]; ok {
		t.Error("duplicate body translated into survivor")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.TranslateDuplicateName {
			found = true
		}
	}
	if !found {
		t.Error("duplicate not reported")
	}
}

func TestTranslation_Deterministic(t *testing.T) {
	build := func() (*cpp.File, *diag.Bag) {
		return run(t,
			[]string{"x = 1", "if x in y:", "    pass", "z = x + 1"},
			assign(1, "x", intLit(1, "1")),
			&pyast.If{
				Base: pyast.Base{Span: pyast.Pos{Line: 2, EndLine: 3}},
				Test: &pyast.Compare{
					Base: at(2), Left: name(2, "x"),
					Ops:         []pyast.CmpKind{pyast.CmpIn},
					Comparators: []pyast.Expr{name(2, "y")},
				},
				Body: []pyast.Stmt{&pyast.Pass{Base: at(3)}},
			},
			assign(4, "z", &pyast.BinOp{Base: at(4), Op: pyast.OpAdd, Left: name(4, "x"), Right: intLit(4, "1")}),
		)
	}
	fileA, _ := build()
	fileB, _ := build()
	if a, b := fileA.Text("    "), fileB.Text("    "); a != b {
		t.Errorf("same input produced different output:\n%s\n---\n%s", a, b)
	}
}

func TestUndeclaredName_Degrades(t *testing.T) {
	file, _ := run(t,
		[]string{"x = missing + 1"},
		assign(1, "x", &pyast.BinOp{Base: at(1), Op: pyast.OpAdd, Left: name(1, "missing"), Right: intLit(1, "1")}),
	)
	frag := file.Entry().Lines[1]
	if frag == nil || frag.Reason != "'missing' used before declaration" {
		t.Fatalf("reason = %v", frag)
	}
	if _, ok := file.Entry().Variables["x"]; ok {
		t.Error("failed assignment still declared its target")
	}
}

func TestBitwiseOps_TranslateDirectly(t *testing.T) {
	file, bag := run(t,
		[]string{"a = 6", "b = 3", "c = a & b", "d = a << 1"},
		assign(1, "a", intLit(1, "6")),
		assign(2, "b", intLit(2, "3")),
		assign(3, "c", &pyast.BinOp{Base: at(3), Op: pyast.OpBitAnd, Left: name(3, "a"), Right: name(3, "b")}),
		assign(4, "d", &pyast.BinOp{Base: at(4), Op: pyast.OpLShift, Left: name(4, "a"), Right: intLit(4, "1")}),
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if got, want := entryCode(t, file, 3), "c = (a & b);"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
	if got, want := entryCode(t, file, 4), "d = (a << 1);"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
	if got := file.Entry().Variables["c"].Type.Tag(); got != types.Int {
		t.Errorf("c tag = %s, want int", got)
	}
}

func TestElif_FailingTestDegradesOnlyThatArm(t *testing.T) {
	inner := &pyast.If{
		Base: pyast.Base{Span: pyast.Pos{Line: 4, EndLine: 5}},
		Test: &pyast.Compare{
			Base: at(4), Left: name(4, "a"),
			Ops:         []pyast.CmpKind{pyast.CmpIn},
			Comparators: []pyast.Expr{name(4, "y")},
		},
		Body: []pyast.Stmt{assign(5, "x", intLit(5, "2"))},
		Elif: true,
	}
	outer := &pyast.If{
		Base:     pyast.Base{Span: pyast.Pos{Line: 2, EndLine: 5}},
		Test:     name(2, "a"),
		Body:     []pyast.Stmt{assign(3, "x", intLit(3, "1"))},
		ElseLine: 4,
		Else:     []pyast.Stmt{inner},
	}
	file, _ := run(t,
		[]string{"a = 1", "if a:", "    x = 1", "elif a in y:", "    x = 2"},
		assign(1, "a", intLit(1, "1")),
		outer,
	)

	entry := file.Entry()
	if got, want := entry.Lines[2].Code, "if (a) {"; got != want {
		t.Errorf("if header = %q, want %q", got, want)
	}
	if entry.Lines[3] == nil || entry.Lines[3].Closers != 1 {
		t.Error("if body lost its closing brace")
	}
	frag := entry.Lines[4]
	if frag == nil || frag.Reason != "unsupported comparison operator 'in'" {
		t.Fatalf("elif arm did not degrade cleanly: %+v", frag)
	}
	if frag.Start != 4 || frag.End != 5 {
		t.Errorf("degraded span = %d-%d, want 4-5", frag.Start, frag.End)
	}
	want := "// unsupported comparison operator 'in'\n    // elif a in y:\n    //     x = 2"
	if frag.Code != want {
		t.Errorf("pass-through = %q, want %q", frag.Code, want)
	}
}

func TestBooleanChain_TakesCommonOperandType(t *testing.T) {
	file, bag := run(t,
		[]string{"a = 1", "b = 2", "x = a and b", "y = a or 1.5"},
		assign(1, "a", intLit(1, "1")),
		assign(2, "b", intLit(2, "2")),
		assign(3, "x", &pyast.BoolOp{Base: at(3), Op: pyast.OpAnd, Values: []pyast.Expr{name(3, "a"), name(3, "b")}}),
		assign(4, "y", &pyast.BoolOp{Base: at(4), Op: pyast.OpOr, Values: []pyast.Expr{
			name(4, "a"), &pyast.Constant{Base: at(4), Raw: "1.5", Type: "float"},
		}}),
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if got, want := entryCode(t, file, 3), "x = (a && b);"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
	if got := file.Entry().Variables["x"].Type.Tag(); got != types.Int {
		t.Errorf("x tag = %s, want int (matching operands)", got)
	}
	if got := file.Entry().Variables["y"].Type.Tag(); got != types.Auto {
		t.Errorf("y tag = %s, want auto (mixed operands)", got)
	}
}

func TestUnaryOps_YieldInt(t *testing.T) {
	file, bag := run(t,
		[]string{"f = 1.5", "a = -f", "b = ~a", "c = not f"},
		assign(1, "f", &pyast.Constant{Base: at(1), Raw: "1.5", Type: "float"}),
		assign(2, "a", &pyast.UnaryOp{Base: at(2), Op: pyast.OpUSub, Operand: name(2, "f")}),
		assign(3, "b", &pyast.UnaryOp{Base: at(3), Op: pyast.OpInvert, Operand: name(3, "a")}),
		assign(4, "c", &pyast.UnaryOp{Base: at(4), Op: pyast.OpNot, Operand: name(4, "f")}),
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if got, want := entryCode(t, file, 2), "a = (-f);"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
	if got := file.Entry().Variables["a"].Type.Tag(); got != types.Int {
		t.Errorf("a tag = %s, want int", got)
	}
	if got, want := entryCode(t, file, 3), "b = (~a);"; got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
	if got := file.Entry().Variables["c"].Type.Tag(); got != types.Bool {
		t.Errorf("c tag = %s, want bool", got)
	}
}

func TestDivision_MixedOperandsKeepCast(t *testing.T) {
	file, _ := run(t,
		[]string{"a = 1", "b = 2.0", "c = a / b", "d = b / b"},
		assign(1, "a", intLit(1, "1")),
		assign(2, "b", &pyast.Constant{Base: at(2), Raw: "2.0", Type: "float"}),
		assign(3, "c", &pyast.BinOp{Base: at(3), Op: pyast.OpDiv, Left: name(3, "a"), Right: name(3, "b")}),
		assign(4, "d", &pyast.BinOp{Base: at(4), Op: pyast.OpDiv, Left: name(4, "b"), Right: name(4, "b")}),
	)
	if got, want := entryCode(t, file, 3), "c = (double)(a / b);"; got != want {
		t.Errorf("mixed fragment = %q, want %q", got, want)
	}
	if got, want := entryCode(t, file, 4), "d = (b / b);"; got != want {
		t.Errorf("float fragment = %q, want %q", got, want)
	}
}

func TestMethodScope_AttributeShadowsParameter(t *testing.T) {
	ctor := &pyast.FunctionDef{
		Base:   spanning(2, 3),
		Name:   "__init__",
		Params: []pyast.Param{{Name: "self"}, {Name: "x"}},
		Body: []pyast.Stmt{
			&pyast.Assign{
				Base:   at(3),
				Target: &pyast.Attribute{Base: at(3), Value: name(3, "self"), Attr: "x"},
				Value:  name(3, "x"),
			},
		},
	}
	getter := &pyast.FunctionDef{
		Base:   spanning(4, 5),
		Name:   "get",
		Params: []pyast.Param{{Name: "self"}, {Name: "x"}},
		Body: []pyast.Stmt{
			&pyast.Return{Base: at(5), Value: &pyast.BinOp{
				Base: at(5), Op: pyast.OpAdd,
				Left: name(5, "x"), Right: intLit(5, "1"),
			}},
		},
	}
	cls := &pyast.ClassDef{Base: spanning(1, 5), Name: "Point", Body: []pyast.Stmt{ctor, getter}}

	file, bag := run(t,
		[]string{"class Point:", "    def __init__(self, x):", "        self.x = x", "    def get(self, x):", "        return x + 1"},
		cls,
	)
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	// Inside the constructor the attribute does not exist yet when the
	// value is read, so the parameter resolves bare.
	ctorFn, _ := file.Function("Point::__init__")
	if got, want := ctorFn.Lines[3].Code, "this->x = x;"; got != want {
		t.Errorf("ctor body = %q, want %q", got, want)
	}

	// Afterwards the class attribute shadows the same-named parameter and
	// renders as a member access.
	getFn, _ := file.Function("Point::get")
	if got, want := getFn.Lines[5].Code, "return (this->x + 1);"; got != want {
		t.Errorf("method body = %q, want %q", got, want)
	}
}

func TestDocstring_BecomesBlockComment(t *testing.T) {
	doc := &pyast.ExprStmt{
		Base:  spanning(1, 1),
		Value: strLit(1, "module summary"),
	}
	file, _ := run(t, []string{`"""module summary"""`}, doc)
	frag := file.Entry().Lines[1]
	if frag == nil {
		t.Fatal("no docstring fragment")
	}
	want := "/*\n    module summary\n    */"
	if frag.Code != want {
		t.Errorf("docstring = %q, want %q", frag.Code, want)
	}
}
