package resolve

import (
	"strings"
	"testing"

	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/diag"
	"github.com/birendpatel/lemon/pkg/parser"
	"github.com/birendpatel/lemon/pkg/source"
	"github.com/birendpatel/lemon/pkg/symbol"
)

func parseModule(t *testing.T, name, src string) (*ast.Module, *diag.Log) {
	t.Helper()

	file := source.NewFile(name, []byte(src))
	log := diag.NewLog()

	return parser.Parse(file, log), log
}

func messages(log *diag.Log) []string {
	var out []string

	for _, d := range log.Diagnostics() {
		out = append(out, d.Message)
	}

	return out
}

func containsSubstring(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}

	return false
}

func TestResolve_GlobalTableCarriesNativesAndBuiltins(t *testing.T) {
	module, log := parseModule(t, "test.lem", `func f() {}`)

	global := Resolve(module, log, diag.Trace{})

	for _, name := range []string{"int32", "bool", "string", "addr"} {
		if _, _, err := symbol.Lookup(global, name); err != nil {
			t.Fatalf("expected native %q in global table", name)
		}
	}

	for _, name := range []string{"assert", "print", "sizeof"} {
		if _, _, err := symbol.Lookup(global, name); err != nil {
			t.Fatalf("expected builtin function %q in global table", name)
		}
	}
}

func TestResolve_VariableRedeclarationReportsPreviousLine(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		let x = 1;
		let x = 2;
	`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() == 0 {
		t.Fatalf("expected a redeclaration error")
	}

	if !containsSubstring(messages(log), "previously declared on line 2") {
		t.Fatalf("expected message to cite line 2, got: %v", messages(log))
	}
}

func TestResolve_UndeclaredIdentifierReported(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f() {
			let x = y;
		}
	`)

	Resolve(module, log, diag.Trace{})

	if !containsSubstring(messages(log), `undeclared identifier "y"`) {
		t.Fatalf("expected undeclared identifier diagnostic, got: %v", messages(log))
	}
}

func TestResolve_BaseTypeResolvesToNative(t *testing.T) {
	module, log := parseModule(t, "test.lem", `func f(a: int32) {}`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}

	fn := module.Declarations[0].(*ast.Function)
	base := fn.Params[0].Type.(*ast.Base)

	if base.Entry == nil || base.Entry.Bytes != 4 {
		t.Fatalf("expected int32 to resolve to a 4-byte native, got %+v", base.Entry)
	}
}

func TestResolve_CastResolvesOperandAndType(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f(a: int64) {
			let x = a as int32;
		}
	`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}

	fn := module.Declarations[0].(*ast.Function)
	decl := fn.Block.Fiats[0].(ast.DeclFiat).Decl.(*ast.Variable)
	cast := decl.Value.(*ast.Cast)

	base := cast.CastType.(*ast.Base)
	if base.Entry == nil || base.Entry.Bytes != 4 {
		t.Fatalf("expected cast type int32 to resolve to a 4-byte native, got %+v", base.Entry)
	}
}

func TestResolve_CastWithUndeclaredOperandReported(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f() {
			let x = y as int32;
		}
	`)

	Resolve(module, log, diag.Trace{})

	if !containsSubstring(messages(log), `undeclared identifier "y"`) {
		t.Fatalf("expected undeclared identifier diagnostic, got: %v", messages(log))
	}
}

func TestResolve_UdtByteSizeSumsMembers(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		struct Point {
			x: int32;
			y: int64
		}
	`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}

	udt := module.Declarations[0].(*ast.Udt)

	if udt.Entry == nil || udt.Entry.Bytes != 12 {
		t.Fatalf("expected Point to total 12 bytes, got %+v", udt.Entry)
	}
}

func TestResolve_UdtRedeclarationReportsPreviousLine(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		struct Point { x: int32 }
		struct Point { y: int32 }
	`)

	Resolve(module, log, diag.Trace{})

	if !containsSubstring(messages(log), "previously declared on line 2") {
		t.Fatalf("expected redeclaration to cite line 2, got: %v", messages(log))
	}
}

func TestResolve_ForLoopShortVarScopedToLoop(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f() {
			for let i = 0; i < 10; i = i + 1 {
				let j = i;
			}
		}
	`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}
}

func TestResolve_BranchShortVarVisibleToBothArms(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f() {
			if let ok = 1; ok {
				let a = ok;
			} else {
				let b = ok;
			}
		}
	`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}
}

func TestResolve_GotoForwardLabelResolves(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f() {
			goto done;
			label done: return;
		}
	`)

	Resolve(module, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}
}

func TestResolve_GotoUndeclaredLabelReported(t *testing.T) {
	module, log := parseModule(t, "test.lem", `
		func f() {
			goto nowhere;
		}
	`)

	Resolve(module, log, diag.Trace{})

	if !containsSubstring(messages(log), `undeclared label "nowhere"`) {
		t.Fatalf("expected undeclared label diagnostic, got: %v", messages(log))
	}
}

func TestResolve_NamedQualifiedPrivateTypeRejected(t *testing.T) {
	shapes, shapesLog := parseModule(t, "shapes.lem", `struct Circle { r: int32 }`)
	main, mainLog := parseModule(t, "main.lem", `
		import "shapes";
		func f(c: shapes.Circle) {}
	`)
	shapes.Next = main

	log := diag.NewLog()
	Resolve(shapes, log, diag.Trace{})

	if shapesLog.ErrorCount() != 0 || mainLog.ErrorCount() != 0 {
		t.Fatalf("unexpected parse errors")
	}

	if !containsSubstring(messages(log), "reference to private type") {
		t.Fatalf("expected a private-type diagnostic, got: %v", messages(log))
	}
}

func TestResolve_NamedQualifiedPublicTypeAccepted(t *testing.T) {
	shapes, _ := parseModule(t, "shapes.lem", `pub struct Circle { r: int32 }`)
	main, _ := parseModule(t, "main.lem", `
		import "shapes";
		func f(c: shapes.Circle) {}
	`)
	shapes.Next = main

	log := diag.NewLog()
	Resolve(shapes, log, diag.Trace{})

	if log.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", messages(log))
	}

	fn := main.Declarations[0].(*ast.Function)
	named := fn.Params[0].Type.(*ast.Named)
	base := named.Reference.(*ast.Base)

	if base.Entry == nil || base.Entry.Kind.String() != "udt" {
		t.Fatalf("expected Circle to resolve to a Udt symbol, got %+v", base.Entry)
	}
}

func TestResolve_NamedQualifiedNativeIsRedundant(t *testing.T) {
	shapes, _ := parseModule(t, "shapes.lem", `func f() {}`)
	main, _ := parseModule(t, "main.lem", `
		import "shapes";
		func g(n: shapes.int32) {}
	`)
	shapes.Next = main

	log := diag.NewLog()
	Resolve(shapes, log, diag.Trace{})

	if !containsSubstring(messages(log), "is redundant") {
		t.Fatalf("expected a redundant-native-qualifier diagnostic, got: %v", messages(log))
	}
}
