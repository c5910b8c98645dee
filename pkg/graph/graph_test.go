package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/diag"
)

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name+".lem")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write %s: %s", path, err)
	}

	return path
}

func collect(head *ast.Module) []*ast.Module {
	var out []*ast.Module

	for m := head; m != nil; m = m.Next {
		out = append(out, m)
	}

	return out
}

func TestBuild_SingleFileNoImports(t *testing.T) {
	dir := t.TempDir()
	root := writeModule(t, dir, "root", `func main() {}`)

	log := diag.NewLog()

	head, err := Build(root, log, diag.Trace{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	modules := collect(head)
	if len(modules) != 1 {
		t.Fatalf("expected exactly 1 module, got %d", len(modules))
	}
}

func TestBuild_ImportOrderPrecedesImporter(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "dep", `func helper() {}`)
	root := writeModule(t, dir, "root", `
		import "dep";
		func main() {}
	`)

	log := diag.NewLog()

	head, err := Build(root, log, diag.Trace{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	modules := collect(head)
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}

	dep := modules[0].Declarations[0].(*ast.Function)
	if dep.Name != "helper" {
		t.Fatalf("expected dep to be topologically first, got %+v", modules[0])
	}
}

func TestBuild_DiamondImportVisitsSharedDepOnce(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "base", `func baseFn() {}`)
	writeModule(t, dir, "left", `
		import "base";
		func leftFn() {}
	`)
	writeModule(t, dir, "right", `
		import "base";
		func rightFn() {}
	`)
	root := writeModule(t, dir, "root", `
		import "left";
		import "right";
		func main() {}
	`)

	log := diag.NewLog()

	head, err := Build(root, log, diag.Trace{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	modules := collect(head)
	if len(modules) != 4 {
		t.Fatalf("expected base+left+right+root = 4 modules, got %d", len(modules))
	}

	if modules[0].Declarations[0].(*ast.Function).Name != "baseFn" {
		t.Fatalf("expected shared dependency 'base' first, got %+v", modules[0])
	}
}

func TestBuild_CycleIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", `import "b";`)
	writeModule(t, dir, "b", `import "a";`)

	log := diag.NewLog()

	_, err := Build(filepath.Join(dir, "a.lem"), log, diag.Trace{})
	if err == nil {
		t.Fatalf("expected a Cycle error")
	}

	compileErr, ok := err.(*diag.CompileError)
	if !ok {
		t.Fatalf("expected *diag.CompileError, got %T", err)
	}

	if compileErr.Kind() != diag.Cycle {
		t.Fatalf("expected Kind() == Cycle, got %s", compileErr.Kind())
	}
}

func TestBuild_MissingImportIsIOFailure(t *testing.T) {
	dir := t.TempDir()
	root := writeModule(t, dir, "root", `import "missing";`)

	log := diag.NewLog()

	_, err := Build(root, log, diag.Trace{})
	if err == nil {
		t.Fatalf("expected an IO error")
	}

	compileErr := err.(*diag.CompileError)
	if compileErr.Kind() != diag.IO {
		t.Fatalf("expected Kind() == IO, got %s", compileErr.Kind())
	}
}

func TestBuild_ParseFailurePropagatesAsUserError(t *testing.T) {
	dir := t.TempDir()
	root := writeModule(t, dir, "root", `struct {}`)

	log := diag.NewLog()

	_, err := Build(root, log, diag.Trace{})
	if err == nil {
		t.Fatalf("expected a User error")
	}

	compileErr := err.(*diag.CompileError)
	if compileErr.Kind() != diag.User {
		t.Fatalf("expected Kind() == User, got %s", compileErr.Kind())
	}

	if log.ErrorCount() == 0 {
		t.Fatalf("expected the parser's syntax errors to be in the log")
	}
}
