package cmd

import (
	"fmt"
	"os"

	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/diag"
	"github.com/birendpatel/lemon/pkg/graph"
	"github.com/birendpatel/lemon/pkg/parser"
	"github.com/birendpatel/lemon/pkg/resolve"
	"github.com/birendpatel/lemon/pkg/source"
)

// runBuild runs the full pipeline (scan -> parse -> resolve dependencies
// -> resolve symbols) over each file independently, one root module per
// path, and reports diagnostics for all of them before returning an
// overall process exit code: 0 if every file compiled clean, 1 if any
// file failed.
func runBuild(paths []string, trace diag.Trace) int {
	code := 0

	for _, path := range paths {
		if !compileFile(path, trace) {
			code = 1
		}
	}

	return code
}

// compileFile builds and resolves one root module, flushing its
// diagnostics to standard error, and reports whether it compiled
// without error.
func compileFile(path string, trace diag.Trace) bool {
	trace.PassEntered("cmd:" + path)
	defer trace.PassExited("cmd:" + path)

	log := diag.NewLog()
	log.SetColor(colorEnabled)

	head, err := graph.Build(path, log, trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		log.Flush(colorEnabled)

		return false
	}

	resolve.Resolve(head, log, trace)

	ok := log.ErrorCount() == 0
	log.Flush(colorEnabled)

	return ok
}

// colorEnabled gates ANSI coloring of flushed diagnostics; set from the
// root command's --color flag before any pipeline runs.
var colorEnabled = true

// resolveBuffer parses and symbol-resolves an in-memory buffer as a single
// module (the REPL never touches disk, so graph.Build is skipped and
// imports are not loaded), returning the resolved module and whether it
// compiled without error.
func resolveBuffer(name string, contents []byte, trace diag.Trace) (*ast.Module, bool) {
	log := diag.NewLog()
	log.SetColor(colorEnabled)
	file := source.NewFile(name, contents)

	module := parser.Parse(file, log)
	resolve.Resolve(module, log, trace)

	ok := log.ErrorCount() == 0
	log.Flush(colorEnabled)

	return module, ok
}
