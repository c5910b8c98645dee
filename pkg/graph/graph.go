// Package graph implements the dependency resolver of spec.md §4.4: a
// single depth-first traversal that discovers every module transitively
// reachable from one root file, detects circular imports, and threads
// the discovered modules into an intrusive topological list via
// ast.Module.Next.
//
// Grounded on amolbrkr-quark-lang's loader.go, which resolves the same
// problem (transitive file-based imports, cycle detection via an
// in-progress set, a DFS stack for chain reporting) with a
// resolving/loaded map pair; this package keeps that two-state shape
// but replaces quark-lang's "splice into one shared AST" strategy with
// an explicit intrusive linked list, matching the vertex flag and
// append-on-DFS-exit algorithm spec.md §4.4 specifies exactly.
package graph

import (
	"path/filepath"

	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/diag"
	"github.com/birendpatel/lemon/pkg/parser"
	"github.com/birendpatel/lemon/pkg/source"
)

// state is the two-state vertex flag of spec.md §4.4 (OQ-3): a module
// absent from the graph is implicitly unmarked, present+onStack means
// "currently being resolved" (its imports are still being walked), and
// present+offStack means "fully resolved and already appended".
type state int

const (
	onStack state = iota
	offStack
)

// vertex pairs a discovered module with its current DFS flag.
type vertex struct {
	module *ast.Module
	state  state
}

// Graph builds the topological module order for one compilation
// starting at a root file path. It is not safe for concurrent use nor
// reuse across multiple builds; construct one per Build call.
type Graph struct {
	log    *diag.Log
	trace  diag.Trace
	byPath map[string]*vertex
	stack  []string
	head   *ast.Module
	tail   *ast.Module
}

// Build performs the DFS of spec.md §4.4 starting at rootPath and
// returns the head of the intrusive topological list on success.
// Failure modes are reported as *diag.CompileError with Kind IO, User
// (parser reported errors), or Cycle, matching spec.md §4.4's failure
// modes exactly; each is fatal for the whole compilation and no partial
// module list is returned.
func Build(rootPath string, log *diag.Log, trace diag.Trace) (*ast.Module, error) {
	g := &Graph{log: log, trace: trace, byPath: make(map[string]*vertex)}

	if _, err := g.insert(rootPath); err != nil {
		return nil, err
	}

	return g.head, nil
}

// insert implements the recursive Insert(path) of spec.md §4.4.
func (g *Graph) insert(path string) (state, error) {
	if v, ok := g.byPath[path]; ok {
		return v.state, nil
	}

	file, err := source.ReadFile(path)
	if err != nil {
		return onStack, diag.NewCompileError(diag.IO, "cannot read %q: %s", path, err)
	}

	module := parser.Parse(file, g.log)

	v := &vertex{module: module, state: onStack}
	g.byPath[path] = v
	g.stack = append(g.stack, path)

	g.trace.PassEntered("graph:" + path)

	if module.Errors > 0 {
		g.stack = g.stack[:len(g.stack)-1]
		return onStack, diag.NewCompileError(diag.User, "%q failed to parse", path)
	}

	for _, imp := range module.Imports {
		childPath := resolveImportPath(path, imp.Alias)

		childState, err := g.insert(childPath)
		if err != nil {
			return onStack, err
		}

		if childState == onStack {
			g.stack = g.stack[:len(g.stack)-1]
			return onStack, diag.NewCompileError(diag.Cycle, "circular import: %s -> %s", path, childPath)
		}
	}

	g.stack = g.stack[:len(g.stack)-1]

	g.append(module)
	v.state = offStack
	g.trace.PassExited("graph:" + path)

	return offStack, nil
}

// append threads module onto the tail of the intrusive topological
// list, matching spec.md §4.4 step 4's "append = thread the previously
// appended module's next to this one; head is this module if none has
// been appended yet".
func (g *Graph) append(module *ast.Module) {
	if g.head == nil {
		g.head = module
		g.tail = module

		return
	}

	g.tail.Next = module
	g.tail = module
}

// resolveImportPath resolves an import's bare module name against the
// directory of the file that imported it. Bare names are suffixed with
// ".lem" by source.ReadFile itself (spec.md §6's disk-name rule); this
// function only joins the importing file's directory onto the name, so
// "import \"dep\";" in a file under a/ resolves to a/dep.lem.
func resolveImportPath(fromPath, alias string) string {
	return filepath.Join(filepath.Dir(fromPath), alias)
}
