package ast

import "github.com/birendpatel/lemon/pkg/symbol"

// Import is one "import" clause. Entry is backfilled once the imported
// module has been resolved to a Module symbol.
type Import struct {
	Alias string
	Entry *symbol.Symbol
	Line  int
}

func (*Import) isNode() {}

// Module is the root AST node for one compilation unit, one per source
// file. Next threads modules into the dependency graph's topological
// order; Table is backfilled by the symbol resolver once this module has
// been walked. Errors counts parser-reported diagnostics against this
// module: a nonzero count turns parsing into a User-reported failure for
// this file (see the parser's error-handling contract).
type Module struct {
	Alias        string
	Imports      []*Import
	Declarations []Decl
	Next         *Module
	Table        *symbol.SymTable
	Errors       int
}

func (*Module) isNode() {}
