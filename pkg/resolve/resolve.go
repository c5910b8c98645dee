// Package resolve implements spec.md §4.6's symbol resolver: a single
// pass over the topologically ordered module list produced by pkg/graph,
// binding every name use to the symbol.Symbol it declares or imports.
// Because pkg/graph guarantees a module's imports precede it in the
// Next chain, an importer's walk always finds its dependencies' Module
// symbols already installed in the global table.
package resolve

import (
	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/diag"
	"github.com/birendpatel/lemon/pkg/symbol"
)

// pointerBytes is the representation size of any pointer value, equal to
// the native "addr" type's size.
const pointerBytes = 8

// Resolve walks every module reachable from head (in the order pkg/graph
// produced) and populates its symbol table, reporting diagnostics to log
// and internal trace messages via trace. It returns the bootstrapped
// global table (spec.md §4.5's native types plus built-in functions,
// built by symbol.NewGlobal), the root of the scope tree for every
// later phase.
func Resolve(head *ast.Module, log *diag.Log, trace diag.Trace) *symbol.SymTable {
	global := symbol.NewGlobal()

	r := &resolver{global: global, log: log, trace: trace}

	for m := head; m != nil; m = m.Next {
		r.module(m)
	}

	return global
}

// resolver carries the state threaded through one Resolve call: the
// global table every module's table is rooted under, the diagnostic
// sink, and the internal trace flags.
type resolver struct {
	global *symbol.SymTable
	log    *diag.Log
	trace  diag.Trace
}

// module performs the per-module walk of spec.md §4.6: install a Module
// symbol, resolve imports, then resolve every top-level declaration.
func (r *resolver) module(m *ast.Module) {
	r.trace.PassEntered("resolve:" + m.Alias)
	defer r.trace.PassExited("resolve:" + m.Alias)

	table := symbol.Spawn(r.global, symbol.ModuleTag, uint(len(m.Imports)+len(m.Declarations)))
	m.Table = table

	if _, err := symbol.Insert(r.global, m.Alias, symbol.NewModule(table)); err != nil {
		// Two modules sharing an alias can only happen if two distinct
		// files on disk reduce to the same basename; spec.md's own
		// worked examples never exercise this, but the diagnostic is
		// cheap to emit rather than silently shadowing the first.
		r.errorf(m, 0, "module %q redeclared", m.Alias)
	}

	for _, imp := range m.Imports {
		r.resolveImport(m, table, imp)
	}

	for _, decl := range m.Declarations {
		r.resolveDecl(m, table, decl)
	}
}

// resolveImport binds imp.Alias to a fresh Import symbol in table, then
// backfills its Table field to the already-resolved target module's
// table, letting Named type resolution recurse into it directly.
func (r *resolver) resolveImport(m *ast.Module, table *symbol.SymTable, imp *ast.Import) {
	stored, err := symbol.Insert(table, imp.Alias, symbol.NewImport(imp.Line))
	if err != nil {
		r.redeclared(m, table, imp.Alias, imp.Line)
		return
	}

	target, _, err := symbol.Lookup(r.global, imp.Alias)
	if err != nil {
		r.errorf(m, imp.Line, "imported module %q not found", imp.Alias)
		return
	}

	if target.Kind != symbol.ModuleSym {
		r.errorf(m, imp.Line, "imported name %q is not a module", imp.Alias)
		return
	}

	stored.Table = target.Table
	imp.Entry = stored
}

// resolveDecl dispatches a declaration to its kind-specific resolver.
// It is used both for top-level declarations and for DeclFiat entries
// inside a block, since a local Udt/Function/Method/Variable resolves
// identically to a module-level one save for the scope it is inserted
// into.
func (r *resolver) resolveDecl(m *ast.Module, scope *symbol.SymTable, d ast.Decl) {
	switch n := d.(type) {
	case *ast.Udt:
		r.resolveUdt(m, scope, n)
	case *ast.Function:
		r.resolveFunction(m, scope, n)
	case *ast.Method:
		r.resolveMethod(m, scope, n)
	case *ast.Variable:
		r.resolveVariable(m, scope, n)
	}
}

// resolveUdt resolves every member's type against the enclosing scope
// first (so the total byte size is known before the Udt symbol itself
// is constructed), then spawns the member table and binds each member
// as a Field.
func (r *resolver) resolveUdt(m *ast.Module, scope *symbol.SymTable, u *ast.Udt) {
	for _, mem := range u.Members {
		r.resolveType(m, scope, mem.Type, u.Line)
	}

	bytes := 0

	for _, mem := range u.Members {
		if sz, ok := typeBytes(mem.Type); ok {
			bytes += sz
		}
	}

	table := symbol.Spawn(scope, symbol.UdtTag, uint(len(u.Members)))

	if stored, err := symbol.Insert(scope, u.Name, symbol.NewUdt(table, bytes, u.Public, u.Line)); err != nil {
		r.redeclared(m, scope, u.Name, u.Line)
	} else {
		u.Entry = stored
	}

	for _, mem := range u.Members {
		stored, err := symbol.Insert(table, mem.Name, symbol.NewField(mem.Type, mem.Public, u.Line))
		if err != nil {
			r.redeclared(m, table, mem.Name, u.Line)
			continue
		}

		mem.Entry = stored
	}
}

// typeBytes reports the resolved byte size of t, following Named chains
// into their imported Base and treating every Pointer as addr-sized.
// ok is false when a type failed to resolve (Entry left nil), in which
// case the caller should not trust the reported size.
func typeBytes(t ast.Type) (size int, ok bool) {
	switch n := t.(type) {
	case *ast.Base:
		if n.Entry == nil {
			return 0, false
		}

		return n.Entry.Bytes, true
	case *ast.Pointer:
		return pointerBytes, true
	case *ast.Array:
		elem, ok := typeBytes(n.Element)
		if !ok {
			return 0, false
		}

		return elem * n.Len, true
	case *ast.Named:
		return typeBytes(n.Reference)
	default:
		return 0, false
	}
}

// resolveFunction spawns the parameter table, resolves the signature,
// then spawns and resolves the nested block table, per spec.md §4.6
// step 3's "functions and methods spawn their parameter table, then a
// nested block table".
func (r *resolver) resolveFunction(m *ast.Module, scope *symbol.SymTable, f *ast.Function) {
	params := symbol.Spawn(scope, symbol.FunctionTag, uint(len(f.Params)+1))

	if sym, err := symbol.Insert(scope, f.Name, symbol.NewFunction(params, f.Line)); err != nil {
		r.redeclared(m, scope, f.Name, f.Line)
	} else {
		f.Entry = sym
	}

	for _, p := range f.Params {
		r.resolveParam(m, params, p, f.Line)
	}

	if f.Ret != nil {
		r.resolveType(m, scope, f.Ret, f.Line)
	}

	block := symbol.Spawn(params, symbol.BlockTag, uint(len(f.Block.Fiats)))
	r.resolveBlock(m, block, f.Block)
}

// resolveMethod mirrors resolveFunction, additionally binding the
// receiver parameter ahead of the declared parameter list.
func (r *resolver) resolveMethod(m *ast.Module, scope *symbol.SymTable, meth *ast.Method) {
	params := symbol.Spawn(scope, symbol.MethodTag, uint(len(meth.Params)+2))

	if sym, err := symbol.Insert(scope, meth.Name, symbol.NewMethod(params, meth.Line)); err != nil {
		r.redeclared(m, scope, meth.Name, meth.Line)
	} else {
		meth.Entry = sym
	}

	if meth.Recv != nil {
		r.resolveParam(m, params, meth.Recv, meth.Line)
	}

	for _, p := range meth.Params {
		r.resolveParam(m, params, p, meth.Line)
	}

	if meth.Ret != nil {
		r.resolveType(m, scope, meth.Ret, meth.Line)
	}

	block := symbol.Spawn(params, symbol.BlockTag, uint(len(meth.Block.Fiats)))
	r.resolveBlock(m, block, meth.Block)
}

// resolveParam resolves a parameter's type against the owning
// function/method's enclosing scope (Param carries no Line field, so
// diagnostics fall back to the owning declaration's line) and binds its
// name in table.
func (r *resolver) resolveParam(m *ast.Module, table *symbol.SymTable, p *ast.Param, line int) {
	r.resolveType(m, table.Parent, p.Type, line)

	stored, err := symbol.Insert(table, p.Name, symbol.NewParameter(line))
	if err != nil {
		r.redeclared(m, table, p.Name, line)
		return
	}

	p.Entry = stored
}

// resolveVariable resolves a declared type (if any) and an initializer
// (if any) before binding the name, so a variable's own initializer
// cannot observe the variable it is initializing.
func (r *resolver) resolveVariable(m *ast.Module, scope *symbol.SymTable, v *ast.Variable) {
	if v.VarType != nil {
		r.resolveType(m, scope, v.VarType, v.Line)
	}

	if v.Value != nil {
		r.resolveExpr(m, scope, v.Value)
	}

	stored, err := symbol.Insert(scope, v.Name, symbol.NewVariable(v.Public, v.Line))
	if err != nil {
		r.redeclared(m, scope, v.Name, v.Line)
		return
	}

	v.Entry = stored
}

// resolveType resolves a linked Type chain, per spec.md §4.6's "unwind
// to the tail Base or penultimate Named node".
func (r *resolver) resolveType(m *ast.Module, scope *symbol.SymTable, t ast.Type, line int) {
	switch n := t.(type) {
	case *ast.Pointer:
		r.resolveType(m, scope, n.Reference, line)
	case *ast.Array:
		r.resolveType(m, scope, n.Element, line)
	case *ast.Base:
		r.resolveBase(m, scope, n, line, false)
	case *ast.Named:
		imp, _, err := symbol.Lookup(scope, n.Name)
		if err != nil || imp.Kind != symbol.ImportSym {
			r.errorf(m, line, "%q does not name an imported module", n.Name)
			return
		}

		imp.Referenced = true

		if base, ok := n.Reference.(*ast.Base); ok {
			r.resolveBase(m, imp.Table, base, line, true)
			return
		}

		r.resolveType(m, imp.Table, n.Reference, line)
	}
}

// resolveBase resolves a bare type name against scope. qualified is true
// when the name is being resolved as the tail of a Named chain (e.g.
// "shapes.Circle"), which triggers the two extra diagnostics spec.md
// §4.6 reserves for that case: a qualified reference to a native type is
// redundant, and a qualified reference to a non-public Udt is an error.
func (r *resolver) resolveBase(m *ast.Module, scope *symbol.SymTable, n *ast.Base, line int, qualified bool) {
	sym, _, err := symbol.Lookup(scope, n.Name)
	if err != nil {
		r.errorf(m, line, "undeclared type %q", n.Name)
		return
	}

	switch sym.Kind {
	case symbol.Native:
		if qualified {
			r.log.Reportf(diag.Warning, m.Alias, line, "named global type %q is redundant", n.Name)
		}
	case symbol.UdtSym:
		sym.Referenced = true

		if qualified && !sym.Public {
			r.errorf(m, line, "reference to private type %q", n.Name)
			return
		}
	default:
		r.errorf(m, line, "%q is not a type", n.Name)
		return
	}

	n.Entry = sym
}

// resolveBlock walks a block's fiats in source order, pre-binding any
// Label appearing directly in the block so a Goto earlier in the same
// block can target a label declared later in it.
func (r *resolver) resolveBlock(m *ast.Module, table *symbol.SymTable, b *ast.Block) {
	b.Table = table

	for _, fiat := range b.Fiats {
		if sf, ok := fiat.(ast.StmtFiat); ok {
			if label, ok := sf.Stmt.(*ast.Label); ok {
				r.bindLabel(m, table, label)
			}
		}
	}

	for _, fiat := range b.Fiats {
		switch f := fiat.(type) {
		case ast.DeclFiat:
			r.resolveDecl(m, table, f.Decl)
		case ast.StmtFiat:
			r.resolveStmt(m, table, f.Stmt)
		}
	}
}

func (r *resolver) bindLabel(m *ast.Module, scope *symbol.SymTable, l *ast.Label) {
	if l.Entry != nil {
		return
	}

	stored, err := symbol.Insert(scope, l.Name, symbol.NewLabel(l.Line))
	if err != nil {
		r.redeclared(m, scope, l.Name, l.Line)
		return
	}

	l.Entry = stored
}

// resolveStmt resolves one statement, spawning a fresh Block-tagged
// table for every construct that opens its own lexical scope.
func (r *resolver) resolveStmt(m *ast.Module, scope *symbol.SymTable, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(m, scope, n.X)
	case *ast.Block:
		child := symbol.Spawn(scope, symbol.BlockTag, uint(len(n.Fiats)))
		r.resolveBlock(m, child, n)
	case *ast.For:
		r.resolveFor(m, scope, n)
	case *ast.While:
		r.resolveExpr(m, scope, n.Cond)

		child := symbol.Spawn(scope, symbol.BlockTag, uint(len(n.Body.Fiats)))
		r.resolveBlock(m, child, n.Body)
	case *ast.Switch:
		r.resolveSwitch(m, scope, n)
	case *ast.Branch:
		r.resolveBranch(m, scope, n)
	case *ast.Return:
		if n.Value != nil {
			r.resolveExpr(m, scope, n.Value)
		}
	case *ast.Goto:
		if sym, _, err := symbol.Lookup(scope, n.Name); err != nil || sym.Kind != symbol.LabelSym {
			r.errorf(m, n.Line, "undeclared label %q", n.Name)
		}
	case *ast.Label:
		r.bindLabel(m, scope, n)
		r.resolveStmt(m, scope, n.Target)
	case *ast.VarStmt:
		r.resolveVariable(m, scope, n.Variable)
	}
}

// resolveFor opens one scope for the init clause (matching a C-style
// for-loop's convention that the loop variable is visible only to the
// condition, post clause, and body) and a nested scope for the body
// itself.
func (r *resolver) resolveFor(m *ast.Module, scope *symbol.SymTable, f *ast.For) {
	head := symbol.Spawn(scope, symbol.BlockTag, 1)

	if f.Init != nil {
		r.resolveStmt(m, head, f.Init)
	}

	if f.Cond != nil {
		r.resolveExpr(m, head, f.Cond)
	}

	if f.Post != nil {
		r.resolveStmt(m, head, f.Post)
	}

	body := symbol.Spawn(head, symbol.BlockTag, uint(len(f.Body.Fiats)))
	r.resolveBlock(m, body, f.Body)
}

func (r *resolver) resolveSwitch(m *ast.Module, scope *symbol.SymTable, sw *ast.Switch) {
	r.resolveExpr(m, scope, sw.Controller)

	for _, test := range sw.Tests {
		for _, v := range test.Values {
			r.resolveExpr(m, scope, v)
		}

		table := symbol.Spawn(scope, symbol.BlockTag, uint(len(test.Body)))

		for _, fiat := range test.Body {
			if sf, ok := fiat.(ast.StmtFiat); ok {
				if label, ok := sf.Stmt.(*ast.Label); ok {
					r.bindLabel(m, table, label)
				}
			}
		}

		for _, fiat := range test.Body {
			switch f := fiat.(type) {
			case ast.DeclFiat:
				r.resolveDecl(m, table, f.Decl)
			case ast.StmtFiat:
				r.resolveStmt(m, table, f.Stmt)
			}
		}
	}
}

// resolveBranch spawns a single scope shared by the ShortVar (when
// present), the condition, and the "pass" block, matching the "short
// declaration" glossary entry's rule that it is visible to both arms.
func (r *resolver) resolveBranch(m *ast.Module, scope *symbol.SymTable, b *ast.Branch) {
	branchScope := scope

	if b.ShortVar != nil {
		branchScope = symbol.Spawn(scope, symbol.BlockTag, 1)
		r.resolveVariable(m, branchScope, b.ShortVar)
	}

	r.resolveExpr(m, branchScope, b.Cond)

	pass := symbol.Spawn(branchScope, symbol.BlockTag, uint(len(b.Pass.Fiats)))
	r.resolveBlock(m, pass, b.Pass)

	if b.Fail != nil {
		r.resolveStmt(m, branchScope, b.Fail)
	}
}

// resolveExpr resolves every identifier use reachable from e against
// scope's active table stack.
func (r *resolver) resolveExpr(m *ast.Module, scope *symbol.SymTable, e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		if _, _, err := symbol.Lookup(scope, n.Name); err != nil {
			r.errorf(m, n.Line, "undeclared identifier %q", n.Name)
		}
	case *ast.Assignment:
		r.resolveExpr(m, scope, n.Target)
		r.resolveExpr(m, scope, n.Value)
	case *ast.Binary:
		r.resolveExpr(m, scope, n.Left)
		r.resolveExpr(m, scope, n.Right)
	case *ast.Unary:
		r.resolveExpr(m, scope, n.Operand)
	case *ast.Cast:
		r.resolveExpr(m, scope, n.Operand)
		r.resolveType(m, scope, n.CastType, n.Line)
	case *ast.Call:
		r.resolveExpr(m, scope, n.Callee)

		for _, a := range n.Args {
			r.resolveExpr(m, scope, a)
		}
	case *ast.Selector:
		if _, _, err := symbol.Lookup(scope, n.Name); err != nil {
			r.errorf(m, n.Line, "undeclared identifier %q", n.Name)
		}
	case *ast.Index:
		if _, _, err := symbol.Lookup(scope, n.Name); err != nil {
			r.errorf(m, n.Line, "undeclared identifier %q", n.Name)
		}

		r.resolveExpr(m, scope, n.Key)
	case *ast.ArrayLit:
		for _, idx := range n.Indices {
			if idx != nil {
				r.resolveExpr(m, scope, idx)
			}
		}

		for _, v := range n.Values {
			r.resolveExpr(m, scope, v)
		}
	case *ast.RvarLit:
		for _, a := range n.Args {
			r.resolveExpr(m, scope, a)
		}
	}
}

// redeclared reports an AlreadyExists Insert failure, reading the line
// from the symbol already bound in table (per OQ-5: always the
// previously declared symbol, never the new one) when one is available.
func (r *resolver) redeclared(m *ast.Module, table *symbol.SymTable, name string, line int) {
	if existing, _, err := symbol.Lookup(table, name); err == nil && existing.Line > 0 {
		r.errorf(m, line, "%q redeclared; previously declared on line %d", name, existing.Line)
		return
	}

	r.errorf(m, line, "%q redeclared", name)
}

func (r *resolver) errorf(m *ast.Module, line int, format string, args ...any) {
	r.log.Reportf(diag.Error, m.Alias, line, format, args...)
}
