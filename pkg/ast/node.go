// Package ast defines the node types produced by the parser: one Module per
// source file, threaded by Fiat lists of declarations and statements, with
// Type and Expr sub-trees. Every sum type described in the data model is
// modeled here as a marker interface implemented by a family of pointer
// receiver struct types -- the same pattern the corset AST tree uses for its
// Expr/Type/Decl families -- so cross-references between families (an
// import's back-pointer to its resolved Symbol, a block's SymTable) are
// plain Go pointers rather than owning values.
package ast

// Node is implemented by every tree element reachable from a Module. It
// carries nothing beyond identity; callers type-switch on the concrete
// type (Decl, Stmt, Expr, Type, Fiat) to do anything useful.
type Node interface {
	isNode()
}
