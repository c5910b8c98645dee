package ast

import "github.com/birendpatel/lemon/pkg/symbol"

// Type is a node in a composite type's linked chain. Every chain terminates
// at a Base or Named node; Pointer and Array wrap an inner Type.
type Type interface {
	Node
	isType()
}

// ============================================================================
// Base
// ============================================================================

// Base names a type local to the current module: either a native type
// (bool, int32, ...) or a locally declared struct. Entry is backfilled by
// the symbol resolver once the name has been looked up.
type Base struct {
	Name  string
	Entry *symbol.Symbol
}

func (*Base) isNode() {}
func (*Base) isType() {}

// ============================================================================
// Named
// ============================================================================

// Named qualifies a type with a module alias, e.g. "shapes.Circle". Name
// must resolve to an Import symbol; Reference is then resolved against the
// imported module's table.
type Named struct {
	Name      string
	Reference Type
}

func (*Named) isNode() {}
func (*Named) isType() {}

// ============================================================================
// Pointer
// ============================================================================

// Pointer is "*T" for some inner type T.
type Pointer struct {
	Reference Type
}

func (*Pointer) isNode() {}
func (*Pointer) isType() {}

// ============================================================================
// Array
// ============================================================================

// Array is "[N]T": a fixed-length vector of Element, Len elements long.
type Array struct {
	Element Type
	Len     int
}

func (*Array) isNode() {}
func (*Array) isType() {}
