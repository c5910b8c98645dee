// Package symbol implements the scoped name-resolution engine: a tagged
// Symbol union, an n-ary tree of SymTable scopes, and the open-addressed
// hash map backing each table's entries. This package has no dependency on
// pkg/ast; a Symbol's Type field (where one applies) is stored as an
// opaque value supplied by the resolver, which is the only package that
// imports both symbol and ast.
package symbol

// Kind discriminates the tagged Symbol union.
type Kind int

const (
	Native Kind = iota
	ModuleSym
	ImportSym
	FunctionSym
	MethodSym
	UdtSym
	VariableSym
	FieldSym
	ParameterSym
	LabelSym
)

func (k Kind) String() string {
	switch k {
	case Native:
		return "native"
	case ModuleSym:
		return "module"
	case ImportSym:
		return "import"
	case FunctionSym:
		return "function"
	case MethodSym:
		return "method"
	case UdtSym:
		return "udt"
	case VariableSym:
		return "variable"
	case FieldSym:
		return "field"
	case ParameterSym:
		return "parameter"
	case LabelSym:
		return "label"
	default:
		return "unknown"
	}
}

// Symbol is a tagged union over every entity a name can bind to. Only the
// fields relevant to Kind are meaningful; see the per-kind constructors
// below for the populated subset.
type Symbol struct {
	Kind Kind

	// Native, Udt: size in bytes of one value of this type.
	Bytes int

	// Module, Function, Method, Udt: the child scope this entity owns.
	Table *SymTable

	// Field: the opaque type node supplied by the resolver (an *ast.Type
	// in practice); symbol itself does not depend on ast.
	Type any

	// Every kind except Native: whether any use of this symbol has been
	// observed by the resolver.
	Referenced bool

	// Udt, Variable, Field: whether this entity is "pub".
	Public bool

	// Every kind except Native: the source line the declaration
	// appeared on, used for redeclaration diagnostics. 0 for Module
	// (modules have no single declaring line).
	Line int
}

// The New* constructors below return Symbol by value rather than
// *Symbol: every Symbol that ends up bound in a table is copied into
// that table's arena pool by Insert, which hands back the pool's own
// stable pointer. Building a *Symbol here would just be an extra heap
// allocation thrown away the moment Insert copies it.

// NewNative constructs a built-in type symbol of the given byte size.
func NewNative(bytes int) Symbol {
	return Symbol{Kind: Native, Bytes: bytes}
}

// NewModule constructs a Module symbol wrapping table.
func NewModule(table *SymTable) Symbol {
	return Symbol{Kind: ModuleSym, Table: table}
}

// NewImport constructs an Import symbol for an "import" clause on the
// given line.
func NewImport(line int) Symbol {
	return Symbol{Kind: ImportSym, Line: line}
}

// NewFunction constructs a Function symbol wrapping its parameter/body
// table.
func NewFunction(table *SymTable, line int) Symbol {
	return Symbol{Kind: FunctionSym, Table: table, Line: line}
}

// NewMethod constructs a Method symbol wrapping its parameter/body table.
func NewMethod(table *SymTable, line int) Symbol {
	return Symbol{Kind: MethodSym, Table: table, Line: line}
}

// NewUdt constructs a Udt symbol wrapping its member table.
func NewUdt(table *SymTable, bytes int, public bool, line int) Symbol {
	return Symbol{Kind: UdtSym, Table: table, Bytes: bytes, Public: public, Line: line}
}

// NewVariable constructs a Variable symbol.
func NewVariable(public bool, line int) Symbol {
	return Symbol{Kind: VariableSym, Public: public, Line: line}
}

// NewField constructs a struct Field symbol.
func NewField(fieldType any, public bool, line int) Symbol {
	return Symbol{Kind: FieldSym, Type: fieldType, Public: public, Line: line}
}

// NewParameter constructs a function/method Parameter symbol.
func NewParameter(line int) Symbol {
	return Symbol{Kind: ParameterSym, Line: line}
}

// NewLabel constructs a goto Label symbol.
func NewLabel(line int) Symbol {
	return Symbol{Kind: LabelSym, Line: line}
}
