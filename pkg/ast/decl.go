package ast

import "github.com/birendpatel/lemon/pkg/symbol"

// Decl is a top-level or locally-scoped declaration: a user-defined type, a
// function, a method, or a variable.
type Decl interface {
	Node
	isDecl()
	// DeclLine returns the source line the declaration starts on, used by
	// the resolver to report redeclaration against the previously
	// declared symbol's line.
	DeclLine() int
}

// ============================================================================
// Member and Param
// ============================================================================

// Member is one field of a Udt declaration.
type Member struct {
	Name   string
	Type   Type
	Entry  *symbol.Symbol
	Public bool
}

// Param is one parameter of a Function or Method declaration.
type Param struct {
	Name    string
	Type    Type
	Entry   *symbol.Symbol
	Mutable bool
}

// ============================================================================
// Udt
// ============================================================================

// Udt is a "struct" declaration.
type Udt struct {
	Name    string
	Entry   *symbol.Symbol
	Members []*Member
	Public  bool
	Line    int
}

func (*Udt) isNode()       {}
func (*Udt) isDecl()       {}
func (u *Udt) DeclLine() int { return u.Line }

// ============================================================================
// Function
// ============================================================================

// Function is a "func" declaration. Recv is absent (the zero value's
// Method counterpart carries it instead).
type Function struct {
	Name   string
	Entry  *symbol.Symbol
	Ret    Type // nil if void
	Block  *Block
	Params []*Param
	Public bool
	Line   int
}

func (*Function) isNode()       {}
func (*Function) isDecl()       {}
func (f *Function) DeclLine() int { return f.Line }

// ============================================================================
// Method
// ============================================================================

// Method is a "method" declaration bound to a receiver parameter.
type Method struct {
	Name   string
	Entry  *symbol.Symbol
	Ret    Type // nil if void
	Recv   *Param
	Block  *Block
	Params []*Param
	Public bool
	Line   int
}

func (*Method) isNode()       {}
func (*Method) isDecl()       {}
func (m *Method) DeclLine() int { return m.Line }

// ============================================================================
// Variable
// ============================================================================

// Variable is a "let" or "mut" declaration, at module scope or local to a
// block.
type Variable struct {
	Name    string
	Entry   *symbol.Symbol
	VarType Type // nil if inferred from Value
	Value   Expr // nil if uninitialized
	Mutable bool
	Public  bool
	Line    int
}

func (*Variable) isNode()       {}
func (*Variable) isDecl()       {}
func (v *Variable) DeclLine() int { return v.Line }
