package ast

import "github.com/birendpatel/lemon/pkg/token"

// Expr is one node of an expression tree, produced by the Pratt parser.
type Expr interface {
	Node
	isExpr()
	// ExprLine returns the line the expression started on.
	ExprLine() int
}

// ============================================================================
// Assignment
// ============================================================================

// Assignment is "Target = Value", right-associative, the lowest-precedence
// Pratt production.
type Assignment struct {
	Target Expr
	Value  Expr
	Line   int
}

func (*Assignment) isNode()       {}
func (*Assignment) isExpr()       {}
func (a *Assignment) ExprLine() int { return a.Line }

// ============================================================================
// Binary
// ============================================================================

// Binary is a left-associative infix operation (everything between || and
// the multiplicative tier, inclusive).
type Binary struct {
	Left  Expr
	Right Expr
	Op    token.Kind
	Line  int
}

func (*Binary) isNode()       {}
func (*Binary) isExpr()       {}
func (b *Binary) ExprLine() int { return b.Line }

// ============================================================================
// Unary
// ============================================================================

// Unary is a prefix operation: "! - * & ~ '".
type Unary struct {
	Operand Expr
	Op      token.Kind
	Line    int
}

func (*Unary) isNode()       {}
func (*Unary) isExpr()       {}
func (u *Unary) ExprLine() int { return u.Line }

// ============================================================================
// Cast
// ============================================================================

// Cast reinterprets Operand as CastType.
type Cast struct {
	Operand  Expr
	CastType Type
	Line     int
}

func (*Cast) isNode()       {}
func (*Cast) isExpr()       {}
func (c *Cast) ExprLine() int { return c.Line }

// ============================================================================
// Call
// ============================================================================

// Call applies Callee (a function, method, or built-in name) to Args.
type Call struct {
	Callee Expr
	Args   []Expr
	Line   int
}

func (*Call) isNode()       {}
func (*Call) isExpr()       {}
func (c *Call) ExprLine() int { return c.Line }

// ============================================================================
// Selector
// ============================================================================

// Selector is "Name.Attr": a field access or a module-qualified reference.
type Selector struct {
	Name string
	Attr string
	Line int
}

func (*Selector) isNode()       {}
func (*Selector) isExpr()       {}
func (s *Selector) ExprLine() int { return s.Line }

// ============================================================================
// Index
// ============================================================================

// Index is "Name[Key]".
type Index struct {
	Name string
	Key  Expr
	Line int
}

func (*Index) isNode()       {}
func (*Index) isExpr()       {}
func (i *Index) ExprLine() int { return i.Line }

// ============================================================================
// ArrayLit
// ============================================================================

// ArrayLit is an array literal with optional explicit indices (a sparse
// initializer), e.g. "[0: 1, 3]".
type ArrayLit struct {
	Indices []Expr // parallel to Values; nil entries mean "next implicit index"
	Values  []Expr
	Line    int
}

func (*ArrayLit) isNode()       {}
func (*ArrayLit) isExpr()       {}
func (a *ArrayLit) ExprLine() int { return a.Line }

// ============================================================================
// RvarLit
// ============================================================================

// RvarLit constructs a random variate from a named distribution and its
// parameters, e.g. "normal(0, 1)" used in a literal position.
type RvarLit struct {
	Dist string
	Args []Expr
	Line int
}

func (*RvarLit) isNode()       {}
func (*RvarLit) isExpr()       {}
func (r *RvarLit) ExprLine() int { return r.Line }

// ============================================================================
// Lit
// ============================================================================

// Lit is a scalar literal: Rep is its source text, Kind is Int, Float,
// String, True, False, or Null.
type Lit struct {
	Rep  string
	Kind token.Kind
	Line int
}

func (*Lit) isNode()       {}
func (*Lit) isExpr()       {}
func (l *Lit) ExprLine() int { return l.Line }

// ============================================================================
// Ident
// ============================================================================

// Ident is a bare identifier use, resolved against the active table stack
// by the symbol resolver.
type Ident struct {
	Name string
	Line int
}

func (*Ident) isNode()       {}
func (*Ident) isExpr()       {}
func (i *Ident) ExprLine() int { return i.Line }
