// Package core defines the Core AST: the desugarer's output and the type
// checker's input (spec.md §3.3), a node-per-kind IR shape (a flat sum of
// structs, each implementing a shared interface, consumed by a later pass)
// over Vibefun's reduced core grammar — every surface construct that has
// more than one way to say the same thing (multi-arg App, multi-param
// Lambda, pipe/compose, while, list literals, or-patterns, record-field
// shorthand) is gone; only one canonical shape survives per concept,
// produced by the desugarer (see DESIGN.md).
package core

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/span"
)

// TypeExpr is the surface type-expression syntax, carried unevaluated into
// Core: annotations and external signatures are resolved against the HM
// type system only during inference (types.Type), so Core just holds onto
// what the user wrote.
type TypeExpr = ast.TypeExpr

// Node is any Core AST node.
type Node interface {
	Span() span.Span
}

// Expr is a core expression node.
type Expr interface {
	Node
	coreExprNode()
}

// Pattern is a core pattern node — deliberately smaller than ast.Pattern:
// no POr, no PList, no PTypeAnnotation (spec.md §4.3 desugars all three
// away before the checker ever sees a pattern).
type Pattern interface {
	Node
	corePatternNode()
}

// --- literals ---

type IntLit struct {
	Text string
	Base int
	Sp   span.Span
}

func (n *IntLit) Span() span.Span { return n.Sp }
func (*IntLit) coreExprNode()     {}

type FloatLit struct {
	Text string
	Sp   span.Span
}

func (n *FloatLit) Span() span.Span { return n.Sp }
func (*FloatLit) coreExprNode()     {}

type StringLit struct {
	Value string
	Sp    span.Span
}

func (n *StringLit) Span() span.Span { return n.Sp }
func (*StringLit) coreExprNode()     {}

type BoolLit struct {
	Value bool
	Sp    span.Span
}

func (n *BoolLit) Span() span.Span { return n.Sp }
func (*BoolLit) coreExprNode()     {}

type UnitLit struct{ Sp span.Span }

func (n *UnitLit) Span() span.Span { return n.Sp }
func (*UnitLit) coreExprNode()     {}

// --- variables, binding ---

type Var struct {
	Name string
	Sp   span.Span
}

func (n *Var) Span() span.Span { return n.Sp }
func (*Var) coreExprNode()     {}

// Let is always single-binding in Core; a `let rec` group expression
// lowers to one LetRec by the desugarer (spec.md §4.3).
type Let struct {
	Pat       Pattern
	Value     Expr
	Body      Expr
	Mutable   bool
	Recursive bool
	Sp        span.Span
}

func (n *Let) Span() span.Span { return n.Sp }
func (*Let) coreExprNode()     {}

type LetBinding struct {
	Name  string
	Value Expr
	Sp    span.Span
}

type LetRec struct {
	Bindings []LetBinding
	Body     Expr
	Sp       span.Span
}

func (n *LetRec) Span() span.Span { return n.Sp }
func (*LetRec) coreExprNode()     {}

// --- functions: single-parameter, single-argument only (spec.md §4.3
// currying: `(a, b) => e` desugars to `a => b => e`; `f(a, b)` desugars to
// `f(a)(b)`) ---

type Lambda struct {
	Param Pattern
	Body  Expr
	Sp    span.Span
}

func (n *Lambda) Span() span.Span { return n.Sp }
func (*Lambda) coreExprNode()     {}

type App struct {
	Func Expr
	Arg  Expr
	Sp   span.Span
}

func (n *App) Span() span.Span { return n.Sp }
func (*App) coreExprNode()     {}

// --- control flow ---

// If is retained rather than lowered to Match (spec.md §3.3 leaves the
// choice to implementations; retaining it keeps boolean-condition
// diagnostics and generated-JS `if` statements readable instead of routing
// every condition through a two-armed pattern match).
type If struct {
	Cond, Then, Else Expr
	Sp               span.Span
}

func (n *If) Span() span.Span { return n.Sp }
func (*If) coreExprNode()     {}

type MatchCase struct {
	Pat   Pattern
	Guard Expr
	Body  Expr
	Sp    span.Span
}

// Match has no or-patterns in Core: the desugarer expands `p1 | p2 => e`
// into two cases with identical bodies (spec.md §4.3), after checking both
// alternatives bind the same variable set.
type Match struct {
	Scrutinee Expr
	Cases     []MatchCase
	Sp        span.Span
}

func (n *Match) Span() span.Span { return n.Sp }
func (*Match) coreExprNode()     {}

// --- operators, resolved ---

type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
	And
	Or
	Concat
	Assign
)

type BinOp struct {
	Op       BinOpKind
	Lhs, Rhs Expr
	Sp       span.Span
}

func (n *BinOp) Span() span.Span { return n.Sp }
func (*BinOp) coreExprNode()     {}

// UnaryOpKind is resolved at the surface↔core boundary where possible (Neg)
// and otherwise carries the ambiguous form through to inference, which
// rewrites it to NotBool or Deref once it has seen the operand's type
// (spec.md §3.2: "the lexeme ! is disambiguated at type-check time").
type UnaryOpKind int

const (
	Neg UnaryOpKind = iota
	NotBool
	Deref
	NotOrDerefUnresolved
)

type UnaryOp struct {
	Op      UnaryOpKind
	Operand Expr
	Sp      span.Span
}

func (n *UnaryOp) Span() span.Span { return n.Sp }
func (*UnaryOp) coreExprNode()     {}

// --- records, variants, tuples ---

type RecordField struct {
	Name  string
	Value Expr
}

type Record struct {
	Fields []RecordField
	Sp     span.Span
}

func (n *Record) Span() span.Span { return n.Sp }
func (*Record) coreExprNode()     {}

type RecordAccess struct {
	Record Expr
	Field  string
	Sp     span.Span
}

func (n *RecordAccess) Span() span.Span { return n.Sp }
func (*RecordAccess) coreExprNode()     {}

// RecordUpdate applies one or more spread bases, left to right, then the
// explicit field overrides (which always win over any base). A surface
// literal with several spreads (`{...a, x: 1, ...b}`) collapses its spread
// expressions into Bases in source order; the checker unifies each base's
// type against the accumulated record type one at a time, left to right
// (spec.md §4.3/§4.4.4, DESIGN.md "merged-spread RecordUpdate handling").
type RecordUpdate struct {
	Bases  []Expr
	Fields []RecordField
	Sp     span.Span
}

func (n *RecordUpdate) Span() span.Span { return n.Sp }
func (*RecordUpdate) coreExprNode()     {}

// Variant constructs a nominal variant case: `Name(arg)`. List literals
// desugar to chains of the built-in `Cons`/`Nil` variant (spec.md §4.3), so
// there is no separate Core list-literal node.
type Variant struct {
	Name string
	Args []Expr
	Sp   span.Span
}

func (n *Variant) Span() span.Span { return n.Sp }
func (*Variant) coreExprNode()     {}

type Tuple struct {
	Elements []Expr
	Sp       span.Span
}

func (n *Tuple) Span() span.Span { return n.Sp }
func (*Tuple) coreExprNode()     {}

// --- misc ---

type TypeAnnotation struct {
	Expr Expr
	Type TypeExpr
	Sp   span.Span
}

func (n *TypeAnnotation) Span() span.Span { return n.Sp }
func (*TypeAnnotation) coreExprNode()     {}

type Unsafe struct {
	Expr Expr
	Sp   span.Span
}

func (n *Unsafe) Span() span.Span { return n.Sp }
func (*Unsafe) coreExprNode()     {}

// ErrorExpr is a placeholder for a node the desugarer could not lower
// (spec.md §7).
type ErrorExpr struct{ Sp span.Span }

func (n *ErrorExpr) Span() span.Span { return n.Sp }
func (*ErrorExpr) coreExprNode()     {}

// --- patterns ---

type PWildcard struct{ Sp span.Span }

func (n *PWildcard) Span() span.Span { return n.Sp }
func (*PWildcard) corePatternNode()  {}

type PVar struct {
	Name string
	Sp   span.Span
}

func (n *PVar) Span() span.Span { return n.Sp }
func (*PVar) corePatternNode()  {}

type PLiteralKind int

const (
	PLitInt PLiteralKind = iota
	PLitFloat
	PLitString
	PLitBool
	PLitUnit
)

type PLiteral struct {
	Kind PLiteralKind
	Text string
	Str  string
	Bool bool
	Sp   span.Span
}

func (n *PLiteral) Span() span.Span { return n.Sp }
func (*PLiteral) corePatternNode()  {}

// PConstructor also covers what the surface expresses as list patterns
// (`[h, ...t]` desugars to `Cons(h, t)`, `[]` to `Nil`).
type PConstructor struct {
	Name string
	Args []Pattern
	Sp   span.Span
}

func (n *PConstructor) Span() span.Span { return n.Sp }
func (*PConstructor) corePatternNode()  {}

type PRecordField struct {
	Name    string
	Pattern Pattern
}

type PRecord struct {
	Fields []PRecordField
	Sp     span.Span
}

func (n *PRecord) Span() span.Span { return n.Sp }
func (*PRecord) corePatternNode()  {}

type PTuple struct {
	Elements []Pattern
	Sp       span.Span
}

func (n *PTuple) Span() span.Span { return n.Sp }
func (*PTuple) corePatternNode()  {}

// --- top-level ---

// Decl is a top-level Core declaration, mirroring ast.Decl but flattened:
// `and`-groups are split into their own LetDecl/TypeDecl entries by the
// desugarer (mutual recursion is tracked by the bindings themselves, not by
// the group syntax).
type Decl interface {
	Node
	coreDeclNode()
}

type LetDecl struct {
	Pat       Pattern
	Value     Expr
	Mutable   bool
	Recursive bool
	Sp        span.Span
}

func (n *LetDecl) Span() span.Span { return n.Sp }
func (*LetDecl) coreDeclNode()     {}

type ExternalDecl struct {
	Name   string
	Type   TypeExpr
	JSExpr string
	Sp     span.Span
}

func (n *ExternalDecl) Span() span.Span { return n.Sp }
func (*ExternalDecl) coreDeclNode()     {}

// TypeDefKind mirrors ast.TypeDefKind; Core keeps the alias/record/variant
// distinction because the environment (spec.md §4.4.3) registers
// constructors and field shapes directly from it.
type TypeDefKind = ast.TypeDefKind

const (
	TypeDefAlias   = ast.TypeDefAlias
	TypeDefRecord  = ast.TypeDefRecord
	TypeDefVariant = ast.TypeDefVariant
)

// TypeDecl is always a single definition in Core: `and`-chained groups are
// split into one TypeDecl per name by the desugarer, since mutual
// recursion between type names is tracked by the environment (name
// lookups resolve regardless of declaration order within a file), not by
// surviving group syntax.
type TypeDecl struct {
	Name   string
	Params []string
	Kind   TypeDefKind
	Alias  TypeExpr
	Fields []ast.TRecordField
	Cases  []ast.TVariantCase
	Sp     span.Span
}

func (n *TypeDecl) Span() span.Span { return n.Sp }
func (*TypeDecl) coreDeclNode()     {}

// ImportDecl and ExportDecl pass through the desugarer unchanged: they
// name bindings for the module resolver (spec.md §6.4) rather than
// describing any computation, so there is nothing to desugar.
type ImportItem = ast.ImportItem

type ImportDecl struct {
	Path  string
	Items []ImportItem
	Sp    span.Span
}

func (n *ImportDecl) Span() span.Span { return n.Sp }
func (*ImportDecl) coreDeclNode()     {}

type ExportDecl struct {
	Names []string
	Sp    span.Span
}

func (n *ExportDecl) Span() span.Span { return n.Sp }
func (*ExportDecl) coreDeclNode()     {}

// Module is the desugarer's output for one file (spec.md §4.3).
type Module struct {
	Decls []Decl
	Sp    span.Span
}

func (m *Module) Span() span.Span { return m.Sp }
