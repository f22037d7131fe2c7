package ast

import "github.com/vibefun-lang/vibefun/span"

// BinOpKind enumerates the binary operators retained at the surface level
// (spec.md §3.2).
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
	Concat // &
	Cons   // ::
	Assign // :=
)

func (k BinOpKind) String() string {
	return [...]string{"+", "-", "*", "/", "%", "**", "==", "!=", "<", "<=", ">", ">=", "&&", "||", "&", "::", ":="}[k]
}

// UnaryOpKind enumerates the surface unary operators.
type UnaryOpKind int

const (
	Neg UnaryOpKind = iota
	Not
	Deref
)

func (k UnaryOpKind) String() string {
	return [...]string{"-", "!", "!"}[k]
}

// ComposeKind distinguishes forward (>>) from backward (<<) composition.
type ComposeKind int

const (
	ComposeForward ComposeKind = iota
	ComposeBackward
)

// --- Literals ---

type IntLit struct {
	Text string // preserves literal form, spec.md §3.1
	Base int    // lexer.IntBase value, duplicated here to avoid an ast->lexer import cycle
	Sp   span.Span
}

func (n *IntLit) Span() span.Span { return n.Sp }
func (*IntLit) exprNode()         {}

type FloatLit struct {
	Text string
	Sp   span.Span
}

func (n *FloatLit) Span() span.Span { return n.Sp }
func (*FloatLit) exprNode()         {}

type StringLit struct {
	Value string // decoded, NFC-normalized
	Sp    span.Span
}

func (n *StringLit) Span() span.Span { return n.Sp }
func (*StringLit) exprNode()         {}

type BoolLit struct {
	Value bool
	Sp    span.Span
}

func (n *BoolLit) Span() span.Span { return n.Sp }
func (*BoolLit) exprNode()         {}

type UnitLit struct {
	Sp span.Span
}

func (n *UnitLit) Span() span.Span { return n.Sp }
func (*UnitLit) exprNode()         {}

// --- Variables, binding ---

type Var struct {
	Name string
	Sp   span.Span
}

func (n *Var) Span() span.Span { return n.Sp }
func (*Var) exprNode()         {}

// Let is a single `let`/`let mut`/`let rec` binding with a body
// (spec.md §3.2). Recursive single-bindings (`let rec f = ...`) use this
// node with Recursive=true; `and`-chained groups use LetRec.
type Let struct {
	Pat       Pattern
	Value     Expr
	Body      Expr
	Mutable   bool
	Recursive bool
	Sp        span.Span
}

func (n *Let) Span() span.Span { return n.Sp }
func (*Let) exprNode()         {}

// LetBinding is one binding inside a `let rec ... and ...` group.
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
func (*LetRec) exprNode()         {}

// --- Functions ---

// Lambda is multi-parameter at the surface level (spec.md §3.2).
type Lambda struct {
	Params []Pattern
	Body   Expr
	Sp     span.Span
}

func (n *Lambda) Span() span.Span { return n.Sp }
func (*Lambda) exprNode()         {}

// App is multi-argument at the surface level.
type App struct {
	Func Expr
	Args []Expr
	Sp   span.Span
}

func (n *App) Span() span.Span { return n.Sp }
func (*App) exprNode()         {}

// --- Control flow ---

// If always has an Else (the parser synthesizes a Unit else when the
// source omits one, spec.md §3.2).
type If struct {
	Cond, Then, Else Expr
	Sp               span.Span
}

func (n *If) Span() span.Span { return n.Sp }
func (*If) exprNode()         {}

type MatchCase struct {
	Pat   Pattern
	Guard Expr // nil if absent
	Body  Expr
	Sp    span.Span
}

type Match struct {
	Scrutinee Expr
	Cases     []MatchCase
	Sp        span.Span
}

func (n *Match) Span() span.Span { return n.Sp }
func (*Match) exprNode()         {}

type While struct {
	Cond, Body Expr
	Sp         span.Span
}

func (n *While) Span() span.Span { return n.Sp }
func (*While) exprNode()         {}

// --- Operators ---

type BinOp struct {
	Op       BinOpKind
	Lhs, Rhs Expr
	Sp       span.Span
}

func (n *BinOp) Span() span.Span { return n.Sp }
func (*BinOp) exprNode()         {}

type UnaryOp struct {
	Op      UnaryOpKind
	Operand Expr
	Sp      span.Span
}

func (n *UnaryOp) Span() span.Span { return n.Sp }
func (*UnaryOp) exprNode()         {}

type Pipe struct {
	Lhs, Rhs Expr
	Sp       span.Span
}

func (n *Pipe) Span() span.Span { return n.Sp }
func (*Pipe) exprNode()         {}

type Compose struct {
	Op       ComposeKind
	Lhs, Rhs Expr
	Sp       span.Span
}

func (n *Compose) Span() span.Span { return n.Sp }
func (*Compose) exprNode()         {}

// --- Records, lists, tuples ---

// RecordField is one entry of a record literal or record update: either a
// spread (`...e`) or a `name: value` pair. Shorthand `{x}` is expanded by
// the parser to `{x: x}` (spec.md §4.2 output invariant).
type RecordField struct {
	Spread bool
	Name   string
	Value  Expr // nil when Spread
	Sp     span.Span
}

type Record struct {
	Fields []RecordField
	Sp     span.Span
}

func (n *Record) Span() span.Span { return n.Sp }
func (*Record) exprNode()         {}

type RecordAccess struct {
	Record Expr
	Field  string
	Sp     span.Span
}

func (n *RecordAccess) Span() span.Span { return n.Sp }
func (*RecordAccess) exprNode()         {}

type RecordUpdate struct {
	Record Expr
	Fields []RecordField
	Sp     span.Span
}

func (n *RecordUpdate) Span() span.Span { return n.Sp }
func (*RecordUpdate) exprNode()         {}

// ListElement is one entry of a list literal: a value or a spread.
type ListElement struct {
	Spread bool
	Value  Expr
	Sp     span.Span
}

type List struct {
	Elements []ListElement
	Sp       span.Span
}

func (n *List) Span() span.Span { return n.Sp }
func (*List) exprNode()         {}

type Tuple struct {
	Elements []Expr
	Sp       span.Span
}

func (n *Tuple) Span() span.Span { return n.Sp }
func (*Tuple) exprNode()         {}

// --- Blocks ---

// BlockStmt is one block statement: either a local `let` or a bare
// expression evaluated for effect.
type BlockStmt struct {
	IsLet   bool
	Pat     Pattern // set when IsLet
	Mutable bool
	Value   Expr
	Sp      span.Span
}

type Block struct {
	Stmts []BlockStmt
	Sp    span.Span
}

func (n *Block) Span() span.Span { return n.Sp }
func (*Block) exprNode()         {}

// --- Misc ---

type TypeAnnotation struct {
	Expr Expr
	Type TypeExpr
	Sp   span.Span
}

func (n *TypeAnnotation) Span() span.Span { return n.Sp }
func (*TypeAnnotation) exprNode()         {}

type Unsafe struct {
	Expr Expr
	Sp   span.Span
}

func (n *Unsafe) Span() span.Span { return n.Sp }
func (*Unsafe) exprNode()         {}

// ErrorExpr is a placeholder inserted by the parser/desugarer on local
// failure, so downstream phases can continue without cascading diagnostics
// (spec.md §7: "insert Error placeholders ... continue").
type ErrorExpr struct {
	Sp span.Span
}

func (n *ErrorExpr) Span() span.Span { return n.Sp }
func (*ErrorExpr) exprNode()         {}
