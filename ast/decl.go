package ast

import "github.com/vibefun-lang/vibefun/span"

// LetDecl is a top-level `let`/`let mut` binding.
type LetDecl struct {
	Pat     Pattern
	Value   Expr
	Mutable bool
	Sp      span.Span
}

func (n *LetDecl) Span() span.Span { return n.Sp }
func (*LetDecl) declNode()         {}

// LetRecGroup is a top-level `let rec f = .. and g = ..` group.
type LetRecGroup struct {
	Bindings []LetBinding
	Sp       span.Span
}

func (n *LetRecGroup) Span() span.Span { return n.Sp }
func (*LetRecGroup) declNode()         {}

// TypeDefKind distinguishes the three shapes a `type` definition may take.
type TypeDefKind int

const (
	TypeDefAlias TypeDefKind = iota
	TypeDefRecord
	TypeDefVariant
)

type TypeDecl struct {
	Name   string
	Params []string // type-variable parameters, e.g. `type Pair<a, b> = ...`
	Kind   TypeDefKind
	Alias  TypeExpr       // set when Kind == TypeDefAlias
	Fields []TRecordField // set when Kind == TypeDefRecord
	Cases  []TVariantCase // set when Kind == TypeDefVariant
	Sp     span.Span
}

func (n *TypeDecl) Span() span.Span { return n.Sp }
func (*TypeDecl) declNode()         {}

// TypeDeclGroup is a mutually-recursive `type .. and ..` group.
type TypeDeclGroup struct {
	Decls []TypeDecl
	Sp    span.Span
}

func (n *TypeDeclGroup) Span() span.Span { return n.Sp }
func (*TypeDeclGroup) declNode()         {}

// ExternalDecl binds a name to a JS expression string with a declared type
// (spec.md §3.2). Overload sets share a name across multiple ExternalDecl
// values in the same Module/ExternalBlock.
type ExternalDecl struct {
	Name   string
	Type   TypeExpr
	JSExpr string
	Sp     span.Span
}

func (n *ExternalDecl) Span() span.Span { return n.Sp }
func (*ExternalDecl) declNode()         {}

// ExternalTypeDecl declares an opaque FFI type: `external type Name<..>`.
type ExternalTypeDecl struct {
	Name   string
	Params []string
	Sp     span.Span
}

func (n *ExternalTypeDecl) Span() span.Span { return n.Sp }
func (*ExternalTypeDecl) declNode()         {}

// ExternalBlock groups several external declarations: `external { .. }`.
type ExternalBlock struct {
	Decls []Decl
	Sp    span.Span
}

func (n *ExternalBlock) Span() span.Span { return n.Sp }
func (*ExternalBlock) declNode()         {}

// ImportItem is one imported name, with an optional alias (`as`).
type ImportItem struct {
	Name  string
	Alias string // "" if unaliased
	Sp    span.Span
}

type ImportDecl struct {
	Path  string
	Items []ImportItem
	Sp    span.Span
}

func (n *ImportDecl) Span() span.Span { return n.Sp }
func (*ImportDecl) declNode()         {}

type ExportDecl struct {
	Names []string
	Sp    span.Span
}

func (n *ExportDecl) Span() span.Span { return n.Sp }
func (*ExportDecl) declNode()         {}

// ErrorDecl is a placeholder for a declaration that failed to parse, so
// sibling declarations can still be parsed after recovery (spec.md §4.2
// "Error recovery").
type ErrorDecl struct {
	Sp span.Span
}

func (n *ErrorDecl) Span() span.Span { return n.Sp }
func (*ErrorDecl) declNode()         {}
