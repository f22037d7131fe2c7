package ast

import "github.com/vibefun-lang/vibefun/span"

// TVar is a type variable reference (e.g. 'a) in surface syntax.
type TVar struct {
	Name string
	Sp   span.Span
}

func (n *TVar) Span() span.Span { return n.Sp }
func (*TVar) typeExprNode()     {}

// TNamed is a type constructor with no arguments (Int, String, a user type
// name used at kind 0).
type TNamed struct {
	Name string
	Sp   span.Span
}

func (n *TNamed) Span() span.Span { return n.Sp }
func (*TNamed) typeExprNode()     {}

// TApp is a parametrized type application: `C<T1, ..>`.
type TApp struct {
	Ctor string
	Args []TypeExpr
	Sp   span.Span
}

func (n *TApp) Span() span.Span { return n.Sp }
func (*TApp) typeExprNode()     {}

// TFun is a (possibly multi-parameter, at the surface level) function type:
// `(T1, ..) -> T`.
type TFun struct {
	Params []TypeExpr
	Result TypeExpr
	Sp     span.Span
}

func (n *TFun) Span() span.Span { return n.Sp }
func (*TFun) typeExprNode()     {}

type TRecordField struct {
	Name string
	Type TypeExpr
}

type TRecord struct {
	Fields []TRecordField
	Sp     span.Span
}

func (n *TRecord) Span() span.Span { return n.Sp }
func (*TRecord) typeExprNode()     {}

type TVariantCase struct {
	Name string
	Args []TypeExpr
}

type TVariant struct {
	Cases []TVariantCase
	Sp    span.Span
}

func (n *TVariant) Span() span.Span { return n.Sp }
func (*TVariant) typeExprNode()     {}

type TTuple struct {
	Elements []TypeExpr
	Sp       span.Span
}

func (n *TTuple) Span() span.Span { return n.Sp }
func (*TTuple) typeExprNode()     {}

// TUnion is a limited union of type expressions (closed string-literal
// unions and FFI surfaces, spec.md §3.2).
type TUnion struct {
	Alts []TypeExpr
	Sp   span.Span
}

func (n *TUnion) Span() span.Span { return n.Sp }
func (*TUnion) typeExprNode()     {}

type TRef struct {
	Inner TypeExpr
	Sp    span.Span
}

func (n *TRef) Span() span.Span { return n.Sp }
func (*TRef) typeExprNode()     {}
