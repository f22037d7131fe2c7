// Package ast defines the Surface AST, the parser's output (spec.md §3.2):
// a Node-interface-per-kind shape (Span()) over Vibefun's
// general expression, pattern, type-expression and declaration grammar —
// see DESIGN.md.
package ast

import "github.com/vibefun-lang/vibefun/span"

// Node is any Surface AST node: every node carries a non-zero source span
// (spec.md §3: "every node carries a source span").
type Node interface {
	Span() span.Span
}

// Expr is a surface expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a surface pattern node.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a surface type expression node.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Decl is a top-level or `external` block declaration.
type Decl interface {
	Node
	declNode()
}

// Module is the parser's output for one file (spec.md §6.3:
// `Module := (Declaration ';')*`).
type Module struct {
	Decls []Decl
	Sp    span.Span
}

func (m *Module) Span() span.Span { return m.Sp }
