package ast

import "github.com/vibefun-lang/vibefun/span"

type PWildcard struct{ Sp span.Span }

func (n *PWildcard) Span() span.Span { return n.Sp }
func (*PWildcard) patternNode()      {}

type PVar struct {
	Name string
	Sp   span.Span
}

func (n *PVar) Span() span.Span { return n.Sp }
func (*PVar) patternNode()      {}

// PLiteralKind distinguishes the literal kinds a pattern may match on.
type PLiteralKind int

const (
	PLitInt PLiteralKind = iota
	PLitFloat
	PLitString
	PLitBool
	PLitUnit
)

type PLiteral struct {
	Kind   PLiteralKind
	Text   string // raw literal text for Int/Float
	Str    string // decoded value for String
	Bool   bool
	Sp     span.Span
}

func (n *PLiteral) Span() span.Span { return n.Sp }
func (*PLiteral) patternNode()      {}

// PConstructor matches a variant constructor applied to argument patterns:
// `Name(p1, .., pn)`.
type PConstructor struct {
	Name string
	Args []Pattern
	Sp   span.Span
}

func (n *PConstructor) Span() span.Span { return n.Sp }
func (*PConstructor) patternNode()      {}

// PRecordField is one field of a record pattern; Pattern is nil for the
// shorthand form `{x}`, which the parser leaves unexpanded and the
// desugarer expands to `{x: x}` (spec.md §4.3 transformation table).
type PRecordField struct {
	Name    string
	Pattern Pattern
	Sp      span.Span
}

type PRecord struct {
	Fields []PRecordField
	Sp     span.Span
}

func (n *PRecord) Span() span.Span { return n.Sp }
func (*PRecord) patternNode()      {}

// PList is `[p1, p2, ...rest]`; Rest is nil when there is no `...rest` tail.
type PList struct {
	Elements []Pattern
	Rest     Pattern
	Sp       span.Span
}

func (n *PList) Span() span.Span { return n.Sp }
func (*PList) patternNode()      {}

type PTuple struct {
	Elements []Pattern
	Sp       span.Span
}

func (n *PTuple) Span() span.Span { return n.Sp }
func (*PTuple) patternNode()      {}

// POr is `p1 | p2 | ...`; every alternative must bind the same variable set
// (checked by the desugarer, spec.md §4.3).
type POr struct {
	Alternatives []Pattern
	Sp           span.Span
}

func (n *POr) Span() span.Span { return n.Sp }
func (*POr) patternNode()      {}

// PTypeAnnotation is `(p : T)`; the desugarer discards the annotation
// (spec.md §4.3 transformation table).
type PTypeAnnotation struct {
	Pattern Pattern
	Type    TypeExpr
	Sp      span.Span
}

func (n *PTypeAnnotation) Span() span.Span { return n.Sp }
func (*PTypeAnnotation) patternNode()      {}
