// Package types implements the HM type system (spec.md §3.4): the Type
// discriminated union, type schemes, the persistent environment and the
// unifier. It keeps a three-way split across files — "the type tag enum"
// (types.go), "the lookup table of known types/constructors" (registry.go),
// "one nominal kind with its own equality rule" (decorator.go, here variant
// constructors) — laid out in DESIGN.md.
package types

import "fmt"

// Type is any member of the discriminated union (spec.md §3.4).
type Type interface {
	isType()
}

// Var is a type variable: a unique id and a mutable Rémy level, optionally
// forwarded to another Type once unification binds it (union-find-style
// substitution, spec.md §3.4). Forwarding is run-local mutable state: a
// Var must never be reused across two separate type-check runs.
//
// Ids are minted by the caller (infer.Context.FreshVar), not by this
// package: spec.md §9 flags process-wide singleton counters as the kind
// of global state that must instead live in an explicit context struct
// threaded through phase functions, so that two pipeline runs over
// different files never share or race on counter state.
type Var struct {
	ID       int64
	Level    int
	Instance Type // nil until bound
}

func (*Var) isType() {}

// NewVar wraps an id minted elsewhere (infer.Context.FreshVar) into an
// unbound type variable at the given level.
func NewVar(id int64, level int) *Var {
	return &Var{ID: id, Level: level}
}

// Const is a ground nominal type: Int, Float, String, Bool, Unit.
type Const struct {
	Name string
}

func (Const) isType() {}

var (
	Int    Type = Const{Name: "Int"}
	Float  Type = Const{Name: "Float"}
	String Type = Const{Name: "String"}
	Bool   Type = Const{Name: "Bool"}
	Unit   Type = Const{Name: "Unit"}
)

// Param builds an unsubstituted reference to a type declaration's own
// parameter (the `a` in `type Box<a> = { value: a }`), before a TypeCtor
// is applied to concrete arguments. decorator.go's substituteVars resolves
// these against a TypeCtor's Params when instantiating.
func Param(name string) Type {
	return Const{Name: "#" + name}
}

// App is a parametrized type application, e.g. `List<Int>`, `Option<T>`.
type App struct {
	Ctor string
	Args []Type
}

func (App) isType() {}

// Fun is always single-argument (curried), matching Core's Lambda/App.
type Fun struct {
	Param  Type
	Result Type
}

func (Fun) isType() {}

// Record is structural. Open marks a "pattern record" produced by field-
// access inference (spec.md §4.4.4's RecordAccess rule): further fields
// may be discovered by later unifications against the same Record value,
// so Open records are mutated in place when a new field is learned,
// exactly as a Var is mutated when it is bound (DESIGN.md "open record
// width subtyping").
type Record struct {
	Fields map[string]Type
	Open   bool
}

func (*Record) isType() {}

// NewRecord builds a closed record type from a field set.
func NewRecord(fields map[string]Type) *Record {
	return &Record{Fields: fields}
}

// NewOpenRecord builds a one-field open record, the shape RecordAccess
// inference starts from.
func NewOpenRecord(field string, t Type) *Record {
	return &Record{Fields: map[string]Type{field: t}, Open: true}
}

// Variant is nominal: equality requires the same Name (spec.md §3.4); Args
// are unified pairwise once names match.
type Variant struct {
	Name string
	Args []Type
}

func (Variant) isType() {}

type Tuple struct {
	Elements []Type
}

func (Tuple) isType() {}

type Ref struct {
	Inner Type
}

func (Ref) isType() {}

// Union is deliberately limited (spec.md §3.4): closed string-literal
// unions and FFI surfaces only, no general sum-type inference.
type Union struct {
	Alts []Type
}

func (Union) isType() {}

// Error is the recovery sentinel: it unifies with anything and produces
// no further diagnostics (spec.md §3.4, §7: "a downstream phase seeing an
// Error placeholder propagates silently").
type Error struct {
	ID int64
}

func (Error) isType() {}

// NewError wraps an id minted elsewhere (infer.Context.FreshError) into
// an Error sentinel, purely so two independently-produced Error values
// are still distinguishable in tests and pretty-printing; equality
// against another Type never inspects it.
func NewError(id int64) Error {
	return Error{ID: id}
}

// Prune walks a chain of bound Vars to the representative type at the end
// of the chain (spec.md §3.4: "A prune(t) operation walks forwarding
// chains"). It does not recurse into compound types.
func Prune(t Type) Type {
	v, ok := t.(*Var)
	if !ok || v.Instance == nil {
		return t
	}
	root := Prune(v.Instance)
	v.Instance = root // path compression
	return root
}

// Scheme is a type scheme: the quantified variable ids generalized over
// Body (spec.md §3.4). A Scheme with no quantified ids is monomorphic.
type Scheme struct {
	Quantified []int64
	Body       Type
}

// Mono wraps a monomorphic type as a trivial (unquantified) scheme.
func Mono(t Type) Scheme {
	return Scheme{Body: t}
}

// String renders a type for diagnostics (VF4001's expected/actual pair).
// It is not round-trippable surface syntax, only a readable approximation.
func String(t Type) string {
	switch n := Prune(t).(type) {
	case *Var:
		return fmt.Sprintf("t%d", n.ID)
	case Const:
		if len(n.Name) > 1 && n.Name[0] == '#' {
			return n.Name[1:]
		}
		return n.Name
	case App:
		s := n.Ctor + "<"
		for i, a := range n.Args {
			if i > 0 {
				s += ", "
			}
			s += String(a)
		}
		return s + ">"
	case Fun:
		return "(" + String(n.Param) + ") -> " + String(n.Result)
	case *Record:
		s := "{"
		first := true
		for name, ft := range n.Fields {
			if !first {
				s += ", "
			}
			first = false
			s += name + ": " + String(ft)
		}
		if n.Open {
			s += ", .."
		}
		return s + "}"
	case Variant:
		s := n.Name
		if len(n.Args) > 0 {
			s += "("
			for i, a := range n.Args {
				if i > 0 {
					s += ", "
				}
				s += String(a)
			}
			s += ")"
		}
		return s
	case Tuple:
		s := "("
		for i, e := range n.Elements {
			if i > 0 {
				s += ", "
			}
			s += String(e)
		}
		return s + ")"
	case Ref:
		return "Ref<" + String(n.Inner) + ">"
	case Union:
		s := ""
		for i, a := range n.Alts {
			if i > 0 {
				s += " | "
			}
			s += String(a)
		}
		return s
	case Error:
		return "<error>"
	default:
		return "<unknown type>"
	}
}
