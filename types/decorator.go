package types

// TypeDefKind distinguishes the three shapes a user type declaration can
// take (spec.md §4.3/§6.3: alias, record, variant). It mirrors
// core.TypeDefKind's three values without importing core, since types
// must not depend on core (core depends on nothing above ast; types sits
// below infer, which consumes both).
type TypeDefKind int

const (
	TypeDefAlias TypeDefKind = iota
	TypeDefRecord
	TypeDefVariant
)

// VariantCase is one constructor of a variant type declaration, e.g.
// `Some(a)` in `type Option<a> = None | Some(a)`.
type VariantCase struct {
	Name       string
	FieldTypes []Type
}

// TypeCtor is a type-namespace entry (spec.md §4.4.3's `type: name ->
// TypeCtor`): what a named type declaration means, used to elaborate a
// surface type annotation (`Option<Int>`) into a Type, and, for variants,
// to build each case's constructor function scheme — one nominal kind with
// its own equality rule, a variant's Name, that types.go's Variant keys
// equality off of.
type TypeCtor struct {
	Name   string
	Params []string // quantified type parameters, e.g. ["a"] for Option<a>

	Kind TypeDefKind

	// Alias is the aliased type body, valid when Kind == TypeDefAlias.
	// Params occurring in it are the ones quantified over.
	Alias Type

	// Fields is the field set, valid when Kind == TypeDefRecord.
	Fields map[string]Type

	// Cases is the constructor list, valid when Kind == TypeDefVariant.
	Cases []VariantCase
}

// Arity is the number of type parameters this constructor expects, used
// as the first, cheap filter before any unification is attempted (spec.md
// §4.4.4's external-overload-dispatch note applies the same arity-first
// strategy to function overloads).
func (c *TypeCtor) Arity() int {
	return len(c.Params)
}

// Instantiate elaborates this TypeCtor applied to args into a concrete
// Type, substituting each Param with the corresponding arg. Kind ==
// TypeDefRecord and TypeDefVariant both produce a Variant (this type's
// own nominal identity is what distinguishes instances, not its shape) so
// that two differently-named record types with identical fields are
// still rejected by Unify's nominal Variant rule; TypeDefAlias instead
// substitutes into Alias and returns the result directly, since an alias
// has no identity of its own (spec.md §4.3: aliases are transparent).
func (c *TypeCtor) Instantiate(args []Type) Type {
	if c.Kind == TypeDefAlias {
		return substitute(c.Alias, c.Params, args)
	}
	return Variant{Name: c.Name, Args: args}
}

// ConstructorScheme builds the function scheme for one of this TypeCtor's
// variant cases (spec.md §4.4.4's Variant rule: "look up constructor's
// function scheme; instantiate; apply arguments as for App"). A
// zero-field case (`None`) yields a monomorphic-bodied scheme whose Body
// is the Variant itself rather than a Fun; a multi-field case curries,
// matching Core's single-arg App/Lambda shape. freshID mints an id for
// each of this type's own parameters (infer.Context.FreshID); callers
// build each scheme once and store it in the environment, and every use
// site instantiates it fresh.
func (c *TypeCtor) ConstructorScheme(caseName string, freshID func() int64) (Scheme, bool) {
	var vc *VariantCase
	for i := range c.Cases {
		if c.Cases[i].Name == caseName {
			vc = &c.Cases[i]
			break
		}
	}
	if vc == nil {
		return Scheme{}, false
	}

	quantified := make([]int64, 0, len(c.Params))
	paramVars := make(map[string]Type, len(c.Params))
	args := make([]Type, len(c.Params))
	for i, p := range c.Params {
		v := NewVar(freshID(), 0)
		quantified = append(quantified, v.ID)
		paramVars[p] = v
		args[i] = v
	}

	result := Type(Variant{Name: c.Name, Args: args})
	body := result
	for i := len(vc.FieldTypes) - 1; i >= 0; i-- {
		body = Fun{Param: substituteVars(vc.FieldTypes[i], paramVars), Result: body}
	}
	return Scheme{Quantified: quantified, Body: body}, true
}

// SubstituteParams replaces each of params's named placeholders with the
// corresponding entry in args throughout t. It is substitute's exported
// form, for callers outside this package that need to specialize a
// variant case's field types against a concrete instantiation (e.g.
// exhaustive's signature lookup recursing into Option<Bool>'s Some case).
func SubstituteParams(t Type, params []string, args []Type) Type {
	return substitute(t, params, args)
}

// substitute replaces each named param with its corresponding Type in t.
func substitute(t Type, params []string, args []Type) Type {
	m := make(map[string]Type, len(params))
	for i, p := range params {
		if i < len(args) {
			m[p] = args[i]
		}
	}
	return substituteVars(t, m)
}

// substituteVars is substitute's structural walk, shared with
// ConstructorScheme which builds its map directly from fresh Vars.
func substituteVars(t Type, m map[string]Type) Type {
	switch n := t.(type) {
	case Const:
		// a type declaration's body represents a bare parameter reference
		// (`a` in `type Box<a> = { value: a }`) as a Const named "#"+param
		// (see infer's type-annotation elaborator); every other Const is a
		// ground type and passes through unchanged.
		if len(n.Name) > 1 && n.Name[0] == '#' {
			if v, bound := m[n.Name[1:]]; bound {
				return v
			}
		}
		return n
	case App:
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteVars(a, m)
		}
		return App{Ctor: n.Ctor, Args: args}
	case Fun:
		return Fun{Param: substituteVars(n.Param, m), Result: substituteVars(n.Result, m)}
	case *Record:
		fields := make(map[string]Type, len(n.Fields))
		for name, ft := range n.Fields {
			fields[name] = substituteVars(ft, m)
		}
		return &Record{Fields: fields, Open: n.Open}
	case Variant:
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteVars(a, m)
		}
		return Variant{Name: n.Name, Args: args}
	case Tuple:
		elems := make([]Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = substituteVars(e, m)
		}
		return Tuple{Elements: elems}
	case Ref:
		return Ref{Inner: substituteVars(n.Inner, m)}
	case Union:
		alts := make([]Type, len(n.Alts))
		for i, a := range n.Alts {
			alts[i] = substituteVars(a, m)
		}
		return Union{Alts: alts}
	default:
		return t
	}
}
