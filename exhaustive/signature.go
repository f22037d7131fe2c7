package exhaustive

import "github.com/vibefun-lang/vibefun/types"

// ctorSig is one constructor in a type's signature: its matrix name and
// the types of the sub-patterns it would specialize a column into.
type ctorSig struct {
	name     string
	argTypes []types.Type
}

// signature returns every constructor of t's type and whether that set is
// complete (spec.md §4.5: Bool and user variants have a complete,
// enumerable signature; Int/Float/String do not — a literal pattern can
// never exhaust them, so only a wildcard can). Tuples and records are
// folded into the same shape: a tuple has one constructor of fixed arity,
// a record's pattern is already collapsed to a wildcard by translate, so
// it never reaches here as a ctor to specialize against.
func signature(t types.Type, env *types.Env) ([]ctorSig, bool) {
	switch n := types.Prune(t).(type) {
	case types.Const:
		switch n.Name {
		case "Bool":
			return []ctorSig{{name: "bool:true"}, {name: "bool:false"}}, true
		case "Unit":
			return []ctorSig{{name: "unit:()"}}, true
		}
		return nil, false

	case types.Tuple:
		return []ctorSig{{name: "#tuple", argTypes: n.Elements}}, true

	case types.Ref:
		return []ctorSig{{name: "#ref", argTypes: []types.Type{n.Inner}}}, true

	case types.Variant:
		ctor, ok := env.LookupType(n.Name)
		if !ok || ctor.Kind != types.TypeDefVariant {
			return nil, false
		}
		sig := make([]ctorSig, len(ctor.Cases))
		for i, c := range ctor.Cases {
			argTypes := make([]types.Type, len(c.FieldTypes))
			for j, ft := range c.FieldTypes {
				argTypes[j] = types.SubstituteParams(ft, ctor.Params, n.Args)
			}
			sig[i] = ctorSig{name: c.Name, argTypes: argTypes}
		}
		return sig, true

	default:
		// *Record, App (unresolved alias), Var, Error: no enumerable
		// signature the algorithm can complete against; only a wildcard
		// covers these.
		return nil, false
	}
}
