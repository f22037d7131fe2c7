package infer

import "github.com/vibefun-lang/vibefun/types"

// Prelude returns the base Env every module type-checks against: the
// nominal types List (built from list-literal/spread desugaring's Cons/Nil
// chains), Option (needed to typecheck S6's non-exhaustive-match scenario)
// and Result, their constructors, plus the `ref` builtin.
// Everything else a program imports by name (stdlib functions like
// `List.concat`, which spec.md §1 places out of scope as "stdlib
// contents") resolves through the module-boundary interface (spec.md
// §6.4), not through this Prelude — a bare `List.concat` reference with
// no corresponding import is an ordinary VF4002 undefined-variable error,
// same as any other unresolved name.
func Prelude(ctx *Context) *types.Env {
	env := types.NewEnv()

	listCtor := &types.TypeCtor{
		Name:   "List",
		Params: []string{"a"},
		Kind:   types.TypeDefVariant,
	}
	a := types.Param("a")
	listSelf := types.Variant{Name: "List", Args: []types.Type{a}}
	listCtor.Cases = []types.VariantCase{
		{Name: "Nil", FieldTypes: nil},
		{Name: "Cons", FieldTypes: []types.Type{a, listSelf}},
	}
	env = env.WithType("List", listCtor)

	optionCtor := &types.TypeCtor{
		Name:   "Option",
		Params: []string{"a"},
		Kind:   types.TypeDefVariant,
		Cases: []types.VariantCase{
			{Name: "None", FieldTypes: nil},
			{Name: "Some", FieldTypes: []types.Type{a}},
		},
	}
	env = env.WithType("Option", optionCtor)

	resultCtor := &types.TypeCtor{
		Name:   "Result",
		Params: []string{"a", "e"},
		Kind:   types.TypeDefVariant,
		Cases: []types.VariantCase{
			{Name: "Ok", FieldTypes: []types.Type{a}},
			{Name: "Err", FieldTypes: []types.Type{types.Param("e")}},
		},
	}
	env = env.WithType("Result", resultCtor)

	for _, ctor := range []*types.TypeCtor{listCtor, optionCtor, resultCtor} {
		for _, c := range ctor.Cases {
			scheme, _ := ctor.ConstructorScheme(c.Name, ctx.FreshID)
			env = env.WithValue(c.Name, scheme)
		}
	}

	// ref(x): forall a. a -> Ref<a>. Decision (spec.md §9 open question):
	// ref is a builtin bound here rather than an ordinary external. An
	// application `ref(e)` is not a syntactic value, so a let-bound ref is
	// never generalised (DESIGN.md "ref as builtin").
	refParam := ctx.FreshVarAt(0)
	refScheme := types.Scheme{
		Quantified: []int64{refParam.ID},
		Body:       types.Fun{Param: refParam, Result: types.Ref{Inner: refParam}},
	}
	env = env.WithValue("ref", refScheme)

	return env
}
