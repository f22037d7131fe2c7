package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// inferVariant implements spec.md §4.4.4's Variant rule: look up the
// constructor's function scheme in the value namespace, instantiate it
// fresh, then apply each argument exactly as App applies a curried
// argument — so `Some(1)` behaves like `App{App{Var{"Some"}, 1}}` would,
// without actually going through App nodes (the desugarer keeps a
// constructor application as one Variant node rather than a curried
// App chain, spec.md §4.3).
func (ic *inferCtx) inferVariant(n *core.Variant) types.Type {
	scheme, ok := ic.env.LookupValue(n.Name)
	if !ok {
		ic.bag.Add(diag.New(diag.CodeUndefinedCtor, n.Sp, "undefined constructor "+n.Name).
			WithHint(diag.SuggestName(n.Name, ic.env.ValueNames())))
		for _, a := range n.Args {
			ic.infer(a)
		}
		return ic.record(n, ic.ctx.FreshError())
	}

	t := ic.ctx.Instantiate(scheme)
	for _, a := range n.Args {
		at := ic.infer(a)
		r := ic.ctx.FreshVar()
		code := diag.CodeTypeMismatch
		if _, ok := types.Prune(t).(types.Fun); !ok {
			code = diag.CodeArity
		}
		ic.unifyAt(t, types.Fun{Param: at, Result: r}, a.Span(), code)
		t = r
	}
	return ic.record(n, t)
}
