package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/exhaustive"
	"github.com/vibefun-lang/vibefun/types"
)

// inferMatch implements spec.md §4.4.4's Match rule. Exhaustiveness and
// reachability (spec.md §4.5) run afterward, over the now-fully-typed
// scrutinee and case patterns, from the exhaustive package — kept out of
// this traversal because it needs the *completed* case-pattern set at
// once, not a per-case fold.
func (ic *inferCtx) inferMatch(n *core.Match) types.Type {
	st := ic.infer(n.Scrutinee)
	result := ic.ctx.FreshVar()
	for _, c := range n.Cases {
		bindings := ic.checkPattern(c.Pat, st)
		extEnv := ic.env
		for _, b := range bindings {
			extEnv = extEnv.WithValue(b.name, types.Mono(b.typ))
		}
		sub := ic.withEnv(extEnv)
		if c.Guard != nil {
			gt := sub.infer(c.Guard)
			sub.unifyAt(gt, types.Bool, c.Guard.Span(), diag.CodeTypeMismatch)
		}
		bt := sub.infer(c.Body)
		ic.unifyAt(bt, result, c.Body.Span(), diag.CodeTypeMismatch)
	}
	exhaustive.Check(n.Cases, st, n.Sp, ic.env, ic.bag)
	return ic.record(n, result)
}
