package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// inferLet implements spec.md §4.4.4's Let rule, including the value
// restriction: only a syntactic value's type is generalised, everything
// else stays monomorphic even if its inferred type is otherwise
// polymorphic-looking.
func (ic *inferCtx) inferLet(n *core.Let) types.Type {
	ic.ctx.EnterLevel()
	vt := ic.infer(n.Value)
	ic.ctx.LeaveLevel()

	generalize := isSyntacticValue(n.Value)
	if generalize {
		ic.defaultNumerics(vt)
	}

	// Bind the pattern against vt itself, never against a copy with fresh
	// ids: each binding's component type must stay the exact Var objects
	// vt is built from so that generalising it below (per binding, not
	// once for the whole scheme) quantifies the right ids at the right
	// level. Instantiating first and generalising after produces a scheme
	// whose Quantified ids don't occur in its own Body (spec.md §4.4.2
	// generalises vt's free vars, which only exist before instantiation).
	bindings := ic.checkPattern(n.Pat, vt)
	extEnv := ic.env
	for _, b := range bindings {
		// spec.md §4.4.6: pattern bindings are individually monomorphic —
		// each binding's own component type is generalised on its own,
		// not re-keyed to some whole-scheme quantified list.
		var scheme types.Scheme
		if generalize {
			scheme = ic.ctx.Generalize(b.typ)
		} else {
			scheme = types.Mono(b.typ)
		}
		extEnv = extEnv.WithValue(b.name, scheme)
	}
	return ic.withEnv(extEnv).infer(n.Body)
}

// inferLetRec implements spec.md §4.4.4's LetRec rule: pre-bind every
// name to a fresh monomorphic Var one level deeper, type-check every
// right-hand side against that pre-bound (monomorphic) environment so
// recursive self-references cannot be polymorphic, then generalise each
// binding whose own right-hand side is a syntactic value.
func (ic *inferCtx) inferLetRec(n *core.LetRec) types.Type {
	ic.ctx.EnterLevel()
	preVars := make(map[string]*types.Var, len(n.Bindings))
	extEnv := ic.env
	for _, b := range n.Bindings {
		v := ic.ctx.FreshVarAt(ic.ctx.Level() + 1)
		preVars[b.Name] = v
		extEnv = extEnv.WithValue(b.Name, types.Mono(v))
	}

	rhsTypes := make(map[string]types.Type, len(n.Bindings))
	for _, b := range n.Bindings {
		sub := ic.withEnv(extEnv)
		rt := sub.infer(b.Value)
		sub.unifyAt(preVars[b.Name], rt, b.Sp, diag.CodeTypeMismatch)
		rhsTypes[b.Name] = rt
	}
	ic.ctx.LeaveLevel()

	finalEnv := ic.env
	for _, b := range n.Bindings {
		vt := preVars[b.Name]
		if isSyntacticValue(b.Value) {
			ic.defaultNumerics(vt)
			finalEnv = finalEnv.WithValue(b.Name, ic.ctx.Generalize(vt))
		} else {
			finalEnv = finalEnv.WithValue(b.Name, types.Mono(vt))
		}
	}
	return ic.withEnv(finalEnv).infer(n.Body)
}
