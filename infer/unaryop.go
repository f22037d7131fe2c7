package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// inferUnaryOp implements spec.md §4.4.4's UnaryOp rule. NotOrDerefUnresolved
// is resolved here, in place on the node (core.UnaryOp.Op is mutated):
// spec.md §3.2 says the `!` lexeme is disambiguated at type-check time by
// peeking the pruned operand type — `Ref<T>` resolves to Deref, anything
// else is unified against Bool and resolves to NotBool. This is the one
// point where inference rewrites the Core tree it is given rather than
// only annotating it via the Type map.
func (ic *inferCtx) inferUnaryOp(n *core.UnaryOp) types.Type {
	switch n.Op {
	case core.Neg:
		v := ic.ctx.FreshVar()
		ic.markNumeric(v)
		ot := ic.infer(n.Operand)
		ic.unifyAt(ot, v, n.Operand.Span(), diag.CodeTypeMismatch)
		return ic.record(n, v)

	case core.NotBool:
		ot := ic.infer(n.Operand)
		ic.unifyAt(ot, types.Bool, n.Operand.Span(), diag.CodeTypeMismatch)
		return ic.record(n, types.Bool)

	case core.Deref:
		ot := ic.infer(n.Operand)
		inner := ic.ctx.FreshVar()
		ic.unifyAt(ot, types.Ref{Inner: inner}, n.Operand.Span(), diag.CodeTypeMismatch)
		return ic.record(n, inner)

	case core.NotOrDerefUnresolved:
		ot := ic.infer(n.Operand)
		if r, ok := types.Prune(ot).(types.Ref); ok {
			n.Op = core.Deref
			return ic.record(n, r.Inner)
		}
		n.Op = core.NotBool
		ic.unifyAt(ot, types.Bool, n.Operand.Span(), diag.CodeTypeMismatch)
		return ic.record(n, types.Bool)

	default:
		ic.infer(n.Operand)
		return ic.record(n, ic.ctx.FreshError())
	}
}
