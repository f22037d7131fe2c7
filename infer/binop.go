package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// inferBinOp implements spec.md §4.4.4's BinOp rule, split by operator
// family per spec.md §4.4.4/§4.4.5.
func (ic *inferCtx) inferBinOp(n *core.BinOp) types.Type {
	switch n.Op {
	case core.Add, core.Sub, core.Mul, core.Div, core.Mod, core.Pow:
		v := ic.ctx.FreshVar()
		ic.markNumeric(v)
		lt := ic.infer(n.Lhs)
		ic.unifyAt(lt, v, n.Lhs.Span(), diag.CodeTypeMismatch)
		rt := ic.infer(n.Rhs)
		ic.unifyAt(rt, v, n.Rhs.Span(), diag.CodeTypeMismatch)
		return ic.record(n, v)

	case core.Lt, core.Le, core.Gt, core.Ge:
		v := ic.ctx.FreshVar()
		ic.markNumeric(v)
		lt := ic.infer(n.Lhs)
		ic.unifyAt(lt, v, n.Lhs.Span(), diag.CodeTypeMismatch)
		rt := ic.infer(n.Rhs)
		ic.unifyAt(rt, v, n.Rhs.Span(), diag.CodeTypeMismatch)
		return ic.record(n, types.Bool)

	case core.Eq, core.Neq:
		lt := ic.infer(n.Lhs)
		rt := ic.infer(n.Rhs)
		ic.unifyAt(lt, rt, n.Sp, diag.CodeTypeMismatch)
		return ic.record(n, types.Bool)

	case core.And, core.Or:
		lt := ic.infer(n.Lhs)
		ic.unifyAt(lt, types.Bool, n.Lhs.Span(), diag.CodeTypeMismatch)
		rt := ic.infer(n.Rhs)
		ic.unifyAt(rt, types.Bool, n.Rhs.Span(), diag.CodeTypeMismatch)
		return ic.record(n, types.Bool)

	case core.Concat:
		lt := ic.infer(n.Lhs)
		ic.unifyAt(lt, types.String, n.Lhs.Span(), diag.CodeTypeMismatch)
		rt := ic.infer(n.Rhs)
		ic.unifyAt(rt, types.String, n.Rhs.Span(), diag.CodeTypeMismatch)
		return ic.record(n, types.String)

	case core.Assign:
		lt := ic.infer(n.Lhs)
		inner := ic.ctx.FreshVar()
		ic.unifyAt(lt, types.Ref{Inner: inner}, n.Lhs.Span(), diag.CodeTypeMismatch)
		rt := ic.infer(n.Rhs)
		ic.unifyAt(rt, inner, n.Rhs.Span(), diag.CodeTypeMismatch)
		return ic.record(n, types.Unit)

	default:
		ic.infer(n.Lhs)
		ic.infer(n.Rhs)
		return ic.record(n, ic.ctx.FreshError())
	}
}
