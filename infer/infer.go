package infer

import (
	"strconv"

	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/span"
	"github.com/vibefun-lang/vibefun/types"
)

func itoa(n int) string { return strconv.Itoa(n) }

// inferCtx threads the services spec.md §4.4 organises inference around
// (level counter, environment, diagnostic bag) through one traversal of
// one module, plus the per-node Type map that is this checker's "typed
// core AST" output — Core nodes carry no Type field of their own, so the
// result of inference is recorded out-of-band, keyed by node identity.
type inferCtx struct {
	ctx   *Context
	env   *types.Env
	bag   *diag.Bag
	types map[core.Expr]types.Type

	// numericVars tracks Vars minted for an arithmetic operator's shared
	// operand/result type (spec.md §4.4.5): if still unbound at the
	// generalisation boundary, they default to Int rather than staying
	// polymorphic.
	numericVars map[int64]bool
}

func newInferCtx(ctx *Context, env *types.Env, bag *diag.Bag) *inferCtx {
	return &inferCtx{
		ctx:         ctx,
		env:         env,
		bag:         bag,
		types:       make(map[core.Expr]types.Type),
		numericVars: make(map[int64]bool),
	}
}

// withEnv returns a shallow copy of ic scoped to a new environment,
// sharing the same ctx/bag/types/numericVars (those are per-run, not
// per-scope).
func (ic *inferCtx) withEnv(env *types.Env) *inferCtx {
	return &inferCtx{ctx: ic.ctx, env: env, bag: ic.bag, types: ic.types, numericVars: ic.numericVars}
}

// record stores the inferred type for e and returns it, so call sites can
// write `return ic.record(e, t)`.
func (ic *inferCtx) record(e core.Expr, t types.Type) types.Type {
	ic.types[e] = t
	return t
}

func (ic *inferCtx) markNumeric(v *types.Var) {
	ic.numericVars[v.ID] = true
}

// defaultNumerics walks the free vars of t and binds any still-unbound
// numeric var to Int (spec.md §4.4.5's generalisation-boundary default).
func (ic *inferCtx) defaultNumerics(t types.Type) {
	vars := make(map[int64]*types.Var)
	freeVars(t, vars)
	for id, v := range vars {
		if ic.numericVars[id] {
			if _, unbound := types.Prune(v).(*types.Var); unbound {
				_ = types.Unify(v, types.Int)
			}
		}
	}
}

// isSyntacticValue implements spec.md §4.4.4's value-restriction
// predicate: literal, variable, lambda, constructor applied to values,
// record of values, list (here: Cons/Nil variant) of values, tuple of
// values.
func isSyntacticValue(e core.Expr) bool {
	switch n := e.(type) {
	case *core.IntLit, *core.FloatLit, *core.StringLit, *core.BoolLit, *core.UnitLit, *core.Var, *core.Lambda:
		return true
	case *core.Variant:
		for _, a := range n.Args {
			if !isSyntacticValue(a) {
				return false
			}
		}
		return true
	case *core.Record:
		for _, f := range n.Fields {
			if !isSyntacticValue(f.Value) {
				return false
			}
		}
		return true
	case *core.Tuple:
		for _, el := range n.Elements {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *core.App:
		// applications, `ref(x)` included, are not values: a let-bound ref
		// stays monomorphic (DESIGN.md "ref as builtin").
		return false
	default:
		return false
	}
}

// infer implements spec.md §4.4.4's infer(env, expr) -> Type.
func (ic *inferCtx) infer(e core.Expr) types.Type {
	switch n := e.(type) {
	case *core.IntLit:
		return ic.record(e, types.Int)
	case *core.FloatLit:
		return ic.record(e, types.Float)
	case *core.StringLit:
		return ic.record(e, types.String)
	case *core.BoolLit:
		return ic.record(e, types.Bool)
	case *core.UnitLit:
		return ic.record(e, types.Unit)

	case *core.Var:
		scheme, ok := ic.env.LookupValue(n.Name)
		if !ok {
			ic.bag.Add(diag.New(diag.CodeUndefinedVar, n.Sp, "undefined variable "+n.Name).
				WithHint(diag.SuggestName(n.Name, ic.env.ValueNames())))
			return ic.record(e, ic.ctx.FreshError())
		}
		return ic.record(e, ic.ctx.Instantiate(scheme))

	case *core.Lambda:
		a := ic.ctx.FreshVar()
		bindings := ic.checkPattern(n.Param, a)
		extEnv := ic.env
		for _, b := range bindings {
			extEnv = extEnv.WithValue(b.name, types.Mono(b.typ))
		}
		bodyT := ic.withEnv(extEnv).infer(n.Body)
		return ic.record(e, types.Fun{Param: a, Result: bodyT})

	case *core.App:
		ft := ic.infer(n.Func)
		at := ic.infer(n.Arg)
		r := ic.ctx.FreshVar()
		code := diag.CodeTypeMismatch
		switch types.Prune(ft).(type) {
		case types.Fun, *types.Var, types.Error:
		default:
			code = diag.CodeExpectedFunction
		}
		ic.unifyAt(ft, types.Fun{Param: at, Result: r}, n.Sp, code)
		return ic.record(e, r)

	case *core.Let:
		return ic.inferLet(n)

	case *core.LetRec:
		return ic.inferLetRec(n)

	case *core.If:
		ct := ic.infer(n.Cond)
		ic.unifyAt(ct, types.Bool, n.Sp, diag.CodeTypeMismatch)
		tt := ic.infer(n.Then)
		et := ic.infer(n.Else)
		ic.unifyAt(et, tt, n.Sp, diag.CodeTypeMismatch)
		return ic.record(e, tt)

	case *core.Match:
		return ic.inferMatch(n)

	case *core.Record:
		fields := make(map[string]types.Type, len(n.Fields))
		for _, f := range n.Fields {
			fields[f.Name] = ic.infer(f.Value)
		}
		return ic.record(e, types.NewRecord(fields))

	case *core.RecordAccess:
		rt := ic.infer(n.Record)
		ft := ic.ctx.FreshVar()
		ic.unifyAt(rt, types.NewOpenRecord(n.Field, ft), n.Sp, diag.CodeMissingField)
		return ic.record(e, ft)

	case *core.RecordUpdate:
		return ic.inferRecordUpdate(n)

	case *core.Variant:
		return ic.inferVariant(n)

	case *core.Tuple:
		elems := make([]types.Type, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = ic.infer(el)
		}
		return ic.record(e, types.Tuple{Elements: elems})

	case *core.BinOp:
		return ic.inferBinOp(n)

	case *core.UnaryOp:
		return ic.inferUnaryOp(n)

	case *core.TypeAnnotation:
		el := newElaborator(ic.ctx, ic.env, ic.bag)
		t := el.elaborate(n.Type)
		ic.check(n.Expr, t)
		return ic.record(e, t)

	case *core.Unsafe:
		inner := ic.infer(n.Expr)
		return ic.record(e, inner)

	case *core.ErrorExpr:
		return ic.record(e, ic.ctx.FreshError())

	default:
		return ic.ctx.FreshError()
	}
}

// check implements spec.md §4.4.4's check(env, expr, expected). Most
// nodes fall back to infer-then-unify; Lambda pushes the expected
// parameter/result type inward instead of minting a fresh var first.
func (ic *inferCtx) check(e core.Expr, expected types.Type) types.Type {
	if lam, ok := e.(*core.Lambda); ok {
		if ft, ok := types.Prune(expected).(types.Fun); ok {
			bindings := ic.checkPattern(lam.Param, ft.Param)
			extEnv := ic.env
			for _, b := range bindings {
				extEnv = extEnv.WithValue(b.name, types.Mono(b.typ))
			}
			ic.withEnv(extEnv).check(lam.Body, ft.Result)
			return ic.record(e, expected)
		}
	}
	t := ic.infer(e)
	ic.unifyAt(t, expected, e.Span(), diag.CodeTypeMismatch)
	return t
}

// unifyAt unifies t1 against t2 and, on failure, emits a diagnostic with
// the given code at sp carrying the expected/actual pair for VF4001-style
// messages. The caller's already-computed type is left as-is: recovery
// continues with the (now possibly-tainted) type rather than substituting
// an Error sentinel, matching a standard non-transactional unifier.
func (ic *inferCtx) unifyAt(t1, t2 types.Type, sp span.Span, code diag.Code) {
	err := types.Unify(t1, t2)
	if err == nil {
		return
	}
	switch e := err.(type) {
	case *types.OccursError:
		ic.bag.Add(diag.New(diag.CodeOccursCheck, sp, e.Error()))
	case *types.MismatchError:
		ic.bag.Add(diag.New(code, sp, "type mismatch").WithTypes(types.String(e.Expected), types.String(e.Actual)))
	default:
		ic.bag.Add(diag.New(code, sp, err.Error()))
	}
}
