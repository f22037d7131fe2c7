package infer

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// elaborator turns surface type syntax (ast.TypeExpr, carried unevaluated
// into Core per core.go's TypeExpr alias) into types.Type, minting one
// fresh Var per distinct type-variable name the first time it is seen —
// these become the implicit generalisation targets spec.md §4.4.4's
// TypeAnnotation rule describes ("fresh vars for free names that serve
// as implicit generalisation targets at declaration scope"). A fresh
// elaborator must be used per declaration so that `'a` in one signature
// is not accidentally unified with `'a` in another's.
type elaborator struct {
	ctx  *Context
	env  *types.Env
	bag  *diag.Bag
	vars map[string]types.Type
}

func newElaborator(ctx *Context, env *types.Env, bag *diag.Bag) *elaborator {
	return &elaborator{ctx: ctx, env: env, bag: bag, vars: make(map[string]types.Type)}
}

// newDeclElaborator is used for a `type` declaration's own body: its
// declared parameters elaborate to types.Param placeholders (abstract,
// substituted later by TypeCtor.Instantiate/ConstructorScheme) rather
// than fresh unification Vars, since the body is stored once and
// instantiated at every use site, not unified with anything itself.
func newDeclElaborator(ctx *Context, env *types.Env, bag *diag.Bag, params []string) *elaborator {
	el := newElaborator(ctx, env, bag)
	for _, p := range params {
		el.vars[p] = types.Param(p)
	}
	return el
}

func (el *elaborator) elaborate(t ast.TypeExpr) types.Type {
	switch n := t.(type) {
	case *ast.TVar:
		if v, ok := el.vars[n.Name]; ok {
			return v
		}
		v := types.Type(el.ctx.FreshVar())
		el.vars[n.Name] = v
		return v

	case *ast.TNamed:
		switch n.Name {
		case "Int":
			return types.Int
		case "Float":
			return types.Float
		case "String":
			return types.String
		case "Bool":
			return types.Bool
		case "Unit":
			return types.Unit
		}
		ctor, ok := el.env.LookupType(n.Name)
		if !ok {
			el.bag.Add(diag.New(diag.CodeUndefinedType, n.Sp, "undefined type "+n.Name).
				WithHint(diag.SuggestName(n.Name, el.env.TypeNames())))
			return el.ctx.FreshError()
		}
		return ctor.Instantiate(nil)

	case *ast.TApp:
		args := make([]types.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = el.elaborate(a)
		}
		ctor, ok := el.env.LookupType(n.Ctor)
		if !ok {
			el.bag.Add(diag.New(diag.CodeUndefinedType, n.Sp, "undefined type "+n.Ctor).
				WithHint(diag.SuggestName(n.Ctor, el.env.TypeNames())))
			return el.ctx.FreshError()
		}
		return ctor.Instantiate(args)

	case *ast.TFun:
		result := el.elaborate(n.Result)
		for i := len(n.Params) - 1; i >= 0; i-- {
			result = types.Fun{Param: el.elaborate(n.Params[i]), Result: result}
		}
		return result

	case *ast.TRecord:
		fields := make(map[string]types.Type, len(n.Fields))
		for _, f := range n.Fields {
			fields[f.Name] = el.elaborate(f.Type)
		}
		return types.NewRecord(fields)

	case *ast.TVariant:
		// an inline variant type expression has no name of its own; every
		// one elaborates to the same argument-less variant "$anon", and its
		// cases are not recorded.
		args := make([]types.Type, 0)
		return types.Variant{Name: "$anon", Args: args}

	case *ast.TTuple:
		elems := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = el.elaborate(e)
		}
		return types.Tuple{Elements: elems}

	case *ast.TUnion:
		alts := make([]types.Type, len(n.Alts))
		for i, a := range n.Alts {
			alts[i] = el.elaborate(a)
		}
		return types.Union{Alts: alts}

	case *ast.TRef:
		return types.Ref{Inner: el.elaborate(n.Inner)}

	default:
		return el.ctx.FreshError()
	}
}
