package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// Result is the type checker's output: the final environment (every
// top-level binding the module exports or could export) and the per-node
// type map recorded during inference — together, the "typed core AST" of
// spec.md §4.
type Result struct {
	Env   *types.Env
	Types map[core.Expr]types.Type
}

// Check type-checks every declaration in mod against env in order,
// threading a freshly-extended environment from one declaration to the
// next (spec.md §4.4.3: later declarations see earlier ones; a module's
// declarations are not a mutually-recursive group unless written as a
// `let rec`/`type ... and ...` group, which the desugarer already
// flattened into bindings that individually carry their own recursion).
func Check(mod *core.Module, env *types.Env, bag *diag.Bag) Result {
	ctx := NewContext()
	ic := newInferCtx(ctx, env, bag)
	for _, d := range mod.Decls {
		if bag.Full() {
			break
		}
		ic.checkDecl(d)
	}
	return Result{Env: ic.env, Types: ic.types}
}

func (ic *inferCtx) checkDecl(d core.Decl) {
	switch n := d.(type) {
	case *core.LetDecl:
		ic.checkLetDecl(n)

	case *core.ExternalDecl:
		ic.checkExternalDecl(n)

	case *core.TypeDecl:
		ic.checkTypeDecl(n)

	case *core.ImportDecl, *core.ExportDecl:
		// name-only for the module resolver (spec.md §6.4); nothing to
		// type-check here.

	default:
	}
}

// checkLetDecl mirrors inferLet's generalisation/value-restriction logic
// but has no inner body to continue into — the rest of the module plays
// that role, via the environment this mutates for checkDecl's caller.
func (ic *inferCtx) checkLetDecl(n *core.LetDecl) {
	ic.ctx.EnterLevel()
	var vt types.Type
	if n.Recursive {
		v := ic.ctx.FreshVarAt(ic.ctx.Level() + 1)
		names := patternVarNames(n.Pat)
		extEnv := ic.env
		for _, name := range names {
			extEnv = extEnv.WithValue(name, types.Mono(v))
		}
		sub := ic.withEnv(extEnv)
		rt := sub.infer(n.Value)
		sub.unifyAt(v, rt, n.Value.Span(), diag.CodeTypeMismatch)
		vt = v
	} else {
		vt = ic.infer(n.Value)
	}
	ic.ctx.LeaveLevel()

	generalize := isSyntacticValue(n.Value)
	if generalize {
		ic.defaultNumerics(vt)
	}

	// See inferLet: bind against vt itself, then generalise each binding's
	// own component individually, rather than instantiating a whole-value
	// scheme and re-keying it to a part that no longer shares its ids.
	bindings := ic.checkPattern(n.Pat, vt)
	for _, b := range bindings {
		var scheme types.Scheme
		if generalize {
			scheme = ic.ctx.Generalize(b.typ)
		} else {
			scheme = types.Mono(b.typ)
		}
		ic.env = ic.env.WithValue(b.name, scheme)
	}
}

// checkExternalDecl elaborates the declared signature and binds it
// directly, with no inference of a body (the body is a JS expression the
// checker never looks inside, spec.md §4.2: external bindings are
// trusted at their declared type).
func (ic *inferCtx) checkExternalDecl(n *core.ExternalDecl) {
	el := newElaborator(ic.ctx, ic.env, ic.bag)
	t := el.elaborate(n.Type)
	scheme := ic.ctx.Generalize(t)
	ic.env = ic.env.WithValue(n.Name, scheme)
}

// checkTypeDecl registers a user type declaration's TypeCtor in the type
// namespace and, for a variant, each case's constructor scheme in the
// value namespace (spec.md §4.4.4's Variant rule depends on these being
// present by the time any expression referencing the constructor is
// type-checked).
func (ic *inferCtx) checkTypeDecl(n *core.TypeDecl) {
	el := newDeclElaborator(ic.ctx, ic.env, ic.bag, n.Params)
	ctor := &types.TypeCtor{Name: n.Name, Params: n.Params, Kind: n.Kind}

	switch n.Kind {
	case core.TypeDefAlias:
		ctor.Alias = el.elaborate(n.Alias)

	case core.TypeDefRecord:
		fields := make(map[string]types.Type, len(n.Fields))
		for _, f := range n.Fields {
			fields[f.Name] = el.elaborate(f.Type)
		}
		ctor.Fields = fields

	case core.TypeDefVariant:
		cases := make([]types.VariantCase, len(n.Cases))
		for i, c := range n.Cases {
			fieldTypes := make([]types.Type, len(c.Args))
			for j, a := range c.Args {
				fieldTypes[j] = el.elaborate(a)
			}
			cases[i] = types.VariantCase{Name: c.Name, FieldTypes: fieldTypes}
		}
		ctor.Cases = cases
	}

	ic.env = ic.env.WithType(n.Name, ctor)
	for _, c := range ctor.Cases {
		scheme, _ := ctor.ConstructorScheme(c.Name, ic.ctx.FreshID)
		ic.env = ic.env.WithValue(c.Name, scheme)
	}
}
