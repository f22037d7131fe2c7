package infer

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/types"
)

// binding is one name a pattern introduces, always monomorphic (spec.md
// §4.4.6: "no generalisation inside patterns; a let-polymorphism boundary
// applies only at the whole let binding").
type binding struct {
	name string
	typ  types.Type
}

// checkPattern implements spec.md §4.4.6's check_pattern(p, expected).
// env is consulted for constructor lookups only; the returned bindings
// are applied to the environment by the caller (Let/Match/LetRec, which
// know whether those bindings should subsequently be generalised).
func (ic *inferCtx) checkPattern(p core.Pattern, expected types.Type) []binding {
	switch n := p.(type) {
	case *core.PWildcard:
		return nil

	case *core.PVar:
		return []binding{{name: n.Name, typ: expected}}

	case *core.PLiteral:
		lt := literalPatternType(n)
		ic.unifyAt(expected, lt, n.Sp, diag.CodeTypeMismatch)
		return nil

	case *core.PConstructor:
		scheme, ok := ic.env.LookupValue(n.Name)
		if !ok {
			ic.bag.Add(diag.New(diag.CodeUndefinedCtor, n.Sp, "undefined constructor "+n.Name).
				WithHint(diag.SuggestName(n.Name, ic.env.ValueNames())))
			for _, a := range n.Args {
				ic.checkPattern(a, ic.ctx.FreshError())
			}
			return nil
		}
		ct := ic.ctx.Instantiate(scheme)
		var params []types.Type
		result := ct
		for {
			f, ok := types.Prune(result).(types.Fun)
			if !ok {
				break
			}
			params = append(params, f.Param)
			result = f.Result
		}
		if len(params) != len(n.Args) {
			ic.bag.Add(diag.New(diag.CodeArity, n.Sp, "constructor "+n.Name+" expects "+itoa(len(params))+" argument(s)"))
			for _, a := range n.Args {
				ic.checkPattern(a, ic.ctx.FreshError())
			}
			return nil
		}
		ic.unifyAt(expected, result, n.Sp, diag.CodeTypeMismatch)
		var out []binding
		for i, a := range n.Args {
			out = append(out, ic.checkPattern(a, params[i])...)
		}
		return out

	case *core.PRecord:
		fields := make(map[string]types.Type, len(n.Fields))
		var out []binding
		for _, f := range n.Fields {
			ft := ic.ctx.FreshVar()
			fields[f.Name] = ft
			out = append(out, ic.checkPattern(f.Pattern, ft)...)
		}
		// width-subtyped: an Open record accepts extra fields on expected.
		ic.unifyAt(expected, &types.Record{Fields: fields, Open: true}, n.Sp, diag.CodeTypeMismatch)
		return out

	case *core.PTuple:
		elems := make([]types.Type, len(n.Elements))
		for i := range n.Elements {
			elems[i] = ic.ctx.FreshVar()
		}
		ic.unifyAt(expected, types.Tuple{Elements: elems}, n.Sp, diag.CodeTypeMismatch)
		var out []binding
		for i, e := range n.Elements {
			out = append(out, ic.checkPattern(e, elems[i])...)
		}
		return out

	default:
		return nil
	}
}

func literalPatternType(n *core.PLiteral) types.Type {
	switch n.Kind {
	case core.PLitInt:
		return types.Int
	case core.PLitFloat:
		return types.Float
	case core.PLitString:
		return types.String
	case core.PLitBool:
		return types.Bool
	default:
		return types.Unit
	}
}

// patternVarNames collects every name a pattern binds, used by
// checkLetDecl to pre-bind a recursive declaration's names.
func patternVarNames(p core.Pattern) []string {
	switch n := p.(type) {
	case *core.PVar:
		return []string{n.Name}
	case *core.PConstructor:
		var out []string
		for _, a := range n.Args {
			out = append(out, patternVarNames(a)...)
		}
		return out
	case *core.PRecord:
		var out []string
		for _, f := range n.Fields {
			out = append(out, patternVarNames(f.Pattern)...)
		}
		return out
	case *core.PTuple:
		var out []string
		for _, e := range n.Elements {
			out = append(out, patternVarNames(e)...)
		}
		return out
	default:
		return nil
	}
}
