// Package infer implements the Hindley–Milner type checker (spec.md §4.4):
// Core AST in, typed Core AST (as a per-node Type map) out. It is
// organised, per spec.md §4.4, around four services: the unifier
// (types.Unify), the level counter and fresh-name minting (Context,
// here), the environment (types.Env), and the inference traversal
// (infer.go/pattern.go/decl.go).
package infer

import "github.com/vibefun-lang/vibefun/types"

// Context is the explicit, per-run state spec.md §9 requires in place of
// a process-wide singleton: the Rémy level counter and the fresh id
// source for both Vars and Error sentinels. A Context must never be
// shared between two concurrent Check calls over different files.
type Context struct {
	level   int
	nextVar int64
}

// NewContext returns a Context with current_level = 0 (spec.md §4.4.2).
func NewContext() *Context {
	return &Context{}
}

// EnterLevel brackets the start of a let right-hand side.
func (c *Context) EnterLevel() { c.level++ }

// LeaveLevel brackets the end of a let right-hand side.
func (c *Context) LeaveLevel() { c.level-- }

// Level is the current level, used directly by LetRec's pre-binding step
// (spec.md §4.4.4: "pre-bind every name to a fresh monomorphic Var at
// level = current_level + 1").
func (c *Context) Level() int { return c.level }

// FreshVar mints an unbound type variable at the current level.
func (c *Context) FreshVar() *types.Var {
	c.nextVar++
	return types.NewVar(c.nextVar, c.level)
}

// FreshVarAt mints an unbound type variable at an explicit level (used by
// LetRec's pre-binding, which needs level+1, and at level 0 by the
// Prelude's `ref` scheme and ApplyManifest, whose schemes are built once
// and then instantiated fresh at every use site).
func (c *Context) FreshVarAt(level int) *types.Var {
	c.nextVar++
	return types.NewVar(c.nextVar, level)
}

// FreshID mints a bare id, for ConstructorScheme's per-parameter ids.
func (c *Context) FreshID() int64 {
	c.nextVar++
	return c.nextVar
}

// FreshError mints an Error sentinel (spec.md §7's recovery placeholder).
func (c *Context) FreshError() types.Error {
	c.nextVar++
	return types.NewError(c.nextVar)
}

// freeVars collects the ids of every unbound Var reachable in t.
func freeVars(t types.Type, out map[int64]*types.Var) {
	switch n := types.Prune(t).(type) {
	case *types.Var:
		out[n.ID] = n
	case types.App:
		for _, a := range n.Args {
			freeVars(a, out)
		}
	case types.Fun:
		freeVars(n.Param, out)
		freeVars(n.Result, out)
	case *types.Record:
		for _, ft := range n.Fields {
			freeVars(ft, out)
		}
	case types.Variant:
		for _, a := range n.Args {
			freeVars(a, out)
		}
	case types.Tuple:
		for _, e := range n.Elements {
			freeVars(e, out)
		}
	case types.Ref:
		freeVars(n.Inner, out)
	case types.Union:
		for _, a := range n.Alts {
			freeVars(a, out)
		}
	}
}

// Generalize returns a TypeScheme quantifying every free Var of t whose
// level is greater than the current level (spec.md §4.4.2): such
// variables were created inside the let's right-hand side and cannot
// appear in the surrounding scope, so they are safe to generalise. Free
// vars at or below the current level remain monomorphic — they are still
// reachable from an enclosing, already-generalised binding.
func (c *Context) Generalize(t types.Type) types.Scheme {
	vars := make(map[int64]*types.Var)
	freeVars(t, vars)
	var quantified []int64
	for id, v := range vars {
		if v.Level > c.level {
			quantified = append(quantified, id)
		}
	}
	return types.Scheme{Quantified: quantified, Body: t}
}

// Instantiate copies scheme.Body, replacing each quantified id with a
// fresh Var at the current level (spec.md §4.4.2/§4.4.3).
func (c *Context) Instantiate(s types.Scheme) types.Type {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	sub := make(map[int64]types.Type, len(s.Quantified))
	for _, id := range s.Quantified {
		sub[id] = c.FreshVar()
	}
	return substituteQuantified(s.Body, sub)
}

func substituteQuantified(t types.Type, sub map[int64]types.Type) types.Type {
	switch n := types.Prune(t).(type) {
	case *types.Var:
		if r, ok := sub[n.ID]; ok {
			return r
		}
		return n
	case types.App:
		args := make([]types.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteQuantified(a, sub)
		}
		return types.App{Ctor: n.Ctor, Args: args}
	case types.Fun:
		return types.Fun{Param: substituteQuantified(n.Param, sub), Result: substituteQuantified(n.Result, sub)}
	case *types.Record:
		fields := make(map[string]types.Type, len(n.Fields))
		for name, ft := range n.Fields {
			fields[name] = substituteQuantified(ft, sub)
		}
		return &types.Record{Fields: fields, Open: n.Open}
	case types.Variant:
		args := make([]types.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteQuantified(a, sub)
		}
		return types.Variant{Name: n.Name, Args: args}
	case types.Tuple:
		elems := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = substituteQuantified(e, sub)
		}
		return types.Tuple{Elements: elems}
	case types.Ref:
		return types.Ref{Inner: substituteQuantified(n.Inner, sub)}
	case types.Union:
		alts := make([]types.Type, len(n.Alts))
		for i, a := range n.Alts {
			alts[i] = substituteQuantified(a, sub)
		}
		return types.Union{Alts: alts}
	default:
		return n
	}
}
