// Package exhaustive implements spec.md §4.5's pattern-matrix usefulness
// and exhaustiveness algorithm: for a finished Match, decide whether every
// case is reachable and whether the cases together cover every value of
// the scrutinee's type, following Maranget's "Warnings for pattern
// matching" usefulness check.
package exhaustive

import "github.com/vibefun-lang/vibefun/core"

// pat is the algorithm's own simplified pattern shape: a wildcard (matches
// anything, including PWildcard, PVar and PRecord — records are
// width-subtyped, so a record pattern can never fail to match its
// scrutinee's shape and is treated as a wildcard here) or a named
// constructor applied to sub-patterns. Tuples and literals are modelled as
// constructors too: a tuple has exactly one constructor ("#tuple") of
// fixed arity, a literal has one zero-arity constructor per distinct
// value.
type pat struct {
	wildcard bool
	ctor     string
	args     []pat
}

func wildcardPat() pat { return pat{wildcard: true} }

func ctorPat(name string, args []pat) pat { return pat{ctor: name, args: args} }

func wildcards(n int) []pat {
	out := make([]pat, n)
	for i := range out {
		out[i] = wildcardPat()
	}
	return out
}

func translate(p core.Pattern) pat {
	switch n := p.(type) {
	case *core.PWildcard, *core.PVar:
		return wildcardPat()
	case *core.PLiteral:
		return ctorPat(literalKey(n), nil)
	case *core.PConstructor:
		args := make([]pat, len(n.Args))
		for i, a := range n.Args {
			args[i] = translate(a)
		}
		return ctorPat(n.Name, args)
	case *core.PTuple:
		args := make([]pat, len(n.Elements))
		for i, e := range n.Elements {
			args[i] = translate(e)
		}
		return ctorPat("#tuple", args)
	case *core.PRecord:
		return wildcardPat()
	default:
		return wildcardPat()
	}
}

func literalKey(n *core.PLiteral) string {
	switch n.Kind {
	case core.PLitInt:
		return "int:" + n.Text
	case core.PLitFloat:
		return "float:" + n.Text
	case core.PLitString:
		return "str:" + n.Str
	case core.PLitBool:
		if n.Bool {
			return "bool:true"
		}
		return "bool:false"
	default:
		return "unit:()"
	}
}

// describe renders a pat as a counter-example fragment, e.g. "Some(_)" or
// "(1, _)", for a non-exhaustive match's diagnostic hint.
func describe(p pat) string {
	if p.wildcard {
		return "_"
	}
	switch p.ctor {
	case "#tuple":
		s := "("
		for i, a := range p.args {
			if i > 0 {
				s += ", "
			}
			s += describe(a)
		}
		return s + ")"
	}
	if len(p.args) == 0 {
		return displayLiteral(p.ctor)
	}
	s := p.ctor + "("
	for i, a := range p.args {
		if i > 0 {
			s += ", "
		}
		s += describe(a)
	}
	return s + ")"
}

func displayLiteral(key string) string {
	for _, prefix := range []string{"int:", "float:", "str:", "bool:"} {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			return key[len(prefix):]
		}
	}
	if key == "unit:()" {
		return "()"
	}
	return key
}
