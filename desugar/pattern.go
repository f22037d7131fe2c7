package desugar

import (
	"sort"

	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
)

// pattern lowers one Surface pattern. POr is handled by the caller
// (matchCase expands it into sibling cases); a POr reaching here directly
// (nested inside a constructor/tuple/record pattern, which the grammar
// does not produce — or-patterns only ever appear as a whole match-case
// pattern) is defensively flattened to its first alternative.
func (d *Desugarer) pattern(p ast.Pattern) core.Pattern {
	switch n := p.(type) {
	case *ast.PWildcard:
		return &core.PWildcard{Sp: n.Sp}
	case *ast.PVar:
		return &core.PVar{Name: n.Name, Sp: n.Sp}
	case *ast.PLiteral:
		return &core.PLiteral{Kind: core.PLiteralKind(n.Kind), Text: n.Text, Str: n.Str, Bool: n.Bool, Sp: n.Sp}
	case *ast.PConstructor:
		args := make([]core.Pattern, len(n.Args))
		for i, a := range n.Args {
			args[i] = d.pattern(a)
		}
		return &core.PConstructor{Name: n.Name, Args: args, Sp: n.Sp}
	case *ast.PRecord:
		fields := make([]core.PRecordField, len(n.Fields))
		for i, f := range n.Fields {
			// Shorthand `{x}` (Pattern == nil) expands to `{x: x}`
			// (spec.md §4.3).
			sub := f.Pattern
			if sub == nil {
				sub = &ast.PVar{Name: f.Name, Sp: f.Sp}
			}
			fields[i] = core.PRecordField{Name: f.Name, Pattern: d.pattern(sub)}
		}
		return &core.PRecord{Fields: fields, Sp: n.Sp}
	case *ast.PTuple:
		elems := make([]core.Pattern, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = d.pattern(e)
		}
		return &core.PTuple{Elements: elems, Sp: n.Sp}
	case *ast.PList:
		return d.listPattern(n)
	case *ast.POr:
		if len(n.Alternatives) == 0 {
			return &core.PWildcard{Sp: n.Sp}
		}
		return d.pattern(n.Alternatives[0])
	case *ast.PTypeAnnotation:
		// The annotation is discarded; the type enters via the
		// surrounding context if present (spec.md §4.3).
		return d.pattern(n.Pattern)
	default:
		return &core.PWildcard{Sp: p.Span()}
	}
}

// listPattern lowers `[p1, p2, ...rest]` into nested Cons constructor
// patterns terminated by `rest` (or `Nil` if there is no spread tail)
// (spec.md §4.3).
func (d *Desugarer) listPattern(n *ast.PList) core.Pattern {
	tail := core.Pattern(&core.PConstructor{Name: "Nil", Sp: n.Sp})
	if n.Rest != nil {
		tail = d.pattern(n.Rest)
	}
	for i := len(n.Elements) - 1; i >= 0; i-- {
		elem := d.pattern(n.Elements[i])
		tail = &core.PConstructor{Name: "Cons", Args: []core.Pattern{elem, tail}, Sp: n.Elements[i].Span()}
	}
	return tail
}

// checkOrPatternBindings verifies every alternative of an or-pattern binds
// the same variable set, per spec.md §4.3's "the desugarer MUST verify and
// reject otherwise". On mismatch it reports VF3001 and leaves the
// mismatched alternatives as-is (the resulting cases simply bind whatever
// each alternative actually binds; a later phase never observes this
// since the check fires before any checker sees the bindings).
func (d *Desugarer) checkOrPatternBindings(or *ast.POr) {
	if len(or.Alternatives) < 2 {
		return
	}
	first := patternVars(or.Alternatives[0])
	for _, alt := range or.Alternatives[1:] {
		if !sameStringSet(first, patternVars(alt)) {
			d.bag.Add(diag.New(diag.CodeDesugarOrPatternBindings, or.Sp,
				"alternatives of an or-pattern must bind the same variables"))
			return
		}
	}
}

func patternVars(p ast.Pattern) []string {
	var out []string
	var walk func(ast.Pattern)
	walk = func(p ast.Pattern) {
		switch n := p.(type) {
		case *ast.PVar:
			out = append(out, n.Name)
		case *ast.PConstructor:
			for _, a := range n.Args {
				walk(a)
			}
		case *ast.PRecord:
			for _, f := range n.Fields {
				if f.Pattern == nil {
					out = append(out, f.Name)
					continue
				}
				walk(f.Pattern)
			}
		case *ast.PTuple:
			for _, e := range n.Elements {
				walk(e)
			}
		case *ast.PList:
			for _, e := range n.Elements {
				walk(e)
			}
			if n.Rest != nil {
				walk(n.Rest)
			}
		case *ast.POr:
			if len(n.Alternatives) > 0 {
				walk(n.Alternatives[0])
			}
		case *ast.PTypeAnnotation:
			walk(n.Pattern)
		}
	}
	walk(p)
	sort.Strings(out)
	return out
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
