package desugar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/span"
)

// ignoreSpans drops span.Span from the comparison: golden trees below are
// built by hand and only assert on shape, not on source positions.
var ignoreSpans = cmpopts.IgnoreTypes(span.Span{})

// TestCurryingGoldenTree checks the full desugared shape of a multi-param
// lambda against a hand-built tree, rather than unwrapping one field at a
// time as the other tests in this package do.
func TestCurryingGoldenTree(t *testing.T) {
	mod := desugarSrc(t, "let f = (a, b) => a;")
	got := lastLetValue(t, mod)

	want := &core.Lambda{
		Param: &core.PVar{Name: "a"},
		Body: &core.Lambda{
			Param: &core.PVar{Name: "b"},
			Body:  &core.Var{Name: "a"},
		},
	}

	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("desugared tree mismatch (-want +got):\n%s", diff)
	}
}

// TestListLiteralGoldenTree checks that a list literal lowers to the
// expected Cons/Nil constructor chain.
func TestListLiteralGoldenTree(t *testing.T) {
	mod := desugarSrc(t, "let xs = [1, 2];")
	got := lastLetValue(t, mod)

	want := &core.Variant{
		Name: "Cons",
		Args: []core.Expr{
			&core.IntLit{Text: "1", Base: 0},
			&core.Variant{
				Name: "Cons",
				Args: []core.Expr{
					&core.IntLit{Text: "2", Base: 0},
					&core.Variant{Name: "Nil"},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("desugared tree mismatch (-want +got):\n%s", diff)
	}
}

// TestOrPatternGoldenTree checks that `p1 | p2 => e` expands into two
// Match cases sharing one body expression.
func TestOrPatternGoldenTree(t *testing.T) {
	mod := desugarSrc(t, `
let f = (x) => match x {
  | 1 | 2 => "small"
  | _ => "big"
};
`)
	v := lastLetValue(t, mod)
	lam, ok := v.(*core.Lambda)
	require.True(t, ok)
	m, ok := lam.Body.(*core.Match)
	require.True(t, ok)

	want := []core.MatchCase{
		{
			Pat:  &core.PLiteral{Kind: core.PLitInt, Text: "1"},
			Body: &core.StringLit{Value: "small"},
		},
		{
			Pat:  &core.PLiteral{Kind: core.PLitInt, Text: "2"},
			Body: &core.StringLit{Value: "small"},
		},
		{
			Pat:  &core.PWildcard{},
			Body: &core.StringLit{Value: "big"},
		},
	}

	if diff := cmp.Diff(want, m.Cases, ignoreSpans); diff != "" {
		t.Errorf("or-pattern expansion mismatch (-want +got):\n%s", diff)
	}
}
