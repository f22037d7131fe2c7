package exhaustive

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/span"
	"github.com/vibefun-lang/vibefun/types"
)

// Check runs spec.md §4.5's reachability and exhaustiveness analysis over
// one already-typed Match and adds any diagnostics to bag. scrutineeType
// is the Match's inferred scrutinee type; matchSp is the whole Match's
// span, used for the non-exhaustive diagnostic (a missing case has no
// single case to point at).
//
// Per case, in source order: report VF4901 if no value it matches could
// reach it (an earlier, unguarded case already matches everything it
// would). A guarded case's pattern does not get added to what "earlier
// cases cover" — the guard might reject at runtime, so a later case with
// the same pattern is still reachable.
//
// After all cases, VF4900 fires if the unguarded cases together still
// leave some value of scrutineeType unmatched, with a concrete
// counter-example built from the missing constructor(s).
func Check(cases []core.MatchCase, scrutineeType types.Type, matchSp span.Span, env *types.Env, bag *diag.Bag) {
	var seen [][]pat
	for _, c := range cases {
		q := []pat{translate(c.Pat)}
		ok, _ := usefulness(seen, []types.Type{scrutineeType}, q, env)
		if !ok {
			bag.Add(diag.Warn(diag.CodeUnreachable, c.Sp,
				"this case can never match: an earlier case already covers every value it would"))
		}
		if c.Guard == nil {
			seen = append(seen, q)
		}
	}

	ok, witness := usefulness(seen, []types.Type{scrutineeType}, []pat{wildcardPat()}, env)
	if !ok {
		return
	}
	example := "_"
	if len(witness) == 1 {
		example = describe(witness[0])
	}
	bag.Add(diag.Warn(diag.CodeNonExhaustive, matchSp, "match is not exhaustive").
		WithHint("unmatched case, e.g. " + example))
}
