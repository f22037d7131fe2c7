package exhaustive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/desugar"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/infer"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/parser"
)

func checkSrc(t *testing.T, src string) *diag.Bag {
	t.Helper()
	stream, lexErr := lexer.Lex([]byte(src), "t.vf")
	require.Nil(t, lexErr)
	mod, parseBag := parser.Parse(stream.Tokens, "t.vf")
	require.False(t, parseBag.HasErrors(), "parse errors: %v", parseBag.Items())
	coreMod, desugarBag := desugar.Desugar(mod)
	require.False(t, desugarBag.HasErrors(), "desugar errors: %v", desugarBag.Items())

	bag := diag.NewBag()
	ctx := infer.NewContext()
	env := infer.Prelude(ctx)
	infer.Check(coreMod, env, bag)
	return bag
}

func TestBoolMatchBothArmsIsExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (b) => match b {
  | true => 1
  | false => 0
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestBoolMatchMissingArmIsNonExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (b) => match b {
  | true => 1
};`)
	assert.True(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestWildcardArmMakesBoolMatchExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (b) => match b {
  | true => 1
  | _ => 0
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestDuplicateWildcardArmIsUnreachable(t *testing.T) {
	bag := checkSrc(t, `
let f = (b) => match b {
  | _ => 0
  | true => 1
};`)
	assert.True(t, bag.HasCode(diag.CodeUnreachable))
}

func TestUserVariantMatchAllCasesIsExhaustive(t *testing.T) {
	bag := checkSrc(t, `
type Shape = Circle(Int) | Square(Int);
let area = (s) => match s {
  | Circle(r) => r
  | Square(w) => w
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestUserVariantMatchMissingCaseIsNonExhaustive(t *testing.T) {
	bag := checkSrc(t, `
type Shape = Circle(Int) | Square(Int);
let area = (s) => match s {
  | Circle(r) => r
};`)
	assert.True(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestOptionMatchAllCasesIsExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (o) => match o {
  | None => 0
  | Some(x) => x
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestIntLiteralMatchNeedsWildcard(t *testing.T) {
	bag := checkSrc(t, `
let f = (n) => match n {
  | 1 => "one"
  | 2 => "two"
};`)
	assert.True(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestIntLiteralMatchWithWildcardIsExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (n) => match n {
  | 1 => "one"
  | 2 => "two"
  | _ => "many"
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestTupleMatchAllCombinationsIsExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (p) => match p {
  | (true, true) => 1
  | (true, false) => 2
  | (false, true) => 3
  | (false, false) => 4
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestTupleMatchMissingCombinationIsNonExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (p) => match p {
  | (true, true) => 1
  | (true, false) => 2
  | (false, true) => 3
};`)
	assert.True(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestRecordPatternAloneIsExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (p) => match p {
  | { x: a } => a
};`)
	assert.False(t, bag.HasCode(diag.CodeNonExhaustive))
}

func TestGuardedCaseDoesNotMakeIdenticalLaterCaseUnreachable(t *testing.T) {
	bag := checkSrc(t, `
let f = (n) => match n {
  | x when x > 0 => 1
  | x => 0
};`)
	assert.False(t, bag.HasCode(diag.CodeUnreachable))
}

func TestGuardedCaseAloneIsStillNonExhaustive(t *testing.T) {
	bag := checkSrc(t, `
let f = (n) => match n {
  | x when x > 0 => 1
};`)
	assert.True(t, bag.HasCode(diag.CodeNonExhaustive))
}
