package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/desugar"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/infer"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/parser"
	"github.com/vibefun-lang/vibefun/types"
)

// checkSrc lexes, parses, desugars and type-checks one source file.
func checkSrc(t *testing.T, src string) (infer.Result, *diag.Bag) {
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
	result := infer.Check(coreMod, env, bag)
	return result, bag
}

func TestIntLiteralInfersInt(t *testing.T) {
	result, bag := checkSrc(t, "let x = 1;")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("x")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(scheme.Body))
}

func TestLambdaInfersFunctionType(t *testing.T) {
	result, bag := checkSrc(t, "let f = (a) => a;")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("f")
	require.True(t, ok)
	if fn, ok := scheme.Body.(types.Fun); ok {
		assert.Equal(t, types.String(fn.Param), types.String(fn.Result))
	} else {
		t.Fatalf("expected Fun, got %s", types.String(scheme.Body))
	}
}

func TestIdentityFunctionGeneralises(t *testing.T) {
	result, bag := checkSrc(t, "let id = (a) => a; let n = id(1); let s = id(\"s\");")
	require.False(t, bag.HasErrors())
	nt, ok := result.Env.LookupValue("n")
	require.True(t, ok)
	st, ok := result.Env.LookupValue("s")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(nt.Body))
	assert.Equal(t, "String", types.String(st.Body))
}

func TestArithmeticDefaultsToInt(t *testing.T) {
	result, bag := checkSrc(t, "let f = (a, b) => a + b;")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("f")
	require.True(t, ok)
	fn, ok := scheme.Body.(types.Fun)
	require.True(t, ok)
	assert.Contains(t, types.String(fn), "Int")
}

func TestArithmeticMismatchReportsTypeMismatch(t *testing.T) {
	_, bag := checkSrc(t, "let f = (a) => a + 1.0;\nlet g = f(\"x\");")
	assert.True(t, bag.HasErrors())
	assert.True(t, bag.HasCode(diag.CodeTypeMismatch))
}

func TestUndefinedVariableReportsDiagnostic(t *testing.T) {
	_, bag := checkSrc(t, "let x = undefinedName;")
	assert.True(t, bag.HasCode(diag.CodeUndefinedVar))
}

func TestLetBoundApplicationIsNotGeneralisedUnderValueRestriction(t *testing.T) {
	result, bag := checkSrc(t, "let f = (a) => a;\nlet applied = f(f);")
	require.False(t, bag.HasErrors())
	applied, ok := result.Env.LookupValue("applied")
	require.True(t, ok)
	assert.Empty(t, applied.Quantified)
}

func TestRecordLiteralInfersRecordType(t *testing.T) {
	result, bag := checkSrc(t, "let p = { x: 1, y: 2 };")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("p")
	require.True(t, ok)
	rt, ok := scheme.Body.(*types.Record)
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(rt.Fields["x"]))
}

func TestRecordAccessUnifiesFieldType(t *testing.T) {
	result, bag := checkSrc(t, "let p = { x: 1 };\nlet n = p.x;")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("n")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(scheme.Body))
}

func TestRecordAccessOnMissingFieldReportsDiagnostic(t *testing.T) {
	_, bag := checkSrc(t, "let p = { x: 1 };\nlet n = p.y;")
	assert.True(t, bag.HasCode(diag.CodeMissingField))
}

func TestIfBranchesMustUnify(t *testing.T) {
	_, bag := checkSrc(t, "let x = if true then 1 else \"s\";")
	assert.True(t, bag.HasCode(diag.CodeTypeMismatch))
}

func TestTupleInfersElementTypes(t *testing.T) {
	result, bag := checkSrc(t, "let t = (1, \"s\", true);")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("t")
	require.True(t, ok)
	tup, ok := scheme.Body.(types.Tuple)
	require.True(t, ok)
	require.Len(t, tup.Elements, 3)
	assert.Equal(t, "String", types.String(tup.Elements[1]))
}

func TestVariantConstructorAppliesArguments(t *testing.T) {
	result, bag := checkSrc(t, "let n = Some(1);")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("n")
	require.True(t, ok)
	assert.Contains(t, types.String(scheme.Body), "Option")
}

func TestUserVariantTypeDeclRegistersConstructors(t *testing.T) {
	result, bag := checkSrc(t, "type Shape = Circle(Int) | Square(Int);\nlet s = Circle(3);")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("s")
	require.True(t, ok)
	assert.Contains(t, types.String(scheme.Body), "Shape")
}

func TestRefDerefRoundTrips(t *testing.T) {
	result, bag := checkSrc(t, "let r = ref(1);\nlet n = !r;")
	require.False(t, bag.HasErrors())
	scheme, ok := result.Env.LookupValue("n")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(scheme.Body))
}
