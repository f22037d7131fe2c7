package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/desugar"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/parser"
)

// desugarSrc lexes, parses and desugars one source file, failing the test
// on any lex error or on any error-severity parse or desugar diagnostic.
func desugarSrc(t *testing.T, src string) *core.Module {
	t.Helper()
	stream, lexErr := lexer.Lex([]byte(src), "t.vf")
	require.Nil(t, lexErr)
	mod, parseBag := parser.Parse(stream.Tokens, "t.vf")
	require.False(t, parseBag.HasErrors(), "parse errors: %v", parseBag.Items())
	coreMod, bag := desugar.Desugar(mod)
	require.False(t, bag.HasErrors(), "desugar errors: %v", bag.Items())
	return coreMod
}

func lastLetValue(t *testing.T, mod *core.Module) core.Expr {
	t.Helper()
	require.NotEmpty(t, mod.Decls)
	ld, ok := mod.Decls[len(mod.Decls)-1].(*core.LetDecl)
	require.True(t, ok)
	return ld.Value
}

func TestCurryingMultiParamLambda(t *testing.T) {
	mod := desugarSrc(t, "let f = (a, b, c) => a;")
	v := lastLetValue(t, mod)
	outer, ok := v.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Param.(*core.PVar).Name)
	mid, ok := outer.Body.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, "b", mid.Param.(*core.PVar).Name)
	inner, ok := mid.Body.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, "c", inner.Param.(*core.PVar).Name)
	_, isVar := inner.Body.(*core.Var)
	assert.True(t, isVar)
}

func TestMultiArgAppLeftAssociates(t *testing.T) {
	mod := desugarSrc(t, "let r = f(1, 2, 3);")
	v := lastLetValue(t, mod)
	outer, ok := v.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "3", outer.Arg.(*core.IntLit).Text)
	mid, ok := outer.Func.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "2", mid.Arg.(*core.IntLit).Text)
	inner, ok := mid.Func.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "1", inner.Arg.(*core.IntLit).Text)
	assert.Equal(t, "f", inner.Func.(*core.Var).Name)
}

func TestPipeDesugarsToApp(t *testing.T) {
	mod := desugarSrc(t, "let r = x |> f;")
	app, ok := lastLetValue(t, mod).(*core.App)
	require.True(t, ok)
	assert.Equal(t, "f", app.Func.(*core.Var).Name)
	assert.Equal(t, "x", app.Arg.(*core.Var).Name)
}

func TestForwardComposeAppliesLeftThenRight(t *testing.T) {
	mod := desugarSrc(t, "let r = f >> g;")
	lam, ok := lastLetValue(t, mod).(*core.Lambda)
	require.True(t, ok)
	param := lam.Param.(*core.PVar).Name
	assert.NotEmpty(t, param)
	outer, ok := lam.Body.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "g", outer.Func.(*core.Var).Name)
	inner, ok := outer.Arg.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "f", inner.Func.(*core.Var).Name)
	assert.Equal(t, param, inner.Arg.(*core.Var).Name)
}

func TestBackwardComposeAppliesRightThenLeft(t *testing.T) {
	mod := desugarSrc(t, "let r = f << g;")
	lam, ok := lastLetValue(t, mod).(*core.Lambda)
	require.True(t, ok)
	outer, ok := lam.Body.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "f", outer.Func.(*core.Var).Name)
	inner, ok := outer.Arg.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "g", inner.Func.(*core.Var).Name)
}

func TestConsOperatorBecomesVariant(t *testing.T) {
	mod := desugarSrc(t, "let r = 1 :: rest;")
	v, ok := lastLetValue(t, mod).(*core.Variant)
	require.True(t, ok)
	assert.Equal(t, "Cons", v.Name)
	require.Len(t, v.Args, 2)
}

func TestListLiteralDesugarsToConsChain(t *testing.T) {
	mod := desugarSrc(t, "let r = [1, 2];")
	outer, ok := lastLetValue(t, mod).(*core.Variant)
	require.True(t, ok)
	assert.Equal(t, "Cons", outer.Name)
	assert.Equal(t, "1", outer.Args[0].(*core.IntLit).Text)
	inner, ok := outer.Args[1].(*core.Variant)
	require.True(t, ok)
	assert.Equal(t, "Cons", inner.Name)
	assert.Equal(t, "2", inner.Args[0].(*core.IntLit).Text)
	tail, ok := inner.Args[1].(*core.Variant)
	require.True(t, ok)
	assert.Equal(t, "Nil", tail.Name)
}

func TestEmptyListLiteralIsNil(t *testing.T) {
	mod := desugarSrc(t, "let r = [];")
	v, ok := lastLetValue(t, mod).(*core.Variant)
	require.True(t, ok)
	assert.Equal(t, "Nil", v.Name)
	assert.Empty(t, v.Args)
}

func TestListSpreadDesugarsToListConcat(t *testing.T) {
	mod := desugarSrc(t, "let r = [1, ...xs, 2];")
	outer, ok := lastLetValue(t, mod).(*core.Variant)
	require.True(t, ok)
	assert.Equal(t, "Cons", outer.Name)
	concatCall, ok := outer.Args[1].(*core.App)
	require.True(t, ok)
	inner, ok := concatCall.Func.(*core.App)
	require.True(t, ok)
	assert.Equal(t, "List.concat", inner.Func.(*core.Var).Name)
	assert.Equal(t, "xs", inner.Arg.(*core.Var).Name)
}

func TestBlockFoldsIntoNestedLet(t *testing.T) {
	mod := desugarSrc(t, "let r = { let y = 1; print(y); y + 1 };")
	outerLet, ok := lastLetValue(t, mod).(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "y", outerLet.Pat.(*core.PVar).Name)
	wc, ok := outerLet.Body.(*core.Let)
	require.True(t, ok)
	_, isWildcard := wc.Pat.(*core.PWildcard)
	assert.True(t, isWildcard)
	_, isBinOp := wc.Body.(*core.BinOp)
	assert.True(t, isBinOp)
}

func TestWhileLowersToLetRecLoop(t *testing.T) {
	mod := desugarSrc(t, "let r = while cond { tick() };")
	outer, ok := lastLetValue(t, mod).(*core.LetRec)
	require.True(t, ok)
	require.Len(t, outer.Bindings, 1)
	lam, ok := outer.Bindings[0].Value.(*core.Lambda)
	require.True(t, ok)
	m, ok := lam.Body.(*core.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	app, ok := outer.Body.(*core.App)
	require.True(t, ok)
	assert.Equal(t, outer.Bindings[0].Name, app.Func.(*core.Var).Name)
}

func TestListPatternDesugarsToConsConstructorPattern(t *testing.T) {
	mod := desugarSrc(t, "let r = match xs { | [h, ...t] => h | _ => 0 };")
	m, ok := lastLetValue(t, mod).(*core.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	cons, ok := m.Cases[0].Pat.(*core.PConstructor)
	require.True(t, ok)
	assert.Equal(t, "Cons", cons.Name)
	require.Len(t, cons.Args, 2)
	assert.Equal(t, "h", cons.Args[0].(*core.PVar).Name)
	assert.Equal(t, "t", cons.Args[1].(*core.PVar).Name)
}

func TestOrPatternExpandsToSiblingCases(t *testing.T) {
	mod := desugarSrc(t, "let r = match n { | 1 | 2 => true | _ => false };")
	m, ok := lastLetValue(t, mod).(*core.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 3)
	lit0 := m.Cases[0].Pat.(*core.PLiteral)
	lit1 := m.Cases[1].Pat.(*core.PLiteral)
	assert.Equal(t, "1", lit0.Text)
	assert.Equal(t, "2", lit1.Text)
	assert.Equal(t, m.Cases[0].Body, m.Cases[1].Body)
}

func TestOrPatternBindingMismatchReportsDiagnostic(t *testing.T) {
	stream, lexErr := lexer.Lex([]byte("let r = match p { | (a, b) | (a, c) => a | _ => 0 };"), "t.vf")
	require.Nil(t, lexErr)
	mod, parseBag := parser.Parse(stream.Tokens, "t.vf")
	require.False(t, parseBag.HasErrors())
	_, bag := desugar.Desugar(mod)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "VF3001", string(bag.Items()[0].Code))
}

func TestRecordFieldShorthandExpandsInPattern(t *testing.T) {
	mod := desugarSrc(t, "let r = match p { | {x} => x };")
	m, ok := lastLetValue(t, mod).(*core.Match)
	require.True(t, ok)
	rec, ok := m.Cases[0].Pat.(*core.PRecord)
	require.True(t, ok)
	require.Len(t, rec.Fields, 1)
	assert.Equal(t, "x", rec.Fields[0].Pattern.(*core.PVar).Name)
}

func TestTypeAnnotatedPatternDiscardsAnnotation(t *testing.T) {
	mod := desugarSrc(t, "let f = (x: Int) => x;")
	lam, ok := lastLetValue(t, mod).(*core.Lambda)
	require.True(t, ok)
	_, isVar := lam.Param.(*core.PVar)
	assert.True(t, isVar)
}

func TestRecordUpdateCollectsMultipleSpreadsIntoBases(t *testing.T) {
	mod := desugarSrc(t, "let r = {...a, x: 1, ...b};")
	ru, ok := lastLetValue(t, mod).(*core.RecordUpdate)
	require.True(t, ok)
	require.Len(t, ru.Bases, 2)
	assert.Equal(t, "a", ru.Bases[0].(*core.Var).Name)
	assert.Equal(t, "b", ru.Bases[1].(*core.Var).Name)
	require.Len(t, ru.Fields, 1)
	assert.Equal(t, "x", ru.Fields[0].Name)
}

func TestLetRecGroupSplitsIntoOneDeclPerBinding(t *testing.T) {
	stream, lexErr := lexer.Lex([]byte("let rec isEven = (n) => n and isOdd = (n) => n;"), "t.vf")
	require.Nil(t, lexErr)
	mod, parseBag := parser.Parse(stream.Tokens, "t.vf")
	require.False(t, parseBag.HasErrors())
	out, bag := desugar.Desugar(mod)
	require.False(t, bag.HasErrors())
	require.Len(t, out.Decls, 2)
	first := out.Decls[0].(*core.LetDecl)
	second := out.Decls[1].(*core.LetDecl)
	assert.True(t, first.Recursive)
	assert.True(t, second.Recursive)
	assert.Equal(t, "isEven", first.Pat.(*core.PVar).Name)
	assert.Equal(t, "isOdd", second.Pat.(*core.PVar).Name)
}

func TestTypeDeclGroupSplitsIntoOneDeclPerName(t *testing.T) {
	stream, lexErr := lexer.Lex([]byte("type Tree = Leaf | Node(Tree, Tree) and Forest = Forest(Tree);"), "t.vf")
	require.Nil(t, lexErr)
	mod, parseBag := parser.Parse(stream.Tokens, "t.vf")
	require.False(t, parseBag.HasErrors())
	out, bag := desugar.Desugar(mod)
	require.False(t, bag.HasErrors())
	require.Len(t, out.Decls, 2)
	assert.Equal(t, "Tree", out.Decls[0].(*core.TypeDecl).Name)
	assert.Equal(t, "Forest", out.Decls[1].(*core.TypeDecl).Name)
}
