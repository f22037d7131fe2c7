package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/span"
)

func at(line int) span.Span {
	return span.Span{File: "t.vf", Start: span.Position{Line: line, Column: 1}, End: span.Position{Line: line, Column: 2}}
}

func TestNewBuildsErrorSeverity(t *testing.T) {
	d := diag.New(diag.CodeUndefinedVar, at(1), "undefined variable")
	assert.Equal(t, diag.Error, d.Severity)
	assert.Equal(t, diag.CodeUndefinedVar, d.Code)
}

func TestWarnBuildsWarningSeverity(t *testing.T) {
	d := diag.Warn(diag.CodeUnusedBinding, at(1), "unused binding")
	assert.Equal(t, diag.Warning, d.Severity)
}

func TestWithHintChains(t *testing.T) {
	d := diag.New(diag.CodeUndefinedVar, at(1), "undefined variable").WithHint(`did you mean "x"?`)
	assert.Equal(t, `did you mean "x"?`, d.Hint)
}

func TestWithTypesSetsPair(t *testing.T) {
	d := diag.New(diag.CodeTypeMismatch, at(1), "mismatch").WithTypes("Int", "String")
	require.NotNil(t, d.Types)
	assert.Equal(t, "Int", d.Types.Expected)
	assert.Equal(t, "String", d.Types.Actual)
}

func TestWithSecondaryAppends(t *testing.T) {
	d := diag.New(diag.CodeUndefinedVar, at(1), "redefinition")
	d = d.WithSecondary(at(2))
	d = d.WithSecondary(at(3))
	require.Len(t, d.Secondary, 2)
}

func TestBagRespectsErrorBudget(t *testing.T) {
	b := diag.NewBagWithBudget(2)
	assert.True(t, b.Add(diag.New(diag.CodeUndefinedVar, at(1), "e1")))
	assert.True(t, b.Add(diag.New(diag.CodeUndefinedVar, at(2), "e2")))
	assert.False(t, b.Add(diag.New(diag.CodeUndefinedVar, at(3), "e3")))
	assert.True(t, b.Full())
	assert.Len(t, b.Items(), 2)
}

func TestBagNeverCapsWarnings(t *testing.T) {
	b := diag.NewBagWithBudget(1)
	require.True(t, b.Add(diag.New(diag.CodeUndefinedVar, at(1), "e1")))
	require.False(t, b.Add(diag.New(diag.CodeUndefinedVar, at(2), "e2")))
	for i := 0; i < 5; i++ {
		assert.True(t, b.Add(diag.Warn(diag.CodeUnusedBinding, at(3), "w")))
	}
	assert.Len(t, b.Items(), 6)
}

func TestBagHasCode(t *testing.T) {
	b := diag.NewBag()
	b.Add(diag.New(diag.CodeOccursCheck, at(1), "occurs"))
	assert.True(t, b.HasCode(diag.CodeOccursCheck))
	assert.False(t, b.HasCode(diag.CodeArity))
}

func TestBagMergeRespectsTargetBudget(t *testing.T) {
	src := diag.NewBag()
	src.Add(diag.New(diag.CodeUndefinedVar, at(1), "e1"))
	src.Add(diag.New(diag.CodeUndefinedVar, at(2), "e2"))

	dst := diag.NewBagWithBudget(1)
	dst.Merge(src)
	assert.Len(t, dst.Items(), 1)
	assert.True(t, dst.Full())
}

func TestSuggestNameFindsCloseMatch(t *testing.T) {
	hint := diag.SuggestName("lenght", []string{"length", "width", "height"})
	assert.Contains(t, hint, "length")
}

func TestSuggestNameReturnsEmptyWithoutCandidates(t *testing.T) {
	assert.Equal(t, "", diag.SuggestName("x", nil))
}
