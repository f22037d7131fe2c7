package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/pipeline"
	"github.com/vibefun-lang/vibefun/types"
)

func TestRunValidSourceProducesNoErrors(t *testing.T) {
	tc, bag := pipeline.Run([]byte("let f = (x) => x + 1;"), "a.vf", nil)
	require.False(t, bag.HasErrors())
	require.NotNil(t, tc.Module)
	require.NotNil(t, tc.Env)
	scheme, ok := tc.Env.LookupValue("f")
	require.True(t, ok)
	assert.Equal(t, "(Int) -> Int", types.String(scheme.Body))
}

func TestRunLexErrorShortCircuitsPipeline(t *testing.T) {
	tc, bag := pipeline.Run([]byte(`let s = "unterminated;`), "a.vf", nil)
	require.True(t, bag.HasErrors())
	require.True(t, bag.HasCode(diag.CodeLexUnterminatedString))
	assert.Nil(t, tc.Module)
	assert.Nil(t, tc.Env)
}

func TestRunParseErrorShortCircuitsBeforeTypeCheck(t *testing.T) {
	tc, bag := pipeline.Run([]byte("let = 1;"), "a.vf", nil)
	require.True(t, bag.HasErrors())
	assert.Nil(t, tc.Module)
	assert.Nil(t, tc.Env)
}

func TestRunTypeErrorStillReturnsModuleAndEnv(t *testing.T) {
	tc, bag := pipeline.Run([]byte(`let x = 1 + "a";`), "a.vf", nil)
	require.True(t, bag.HasCode(diag.CodeTypeMismatch))
	assert.NotNil(t, tc.Module)
	assert.NotNil(t, tc.Env)
}

func TestRunAgainstProvidedEnvSeesEarlierBindings(t *testing.T) {
	tc1, bag1 := pipeline.Run([]byte("let base = 10;"), "a.vf", nil)
	require.False(t, bag1.HasErrors())

	tc2, bag2 := pipeline.Run([]byte("let doubled = base + base;"), "b.vf", tc1.Env)
	require.False(t, bag2.HasErrors())
	scheme, ok := tc2.Env.LookupValue("doubled")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(scheme.Body))
}
