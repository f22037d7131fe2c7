package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/infer"
	"github.com/vibefun-lang/vibefun/pipeline"
	"github.com/vibefun-lang/vibefun/types"
)

func TestManifestRoundTripsMonomorphicValue(t *testing.T) {
	tc, bag := pipeline.Run([]byte("let answer = 42;"), "a.vf", nil)
	require.False(t, bag.HasErrors())

	m := pipeline.BuildManifest(tc.Env, []string{"answer"}, nil)
	data, err := pipeline.EncodeManifest(m)
	require.NoError(t, err)

	decoded, err := pipeline.DecodeManifest(data)
	require.NoError(t, err)

	ctx := infer.NewContext()
	env, err := pipeline.ApplyManifest(infer.Prelude(ctx), ctx, decoded)
	require.NoError(t, err)
	scheme, ok := env.LookupValue("answer")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(scheme.Body))
}

func TestManifestRoundTripsPolymorphicValue(t *testing.T) {
	tc, bag := pipeline.Run([]byte("let identity = (x) => x;"), "a.vf", nil)
	require.False(t, bag.HasErrors())

	m := pipeline.BuildManifest(tc.Env, []string{"identity"}, nil)
	data, err := pipeline.EncodeManifest(m)
	require.NoError(t, err)
	decoded, err := pipeline.DecodeManifest(data)
	require.NoError(t, err)

	ctx := infer.NewContext()
	env, err := pipeline.ApplyManifest(infer.Prelude(ctx), ctx, decoded)
	require.NoError(t, err)
	scheme, ok := env.LookupValue("identity")
	require.True(t, ok)
	require.Len(t, scheme.Quantified, 1)
	fn, ok := scheme.Body.(types.Fun)
	require.True(t, ok)
	assert.Equal(t, types.String(fn.Param), types.String(fn.Result))

	// the imported scheme must instantiate independently at each use: one
	// call site fixing it to Int must not constrain another to Int too.
	tc2, bag2 := pipeline.Run([]byte(`
let a = identity(1);
let b = identity("s");
`), "b.vf", env)
	require.False(t, bag2.HasErrors(), "diagnostics: %v", bag2.Items())
	sa, _ := tc2.Env.LookupValue("a")
	sb, _ := tc2.Env.LookupValue("b")
	assert.Equal(t, "Int", types.String(sa.Body))
	assert.Equal(t, "String", types.String(sb.Body))
}

func TestManifestRoundTripsVariantType(t *testing.T) {
	tc, bag := pipeline.Run([]byte(`
type Shape = Circle(Int) | Square(Int);
let area = (s) => match s {
  | Circle(r) => r
  | Square(w) => w
};
`), "a.vf", nil)
	require.False(t, bag.HasErrors(), "diagnostics: %v", bag.Items())

	m := pipeline.BuildManifest(tc.Env, []string{"area", "Circle", "Square"}, []string{"Shape"})
	data, err := pipeline.EncodeManifest(m)
	require.NoError(t, err)
	decoded, err := pipeline.DecodeManifest(data)
	require.NoError(t, err)

	ctx := infer.NewContext()
	env, err := pipeline.ApplyManifest(infer.Prelude(ctx), ctx, decoded)
	require.NoError(t, err)

	ctor, ok := env.LookupType("Shape")
	require.True(t, ok)
	require.Len(t, ctor.Cases, 2)

	tc2, bag2 := pipeline.Run([]byte(`let s = Circle(3); let a = area(s);`), "b.vf", env)
	require.False(t, bag2.HasErrors(), "diagnostics: %v", bag2.Items())
	scheme, ok := tc2.Env.LookupValue("a")
	require.True(t, ok)
	assert.Equal(t, "Int", types.String(scheme.Body))
}

func TestApplyManifestRejectsOutOfRangeQvar(t *testing.T) {
	tc, bag := pipeline.Run([]byte("let identity = (x) => x;"), "a.vf", nil)
	require.False(t, bag.HasErrors())

	m := pipeline.BuildManifest(tc.Env, []string{"identity"}, nil)
	data, err := pipeline.EncodeManifest(m)
	require.NoError(t, err)
	decoded, err := pipeline.DecodeManifest(data)
	require.NoError(t, err)

	// corrupt the decoded manifest to reference a qvar index that was
	// never minted, simulating data this package never produced.
	decoded.Values[0].Quantified = 0

	ctx := infer.NewContext()
	_, applyErr := pipeline.ApplyManifest(infer.Prelude(ctx), ctx, decoded)
	require.Error(t, applyErr)

	var manifestErr *pipeline.ManifestError
	require.True(t, errors.As(applyErr, &manifestErr))
	assert.Equal(t, diag.CodeMalformedManifest, manifestErr.Diag.Code)

	var d diag.Diagnostic
	require.True(t, errors.As(applyErr, &d))
}
