package diag_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/span"
)

// diagnosticSchema is the JSON Schema spec.md §4.6's machine rendering is
// validated against: one object per diagnostic, each carrying the span as
// line/column/endLine/endColumn rather than a nested span value.
const diagnosticSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["code", "severity", "file", "line", "column", "endLine", "endColumn", "message"],
    "properties": {
      "code":      { "type": "string", "pattern": "^VF[0-9]{4}$" },
      "severity":  { "type": "string", "enum": ["error", "warning", "note"] },
      "file":      { "type": "string" },
      "line":      { "type": "integer", "minimum": 1 },
      "column":    { "type": "integer", "minimum": 1 },
      "endLine":   { "type": "integer", "minimum": 1 },
      "endColumn": { "type": "integer", "minimum": 1 },
      "message":   { "type": "string" },
      "expected":  { "type": "string" },
      "actual":    { "type": "string" },
      "hint":      { "type": "string" }
    }
  }
}`

func compileDiagnosticSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	const url = "schema://diagnostic.json"
	require.NoError(t, compiler.AddResource(url, strings.NewReader(diagnosticSchema)))
	s, err := compiler.Compile(url)
	require.NoError(t, err)
	return s
}

func sampleSpan(file string) span.Span {
	return span.Span{
		File:  file,
		Start: span.Position{Line: 3, Column: 5, Offset: 20},
		End:   span.Position{Line: 3, Column: 9, Offset: 24},
	}
}

func TestBagJSONMatchesDiagnosticSchema(t *testing.T) {
	bag := diag.NewBag()
	bag.Add(diag.New(diag.CodeTypeMismatch, sampleSpan("a.vf"), "expected Int, found String").
		WithTypes("Int", "String").
		WithHint("did you mean to call toString first?"))
	bag.Add(diag.Warn(diag.CodeNonExhaustive, sampleSpan("a.vf"), "match is not exhaustive"))

	data, err := bag.JSON()
	require.NoError(t, err)

	var doc interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	schema := compileDiagnosticSchema(t)
	require.NoError(t, schema.Validate(doc))
}

func TestBagJSONEmptyBagIsEmptyArray(t *testing.T) {
	bag := diag.NewBag()
	data, err := bag.JSON()
	require.NoError(t, err)

	var doc interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.NoError(t, compileDiagnosticSchema(t).Validate(doc))

	arr, ok := doc.([]interface{})
	require.True(t, ok)
	require.Empty(t, arr)
}

func TestBagHumanIncludesSourceExcerptAndCaret(t *testing.T) {
	source := "let x =\n  1 + \"a\";\n"
	sp := span.Span{
		File:  "a.vf",
		Start: span.Position{Line: 2, Column: 7, Offset: 0},
		End:   span.Position{Line: 2, Column: 10, Offset: 0},
	}
	bag := diag.NewBag()
	bag.Add(diag.New(diag.CodeTypeMismatch, sp, "expected Int, found String").WithTypes("Int", "String"))

	out := bag.Human(source)
	require.Contains(t, out, "expected Int, found String")
	require.Contains(t, out, `1 + "a";`)
	require.Contains(t, out, "^^^")
}
