package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(t []Token) []TokenType {
	out := make([]TokenType, len(t))
	for i, tok := range t {
		out[i] = tok.Type
	}
	return out
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	stream, err := Lex([]byte("let mut rec and name_1"), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, []TokenType{LET, MUT, REC, AND, IDENT, EOF}, tokenTypes(stream.Tokens))
	assert.Equal(t, "name_1", stream.Tokens[4].Text)
}

func TestBooleanLiteralsAreNotKeywords(t *testing.T) {
	stream, err := Lex([]byte("true false"), "t.vf")
	require.Nil(t, err)
	require.Len(t, stream.Tokens, 3)
	assert.Equal(t, BOOL, stream.Tokens[0].Type)
	assert.True(t, stream.Tokens[0].BoolValue)
	assert.False(t, stream.Tokens[1].BoolValue)
}

func TestIdentifierNFCNormalization(t *testing.T) {
	// "é" as e + combining acute (NFD) should normalize to the precomposed
	// form (NFC) at emission (spec.md §3.1).
	nfd := "é"
	stream, err := Lex([]byte(nfd), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, "é", stream.Tokens[0].Text)
}

func TestIntegerForms(t *testing.T) {
	cases := []struct {
		src  string
		base IntBase
	}{
		{"123", Base10},
		{"1_000_000", Base10},
		{"0xFF_AA", Base16},
		{"0b1010_0101", Base2},
	}
	for _, c := range cases {
		stream, err := Lex([]byte(c.src), "t.vf")
		require.Nil(t, err, c.src)
		require.Equal(t, INT, stream.Tokens[0].Type, c.src)
		assert.Equal(t, c.base, stream.Tokens[0].IntBase, c.src)
		assert.Equal(t, c.src, stream.Tokens[0].Text, c.src)
	}
}

func TestBadIntegerSeparators(t *testing.T) {
	for _, src := range []string{"1_", "1__0", "0b_1", "0x_FF", "0xFF_"} {
		_, err := Lex([]byte(src), "t.vf")
		require.NotNil(t, err, src)
	}
}

func TestFloatRequiresDigitsBothSides(t *testing.T) {
	stream, err := Lex([]byte("3.14"), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, FLOAT, stream.Tokens[0].Type)

	// "3." with no trailing digit is INT then DOT, not a float.
	stream, err = Lex([]byte("3."), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, []TokenType{INT, DOT, EOF}, tokenTypes(stream.Tokens))
}

func TestScientificNotation(t *testing.T) {
	for _, src := range []string{"1e6", "2.5e-3", "1.23e+4", "1E10"} {
		stream, err := Lex([]byte(src), "t.vf")
		require.Nil(t, err, src)
		assert.Equal(t, FLOAT, stream.Tokens[0].Type, src)
	}
}

func TestStringEscapes(t *testing.T) {
	stream, err := Lex([]byte(`"a\nb\tc\\d\"e\x41é\u{1F600}"`), "t.vf")
	require.Nil(t, err)
	require.Equal(t, STRING, stream.Tokens[0].Type)
	assert.Equal(t, "a\nb\tc\\d\"eAé\U0001F600", stream.Tokens[0].StringValue)
}

func TestSingleLineStringForbidsRawNewline(t *testing.T) {
	_, err := Lex([]byte("\"a\nb\""), "t.vf")
	require.NotNil(t, err)
}

func TestTripleQuotedStringPermitsNewlines(t *testing.T) {
	stream, err := Lex([]byte("\"\"\"line1\nline2\"\"\""), "t.vf")
	require.Nil(t, err)
	require.Equal(t, STRING, stream.Tokens[0].Type)
	assert.Equal(t, "line1\nline2", stream.Tokens[0].StringValue)
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, err := Lex([]byte(`"abc`), "t.vf")
	require.NotNil(t, err)
}

func TestUnknownEscapeIsFatal(t *testing.T) {
	_, err := Lex([]byte(`"\q"`), "t.vf")
	require.NotNil(t, err)
}

func TestLineComment(t *testing.T) {
	stream, err := Lex([]byte("let x // trailing comment\n= 1"), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, []TokenType{LET, IDENT, ASSIGN, INT, EOF}, tokenTypes(stream.Tokens))
}

func TestNestedBlockComments(t *testing.T) {
	stream, err := Lex([]byte("/* outer /* inner */ still outer */ let x"), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, []TokenType{LET, IDENT, EOF}, tokenTypes(stream.Tokens))
}

func TestUnterminatedBlockCommentIsFatal(t *testing.T) {
	_, err := Lex([]byte("/* never closes"), "t.vf")
	require.NotNil(t, err)
}

func TestMaximalMunchOperators(t *testing.T) {
	stream, err := Lex([]byte("== != <= >= && || |> >> << -> => :: := ... .."), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, []TokenType{
		EQEQ, NEQ, LE, GE, ANDAND, OROR, PIPEGT, SHR, SHL, ARROW, FATARROW,
		COLONCOLON, COLONEQ, ELLIPSIS, DOTDOT, EOF,
	}, tokenTypes(stream.Tokens))
}

func TestUnaryAndBinaryMinusAreTheSameToken(t *testing.T) {
	stream, err := Lex([]byte("-1 x - 1"), "t.vf")
	require.Nil(t, err)
	assert.Equal(t, []TokenType{MINUS, INT, IDENT, MINUS, INT, EOF}, tokenTypes(stream.Tokens))
}

func TestNewlineBeforeFlag(t *testing.T) {
	stream, err := Lex([]byte("let x\n= 1"), "t.vf")
	require.Nil(t, err)
	assert.False(t, stream.Tokens[0].NewlineBefore)
	assert.True(t, stream.Tokens[2].NewlineBefore) // "=" after the newline
}

func TestUnknownCharacterIsFatal(t *testing.T) {
	_, err := Lex([]byte("let x = `"), "t.vf")
	require.NotNil(t, err)
}

func TestSpansAreNeverEmpty(t *testing.T) {
	stream, err := Lex([]byte("let x = 1"), "t.vf")
	require.Nil(t, err)
	for _, tok := range stream.Tokens {
		if tok.Type == EOF {
			continue
		}
		assert.NotEqual(t, tok.Span.Start, tok.Span.End, tok.Text)
	}
}

func TestTelemetryBasicCountsTokens(t *testing.T) {
	stream, err := Lex([]byte("let x = 1 let y = 2"), "t.vf", WithTelemetryBasic())
	require.Nil(t, err)
	require.NotNil(t, stream.Telemetry)
	assert.Equal(t, 2, stream.Telemetry[LET].Count)
}
