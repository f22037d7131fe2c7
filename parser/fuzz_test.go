package parser

import (
	"testing"

	"github.com/vibefun-lang/vibefun/lexer"
)

func addParseSeedCorpus(f *testing.F) {
	f.Add([]byte("let x = 1;"))
	f.Add([]byte("let f = (a, b) => a + b;"))
	f.Add([]byte("type Option<a> = None | Some(a);"))
	f.Add([]byte("match x { | Some(v) => v | None => 0 };"))
	f.Add([]byte("let = 1;"))
	f.Add([]byte("("))
	f.Add([]byte(")"))
	f.Add([]byte("{{{{{"))
	f.Add([]byte("let r = { a: 1, ...b, c: 2 };"))
	f.Add([]byte(""))
}

// FuzzParseNoPanic verifies the parser never panics on any token stream
// the lexer can produce, including malformed and truncated input.
func FuzzParseNoPanic(f *testing.F) {
	addParseSeedCorpus(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		stream, lexErr := lexer.Lex(input, "fuzz.vf")
		if lexErr != nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", input, r)
			}
		}()
		Parse(stream.Tokens, "fuzz.vf")
	})
}

// FuzzParseDeterminism verifies parsing the same token stream twice
// produces the same diagnostics and the same number of top-level decls.
func FuzzParseDeterminism(f *testing.F) {
	addParseSeedCorpus(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		stream, lexErr := lexer.Lex(input, "fuzz.vf")
		if lexErr != nil {
			return
		}
		mod1, bag1 := Parse(stream.Tokens, "fuzz.vf")
		mod2, bag2 := Parse(stream.Tokens, "fuzz.vf")
		if bag1.HasErrors() != bag2.HasErrors() {
			t.Fatalf("non-deterministic parse error presence for %q", input)
		}
		if (mod1 == nil) != (mod2 == nil) {
			t.Fatalf("non-deterministic module presence for %q", input)
		}
		if mod1 != nil && len(mod1.Decls) != len(mod2.Decls) {
			t.Fatalf("non-deterministic decl count for %q: %d vs %d", input, len(mod1.Decls), len(mod2.Decls))
		}
	})
}
