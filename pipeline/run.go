// Package pipeline chains the four per-file phases spec.md §6.1 describes
// — lex, parse, desugar, check — behind one call, the way a thin
// orchestrator chains parse -> validate -> execute behind one entry point.
// Each phase stays independently callable exactly as §6.1 requires; this
// package adds nothing a caller couldn't do by hand, it only saves the
// boilerplate of wiring one phase's output into the next and merging each
// phase's diagnostics into one bag.
package pipeline

import (
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/desugar"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/infer"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/parser"
	"github.com/vibefun-lang/vibefun/types"
)

// TypedCoreModule is the pipeline's final output: the module in Core
// form, the environment after every declaration has been checked (so a
// caller can read back what the module would export), and the
// per-expression type map type-checking recorded.
type TypedCoreModule struct {
	Module *core.Module
	Env    *types.Env
	Types  map[core.Expr]types.Type
}

// Run lexes, parses, desugars and type-checks one file's source, against
// env (the environment the module resolver has already assembled for
// this file's imports — spec.md §6.4). A nil env runs against a fresh
// infer.Prelude, for standalone use.
//
// A fatal lex error short-circuits the rest of the pipeline (there are no
// tokens to parse); parser/desugarer errors likewise short-circuit their
// successor phase, since a malformed surface or Core tree cannot be
// type-checked meaningfully. Every phase that did run contributes its
// diagnostics to the single returned bag, in source order, per spec.md
// §4.6.
func Run(source []byte, fileID string, env *types.Env) (TypedCoreModule, *diag.Bag) {
	bag := diag.NewBag()

	stream, lexErr := lexer.Lex(source, fileID)
	if lexErr != nil {
		bag.Add(*lexErr)
		return TypedCoreModule{}, bag
	}

	mod, parseBag := parser.Parse(stream.Tokens, fileID)
	bag.Merge(parseBag)
	if parseBag.HasErrors() {
		return TypedCoreModule{}, bag
	}

	coreMod, desugarBag := desugar.Desugar(mod)
	bag.Merge(desugarBag)
	if desugarBag.HasErrors() {
		return TypedCoreModule{Module: coreMod}, bag
	}

	if env == nil {
		env = infer.Prelude(infer.NewContext())
	}
	result := infer.Check(coreMod, env, bag)

	return TypedCoreModule{Module: coreMod, Env: result.Env, Types: result.Types}, bag
}
