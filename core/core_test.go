package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibefun-lang/vibefun/span"
)

// Compile-time interface satisfaction checks, one per node kind.
var (
	_ Expr    = (*IntLit)(nil)
	_ Expr    = (*Lambda)(nil)
	_ Expr    = (*App)(nil)
	_ Expr    = (*Match)(nil)
	_ Expr    = (*Variant)(nil)
	_ Pattern = (*PConstructor)(nil)
	_ Decl    = (*LetDecl)(nil)
)

func TestAppIsSingleArgument(t *testing.T) {
	sp := span.Span{File: "t.vf"}
	app := &App{
		Func: &Var{Name: "f", Sp: sp},
		Arg:  &IntLit{Text: "1", Sp: sp},
		Sp:   sp,
	}
	assert.Equal(t, "f", app.Func.(*Var).Name)
	assert.Equal(t, "1", app.Arg.(*IntLit).Text)
}

func TestNilAndConsConstructorPatternArity(t *testing.T) {
	sp := span.Span{File: "t.vf"}
	nilPat := &PConstructor{Name: "Nil", Sp: sp}
	consPat := &PConstructor{
		Name: "Cons",
		Args: []Pattern{&PVar{Name: "h", Sp: sp}, &PVar{Name: "t", Sp: sp}},
		Sp:   sp,
	}
	assert.Empty(t, nilPat.Args)
	assert.Len(t, consPat.Args, 2)
}
