package desugar

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/core"
	"github.com/vibefun-lang/vibefun/span"
)

// expr lowers one Surface expression, bottom-up, per the transformation
// table in spec.md §4.3. Every case preserves the original span.
func (d *Desugarer) expr(e ast.Expr) core.Expr {
	switch n := e.(type) {
	case *ast.IntLit:
		return &core.IntLit{Text: n.Text, Base: n.Base, Sp: n.Sp}
	case *ast.FloatLit:
		return &core.FloatLit{Text: n.Text, Sp: n.Sp}
	case *ast.StringLit:
		return &core.StringLit{Value: n.Value, Sp: n.Sp}
	case *ast.BoolLit:
		return &core.BoolLit{Value: n.Value, Sp: n.Sp}
	case *ast.UnitLit:
		return &core.UnitLit{Sp: n.Sp}
	case *ast.Var:
		return &core.Var{Name: n.Name, Sp: n.Sp}
	case *ast.Let:
		return &core.Let{
			Pat:       d.pattern(n.Pat),
			Value:     d.expr(n.Value),
			Body:      d.expr(n.Body),
			Mutable:   n.Mutable,
			Recursive: n.Recursive,
			Sp:        n.Sp,
		}
	case *ast.LetRec:
		return d.letRec(n)
	case *ast.Lambda:
		return d.lambda(n.Params, n.Body, n.Sp)
	case *ast.App:
		return d.app(n)
	case *ast.If:
		return &core.If{Cond: d.expr(n.Cond), Then: d.expr(n.Then), Else: d.expr(n.Else), Sp: n.Sp}
	case *ast.Match:
		return d.match(n)
	case *ast.While:
		return d.while(n)
	case *ast.BinOp:
		return d.binOp(n)
	case *ast.UnaryOp:
		return d.unaryOp(n)
	case *ast.Pipe:
		// `x |> f` -> `f(x)`, after fully desugaring both sides
		// (spec.md §4.3).
		return &core.App{Func: d.expr(n.Rhs), Arg: d.expr(n.Lhs), Sp: n.Sp}
	case *ast.Compose:
		return d.compose(n)
	case *ast.Record:
		return d.record(n)
	case *ast.RecordAccess:
		return &core.RecordAccess{Record: d.expr(n.Record), Field: n.Field, Sp: n.Sp}
	case *ast.RecordUpdate:
		return d.recordUpdate(n)
	case *ast.List:
		return d.list(n)
	case *ast.Tuple:
		elems := make([]core.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = d.expr(el)
		}
		return &core.Tuple{Elements: elems, Sp: n.Sp}
	case *ast.Block:
		return d.block(n)
	case *ast.TypeAnnotation:
		return &core.TypeAnnotation{Expr: d.expr(n.Expr), Type: n.Type, Sp: n.Sp}
	case *ast.Unsafe:
		return &core.Unsafe{Expr: d.expr(n.Expr), Sp: n.Sp}
	case *ast.ErrorExpr:
		return &core.ErrorExpr{Sp: n.Sp}
	default:
		return &core.ErrorExpr{Sp: e.Span()}
	}
}

// lambda curries a multi-parameter surface lambda into nested single-param
// Core lambdas: `p1 => (p2 => (.. => body))` (spec.md §4.3). A zero-param
// lambda (`() => body`) gets a single implicit wildcard param, since every
// Core function is single-arg and a zero-arg call supplies Unit as that
// argument (see app below) — the parameter pattern only needs to match
// Unit, which a wildcard already does.
func (d *Desugarer) lambda(params []ast.Pattern, body ast.Expr, sp span.Span) core.Expr {
	coreBody := d.expr(body)
	if len(params) == 0 {
		return &core.Lambda{Param: &core.PWildcard{Sp: sp}, Body: coreBody, Sp: sp}
	}
	for i := len(params) - 1; i >= 0; i-- {
		coreBody = &core.Lambda{Param: d.pattern(params[i]), Body: coreBody, Sp: sp}
	}
	return coreBody
}

// app left-associates a multi-argument surface call into nested
// single-arg Core applications: `f(a1, a2, .., an)` -> `((f a1) a2) .. an`.
// A zero-arg call `f()` applies the single implicit Unit argument that
// pairs with a zero-param lambda's implicit wildcard parameter above.
func (d *Desugarer) app(n *ast.App) core.Expr {
	result := d.expr(n.Func)
	if len(n.Args) == 0 {
		return &core.App{Func: result, Arg: &core.UnitLit{Sp: n.Sp}, Sp: n.Sp}
	}
	for _, arg := range n.Args {
		result = &core.App{Func: result, Arg: d.expr(arg), Sp: n.Sp}
	}
	return result
}

func (d *Desugarer) letRec(n *ast.LetRec) core.Expr {
	bindings := make([]core.LetBinding, len(n.Bindings))
	for i, b := range n.Bindings {
		bindings[i] = core.LetBinding{Name: b.Name, Value: d.expr(b.Value), Sp: b.Sp}
	}
	return &core.LetRec{Bindings: bindings, Body: d.expr(n.Body), Sp: n.Sp}
}

func (d *Desugarer) match(n *ast.Match) core.Expr {
	scrutinee := d.expr(n.Scrutinee)
	var cases []core.MatchCase
	for _, c := range n.Cases {
		cases = append(cases, d.matchCase(c)...)
	}
	return &core.Match{Scrutinee: scrutinee, Cases: cases, Sp: n.Sp}
}

// matchCase expands an or-pattern case into one Core case per alternative,
// sharing guard and body (spec.md §4.3), after verifying every alternative
// binds the same variable set.
func (d *Desugarer) matchCase(c ast.MatchCase) []core.MatchCase {
	or, isOr := c.Pat.(*ast.POr)
	if !isOr {
		pat := d.pattern(c.Pat)
		var guard core.Expr
		if c.Guard != nil {
			guard = d.expr(c.Guard)
		}
		return []core.MatchCase{{Pat: pat, Guard: guard, Body: d.expr(c.Body), Sp: c.Sp}}
	}
	d.checkOrPatternBindings(or)
	var guard core.Expr
	if c.Guard != nil {
		guard = d.expr(c.Guard)
	}
	body := d.expr(c.Body)
	out := make([]core.MatchCase, 0, len(or.Alternatives))
	for _, alt := range or.Alternatives {
		out = append(out, core.MatchCase{Pat: d.pattern(alt), Guard: guard, Body: body, Sp: alt.Span()})
	}
	return out
}

// while lowers a surface loop into a recursive zero-arg function
// (spec.md §4.3): `while c { body }` becomes
// `LetRec{loop = () => match c { true => {body; loop()}; false => () },
// body: loop()}` with a fresh name for `loop`. Since Core has no Block
// node, `{body; loop()}` is itself expressed as a wildcard-pattern Let
// sequencing body before the recursive call.
func (d *Desugarer) while(n *ast.While) core.Expr {
	loopName := d.fresh.name("loop")
	cond := d.expr(n.Cond)
	bodyThenRecur := &core.Let{
		Pat:   &core.PWildcard{Sp: n.Body.Span()},
		Value: d.expr(n.Body),
		Body:  &core.App{Func: &core.Var{Name: loopName, Sp: n.Sp}, Arg: &core.UnitLit{Sp: n.Sp}, Sp: n.Sp},
		Sp:    n.Sp,
	}
	loopBody := &core.Match{
		Scrutinee: cond,
		Cases: []core.MatchCase{
			{Pat: &core.PLiteral{Kind: core.PLitBool, Bool: true, Sp: n.Sp}, Body: bodyThenRecur, Sp: n.Sp},
			{Pat: &core.PLiteral{Kind: core.PLitBool, Bool: false, Sp: n.Sp}, Body: &core.UnitLit{Sp: n.Sp}, Sp: n.Sp},
		},
		Sp: n.Sp,
	}
	loopLambda := &core.Lambda{Param: &core.PWildcard{Sp: n.Sp}, Body: loopBody, Sp: n.Sp}
	return &core.LetRec{
		Bindings: []core.LetBinding{{Name: loopName, Value: loopLambda, Sp: n.Sp}},
		Body:     &core.App{Func: &core.Var{Name: loopName, Sp: n.Sp}, Arg: &core.UnitLit{Sp: n.Sp}, Sp: n.Sp},
		Sp:       n.Sp,
	}
}

var binOpCore = map[ast.BinOpKind]core.BinOpKind{
	ast.Add: core.Add, ast.Sub: core.Sub, ast.Mul: core.Mul, ast.Div: core.Div,
	ast.Mod: core.Mod, ast.Pow: core.Pow, ast.Eq: core.Eq, ast.Neq: core.Neq,
	ast.Lt: core.Lt, ast.Le: core.Le, ast.Gt: core.Gt, ast.Ge: core.Ge,
	ast.And: core.And, ast.Or: core.Or, ast.Concat: core.Concat, ast.Assign: core.Assign,
}

// binOp retains every surface operator except `::`, which is a variant
// constructor application in Core (spec.md §4.3: `a :: b` -> `Cons(a, b)`).
func (d *Desugarer) binOp(n *ast.BinOp) core.Expr {
	if n.Op == ast.Cons {
		return &core.Variant{Name: "Cons", Args: []core.Expr{d.expr(n.Lhs), d.expr(n.Rhs)}, Sp: n.Sp}
	}
	return &core.BinOp{Op: binOpCore[n.Op], Lhs: d.expr(n.Lhs), Rhs: d.expr(n.Rhs), Sp: n.Sp}
}

// unaryOp passes the ambiguous `!` through as UnaryOp with the unresolved
// kind; the checker disambiguates it once it has seen the operand's type
// (spec.md §3.2).
func (d *Desugarer) unaryOp(n *ast.UnaryOp) core.Expr {
	operand := d.expr(n.Operand)
	switch n.Op {
	case ast.Neg:
		return &core.UnaryOp{Op: core.Neg, Operand: operand, Sp: n.Sp}
	case ast.Deref:
		return &core.UnaryOp{Op: core.Deref, Operand: operand, Sp: n.Sp}
	default: // ast.Not: Bool vs. Ref-deref is not decidable here
		return &core.UnaryOp{Op: core.NotOrDerefUnresolved, Operand: operand, Sp: n.Sp}
	}
}

// compose turns `f >> g` / `f << g` into a fresh-parameter lambda applying
// both functions in the appropriate order (spec.md §4.3).
func (d *Desugarer) compose(n *ast.Compose) core.Expr {
	paramName := d.fresh.name("tmp")
	f, g := d.expr(n.Lhs), d.expr(n.Rhs)
	x := &core.Var{Name: paramName, Sp: n.Sp}
	var body core.Expr
	if n.Op == ast.ComposeForward {
		// (x) => g(f(x))
		body = &core.App{Func: g, Arg: &core.App{Func: f, Arg: x, Sp: n.Sp}, Sp: n.Sp}
	} else {
		// (x) => f(g(x))
		body = &core.App{Func: f, Arg: &core.App{Func: g, Arg: x, Sp: n.Sp}, Sp: n.Sp}
	}
	return &core.Lambda{Param: &core.PVar{Name: paramName, Sp: n.Sp}, Body: body, Sp: n.Sp}
}

func (d *Desugarer) record(n *ast.Record) core.Expr {
	fields := make([]core.RecordField, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = core.RecordField{Name: f.Name, Value: d.expr(f.Value)}
	}
	return &core.Record{Fields: fields, Sp: n.Sp}
}

// recordUpdate collects every spread in the literal into Bases, in source
// order, and every `name: value` entry into Fields (DESIGN.md
// "merged-spread RecordUpdate handling"): the parser only ever captures a
// single *leading* spread directly on RecordUpdate.Record; any further
// spread is left behind in Fields (marked Spread) because the parser has
// no reason to special-case a non-leading one. This is where both are
// reconciled into Core's Bases/Fields shape.
func (d *Desugarer) recordUpdate(n *ast.RecordUpdate) core.Expr {
	bases := []core.Expr{d.expr(n.Record)}
	var fields []core.RecordField
	for _, f := range n.Fields {
		if f.Spread {
			bases = append(bases, d.expr(f.Value))
			continue
		}
		fields = append(fields, core.RecordField{Name: f.Name, Value: d.expr(f.Value)})
	}
	return &core.RecordUpdate{Bases: bases, Fields: fields, Sp: n.Sp}
}

// list right-associates a surface list literal into a Cons/Nil chain,
// splicing `List.concat(spread, rest)` at each spread position and
// folding a pure trailing run of elements straight into Cons without an
// intervening call (spec.md §4.3).
func (d *Desugarer) list(n *ast.List) core.Expr {
	return d.listFrom(n.Elements, n.Sp)
}

func (d *Desugarer) listFrom(elems []ast.ListElement, sp span.Span) core.Expr {
	if len(elems) == 0 {
		return &core.Variant{Name: "Nil", Sp: sp}
	}
	head := elems[0]
	rest := d.listFrom(elems[1:], sp)
	if !head.Spread {
		return &core.Variant{Name: "Cons", Args: []core.Expr{d.expr(head.Value), rest}, Sp: head.Sp}
	}
	return &core.App{
		Func: &core.App{Func: &core.Var{Name: "List.concat", Sp: head.Sp}, Arg: d.expr(head.Value), Sp: head.Sp},
		Arg:  rest,
		Sp:   head.Sp,
	}
}

// block right-folds a flat statement list into nested Let bindings; the
// last statement's value becomes the chain's terminal body, and a bare
// expression statement binds the wildcard pattern (spec.md §4.3). An empty
// block is already rewritten to Unit by the parser, so this is never
// called with zero statements.
func (d *Desugarer) block(n *ast.Block) core.Expr {
	return d.blockFrom(n.Stmts, n.Sp)
}

func (d *Desugarer) blockFrom(stmts []ast.BlockStmt, sp span.Span) core.Expr {
	s := stmts[0]
	value := d.expr(s.Value)
	if len(stmts) == 1 {
		return value
	}
	rest := d.blockFrom(stmts[1:], sp)
	var pat core.Pattern
	if s.IsLet {
		pat = d.pattern(s.Pat)
	} else {
		pat = &core.PWildcard{Sp: s.Sp}
	}
	return &core.Let{Pat: pat, Value: value, Body: rest, Mutable: s.Mutable, Sp: s.Sp}
}
