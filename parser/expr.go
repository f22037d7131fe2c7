package parser

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/span"
)

// parseExpr is the entry point used everywhere a (sub-)expression is
// expected. It dispatches to the precedence-2 forms (spec.md §4.2: "if,
// match, let, while, block") before falling into the binary-operator
// precedence climb, and to the lowest-precedence lambda form first of all.
func (p *Parser) parseExpr() ast.Expr {
	if p.looksLikeLambdaStart() {
		return p.parseLambda()
	}
	switch p.cur().Type {
	case lexer.LET:
		return p.parseBareLet()
	case lexer.IF:
		return p.parseIf()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.WHILE:
		return p.parseWhile()
	}
	return p.parsePipe()
}

// --- lambda ---

func (p *Parser) looksLikeLambdaStart() bool {
	if p.at(lexer.IDENT) && p.peekAt(1).Type == lexer.FATARROW {
		return true
	}
	if p.at(lexer.LPAREN) {
		end := p.matchingParen(p.pos)
		if end >= 0 && p.peekTypeAt(end+1).Type == lexer.FATARROW {
			return true
		}
	}
	return false
}

// matchingParen returns the index of the ')' matching the '(' at idx, or -1
// if unbalanced before EOF.
func (p *Parser) matchingParen(idx int) int {
	depth := 0
	for i := idx; i < len(p.toks); i++ {
		switch p.toks[i].Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		case lexer.EOF:
			return -1
		}
	}
	return -1
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.cur().Span
	var params []ast.Pattern
	if p.at(lexer.IDENT) {
		name := p.advance()
		params = []ast.Pattern{&ast.PVar{Name: name.Text, Sp: name.Span}}
	} else {
		p.advance() // '('
		if !p.at(lexer.RPAREN) {
			params = append(params, p.parseLambdaParam())
			for p.at(lexer.COMMA) {
				p.advance()
				params = append(params, p.parseLambdaParam())
			}
		}
		p.expect(lexer.RPAREN, "lambda parameter list")
	}
	p.expect(lexer.FATARROW, "lambda")
	body := p.parseExpr()
	return &ast.Lambda{Params: params, Body: body, Sp: span.Union(start, body.Span())}
}

// parseLambdaParam allows an optional `: T` annotation, distinct from a
// generic `(p : T)` grouped pattern only in that commas separate params
// here rather than closing the group.
func (p *Parser) parseLambdaParam() ast.Pattern {
	pat := p.parsePattern()
	if p.at(lexer.COLON) {
		p.advance()
		ty := p.parseTypeExpr()
		return &ast.PTypeAnnotation{Pattern: pat, Type: ty, Sp: span.Union(pat.Span(), ty.Span())}
	}
	return pat
}

// --- bare let (an expression in its own right, not wrapped in `{ }`) ---

func (p *Parser) parseBareLet() ast.Expr {
	start := p.advance().Span // 'let'
	mutable := false
	if p.at(lexer.MUT) {
		mutable = true
		p.advance()
	}
	recursive := false
	if p.at(lexer.REC) {
		recursive = true
		p.advance()
	}

	if recursive {
		firstName, firstSp, _ := p.expectIdent("let rec binding")
		p.expect(lexer.ASSIGN, "let rec binding")
		firstVal := p.parseExpr()
		bindings := []ast.LetBinding{{Name: firstName, Value: firstVal, Sp: span.Union(firstSp, firstVal.Span())}}
		for p.at(lexer.AND) {
			p.advance()
			bindings = append(bindings, p.parseLetRecBinding())
		}
		p.expect(lexer.SEMI, "let rec expression")
		body := p.parseExpr()
		return &ast.LetRec{Bindings: bindings, Body: body, Sp: span.Union(start, body.Span())}
	}

	pat := p.parsePattern()
	if p.at(lexer.COLON) {
		p.advance()
		ty := p.parseTypeExpr()
		pat = &ast.PTypeAnnotation{Pattern: pat, Type: ty, Sp: span.Union(pat.Span(), ty.Span())}
	}
	p.expect(lexer.ASSIGN, "let expression")
	val := p.parseExpr()
	p.expect(lexer.SEMI, "let expression")
	body := p.parseExpr()
	return &ast.Let{Pat: pat, Value: val, Body: body, Mutable: mutable, Sp: span.Union(start, body.Span())}
}

// --- if / match / while ---

func (p *Parser) parseIf() ast.Expr {
	start := p.advance().Span // 'if'
	cond := p.parseExpr()
	p.expect(lexer.THEN, "if expression")
	thenE := p.parseExpr()
	var elseE ast.Expr
	if p.at(lexer.ELSE) {
		p.advance()
		elseE = p.parseExpr()
	} else {
		elseE = &ast.UnitLit{Sp: synthSpanAfter(thenE.Span())}
	}
	return &ast.If{Cond: cond, Then: thenE, Else: elseE, Sp: span.Union(start, elseE.Span())}
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.advance().Span // 'match'
	scrutinee := p.parseExpr()
	p.expect(lexer.LBRACE, "match expression")
	var cases []ast.MatchCase
	for p.at(lexer.PIPE) {
		caseStart := p.advance().Span
		pat := p.parsePattern()
		var guard ast.Expr
		if p.at(lexer.WHEN) {
			p.advance()
			guard = p.parseExpr()
		}
		p.expect(lexer.FATARROW, "match case")
		body := p.parseExpr()
		cases = append(cases, ast.MatchCase{Pat: pat, Guard: guard, Body: body, Sp: span.Union(caseStart, body.Span())})
	}
	end, _ := p.expect(lexer.RBRACE, "match expression")
	return &ast.Match{Scrutinee: scrutinee, Cases: cases, Sp: span.Union(start, end.Span)}
}

func (p *Parser) parseWhile() ast.Expr {
	start := p.advance().Span // 'while'
	cond := p.parseExpr()
	body := p.parseExpr() // always a `{ .. }` block in practice; any expr accepted syntactically
	return &ast.While{Cond: cond, Body: body, Sp: span.Union(start, body.Span())}
}

// --- binary operator precedence climb (spec.md §4.2, low to high) ---

func (p *Parser) parsePipe() ast.Expr {
	left := p.parseOr()
	for p.at(lexer.PIPEGT) {
		p.advance()
		right := p.parseOr()
		left = &ast.Pipe{Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(lexer.OROR) {
		p.advance()
		right := p.parseAnd()
		left = &ast.BinOp{Op: ast.Or, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseCompare()
	for p.at(lexer.ANDAND) {
		p.advance()
		right := p.parseCompare()
		left = &ast.BinOp{Op: ast.And, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
	}
	return left
}

var compareOps = map[lexer.TokenType]ast.BinOpKind{
	lexer.EQEQ: ast.Eq, lexer.NEQ: ast.Neq,
	lexer.LT: ast.Lt, lexer.LE: ast.Le, lexer.GT: ast.Gt, lexer.GE: ast.Ge,
}

func (p *Parser) parseCompare() ast.Expr {
	left := p.parseConcatCons()
	for {
		op, ok := compareOps[p.cur().Type]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseConcatCons()
		left = &ast.BinOp{Op: op, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
	}
}

// parseConcatCons handles `&` (left-assoc concatenation) and `::`
// (right-assoc cons) at the same precedence level (spec.md §4.2).
func (p *Parser) parseConcatCons() ast.Expr {
	left := p.parseAddSub()
	for {
		switch p.cur().Type {
		case lexer.AMP:
			p.advance()
			right := p.parseAddSub()
			left = &ast.BinOp{Op: ast.Concat, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
		case lexer.COLONCOLON:
			p.advance()
			right := p.parseConcatCons()
			return &ast.BinOp{Op: ast.Cons, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
		default:
			return left
		}
	}
}

func (p *Parser) parseAddSub() ast.Expr {
	left := p.parseMulDivMod()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := ast.Add
		if p.cur().Type == lexer.MINUS {
			op = ast.Sub
		}
		p.advance()
		right := p.parseMulDivMod()
		left = &ast.BinOp{Op: op, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
	}
	return left
}

var mulDivModOps = map[lexer.TokenType]ast.BinOpKind{
	lexer.STAR: ast.Mul, lexer.SLASH: ast.Div, lexer.PERCENT: ast.Mod,
}

func (p *Parser) parseMulDivMod() ast.Expr {
	left := p.parsePow()
	for {
		op, ok := mulDivModOps[p.cur().Type]
		if !ok {
			return left
		}
		p.advance()
		right := p.parsePow()
		left = &ast.BinOp{Op: op, Lhs: left, Rhs: right, Sp: span.Union(left.Span(), right.Span())}
	}
}

func (p *Parser) parsePow() ast.Expr {
	base := p.parseUnary()
	if p.at(lexer.STARSTAR) {
		p.advance()
		rhs := p.parsePow() // right-assoc
		return &ast.BinOp{Op: ast.Pow, Lhs: base, Rhs: rhs, Sp: span.Union(base.Span(), rhs.Span())}
	}
	return base
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Type {
	case lexer.MINUS:
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Op: ast.Neg, Operand: operand, Sp: span.Union(start, operand.Span())}
	case lexer.BANG:
		// `!` is ambiguous between boolean negation and ref dereference at
		// this point in the grammar; the checker resolves it once it knows
		// the operand's type (spec.md §3.2, §4.4.4 UnaryOp).
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Op: ast.Not, Operand: operand, Sp: span.Union(start, operand.Span())}
	}
	return p.parsePostfixApp()
}

// --- application and postfix field access (spec.md §4.2, highest
// precedence except primaries) ---

func (p *Parser) parsePostfixApp() ast.Expr {
	base := p.parsePrimary()
	for {
		switch {
		case p.at(lexer.LPAREN):
			p.advance()
			var args []ast.Expr
			if !p.at(lexer.RPAREN) {
				args = append(args, p.parseExpr())
				for p.at(lexer.COMMA) {
					p.advance()
					args = append(args, p.parseExpr())
				}
			}
			end, _ := p.expect(lexer.RPAREN, "function call")
			base = &ast.App{Func: base, Args: args, Sp: span.Union(base.Span(), end.Span)}
		case p.at(lexer.DOT):
			p.advance()
			name, sp, ok := p.expectIdent("field access")
			if !ok {
				return base
			}
			base = &ast.RecordAccess{Record: base, Field: name, Sp: span.Union(base.Span(), sp)}
		default:
			return base
		}
	}
}

// --- primary expressions ---

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur().Type {
	case lexer.INT:
		t := p.advance()
		return &ast.IntLit{Text: t.Text, Base: int(t.IntBase), Sp: t.Span}
	case lexer.FLOAT:
		t := p.advance()
		return &ast.FloatLit{Text: t.Text, Sp: t.Span}
	case lexer.STRING:
		t := p.advance()
		return &ast.StringLit{Value: t.StringValue, Sp: t.Span}
	case lexer.BOOL:
		t := p.advance()
		return &ast.BoolLit{Value: t.BoolValue, Sp: t.Span}
	case lexer.IDENT:
		t := p.advance()
		return &ast.Var{Name: t.Text, Sp: t.Span}
	case lexer.REF:
		t := p.advance()
		return &ast.Var{Name: "ref", Sp: t.Span}
	case lexer.UNSAFE:
		start := p.advance().Span
		operand := p.parsePostfixApp()
		return &ast.Unsafe{Expr: operand, Sp: span.Union(start, operand.Span())}
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.LBRACE:
		return p.parseRecordOrBlock()
	case lexer.LBRACKET:
		return p.parseListLiteral()
	default:
		sp := p.cur().Span
		p.unexpected(p.cur(), "an expression")
		if !p.atEOF() {
			p.advance()
		}
		return &ast.ErrorExpr{Sp: sp}
	}
}

// parseParenExpr disambiguates `()`, `(e)`, `(e : T)`, and `(e1, e2, ..)`.
// Lambda parameter lists are already peeled off by looksLikeLambdaStart
// before parsePrimary is reached.
func (p *Parser) parseParenExpr() ast.Expr {
	start := p.advance().Span // '('
	if p.at(lexer.RPAREN) {
		end := p.advance().Span
		return &ast.UnitLit{Sp: span.Union(start, end)}
	}
	first := p.parseExpr()
	switch {
	case p.at(lexer.COLON):
		p.advance()
		ty := p.parseTypeExpr()
		end, _ := p.expect(lexer.RPAREN, "type-annotated expression")
		return &ast.TypeAnnotation{Expr: first, Type: ty, Sp: span.Union(start, end.Span)}
	case p.at(lexer.COMMA):
		elems := []ast.Expr{first}
		for p.at(lexer.COMMA) {
			p.advance()
			elems = append(elems, p.parseExpr())
		}
		end, _ := p.expect(lexer.RPAREN, "tuple expression")
		return &ast.Tuple{Elements: elems, Sp: span.Union(start, end.Span)}
	default:
		p.expect(lexer.RPAREN, "parenthesized expression")
		return first
	}
}

// parseListLiteral parses `[e1, ...spread1, e2, ...spread2]`: spreads may
// occur any number of times at any position, not just trailing (spec.md
// §3.2 List/ListElement, §4.3's desugar table applies List.concat "at each
// spread position").
func (p *Parser) parseListLiteral() ast.Expr {
	start := p.advance().Span // '['
	var elems []ast.ListElement
	for !p.at(lexer.RBRACKET) && !p.atEOF() {
		elems = append(elems, p.parseListElement())
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(lexer.RBRACKET, "list literal")
	return &ast.List{Elements: elems, Sp: span.Union(start, end.Span)}
}

func (p *Parser) parseListElement() ast.ListElement {
	if p.at(lexer.ELLIPSIS) {
		sp := p.advance().Span
		val := p.parseExpr()
		return ast.ListElement{Spread: true, Value: val, Sp: span.Union(sp, val.Span())}
	}
	val := p.parseExpr()
	return ast.ListElement{Value: val, Sp: val.Span()}
}
