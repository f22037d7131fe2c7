package parser

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/span"
)

// parseRecordOrBlock resolves the `{` ambiguity per spec.md §4.2: a `}`, a
// spread, or an identifier followed by `:`, `,` or `}` commits to a record;
// anything else commits to a block.
func (p *Parser) parseRecordOrBlock() ast.Expr {
	if p.commitsToRecord() {
		return p.parseRecord()
	}
	return p.parseBlock()
}

func (p *Parser) commitsToRecord() bool {
	next := p.peekAt(1)
	switch next.Type {
	case lexer.RBRACE, lexer.ELLIPSIS:
		return true
	case lexer.IDENT:
		after := p.peekAt(2)
		return after.Type == lexer.COLON || after.Type == lexer.COMMA || after.Type == lexer.RBRACE
	}
	return false
}

// parseRecord parses `{ field, ..., ...spread, ... }`. A leading spread
// (`{...base, x: 1}`) commits to RecordUpdate, taking the spread expression
// as the base record being updated; any other shape — no spread, or a
// spread that isn't first — commits to a plain Record literal (a
// non-leading spread is left in Fields for the desugarer, spec.md §4.3,
// DESIGN.md "merged-spread RecordUpdate handling").
func (p *Parser) parseRecord() ast.Expr {
	start := p.cur().Span
	p.advance() // '{'
	var fields []ast.RecordField
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		fields = append(fields, p.parseRecordField())
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(lexer.RBRACE, "record")
	sp := span.Union(start, end.Span)
	if len(fields) > 0 && fields[0].Spread {
		return &ast.RecordUpdate{Record: fields[0].Value, Fields: fields[1:], Sp: sp}
	}
	return &ast.Record{Fields: fields, Sp: sp}
}

func (p *Parser) parseRecordField() ast.RecordField {
	if p.at(lexer.ELLIPSIS) {
		start := p.advance().Span
		val := p.parseExpr()
		return ast.RecordField{Spread: true, Value: val, Sp: span.Union(start, val.Span())}
	}
	name, sp, _ := p.expectIdent("record field")
	if p.at(lexer.COLON) {
		p.advance()
		val := p.parseExpr()
		return ast.RecordField{Name: name, Value: val, Sp: span.Union(sp, val.Span())}
	}
	// Shorthand `{x}` expands to `{x: x}` here in the parser (spec.md §4.2
	// output invariant), so the desugarer never needs to special-case it.
	return ast.RecordField{Name: name, Value: &ast.Var{Name: name, Sp: sp}, Sp: sp}
}

// parseBlock requires a ';' between statements but, unlike a module
// declaration, allows the final statement to omit its trailing ';' — that
// statement's value becomes the block's value (spec.md §3.2 Block).
func (p *Parser) parseBlock() ast.Expr {
	start := p.advance().Span // '{'
	var stmts []ast.BlockStmt
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		stmts = append(stmts, p.parseBlockStmt())
		if p.at(lexer.RBRACE) {
			break
		}
		p.expect(lexer.SEMI, "block statement")
	}
	end, _ := p.expect(lexer.RBRACE, "block")
	if len(stmts) == 0 {
		return &ast.UnitLit{Sp: span.Union(start, end.Span)}
	}
	return &ast.Block{Stmts: stmts, Sp: span.Union(start, end.Span)}
}

func (p *Parser) parseBlockStmt() ast.BlockStmt {
	if p.at(lexer.LET) {
		start := p.advance().Span
		mutable := false
		if p.at(lexer.MUT) {
			mutable = true
			p.advance()
		}
		pat := p.parsePattern()
		if p.at(lexer.COLON) {
			p.advance()
			ty := p.parseTypeExpr()
			pat = &ast.PTypeAnnotation{Pattern: pat, Type: ty, Sp: span.Union(pat.Span(), ty.Span())}
		}
		p.expect(lexer.ASSIGN, "let statement")
		val := p.parseExpr()
		return ast.BlockStmt{IsLet: true, Pat: pat, Mutable: mutable, Value: val, Sp: span.Union(start, val.Span())}
	}
	val := p.parseExpr()
	return ast.BlockStmt{Value: val, Sp: val.Span()}
}
