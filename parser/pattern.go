package parser

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/span"
)

// parsePattern handles or-patterns (`p1 | p2 | ..`), the lowest-precedence
// pattern form (spec.md §3.2 POr).
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseAtomPattern()
	if !p.at(lexer.PIPE) {
		return first
	}
	alts := []ast.Pattern{first}
	for p.at(lexer.PIPE) {
		p.advance()
		alts = append(alts, p.parseAtomPattern())
	}
	return &ast.POr{Alternatives: alts, Sp: span.Union(first.Span(), alts[len(alts)-1].Span())}
}

func (p *Parser) parseAtomPattern() ast.Pattern {
	switch p.cur().Type {
	case lexer.IDENT:
		t := p.advance()
		if t.Text == "_" {
			return &ast.PWildcard{Sp: t.Span}
		}
		if len(t.Text) > 0 && t.Text[0] >= 'A' && t.Text[0] <= 'Z' {
			return p.parseConstructorPatternFrom(t)
		}
		return &ast.PVar{Name: t.Text, Sp: t.Span}
	case lexer.INT:
		t := p.advance()
		return &ast.PLiteral{Kind: ast.PLitInt, Text: t.Text, Sp: t.Span}
	case lexer.FLOAT:
		t := p.advance()
		return &ast.PLiteral{Kind: ast.PLitFloat, Text: t.Text, Sp: t.Span}
	case lexer.STRING:
		t := p.advance()
		return &ast.PLiteral{Kind: ast.PLitString, Str: t.StringValue, Sp: t.Span}
	case lexer.BOOL:
		t := p.advance()
		return &ast.PLiteral{Kind: ast.PLitBool, Bool: t.BoolValue, Sp: t.Span}
	case lexer.MINUS:
		// a negative numeric literal pattern, e.g. `-1`.
		start := p.advance().Span
		switch p.cur().Type {
		case lexer.INT:
			t := p.advance()
			return &ast.PLiteral{Kind: ast.PLitInt, Text: "-" + t.Text, Sp: span.Union(start, t.Span)}
		case lexer.FLOAT:
			t := p.advance()
			return &ast.PLiteral{Kind: ast.PLitFloat, Text: "-" + t.Text, Sp: span.Union(start, t.Span)}
		}
		p.unexpected(p.cur(), "a pattern")
		return &ast.PWildcard{Sp: start}
	case lexer.LPAREN:
		return p.parseParenPattern()
	case lexer.LBRACE:
		return p.parseRecordPattern()
	case lexer.LBRACKET:
		return p.parseListPattern()
	default:
		sp := p.cur().Span
		p.unexpected(p.cur(), "a pattern")
		if !p.atEOF() {
			p.advance()
		}
		return &ast.PWildcard{Sp: sp}
	}
}

func (p *Parser) parseConstructorPatternFrom(name lexer.Token) ast.Pattern {
	var args []ast.Pattern
	end := name.Span
	if p.at(lexer.LPAREN) {
		p.advance()
		if !p.at(lexer.RPAREN) {
			args = append(args, p.parsePattern())
			for p.at(lexer.COMMA) {
				p.advance()
				args = append(args, p.parsePattern())
			}
		}
		endTok, _ := p.expect(lexer.RPAREN, "constructor pattern")
		end = endTok.Span
	}
	return &ast.PConstructor{Name: name.Text, Args: args, Sp: span.Union(name.Span, end)}
}

// parseParenPattern disambiguates `()`, `(p)`, `(p : T)`, and `(p1, p2, ..)`.
func (p *Parser) parseParenPattern() ast.Pattern {
	start := p.advance().Span // '('
	if p.at(lexer.RPAREN) {
		end := p.advance().Span
		return &ast.PLiteral{Kind: ast.PLitUnit, Sp: span.Union(start, end)}
	}
	first := p.parsePattern()
	switch {
	case p.at(lexer.COLON):
		p.advance()
		ty := p.parseTypeExpr()
		end, _ := p.expect(lexer.RPAREN, "type-annotated pattern")
		return &ast.PTypeAnnotation{Pattern: first, Type: ty, Sp: span.Union(start, end.Span)}
	case p.at(lexer.COMMA):
		elems := []ast.Pattern{first}
		for p.at(lexer.COMMA) {
			p.advance()
			elems = append(elems, p.parsePattern())
		}
		end, _ := p.expect(lexer.RPAREN, "tuple pattern")
		return &ast.PTuple{Elements: elems, Sp: span.Union(start, end.Span)}
	default:
		p.expect(lexer.RPAREN, "parenthesized pattern")
		return first
	}
}

func (p *Parser) parseRecordPattern() ast.Pattern {
	start := p.advance().Span // '{'
	var fields []ast.PRecordField
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		name, sp, _ := p.expectIdent("record pattern field")
		var fieldPat ast.Pattern
		if p.at(lexer.COLON) {
			p.advance()
			fieldPat = p.parsePattern()
		}
		fields = append(fields, ast.PRecordField{Name: name, Pattern: fieldPat, Sp: sp})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(lexer.RBRACE, "record pattern")
	return &ast.PRecord{Fields: fields, Sp: span.Union(start, end.Span)}
}

func (p *Parser) parseListPattern() ast.Pattern {
	start := p.advance().Span // '['
	var elems []ast.Pattern
	var rest ast.Pattern
	for !p.at(lexer.RBRACKET) && !p.atEOF() {
		if p.at(lexer.ELLIPSIS) {
			p.advance()
			rest = p.parsePattern()
			break
		}
		elems = append(elems, p.parsePattern())
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(lexer.RBRACKET, "list pattern")
	return &ast.PList{Elements: elems, Rest: rest, Sp: span.Union(start, end.Span)}
}
