package parser

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/span"
)

// parseTypeDeclTop parses a top-level `type Name<..> = Body` declaration,
// possibly `and`-chained into a mutually-recursive group (spec.md §3.2: "a
// sequence of and-separated let rec or type bindings forms a mutually
// recursive group").
func (p *Parser) parseTypeDeclTop() ast.Decl {
	start := p.cur().Span
	first := p.parseOneTypeDecl()
	if !p.at(lexer.AND) {
		return &first
	}
	decls := []ast.TypeDecl{first}
	for p.at(lexer.AND) {
		p.advance()
		andStart := p.cur().Span
		name, _, _ := p.expectIdent("type group")
		params := p.parseOptTypeParams()
		p.expect(lexer.ASSIGN, "type group")
		decls = append(decls, p.parseTypeDeclBody(andStart, name, params))
	}
	end := decls[len(decls)-1].Sp
	return &ast.TypeDeclGroup{Decls: decls, Sp: span.Union(start, end)}
}

func (p *Parser) parseOneTypeDecl() ast.TypeDecl {
	start := p.advance().Span // 'type'
	name, _, _ := p.expectIdent("type declaration")
	params := p.parseOptTypeParams()
	p.expect(lexer.ASSIGN, "type declaration")
	return p.parseTypeDeclBody(start, name, params)
}

// parseTypeDeclBody decides, from the token after `=`, which of the three
// `type` shapes (spec.md §3.2) this declaration takes. Only this position —
// not general type-expression parsing — can introduce a new variant's case
// list; elsewhere a variant type is referenced by name (ast.TNamed/TApp).
func (p *Parser) parseTypeDeclBody(start span.Span, name string, params []string) ast.TypeDecl {
	if p.at(lexer.LBRACE) {
		fields := p.parseTypeRecordFields()
		return ast.TypeDecl{Name: name, Params: params, Kind: ast.TypeDefRecord, Fields: fields, Sp: span.Union(start, p.toks[p.pos-1].Span)}
	}
	if looksLikeVariantCase(p.cur()) {
		cases := p.parseVariantCases()
		return ast.TypeDecl{Name: name, Params: params, Kind: ast.TypeDefVariant, Cases: cases, Sp: span.Union(start, p.toks[p.pos-1].Span)}
	}
	ty := p.parseTypeExpr()
	return ast.TypeDecl{Name: name, Params: params, Kind: ast.TypeDefAlias, Alias: ty, Sp: span.Union(start, ty.Span())}
}

// looksLikeVariantCase reports whether cur can start a constructor-case list
// (`Name(...)` or bare `Name`, conventionally capitalized). A capitalized
// leading identifier is the signal the parser uses to commit to variant
// syntax rather than an alias naming an existing capitalized type.
func looksLikeVariantCase(t lexer.Token) bool {
	return t.Type == lexer.IDENT && len(t.Text) > 0 && t.Text[0] >= 'A' && t.Text[0] <= 'Z'
}

func (p *Parser) parseVariantCases() []ast.TVariantCase {
	var cases []ast.TVariantCase
	cases = append(cases, p.parseOneVariantCase())
	for p.at(lexer.PIPE) {
		p.advance()
		cases = append(cases, p.parseOneVariantCase())
	}
	return cases
}

func (p *Parser) parseOneVariantCase() ast.TVariantCase {
	name, _, _ := p.expectIdent("variant case")
	var args []ast.TypeExpr
	if p.at(lexer.LPAREN) {
		p.advance()
		if !p.at(lexer.RPAREN) {
			args = append(args, p.parseTypeExpr())
			for p.at(lexer.COMMA) {
				p.advance()
				args = append(args, p.parseTypeExpr())
			}
		}
		p.expect(lexer.RPAREN, "variant case arguments")
	}
	return ast.TVariantCase{Name: name, Args: args}
}

func (p *Parser) parseTypeRecordFields() []ast.TRecordField {
	p.expect(lexer.LBRACE, "record type")
	var fields []ast.TRecordField
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		fname, _, _ := p.expectIdent("record type field")
		p.expect(lexer.COLON, "record type field")
		fty := p.parseTypeExpr()
		fields = append(fields, ast.TRecordField{Name: fname, Type: fty})
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE, "record type")
	return fields
}

// --- general type-expression grammar (spec.md §3.2), used everywhere a
// type is referenced: annotations, record/external fields, fn signatures.

func (p *Parser) parseTypeExpr() ast.TypeExpr {
	if p.at(lexer.LPAREN) && p.looksLikeFunctionType() {
		return p.parseFunctionType()
	}
	return p.parseTypeUnion()
}

// looksLikeFunctionType scans a balanced `(...)` from cur and checks whether
// '->' follows, mirroring expr.go's looksLikeLambdaStart.
func (p *Parser) looksLikeFunctionType() bool {
	end := p.matchingParen(p.pos)
	if end < 0 {
		return false
	}
	return p.peekTypeAt(end+1).Type == lexer.ARROW
}

func (p *Parser) peekTypeAt(i int) lexer.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) parseFunctionType() ast.TypeExpr {
	start := p.advance().Span // '('
	var params []ast.TypeExpr
	if !p.at(lexer.RPAREN) {
		params = append(params, p.parseTypeExpr())
		for p.at(lexer.COMMA) {
			p.advance()
			params = append(params, p.parseTypeExpr())
		}
	}
	p.expect(lexer.RPAREN, "function type")
	p.expect(lexer.ARROW, "function type")
	result := p.parseTypeExpr()
	return &ast.TFun{Params: params, Result: result, Sp: span.Union(start, result.Span())}
}

func (p *Parser) parseTypeUnion() ast.TypeExpr {
	first := p.parseTypeApp()
	if !p.at(lexer.PIPE) {
		return first
	}
	alts := []ast.TypeExpr{first}
	for p.at(lexer.PIPE) {
		p.advance()
		alts = append(alts, p.parseTypeApp())
	}
	return &ast.TUnion{Alts: alts, Sp: span.Union(first.Span(), alts[len(alts)-1].Span())}
}

func (p *Parser) parseTypeApp() ast.TypeExpr {
	base := p.parseTypeAtom()
	if p.at(lexer.LT) {
		named, ok := base.(*ast.TNamed)
		startSp := base.Span()
		p.advance()
		var args []ast.TypeExpr
		if !p.at(lexer.GT) && !p.at(lexer.SHR) {
			args = append(args, p.parseTypeExpr())
			for p.at(lexer.COMMA) {
				p.advance()
				args = append(args, p.parseTypeExpr())
			}
		}
		endSp := p.cur().Span
		p.consumeGT()
		ctor := ""
		if ok {
			ctor = named.Name
		}
		return &ast.TApp{Ctor: ctor, Args: args, Sp: span.Union(startSp, endSp)}
	}
	return base
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	switch p.cur().Type {
	case lexer.IDENT:
		t := p.advance()
		if t.Text == "Ref" && p.at(lexer.LT) {
			p.advance()
			inner := p.parseTypeExpr()
			end := p.cur().Span
			p.consumeGT()
			return &ast.TRef{Inner: inner, Sp: span.Union(t.Span, end)}
		}
		if len(t.Text) > 0 && t.Text[0] >= 'a' && t.Text[0] <= 'z' && len(t.Text) <= 2 {
			// short lowercase names (a, b, t1) are conventionally type variables.
			return &ast.TVar{Name: t.Text, Sp: t.Span}
		}
		return &ast.TNamed{Name: t.Text, Sp: t.Span}
	case lexer.STRING:
		t := p.advance()
		return &ast.TNamed{Name: "\"" + t.StringValue + "\"", Sp: t.Span}
	case lexer.LBRACE:
		return p.typeRecordAsExpr()
	case lexer.LPAREN:
		start := p.advance().Span
		if p.at(lexer.RPAREN) {
			end := p.advance().Span
			return &ast.TNamed{Name: "Unit", Sp: span.Union(start, end)}
		}
		first := p.parseTypeExpr()
		if p.at(lexer.COMMA) {
			elems := []ast.TypeExpr{first}
			for p.at(lexer.COMMA) {
				p.advance()
				elems = append(elems, p.parseTypeExpr())
			}
			end, _ := p.expect(lexer.RPAREN, "tuple type")
			return &ast.TTuple{Elements: elems, Sp: span.Union(start, end.Span)}
		}
		p.expect(lexer.RPAREN, "parenthesized type")
		return first
	default:
		sp := p.cur().Span
		p.unexpected(p.cur(), "a type")
		if !p.atEOF() {
			p.advance()
		}
		return &ast.TNamed{Name: "", Sp: sp}
	}
}

func (p *Parser) typeRecordAsExpr() ast.TypeExpr {
	start := p.cur().Span
	fields := p.parseTypeRecordFields()
	return &ast.TRecord{Fields: fields, Sp: span.Union(start, p.toks[p.pos-1].Span)}
}
