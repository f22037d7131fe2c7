// Package parser implements spec.md §4.2: tokens to Surface AST, with a
// ParseError-with-resync recovery style, as a conventional recursive-descent
// / precedence-climbing parser that builds ast.* nodes directly — see
// DESIGN.md.
package parser

import (
	"github.com/vibefun-lang/vibefun/ast"
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/span"
)

// Parser turns one file's token stream into a Surface ast.Module, recovering
// from malformed declarations instead of stopping at the first error
// (spec.md §4.2 "Error recovery").
type Parser struct {
	file string
	toks []lexer.Token
	pos  int
	bag  *diag.Bag
}

// Parse lexes nothing itself; it consumes an already-lexed token stream (see
// lexer.Lex) and returns the Surface Module plus every diagnostic collected
// along the way.
func Parse(toks []lexer.Token, file string, opts ...Option) (*ast.Module, *diag.Bag) {
	cfg := newConfig(opts...)
	p := &Parser{
		file: file,
		toks: append([]lexer.Token(nil), toks...), // owned copy: generic `>>` splitting mutates in place
		bag:  diag.NewBagWithBudget(cfg.Budget),
	}
	return p.parseModule(), p.bag
}

// --- token cursor ---

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel, always present
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(k int) lexer.Token {
	i := p.pos + k
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) atEOF() bool { return p.cur().Type == lexer.EOF }

// expect consumes cur if it matches tt, else reports a diagnostic and leaves
// the cursor in place so the caller's own recovery can decide what to skip.
func (p *Parser) expect(tt lexer.TokenType, context string) (lexer.Token, bool) {
	if p.at(tt) {
		return p.advance(), true
	}
	p.expectedButGot("'"+tt.String()+"'", p.cur(), context)
	return lexer.Token{}, false
}

// expectIdent consumes an IDENT and returns its text, or "" on failure.
func (p *Parser) expectIdent(context string) (string, span.Span, bool) {
	if p.at(lexer.IDENT) {
		t := p.advance()
		return t.Text, t.Span, true
	}
	p.expectedButGot("an identifier", p.cur(), context)
	return "", p.cur().Span, false
}

// consumeGT consumes one '>' worth of input, splitting a lexed '>>' (SHR)
// token into two synthetic '>' tokens in place when needed — the classic
// nested-generics-vs-shift-operator ambiguity (`C<D<T>>`).
func (p *Parser) consumeGT() bool {
	switch p.cur().Type {
	case lexer.GT:
		p.advance()
		return true
	case lexer.SHR:
		half := p.toks[p.pos]
		half.Type = lexer.GT
		half.Text = ">"
		p.toks[p.pos] = half
		return true // leave the split GT for the next consumeGT to eat
	}
	return false
}

// --- module / declarations ---

// declStarters are the tokens that begin a top-level Declaration; used to
// resync after a malformed one (spec.md §4.2).
var declStarters = map[lexer.TokenType]bool{
	lexer.LET: true, lexer.TYPE: true, lexer.EXTERNAL: true,
	lexer.IMPORT: true, lexer.EXPORT: true,
}

func (p *Parser) parseModule() *ast.Module {
	start := p.cur().Span
	var decls []ast.Decl
	for !p.atEOF() {
		// Bag.Add silently stops accepting new errors past budget (spec.md
		// §7) but parsing continues regardless, so callers always see a
		// complete (if partially error-recovered) tree.
		d := p.parseDecl()
		decls = append(decls, d)
		p.consumeSemiOrResync()
	}
	end := p.cur().Span
	return &ast.Module{Decls: decls, Sp: span.Union(start, end)}
}

// consumeSemiOrResync expects the mandatory trailing ';' (spec.md §4.2: "a
// semicolon is required after every declaration ... EOF is not a
// substitute"); on failure it skips tokens until a declaration starter, a
// ';', or EOF.
func (p *Parser) consumeSemiOrResync() {
	if p.at(lexer.SEMI) {
		p.advance()
		return
	}
	if p.atEOF() {
		return
	}
	p.bag.Add(diag.New(diag.CodeParseMissingSemi, p.cur().Span, "expected ';' after declaration"))
	for !p.atEOF() && !declStarters[p.cur().Type] {
		if p.at(lexer.SEMI) {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur().Type {
	case lexer.LET:
		return p.parseLetDecl()
	case lexer.TYPE:
		return p.parseTypeDeclTop()
	case lexer.EXTERNAL:
		return p.parseExternalTop()
	case lexer.IMPORT:
		return p.parseImportDecl()
	case lexer.EXPORT:
		return p.parseExportDecl()
	default:
		sp := p.cur().Span
		p.unexpected(p.cur(), "a declaration")
		if !p.atEOF() {
			p.advance()
		}
		return &ast.ErrorDecl{Sp: sp}
	}
}

func (p *Parser) parseLetDecl() ast.Decl {
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
		first := p.parseLetRecBinding()
		bindings := []ast.LetBinding{first}
		for p.at(lexer.AND) {
			p.advance()
			bindings = append(bindings, p.parseLetRecBinding())
		}
		end := bindings[len(bindings)-1].Sp
		return &ast.LetRecGroup{Bindings: bindings, Sp: span.Union(start, end)}
	}

	pat := p.parsePattern()
	if p.at(lexer.COLON) {
		p.advance()
		ty := p.parseTypeExpr()
		pat = &ast.PTypeAnnotation{Pattern: pat, Type: ty, Sp: span.Union(pat.Span(), ty.Span())}
	}
	p.expect(lexer.ASSIGN, "let binding")
	val := p.parseExpr()
	return &ast.LetDecl{Pat: pat, Value: val, Mutable: mutable, Sp: span.Union(start, val.Span())}
}

func (p *Parser) parseLetRecBinding() ast.LetBinding {
	name, sp, _ := p.expectIdent("let rec binding")
	p.expect(lexer.ASSIGN, "let rec binding")
	val := p.parseExpr()
	return ast.LetBinding{Name: name, Value: val, Sp: span.Union(sp, val.Span())}
}

func (p *Parser) parseImportDecl() ast.Decl {
	start := p.advance().Span // 'import'
	var items []ast.ImportItem
	p.expect(lexer.LBRACE, "import list")
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		name, sp, _ := p.expectIdent("import item")
		alias := ""
		if p.at(lexer.AS) {
			p.advance()
			alias, _, _ = p.expectIdent("import alias")
		}
		items = append(items, ast.ImportItem{Name: name, Alias: alias, Sp: sp})
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE, "import list")
	p.expect(lexer.FROM, "import declaration")
	path := ""
	if p.at(lexer.STRING) {
		path = p.advance().StringValue
	} else {
		p.expectedButGot("a module path string", p.cur(), "import declaration")
	}
	return &ast.ImportDecl{Path: path, Items: items, Sp: span.Union(start, p.toks[p.pos-1].Span)}
}

func (p *Parser) parseExportDecl() ast.Decl {
	start := p.advance().Span // 'export'
	p.expect(lexer.LBRACE, "export list")
	var names []string
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		name, _, _ := p.expectIdent("export item")
		names = append(names, name)
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end, _ := p.expect(lexer.RBRACE, "export list")
	return &ast.ExportDecl{Names: names, Sp: span.Union(start, end.Span)}
}

func (p *Parser) parseExternalTop() ast.Decl {
	start := p.cur().Span
	p.advance() // 'external'
	if p.at(lexer.LBRACE) {
		p.advance()
		var decls []ast.Decl
		for !p.at(lexer.RBRACE) && !p.atEOF() {
			decls = append(decls, p.parseExternalMember())
			p.consumeSemiOrResync()
		}
		end, _ := p.expect(lexer.RBRACE, "external block")
		return &ast.ExternalBlock{Decls: decls, Sp: span.Union(start, end.Span)}
	}
	return p.parseExternalMemberFrom(start)
}

func (p *Parser) parseExternalMember() ast.Decl {
	return p.parseExternalMemberFrom(p.cur().Span)
}

// parseExternalMemberFrom parses one `external <decl>` item — either
// `external type Name<..>` (opaque FFI type) or `external name : T = "js"`
// (bound value/function), spec.md §3.2.
func (p *Parser) parseExternalMemberFrom(start span.Span) ast.Decl {
	if p.at(lexer.TYPE) {
		p.advance()
		name, _, _ := p.expectIdent("external type declaration")
		params := p.parseOptTypeParams()
		return &ast.ExternalTypeDecl{Name: name, Params: params, Sp: span.Union(start, p.toks[p.pos-1].Span)}
	}
	name, _, _ := p.expectIdent("external declaration")
	p.expect(lexer.COLON, "external declaration")
	ty := p.parseTypeExpr()
	p.expect(lexer.ASSIGN, "external declaration")
	js := ""
	if p.at(lexer.STRING) {
		js = p.advance().StringValue
	} else {
		p.expectedButGot("a JS expression string", p.cur(), "external declaration")
	}
	return &ast.ExternalDecl{Name: name, Type: ty, JSExpr: js, Sp: span.Union(start, p.toks[p.pos-1].Span)}
}

// parseOptTypeParams parses an optional `<a, b, ..>` type-variable parameter
// list, used by both `type` and `external type` declarations.
func (p *Parser) parseOptTypeParams() []string {
	if !p.at(lexer.LT) {
		return nil
	}
	p.advance()
	var params []string
	for {
		name, _, ok := p.expectIdent("type parameter list")
		if ok {
			params = append(params, name)
		}
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.consumeGT()
	return params
}
