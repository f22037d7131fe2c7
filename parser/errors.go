package parser

import (
	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/lexer"
	"github.com/vibefun-lang/vibefun/span"
)

// unexpected reports that cur doesn't match any production the parser was
// willing to try, carrying the same token/context/suggestion shape as any
// other parse diagnostic, flattened into a diag.Diagnostic so the whole
// pipeline shares one diagnostic type.
func (p *Parser) unexpected(cur lexer.Token, context string) {
	p.bag.Add(diag.New(diag.CodeParseUnexpectedToken, cur.Span,
		"unexpected "+tokenDesc(cur)+" while parsing "+context))
}

func (p *Parser) expectedButGot(want string, cur lexer.Token, context string) {
	p.bag.Add(diag.New(diag.CodeParseExpected, cur.Span,
		"expected "+want+" while parsing "+context+", found "+tokenDesc(cur)))
}

func tokenDesc(t lexer.Token) string {
	switch t.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT:
		return "identifier '" + t.Text + "'"
	case lexer.STRING:
		return "string literal"
	case lexer.INT, lexer.FLOAT:
		return "numeric literal '" + t.Text + "'"
	default:
		return "'" + t.Type.String() + "'"
	}
}

// synthSpanAfter builds a zero-width span right after sp, used when the
// parser synthesizes a node the source didn't spell out (e.g. the implicit
// Unit else-branch of an `if` with no `else`, spec.md §3.2).
func synthSpanAfter(sp span.Span) span.Span {
	return span.Span{File: sp.File, Start: sp.End, End: sp.End}
}
