package lexer

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/vibefun-lang/vibefun/diag"
	"github.com/vibefun-lang/vibefun/span"
)

// TelemetryMode controls telemetry collection (production-safe, zero
// overhead when off), so a host can wire per-token-type counts/timing into
// whatever logger it owns, without this package importing one.
type TelemetryMode int

const (
	TelemetryOff TelemetryMode = iota
	TelemetryBasic
	TelemetryTiming
)

// DebugLevel is a development-only setting kept in Config; Lex does not
// read it and captures no traces at any level.
type DebugLevel int

const (
	DebugOff DebugLevel = iota
	DebugPaths
)

// Config holds lexer configuration, assembled via Option.
type Config struct {
	telemetry TelemetryMode
	debug     DebugLevel
}

// Option configures a Lexer.
type Option func(*Config)

// WithTelemetryBasic enables per-token-type counts.
func WithTelemetryBasic() Option { return func(c *Config) { c.telemetry = TelemetryBasic } }

// WithTelemetryTiming enables per-token-type counts and timing.
func WithTelemetryTiming() Option { return func(c *Config) { c.telemetry = TelemetryTiming } }

// WithDebugPaths sets the DebugPaths level in Config; Lex emits no trace
// events for it.
func WithDebugPaths() Option { return func(c *Config) { c.debug = DebugPaths } }

// TokenTelemetry holds per-token-type counters.
type TokenTelemetry struct {
	Type      TokenType
	Count     int
	TotalTime time.Duration
}

// TokenStream is the lexer's output: a finite token slice terminated by an
// EOF token (spec.md §4.1).
type TokenStream struct {
	Tokens    []Token
	Telemetry map[TokenType]*TokenTelemetry // nil unless telemetry enabled
}

// Lexer scans UTF-8 source bytes into tokens.
type Lexer struct {
	file   string
	input  []byte
	pos    int
	line   int
	column int

	newlinePending bool // a newline (or more) was consumed since the last token

	telemetry TelemetryMode
	counts    map[TokenType]*TokenTelemetry
}

// Lex scans source into a TokenStream, or returns a fatal diag.Diagnostic on
// the first malformed lexeme (spec.md §4.1: "Fails with LexError"; §7: "A
// lex failure aborts the pipeline for that file").
func Lex(source []byte, file string, opts ...Option) (*TokenStream, *diag.Diagnostic) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	l := &Lexer{
		file:      file,
		input:     stripBOM(source),
		line:      1,
		column:    1,
		telemetry: cfg.telemetry,
	}
	if cfg.telemetry > TelemetryOff {
		l.counts = make(map[TokenType]*TokenTelemetry)
	}

	stream := &TokenStream{Telemetry: l.counts}
	for {
		var begin time.Time
		if l.telemetry == TelemetryTiming {
			begin = time.Now()
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.record(tok)
		if l.telemetry == TelemetryTiming {
			l.counts[tok.Type].TotalTime += time.Since(begin)
		}
		stream.Tokens = append(stream.Tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return stream, nil
}

func (l *Lexer) record(tok Token) {
	if l.telemetry == TelemetryOff {
		return
	}
	t, ok := l.counts[tok.Type]
	if !ok {
		t = &TokenTelemetry{Type: tok.Type}
		l.counts[tok.Type] = t
	}
	t.Count++
}

func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func (l *Lexer) pos_() span.Position {
	return span.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.input) }

func (l *Lexer) byteAt(off int) byte {
	i := l.pos + off
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// advanceRune consumes one UTF-8 rune, updating line/column. CR, LF and CRLF
// all advance the line counter by exactly one (spec.md §4.1: "CR, LF, CRLF
// normalised to LF logically but preserved in spans" — the byte offset
// still reflects the untouched source).
func (l *Lexer) advanceRune() rune {
	if l.eof() {
		return -1
	}
	if l.input[l.pos] == '\r' {
		l.pos++
		if !l.eof() && l.input[l.pos] == '\n' {
			l.pos++
		}
		l.line++
		l.column = 1
		l.newlinePending = true
		return '\n'
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
		l.newlinePending = true
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peekRune() rune {
	if l.eof() {
		return -1
	}
	if l.input[l.pos] == '\r' {
		return '\n'
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) errAt(code diag.Code, start span.Position, msg string) *diag.Diagnostic {
	d := diag.New(code, span.Span{File: l.file, Start: start, End: l.pos_()}, msg)
	return &d
}

// skipWhitespaceAndComments consumes spaces, tabs, newlines, line comments
// and (possibly nested) block comments, recording whether a newline was
// seen so the next emitted token can carry NewlineBefore.
func (l *Lexer) skipWhitespaceAndComments() *diag.Diagnostic {
	for {
		if l.eof() {
			return nil
		}
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advanceRune()
		case c == '/' && l.byteAt(1) == '/':
			for !l.eof() && l.input[l.pos] != '\n' && l.input[l.pos] != '\r' {
				l.advanceRune()
			}
		case c == '/' && l.byteAt(1) == '*':
			start := l.pos_()
			l.advanceRune()
			l.advanceRune()
			depth := 1
			for depth > 0 {
				if l.eof() {
					return l.errAt(diag.CodeLexUnterminatedComment, start, "unterminated block comment")
				}
				if l.input[l.pos] == '/' && l.byteAt(1) == '*' {
					l.advanceRune()
					l.advanceRune()
					depth++
					continue
				}
				if l.input[l.pos] == '*' && l.byteAt(1) == '/' {
					l.advanceRune()
					l.advanceRune()
					depth--
					continue
				}
				l.advanceRune()
			}
		default:
			return nil
		}
	}
}

// next scans and returns the next token.
func (l *Lexer) next() (Token, *diag.Diagnostic) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}
	newline := l.newlinePending
	l.newlinePending = false

	start := l.pos_()
	if l.eof() {
		return Token{Type: EOF, Span: span.Span{File: l.file, Start: start, End: start}, NewlineBefore: newline}, nil
	}

	c := l.input[l.pos]
	switch {
	case isIdentStart(rune(c)) || c >= 0x80:
		return l.lexIdentOrKeyword(start, newline)
	case c >= '0' && c <= '9':
		return l.lexNumber(start, newline)
	case c == '"':
		return l.lexString(start, newline)
	default:
		return l.lexOperator(start, newline)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) ||
		r == 0x200D /* ZWJ */ || (r >= 0x1F000 && r <= 0x1FFFF) /* emoji-presentation blocks */
}

func (l *Lexer) lexIdentOrKeyword(start span.Position, newline bool) (Token, *diag.Diagnostic) {
	begin := l.pos
	for !l.eof() {
		r := l.peekRune()
		if r < 0 || !isIdentContinue(r) {
			break
		}
		l.advanceRune()
	}
	if l.pos == begin {
		r := l.peekRune()
		l.advanceRune()
		return Token{}, l.errAt(diag.CodeLexUnknownChar, start, fmt.Sprintf("unexpected character %q", r))
	}
	raw := string(l.input[begin:l.pos])
	text := norm.NFC.String(raw)

	sp := span.Span{File: l.file, Start: start, End: l.pos_()}
	if kw, ok := Keywords[text]; ok {
		return Token{Type: kw, Text: text, Span: sp, NewlineBefore: newline}, nil
	}
	if text == "true" || text == "false" {
		return Token{Type: BOOL, Text: text, Span: sp, NewlineBefore: newline, BoolValue: text == "true"}, nil
	}
	return Token{Type: IDENT, Text: text, Span: sp, NewlineBefore: newline}, nil
}

func (l *Lexer) lexNumber(start span.Position, newline bool) (Token, *diag.Diagnostic) {
	begin := l.pos

	if l.input[l.pos] == '0' && (l.byteAt(1) == 'x' || l.byteAt(1) == 'X') {
		l.advanceRune()
		l.advanceRune()
		digitsStart := l.pos
		for !l.eof() && (isHexDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
			l.advanceRune()
		}
		if l.pos == digitsStart || endsOrHasDoubleUnderscore(l.input[digitsStart:l.pos]) {
			return Token{}, l.errAt(diag.CodeLexBadNumber, start, "malformed hexadecimal integer literal")
		}
		text := string(l.input[begin:l.pos])
		return Token{Type: INT, Text: text, IntBase: Base16, Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline}, nil
	}
	if l.input[l.pos] == '0' && (l.byteAt(1) == 'b' || l.byteAt(1) == 'B') {
		l.advanceRune()
		l.advanceRune()
		digitsStart := l.pos
		for !l.eof() && (l.input[l.pos] == '0' || l.input[l.pos] == '1' || l.input[l.pos] == '_') {
			l.advanceRune()
		}
		if l.pos == digitsStart || endsOrHasDoubleUnderscore(l.input[digitsStart:l.pos]) {
			return Token{}, l.errAt(diag.CodeLexBadNumber, start, "malformed binary integer literal")
		}
		text := string(l.input[begin:l.pos])
		return Token{Type: INT, Text: text, IntBase: Base2, Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline}, nil
	}

	intStart := l.pos
	for !l.eof() && (l.input[l.pos] >= '0' && l.input[l.pos] <= '9' || l.input[l.pos] == '_') {
		l.advanceRune()
	}
	if endsOrHasDoubleUnderscore(l.input[intStart:l.pos]) {
		return Token{}, l.errAt(diag.CodeLexBadNumber, start, "malformed integer literal: stray underscore separator")
	}

	isFloat := false
	if !l.eof() && l.input[l.pos] == '.' && l.byteAt(1) >= '0' && l.byteAt(1) <= '9' {
		isFloat = true
		l.advanceRune() // .
		fracStart := l.pos
		for !l.eof() && (l.input[l.pos] >= '0' && l.input[l.pos] <= '9' || l.input[l.pos] == '_') {
			l.advanceRune()
		}
		if endsOrHasDoubleUnderscore(l.input[fracStart:l.pos]) {
			return Token{}, l.errAt(diag.CodeLexBadNumber, start, "malformed float literal: stray underscore separator")
		}
	}

	if !l.eof() && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		save := l.pos
		saveLine, saveCol := l.line, l.column
		l.advanceRune() // e
		if !l.eof() && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.advanceRune()
		}
		expStart := l.pos
		for !l.eof() && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
			l.advanceRune()
		}
		if l.pos == expStart {
			// Not actually an exponent (e.g. "1e" followed by an identifier);
			// back out and leave 'e' for the next token.
			l.pos, l.line, l.column = save, saveLine, saveCol
		} else {
			isFloat = true
		}
	}

	text := string(l.input[begin:l.pos])
	tt := INT
	base := Base10
	if isFloat {
		tt = FLOAT
	}
	return Token{Type: tt, Text: text, IntBase: base, Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline}, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func endsOrHasDoubleUnderscore(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if b[0] == '_' || b[len(b)-1] == '_' {
		return true
	}
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '_' && b[i+1] == '_' {
			return true
		}
	}
	return false
}

func (l *Lexer) lexString(start span.Position, newline bool) (Token, *diag.Diagnostic) {
	triple := l.byteAt(1) == '"' && l.byteAt(2) == '"'
	if triple {
		l.advanceRune()
		l.advanceRune()
		l.advanceRune()
	} else {
		l.advanceRune()
	}

	var sb strings.Builder
	for {
		if l.eof() {
			return Token{}, l.errAt(diag.CodeLexUnterminatedString, start, "unterminated string literal")
		}
		if triple {
			if l.input[l.pos] == '"' && l.byteAt(1) == '"' && l.byteAt(2) == '"' {
				l.advanceRune()
				l.advanceRune()
				l.advanceRune()
				break
			}
		} else {
			if l.input[l.pos] == '"' {
				l.advanceRune()
				break
			}
			if l.input[l.pos] == '\n' || l.input[l.pos] == '\r' {
				return Token{}, l.errAt(diag.CodeLexUnterminatedString, start, "unterminated string literal: raw newline in single-line string")
			}
		}
		if l.input[l.pos] == '\\' {
			r, err := l.lexEscape(start)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(r)
			continue
		}
		r := l.peekRune()
		l.advanceRune()
		sb.WriteRune(r)
	}

	value := norm.NFC.String(sb.String())
	return Token{
		Type: STRING, Text: string(l.input[start.Offset:l.pos]), StringValue: value,
		Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline,
	}, nil
}

// lexEscape decodes one \-escape sequence at the current position. The
// escape alphabet is \\ \" \' \n \r \t \xHH \uXXXX \u{1..6 hex} (spec.md
// §6.2).
func (l *Lexer) lexEscape(strStart span.Position) (rune, *diag.Diagnostic) {
	escStart := l.pos_()
	l.advanceRune() // backslash
	if l.eof() {
		return 0, l.errAt(diag.CodeLexBadEscape, escStart, "unterminated escape sequence")
	}
	c := l.input[l.pos]
	switch c {
	case '\\':
		l.advanceRune()
		return '\\', nil
	case '"':
		l.advanceRune()
		return '"', nil
	case '\'':
		l.advanceRune()
		return '\'', nil
	case 'n':
		l.advanceRune()
		return '\n', nil
	case 'r':
		l.advanceRune()
		return '\r', nil
	case 't':
		l.advanceRune()
		return '\t', nil
	case 'x':
		l.advanceRune()
		v, err := l.readHexDigits(2, 2, escStart)
		if err != nil {
			return 0, err
		}
		return rune(v), nil
	case 'u':
		l.advanceRune()
		if !l.eof() && l.input[l.pos] == '{' {
			l.advanceRune()
			v, err := l.readHexDigits(1, 6, escStart)
			if err != nil {
				return 0, err
			}
			if l.eof() || l.input[l.pos] != '}' {
				return 0, l.errAt(diag.CodeLexBadEscape, escStart, "malformed \\u{...} escape: missing closing brace")
			}
			l.advanceRune()
			if v > 0x10FFFF {
				return 0, l.errAt(diag.CodeLexBadEscape, escStart, "unicode escape out of range")
			}
			return rune(v), nil
		}
		v, err := l.readHexDigits(4, 4, escStart)
		if err != nil {
			return 0, err
		}
		return rune(v), nil
	default:
		return 0, l.errAt(diag.CodeLexBadEscape, escStart, fmt.Sprintf("unknown escape sequence \\%c", c))
	}
}

func (l *Lexer) readHexDigits(min, max int, escStart span.Position) (int64, *diag.Diagnostic) {
	var v int64
	n := 0
	for n < max && !l.eof() && isHexDigit(l.input[l.pos]) {
		v = v*16 + int64(hexVal(l.input[l.pos]))
		l.advanceRune()
		n++
	}
	if n < min {
		return 0, l.errAt(diag.CodeLexBadEscape, escStart, "malformed escape: not enough hex digits")
	}
	return v, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func (l *Lexer) lexOperator(start span.Position, newline bool) (Token, *diag.Diagnostic) {
	// Three-character: "..."
	if l.byteAt(0) == '.' && l.byteAt(1) == '.' && l.byteAt(2) == '.' {
		l.advanceRune()
		l.advanceRune()
		l.advanceRune()
		return Token{Type: ELLIPSIS, Text: "...", Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline}, nil
	}

	if l.pos+1 < len(l.input) {
		two := string(l.input[l.pos : l.pos+2])
		if tt, ok := TwoCharTokens[two]; ok {
			l.advanceRune()
			l.advanceRune()
			return Token{Type: tt, Text: two, Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline}, nil
		}
	}

	c := l.input[l.pos]
	if tt, ok := SingleCharTokens[c]; ok {
		l.advanceRune()
		return Token{Type: tt, Text: string(c), Span: span.Span{File: l.file, Start: start, End: l.pos_()}, NewlineBefore: newline}, nil
	}

	l.advanceRune()
	return Token{}, l.errAt(diag.CodeLexUnknownChar, start, fmt.Sprintf("unexpected character %q", c))
}
