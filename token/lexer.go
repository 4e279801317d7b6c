package token

import (
	"strconv"
	"strings"

	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/internal/textlit"
	"github.com/mycel-lang/mon/location"
)

// keywords maps reserved identifier spellings to their token kind. Anything
// not in this table lexes as a plain Ident.
var keywords = map[string]Kind{
	"import": KwImport,
	"from":   KwFrom,
	"as":     KwAs,
	"struct": KwStruct,
	"enum":   KwEnum,
	"true":   Bool,
	"false":  Bool,
	"on":     Bool,
	"off":    Bool,
	"null":   Null,
}

// Lexer is a single-pass, error-tolerant scanner over source bytes. It never
// aborts: a malformed byte sequence yields an Err token plus a collected
// diagnostic, and scanning resumes at the next byte.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unconsumed byte
	coll *diag.Collector
	sb   *SpanBuilder
}

// NewLexer creates a lexer over src. registry must already have src's
// content registered under sourceID (the caller owns registration, since it
// may also be shared by the parser and diagnostics renderer). Diagnostics
// are reported to coll as they are discovered.
func NewLexer(sourceID location.SourceID, src string, registry location.PositionRegistry, coll *diag.Collector) *Lexer {
	return &Lexer{src: src, coll: coll, sb: NewSpanBuilder(sourceID, registry)}
}

func (l *Lexer) span(start, end int) location.Span {
	return l.sb.Span(start, end)
}

func (l *Lexer) report(start, end int, code diag.Code, message string) {
	l.coll.Collect(diag.NewIssue(diag.Error, code, message).
		WithSpan(l.span(start, end)).
		Build())
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekByte() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		b := l.peekByte()
		if isSpace(b) {
			l.pos++
			continue
		}
		if b == '/' && l.peekByteAt(1) == '/' {
			for !l.atEnd() && l.peekByte() != '\n' {
				l.pos++
			}
			continue
		}
		break
	}
}

// Next returns the next token in the stream. Once Eof has been returned, all
// subsequent calls keep returning Eof.
func (l *Lexer) Next() Token {
	l.skipTrivia()

	start := l.pos
	if l.atEnd() {
		return Token{Kind: Eof, Span: l.span(start, start)}
	}

	b := l.peekByte()

	switch {
	case isIdentStart(b):
		return l.lexIdent(start)
	case isDigit(b), b == '-', b == '.' && isDigit(l.peekByteAt(1)):
		return l.lexNumber(start)
	case b == '"':
		return l.lexString(start)
	case b == '&':
		return l.lexSigil(start, '&', Anchor)
	case b == '*':
		// A bare '*' not immediately followed by an identifier is the
		// standalone token used by "import * as ns", not a malformed
		// alias: only '&' has no other standalone use in the grammar.
		if !isIdentStart(l.peekByteAt(1)) {
			l.pos++
			return Token{Kind: Star, Text: "*", Span: l.span(start, l.pos)}
		}
		return l.lexSigil(start, '*', Alias)
	case b == '.':
		return l.lexDots(start)
	}

	l.pos++
	switch b {
	case '{':
		return Token{Kind: LBrace, Text: "{", Span: l.span(start, l.pos)}
	case '}':
		return Token{Kind: RBrace, Text: "}", Span: l.span(start, l.pos)}
	case '[':
		return Token{Kind: LBracket, Text: "[", Span: l.span(start, l.pos)}
	case ']':
		return Token{Kind: RBracket, Text: "]", Span: l.span(start, l.pos)}
	case '(':
		return Token{Kind: LParen, Text: "(", Span: l.span(start, l.pos)}
	case ')':
		return Token{Kind: RParen, Text: ")", Span: l.span(start, l.pos)}
	case ':':
		if l.peekByte() == ':' {
			l.pos++
			return Token{Kind: DoubleColon, Text: "::", Span: l.span(start, l.pos)}
		}
		return Token{Kind: Colon, Text: ":", Span: l.span(start, l.pos)}
	case '=':
		return Token{Kind: Equals, Text: "=", Span: l.span(start, l.pos)}
	case ',':
		return Token{Kind: Comma, Text: ",", Span: l.span(start, l.pos)}
	case '$':
		return Token{Kind: Dollar, Text: "$", Span: l.span(start, l.pos)}
	case '#':
		return Token{Kind: Hash, Text: "#", Span: l.span(start, l.pos)}
	}

	l.report(start, l.pos, diag.E0004UnexpectedChar, "unexpected character "+strconv.QuoteRune(rune(b)))
	return Token{Kind: Err, Text: "unexpected character", Span: l.span(start, l.pos)}
}

// lexDots resolves the three dot-led forms: "..." (Spread), "." (Dot), and
// the invalid ".." which reports InvalidSpreadContext and yields a best
// effort Dot token so parsing can keep going.
func (l *Lexer) lexDots(start int) Token {
	n := 0
	for l.peekByteAt(n) == '.' {
		n++
	}
	switch n {
	case 1:
		l.pos += 1
		return Token{Kind: Dot, Text: ".", Span: l.span(start, l.pos)}
	case 3:
		l.pos += 3
		return Token{Kind: Spread, Text: "...", Span: l.span(start, l.pos)}
	default:
		l.pos += n
		l.report(start, l.pos, diag.E0012InvalidSpreadContext, "expected '...' but found '"+strings.Repeat(".", n)+"'")
		return Token{Kind: Dot, Text: ".", Span: l.span(start, l.pos)}
	}
}

// lexSigil lexes the `&name` / `*name` forms. sigil must be directly
// followed (no whitespace) by an identifier.
func (l *Lexer) lexSigil(start int, sigil byte, kind Kind) Token {
	l.pos++ // consume sigil byte
	if !isIdentStart(l.peekByte()) {
		l.report(start, l.pos, diag.E0013InvalidAnchorTarget, "'"+string(sigil)+"' must be immediately followed by an identifier")
		return Token{Kind: Err, Text: "invalid anchor target", Span: l.span(start, l.pos)}
	}
	nameStart := l.pos
	for isIdentCont(l.peekByte()) {
		l.pos++
	}
	name := l.src[nameStart:l.pos]
	return Token{Kind: kind, Text: name, Span: l.span(start, l.pos)}
}

func (l *Lexer) lexIdent(start int) Token {
	for isIdentCont(l.peekByte()) {
		l.pos++
	}
	text := l.src[start:l.pos]
	sp := l.span(start, l.pos)

	if kind, ok := keywords[text]; ok {
		switch kind {
		case Bool:
			return Token{Kind: Bool, Text: text, BoolVal: text == "true" || text == "on", Span: sp}
		case Null:
			return Token{Kind: Null, Text: text, Span: sp}
		default:
			return Token{Kind: kind, Text: text, Span: sp}
		}
	}
	return Token{Kind: Ident, Text: text, Span: sp}
}

// lexNumber accepts an optional leading '-', an integer part, and an
// optional fractional part. No exponent form is recognized. Malformed
// numbers ("-", "1.", ".5") are reported as InvalidNumber; the lexer still
// consumes what looks numeric so the caller advances past the bad literal.
func (l *Lexer) lexNumber(start int) Token {
	if l.peekByte() == '-' {
		l.pos++
	}

	intStart := l.pos
	for isDigit(l.peekByte()) {
		l.pos++
	}
	hasInt := l.pos > intStart

	isInt := true
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isInt = false
		l.pos++ // consume '.'
		for isDigit(l.peekByte()) {
			l.pos++
		}
	} else if l.peekByte() == '.' {
		// Trailing dot with no fractional digits: consume it as part of the
		// malformed literal so the lexer doesn't re-enter lexDots on it.
		isInt = false
		l.pos++
	}

	raw := l.src[start:l.pos]
	sp := l.span(start, l.pos)

	if !hasInt || strings.HasSuffix(raw, ".") {
		l.report(start, l.pos, diag.E0002InvalidNumber, "invalid number literal "+strconv.Quote(raw))
		return Token{Kind: Err, Text: "invalid number", Span: sp}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.report(start, l.pos, diag.E0002InvalidNumber, "invalid number literal "+strconv.Quote(raw))
		return Token{Kind: Err, Text: "invalid number", Span: sp}
	}

	return Token{Kind: Number, Text: raw, Num: Number{Raw: raw, Value: value, IsInt: isInt}, Span: sp}
}

// lexString scans a double-quoted literal, decoding its escapes via
// textlit.DecodeString. An unterminated string (no closing quote before EOF)
// spans to end-of-file per the grammar.
func (l *Lexer) lexString(start int) Token {
	l.pos++ // consume opening quote
	contentStart := l.pos

	for {
		if l.atEnd() {
			l.report(start, l.pos, diag.E0001UnterminatedString, "unterminated string literal")
			raw := l.src[contentStart:l.pos]
			decoded, _, _ := textlit.DecodeString(raw)
			return Token{Kind: Err, Text: decoded, Span: l.span(start, l.pos)}
		}
		b := l.peekByte()
		if b == '"' {
			break
		}
		if b == '\\' {
			l.pos += 2
			if l.pos > len(l.src) {
				l.pos = len(l.src)
			}
			continue
		}
		l.pos++
	}

	raw := l.src[contentStart:l.pos]
	l.pos++ // consume closing quote
	sp := l.span(start, l.pos)

	decoded, errOffset, err := textlit.DecodeString(raw)
	if err != nil {
		l.report(contentStart+errOffset, l.pos, diag.E0003InvalidEscape, err.Error())
		return Token{Kind: Err, Text: decoded, Span: sp}
	}
	return Token{Kind: String, Text: decoded, Span: sp}
}
