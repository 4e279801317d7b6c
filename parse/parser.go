package parse

import (
	"fmt"
	"slices"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/token"
)

// Parser is a recursive-descent parser over a pre-lexed token stream. It is
// not reentrant; create one Parser per document.
type Parser struct {
	toks []token.Token
	pos  int
	coll *diag.Collector
}

// NewParser lexes src in full and prepares a Parser over the resulting
// token stream. registry must already have src's content registered under
// sourceID. Lexical diagnostics are reported to coll during construction;
// syntactic diagnostics are reported to the same collector during Parse.
func NewParser(sourceID location.SourceID, src string, registry location.PositionRegistry, coll *diag.Collector) *Parser {
	lx := token.NewLexer(sourceID, src, registry, coll)
	toks := make([]token.Token, 0, len(src)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			break
		}
	}
	return &Parser{toks: toks, coll: coll}
}

// Parse consumes the entire token stream and returns a Document. It always
// succeeds in the sense of returning a value; the presence of diagnostics
// in the collector passed to NewParser signals failure, not the return
// value's shape.
func (p *Parser) Parse() ast.Document {
	start := p.peek().Span

	var imports []ast.ImportStmt
	for p.at(token.KwImport) {
		imports = append(imports, p.parseImportStmt())
	}

	root := p.parseObject()
	if !p.atEnd() {
		p.errorf(diag.E0010UnexpectedToken, "unexpected trailing input after root object, found %s", p.peek().Kind)
	}

	return ast.Document{
		Imports: imports,
		Root:    root,
		Span:    mergeSpan(start, p.prevSpan()),
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

// prevSpan returns the span of the most recently consumed token, or the
// current token's span if nothing has been consumed yet.
func (p *Parser) prevSpan() location.Span {
	if p.pos == 0 {
		return p.peek().Span
	}
	return p.toks[p.pos-1].Span
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.Eof
}

// advance returns the current token and moves past it, except at Eof which
// is sticky so callers never read out of bounds.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.Eof {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it has kind k, reporting
// UnexpectedToken and leaving the cursor in place otherwise.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(diag.E0010UnexpectedToken, "expected %s, found %s", k, p.peek().Kind)
	return token.Token{}, false
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	p.coll.Collect(diag.NewIssue(diag.Error, code, fmt.Sprintf(format, args...)).
		WithSpan(p.peek().Span).
		Build())
}

// syncTo advances until the current token is one of kinds, or Eof. It is
// the parser's sole recovery mechanism: after a production fails partway
// through, the caller calls syncTo with the set of tokens that safely
// resume the enclosing context (typically ',' and the closer).
func (p *Parser) syncTo(kinds ...token.Kind) {
	for !p.atEnd() {
		if slices.Contains(kinds, p.peek().Kind) {
			return
		}
		p.advance()
	}
}

// mergeSpan builds a span covering [a.Start, b.End). Both spans must share
// the same source; this always holds for spans drawn from one document's
// token stream.
func mergeSpan(a, b location.Span) location.Span {
	return location.Span{Source: a.Source, Start: a.Start, End: b.End}
}
