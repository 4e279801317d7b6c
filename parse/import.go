package parse

import (
	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/token"
)

// parseImportStmt implements:
//
//	ImportStmt ::= "import" ( "*" "as" Ident | "{" ImpSpec {"," ImpSpec} [","] "}" ) "from" String
//	ImpSpec    ::= ["&"] Ident
func (p *Parser) parseImportStmt() ast.ImportStmt {
	kw := p.advance() // 'import'

	switch {
	case p.at(token.Star):
		return p.parseNamespaceImport(kw)
	case p.at(token.LBrace):
		return p.parseNamedImport(kw)
	default:
		p.errorf(diag.E0010UnexpectedToken, "expected '*' or '{' after 'import', found %s", p.peek().Kind)
		p.syncTo(token.KwFrom, token.KwImport, token.LBrace)
		return ast.ImportStmt{Span: kw.Span}
	}
}

func (p *Parser) parseNamespaceImport(kw token.Token) ast.ImportStmt {
	p.advance() // '*'
	p.expect(token.KwAs)
	nameTok, _ := p.expect(token.Ident)

	path, pathSpan := p.parseImportTail()

	end := pathSpan
	if end.IsZero() {
		end = nameTok.Span
	}
	return ast.ImportStmt{
		Kind:   ast.NamespaceImport,
		AsName: nameTok.Text,
		Path:   path,
		Span:   mergeSpan(kw.Span, end),
	}
}

func (p *Parser) parseNamedImport(kw token.Token) ast.ImportStmt {
	p.advance() // '{'

	var specs []ast.ImportSpec
	for !p.at(token.RBrace) && !p.atEnd() {
		if p.at(token.Anchor) {
			tok := p.advance()
			specs = append(specs, ast.ImportSpec{Name: tok.Text, IsAnchor: true, Span: tok.Span})
		} else if tok, ok := p.expect(token.Ident); ok {
			specs = append(specs, ast.ImportSpec{Name: tok.Text, Span: tok.Span})
		} else {
			p.syncTo(token.Comma, token.RBrace)
		}

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace)

	path, pathSpan := p.parseImportTail()

	end := pathSpan
	if end.IsZero() {
		end = kw.Span
	}
	return ast.ImportStmt{Kind: ast.NamedImport, Specs: specs, Path: path, Span: mergeSpan(kw.Span, end)}
}

// parseImportTail implements the common "from" String suffix shared by both
// import forms.
func (p *Parser) parseImportTail() (string, location.Span) {
	if !p.at(token.KwFrom) {
		p.errorf(diag.E0011MissingImportPath, "expected 'from' followed by a path string")
		return "", location.Span{}
	}
	p.advance()

	pathTok, ok := p.expect(token.String)
	if !ok {
		p.errorf(diag.E0011MissingImportPath, "expected a string literal for the import path")
		return "", location.Span{}
	}
	return pathTok.Text, pathTok.Span
}
