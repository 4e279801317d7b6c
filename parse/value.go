package parse

import (
	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/token"
)

// parseValue implements the Value production: Object | Array | Alias |
// EnumRef | String | Number | Bool | "null". It never consumes a token it
// cannot interpret; on failure it reports UnexpectedToken and returns a
// placeholder at the current position, leaving recovery to the caller.
func (p *Parser) parseValue() ast.Value {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseObject()
	case token.LBracket:
		return p.parseArray()
	case token.Alias:
		p.advance()
		return ast.Value{Kind: ast.AliasRef, Alias: tok.Text, Span: tok.Span}
	case token.Dollar:
		return p.parseEnumRef()
	case token.String:
		p.advance()
		return ast.Value{Kind: ast.StringVal, Str: tok.Text, Span: tok.Span}
	case token.Number:
		p.advance()
		return ast.Value{Kind: ast.NumberVal, Num: tok.Num, Span: tok.Span}
	case token.Bool:
		p.advance()
		return ast.Value{Kind: ast.BoolVal, Bool: tok.BoolVal, Span: tok.Span}
	case token.Null:
		p.advance()
		return ast.Value{Kind: ast.NullVal, Span: tok.Span}
	default:
		p.errorf(diag.E0010UnexpectedToken, "expected a value, found %s", tok.Kind)
		return ast.Placeholder(tok.Span)
	}
}

// parseObject implements Object ::= "{" [ Member {"," Member} [","] ] "}".
func (p *Parser) parseObject() ast.Value {
	open, _ := p.expect(token.LBrace)
	var members []ast.Member

	for !p.at(token.RBrace) && !p.atEnd() {
		members = append(members, p.parseMember())

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.at(token.RBrace) {
			break
		}
		if p.at(token.Ident) || p.at(token.String) || p.at(token.Anchor) || p.at(token.Spread) {
			// A missing comma between two members: report it and parse the
			// next member in place rather than skipping it.
			p.errorf(diag.E0010UnexpectedToken, "expected ',' or '}', found %s", p.peek().Kind)
			continue
		}
		p.errorf(diag.E0010UnexpectedToken, "expected ',' or '}', found %s", p.peek().Kind)
		p.syncTo(token.Comma, token.RBrace)
		if p.at(token.Comma) {
			p.advance()
		}
	}

	close, _ := p.expect(token.RBrace)
	return ast.Value{Kind: ast.Object, Members: members, Span: mergeSpan(open.Span, close.Span)}
}

// parseArray implements Array ::= "[" [ AElt {"," AElt} [","] ] "]".
func (p *Parser) parseArray() ast.Value {
	open, _ := p.expect(token.LBracket)
	var elems []ast.ArrayElem

	for !p.at(token.RBracket) && !p.atEnd() {
		elems = append(elems, p.parseArrayElem())

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.at(token.RBracket) {
			break
		}
		p.errorf(diag.E0010UnexpectedToken, "expected ',' or ']', found %s", p.peek().Kind)
		p.syncTo(token.Comma, token.RBracket)
		if p.at(token.Comma) {
			p.advance()
		}
	}

	close, _ := p.expect(token.RBracket)
	return ast.Value{Kind: ast.Array, Elements: elems, Span: mergeSpan(open.Span, close.Span)}
}

// parseArrayElem implements AElt ::= Value | Spread.
func (p *Parser) parseArrayElem() ast.ArrayElem {
	if p.at(token.Spread) {
		spreadTok := p.advance()
		aliasTok, ok := p.expect(token.Alias)
		sp := spreadTok.Span
		name := ""
		if ok {
			name = aliasTok.Text
			sp = mergeSpan(spreadTok.Span, aliasTok.Span)
		} else {
			p.errorf(diag.E0012InvalidSpreadContext, "'...' must be followed by an alias")
		}
		return ast.ArrayElem{Kind: ast.SpreadElem, Spread: &ast.Spread{AliasName: name, Span: sp}}
	}
	return ast.ArrayElem{Kind: ast.ValueElem, Value: p.parseValue()}
}

// parseEnumRef implements EnumRef ::= "$" Ident "." Ident | "$" Ident "." Ident "." Ident.
func (p *Parser) parseEnumRef() ast.Value {
	dollar, _ := p.expect(token.Dollar)
	first, _ := p.expect(token.Ident)
	p.expect(token.Dot)
	second, _ := p.expect(token.Ident)

	ref := ast.EnumRef{EnumName: first.Text, Variant: second.Text}
	end := second.Span

	if p.at(token.Dot) {
		p.advance()
		third, ok := p.expect(token.Ident)
		if ok {
			ref.Namespace = first.Text
			ref.EnumName = second.Text
			ref.Variant = third.Text
			end = third.Span
		}
	}

	ref.Span = mergeSpan(dollar.Span, end)
	return ast.Value{Kind: ast.EnumRefVal, EnumRef: ref, Span: ref.Span}
}
