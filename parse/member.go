package parse

import (
	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/token"
)

// parseMember implements Member ::= Spread | Pair | TypeDefPair, peeking
// enough tokens to tell the three apart before committing to one.
func (p *Parser) parseMember() ast.Member {
	if p.at(token.Spread) {
		return p.parseSpreadMember()
	}

	var anchorName string
	var anchorSpan location.Span
	hasAnchor := false
	if p.at(token.Anchor) {
		tok := p.advance()
		anchorName, anchorSpan, hasAnchor = tok.Text, tok.Span, true
	}

	key, ok := p.parseKey()
	if !ok {
		p.syncTo(token.Comma, token.RBrace)
		return ast.Member{Kind: ast.PairMember, Pair: &ast.Pair{Key: key, Span: key.Span}}
	}

	// TypeDefPair ::= Ident ":" ("#struct" StructBody | "#enum" EnumBody).
	// Only a plain (non-anchored, non-string) key introduces a type
	// declaration.
	if !hasAnchor && !key.IsString &&
		p.at(token.Colon) && p.peekAt(1).Kind == token.Hash &&
		(p.peekAt(2).Kind == token.KwStruct || p.peekAt(2).Kind == token.KwEnum) {
		return p.parseTypeDefPair(key)
	}

	return p.parsePairRest(hasAnchor, anchorName, anchorSpan, key)
}

func (p *Parser) parseSpreadMember() ast.Member {
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
	return ast.Member{Kind: ast.SpreadMember, Spread: &ast.Spread{AliasName: name, Span: sp}}
}

// parseKey implements Key ::= Ident | String.
func (p *Parser) parseKey() (ast.Key, bool) {
	switch {
	case p.at(token.Ident):
		tok := p.advance()
		return ast.Key{Name: tok.Text, Span: tok.Span}, true
	case p.at(token.String):
		tok := p.advance()
		return ast.Key{Name: tok.Text, IsString: true, Span: tok.Span}, true
	default:
		p.errorf(diag.E0010UnexpectedToken, "expected a key, found %s", p.peek().Kind)
		return ast.Key{Span: p.peek().Span}, false
	}
}

// parsePairRest implements the tail of Pair ::= [ "&" Ident ] Key [ "::"
// TypeExpr ] (":" | "=") Value, given that the optional anchor and the key
// have already been consumed.
func (p *Parser) parsePairRest(hasAnchor bool, anchorName string, anchorSpan location.Span, key ast.Key) ast.Member {
	var validation *ast.TypeExpr
	if p.at(token.DoubleColon) {
		p.advance()
		te := p.parseTypeExpr()
		validation = &te
	}

	var sep ast.PairSep
	switch {
	case p.at(token.Colon):
		p.advance()
		if validation != nil {
			p.errorf(diag.E0010UnexpectedToken, "a validated pair ('k :: T = v') must use '=', not ':'")
		}
		sep = ast.Unvalidated
	case p.at(token.Equals):
		p.advance()
		if validation == nil {
			p.errorf(diag.E0010UnexpectedToken, "an unvalidated pair ('k: v') must use ':', not '='")
		}
		sep = ast.Validated
	default:
		p.errorf(diag.E0010UnexpectedToken, "expected ':' or '=', found %s", p.peek().Kind)
	}

	val := p.parseValue()
	if hasAnchor {
		val.Anchor = anchorName
	}

	start := key.Span
	if hasAnchor {
		start = anchorSpan
	}

	return ast.Member{
		Kind: ast.PairMember,
		Pair: &ast.Pair{
			Key:        key,
			Validation: validation,
			Sep:        sep,
			Value:      val,
			Span:       mergeSpan(start, val.Span),
		},
	}
}

// parseTypeDefPair implements TypeDefPair ::= Ident ":" ("#struct"
// StructBody | "#enum" EnumBody), given that key has already been consumed.
func (p *Parser) parseTypeDefPair(key ast.Key) ast.Member {
	p.advance() // ':'
	p.advance() // '#'
	kwTok := p.advance()

	var decl ast.TypeDecl
	if kwTok.Kind == token.KwStruct {
		decl = p.parseStructBody(key.Name, key.Span)
	} else {
		decl = p.parseEnumBody(key.Name, key.Span)
	}

	val := ast.Value{Kind: ast.TypeDefVal, TypeDef: &decl, Span: decl.Span}
	return ast.Member{
		Kind: ast.PairMember,
		Pair: &ast.Pair{Key: key, Sep: ast.Unvalidated, Value: val, Span: mergeSpan(key.Span, decl.Span)},
	}
}

// parseStructBody implements StructBody ::= "{" [ Field {"," Field} [","] ] "}".
func (p *Parser) parseStructBody(name string, start location.Span) ast.TypeDecl {
	p.expect(token.LBrace)

	var fields []ast.StructField
	for !p.at(token.RBrace) && !p.atEnd() {
		fields = append(fields, p.parseStructField())

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.at(token.RBrace) {
			break
		}
		p.errorf(diag.E0010UnexpectedToken, "expected ',' or '}', found %s", p.peek().Kind)
		p.syncTo(token.Comma, token.RBrace)
		if p.at(token.Comma) {
			p.advance()
		}
	}

	close, _ := p.expect(token.RBrace)
	return ast.TypeDecl{Kind: ast.StructDecl, Name: name, Fields: fields, Span: mergeSpan(start, close.Span)}
}

// parseStructField implements Field ::= Ident "(" TypeExpr ")" [ "=" Value ].
func (p *Parser) parseStructField() ast.StructField {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		p.syncTo(token.Comma, token.RBrace)
		return ast.StructField{Span: nameTok.Span}
	}

	p.expect(token.LParen)
	ty := p.parseTypeExpr()
	closeParen, _ := p.expect(token.RParen)

	field := ast.StructField{Name: nameTok.Text, Type: ty, Span: mergeSpan(nameTok.Span, closeParen.Span)}

	if p.at(token.Equals) {
		p.advance()
		def := p.parseValue()
		field.Default = &def
		field.Span = mergeSpan(nameTok.Span, def.Span)
	}

	return field
}

// parseEnumBody implements EnumBody ::= "{" [ Ident {"," Ident} [","] ] "}".
func (p *Parser) parseEnumBody(name string, start location.Span) ast.TypeDecl {
	p.expect(token.LBrace)

	var variants []string
	seen := make(map[string]bool)
	for !p.at(token.RBrace) && !p.atEnd() {
		tok, ok := p.expect(token.Ident)
		if ok {
			if seen[tok.Text] {
				p.coll.Collect(diag.NewIssue(diag.Error, diag.E0010UnexpectedToken, "duplicate enum variant \""+tok.Text+"\"").
					WithSpan(tok.Span).
					Build())
			}
			seen[tok.Text] = true
			variants = append(variants, tok.Text)
		} else {
			p.syncTo(token.Comma, token.RBrace)
		}

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	close, _ := p.expect(token.RBrace)
	return ast.TypeDecl{Kind: ast.EnumDecl, Name: name, Variants: variants, Span: mergeSpan(start, close.Span)}
}
