package parse

import (
	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/token"
)

// parseTypeExpr implements:
//
//	TypeExpr ::= Primitive | Ident ["." Ident] | "[" TElt {"," TElt} "]"
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch {
	case p.at(token.LBracket):
		return p.parseCollectionType()
	case p.at(token.Ident):
		return p.parseNamedOrPrimitiveType()
	default:
		p.errorf(diag.E0010UnexpectedToken, "expected a type, found %s", p.peek().Kind)
		sp := p.peek().Span
		return ast.TypeExpr{Kind: ast.PrimitiveType, Primitive: ast.PrimAny, Span: sp}
	}
}

func (p *Parser) parseNamedOrPrimitiveType() ast.TypeExpr {
	first := p.advance()

	if p.at(token.Dot) {
		p.advance()
		second, ok := p.expect(token.Ident)
		if ok {
			return ast.TypeExpr{
				Kind:      ast.NamespacedType,
				Namespace: first.Text,
				Name:      second.Text,
				Span:      mergeSpan(first.Span, second.Span),
			}
		}
		return ast.TypeExpr{Kind: ast.NamedType, Name: first.Text, Span: first.Span}
	}

	if prim, ok := ast.LookupPrimitive(first.Text); ok {
		return ast.TypeExpr{Kind: ast.PrimitiveType, Primitive: prim, Span: first.Span}
	}
	return ast.TypeExpr{Kind: ast.NamedType, Name: first.Text, Span: first.Span}
}

// parseCollectionType implements "[" TElt {"," TElt} "]" where
// TElt ::= TypeExpr [ "..." ].
func (p *Parser) parseCollectionType() ast.TypeExpr {
	open, _ := p.expect(token.LBracket)

	var elems []ast.CollectionElem
	variadicCount := 0

	for !p.at(token.RBracket) && !p.atEnd() {
		ty := p.parseTypeExpr()
		variadic := false
		if p.at(token.Spread) {
			p.advance()
			variadic = true
			variadicCount++
		}
		elems = append(elems, ast.CollectionElem{Type: ty, Variadic: variadic})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	close, _ := p.expect(token.RBracket)

	if variadicCount > 1 {
		p.coll.Collect(diag.NewIssue(diag.Error, diag.E0035InvalidCollectionPattern,
			"a collection pattern may contain at most one variadic element").
			WithSpan(mergeSpan(open.Span, close.Span)).
			Build())
	}

	return ast.TypeExpr{Kind: ast.CollectionType, Elements: elems, Span: mergeSpan(open.Span, close.Span)}
}
