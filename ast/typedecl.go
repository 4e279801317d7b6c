package ast

import "github.com/mycel-lang/mon/location"

// TypeDeclKind identifies which variant of TypeDecl is populated.
type TypeDeclKind uint8

const (
	StructDecl TypeDeclKind = iota
	EnumDecl
)

// StructField is one "name(Type) [= default]" entry in a #struct body.
type StructField struct {
	Name    string
	Type    TypeExpr
	Default *Value // nil if the field has no default
	Span    location.Span
}

// TypeDecl is a "#struct { ... }" or "#enum { ... }" declaration, bound to
// a name via the enclosing TypeDefPair's identifier.
type TypeDecl struct {
	Kind     TypeDeclKind
	Name     string
	Fields   []StructField // Kind == StructDecl
	Variants []string      // Kind == EnumDecl
	Span     location.Span
}
