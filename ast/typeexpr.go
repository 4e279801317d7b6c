package ast

import "github.com/mycel-lang/mon/location"

// PrimitiveKind enumerates the built-in TypeExpr primitives.
type PrimitiveKind uint8

const (
	PrimString PrimitiveKind = iota
	PrimNumber
	PrimBoolean
	PrimNull
	PrimObject
	PrimArray
	PrimAny
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimString:
		return "String"
	case PrimNumber:
		return "Number"
	case PrimBoolean:
		return "Boolean"
	case PrimNull:
		return "Null"
	case PrimObject:
		return "Object"
	case PrimArray:
		return "Array"
	case PrimAny:
		return "Any"
	default:
		return "?"
	}
}

// primitiveNames maps the spelling used in source to its PrimitiveKind.
var primitiveNames = map[string]PrimitiveKind{
	"String":  PrimString,
	"Number":  PrimNumber,
	"Boolean": PrimBoolean,
	"Null":    PrimNull,
	"Object":  PrimObject,
	"Array":   PrimArray,
	"Any":     PrimAny,
}

// LookupPrimitive resolves a bare identifier to a PrimitiveKind, reporting
// ok=false for any name that is not one of the seven built-ins (those are
// Named type references instead).
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	p, ok := primitiveNames[name]
	return p, ok
}

// TypeExprKind identifies which variant of TypeExpr is populated.
type TypeExprKind uint8

const (
	PrimitiveType TypeExprKind = iota
	NamedType
	NamespacedType
	CollectionType
)

// CollectionElem is one element of a collection pattern: a type, optionally
// marked variadic with a trailing "...". At most one element in a pattern
// may be variadic.
type CollectionElem struct {
	Type     TypeExpr
	Variadic bool
}

// TypeExpr is a type annotation appearing after "::" or inside a struct
// field's parentheses.
type TypeExpr struct {
	Kind TypeExprKind

	Primitive PrimitiveKind // Kind == PrimitiveType
	Namespace string        // Kind == NamespacedType
	Name      string        // Kind == NamedType | NamespacedType
	Elements  []CollectionElem // Kind == CollectionType

	Span location.Span
}

// IsQualified reports whether a NamedType/NamespacedType carries an import
// namespace qualifier.
func (t TypeExpr) IsQualified() bool {
	return t.Kind == NamespacedType
}
