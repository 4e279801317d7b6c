package ast

import (
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/token"
)

// ValueKind identifies which variant of Value is populated.
type ValueKind uint8

const (
	// Invalid is the zero value; it never appears in a successfully parsed
	// Document, only in synthesized placeholder nodes during recovery.
	Invalid ValueKind = iota
	Object
	Array
	StringVal
	NumberVal
	BoolVal
	NullVal
	AliasRef
	EnumRefVal
	TypeDefVal
)

func (k ValueKind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case StringVal:
		return "string"
	case NumberVal:
		return "number"
	case BoolVal:
		return "boolean"
	case NullVal:
		return "null"
	case AliasRef:
		return "alias"
	case EnumRefVal:
		return "enum reference"
	case TypeDefVal:
		return "type definition"
	default:
		return "invalid"
	}
}

// Value is a single node in the parsed value tree.
//
// Anchor holds the name bound by a preceding "&name" prefix on this value's
// enclosing Pair; it is empty when the value is unanchored. Only one field
// group below is meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Anchor string
	Span   location.Span

	Members  []Member     // Kind == Object
	Elements []ArrayElem  // Kind == Array
	Str      string       // Kind == StringVal
	Num      token.Number // Kind == NumberVal
	Bool     bool        // Kind == BoolVal
	Alias    string      // Kind == AliasRef
	EnumRef  EnumRef     // Kind == EnumRefVal
	TypeDef  *TypeDecl   // Kind == TypeDefVal
}

// IsAnchored reports whether this value was declared with a "&name" prefix.
func (v Value) IsAnchored() bool {
	return v.Anchor != ""
}

// Placeholder builds a synthesized Value used by the parser's error
// recovery when a value was expected but could not be parsed. It carries
// the span where the value should have appeared, so diagnostics can still
// point somewhere useful.
func Placeholder(span location.Span) Value {
	return Value{Kind: Invalid, Span: span}
}
