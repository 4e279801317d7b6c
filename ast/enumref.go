package ast

import "github.com/mycel-lang/mon/location"

// EnumRef is "$Name.Variant" or the namespaced "$ns.Name.Variant".
type EnumRef struct {
	Namespace string // empty unless namespaced
	EnumName  string
	Variant   string
	Span      location.Span
}

// IsQualified reports whether this reference carries an import namespace.
func (r EnumRef) IsQualified() bool {
	return r.Namespace != ""
}
