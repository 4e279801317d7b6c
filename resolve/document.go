package resolve

import (
	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/immutable"
	"github.com/mycel-lang/mon/location"
)

// EnumValue is a resolved `$Name.Variant` reference. It survives
// materialization as opaque data: the resolver has no opinion on whether
// the variant is valid, only the type validator (consulting [Document.TypeDecls])
// can check that, so the value is carried through rather than interpreted
// here.
type EnumValue struct {
	Namespace string // empty unless written as $ns.Name.Variant
	EnumName  string
	Variant   string
	Span      location.Span
}

// TypeDeclEntry is one type declaration local to a document, in source
// order. A namespace import does not copy the target's declarations in —
// "ns.T" is resolved by walking into [Document.Namespaces] instead, so
// every entry here was declared in this document.
type TypeDeclEntry struct {
	Name string
	Decl ast.TypeDecl
	Span location.Span

	// Defaults holds the materialized value of every struct field default
	// in Decl, keyed by field name. A default's raw AST may itself contain
	// anchor aliases (hoisting recurses into field defaults, see
	// walkDeclarations), so it must be materialized here against this
	// document's anchor table rather than left for the type validator to
	// interpret — the validator has no access to resolver-internal state.
	Defaults map[string]immutable.Value
}

// ValidationSite records one `k :: T = v` annotation encountered during
// materialization, keyed by the JSONPath-like location of v in the
// resolved tree. Every copy produced by alias or spread expansion gets its
// own site, since each copy is independently subject to validation and
// default injection.
type ValidationSite struct {
	Path string
	Type ast.TypeExpr
	Span location.Span

	// Poisoned is true if materializing the value at Path collected a
	// resolution error somewhere in its subtree (an unknown alias, a bad
	// spread, a cyclic reference). The type validator skips a poisoned
	// site rather than validate an already-broken value and pile on
	// cascaded, misleading type errors.
	Poisoned bool
}

// Document is the output of resolving one source document and all of its
// transitive imports: a plain value tree plus the side tables later stages
// need (type declarations, validation sites, and namespace bindings for
// resolving `ns.T` type references and `$ns.Enum.Variant` enum references).
type Document struct {
	SourceID location.SourceID

	// Root is the fully materialized root object: aliases and spreads
	// expanded, imports/type-decls/anchor-prefixed pairs stripped.
	Root immutable.Value

	// TypeDecls holds every type declaration local to this document, in
	// source order.
	TypeDecls []TypeDeclEntry

	// Namespaces maps an "import * as ns" alias to the fully resolved
	// target document, so "ns.T" type lookups and "$ns.Enum.Variant"
	// references can walk into it.
	Namespaces map[string]*Document

	// Validations holds every "::" annotation site found while
	// materializing Root.
	Validations []ValidationSite

	// Anchors holds the materialized value of every anchor declared or
	// imported in this document, keyed by name. Anchors never appear in
	// Root itself, but a document that imports this one via
	// "import { &A }" needs somewhere to pull A's value from.
	Anchors map[string]immutable.Value
}

// TypeDecl looks up a locally-visible (non-namespaced) type declaration by
// name.
func (d *Document) TypeDecl(name string) (TypeDeclEntry, bool) {
	for _, e := range d.TypeDecls {
		if e.Name == name {
			return e, true
		}
	}
	return TypeDeclEntry{}, false
}
