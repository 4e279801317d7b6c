// Package types implements MON's structural type validator: a per-document
// registry of struct/enum declarations, a value-against-TypeExpr matcher,
// and default-field injection.
package types

import (
	"fmt"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/resolve"
)

// Registry resolves a TypeExpr's Named/NamespacedType reference to the
// declaration it names, within the scope of one resolved document.
//
// A bare name is looked up first among the document's own declarations,
// then — as a convenience mirroring how the teacher's cross-schema lookup
// treats an unqualified name reachable through a single wildcard import —
// among the names exported by each "import * as ns" namespace. A local
// declaration of the same name always wins and reports E0036ShadowedImport
// rather than silently picking one; an unqualified name that only a
// namespace exports carries no such warning, since nothing local is being
// shadowed.
type Registry struct {
	doc        *resolve.Document
	local      map[string]resolve.TypeDeclEntry
	fromImport map[string]importedType
}

type importedType struct {
	namespace string
	doc       *resolve.Document
	entry     resolve.TypeDeclEntry
}

// NewRegistry builds a Registry for doc, reporting E0036ShadowedImport for
// every local declaration whose name also appears, unqualified, through one
// of doc's namespace imports.
func NewRegistry(doc *resolve.Document, coll *diag.Collector) *Registry {
	r := &Registry{
		doc:        doc,
		local:      make(map[string]resolve.TypeDeclEntry, len(doc.TypeDecls)),
		fromImport: make(map[string]importedType),
	}
	for _, e := range doc.TypeDecls {
		r.local[e.Name] = e
	}
	for ns, target := range doc.Namespaces {
		for _, e := range target.TypeDecls {
			r.fromImport[e.Name] = importedType{namespace: ns, doc: target, entry: e}
		}
	}
	for name, e := range r.local {
		if imp, shadowed := r.fromImport[name]; shadowed {
			coll.Collect(diag.NewIssue(diag.Warning, diag.E0036ShadowedImport,
				fmt.Sprintf("local type %q shadows the same name imported from %q", name, imp.namespace)).
				WithSpan(e.Span).
				Build())
		}
	}
	return r
}

// Lookup resolves a Named or Namespaced TypeExpr to its declaration and the
// document whose Namespaces/TypeDecls it belongs to (needed so a struct
// field's own nested Named references resolve in the right scope).
func (r *Registry) Lookup(ref ast.TypeExpr) (resolve.TypeDeclEntry, *resolve.Document, bool) {
	switch ref.Kind {
	case ast.NamespacedType:
		target, ok := r.doc.Namespaces[ref.Namespace]
		if !ok {
			return resolve.TypeDeclEntry{}, nil, false
		}
		entry, ok := target.TypeDecl(ref.Name)
		return entry, target, ok
	case ast.NamedType:
		if e, ok := r.local[ref.Name]; ok {
			return e, r.doc, true
		}
		if imp, ok := r.fromImport[ref.Name]; ok {
			return imp.entry, imp.doc, true
		}
		return resolve.TypeDeclEntry{}, nil, false
	default:
		return resolve.TypeDeclEntry{}, nil, false
	}
}
