package ast

import "github.com/mycel-lang/mon/location"

// ImportKind identifies which variant of ImportStmt is populated.
type ImportKind uint8

const (
	// NamespaceImport is "import * as ns from \"path\"": the target
	// document's resolved root becomes addressable as ns.X.
	NamespaceImport ImportKind = iota
	// NamedImport is "import { X, &Y } from \"path\"": individual root
	// keys (and, with an anchor prefix, anchors) are lifted into the
	// importing document's own scope.
	NamedImport
)

// ImportSpec is one member of a Named import list: a bare identifier
// lifting a root key, or an anchor-prefixed identifier lifting an anchor.
type ImportSpec struct {
	Name     string
	IsAnchor bool
	Span     location.Span
}

// ImportStmt is a single "import ... from \"path\"" statement. Imports may
// only appear before the document's root object.
type ImportStmt struct {
	Kind   ImportKind
	AsName string       // Kind == NamespaceImport
	Specs  []ImportSpec // Kind == NamedImport
	Path   string
	Span   location.Span
}
