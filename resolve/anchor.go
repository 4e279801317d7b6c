package resolve

import (
	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/immutable"
)

// anchorSlot is one entry in an anchorTable. A local anchor holds its raw
// AST node and is re-walked by [materializeAliasByName] on every
// dereference rather than memoized — this is what lets an alias reference
// an anchor declared later in the same document (hoisting) and gives each
// use its own independently-attributed copy. An imported anchor (`import {
// &A }`) starts out already resolved, since its origin document was fully
// materialized before the import was processed; it is cloned on every use
// instead of re-walked.
type anchorSlot struct {
	raw       ast.Value
	resolved  bool
	value     immutable.Value
	resolving bool // cycle guard: true while this slot's own materialization is in flight
}

// anchorTable is a document's local view of its anchors: its own
// hoisted `&name` declarations plus any anchors lifted in via
// `import { &A }`.
type anchorTable struct {
	slots map[string]*anchorSlot
}

func newAnchorTable() *anchorTable {
	return &anchorTable{slots: make(map[string]*anchorSlot)}
}

// declareLocal registers a locally-hoisted anchor, reporting
// E0021DuplicateAnchor if the name collides with an anchor already in the
// table (whether local or imported).
func (t *anchorTable) declareLocal(name string, value ast.Value, coll *diag.Collector) {
	if _, exists := t.slots[name]; exists {
		coll.Collect(diag.NewIssue(diag.Error, diag.E0021DuplicateAnchor,
			`anchor "`+name+`" already defined`).
			WithSpan(value.Span).
			Build())
		return
	}
	t.slots[name] = &anchorSlot{raw: value}
}

// declareImported registers an anchor lifted in from another document via
// a named import. It is already fully resolved.
func (t *anchorTable) declareImported(name string, value immutable.Value) {
	if _, exists := t.slots[name]; exists {
		return
	}
	t.slots[name] = &anchorSlot{resolved: true, value: value}
}

func (t *anchorTable) get(name string) (*anchorSlot, bool) {
	s, ok := t.slots[name]
	return s, ok
}

// hoistAnchors walks root (an Object value) recursively, collecting every
// anchor-prefixed value into table and every local type declaration into
// types. Anchors and type declarations are document-global regardless of
// nesting depth — a `&name` or a struct type declared three objects deep
// is still visible document-wide.
func hoistAnchors(root ast.Value, table *anchorTable, types *[]TypeDeclEntry, coll *diag.Collector) {
	seen := make(map[string]bool)
	walkDeclarations(root, table, types, seen, coll)
}

func walkDeclarations(v ast.Value, table *anchorTable, types *[]TypeDeclEntry, seen map[string]bool, coll *diag.Collector) {
	if v.IsAnchored() {
		table.declareLocal(v.Anchor, v, coll)
	}
	switch v.Kind {
	case ast.Object:
		for _, m := range v.Members {
			if m.Kind != ast.PairMember || m.Pair == nil {
				continue
			}
			pair := m.Pair
			if pair.Value.Kind == ast.TypeDefVal {
				name := pair.Key.Name
				if seen[name] {
					coll.Collect(diag.NewIssue(diag.Error, diag.E0037DuplicateTypeDecl,
						`type "`+name+`" already declared in this document`).
						WithSpan(pair.Span).
						Build())
				} else {
					seen[name] = true
					*types = append(*types, TypeDeclEntry{
						Name: name,
						Decl: *pair.Value.TypeDef,
						Span: pair.Span,
					})
				}
				for _, f := range pair.Value.TypeDef.Fields {
					if f.Default != nil {
						walkDeclarations(*f.Default, table, types, seen, coll)
					}
				}
				continue
			}
			walkDeclarations(pair.Value, table, types, seen, coll)
		}
	case ast.Array:
		for _, e := range v.Elements {
			if e.Kind == ast.ValueElem {
				walkDeclarations(e.Value, table, types, seen, coll)
			}
		}
	}
}
