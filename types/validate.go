package types

import (
	"fmt"
	"slices"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/immutable"
	"github.com/mycel-lang/mon/resolve"
)

// Validator applies every "::" annotation recorded on a resolved document,
// injecting struct-field defaults and collecting structural diagnostics
// into a caller-owned collector. One Validator's registry cache spans every
// document reachable through namespace imports, so a struct declared in an
// imported document is only registered once even if several fields recurse
// into it.
type Validator struct {
	doc        *resolve.Document
	coll       *diag.Collector
	registries map[*resolve.Document]*Registry
}

// NewValidator creates a Validator for doc, reporting into coll.
func NewValidator(doc *resolve.Document, coll *diag.Collector) *Validator {
	return &Validator{
		doc:        doc,
		coll:       coll,
		registries: make(map[*resolve.Document]*Registry),
	}
}

func (val *Validator) registryFor(d *resolve.Document) *Registry {
	if r, ok := val.registries[d]; ok {
		return r
	}
	r := NewRegistry(d, val.coll)
	val.registries[d] = r
	return r
}

// Validate runs every validation site recorded on the document and returns
// the resulting tree with defaults injected. Sites are processed
// deepest-path-first so a parent's own struct validation observes any
// defaults its children already injected. A poisoned site (its value failed
// to resolve; see [resolve.ValidationSite.Poisoned]) is skipped entirely —
// the value it would validate is already broken, and validating it further
// would only produce cascaded, misleading diagnostics.
func (val *Validator) Validate() immutable.Value {
	sites := slices.Clone(val.doc.Validations)
	slices.SortFunc(sites, func(a, b resolve.ValidationSite) int {
		return pathDepth(b.Path) - pathDepth(a.Path)
	})

	result := val.doc.Root
	reg := val.registryFor(val.doc)
	for _, site := range sites {
		if site.Poisoned {
			continue
		}
		v, ok := getAtPath(result, site.Path)
		if !ok {
			continue
		}
		validated, _ := val.validateValue(v, site.Type, reg, site.Path)
		result = setAtPath(result, site.Path, validated)
	}
	return result
}

// validateValue checks v against t, returning the value to store in its
// place (defaults injected for structs) and whether validation succeeded.
// A failed match still returns a usable value — typically v itself,
// unmodified — so a sibling field or array element can go on being
// validated instead of the whole document collapsing to Null.
func (val *Validator) validateValue(v immutable.Value, t ast.TypeExpr, reg *Registry, path string) (immutable.Value, bool) {
	switch t.Kind {
	case ast.PrimitiveType:
		return val.matchPrimitive(v, t, path)
	case ast.CollectionType:
		return val.matchCollection(v, t, reg, path)
	case ast.NamedType, ast.NamespacedType:
		entry, owner, ok := reg.Lookup(t)
		if !ok {
			name := t.Name
			if t.Kind == ast.NamespacedType {
				name = t.Namespace + "." + t.Name
			}
			val.coll.Collect(diag.NewIssue(diag.Error, diag.E0030UnknownType,
				fmt.Sprintf("unknown type %q", name)).
				WithSpan(t.Span).
				WithPath("", path).
				Build())
			return v, false
		}
		switch entry.Decl.Kind {
		case ast.StructDecl:
			return val.validateStruct(v, entry, val.registryFor(owner), path)
		case ast.EnumDecl:
			return val.validateEnum(v, entry, path)
		}
		return v, false
	default:
		return v, false
	}
}

func (val *Validator) matchPrimitive(v immutable.Value, t ast.TypeExpr, path string) (immutable.Value, bool) {
	ok := false
	switch t.Primitive {
	case ast.PrimString:
		_, ok = v.String()
	case ast.PrimNumber:
		_, ok = v.Float()
	case ast.PrimBoolean:
		_, ok = v.Bool()
	case ast.PrimNull:
		ok = v.IsNil()
	case ast.PrimObject:
		_, ok = v.Map()
	case ast.PrimArray:
		_, ok = v.Slice()
	case ast.PrimAny:
		ok = true
	}
	if !ok {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
			fmt.Sprintf("expected %s, got %s", t.Primitive, describeValue(v))).
			WithSpan(t.Span).
			WithPath("", path).
			Build())
	}
	return v, ok
}

// validateStruct checks v's fields against entry's declaration, preserving
// v's own member order for fields it already has and appending materialized
// defaults for fields it's missing at the end — matching the insertion-order
// invariant every other member-producing stage in this module follows.
// Default injection happens only for a field that was altogether absent: a
// present field that itself fails validation is still kept (with whatever
// partial result its own recursive validation produced) rather than
// silently replaced.
func (val *Validator) validateStruct(v immutable.Value, entry resolve.TypeDeclEntry, reg *Registry, path string) (immutable.Value, bool) {
	m, ok := v.Map()
	if !ok {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
			fmt.Sprintf("expected Object for struct %q, got %s", entry.Name, describeValue(v))).
			WithSpan(entry.Span).
			WithPath("", path).
			Build())
		return v, false
	}

	fieldsByName := make(map[string]ast.StructField, len(entry.Decl.Fields))
	for _, f := range entry.Decl.Fields {
		fieldsByName[f.Name] = f
	}

	out := immutable.NewOrderedMap(len(entry.Decl.Fields))
	present := make(map[string]bool, len(entry.Decl.Fields))
	allOK := true

	for key, val2 := range m.Range() {
		f, declared := fieldsByName[key]
		if !declared {
			val.coll.Collect(diag.NewIssue(diag.Error, diag.E0033UnexpectedField,
				fmt.Sprintf("unexpected field %q", key)).
				WithSpan(entry.Span).
				WithPath("", path+"."+key).
				Build())
			allOK = false
			continue
		}
		present[key] = true
		validated, ok := val.validateValue(val2, f.Type, reg, path+"."+key)
		if !ok {
			allOK = false
		}
		out.Set(key, validated.Unwrap())
	}

	for _, f := range entry.Decl.Fields {
		if present[f.Name] {
			continue
		}
		fieldPath := path + "." + f.Name
		if f.Default != nil {
			out.Set(f.Name, entry.Defaults[f.Name].Clone().Unwrap())
			continue
		}
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0032MissingField,
			fmt.Sprintf("missing field %q", f.Name)).
			WithSpan(entry.Span).
			WithPath("", fieldPath).
			Build())
		allOK = false
	}

	return immutable.Wrap(immutable.WrapOrderedMap(out)), allOK
}

func (val *Validator) validateEnum(v immutable.Value, entry resolve.TypeDeclEntry, path string) (immutable.Value, bool) {
	ev, ok := v.Unwrap().(resolve.EnumValue)
	if !ok {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
			fmt.Sprintf("expected enum %q, got %s", entry.Name, describeValue(v))).
			WithSpan(entry.Span).
			WithPath("", path).
			Build())
		return v, false
	}
	if ev.EnumName != entry.Name {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
			fmt.Sprintf("expected enum %q, got %q", entry.Name, ev.EnumName)).
			WithSpan(ev.Span).
			WithPath("", path).
			Build())
		return v, false
	}
	if !slices.Contains(entry.Decl.Variants, ev.Variant) {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0034EnumVariantUnknown,
			fmt.Sprintf("enum %q has no variant %q", entry.Name, ev.Variant)).
			WithSpan(ev.Span).
			WithPath("", path).
			Build())
		return v, false
	}
	return v, true
}
