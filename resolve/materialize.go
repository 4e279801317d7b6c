package resolve

import (
	"fmt"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/immutable"
	"github.com/mycel-lang/mon/location"
)

// resolverCtx carries the state one materialization pass threads through the
// recursive walk: the anchor table it dereferences aliases against, the
// collector it reports resolution errors to, and the validation sites it
// accumulates along the way. validations is nil during an anchor's
// export-only materialization (see [Resolver.exportAnchors]), since an
// anchor never appears in Root and a site recorded against its synthetic
// path would never be checked against anything.
type resolverCtx struct {
	anchors     *anchorTable
	coll        *diag.Collector
	validations *[]ValidationSite
}

func (ctx *resolverCtx) recordValidation(path string, typ ast.TypeExpr, span location.Span, poisoned bool) {
	if ctx.validations == nil {
		return
	}
	*ctx.validations = append(*ctx.validations, ValidationSite{Path: path, Type: typ, Span: span, Poisoned: poisoned})
}

// materializeValue converts one AST value node into its plain, resolved
// form. path is the JSONPath-like location v will occupy in the resolved
// tree, used to attribute any nested "::" annotations to the right place.
func materializeValue(ctx *resolverCtx, v ast.Value, path string) immutable.Value {
	switch v.Kind {
	case ast.Object:
		return materializeObject(ctx, v, path)
	case ast.Array:
		return materializeArray(ctx, v, path)
	case ast.StringVal:
		return immutable.Wrap(v.Str)
	case ast.NumberVal:
		return immutable.Wrap(v.Num.Value)
	case ast.BoolVal:
		return immutable.Wrap(v.Bool)
	case ast.NullVal:
		return immutable.Wrap(nil)
	case ast.AliasRef:
		return materializeAlias(ctx, v, path)
	case ast.EnumRefVal:
		return immutable.Wrap(EnumValue{
			Namespace: v.EnumRef.Namespace,
			EnumName:  v.EnumRef.EnumName,
			Variant:   v.EnumRef.Variant,
			Span:      v.EnumRef.Span,
		})
	default:
		// TypeDefVal is handled by the enclosing object (it never appears as
		// a standalone value to materialize), and Invalid only arises from
		// parser recovery, already diagnosed at parse time.
		return immutable.Wrap(nil)
	}
}

func materializeObject(ctx *resolverCtx, v ast.Value, path string) immutable.Value {
	om := immutable.NewOrderedMap(len(v.Members))
	for _, m := range v.Members {
		switch m.Kind {
		case ast.PairMember:
			materializePair(ctx, m.Pair, om, path)
		case ast.SpreadMember:
			materializeObjectSpread(ctx, m.Spread, om, path)
		}
	}
	return immutable.Wrap(immutable.WrapOrderedMap(om))
}

func materializePair(ctx *resolverCtx, pair *ast.Pair, into *immutable.OrderedMap, path string) {
	// Anchor-prefixed pairs and type declarations are templates: they are
	// reachable through the anchor table / type registry, never through the
	// tree itself.
	if pair.Value.IsAnchored() || pair.Value.Kind == ast.TypeDefVal {
		return
	}

	childPath := path + "." + pair.Key.Name
	before := ctx.coll.Len()
	val := materializeValue(ctx, pair.Value, childPath)
	if pair.Sep == ast.Validated && pair.Validation != nil {
		poisoned := ctx.coll.Len() > before
		ctx.recordValidation(childPath, *pair.Validation, pair.Value.Span, poisoned)
	}
	into.Set(pair.Key.Name, val.Unwrap())
}

// materializeObjectSpread merges an anchor's object body directly into the
// enclosing object. path is the enclosing object's own path: a spread
// contributes keys at exactly the paths they would have if written out by
// hand, so re-walking the anchor's body with the enclosing path as prefix
// attributes nested "::" sites correctly.
func materializeObjectSpread(ctx *resolverCtx, spread *ast.Spread, into *immutable.OrderedMap, path string) {
	val, ok := materializeAliasByName(ctx, spread.AliasName, spread.Span, path)
	if !ok {
		return
	}
	m, ok := val.Map()
	if !ok {
		ctx.coll.Collect(diag.NewIssue(diag.Error, diag.E0025SpreadNotObject,
			fmt.Sprintf("cannot spread %q: not an object", spread.AliasName)).
			WithSpan(spread.Span).
			Build())
		return
	}
	for k, v := range m.Range() {
		into.Set(k, v.Unwrap())
	}
}

func materializeArray(ctx *resolverCtx, v ast.Value, path string) immutable.Value {
	var out []any
	idx := 0
	for _, e := range v.Elements {
		switch e.Kind {
		case ast.ValueElem:
			elemPath := fmt.Sprintf("%s[%d]", path, idx)
			val := materializeValue(ctx, e.Value, elemPath)
			out = append(out, val.Unwrap())
			idx++
		case ast.SpreadElem:
			// The spread's contributed elements land at consecutive indices
			// starting at idx. Only the first is attributed exactly; later
			// ones reuse idx as an approximate base, since the anchor body
			// is re-walked independently of this array's own running index.
			spreadPath := fmt.Sprintf("%s[%d]", path, idx)
			val, ok := materializeAliasByName(ctx, e.Spread.AliasName, e.Spread.Span, spreadPath)
			if !ok {
				continue
			}
			s, ok := val.Slice()
			if !ok {
				ctx.coll.Collect(diag.NewIssue(diag.Error, diag.E0026SpreadNotArray,
					fmt.Sprintf("cannot spread %q: not an array", e.Spread.AliasName)).
					WithSpan(e.Spread.Span).
					Build())
				continue
			}
			for elem := range s.Iter() {
				out = append(out, elem.Unwrap())
				idx++
			}
		}
	}
	return immutable.Wrap(immutable.WrapSlice(out))
}

func materializeAlias(ctx *resolverCtx, v ast.Value, path string) immutable.Value {
	val, ok := materializeAliasByName(ctx, v.Alias, v.Span, path)
	if !ok {
		return immutable.Wrap(nil)
	}
	return val
}

// materializeAliasByName dereferences name against the anchor table. path is
// the location the dereferenced value will occupy in the caller's tree —
// either the alias occurrence's own path, or (for a spread) the enclosing
// collection's path.
//
// A local anchor is re-derived from its raw AST every time it is
// dereferenced rather than memoized: that gives each alias/spread use its
// own independent copy (invariant: mutating one copy must never affect
// another) and lets nested "::" annotations inside the anchor's body be
// attributed to the actual path where this particular use appears, instead
// of to one arbitrarily-chosen first-use path. An imported anchor has no
// local AST to re-derive from, so it is cloned from its already-resolved
// value instead; any "::" sites inside it were already recorded against the
// origin document and are not re-attributed here.
func materializeAliasByName(ctx *resolverCtx, name string, span location.Span, path string) (immutable.Value, bool) {
	slot, ok := ctx.anchors.get(name)
	if !ok {
		ctx.coll.Collect(diag.NewIssue(diag.Error, diag.E0020UnknownAlias,
			fmt.Sprintf("unknown anchor %q", name)).
			WithSpan(span).
			Build())
		return immutable.Value{}, false
	}
	if slot.resolved {
		return slot.value.Clone(), true
	}
	if slot.resolving {
		ctx.coll.Collect(diag.NewIssue(diag.Error, diag.E0020UnknownAlias,
			fmt.Sprintf("anchor %q is not visible while it is still being resolved (cyclic reference)", name)).
			WithSpan(span).
			Build())
		return immutable.Value{}, false
	}
	slot.resolving = true
	val := materializeValue(ctx, slot.raw, path)
	slot.resolving = false
	return val, true
}
