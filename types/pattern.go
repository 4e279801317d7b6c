package types

import (
	"fmt"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/immutable"
)

// variadicIndex returns the position of the pattern's single variadic
// element, or -1 if the pattern is fully positional. ok is false if more
// than one element was marked variadic, which is invalid regardless of how
// many concrete values are ever matched against it.
func variadicIndex(elems []ast.CollectionElem) (index int, ok bool) {
	index = -1
	for i, e := range elems {
		if !e.Variadic {
			continue
		}
		if index != -1 {
			return -1, false
		}
		index = i
	}
	return index, true
}

// matchCollection validates v against a Collection TypeExpr, per the
// positional/variadic pattern table: a fixed prefix, an optional variadic
// run, then a fixed suffix.
func (val *Validator) matchCollection(v immutable.Value, t ast.TypeExpr, reg *Registry, path string) (immutable.Value, bool) {
	elems := t.Elements
	vIdx, ok := variadicIndex(elems)
	if !ok {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0035InvalidCollectionPattern,
			"collection pattern declares more than one variadic element").
			WithSpan(t.Span).
			WithPath("", path).
			Build())
		return v, false
	}

	s, ok := v.Slice()
	if !ok {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
			fmt.Sprintf("expected Array, got %s", describeValue(v))).
			WithSpan(t.Span).
			WithPath("", path).
			Build())
		return v, false
	}

	n := s.Len()
	out := make([]any, n)
	allOK := true

	validateAt := func(i int, elemType ast.TypeExpr) {
		elemVal, elemOK := s.GetOK(i)
		if !elemOK {
			return
		}
		validated, ok := val.validateValue(elemVal, elemType, reg, fmt.Sprintf("%s[%d]", path, i))
		if !ok {
			allOK = false
		}
		out[i] = validated.Unwrap()
	}

	if vIdx == -1 {
		if n != len(elems) {
			val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
				fmt.Sprintf("expected array of length %d, got %d", len(elems), n)).
				WithSpan(t.Span).
				WithPath("", path).
				Build())
			return v, false
		}
		for i, e := range elems {
			validateAt(i, e.Type)
		}
		return immutable.Wrap(immutable.WrapSlice(out)), allOK
	}

	prefixLen := vIdx
	suffixLen := len(elems) - vIdx - 1
	minLen := prefixLen + suffixLen
	if n < minLen {
		val.coll.Collect(diag.NewIssue(diag.Error, diag.E0031TypeMismatch,
			fmt.Sprintf("expected array of length >= %d, got %d", minLen, n)).
			WithSpan(t.Span).
			WithPath("", path).
			Build())
		return v, false
	}

	for i := 0; i < prefixLen; i++ {
		validateAt(i, elems[i].Type)
	}
	variadicType := elems[vIdx].Type
	for i := prefixLen; i < n-suffixLen; i++ {
		validateAt(i, variadicType)
	}
	for i := 0; i < suffixLen; i++ {
		validateAt(n-suffixLen+i, elems[vIdx+1+i].Type)
	}

	return immutable.Wrap(immutable.WrapSlice(out)), allOK
}
