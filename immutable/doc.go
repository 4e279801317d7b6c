// Package immutable provides immutable wrapper types for Go values.
//
// It sits at the foundation tier alongside [location] and [diag], giving the
// resolver compile-time immutability guarantees for materialized values:
// once an alias or spread has been expanded into a deep copy, nothing else
// in the pipeline can observe a later mutation of the anchor or of a
// sibling copy.
//
// [Value] wraps an arbitrary Go value and provides type-safe, allocation-free
// access to primitives. [Map] wraps a string-keyed map and, unlike a plain Go
// map, remembers the order keys were inserted in — resolved MON objects
// preserve source order, so this is the mechanism that keeps alias
// materialization order-preserving. [Slice] wraps a slice the same way Map
// wraps a map.
//
// Wrap and WrapClone mirror the same ownership-transfer-vs-deep-clone
// distinction. The resolver gives every alias use its own copy by
// re-materializing a local anchor from its source, or by calling
// [Value.Clone] on an imported anchor's resolved value, so the anchor's
// value stays usable for a second, third, or Nth alias.
package immutable
