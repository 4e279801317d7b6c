// Package resolve turns a parsed [ast.Document] (plus its transitive
// imports) into a plain, acyclic value tree with every anchor, alias,
// spread, and import fully materialized.
//
// The resolver owns three concerns: the import dependency graph (loading
// and caching documents by canonical path, detecting cycles), the
// per-document anchor table (hoisting `&name` declarations and deep-copying
// their value at every `*name` reference), and template stripping (imports,
// type declarations, and anchor-prefixed pairs never appear in the
// resolved output — they exist only to be referenced from elsewhere).
//
// Type declarations and `::` validation annotations survive resolution as
// data (see [Document.TypeDecls] and [Document.Validations]): structural
// checking and default-field injection are a separate, later stage that
// consumes this package's output rather than something the resolver does
// itself.
package resolve
