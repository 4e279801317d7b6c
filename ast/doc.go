// Package ast defines the syntax tree produced by the parser.
//
// A Document is immutable once parsed: it carries exactly what was written
// in the source, including import statements, anchor-prefixed declarations,
// type definitions, and alias/spread references. Resolving these away into
// a plain value tree is the resolver's job, not the parser's.
//
// Every node carries a location.Span so downstream diagnostics can point
// back at the exact source text that produced it.
package ast
