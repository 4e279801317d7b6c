package ast

import "github.com/mycel-lang/mon/location"

// Document is the top-level parse result for one source file: zero or more
// imports followed by a single root object.
type Document struct {
	Imports []ImportStmt
	Root    Value
	Span    location.Span
}
