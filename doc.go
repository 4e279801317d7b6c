// Package mon provides parsing, import resolution, and structural type
// validation for Mycel Object Notation (MON) documents.
//
// MON is a JSON superset with anchors, spreads, imports, and a lightweight
// structural type system (struct and enum declarations, collection
// patterns). Analyzing a document walks five stages in order: lexing,
// parsing, import resolution (anchors, spreads, aliases), type validation,
// and projection to canonical JSON.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no dependencies on the pipeline tier):
//	  - location: Source positions, spans, and canonical paths
//	  - diag: Structured diagnostics with stable error codes
//	  - immutable: Read-only wrappers for anchor isolation
//
//	Core pipeline tier:
//	  - token, parse: Hand-written lexer and recursive-descent parser
//	  - ast: Parsed document shapes (values, members, imports, type decls)
//	  - resolve: Import graph traversal, anchors, spreads, namespaces
//	  - types: Struct/enum registry and structural validation
//	  - serialize: Canonical JSON emission
//
// # Entry Point
//
// Analyzing a document:
//
//	import "github.com/mycel-lang/mon/mon"
//
//	result, diags, err := mon.Analyze(text, "config.mon")
//	if err != nil {
//	    // I/O or internal error
//	}
//	if !diags.OK() {
//	    // Parse, resolution, or type errors; result is nil
//	}
//	out, err := result.ToJSON()
//
// A custom [resolve.SourceProvider], supplied via mon.WithSourceProvider,
// replaces the default filesystem-backed one for in-memory or virtual
// filesystem import resolution.
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/mycel-lang/mon/diag]: Structured diagnostics
//   - [github.com/mycel-lang/mon/location]: Source location tracking
//   - [github.com/mycel-lang/mon/immutable]: Read-only data wrappers
//   - [github.com/mycel-lang/mon/token]: Lexer and token kinds
//   - [github.com/mycel-lang/mon/ast]: Parsed document shapes
//   - [github.com/mycel-lang/mon/parse]: Recursive-descent parser
//   - [github.com/mycel-lang/mon/resolve]: Import resolution and namespaces
//   - [github.com/mycel-lang/mon/types]: Structural type validation
//   - [github.com/mycel-lang/mon/serialize]: Canonical JSON emission
package mon
