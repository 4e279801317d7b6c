// Package parse implements MON's recursive-descent, error-tolerant parser.
//
// The parser never aborts: on an unexpected token it collects a diagnostic
// and either synthesizes a placeholder node or synchronizes to the next
// safe recovery point (a comma, a closing bracket, or end of file), then
// keeps going. Inside an object, a missing comma before a token that can
// start a member is reported and the next member is parsed in place, not
// skipped. Parse always returns a complete ast.Document; callers detect
// failure by inspecting the diagnostics collector, not the return value's
// shape.
package parse
