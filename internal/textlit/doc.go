// Package textlit decodes the escape sequences found inside MON string
// literals.
//
// MON strings are double-quoted only and support the fixed JSON escape set:
// \" \\ \/ \b \f \n \r \t \uXXXX. This is narrower than Go's own string
// literal grammar (no octal escapes, no raw strings) and must be validated
// byte-by-byte so the lexer can report the exact offset of an invalid
// escape rather than delegating to strconv.Unquote, which accepts a
// different grammar entirely.
//
// # Internal package
//
// This package is internal to the mon module. Its API may change without
// notice between versions. External consumers should not import this
// package.
//
// # Main functions
//
//   - DecodeString: decodes a string literal's content (quotes already
//     stripped by the caller) and reports the byte offset of the first
//     invalid escape sequence, if any.
//
// # Usage notes
//
// This package sits under internal/ rather than under token/ so that both
// the lexer and any future tooling (formatter, fuzzers) can depend on it
// without creating an upward dependency on the lexer itself.
package textlit
