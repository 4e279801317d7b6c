package token

import "github.com/mycel-lang/mon/location"

// Number is a decoded numeric literal. Raw is the literal text exactly as
// written, Value its parsed float64 value, and IsInt records whether the
// literal had no fractional part. The resolver carries only Value into the
// resolved tree.
type Number struct {
	Raw   string
	Value float64
	IsInt bool
}

// Token is a single lexical unit together with its source span.
//
// Text carries different payloads depending on Kind:
//   - Ident, Anchor, Alias: the identifier name (without '&'/'*' prefix)
//   - String: the decoded string value (escapes already resolved)
//   - Err: a short description of what went wrong, for synchronization
//     logic that wants to inspect it (rarely needed; diagnostics already
//     carry the real message)
//
// Num is only meaningful when Kind == Number. BoolVal is only meaningful
// when Kind == Bool.
type Token struct {
	Kind    Kind
	Text    string
	Num     Number
	BoolVal bool
	Span    location.Span
}

// Is reports whether the token has the given kind. Trivial, but reads
// better at call sites than comparing .Kind directly everywhere.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}
