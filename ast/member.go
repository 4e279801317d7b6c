package ast

import "github.com/mycel-lang/mon/location"

// MemberKind identifies which variant of Member is populated.
type MemberKind uint8

const (
	PairMember MemberKind = iota
	SpreadMember
)

// Member is an object member: either a key/value Pair or a Spread of an
// anchored object.
type Member struct {
	Kind   MemberKind
	Pair   *Pair   // Kind == PairMember
	Spread *Spread // Kind == SpreadMember
}

// PairSep records which separator introduced a Pair's value. The grammar
// requires "::T = v" (Validated) or plain "k: v" (Unvalidated); mixing the
// two is a parse error, not a third separator kind.
type PairSep uint8

const (
	Unvalidated PairSep = iota // ':'
	Validated                  // '='
)

// Key is the left-hand side of a Pair: a bare identifier or a quoted
// string, either is equally valid as an object key.
type Key struct {
	Name     string
	IsString bool
	Span     location.Span
}

// Pair is "[&anchor] key [:: Type] (':' | '=') value".
//
// Validation is nil for an unvalidated pair. Value.Anchor carries the
// anchor name when this pair's key was anchor-prefixed: the anchor binds
// the value, not the key, per the resolver's anchor table semantics.
type Pair struct {
	Key        Key
	Validation *TypeExpr
	Sep        PairSep
	Value      Value
	Span       location.Span
}

// Spread is "...*alias" used as an object member or array element.
type Spread struct {
	AliasName string
	Span      location.Span
}

// ArrayElemKind identifies which variant of ArrayElem is populated.
type ArrayElemKind uint8

const (
	ValueElem ArrayElemKind = iota
	SpreadElem
)

// ArrayElem is one element of an array literal: either a Value or a Spread
// of an anchored array, concatenated in place.
type ArrayElem struct {
	Kind   ArrayElemKind
	Value  Value   // Kind == ValueElem
	Spread *Spread // Kind == SpreadElem
}
