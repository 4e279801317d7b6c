package token

import (
	"fmt"

	"github.com/mycel-lang/mon/location"
)

// SpanBuilder turns byte offsets into location.Span values. The lexer and
// parser work exclusively in byte offsets; turning those into line/column
// positions is deferred to a location.PositionRegistry, which must already
// have the source's content registered.
type SpanBuilder struct {
	sourceID location.SourceID
	registry location.PositionRegistry
}

// NewSpanBuilder creates a Builder for sourceID, looking up positions in
// registry. The caller must have registered sourceID's content in registry
// before lexing begins.
func NewSpanBuilder(sourceID location.SourceID, registry location.PositionRegistry) *SpanBuilder {
	return &SpanBuilder{sourceID: sourceID, registry: registry}
}

// Span builds a half-open span from two byte offsets.
func (b *SpanBuilder) Span(startByte, endByte int) location.Span {
	start := mustPositionAt(b.registry, b.sourceID, startByte)
	end := mustPositionAt(b.registry, b.sourceID, endByte)
	return location.Span{Source: b.sourceID, Start: start, End: end}
}

// mustPositionAt panics if the registry cannot resolve byteOffset. A zero
// Position here means the source was never registered, or the offset lies
// outside its content — both are lexer bugs, not user-facing errors.
func mustPositionAt(reg location.PositionRegistry, src location.SourceID, byteOffset int) location.Position {
	pos := reg.PositionAt(src, byteOffset)
	if pos.IsZero() {
		panic(fmt.Sprintf("token: PositionAt(%s, %d) returned zero position", src, byteOffset))
	}
	return pos
}
