// Package serialize emits canonical JSON from a resolved MON value tree.
package serialize

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/mycel-lang/mon/immutable"
	"github.com/mycel-lang/mon/resolve"
)

// Option configures canonical JSON output.
type Option func(*config)

type config struct {
	indent string
}

// WithIndent sets the indentation string used for pretty-printing. The zero
// value ("") produces compact output with no inserted whitespace.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}

// Marshal renders root as canonical JSON. root must already have passed
// through the resolver and, if the document declared any, the type
// validator — every non-JSON construct (anchors, aliases, spreads, import
// statements, type definitions, enum references left unvalidated) must
// already be gone by this point; see Write's doc comment for how an enum
// reference is handled when one still reaches the serializer.
func Marshal(root immutable.Value, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, root, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders root as canonical JSON to w and returns the number of bytes
// written.
//
// An [resolve.EnumValue] surviving into the value tree is rendered as its
// bare variant name string: spec.md's canonical-JSON projection has no
// separate notation for an enum value, and by the time a document reaches
// this stage a validated enum reference carries no more information a JSON
// consumer could use than the variant name itself. This is the one place
// that performs the "enum references ... must have been stripped" rule
// described for this stage — stripping them any earlier, during
// resolution, would have discarded the enum/variant identity the type
// validator needs to check a `::` annotation.
func Write(w io.Writer, root immutable.Value, opts ...Option) (int64, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	e := &encoder{buf: &bytes.Buffer{}, indent: cfg.indent}
	if err := e.encodeValue(root, 0); err != nil {
		return 0, err
	}

	n, err := w.Write(e.buf.Bytes())
	if err == nil && n < e.buf.Len() {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), err
}

type encoder struct {
	buf    *bytes.Buffer
	indent string
}

func (e *encoder) pretty() bool {
	return e.indent != ""
}

func (e *encoder) newline(depth int) {
	if !e.pretty() {
		return
	}
	e.buf.WriteByte('\n')
	for range depth {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) encodeValue(v immutable.Value, depth int) error {
	if v.IsNil() {
		e.buf.WriteString("null")
		return nil
	}
	if m, ok := v.Map(); ok {
		return e.encodeMap(m, depth)
	}
	if s, ok := v.Slice(); ok {
		return e.encodeSlice(s, depth)
	}
	if ev, ok := v.Unwrap().(resolve.EnumValue); ok {
		e.encodeString(ev.Variant)
		return nil
	}
	if b, ok := v.Bool(); ok {
		if b {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
		return nil
	}
	if s, ok := v.String(); ok {
		e.encodeString(s)
		return nil
	}
	if f, ok := v.Float(); ok {
		return e.encodeNumber(f)
	}
	return fmt.Errorf("serialize: value %#v is not a canonical JSON shape", v.Unwrap())
}

func (e *encoder) encodeMap(m immutable.Map, depth int) error {
	if m.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	first := true
	for key, val := range m.Range() {
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.newline(depth + 1)
		e.encodeString(key)
		e.buf.WriteByte(':')
		if e.pretty() {
			e.buf.WriteByte(' ')
		}
		if err := e.encodeValue(val, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeSlice(s immutable.Slice, depth int) error {
	if s.Len() == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	first := true
	for val := range s.Iter() {
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.newline(depth + 1)
		if err := e.encodeValue(val, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

// encodeString writes s as a JSON string literal, escaping the characters
// the JSON grammar requires.
func (e *encoder) encodeString(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(e.buf, `\u%04x`, r)
				continue
			}
			e.buf.WriteRune(r)
		}
	}
	e.buf.WriteByte('"')
}

// encodeNumber renders f in shortest round-trip form: a whole-valued number
// below 1e15 in magnitude prints as an integer, without a decimal point or
// exponent; everything else, larger whole numbers included, uses Go's
// shortest-round-trip 'g' float formatting.
func (e *encoder) encodeNumber(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("serialize: number %v has no JSON representation", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		e.buf.WriteString(strconv.FormatInt(int64(f), 10))
		return nil
	}
	e.buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}
