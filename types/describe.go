package types

import "github.com/mycel-lang/mon/immutable"

// describeValue names the shape of v for TypeMismatch messages.
func describeValue(v immutable.Value) string {
	if v.IsNil() {
		return "Null"
	}
	if _, ok := v.Map(); ok {
		return "Object"
	}
	if _, ok := v.Slice(); ok {
		return "Array"
	}
	if _, ok := v.Bool(); ok {
		return "Boolean"
	}
	if _, ok := v.Float(); ok {
		return "Number"
	}
	if _, ok := v.String(); ok {
		return "String"
	}
	return "value"
}
