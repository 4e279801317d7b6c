package immutable

import "iter"

// Slice provides immutable access to a slice with pre-wrapped elements.
type Slice struct {
	elements []Value
}

// WrapSlice wraps s with ownership transfer semantics.
func WrapSlice(s []any) Slice {
	return wrapSlice(s, false)
}

// WrapSliceClone wraps a deep clone of s.
func WrapSliceClone(s []any) Slice {
	return wrapSlice(s, true)
}

func wrapSlice(s []any, clone bool) Slice {
	if s == nil {
		return Slice{}
	}
	elements := make([]Value, len(s))
	for i, v := range s {
		elements[i] = Value{val: wrapValue(v, clone)}
	}
	return Slice{elements: elements}
}

// Get returns the element at index i. Panics if i is out of bounds.
func (s Slice) Get(i int) Value {
	return s.elements[i]
}

// GetOK returns the element at index i and true if i is in bounds.
func (s Slice) GetOK(i int) (Value, bool) {
	if i < 0 || i >= len(s.elements) {
		return Value{}, false
	}
	return s.elements[i], true
}

// Len returns the number of elements.
func (s Slice) Len() int {
	return len(s.elements)
}

// Iter returns an iterator over the elements.
func (s Slice) Iter() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range s.elements {
			if !yield(v) {
				return
			}
		}
	}
}

// Iter2 returns an iterator over index-element pairs.
func (s Slice) Iter2() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range s.elements {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the slice as a mutable []any.
func (s Slice) Clone() []any {
	if s.elements == nil {
		return nil
	}
	result := make([]any, len(s.elements))
	for i, v := range s.elements {
		result[i] = cloneValue(v)
	}
	return result
}
