package codec

import (
	"fmt"
	"reflect"
)

// ArrayType encodes a fixed count of homogeneous elements. The element
// descriptor must have a fixed size so that missing trailing elements can
// be zero-filled and the total width precomputed.
type ArrayType struct {
	elem     Codec
	length   int
	elemSize int
}

// NewArray returns an array descriptor of length elements encoded by elem.
// It fails with ErrNotFixedSize when elem cannot report a fixed size.
func NewArray(elem Codec, length int) (*ArrayType, error) {
	if length < 0 {
		return nil, fmt.Errorf("array: negative length %d", length)
	}
	size, ok := FixedSizeOf(elem)
	if !ok {
		return nil, fmt.Errorf("array of %s: %w", typeName(elem), ErrNotFixedSize)
	}
	return &ArrayType{elem: elem, length: length, elemSize: size}, nil
}

func (t *ArrayType) String() string { return fmt.Sprintf("%s[%d]", typeName(t.elem), t.length) }

// Size returns length times the element size.
func (t *ArrayType) Size() int { return t.length * t.elemSize }

// Len returns the declared element count.
func (t *ArrayType) Len() int { return t.length }

// Elem returns the element descriptor.
func (t *ArrayType) Elem() Codec { return t.elem }

// Encode packs a slice or array value. Supplying more elements than the
// declared length fails with ErrSequenceTooLong; missing trailing elements
// are zero-filled, so a nil or short value is not an error.
func (t *ArrayType) Encode(v any) ([]byte, error) {
	n := 0
	var rv reflect.Value
	if v != nil {
		rv = reflect.ValueOf(v)
		if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
			return nil, fmt.Errorf("%s: cannot encode %T: %w", t, v, ErrUnsupportedType)
		}
		n = rv.Len()
	}
	if n > t.length {
		return nil, fmt.Errorf("%s: %d elements exceed declared length %d: %w",
			t, n, t.length, ErrSequenceTooLong)
	}

	buf := make([]byte, 0, t.Size())
	for i := 0; i < n; i++ {
		ev := rv.Index(i).Interface()
		chunk, err := t.elem.Encode(ev)
		if err != nil {
			return nil, &ElementError{Index: i, Type: typeName(t.elem), Value: ev, Err: err}
		}
		buf = append(buf, chunk...)
	}
	if n < t.length {
		buf = append(buf, make([]byte, (t.length-n)*t.elemSize)...)
	}
	return buf, nil
}

// Decode reads exactly Len() elements in sequence, threading the remainder
// buffer through each element decode, and returns them as []any.
func (t *ArrayType) Decode(buf []byte) (any, []byte, error) {
	vals := make([]any, 0, t.length)
	rest := buf
	for i := 0; i < t.length; i++ {
		v, remaining, err := t.elem.Decode(rest)
		if err != nil {
			return nil, nil, err
		}
		vals = append(vals, v)
		rest = remaining
	}
	return vals, rest, nil
}
