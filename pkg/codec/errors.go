package codec

import (
	"errors"
	"fmt"
)

// Closed set of low-level failure kinds. Higher layers add positional
// context (field name, element index, record type) by wrapping; match with
// errors.Is regardless of how deeply a failure is nested.
var (
	// ErrOutOfRange reports a numeric value outside the representable
	// domain for a primitive's width and signedness.
	ErrOutOfRange = errors.New("value out of range")

	// ErrTruncated reports that too few bytes remain to decode a
	// fixed-width unit.
	ErrTruncated = errors.New("buffer too short")

	// ErrValueTooLarge reports a text value whose byte encoding exceeds
	// the declared fixed width. Values are never silently truncated.
	ErrValueTooLarge = errors.New("encoded value exceeds declared width")

	// ErrSequenceTooLong reports more array elements than the declared
	// fixed length.
	ErrSequenceTooLong = errors.New("sequence exceeds declared length")

	// ErrUnsupportedType reports a value whose Go type cannot be encoded
	// by the bound descriptor.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrNotFixedSize reports a descriptor used where a fixed encoded
	// size is required (array elements, size queries).
	ErrNotFixedSize = errors.New("descriptor has no fixed size")
)

// FieldError reports an encode or decode failure for a single record field.
// Op is "encode" or "decode"; Type names the descriptor bound to the field.
type FieldError struct {
	Op     string
	Record string
	Field  string
	Type   string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q [%s] of record %s: %v", e.Op, e.Field, e.Type, e.Record, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ElementError reports an encode failure for a single array element,
// identifying the offending index, the element descriptor, and the value
// that could not be encoded.
type ElementError struct {
	Index int
	Type  string
	Value any
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("encode element %d as %s (value %v): %v", e.Index, e.Type, e.Value, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// ConstructionError reports that a binder rejected the decoded field
// mapping while rebuilding a record instance. It aborts the decode of the
// enclosing record.
type ConstructionError struct {
	Record string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct record %s: %v", e.Record, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
