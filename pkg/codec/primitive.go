package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Shared little-endian descriptors. Descriptors are stateless, so these are
// safe to reuse across the whole process.
var (
	Bool   = NewBool()
	Char   = NewChar()
	Uint8  = NewUint8(binary.LittleEndian)
	Int8   = NewInt8(binary.LittleEndian)
	Uint16 = NewUint16(binary.LittleEndian)
	Int16  = NewInt16(binary.LittleEndian)
	Uint32 = NewUint32(binary.LittleEndian)
	Int32  = NewInt32(binary.LittleEndian)
	Uint64 = NewUint64(binary.LittleEndian)
	Int64  = NewInt64(binary.LittleEndian)
)

// IntType is a fixed-width integer descriptor. Width, signedness, and byte
// order are set at construction time; the same logical type with a
// different byte order is a distinct descriptor.
type IntType struct {
	width  int
	signed bool
	order  binary.ByteOrder
}

// NewUint8 returns a 1-byte unsigned integer descriptor.
func NewUint8(order binary.ByteOrder) *IntType { return &IntType{width: 1, order: order} }

// NewInt8 returns a 1-byte signed integer descriptor.
func NewInt8(order binary.ByteOrder) *IntType { return &IntType{width: 1, signed: true, order: order} }

// NewUint16 returns a 2-byte unsigned integer descriptor.
func NewUint16(order binary.ByteOrder) *IntType { return &IntType{width: 2, order: order} }

// NewInt16 returns a 2-byte signed integer descriptor.
func NewInt16(order binary.ByteOrder) *IntType { return &IntType{width: 2, signed: true, order: order} }

// NewUint32 returns a 4-byte unsigned integer descriptor.
func NewUint32(order binary.ByteOrder) *IntType { return &IntType{width: 4, order: order} }

// NewInt32 returns a 4-byte signed integer descriptor.
func NewInt32(order binary.ByteOrder) *IntType { return &IntType{width: 4, signed: true, order: order} }

// NewUint64 returns an 8-byte unsigned integer descriptor.
func NewUint64(order binary.ByteOrder) *IntType { return &IntType{width: 8, order: order} }

// NewInt64 returns an 8-byte signed integer descriptor.
func NewInt64(order binary.ByteOrder) *IntType { return &IntType{width: 8, signed: true, order: order} }

func (t *IntType) String() string {
	name := fmt.Sprintf("uint%d", t.width*8)
	if t.signed {
		name = name[1:]
	}
	if t.order == binary.ByteOrder(binary.BigEndian) {
		name += "be"
	}
	return name
}

// Size returns the width in bytes.
func (t *IntType) Size() int { return t.width }

// Encode packs an integer value into exactly Size() bytes. Any Go integer
// type is accepted; values outside the representable domain fail with
// ErrOutOfRange rather than wrapping.
func (t *IntType) Encode(v any) ([]byte, error) {
	if t.signed {
		n, ok := asInt64(v)
		if !ok {
			if u, isUint := asUint64(v); isUint {
				return nil, fmt.Errorf("%s: value %d outside [%d, %d]: %w", t, u, t.min(), t.max(), ErrOutOfRange)
			}
			return nil, fmt.Errorf("%s: cannot encode %T: %w", t, v, ErrUnsupportedType)
		}
		if n < t.min() || n > t.max() {
			return nil, fmt.Errorf("%s: value %d outside [%d, %d]: %w", t, n, t.min(), t.max(), ErrOutOfRange)
		}
		return t.put(uint64(n)), nil
	}

	u, ok := asUint64(v)
	if !ok {
		if n, isInt := asInt64(v); isInt && n < 0 {
			return nil, fmt.Errorf("%s: value %d outside [0, %d]: %w", t, n, t.umax(), ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: cannot encode %T: %w", t, v, ErrUnsupportedType)
	}
	if u > t.umax() {
		return nil, fmt.Errorf("%s: value %d outside [0, %d]: %w", t, u, t.umax(), ErrOutOfRange)
	}
	return t.put(u), nil
}

// Decode reads the first Size() bytes of buf and returns the value in its
// natural Go type (uint16, int32, ...) plus the remaining bytes.
func (t *IntType) Decode(buf []byte) (any, []byte, error) {
	if len(buf) < t.width {
		return nil, nil, fmt.Errorf("%s: need %d bytes, have %d: %w", t, t.width, len(buf), ErrTruncated)
	}

	var u uint64
	switch t.width {
	case 1:
		u = uint64(buf[0])
	case 2:
		u = uint64(t.order.Uint16(buf))
	case 4:
		u = uint64(t.order.Uint32(buf))
	default:
		u = t.order.Uint64(buf)
	}

	rest := buf[t.width:]
	if t.signed {
		switch t.width {
		case 1:
			return int8(u), rest, nil
		case 2:
			return int16(u), rest, nil
		case 4:
			return int32(u), rest, nil
		default:
			return int64(u), rest, nil
		}
	}
	switch t.width {
	case 1:
		return uint8(u), rest, nil
	case 2:
		return uint16(u), rest, nil
	case 4:
		return uint32(u), rest, nil
	default:
		return u, rest, nil
	}
}

func (t *IntType) put(u uint64) []byte {
	buf := make([]byte, t.width)
	switch t.width {
	case 1:
		buf[0] = byte(u)
	case 2:
		t.order.PutUint16(buf, uint16(u))
	case 4:
		t.order.PutUint32(buf, uint32(u))
	default:
		t.order.PutUint64(buf, u)
	}
	return buf
}

func (t *IntType) min() int64 {
	if t.width == 8 {
		return math.MinInt64
	}
	return -(int64(1) << (uint(t.width)*8 - 1))
}

func (t *IntType) max() int64 {
	if t.width == 8 {
		return math.MaxInt64
	}
	return int64(1)<<(uint(t.width)*8-1) - 1
}

func (t *IntType) umax() uint64 {
	if t.width == 8 {
		return math.MaxUint64
	}
	return uint64(1)<<(uint(t.width)*8) - 1
}

// BoolType encodes a boolean as a single byte: 0x00 for false, 0x01 for
// true. Decode treats any non-zero byte as true.
type BoolType struct{}

// NewBool returns a boolean descriptor.
func NewBool() *BoolType { return &BoolType{} }

func (t *BoolType) String() string { return "bool" }

// Size returns 1.
func (t *BoolType) Size() int { return 1 }

// Encode packs a bool into one byte.
func (t *BoolType) Encode(v any) ([]byte, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("bool: cannot encode %T: %w", v, ErrUnsupportedType)
	}
	if b {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// Decode reads one byte.
func (t *BoolType) Decode(buf []byte) (any, []byte, error) {
	if len(buf) < 1 {
		return nil, nil, fmt.Errorf("bool: need 1 byte, have 0: %w", ErrTruncated)
	}
	return buf[0] != 0, buf[1:], nil
}

// CharType encodes a single raw byte unchanged.
type CharType struct{}

// NewChar returns a single-byte descriptor.
func NewChar() *CharType { return &CharType{} }

func (t *CharType) String() string { return "char" }

// Size returns 1.
func (t *CharType) Size() int { return 1 }

// Encode packs one byte.
func (t *CharType) Encode(v any) ([]byte, error) {
	c, ok := v.(byte)
	if !ok {
		return nil, fmt.Errorf("char: cannot encode %T: %w", v, ErrUnsupportedType)
	}
	return []byte{c}, nil
}

// Decode reads one byte.
func (t *CharType) Decode(buf []byte) (any, []byte, error) {
	if len(buf) < 1 {
		return nil, nil, fmt.Errorf("char: need 1 byte, have 0: %w", ErrTruncated)
	}
	return buf[0], buf[1:], nil
}

// asInt64 coerces any Go integer value into an int64, reporting false when
// the value is not an integer or does not fit.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// asUint64 coerces any non-negative Go integer value into a uint64,
// reporting false when the value is not an integer or is negative.
func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int8:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int16:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int32:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	}
	return 0, false
}
