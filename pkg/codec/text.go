package codec

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
)

// TextType encodes a string into a fixed-width block of bytes. Strings
// shorter than the block are right-padded with zero bytes; strings whose
// encoded form exceeds the block fail with ErrValueTooLarge.
type TextType struct {
	size int
	enc  encoding.Encoding
}

// NewText returns a text descriptor of the given byte width. Values are
// stored as raw UTF-8.
func NewText(size int) *TextType { return &TextType{size: size} }

// NewTextEncoding returns a text descriptor that converts values through
// the given character encoding (for example a golang.org/x/text charmap)
// before padding. The declared width is in encoded bytes.
func NewTextEncoding(size int, enc encoding.Encoding) *TextType {
	return &TextType{size: size, enc: enc}
}

func (t *TextType) String() string { return fmt.Sprintf("text(%d)", t.size) }

// Size returns the declared byte width.
func (t *TextType) Size() int { return t.size }

// Encode converts the string to its byte representation and zero-pads it to
// exactly Size() bytes.
func (t *TextType) Encode(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s: cannot encode %T: %w", t, v, ErrUnsupportedType)
	}

	raw := []byte(s)
	if t.enc != nil {
		var err error
		raw, err = t.enc.NewEncoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: convert %q: %w", t, s, err)
		}
	}
	if len(raw) > t.size {
		return nil, fmt.Errorf("%s: encoded length %d exceeds declared width %d: %w",
			t, len(raw), t.size, ErrValueTooLarge)
	}

	buf := make([]byte, t.size)
	copy(buf, raw)
	return buf, nil
}

// Decode takes the first Size() bytes, strips the trailing zero-byte
// padding, and converts the remainder back to a string.
//
// The strip is lossy: text whose genuine content ends in a zero byte does
// not round-trip. Callers that need trailing zero bytes preserved must
// carry an explicit length in a separate field.
func (t *TextType) Decode(buf []byte) (any, []byte, error) {
	if len(buf) < t.size {
		return nil, nil, fmt.Errorf("%s: need %d bytes, have %d: %w", t, t.size, len(buf), ErrTruncated)
	}

	raw := bytes.TrimRight(buf[:t.size], "\x00")
	if t.enc != nil {
		dec, err := t.enc.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: convert: %w", t, err)
		}
		return string(dec), buf[t.size:], nil
	}
	return string(raw), buf[t.size:], nil
}
