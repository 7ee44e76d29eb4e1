package codec

import "fmt"

// Codec is the contract shared by every descriptor. Encode packs a value
// into its exact-width byte form; Decode consumes a prefix of buf and
// returns the decoded value together with the unconsumed suffix.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(buf []byte) (v any, rest []byte, err error)
}

// Sizer is implemented by descriptors whose encoded length is the same for
// every valid value. The reported size equals len(Encode(v)) for any v the
// descriptor accepts, and is stable for the lifetime of the descriptor.
type Sizer interface {
	Size() int
}

// FixedSizeOf reports the fixed encoded size of c, if it has one. A record
// has a fixed size only when every bound field descriptor does; every other
// descriptor in this package is fixed by construction.
func FixedSizeOf(c Codec) (int, bool) {
	if r, ok := c.(*Record); ok {
		if !r.Fixed() {
			return 0, false
		}
		return r.Size(), true
	}
	if s, ok := c.(Sizer); ok {
		return s.Size(), true
	}
	return 0, false
}

// typeName returns a stable human-readable name for a descriptor, used in
// error context and layout listings.
func typeName(c Codec) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
