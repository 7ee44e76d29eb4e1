// Package codec provides declarative fixed-width binary encoding for
// structured records.
//
// A record is described once, as an ordered list of named, typed fields, and
// the package derives the exact-width byte encoding and decoding for it. No
// per-field pack/unpack code is written by hand.
//
// # Descriptors
//
// Every value shape is described by a descriptor implementing Codec:
//
//   - primitives: booleans, single bytes, and signed/unsigned integers of
//     1, 2, 4 or 8 bytes with a construction-time byte order
//     (little-endian by default)
//   - fixed-width text blocks with zero padding
//   - fixed-length arrays of any fixed-size element descriptor
//   - records, which compose any of the above (including other records)
//
// Descriptors are immutable and stateless; the shared package-level
// descriptors (Bool, Uint8, Int32, ...) can be used concurrently from any
// number of goroutines.
//
// # Wire Format
//
// The encoding of a record is the raw concatenation of its field encodings
// in declared order, each at its declared width and byte order. There is no
// header, tag, or length prefix: decoding requires knowing the record shape
// in advance. Decode consumes a prefix of the input buffer and returns the
// unconsumed suffix, so encodings can be chained back to back.
//
// # Usage
//
//	packet, err := codec.NewRecord(codec.RecordConfig{
//	    Name: "Packet",
//	    Fields: []codec.Field{
//	        {Name: "id", Type: codec.Uint32},
//	        {Name: "tag", Type: codec.NewText(6)},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	buf, err := packet.Encode(map[string]any{"id": 7, "tag": "hi"})
//	if err != nil {
//	    return err
//	}
//
//	v, rest, err := packet.Decode(buf)
//
// # Error Handling
//
// Low-level failures are a closed set of sentinel errors (ErrOutOfRange,
// ErrTruncated, ErrValueTooLarge, ErrSequenceTooLong, ErrUnsupportedType,
// ErrNotFixedSize) matched with errors.Is. Arrays and records wrap them in
// ElementError, FieldError, and ConstructionError carrying the failing
// index, field name, and record type; the original cause is always
// preserved for errors.As and errors.Is. No partial results are returned on
// failure.
//
// # Thread Safety
//
// No encode or decode call mutates descriptor state or retains state across
// calls. All descriptors are safe for concurrent use without
// synchronization. Input buffers are never modified; decode returns
// sub-slices of the original buffer.
package codec
