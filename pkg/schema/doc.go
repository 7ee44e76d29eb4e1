// Package schema binds Go values to fixedwire record descriptors.
//
// It provides the two collaborators the codec engine leaves external: field
// enumeration (deriving an ordered record descriptor from a struct's
// exported fields and `fixed` tags) and instance construction (rebuilding a
// struct from decoded field values). Marshal and Unmarshal wrap both behind
// a per-type cache.
//
// Field layout is declared on the struct:
//
//	type Reading struct {
//	    Station string    `fixed:"size=8"`
//	    Channel uint8
//	    Flags   uint16    `fixed:"be"`
//	    Samples [4]uint16
//	    Debug   string    `fixed:"-"`
//	}
//
// Widths come from the Go field types; plain int and uint are rejected
// because their width is platform-dependent. Strings need a size=N tag,
// slices a len=N tag; fixed-length Go arrays take their length from the
// type, and nested structs become nested records.
//
// For tooling that has no Go struct, Parse and LoadFile build map-backed
// record descriptors from YAML schema documents.
package schema
