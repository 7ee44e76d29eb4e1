package codec

import "fmt"

// Field binds one named record field to a descriptor. A Field with a nil
// Type is declared but unbound: it contributes no bytes to the wire format
// and is skipped by both encode and decode.
type Field struct {
	Name string
	Type Codec
}

// Binder connects a record descriptor to concrete instances. Field reads
// the current value of a named field during encode; New builds an instance
// from the decoded name-to-value mapping, covering exactly the bound
// fields.
type Binder interface {
	Field(instance any, name string) (any, error)
	New(values map[string]any) (any, error)
}

// RecordConfig holds the construction parameters for a record descriptor.
type RecordConfig struct {
	Name   string
	Fields []Field
	Binder Binder // nil selects MapBinder
}

// Record is an ordered composition of named field bindings. Field order is
// set at construction time and defines the wire order for both encode and
// decode. A record is itself a Codec, so records nest transparently inside
// other records and arrays.
type Record struct {
	name   string
	fields []Field
	binder Binder
	size   int
	fixed  bool
}

// NewRecord builds a record descriptor. Field names must be unique and
// non-empty; order is preserved as given.
func NewRecord(cfg RecordConfig) (*Record, error) {
	r := &Record{
		name:   cfg.Name,
		fields: append([]Field(nil), cfg.Fields...),
		binder: cfg.Binder,
		fixed:  true,
	}
	if r.binder == nil {
		r.binder = MapBinder{}
	}

	seen := make(map[string]struct{}, len(r.fields))
	for _, f := range r.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record %s: field with empty name", r.name)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("record %s: duplicate field %q", r.name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Type == nil {
			continue
		}
		if size, ok := FixedSizeOf(f.Type); ok {
			r.size += size
		} else {
			r.fixed = false
		}
	}
	return r, nil
}

// Name returns the record type name.
func (r *Record) Name() string { return r.name }

// Fields returns the field bindings in wire order.
func (r *Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

func (r *Record) String() string { return fmt.Sprintf("record(%s)", r.name) }

// Fixed reports whether every bound field descriptor has a fixed size.
func (r *Record) Fixed() bool { return r.fixed }

// Size returns the sum of the bound field sizes. It is meaningful only when
// Fixed reports true.
func (r *Record) Size() int { return r.size }

// Encode reads each bound field from the instance in declared order,
// delegates to the field's descriptor, and concatenates the results.
func (r *Record) Encode(v any) ([]byte, error) {
	buf := make([]byte, 0, r.size)
	for _, f := range r.fields {
		if f.Type == nil {
			continue
		}
		val, err := r.binder.Field(v, f.Name)
		if err != nil {
			return nil, &FieldError{Op: "encode", Record: r.name, Field: f.Name, Type: typeName(f.Type), Err: err}
		}
		chunk, err := f.Type.Encode(val)
		if err != nil {
			return nil, &FieldError{Op: "encode", Record: r.name, Field: f.Name, Type: typeName(f.Type), Err: err}
		}
		buf = append(buf, chunk...)
	}
	return buf, nil
}

// Decode delegates each bound field's descriptor against the current
// remainder in declared order, then hands the collected name-to-value
// mapping to the binder to construct an instance. The final remainder is
// returned alongside it.
func (r *Record) Decode(buf []byte) (any, []byte, error) {
	values := make(map[string]any, len(r.fields))
	rest := buf
	for _, f := range r.fields {
		if f.Type == nil {
			continue
		}
		val, remaining, err := f.Type.Decode(rest)
		if err != nil {
			return nil, nil, &FieldError{Op: "decode", Record: r.name, Field: f.Name, Type: typeName(f.Type), Err: err}
		}
		values[f.Name] = val
		rest = remaining
	}

	inst, err := r.binder.New(values)
	if err != nil {
		return nil, nil, &ConstructionError{Record: r.name, Err: err}
	}
	return inst, rest, nil
}

// MapBinder reads and builds record instances as map[string]any. It is the
// default binder for dynamically described records (schema files, CLI
// input).
type MapBinder struct{}

// Field returns the named entry of the instance map. A missing entry is an
// error rather than an implicit zero, so incomplete input is caught before
// it reaches the wire.
func (MapBinder) Field(instance any, name string) (any, error) {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected map[string]any, got %T: %w", instance, ErrUnsupportedType)
	}
	v, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("missing value for field %q", name)
	}
	return v, nil
}

// New returns the decoded mapping unchanged.
func (MapBinder) New(values map[string]any) (any, error) { return values, nil }
