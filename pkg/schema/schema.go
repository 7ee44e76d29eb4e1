package schema

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/ssargent/fixedwire/pkg/codec"
)

// cache maps reflect.Type to its derived *codec.Record. Derivation is pure,
// so a duplicate build during a race is harmless.
var cache sync.Map

// For derives a record descriptor from the exported fields of a struct (or
// pointer to struct), in declaration order. Results are cached per type.
func For(v any) (*codec.Record, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %T is not a struct", v)
	}
	return recordOf(t)
}

func recordOf(t reflect.Type) (*codec.Record, error) {
	if r, ok := cache.Load(t); ok {
		return r.(*codec.Record), nil
	}
	r, err := build(t)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(t, r)
	return actual.(*codec.Record), nil
}

func build(t reflect.Type) (*codec.Record, error) {
	fields := make([]codec.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("fixed")
		if tag == "-" {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s.%s: %w", t.Name(), sf.Name, err)
		}
		ft, err := typeFor(sf.Type, opts)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s.%s: %w", t.Name(), sf.Name, err)
		}
		fields = append(fields, codec.Field{Name: sf.Name, Type: ft})
	}

	return codec.NewRecord(codec.RecordConfig{
		Name:   t.Name(),
		Fields: fields,
		Binder: &structBinder{typ: t},
	})
}

// tagOptions are the knobs a `fixed` tag can turn. Anything structural
// (width, signedness, element type) comes from the Go type instead.
type tagOptions struct {
	order binary.ByteOrder // nil means little-endian
	size  int              // text byte width, strings only
	count int              // element count, slices only
}

func parseTag(tag string) (tagOptions, error) {
	opts := tagOptions{size: -1, count: -1}
	if tag == "" {
		return opts, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case part == "be":
			opts.order = binary.BigEndian
		case part == "le":
			opts.order = binary.LittleEndian
		case strings.HasPrefix(part, "size="):
			n, err := strconv.Atoi(part[len("size="):])
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("invalid size option %q", part)
			}
			opts.size = n
		case strings.HasPrefix(part, "len="):
			n, err := strconv.Atoi(part[len("len="):])
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("invalid len option %q", part)
			}
			opts.count = n
		default:
			return opts, fmt.Errorf("unknown tag option %q", part)
		}
	}
	return opts, nil
}

func typeFor(t reflect.Type, opts tagOptions) (codec.Codec, error) {
	order := opts.order
	if order == nil {
		order = binary.LittleEndian
	}

	switch t.Kind() {
	case reflect.Bool:
		return codec.NewBool(), nil
	case reflect.Uint8:
		return codec.NewUint8(order), nil
	case reflect.Int8:
		return codec.NewInt8(order), nil
	case reflect.Uint16:
		return codec.NewUint16(order), nil
	case reflect.Int16:
		return codec.NewInt16(order), nil
	case reflect.Uint32:
		return codec.NewUint32(order), nil
	case reflect.Int32:
		return codec.NewInt32(order), nil
	case reflect.Uint64:
		return codec.NewUint64(order), nil
	case reflect.Int64:
		return codec.NewInt64(order), nil
	case reflect.Int, reflect.Uint:
		return nil, fmt.Errorf("%s has a platform-dependent width; use a sized integer type", t.Kind())
	case reflect.String:
		if opts.size <= 0 {
			return nil, fmt.Errorf("string field needs a size=N tag")
		}
		return codec.NewText(opts.size), nil
	case reflect.Array:
		elem, err := typeFor(t.Elem(), tagOptions{order: opts.order, size: opts.size, count: -1})
		if err != nil {
			return nil, err
		}
		return codec.NewArray(elem, t.Len())
	case reflect.Slice:
		if opts.count <= 0 {
			return nil, fmt.Errorf("slice field needs a len=N tag")
		}
		elem, err := typeFor(t.Elem(), tagOptions{order: opts.order, size: opts.size, count: -1})
		if err != nil {
			return nil, err
		}
		return codec.NewArray(elem, opts.count)
	case reflect.Struct:
		return recordOf(t)
	}
	return nil, fmt.Errorf("unsupported field type %s", t)
}

// structBinder reads and constructs instances of one struct type.
type structBinder struct {
	typ reflect.Type
}

func (b *structBinder) Field(instance any, name string) (any, error) {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("nil *%s", b.typ)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != b.typ {
		return nil, fmt.Errorf("expected %s, got %T", b.typ, instance)
	}
	return rv.FieldByName(name).Interface(), nil
}

func (b *structBinder) New(values map[string]any) (any, error) {
	inst := reflect.New(b.typ).Elem()
	for name, val := range values {
		f := inst.FieldByName(name)
		if !f.IsValid() {
			return nil, fmt.Errorf("no field %q on %s", name, b.typ)
		}
		if err := assign(f, val); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}
	return inst.Interface(), nil
}

// assign stores a decoded value into a struct field, unrolling []any into
// array and slice fields and allowing numeric conversion into named types.
func assign(dst reflect.Value, val any) error {
	if val == nil {
		return nil
	}

	if vals, ok := val.([]any); ok && (dst.Kind() == reflect.Slice || dst.Kind() == reflect.Array) {
		if dst.Kind() == reflect.Slice {
			dst.Set(reflect.MakeSlice(dst.Type(), len(vals), len(vals)))
		} else if len(vals) > dst.Len() {
			return fmt.Errorf("%d elements exceed array length %d", len(vals), dst.Len())
		}
		for i, ev := range vals {
			if err := assign(dst.Index(i), ev); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	}

	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	if isNumeric(rv.Kind()) && isNumeric(dst.Kind()) && rv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", val, dst.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
