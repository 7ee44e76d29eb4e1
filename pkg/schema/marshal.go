package schema

import (
	"fmt"
	"reflect"
)

// Marshal encodes a struct (or pointer to struct) into its fixed-width wire
// form, deriving and caching the record descriptor on first use.
func Marshal(v any) ([]byte, error) {
	r, err := For(v)
	if err != nil {
		return nil, err
	}
	return r.Encode(v)
}

// Unmarshal decodes the leading bytes of data into the struct pointed to by
// v. Bytes beyond the record's width are left untouched; callers that need
// the remainder decode through the record descriptor directly.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("schema: Unmarshal target must be a non-nil pointer, got %T", v)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("schema: Unmarshal target must point to a struct, got %T", v)
	}

	r, err := recordOf(elem.Type())
	if err != nil {
		return err
	}
	inst, _, err := r.Decode(data)
	if err != nil {
		return err
	}
	elem.Set(reflect.ValueOf(inst))
	return nil
}
