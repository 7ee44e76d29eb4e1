package codec

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, cfg RecordConfig) *Record {
	t.Helper()
	r, err := NewRecord(cfg)
	require.NoError(t, err)
	return r
}

func TestRecord_EncodeDecodeRoundTrip(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "x", Type: Uint16},
			{Name: "y", Type: NewText(5)},
		},
	})

	buf, err := foo.Encode(map[string]any{"x": 16, "y": "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte("\x10\x00hello"), buf)

	v, rest, err := foo.Decode(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, map[string]any{"x": uint16(16), "y": "hello"}, v)
}

func TestRecord_FixedSize(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "x", Type: Uint16},
			{Name: "y", Type: NewText(5)},
			{Name: "z", Type: Bool},
		},
	})

	assert.True(t, foo.Fixed())
	assert.Equal(t, 8, foo.Size())

	size, ok := FixedSizeOf(foo)
	assert.True(t, ok)
	assert.Equal(t, 8, size)

	// Size is value-independent: every valid instance encodes to Size()
	// bytes.
	for _, m := range []map[string]any{
		{"x": 781, "y": "hi", "z": true},
		{"x": 1, "y": "h", "z": false},
	} {
		buf, err := foo.Encode(m)
		require.NoError(t, err)
		assert.Len(t, buf, foo.Size())
	}
}

func TestRecord_NotFixedWithVariableField(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "a", Type: Uint8},
			{Name: "b", Type: variableCodec{}},
		},
	})

	assert.False(t, foo.Fixed())
	_, ok := FixedSizeOf(foo)
	assert.False(t, ok)
}

func TestRecord_ArrayOfRecords(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "x", Type: Bool},
			{Name: "y", Type: Int32},
		},
	})
	require.True(t, foo.Fixed())
	require.Equal(t, 5, foo.Size())

	arr, err := NewArray(foo, 3)
	require.NoError(t, err)
	assert.Equal(t, 15, arr.Size())

	input := []any{
		map[string]any{"x": true, "y": 17},
		map[string]any{"x": false, "y": -123},
		map[string]any{"x": true, "y": 9999},
	}

	buf, err := arr.Encode(input)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x01\x11\x00\x00\x00\x00\x85\xff\xff\xff\x01\x0f\x27\x00\x00"), buf)

	v, rest, err := arr.Decode(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, []any{
		map[string]any{"x": true, "y": int32(17)},
		map[string]any{"x": false, "y": int32(-123)},
		map[string]any{"x": true, "y": int32(9999)},
	}, v)
}

func TestRecord_NestedRecord(t *testing.T) {
	header := mustRecord(t, RecordConfig{
		Name: "Header",
		Fields: []Field{
			{Name: "version", Type: Uint8},
			{Name: "flags", Type: Uint8},
		},
	})
	packet := mustRecord(t, RecordConfig{
		Name: "Packet",
		Fields: []Field{
			{Name: "header", Type: header},
			{Name: "id", Type: Uint16},
		},
	})

	require.True(t, packet.Fixed())
	assert.Equal(t, 4, packet.Size())

	buf, err := packet.Encode(map[string]any{
		"header": map[string]any{"version": 2, "flags": 0x80},
		"id":     513,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x80, 0x01, 0x02}, buf)

	v, _, err := packet.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"header": map[string]any{"version": uint8(2), "flags": uint8(0x80)},
		"id":     uint16(513),
	}, v)
}

func TestRecord_FieldOrderDefinesLayout(t *testing.T) {
	ab := mustRecord(t, RecordConfig{
		Name: "AB",
		Fields: []Field{
			{Name: "a", Type: Uint8},
			{Name: "b", Type: Uint8},
		},
	})
	ba := mustRecord(t, RecordConfig{
		Name: "BA",
		Fields: []Field{
			{Name: "b", Type: Uint8},
			{Name: "a", Type: Uint8},
		},
	})

	m := map[string]any{"a": 1, "b": 2}

	abBuf, err := ab.Encode(m)
	require.NoError(t, err)
	baBuf, err := ba.Encode(m)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 2}, abBuf)
	assert.Equal(t, []byte{2, 1}, baBuf)
}

func TestRecord_UnboundFieldSkipped(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "a", Type: Uint8},
			{Name: "ignored", Type: nil},
			{Name: "b", Type: Uint8},
		},
	})

	assert.Equal(t, 2, foo.Size())

	// The unbound field needs no value on encode and produces none on
	// decode.
	buf, err := foo.Encode(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, buf)

	v, _, err := foo.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": uint8(1), "b": uint8(2)}, v)
}

func TestNewRecord_Validation(t *testing.T) {
	_, err := NewRecord(RecordConfig{
		Name: "Dup",
		Fields: []Field{
			{Name: "x", Type: Uint8},
			{Name: "x", Type: Uint16},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field")

	_, err = NewRecord(RecordConfig{
		Name:   "Anon",
		Fields: []Field{{Name: "", Type: Uint8}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")
}

func TestRecord_FieldEncodeError(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "a", Type: Uint8},
			{Name: "b", Type: Uint8},
		},
	})

	// Out-of-range value surfaces as a FieldError naming the field, with
	// the range failure preserved underneath.
	_, err := foo.Encode(map[string]any{"a": 1, "b": 300})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "encode", fieldErr.Op)
	assert.Equal(t, "Foo", fieldErr.Record)
	assert.Equal(t, "b", fieldErr.Field)
	assert.Equal(t, "uint8", fieldErr.Type)

	// Missing value is also reported against the field.
	_, err = foo.Encode(map[string]any{"a": 1})
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "b", fieldErr.Field)
}

func TestRecord_FieldDecodeError(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "a", Type: Uint16},
			{Name: "b", Type: Uint32},
		},
	})

	_, _, err := foo.Decode([]byte{1, 0, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "decode", fieldErr.Op)
	assert.Equal(t, "b", fieldErr.Field)
	assert.Equal(t, "uint32", fieldErr.Type)
}

type rejectingBinder struct{ err error }

func (b rejectingBinder) Field(instance any, name string) (any, error) {
	return MapBinder{}.Field(instance, name)
}

func (b rejectingBinder) New(values map[string]any) (any, error) { return nil, b.err }

func TestRecord_ConstructionError(t *testing.T) {
	cause := errors.New("x must be positive")
	foo := mustRecord(t, RecordConfig{
		Name:   "Foo",
		Fields: []Field{{Name: "x", Type: Uint8}},
		Binder: rejectingBinder{err: cause},
	})

	_, _, err := foo.Decode([]byte{7})
	require.Error(t, err)

	var consErr *ConstructionError
	require.ErrorAs(t, err, &consErr)
	assert.Equal(t, "Foo", consErr.Record)
	assert.ErrorIs(t, err, cause)
}

func TestRecord_RemainderReturned(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name:   "Foo",
		Fields: []Field{{Name: "x", Type: Uint16}},
	})

	v, rest, err := foo.Decode([]byte{0x10, 0x00, 0xDE, 0xAD})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": uint16(16)}, v)
	assert.Equal(t, []byte{0xDE, 0xAD}, rest)
}

func TestRecord_ConcurrentUse(t *testing.T) {
	foo := mustRecord(t, RecordConfig{
		Name: "Foo",
		Fields: []Field{
			{Name: "x", Type: Uint16},
			{Name: "y", Type: NewText(5)},
		},
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf, err := foo.Encode(map[string]any{"x": x, "y": "hello"})
				if err != nil {
					t.Errorf("encode: %v", err)
					return
				}
				v, _, err := foo.Decode(buf)
				if err != nil {
					t.Errorf("decode: %v", err)
					return
				}
				if got := v.(map[string]any)["x"]; got != uint16(x) {
					t.Errorf("got %v, want %d", got, x)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
