package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	Lo uint32
	Hi uint32
}

func spanEncoding(t *testing.T) *Encoding {
	t.Helper()
	reg := NewRegistry()
	u32, err := reg.Derive(U32)
	require.NoError(t, err)

	enc, err := Custom([]*Encoding{u32, u32},
		func(vals *Values, order ByteOrder) (any, error) {
			lo, err := vals.Next()
			if err != nil {
				return nil, err
			}
			hi, err := vals.Next()
			if err != nil {
				return nil, err
			}
			return span{Lo: lo.(uint32), Hi: hi.(uint32)}, nil
		},
		func(v any, vals *Values, order ByteOrder) error {
			s, ok := v.(span)
			if !ok {
				return errorf(ErrValue, "want span, got %T", v)
			}
			vals.Append(s.Lo)
			vals.Append(s.Hi)
			return nil
		})
	require.NoError(t, err)
	return enc
}

func TestCustomRoundTrip(t *testing.T) {
	enc := spanEncoding(t)
	require.Equal(t, 8, enc.Size())

	data, err := enc.Encode(span{Lo: 10, Hi: 20}, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 0, 0, 0, 20, 0, 0, 0}, data)

	v, err := enc.Decode(data, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, span{Lo: 10, Hi: 20}, v)
}

func TestCustomEmbedsAsStructField(t *testing.T) {
	reg := NewRegistry()
	enc, err := reg.Derive(Struct{
		Name: "Window",
		Fields: []Field{
			{Name: "id", Type: U8},
			{Name: "bounds", Type: spanEncoding(t)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 9, enc.Size())

	value := []any{uint8(3), span{Lo: 1, Hi: 2}}
	data, err := enc.Encode(value, BigEndian)
	require.NoError(t, err)
	got, err := enc.Decode(data, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestCustomSchemaErrors(t *testing.T) {
	reg := NewRegistry()
	u32, err := reg.Derive(U32)
	require.NoError(t, err)

	dec := func(vals *Values, order ByteOrder) (any, error) { return vals.Next() }
	enc := func(v any, vals *Values, order ByteOrder) error { vals.Append(v); return nil }

	_, err = Custom(nil, dec, enc)
	assert.ErrorIs(t, err, ErrSchema)

	_, err = Custom([]*Encoding{u32}, nil, enc)
	assert.ErrorIs(t, err, ErrSchema)

	_, err = Custom([]*Encoding{u32}, dec, nil)
	assert.ErrorIs(t, err, ErrSchema)

	_, err = Custom([]*Encoding{u32, nil}, dec, enc)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestCustomDecodeMustConsumeDeclaredCount(t *testing.T) {
	reg := NewRegistry()
	u32, err := reg.Derive(U32)
	require.NoError(t, err)

	// Consumes one of two declared attributes.
	short, err := Custom([]*Encoding{u32, u32},
		func(vals *Values, order ByteOrder) (any, error) { return vals.Next() },
		func(v any, vals *Values, order ByteOrder) error {
			vals.Append(uint32(0))
			vals.Append(uint32(0))
			return nil
		})
	require.NoError(t, err)
	_, err = short.Decode(make([]byte, 8), LittleEndian)
	assert.ErrorIs(t, err, ErrContract)

	// Reads past its own declared attributes.
	greedy, err := Custom([]*Encoding{u32},
		func(vals *Values, order ByteOrder) (any, error) {
			if _, err := vals.Next(); err != nil {
				return nil, err
			}
			return vals.Next()
		},
		func(v any, vals *Values, order ByteOrder) error {
			vals.Append(uint32(0))
			return nil
		})
	require.NoError(t, err)
	_, err = greedy.Decode(make([]byte, 4), LittleEndian)
	assert.ErrorIs(t, err, ErrContract)
}

func TestCustomEncodeMustProduceDeclaredCount(t *testing.T) {
	reg := NewRegistry()
	u32, err := reg.Derive(U32)
	require.NoError(t, err)

	dec := func(vals *Values, order ByteOrder) (any, error) { return vals.Next() }

	short, err := Custom([]*Encoding{u32, u32}, dec,
		func(v any, vals *Values, order ByteOrder) error {
			vals.Append(uint32(1))
			return nil
		})
	require.NoError(t, err)
	_, err = short.Encode(nil, LittleEndian)
	assert.ErrorIs(t, err, ErrContract)

	chatty, err := Custom([]*Encoding{u32}, dec,
		func(v any, vals *Values, order ByteOrder) error {
			vals.Append(uint32(1))
			vals.Append(uint32(2))
			return nil
		})
	require.NoError(t, err)
	_, err = chatty.Encode(nil, LittleEndian)
	assert.ErrorIs(t, err, ErrContract)
}
