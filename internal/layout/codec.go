package layout

import (
	"io"
)

// Codec binds an Encoding to a concrete Go type, trading the any-valued
// core API for typed entry points. The zero-cost wrapper only asserts the
// decoded dynamic type; all layout work stays in the Encoding.
//
//	enc := layout.MustDerive(pointDesc)
//	points := layout.As[Point](enc)
//	data, _ := points.Encode(Point{X: 1, Y: 2}, layout.LittleEndian)
type Codec[T any] struct {
	enc *Encoding
}

// As wraps an Encoding whose decode function produces values of type T.
func As[T any](e *Encoding) Codec[T] {
	return Codec[T]{enc: e}
}

// Encoding returns the underlying compiled plan.
func (c Codec[T]) Encoding() *Encoding {
	return c.enc
}

// Size reports the fixed encoded byte length.
func (c Codec[T]) Size() int {
	return c.enc.Size()
}

// Encode packs v at the given byte order.
func (c Codec[T]) Encode(v T, order ByteOrder) ([]byte, error) {
	return c.enc.Encode(v, order)
}

// Decode unpacks a value of type T from data.
func (c Codec[T]) Decode(data []byte, order ByteOrder) (T, error) {
	var zero T
	v, err := c.enc.Decode(data, order)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errorf(ErrValue, "encoding decodes to %T, codec wants %T", v, zero)
	}
	return t, nil
}

// Read decodes one record from r.
func (c Codec[T]) Read(r io.Reader, order ByteOrder) (T, error) {
	var zero T
	v, err := c.enc.Read(r, order)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errorf(ErrValue, "encoding decodes to %T, codec wants %T", v, zero)
	}
	return t, nil
}

// Write encodes v and appends it to w.
func (c Codec[T]) Write(v T, w io.Writer, order ByteOrder) error {
	return c.enc.Write(v, w, order)
}

// ReadMany decodes exactly count records from r. Count errors surface from
// the cursor, the same as the untyped entry point.
func (c Codec[T]) ReadMany(r io.Reader, count int, order ByteOrder) ([]T, error) {
	cur := c.enc.ReadMany(r, count, order)
	var out []T
	for cur.Next() {
		t, ok := cur.Value().(T)
		if !ok {
			var zero T
			return nil, errorf(ErrValue, "encoding decodes to %T, codec wants %T", cur.Value(), zero)
		}
		out = append(out, t)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteMany encodes and writes each value in order.
func (c Codec[T]) WriteMany(vs []T, w io.Writer, order ByteOrder) error {
	for _, v := range vs {
		if err := c.enc.Write(v, w, order); err != nil {
			return err
		}
	}
	return nil
}
