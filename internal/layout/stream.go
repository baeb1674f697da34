package layout

import (
	"io"
)

// Read consumes exactly Size() bytes from r and decodes one value. A short
// read, including immediate EOF, fails with an end-of-stream error.
func (e *Encoding) Read(r io.Reader, order ByteOrder) (any, error) {
	buf := make([]byte, e.size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errorf(ErrEndOfStream, "reading %d byte record: %v", e.size, err)
	}
	return e.Decode(buf, order)
}

// Write encodes v and appends exactly Size() bytes to w. Nothing is written
// when encoding fails.
func (e *Encoding) Write(v any, w io.Writer, order ByteOrder) error {
	data, err := e.Encode(v, order)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteMany encodes and writes each value in order.
func (e *Encoding) WriteMany(vs []any, w io.Writer, order ByteOrder) error {
	for _, v := range vs {
		if err := e.Write(v, w, order); err != nil {
			return err
		}
	}
	return nil
}

// ReadMany returns a cursor that pulls exactly count fixed-size records
// from r, one record per Next call, blocking on the stream's own read
// semantics. The cursor stops after count records, or fails with an
// end-of-stream error if r is exhausted early. Outer protocols with a
// dynamic record count (header-then-records framings) layer on top of this
// without the codec knowing about framing.
func (e *Encoding) ReadMany(r io.Reader, count int, order ByteOrder) *Cursor {
	c := &Cursor{
		enc:       e,
		r:         r,
		order:     order,
		remaining: count,
		buf:       make([]byte, e.size),
	}
	if count < 0 {
		c.err = errorf(ErrValue, "negative record count %d", count)
		c.remaining = 0
	}
	return c
}

// DecodeAll returns a cursor over back-to-back records packed in data. The
// buffer length must be an exact multiple of Size(); a partial trailing
// record is an error up front, not at the end of iteration.
func (e *Encoding) DecodeAll(data []byte, order ByteOrder) (*Cursor, error) {
	if e.size == 0 || len(data)%e.size != 0 {
		return nil, errorf(ErrSizeMismatch, "%d bytes is not a whole number of %d byte records",
			len(data), e.size)
	}
	return &Cursor{
		enc:       e,
		data:      data,
		order:     order,
		remaining: len(data) / e.size,
	}, nil
}

// Cursor is a single-pass iterator over a finite run of fixed-size records.
// Records are decoded one at a time on Next; iteration stops at the first
// error, which Err reports after Next returns false.
type Cursor struct {
	enc       *Encoding
	order     ByteOrder
	remaining int

	r   io.Reader // stream source, nil when iterating a buffer
	buf []byte

	data []byte // buffer source
	off  int

	cur any
	err error
}

// Next advances to the next record. It returns false when the run is
// complete or a record failed to read or decode.
func (c *Cursor) Next() bool {
	if c.err != nil || c.remaining == 0 {
		return false
	}
	var record []byte
	if c.r != nil {
		if _, err := io.ReadFull(c.r, c.buf); err != nil {
			c.err = errorf(ErrEndOfStream, "%d records short: %v", c.remaining, err)
			return false
		}
		record = c.buf
	} else {
		record = c.data[c.off : c.off+c.enc.size]
		c.off += c.enc.size
	}
	v, err := c.enc.Decode(record, c.order)
	if err != nil {
		c.err = err
		return false
	}
	c.cur = v
	c.remaining--
	return true
}

// Value returns the record decoded by the latest successful Next.
func (c *Cursor) Value() any {
	return c.cur
}

// Err returns the error that stopped iteration, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Collect drains the cursor into a slice.
func (c *Cursor) Collect() ([]any, error) {
	var out []any
	for c.Next() {
		out = append(out, c.Value())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
