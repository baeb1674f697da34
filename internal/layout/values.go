package layout

// Values is the ordered, single-pass attribute stream threaded between an
// Encoding's field plan and its decode/encode functions. On the decode side
// it is pre-filled with native values in field order and the codec must
// consume exactly its declared count via Next. On the encode side it starts
// empty and the codec must Append exactly that count, in the same order.
// The runtime codec verifies both counts after every call; a mismatch is a
// contract violation, never a silent truncation.
type Values struct {
	vals []any
	pos  int
}

func newValues(capacity int) *Values {
	return &Values{vals: make([]any, 0, capacity)}
}

// Next consumes and returns the next attribute value.
func (v *Values) Next() (any, error) {
	if v.pos >= len(v.vals) {
		return nil, errorf(ErrContract, "attribute stream exhausted after %d values", v.pos)
	}
	val := v.vals[v.pos]
	v.pos++
	return val, nil
}

// Append adds one attribute value to the stream.
func (v *Values) Append(val any) {
	v.vals = append(v.vals, val)
}

// Len reports the number of values currently in the stream.
func (v *Values) Len() int {
	return len(v.vals)
}

// consumed reports how many values have been taken via Next.
func (v *Values) consumed() int {
	return v.pos
}
