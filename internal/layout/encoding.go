package layout

// DecodeFunc consumes exactly the encoding's declared number of native
// values from the attribute stream, in field order, and returns the
// constructed value.
type DecodeFunc func(vals *Values, order ByteOrder) (any, error)

// EncodeFunc appends exactly the encoding's declared number of native
// values to the attribute stream, in field order.
type EncodeFunc func(v any, vals *Values, order ByteOrder) error

// Encoding is the compiled, immutable plan for one type: its exact byte
// size, the flat native slot layout, and the attribute codec pair. It is
// built once by the resolver and is safe for concurrent use afterwards.
type Encoding struct {
	size   int
	slots  []slot
	dec    DecodeFunc
	enc    EncodeFunc
	native bool   // raw passthrough codec over natively packable slots
	format string // concatenated native format codes; "" when !native
}

// A prebuilt Encoding is its own Descriptor and resolves to itself.
func (*Encoding) isDescriptor() {}

// Size reports the exact encoded byte length, fixed at derivation.
func (e *Encoding) Size() int {
	return e.size
}

// arity reports the native slot count of this encoding, which is the number
// of attribute values its codec pair must consume and produce.
func (e *Encoding) arity() int {
	return len(e.slots)
}

// Encode packs v into a fresh buffer of exactly Size() bytes. On failure no
// partial output is returned.
func (e *Encoding) Encode(v any, order ByteOrder) ([]byte, error) {
	vals := newValues(e.arity())
	if err := e.encodeChecked(v, vals, order); err != nil {
		return nil, err
	}
	return packSlots(e.slots, vals.vals, order, e.size)
}

// Decode unpacks a value from data, whose length must equal Size() exactly;
// both shorter and longer buffers fail, so misframed input is never
// silently accepted.
func (e *Encoding) Decode(data []byte, order ByteOrder) (any, error) {
	if len(data) != e.size {
		return nil, errorf(ErrSizeMismatch, "got %d bytes, layout is %d", len(data), e.size)
	}
	natives, err := unpackSlots(e.slots, data, order)
	if err != nil {
		return nil, err
	}
	return e.decodeChecked(&Values{vals: natives}, order)
}

// decodeChecked runs the decode function and verifies it consumed exactly
// the declared attribute count.
func (e *Encoding) decodeChecked(vals *Values, order ByteOrder) (any, error) {
	before := vals.consumed()
	v, err := e.dec(vals, order)
	if err != nil {
		return nil, err
	}
	if got := vals.consumed() - before; got != e.arity() {
		return nil, errorf(ErrContract, "decoder consumed %d of %d attributes", got, e.arity())
	}
	return v, nil
}

// encodeChecked runs the encode function and verifies it appended exactly
// the declared attribute count.
func (e *Encoding) encodeChecked(v any, vals *Values, order ByteOrder) error {
	before := vals.Len()
	if err := e.enc(v, vals, order); err != nil {
		return err
	}
	if got := vals.Len() - before; got != e.arity() {
		return errorf(ErrContract, "encoder produced %d of %d attributes", got, e.arity())
	}
	return nil
}

// rawDecode and rawEncode are the passthrough codec used by natively
// packable primitives: the slot value is the attribute value.
func rawDecode(vals *Values, _ ByteOrder) (any, error) {
	return vals.Next()
}

func rawEncode(v any, vals *Values, _ ByteOrder) error {
	vals.Append(v)
	return nil
}
