package layout

import (
	"math/big"
	"unicode/utf8"
)

// Custom builds an Encoding for a type the resolver cannot introspect: the
// caller declares the fixed field encodings and supplies the decode/encode
// pair that maps between the attribute stream and the target value. The
// runtime codec holds the pair to the stream contract (exact count, field
// order) on every call.
func Custom(fields []*Encoding, dec DecodeFunc, enc EncodeFunc) (*Encoding, error) {
	if len(fields) == 0 {
		return nil, errorf(ErrSchema, "custom encoding needs at least one field")
	}
	if dec == nil || enc == nil {
		return nil, errorf(ErrSchema, "custom encoding needs both decode and encode functions")
	}
	size := 0
	var slots []slot
	for _, f := range fields {
		if f == nil {
			return nil, errorf(ErrSchema, "custom encoding has a nil field")
		}
		size += f.size
		slots = append(slots, f.slots...)
	}
	return &Encoding{size: size, slots: slots, dec: dec, enc: enc}, nil
}

// primitive returns the shared Encoding for a primitive kind.
func primitive(k Kind) (*Encoding, error) {
	if int(k) < len(primitives) && primitives[k] != nil {
		return primitives[k], nil
	}
	return nil, errorf(ErrSchema, "unknown primitive kind %d", uint8(k))
}

// primitives is populated once at startup; entries are never mutated after.
var primitives = buildPrimitives()

func buildPrimitives() []*Encoding {
	table := make([]*Encoding, F64+1)
	native := func(k Kind, sk slotKind) {
		table[k] = &Encoding{
			size:   k.Size(),
			slots:  []slot{{kind: sk, size: k.Size()}},
			dec:    rawDecode,
			enc:    rawEncode,
			native: true,
			format: k.formatCode(),
		}
	}
	native(Bool, slotBool)
	native(U8, slotU8)
	native(U16, slotU16)
	native(U32, slotU32)
	native(U64, slotU64)
	native(I8, slotI8)
	native(I16, slotI16)
	native(I32, slotI32)
	native(I64, slotI64)
	native(F16, slotF16)
	native(F32, slotF32)
	native(F64, slotF64)

	wide := func(k Kind) {
		size := k.Size()
		signed := k.signed()
		table[k] = &Encoding{
			size:  size,
			slots: []slot{{kind: slotBytes, size: size}},
			dec: func(vals *Values, order ByteOrder) (any, error) {
				v, err := vals.Next()
				if err != nil {
					return nil, err
				}
				return bytesToBig(v.([]byte), signed, order), nil
			},
			enc: func(v any, vals *Values, order ByteOrder) error {
				n, ok := v.(*big.Int)
				if !ok {
					return errorf(ErrValue, "%s expects *big.Int, got %T", k, v)
				}
				b, err := bigToBytes(n, size, signed, order, k)
				if err != nil {
					return err
				}
				vals.Append(b)
				return nil
			},
		}
	}
	wide(U128)
	wide(U256)
	wide(I128)
	wide(I256)
	return table
}

// i80f48Scale is 2^48: the fractional part of the 16-byte fixed-point value
// occupies the low 48 bits.
var i80f48Scale = new(big.Int).Lsh(big.NewInt(1), 48)

// I80F48 is the 16-byte signed fixed-point decimal encoding. Values are
// *big.Rat; the fractional part is truncated towards zero at 2^-48.
var I80F48 = &Encoding{
	size:  16,
	slots: []slot{{kind: slotBytes, size: 16}},
	dec: func(vals *Values, order ByteOrder) (any, error) {
		v, err := vals.Next()
		if err != nil {
			return nil, err
		}
		raw := bytesToBig(v.([]byte), true, order)
		return new(big.Rat).SetFrac(raw, i80f48Scale), nil
	},
	enc: func(v any, vals *Values, order ByteOrder) error {
		r, ok := v.(*big.Rat)
		if !ok {
			return errorf(ErrValue, "i80f48 expects *big.Rat, got %T", v)
		}
		scaled := new(big.Int).Mul(r.Num(), i80f48Scale)
		scaled.Quo(scaled, r.Denom())
		b, err := bigToBytes(scaled, 16, true, order, I128)
		if err != nil {
			return err
		}
		vals.Append(b)
		return nil
	},
}

// blobEncoding builds the exact-length raw bytes encoding. Unlike text, a
// blob is never padded: the input length must match exactly.
func blobEncoding(size int) (*Encoding, error) {
	if size <= 0 {
		return nil, errorf(ErrSchema, "blob size must be positive, got %d", size)
	}
	return &Encoding{
		size:  size,
		slots: []slot{{kind: slotBytes, size: size}},
		dec:   rawDecode,
		enc: func(v any, vals *Values, _ ByteOrder) error {
			b, ok := v.([]byte)
			if !ok {
				return errorf(ErrValue, "blob expects []byte, got %T", v)
			}
			if len(b) != size {
				return errorf(ErrSize, "blob of %d bytes, want exactly %d", len(b), size)
			}
			vals.Append(b)
			return nil
		},
		native: true,
		format: blobFormatCode(size),
	}, nil
}

// textEncoding builds the fixed-size UTF-8 encoding: shorter strings are
// zero padded on the right, longer ones fail. Decoding strips trailing zero
// bytes before validating UTF-8.
func textEncoding(size int) (*Encoding, error) {
	if size <= 0 {
		return nil, errorf(ErrSchema, "text size must be positive, got %d", size)
	}
	return &Encoding{
		size:  size,
		slots: []slot{{kind: slotBytes, size: size}},
		dec: func(vals *Values, _ ByteOrder) (any, error) {
			v, err := vals.Next()
			if err != nil {
				return nil, err
			}
			b := v.([]byte)
			end := len(b)
			for end > 0 && b[end-1] == 0 {
				end--
			}
			if !utf8.Valid(b[:end]) {
				return nil, errorf(ErrEncoding, "text field holds invalid utf-8")
			}
			return string(b[:end]), nil
		},
		enc: func(v any, vals *Values, _ ByteOrder) error {
			s, ok := v.(string)
			if !ok {
				return errorf(ErrValue, "text expects string, got %T", v)
			}
			if !utf8.ValidString(s) {
				return errorf(ErrEncoding, "string is not valid utf-8")
			}
			if len(s) > size {
				return errorf(ErrSize, "string of %d bytes into text field of %d", len(s), size)
			}
			vals.Append([]byte(s))
			return nil
		},
	}, nil
}

// bigToBytes converts n into its size-byte two's-complement representation
// at the given order, failing with a range error when it does not fit.
func bigToBytes(n *big.Int, size int, signed bool, order ByteOrder, k Kind) ([]byte, error) {
	bits := uint(size * 8)
	if signed {
		min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits-1))
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits-1), big.NewInt(1))
		if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
			return nil, errorf(ErrRange, "%v does not fit %s", n, k)
		}
	} else {
		if n.Sign() < 0 {
			return nil, errorf(ErrRange, "negative value %v into unsigned %s", n, k)
		}
		if n.BitLen() > int(bits) {
			return nil, errorf(ErrRange, "%v does not fit %s", n, k)
		}
	}
	twos := n
	if n.Sign() < 0 {
		// Two's complement: n mod 2^bits.
		twos = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), bits), n)
	}
	out := make([]byte, size)
	twos.FillBytes(out)
	if order == LittleEndian {
		reverseBytes(out)
	}
	return out, nil
}

// bytesToBig reads a size-byte two's-complement value at the given order.
func bytesToBig(b []byte, signed bool, order ByteOrder) *big.Int {
	be := b
	if order == LittleEndian {
		be = make([]byte, len(b))
		copy(be, b)
		reverseBytes(be)
	}
	n := new(big.Int).SetBytes(be)
	if signed && len(be) > 0 && be[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(be)*8)))
	}
	return n
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
