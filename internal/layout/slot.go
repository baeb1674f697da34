package layout

import (
	"math"

	"github.com/x448/float16"
)

// slotKind enumerates the native cell shapes a compiled layout is flattened
// into. The slot layer is the only code that touches raw bytes; everything
// above it moves typed attribute values.
type slotKind uint8

const (
	slotBool slotKind = iota
	slotU8
	slotU16
	slotU32
	slotU64
	slotI8
	slotI16
	slotI32
	slotI64
	slotF16
	slotF32
	slotF64
	slotBytes
)

func (k slotKind) String() string {
	switch k {
	case slotBool:
		return "bool"
	case slotU8:
		return "u8"
	case slotU16:
		return "u16"
	case slotU32:
		return "u32"
	case slotU64:
		return "u64"
	case slotI8:
		return "i8"
	case slotI16:
		return "i16"
	case slotI32:
		return "i32"
	case slotI64:
		return "i64"
	case slotF16:
		return "f16"
	case slotF32:
		return "f32"
	case slotF64:
		return "f64"
	case slotBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// slot is one fixed-width native cell. size only varies for slotBytes.
type slot struct {
	kind slotKind
	size int
}

// pack writes v into dst, which must be exactly s.size bytes and zeroed.
// Values must arrive as the slot's exact native type; there is no implicit
// numeric conversion anywhere in the codec.
func (s slot) pack(dst []byte, v any, order ByteOrder) error {
	switch s.kind {
	case slotBool:
		b, ok := v.(bool)
		if !ok {
			return s.typeError(v)
		}
		if b {
			dst[0] = 1
		}
	case slotU8:
		u, ok := v.(uint8)
		if !ok {
			return s.typeError(v)
		}
		dst[0] = u
	case slotI8:
		i, ok := v.(int8)
		if !ok {
			return s.typeError(v)
		}
		dst[0] = byte(i)
	case slotU16:
		u, ok := v.(uint16)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint16(dst, u)
	case slotI16:
		i, ok := v.(int16)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint16(dst, uint16(i))
	case slotU32:
		u, ok := v.(uint32)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint32(dst, u)
	case slotI32:
		i, ok := v.(int32)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint32(dst, uint32(i))
	case slotU64:
		u, ok := v.(uint64)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint64(dst, u)
	case slotI64:
		i, ok := v.(int64)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint64(dst, uint64(i))
	case slotF16:
		f, ok := v.(float32)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint16(dst, float16.Fromfloat32(f).Bits())
	case slotF32:
		f, ok := v.(float32)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint32(dst, math.Float32bits(f))
	case slotF64:
		f, ok := v.(float64)
		if !ok {
			return s.typeError(v)
		}
		order.native().PutUint64(dst, math.Float64bits(f))
	case slotBytes:
		b, ok := v.([]byte)
		if !ok {
			return s.typeError(v)
		}
		if len(b) > s.size {
			return errorf(ErrSize, "%d bytes into a %d byte cell", len(b), s.size)
		}
		// Short input is zero padded on the right; dst arrives zeroed.
		copy(dst, b)
	default:
		return errorf(ErrContract, "unknown slot kind %d", s.kind)
	}
	return nil
}

// unpack reads one native value out of src, which is exactly s.size bytes.
func (s slot) unpack(src []byte, order ByteOrder) (any, error) {
	switch s.kind {
	case slotBool:
		switch src[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			// Strict 0/1 decode surfaces corruption early.
			return nil, errorf(ErrValue, "invalid bool byte 0x%02x", src[0])
		}
	case slotU8:
		return src[0], nil
	case slotI8:
		return int8(src[0]), nil
	case slotU16:
		return order.native().Uint16(src), nil
	case slotI16:
		return int16(order.native().Uint16(src)), nil
	case slotU32:
		return order.native().Uint32(src), nil
	case slotI32:
		return int32(order.native().Uint32(src)), nil
	case slotU64:
		return order.native().Uint64(src), nil
	case slotI64:
		return int64(order.native().Uint64(src)), nil
	case slotF16:
		return float16.Frombits(order.native().Uint16(src)).Float32(), nil
	case slotF32:
		return math.Float32frombits(order.native().Uint32(src)), nil
	case slotF64:
		return math.Float64frombits(order.native().Uint64(src)), nil
	case slotBytes:
		out := make([]byte, s.size)
		copy(out, src)
		return out, nil
	default:
		return nil, errorf(ErrContract, "unknown slot kind %d", s.kind)
	}
}

func (s slot) typeError(v any) error {
	return errorf(ErrValue, "%s slot packed with %T", s.kind, v)
}

// packSlots packs one native value per slot into a fresh buffer. The caller
// guarantees len(vals) == len(slots).
func packSlots(slots []slot, vals []any, order ByteOrder, size int) ([]byte, error) {
	buf := make([]byte, size)
	off := 0
	for i, s := range slots {
		if err := s.pack(buf[off:off+s.size], vals[i], order); err != nil {
			return nil, err
		}
		off += s.size
	}
	return buf, nil
}

// unpackSlots splits data into one native value per slot. The caller
// guarantees len(data) equals the summed slot sizes.
func unpackSlots(slots []slot, data []byte, order ByteOrder) ([]any, error) {
	vals := make([]any, len(slots))
	off := 0
	for i, s := range slots {
		v, err := s.unpack(data[off:off+s.size], order)
		if err != nil {
			return nil, err
		}
		vals[i] = v
		off += s.size
	}
	return vals, nil
}
