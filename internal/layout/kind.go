package layout

import (
	"encoding/binary"
)

// ByteOrder selects the wire endianness of every numeric field. It is a
// parameter of each encode/decode call, never baked into an Encoding, so a
// single derived Encoding serves both orders.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// native returns the matching encoding/binary order.
func (o ByteOrder) native() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Kind tags the fixed-width primitive encodings. A Kind is itself a
// Descriptor, so it can be used directly as a field type.
type Kind uint8

const (
	Bool Kind = iota
	U8
	U16
	U32
	U64
	U128
	U256
	I8
	I16
	I32
	I64
	I128
	I256
	F16
	F32
	F64
)

func (Kind) isDescriptor() {}

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case U256:
		return "u256"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case I128:
		return "i128"
	case I256:
		return "i256"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "unknown"
	}
}

// Size reports the encoded byte width of the primitive.
func (k Kind) Size() int {
	switch k {
	case Bool, U8, I8:
		return 1
	case U16, I16, F16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	case U128, I128:
		return 16
	case U256, I256:
		return 32
	default:
		return 0
	}
}

// isInteger reports whether the kind may back an enum.
func (k Kind) isInteger() bool {
	switch k {
	case U8, U16, U32, U64, U128, U256, I8, I16, I32, I64, I128, I256:
		return true
	}
	return false
}

// signed reports two's-complement interpretation for integer kinds.
func (k Kind) signed() bool {
	switch k {
	case I8, I16, I32, I64, I128, I256:
		return true
	}
	return false
}

// formatCode returns the native one-character pack code for kinds that have
// one, or "" for kinds (wide integers) that do not.
func (k Kind) formatCode() string {
	switch k {
	case Bool:
		return "?"
	case U8:
		return "B"
	case U16:
		return "H"
	case U32:
		return "I"
	case U64:
		return "Q"
	case I8:
		return "b"
	case I16:
		return "h"
	case I32:
		return "i"
	case I64:
		return "q"
	case F16:
		return "e"
	case F32:
		return "f"
	case F64:
		return "d"
	default:
		return ""
	}
}
