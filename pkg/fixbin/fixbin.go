// Package fixbin is the public surface of the fixed-layout binary struct
// codec. It re-exports the derivation engine and runtime codec from
// internal/layout.
//
// Describe a record once, derive its Encoding, then encode and decode any
// number of values against it:
//
//	desc := fixbin.Struct{
//		Name: "Tick",
//		Fields: []fixbin.Field{
//			{Name: "id", Type: fixbin.U64},
//			{Name: "value", Type: fixbin.I32},
//		},
//	}
//	enc, err := fixbin.Derive(desc)
//	data, err := enc.Encode([]any{uint64(1), int32(-1)}, fixbin.LittleEndian)
package fixbin

import (
	"github.com/fixbin/fixbin/internal/layout"

	"go.uber.org/zap"
)

// Core types.
type (
	ByteOrder  = layout.ByteOrder
	Kind       = layout.Kind
	Descriptor = layout.Descriptor
	Encoding   = layout.Encoding
	Values     = layout.Values
	DecodeFunc = layout.DecodeFunc
	EncodeFunc = layout.EncodeFunc
	Cursor     = layout.Cursor
	Registry   = layout.Registry
)

// Descriptors.
type (
	Blob       = layout.Blob
	Text       = layout.Text
	Seq        = layout.Seq
	Field      = layout.Field
	Struct     = layout.Struct
	Enum       = layout.Enum
	EnumMember = layout.EnumMember
)

// Byte orders.
const (
	LittleEndian = layout.LittleEndian
	BigEndian    = layout.BigEndian
)

// Primitive kinds.
const (
	Bool = layout.Bool
	U8   = layout.U8
	U16  = layout.U16
	U32  = layout.U32
	U64  = layout.U64
	U128 = layout.U128
	U256 = layout.U256
	I8   = layout.I8
	I16  = layout.I16
	I32  = layout.I32
	I64  = layout.I64
	I128 = layout.I128
	I256 = layout.I256
	F16  = layout.F16
	F32  = layout.F32
	F64  = layout.F64
)

// I80F48 is the 16-byte signed fixed-point decimal encoding (*big.Rat
// values, 48 fractional bits).
var I80F48 = layout.I80F48

// Error sentinels; every error from this module wraps exactly one.
var (
	ErrSchema       = layout.ErrSchema
	ErrRange        = layout.ErrRange
	ErrSize         = layout.ErrSize
	ErrSizeMismatch = layout.ErrSizeMismatch
	ErrEndOfStream  = layout.ErrEndOfStream
	ErrEncoding     = layout.ErrEncoding
	ErrValue        = layout.ErrValue
	ErrContract     = layout.ErrContract
	ErrUnsupported  = layout.ErrUnsupported
)

// Derive resolves a descriptor into its compiled Encoding using the shared
// default registry.
func Derive(d Descriptor) (*Encoding, error) {
	return layout.Derive(d)
}

// MustDerive is Derive for statically known-good descriptors.
func MustDerive(d Descriptor) *Encoding {
	return layout.MustDerive(d)
}

// NewRegistry creates an isolated derivation cache.
func NewRegistry(opts ...layout.RegistryOption) *Registry {
	return layout.NewRegistry(opts...)
}

// WithLogger routes a registry's derivation events to the given logger.
func WithLogger(l *zap.Logger) layout.RegistryOption {
	return layout.WithLogger(l)
}

// SetLogger installs a module-wide logger for derivation diagnostics. The
// module is silent by default.
func SetLogger(l *zap.Logger) {
	layout.SetLogger(l)
}

// Custom builds an Encoding from a declared field list and a user-supplied
// decode/encode pair, for types the resolver cannot introspect.
func Custom(fields []*Encoding, dec DecodeFunc, enc EncodeFunc) (*Encoding, error) {
	return layout.Custom(fields, dec, enc)
}

// CompileFormat translates natively packable encodings into a fixed-width
// pack format string for interop with external struct packers.
func CompileFormat(encs ...*Encoding) (string, error) {
	return layout.CompileFormat(encs...)
}

// Codec binds an Encoding to a concrete Go type.
type Codec[T any] = layout.Codec[T]

// As wraps an Encoding whose decode function produces values of type T.
func As[T any](e *Encoding) Codec[T] {
	return layout.As[T](e)
}
