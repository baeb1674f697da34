package layout

import (
	"math/big"
	"reflect"
)

// Descriptor is the closed set of type descriptions the resolver accepts:
// a primitive Kind, Blob, Text, Seq, Struct, Enum, or a prebuilt *Encoding.
// Resolution is fully recursive for nested structs and arrays, and every
// structural problem is reported at derive time, never at encode or decode
// time.
type Descriptor interface {
	isDescriptor()
}

// Blob describes a fixed-size raw byte field. Input length must match
// exactly; there is no padding.
type Blob struct {
	Size int
}

// Text describes a fixed-size UTF-8 string field, zero padded on the right.
type Text struct {
	Size int
}

// Seq describes a fixed-length array. Len is part of the type: a runtime
// slice of any other length fails to encode.
type Seq struct {
	Elem Descriptor
	Len  int
}

// Field is one named element of a Struct, in declaration order. The order
// is semantically significant: it defines the exact byte layout.
type Field struct {
	Name string
	Type Descriptor
}

// Struct describes a composite record. New and Get are the only
// capabilities the codec needs from the host type: construct an instance
// from decoded field values in declaration order, and read one named field
// for encoding. When both are nil the record codes to and from []any of
// field values in declaration order.
type Struct struct {
	Name   string
	Fields []Field
	New    func(fields []any) (any, error)
	Get    func(v any, name string) (any, error)
}

// EnumMember declares one legal value of an integer-backed enum.
type EnumMember struct {
	Name  string
	Value int64
}

// Enum describes an integer-backed enumeration. Every member value must fit
// the backing kind, checked at derive time. Decoding an integer that is not
// a declared member fails; an unlabeled value is never returned. Wrap and
// Unwrap adapt a named Go type; when nil, values are plain int64.
type Enum struct {
	Name    string
	Backing Kind
	Members []EnumMember
	Wrap    func(int64) any
	Unwrap  func(v any) (int64, error)
}

func (Blob) isDescriptor()   {}
func (Text) isDescriptor()   {}
func (Seq) isDescriptor()    {}
func (Struct) isDescriptor() {}
func (Enum) isDescriptor()   {}

// resolve is the derivation engine behind Registry.Derive.
func (r *Registry) resolve(d Descriptor) (*Encoding, error) {
	switch t := d.(type) {
	case nil:
		return nil, errorf(ErrSchema, "nil descriptor")
	case *Encoding:
		if t == nil {
			return nil, errorf(ErrSchema, "nil encoding descriptor")
		}
		return t, nil
	case Kind:
		return primitive(t)
	case Blob:
		return blobEncoding(t.Size)
	case Text:
		return textEncoding(t.Size)
	case Seq:
		return r.resolveSeq(t)
	case Struct:
		return r.resolveStruct(t)
	case Enum:
		return r.resolveEnum(t)
	default:
		return nil, errorf(ErrSchema, "unsupported descriptor %T", d)
	}
}

func (r *Registry) resolveSeq(d Seq) (*Encoding, error) {
	if d.Len <= 0 {
		return nil, errorf(ErrSchema, "array length must be positive, got %d", d.Len)
	}
	elem, err := r.Derive(d.Elem)
	if err != nil {
		return nil, err
	}
	length := d.Len
	slots := make([]slot, 0, length*elem.arity())
	for i := 0; i < length; i++ {
		slots = append(slots, elem.slots...)
	}
	return &Encoding{
		size:  elem.size * length,
		slots: slots,
		dec: func(vals *Values, order ByteOrder) (any, error) {
			out := make([]any, length)
			for i := 0; i < length; i++ {
				v, err := elem.decodeChecked(vals, order)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		enc: func(v any, vals *Values, order ByteOrder) error {
			items, err := sequenceItems(v, length)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := elem.encodeChecked(item, vals, order); err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}

// sequenceItems normalises an array value to []any and enforces the
// declared length. Typed slices go through reflection; this path only runs
// when the caller hands down something other than []any.
func sequenceItems(v any, length int) ([]any, error) {
	if items, ok := v.([]any); ok {
		if len(items) != length {
			return nil, errorf(ErrSize, "array of %d items, want exactly %d", len(items), length)
		}
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errorf(ErrValue, "array expects a slice, got %T", v)
	}
	if rv.Len() != length {
		return nil, errorf(ErrSize, "array of %d items, want exactly %d", rv.Len(), length)
	}
	items := make([]any, length)
	for i := 0; i < length; i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

func (r *Registry) resolveStruct(d Struct) (*Encoding, error) {
	type fieldPlan struct {
		name string
		enc  *Encoding
	}
	plans := make([]fieldPlan, 0, len(d.Fields))
	size := 0
	var slots []slot
	for _, f := range d.Fields {
		fe, err := r.Derive(f.Type)
		if err != nil {
			return nil, errorf(ErrSchema, "field %q of %q: %v", f.Name, d.Name, err)
		}
		plans = append(plans, fieldPlan{name: f.Name, enc: fe})
		size += fe.size
		slots = append(slots, fe.slots...)
	}

	construct := d.New
	if construct == nil {
		construct = func(fields []any) (any, error) { return fields, nil }
	}
	get := d.Get
	if get == nil {
		names := make([]string, len(plans))
		for i, p := range plans {
			names[i] = p.name
		}
		get = positionalGet(names)
	}

	return &Encoding{
		size:  size,
		slots: slots,
		dec: func(vals *Values, order ByteOrder) (any, error) {
			fields := make([]any, len(plans))
			for i, p := range plans {
				fv, err := p.enc.decodeChecked(vals, order)
				if err != nil {
					return nil, err
				}
				fields[i] = fv
			}
			out, err := construct(fields)
			if err != nil {
				return nil, errorf(ErrValue, "constructing %q: %v", d.Name, err)
			}
			return out, nil
		},
		enc: func(v any, vals *Values, order ByteOrder) error {
			for _, p := range plans {
				fv, err := get(v, p.name)
				if err != nil {
					return errorf(ErrValue, "reading field %q of %q: %v", p.name, d.Name, err)
				}
				if err := p.enc.encodeChecked(fv, vals, order); err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}

// positionalGet is the default attribute reader used when a Struct declares
// no Get capability: the value must be []any in declaration order.
func positionalGet(names []string) func(any, string) (any, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return func(v any, name string) (any, error) {
		fields, ok := v.([]any)
		if !ok {
			return nil, errorf(ErrValue, "record without Get capability expects []any, got %T", v)
		}
		i, ok := index[name]
		if !ok || i >= len(fields) {
			return nil, errorf(ErrValue, "no field %q", name)
		}
		return fields[i], nil
	}
}

func (r *Registry) resolveEnum(d Enum) (*Encoding, error) {
	if !d.Backing.isInteger() {
		return nil, errorf(ErrSchema, "enum %q backed by non-integer kind %s", d.Name, d.Backing)
	}
	if len(d.Members) == 0 {
		return nil, errorf(ErrSchema, "enum %q has no members", d.Name)
	}
	backing, err := primitive(d.Backing)
	if err != nil {
		return nil, err
	}
	members := make(map[int64]struct{}, len(d.Members))
	for _, m := range d.Members {
		if !memberFits(m.Value, d.Backing) {
			return nil, errorf(ErrSchema, "enum %q member %s=%d does not fit backing %s",
				d.Name, m.Name, m.Value, d.Backing)
		}
		members[m.Value] = struct{}{}
	}

	wrap := d.Wrap
	if wrap == nil {
		wrap = func(v int64) any { return v }
	}
	unwrap := d.Unwrap
	if unwrap == nil {
		unwrap = func(v any) (int64, error) {
			n, ok := v.(int64)
			if !ok {
				return 0, errorf(ErrValue, "enum %q expects int64, got %T", d.Name, v)
			}
			return n, nil
		}
	}

	return &Encoding{
		size:  backing.size,
		slots: backing.slots,
		dec: func(vals *Values, order ByteOrder) (any, error) {
			raw, err := backing.dec(vals, order)
			if err != nil {
				return nil, err
			}
			n, err := nativeToInt64(raw)
			if err != nil {
				return nil, err
			}
			if _, ok := members[n]; !ok {
				return nil, errorf(ErrValue, "enum %q has no member with value %d", d.Name, n)
			}
			return wrap(n), nil
		},
		enc: func(v any, vals *Values, order ByteOrder) error {
			n, err := unwrap(v)
			if err != nil {
				return err
			}
			if _, ok := members[n]; !ok {
				return errorf(ErrValue, "enum %q has no member with value %d", d.Name, n)
			}
			return backing.enc(int64ToNative(n, d.Backing), vals, order)
		},
	}, nil
}

// memberFits checks a declared member value against the backing range.
func memberFits(v int64, k Kind) bool {
	if k.signed() {
		bits := k.Size() * 8
		if bits >= 64 {
			return true
		}
		return v >= -(1<<(bits-1)) && v <= 1<<(bits-1)-1
	}
	if v < 0 {
		return false
	}
	bits := k.Size() * 8
	if bits >= 64 {
		return true
	}
	return v <= 1<<bits-1
}

// nativeToInt64 widens a decoded backing value to int64 for membership
// checks. Wide backings arrive as *big.Int; member values are int64, so
// anything outside that range cannot match a member.
func nativeToInt64(v any) (int64, error) {
	switch n := v.(type) {
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > 1<<63-1 {
			return 0, errorf(ErrValue, "enum value %d exceeds any declared member", n)
		}
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case *big.Int:
		if !n.IsInt64() {
			return 0, errorf(ErrValue, "enum value %v exceeds any declared member", n)
		}
		return n.Int64(), nil
	default:
		return 0, errorf(ErrContract, "enum backing decoded to %T", v)
	}
}

// int64ToNative narrows a member value to the backing's native type. The
// value is already known to fit: members are range checked at derive time.
func int64ToNative(v int64, k Kind) any {
	switch k {
	case U8:
		return uint8(v)
	case U16:
		return uint16(v)
	case U32:
		return uint32(v)
	case U64:
		return uint64(v)
	case I8:
		return int8(v)
	case I16:
		return int16(v)
	case I32:
		return int32(v)
	case I64:
		return v
	default: // U128, U256, I128, I256
		return big.NewInt(v)
	}
}
