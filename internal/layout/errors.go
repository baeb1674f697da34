package layout

import (
	"errors"
	"fmt"
)

// Error taxonomy. Derivation failures always wrap ErrSchema and are raised
// before any Encoding is cached; everything else surfaces at encode or
// decode time. All errors produced by this package wrap exactly one of
// these sentinels so callers can dispatch with errors.Is.
var (
	// ErrSchema marks a structural problem found while deriving an
	// Encoding: an unresolvable field, a non-positive array length, an
	// enum member outside its backing range.
	ErrSchema = errors.New("layout: invalid schema")

	// ErrRange marks an encode-time value that does not fit the declared
	// bit width or signedness of its field.
	ErrRange = errors.New("layout: value out of range")

	// ErrSize marks an encode-time value whose byte length does not match
	// the declared fixed size (oversized text, wrong blob or array length).
	ErrSize = errors.New("layout: wrong value size")

	// ErrSizeMismatch marks a decode buffer whose length is not exactly
	// the compiled size. Trailing bytes are an error, never ignored.
	ErrSizeMismatch = errors.New("layout: buffer length mismatch")

	// ErrEndOfStream marks a stream that ran out before a full record
	// could be read.
	ErrEndOfStream = errors.New("layout: unexpected end of stream")

	// ErrEncoding marks invalid UTF-8 in a text field.
	ErrEncoding = errors.New("layout: invalid utf-8")

	// ErrValue marks a value the layout cannot represent: an unknown enum
	// discriminant, a bool byte other than 0 or 1, or a Go value of the
	// wrong dynamic type for its field.
	ErrValue = errors.New("layout: invalid value")

	// ErrContract marks a custom codec that consumed or produced the wrong
	// number of attributes. It signals a bug in the codec, not bad data,
	// and should not be caught and retried.
	ErrContract = errors.New("layout: codec contract violation")

	// ErrUnsupported marks an encoding with no native format-string
	// equivalent.
	ErrUnsupported = errors.New("layout: no native format equivalent")
)

// errorf wraps a sentinel with formatted detail while keeping errors.Is
// dispatch intact.
func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
