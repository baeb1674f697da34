package layout

import (
	"fmt"
	"strings"
)

// CompileFormat translates a sequence of natively packable encodings into a
// fixed-width pack format string, one code per slot (B b H h I i Q q e f d
// ? and Ns for blobs), without a byte-order specifier. Encodings that carry
// attribute transforms of their own (wide integers, text padding, decimals,
// enums, records) have no native equivalent and fail. The translation is
// pure and cheap; nothing is cached.
func CompileFormat(encs ...*Encoding) (string, error) {
	var b strings.Builder
	for i, e := range encs {
		if e == nil {
			return "", errorf(ErrUnsupported, "nil encoding at position %d", i)
		}
		if !e.native || e.format == "" {
			return "", errorf(ErrUnsupported, "encoding at position %d", i)
		}
		b.WriteString(e.format)
	}
	return b.String(), nil
}

// blobFormatCode is the native pack code for a fixed-size byte field.
func blobFormatCode(size int) string {
	return fmt.Sprintf("%ds", size)
}
