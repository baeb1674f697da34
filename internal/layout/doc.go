// Package layout derives fixed binary layouts for structured record types
// and runs the resulting encode/decode plans.
//
// A type is described once with a Descriptor (primitive kinds, fixed-size
// blobs and text, fixed-length arrays, integer-backed enums, nested structs
// or custom codecs) and compiled by Derive into an immutable Encoding: an
// exact byte size plus an ordered field plan. All structural validation
// happens at derivation; the runtime paths only move bytes.
//
// The wire format is the concatenation of field encodings in declaration
// order at the caller-chosen byte order. There is no framing, no length
// prefixes and no magic numbers, so both sides of a wire must derive from
// identical descriptors.
package layout
