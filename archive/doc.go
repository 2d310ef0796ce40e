// Package archive wraps a bjson buffer in a small compressed envelope for
// out-of-band storage or transfer. It does not define a second wire
// format: decoding reproduces the exact buffer bytes bjson.FromBytes
// expects, byte for byte. This mirrors simdjson-go's own Serializer
// (parsed_serialize.go), which compresses its tape/string data with the
// same two codecs for the same reason — a parsed document is large and
// mostly redundant, and compressing it is worth a dependency but not worth
// inventing a new on-disk layout.
//
// This package is optional and outside the core's load path: bjson.FromBytes
// and bjson.FromOwnedBytes never need it.
package archive
