package bjson

// appendStringRecord appends a length-prefixed UTF-8 string record and
// returns the updated buffer along with the offset of the record's length
// prefix.
func appendStringRecord(buf []byte, s string) ([]byte, uint32) {
	off := uint32(len(buf))
	buf = appendUint32(buf, uint32(len(s)))
	buf = append(buf, s...)
	return buf, off
}

// stringBytesAt returns the raw bytes of the string record at offset off.
func stringBytesAt(buf []byte, off uint32) []byte {
	n := nativeEndian.Uint32(buf[off : off+4])
	start := off + 4
	return buf[start : start+n]
}

// stringAt returns the string record at offset off as a Go string. This
// copies, since a Go string must be immutable and buf is a caller-owned
// byte slice.
func stringAt(buf []byte, off uint32) string {
	return string(stringBytesAt(buf, off))
}
