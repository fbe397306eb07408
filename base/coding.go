package base

import "encoding/binary"

// Length-prefixed byte strings are encoded as a varint32 length followed by
// the raw bytes, matching the write-batch wire format.

// PutLengthPrefixedSlice appends varint32(len(s)) followed by s to dst.
func PutLengthPrefixedSlice(dst, s []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// GetLengthPrefixedSlice decodes a length-prefixed string from the front of
// input, returning the string, the remaining input, and whether decoding
// succeeded. The returned string aliases the input.
func GetLengthPrefixedSlice(input []byte) (s, rest []byte, ok bool) {
	l, n := binary.Uvarint(input)
	if n <= 0 || l > uint64(len(input)-n) {
		return nil, input, false
	}
	return input[n : n+int(l) : n+int(l)], input[n+int(l):], true
}

// GetFixed64 decodes a little-endian fixed64 from the front of input.
func GetFixed64(input []byte) (v uint64, rest []byte, ok bool) {
	if len(input) < 8 {
		return 0, input, false
	}
	return binary.LittleEndian.Uint64(input), input[8:], true
}
