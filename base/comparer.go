package base

import "bytes"

// IComparer defines a total ordering over the space of []byte keys: a 'less
// than' relationship, plus the key-shortening helpers used to keep index
// blocks small.
type IComparer interface {
	// Compare returns -1, 0, or +1 depending on whether a is 'less than',
	// 'equal to' or 'greater than' b.
	Compare(a, b []byte) int

	// Separator appends a sequence of bytes x to dst such that a <= x && x < b,
	// where 'less than' is consistent with Compare. If no shorter separator
	// exists, a itself is appended.
	Separator(dst, a, b []byte) []byte

	// Successor appends a sequence of bytes x to dst such that x >= b, where
	// 'less than' is consistent with Compare. If no shorter successor exists,
	// b itself is appended.
	Successor(dst, b []byte) []byte

	// Name identifies the ordering. It is persisted in manifests, so a stored
	// database must be reopened with a comparer of the same name.
	Name() string
}

type bytewiseComparer struct{}

func (c bytewiseComparer) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

func (c bytewiseComparer) Separator(dst, a, b []byte) []byte {
	var prefixLen int
	n := min(len(a), len(b))
	for prefixLen = 0; prefixLen < n && a[prefixLen] == b[prefixLen]; prefixLen++ {
	}
	if prefixLen >= n || a[prefixLen] >= b[prefixLen] {
		return append(dst, a...)
	}
	if a[prefixLen]+1 < b[prefixLen] {
		dst = append(dst, a[:prefixLen+1]...)
		dst[len(dst)-1]++
		return dst
	}
	// At this point a[prefixLen]+1 == b[prefixLen]. Bumping a[prefixLen]
	// yields b[:prefixLen+1], which is below b only if b continues past it;
	// otherwise bump the first non-0xff byte of a after the divergence point.
	if prefixLen+1 < len(b) {
		dst = append(dst, a[:prefixLen+1]...)
		dst[len(dst)-1]++
		return dst
	}
	for prefixLen++; prefixLen < len(a); prefixLen++ {
		if a[prefixLen] != 0xff {
			dst = append(dst, a[:prefixLen+1]...)
			dst[len(dst)-1]++
			return dst
		}
	}

	return append(dst, a...)
}

func (c bytewiseComparer) Successor(dst, b []byte) []byte {
	for i, v := range b {
		if v < 0xff {
			dst = append(dst, b[:i+1]...)
			dst[len(dst)-1]++
			return dst
		}
	}
	// b is all 0xff, no shorter successor exists
	return append(dst, b...)
}

func (c bytewiseComparer) Name() string {
	return "leveldb.BytewiseComparator"
}

// NewBytewiseComparer returns the default comparer ordering keys
// lexicographically byte by byte.
func NewBytewiseComparer() IComparer {
	return bytewiseComparer{}
}

var _ IComparer = bytewiseComparer{}
