package base

import "encoding/binary"

// InternalKeyComparator orders encoded internal keys by:
//
//	increasing user key (according to the user-supplied comparer)
//	decreasing trailer (i.e. decreasing sequence number, then kind)
//	decreasing valid time (multi-version mode only)
//
// so that a forward scan from a seek key finds the newest satisfying record
// first. The multi-version flag is fixed at construction and selects whether
// keys carry the trailing fixed64 valid time.
type InternalKeyComparator struct {
	userCmp      IComparer
	multiVersion bool
	suffixLen    int
}

// NewInternalKeyComparator wraps a user comparer into a comparer over encoded
// internal keys.
func NewInternalKeyComparator(userCmp IComparer, multiVersion bool) *InternalKeyComparator {
	suffixLen := TrailerLen
	if multiVersion {
		suffixLen = MVTrailerLen
	}
	return &InternalKeyComparator{
		userCmp:      userCmp,
		multiVersion: multiVersion,
		suffixLen:    suffixLen,
	}
}

// UserComparer returns the wrapped user-key comparer.
func (c *InternalKeyComparator) UserComparer() IComparer {
	return c.userCmp
}

// MultiVersion reports whether keys carry a valid-time suffix.
func (c *InternalKeyComparator) MultiVersion() bool {
	return c.multiVersion
}

func (c *InternalKeyComparator) userKey(encoded []byte) []byte {
	n := len(encoded) - c.suffixLen
	return encoded[:n:n]
}

func (c *InternalKeyComparator) Compare(a, b []byte) int {
	if r := c.userCmp.Compare(c.userKey(a), c.userKey(b)); r != 0 {
		return r
	}
	anum := binary.LittleEndian.Uint64(a[len(a)-c.suffixLen:])
	bnum := binary.LittleEndian.Uint64(b[len(b)-c.suffixLen:])
	if anum != bnum {
		// Larger trailer sorts first: newest sequence number wins.
		if anum > bnum {
			return -1
		}
		return 1
	}
	if c.multiVersion {
		at := binary.LittleEndian.Uint64(a[len(a)-8:])
		bt := binary.LittleEndian.Uint64(b[len(b)-8:])
		// Also descending. Bytewise-equal keys compare equal here, where the
		// reference implementation ordered them arbitrarily.
		if at > bt {
			return -1
		} else if at < bt {
			return 1
		}
	}
	return 0
}

// Separator appends a key x to dst with start <= x < limit under this
// ordering, shortening the user-key portion when possible. If no valid
// shorter separator exists, start is appended unchanged.
func (c *InternalKeyComparator) Separator(dst, start, limit []byte) []byte {
	userStart := c.userKey(start)
	userLimit := c.userKey(limit)

	tmp := c.userCmp.Separator(nil, userStart, userLimit)
	if len(tmp) < len(userStart) && c.userCmp.Compare(userStart, tmp) < 0 {
		// The user key shrank physically but grew logically. Tack on the
		// earliest possible trailer so the result is the smallest internal
		// key for that user key.
		tmp = binary.LittleEndian.AppendUint64(tmp, uint64(MakeTrailer(MaxSeqNum, KeyKindSeek)))
		if c.multiVersion {
			tmp = binary.LittleEndian.AppendUint64(tmp, uint64(MinValidTime))
		}
		if c.Compare(start, tmp) < 0 && c.Compare(tmp, limit) < 0 {
			return append(dst, tmp...)
		}
	}
	return append(dst, start...)
}

// Successor appends a key x to dst with key <= x, shortening the user-key
// portion when possible. If no valid shorter successor exists, key is
// appended unchanged.
func (c *InternalKeyComparator) Successor(dst, key []byte) []byte {
	userKey := c.userKey(key)

	tmp := c.userCmp.Successor(nil, userKey)
	if len(tmp) < len(userKey) && c.userCmp.Compare(userKey, tmp) < 0 {
		tmp = binary.LittleEndian.AppendUint64(tmp, uint64(MakeTrailer(MaxSeqNum, KeyKindSeek)))
		if c.multiVersion {
			tmp = binary.LittleEndian.AppendUint64(tmp, uint64(MinValidTime))
		}
		if c.Compare(key, tmp) < 0 {
			return append(dst, tmp...)
		}
	}
	return append(dst, key...)
}

// Name is persisted in manifests; it is fixed for on-disk compatibility with
// databases written by any implementation of this format.
func (c *InternalKeyComparator) Name() string {
	return "leveldb.InternalKeyComparator"
}

var _ IComparer = (*InternalKeyComparator)(nil)
