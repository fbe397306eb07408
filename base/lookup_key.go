package base

import (
	"encoding/binary"

	"github.com/datnguyenzzz/nogodb/lib/go-bytesbufferpool"
)

// lookupKeyInlineSize is sized so that short user keys never touch the heap
// on the read path. Longer keys borrow a buffer from the shared pool.
const lookupKeyInlineSize = 200

// LookupKey is a memtable probe key. It exposes three views over a single
// buffer:
//
//	+----------------------+-------------+-------------------------+
//	| varint32(ukLen + 8)  | UserKey (N) | Trailer(seq, Seek) (8)  |
//	+----------------------+-------------+-------------------------+
//	|<---------------- MemtableKey ---------------------------->|
//	                       |<----------- InternalKey ---------->|
//	                       |<- UserKey ->|
//
// The length prefix lets the same bytes double as a memtable key, while the
// suffix views are reused for table lookups. Release returns any pooled
// buffer; the key must not be used afterwards.
type LookupKey struct {
	space  [lookupKeyInlineSize]byte
	buf    []byte
	kstart int
	ukLen  int
	pooled bool
}

// NewLookupKey builds a probe for snapshot s of userKey. The seek kind makes
// the probe sort at or before every record of that user key visible at s.
func NewLookupKey(userKey []byte, s SeqNum) *LookupKey {
	lk := &LookupKey{ukLen: len(userKey)}
	needed := len(userKey) + 13 // varint:5, trailer:8
	var dst []byte
	if needed <= lookupKeyInlineSize {
		dst = lk.space[:0]
	} else {
		dst = go_bytesbufferpool.Get(needed)
		lk.pooled = true
	}
	dst = binary.AppendUvarint(dst, uint64(len(userKey)+TrailerLen))
	lk.kstart = len(dst)
	dst = append(dst, userKey...)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(MakeTrailer(s, KeyKindSeek)))
	lk.buf = dst
	return lk
}

// MemtableKey returns the whole length-prefixed buffer.
func (lk *LookupKey) MemtableKey() []byte {
	return lk.buf
}

// InternalKey returns the encoded internal key after the length prefix.
func (lk *LookupKey) InternalKey() []byte {
	return lk.buf[lk.kstart:]
}

// UserKey returns the bare user key.
func (lk *LookupKey) UserKey() []byte {
	return lk.buf[lk.kstart : lk.kstart+lk.ukLen]
}

// Release returns a pooled buffer, if any. The LookupKey must not be used
// after Release.
func (lk *LookupKey) Release() {
	if lk.pooled {
		go_bytesbufferpool.Put(lk.buf)
		lk.pooled = false
	}
	lk.buf = nil
}

// MVLookupKey is the multi-version probe key: the internal-key view carries a
// trailing fixed64 valid time and the length prefix accounts for it.
type MVLookupKey struct {
	space  [lookupKeyInlineSize]byte
	buf    []byte
	kstart int
	ukLen  int
	pooled bool
}

// NewMVLookupKey builds a probe for snapshot s of userKey at valid time vt.
func NewMVLookupKey(userKey []byte, s SeqNum, vt ValidTime) *MVLookupKey {
	lk := &MVLookupKey{ukLen: len(userKey)}
	needed := len(userKey) + 21 // varint:5, trailer:8, valid time:8
	var dst []byte
	if needed <= lookupKeyInlineSize {
		dst = lk.space[:0]
	} else {
		dst = go_bytesbufferpool.Get(needed)
		lk.pooled = true
	}
	dst = binary.AppendUvarint(dst, uint64(len(userKey)+MVTrailerLen))
	lk.kstart = len(dst)
	dst = append(dst, userKey...)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(MakeTrailer(s, KeyKindSeek)))
	dst = binary.LittleEndian.AppendUint64(dst, uint64(vt))
	lk.buf = dst
	return lk
}

func (lk *MVLookupKey) MemtableKey() []byte {
	return lk.buf
}

func (lk *MVLookupKey) InternalKey() []byte {
	return lk.buf[lk.kstart:]
}

func (lk *MVLookupKey) UserKey() []byte {
	return lk.buf[lk.kstart : lk.kstart+lk.ukLen]
}

func (lk *MVLookupKey) Release() {
	if lk.pooled {
		go_bytesbufferpool.Put(lk.buf)
		lk.pooled = false
	}
	lk.buf = nil
}
