package base

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// KeyKind enumerates the kind of a record: a deletion tombstone or a set
// value. The byte values are part of the on-disk format and must not change.
type KeyKind byte

const (
	KeyKindDelete KeyKind = 0x00
	KeyKindSet    KeyKind = 0x01

	// KeyKindSeek equals the largest persisted kind. Keys built with it sort
	// at or before every real record carrying the same user key and sequence
	// number,
	// so a forward scan started from a seek key lands on the newest record.
	// It is never written to a batch or a table.
	KeyKindSeek = KeyKindSet
)

func (k KeyKind) String() string {
	switch k {
	case KeyKindDelete:
		return "DELETE"
	case KeyKindSet:
		return "SET"
	}
	return "UNKNOWN"
}

// SeqNum is a sequence number defining precedence among versions of the same
// user key. A key with a higher sequence number takes precedence over a key
// with an equal user key of a lower sequence number. Only the low 56 bits are
// significant; the low byte of the trailer holds the kind.
type SeqNum uint64

// MaxSeqNum is the largest representable sequence number.
const MaxSeqNum SeqNum = 1<<56 - 1

// ValidTime is the application-supplied timestamp attached to a record in
// multi-version mode. It is independent of the sequence number.
type ValidTime uint64

const MinValidTime ValidTime = 0

// Trailer encodes a [SeqNum (7 bytes) + KeyKind (1 byte)].
type Trailer uint64

const TrailerLen = 8

// MVTrailerLen is the suffix length of a multi-version internal key:
// the trailer plus a fixed64 valid time.
const MVTrailerLen = TrailerLen + 8

// MakeTrailer packs a sequence number and a kind into a trailer. The caller
// must ensure num <= MaxSeqNum and kind <= KeyKindSeek.
func MakeTrailer(num SeqNum, kind KeyKind) Trailer {
	return Trailer(uint64(num)<<8 | uint64(kind))
}

func (t Trailer) SeqNum() SeqNum {
	return SeqNum(t >> 8)
}

func (t Trailer) Kind() KeyKind {
	return KeyKind(t & 0xFF)
}

// InternalKey is the parsed form of a physical key. Due to the LSM structure
// keys are never updated in place but overwritten with new versions; the
// trailer disambiguates them. The serialized layout is
//
//	+-------------+----------+------------+
//	| UserKey (N) | Kind (1) | SeqNum (7) |
//	+-------------+----------+------------+
//
// with the trailer stored as a fixed64 in little-endian order, so its low
// byte, the kind, comes first.
type InternalKey struct {
	UserKey []byte
	Trailer Trailer
}

// MVInternalKey is an InternalKey carrying a valid time. Serialized, the
// valid time follows the trailer as another little-endian fixed64:
//
//	+-------------+----------+------------+----------------+
//	| UserKey (N) | Kind (1) | SeqNum (7) | ValidTime (8)  |
//	+-------------+----------+------------+----------------+
type MVInternalKey struct {
	InternalKey
	ValidTime ValidTime
}

// MakeKey builds an InternalKey from its parts.
func MakeKey(userKey []byte, num SeqNum, kind KeyKind) InternalKey {
	return InternalKey{
		UserKey: userKey,
		Trailer: MakeTrailer(num, kind),
	}
}

// MakeMVKey builds an MVInternalKey from its parts.
func MakeMVKey(userKey []byte, num SeqNum, kind KeyKind, vt ValidTime) MVInternalKey {
	return MVInternalKey{
		InternalKey: MakeKey(userKey, num, kind),
		ValidTime:   vt,
	}
}

func (k InternalKey) SeqNum() SeqNum {
	return k.Trailer.SeqNum()
}

func (k InternalKey) Kind() KeyKind {
	return k.Trailer.Kind()
}

func (k InternalKey) Size() int {
	return len(k.UserKey) + TrailerLen
}

func (k MVInternalKey) Size() int {
	return len(k.UserKey) + MVTrailerLen
}

// AppendInternalKey serializes k onto dst and returns the extended buffer.
func AppendInternalKey(dst []byte, k InternalKey) []byte {
	dst = append(dst, k.UserKey...)
	return binary.LittleEndian.AppendUint64(dst, uint64(k.Trailer))
}

// AppendMVInternalKey serializes k onto dst, valid time last.
func AppendMVInternalKey(dst []byte, k MVInternalKey) []byte {
	dst = AppendInternalKey(dst, k.InternalKey)
	return binary.LittleEndian.AppendUint64(dst, uint64(k.ValidTime))
}

// ParseInternalKey decodes an encoded internal key. It reports false if the
// input is shorter than the trailer or the kind byte is out of range. The
// returned UserKey aliases the input.
func ParseInternalKey(encoded []byte) (InternalKey, bool) {
	n := len(encoded) - TrailerLen
	if n < 0 {
		return InternalKey{}, false
	}
	t := Trailer(binary.LittleEndian.Uint64(encoded[n:]))
	if t.Kind() > KeyKindSeek {
		return InternalKey{}, false
	}
	return InternalKey{
		UserKey: encoded[:n:n],
		Trailer: t,
	}, true
}

// ParseMVInternalKey decodes an encoded multi-version internal key.
func ParseMVInternalKey(encoded []byte) (MVInternalKey, bool) {
	n := len(encoded) - MVTrailerLen
	if n < 0 {
		return MVInternalKey{}, false
	}
	ik, ok := ParseInternalKey(encoded[:n+TrailerLen])
	if !ok {
		return MVInternalKey{}, false
	}
	return MVInternalKey{
		InternalKey: ik,
		ValidTime:   ValidTime(binary.LittleEndian.Uint64(encoded[n+TrailerLen:])),
	}, true
}

// ExtractUserKey returns the user-key portion of an encoded internal key.
// The caller must have validated len(encoded) >= TrailerLen.
func ExtractUserKey(encoded []byte) []byte {
	n := len(encoded) - TrailerLen
	return encoded[:n:n]
}

// MVExtractUserKey returns the user-key portion of an encoded multi-version
// internal key. The caller must have validated len(encoded) >= MVTrailerLen.
func MVExtractUserKey(encoded []byte) []byte {
	n := len(encoded) - MVTrailerLen
	return encoded[:n:n]
}

// String renders the key as 'escaped_user_key' @ seq : kind.
func (k InternalKey) String() string {
	return fmt.Sprintf("'%s' @ %d : %d", escapeBytes(k.UserKey), uint64(k.SeqNum()), int(k.Kind()))
}

func (k MVInternalKey) String() string {
	return fmt.Sprintf("%s vt=%d", k.InternalKey, uint64(k.ValidTime))
}

// DebugBytes renders an encoded internal key for diagnostics, falling back to
// (bad)<escaped> when the input does not parse.
func DebugBytes(encoded []byte) string {
	if k, ok := ParseInternalKey(encoded); ok {
		return k.String()
	}
	return "(bad)" + escapeBytes(encoded)
}

// escapeBytes keeps printable ASCII as-is and renders everything else as a
// \x.. escape.
func escapeBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= ' ' && c <= '~' {
			sb.WriteByte(c)
		} else {
			sb.WriteString("\\x")
			if c < 0x10 {
				sb.WriteByte('0')
			}
			sb.WriteString(strconv.FormatUint(uint64(c), 16))
		}
	}
	return sb.String()
}
