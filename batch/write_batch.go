package batch

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"github.com/essethon/go-lsm-format/base"
)

// headerSize is an 8-byte sequence number followed by a 4-byte record count,
// both little-endian.
const headerSize = 12

// WriteBatch stages a group of mutations sharing one base sequence number.
// Its backing buffer is the exact payload handed to the log writer:
//
//	rep :=
//	   sequence: fixed64
//	   count: fixed32
//	   data: record[count]
//	record :=
//	   KeyKindSet varstring varstring   |
//	   KeyKindDelete varstring
//	varstring :=
//	   len: varint32
//	   data: uint8[len]
//
// A WriteBatch is owned by a single writer until sealed; none of its methods
// are safe for concurrent use.
type WriteBatch struct {
	rep []byte
}

// NewWriteBatch returns an empty batch.
func NewWriteBatch() *WriteBatch {
	b := &WriteBatch{}
	b.Clear()
	return b
}

// Clear resets the batch to a zeroed header and no records.
func (b *WriteBatch) Clear() {
	if cap(b.rep) < headerSize {
		b.rep = make([]byte, headerSize)
		return
	}
	b.rep = b.rep[:headerSize]
	clear(b.rep)
}

// Put stages a key/value insertion.
func (b *WriteBatch) Put(key, value []byte) {
	b.SetCount(b.Count() + 1)
	b.rep = append(b.rep, byte(base.KeyKindSet))
	b.rep = base.PutLengthPrefixedSlice(b.rep, key)
	b.rep = base.PutLengthPrefixedSlice(b.rep, value)
}

// Delete stages a tombstone for key.
func (b *WriteBatch) Delete(key []byte) {
	b.SetCount(b.Count() + 1)
	b.rep = append(b.rep, byte(base.KeyKindDelete))
	b.rep = base.PutLengthPrefixedSlice(b.rep, key)
}

// Append concatenates the records of src onto b.
func (b *WriteBatch) Append(src *WriteBatch) {
	b.SetCount(b.Count() + src.Count())
	b.rep = append(b.rep, src.rep[headerSize:]...)
}

// ApproximateSize returns the byte size of the staged batch, header included.
func (b *WriteBatch) ApproximateSize() int {
	return len(b.rep)
}

// Iterate decodes the staged records in order, invoking the handler once per
// record. It returns a base.ErrCorruption-wrapped error if the buffer is
// structurally invalid.
func (b *WriteBatch) Iterate(h Handler) error {
	if len(b.rep) < headerSize {
		return corruptionf("malformed WriteBatch (too small)")
	}
	input := b.rep[headerSize:]
	var found uint32
	for len(input) > 0 {
		found++
		kind := base.KeyKind(input[0])
		input = input[1:]
		switch kind {
		case base.KeyKindSet:
			key, rest, ok := base.GetLengthPrefixedSlice(input)
			if !ok {
				return corruptionf("bad WriteBatch Put")
			}
			value, rest, ok := base.GetLengthPrefixedSlice(rest)
			if !ok {
				return corruptionf("bad WriteBatch Put")
			}
			h.Put(key, value)
			input = rest
		case base.KeyKindDelete:
			key, rest, ok := base.GetLengthPrefixedSlice(input)
			if !ok {
				return corruptionf("bad WriteBatch Delete")
			}
			h.Delete(key)
			input = rest
		default:
			return corruptionf("unknown WriteBatch tag")
		}
	}
	if found != b.Count() {
		return corruptionf("WriteBatch has wrong count")
	}
	return nil
}

// Count returns the number of staged records.
func (b *WriteBatch) Count() uint32 {
	return binary.LittleEndian.Uint32(b.rep[8:])
}

// SetCount overwrites the record count in the header.
func (b *WriteBatch) SetCount(n uint32) {
	binary.LittleEndian.PutUint32(b.rep[8:], n)
}

// Sequence returns the sequence number the first record receives on replay.
func (b *WriteBatch) Sequence() base.SeqNum {
	return base.SeqNum(binary.LittleEndian.Uint64(b.rep))
}

// SetSequence seals the batch against a base sequence number.
func (b *WriteBatch) SetSequence(seq base.SeqNum) {
	binary.LittleEndian.PutUint64(b.rep, uint64(seq))
}

// Contents exposes the backing buffer, the exact bytes the log writer
// persists. The caller must not modify it.
func (b *WriteBatch) Contents() []byte {
	return b.rep
}

// SetContents replaces the batch with a buffer recovered from the log. The
// buffer must hold at least a header.
func (b *WriteBatch) SetContents(contents []byte) {
	if len(contents) < headerSize {
		panic("batch: contents smaller than a WriteBatch header")
	}
	b.rep = append(b.rep[:0], contents...)
}

func corruptionf(msg string) error {
	err := fmt.Errorf("%w: %s", base.ErrCorruption, msg)
	zap.L().Error("Rejected corrupted write batch", zap.Error(err))
	return err
}
