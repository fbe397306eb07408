package batch

import (
	"encoding/binary"

	"github.com/essethon/go-lsm-format/base"
)

// WriteBatchMV is the multi-version batch: every record carries a fixed64
// valid time between key and value.
//
//	record :=
//	   KeyKindSet varstring ValidTime varstring   |
//	   KeyKindDelete varstring ValidTime
//
// Header and varstring encodings match WriteBatch.
type WriteBatchMV struct {
	rep []byte
}

// NewWriteBatchMV returns an empty multi-version batch.
func NewWriteBatchMV() *WriteBatchMV {
	b := &WriteBatchMV{}
	b.Clear()
	return b
}

// Clear resets the batch to a zeroed header and no records.
func (b *WriteBatchMV) Clear() {
	if cap(b.rep) < headerSize {
		b.rep = make([]byte, headerSize)
		return
	}
	b.rep = b.rep[:headerSize]
	clear(b.rep)
}

// Put stages a key/value insertion valid at vt.
func (b *WriteBatchMV) Put(key []byte, vt base.ValidTime, value []byte) {
	b.SetCount(b.Count() + 1)
	b.rep = append(b.rep, byte(base.KeyKindSet))
	b.rep = base.PutLengthPrefixedSlice(b.rep, key)
	b.rep = binary.LittleEndian.AppendUint64(b.rep, uint64(vt))
	b.rep = base.PutLengthPrefixedSlice(b.rep, value)
}

// Delete stages a tombstone for key valid at vt.
func (b *WriteBatchMV) Delete(key []byte, vt base.ValidTime) {
	b.SetCount(b.Count() + 1)
	b.rep = append(b.rep, byte(base.KeyKindDelete))
	b.rep = base.PutLengthPrefixedSlice(b.rep, key)
	b.rep = binary.LittleEndian.AppendUint64(b.rep, uint64(vt))
}

// Append concatenates the records of src onto b.
func (b *WriteBatchMV) Append(src *WriteBatchMV) {
	b.SetCount(b.Count() + src.Count())
	b.rep = append(b.rep, src.rep[headerSize:]...)
}

// ApproximateSize returns the byte size of the staged batch, header included.
func (b *WriteBatchMV) ApproximateSize() int {
	return len(b.rep)
}

// Iterate decodes the staged records in order, invoking the handler once per
// record.
func (b *WriteBatchMV) Iterate(h MVHandler) error {
	if len(b.rep) < headerSize {
		return corruptionf("malformed WriteBatchMV (too small)")
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
				return corruptionf("bad WriteBatchMV Put")
			}
			vt, rest, ok := base.GetFixed64(rest)
			if !ok {
				return corruptionf("bad WriteBatchMV Put")
			}
			value, rest, ok := base.GetLengthPrefixedSlice(rest)
			if !ok {
				return corruptionf("bad WriteBatchMV Put")
			}
			h.Put(key, base.ValidTime(vt), value)
			input = rest
		case base.KeyKindDelete:
			key, rest, ok := base.GetLengthPrefixedSlice(input)
			if !ok {
				return corruptionf("bad WriteBatchMV Delete")
			}
			vt, rest, ok := base.GetFixed64(rest)
			if !ok {
				return corruptionf("bad WriteBatchMV Delete")
			}
			h.Delete(key, base.ValidTime(vt))
			input = rest
		default:
			return corruptionf("unknown WriteBatchMV tag")
		}
	}
	if found != b.Count() {
		return corruptionf("WriteBatchMV has wrong count")
	}
	return nil
}

// Count returns the number of staged records.
func (b *WriteBatchMV) Count() uint32 {
	return binary.LittleEndian.Uint32(b.rep[8:])
}

// SetCount overwrites the record count in the header.
func (b *WriteBatchMV) SetCount(n uint32) {
	binary.LittleEndian.PutUint32(b.rep[8:], n)
}

// Sequence returns the sequence number the first record receives on replay.
func (b *WriteBatchMV) Sequence() base.SeqNum {
	return base.SeqNum(binary.LittleEndian.Uint64(b.rep))
}

// SetSequence seals the batch against a base sequence number.
func (b *WriteBatchMV) SetSequence(seq base.SeqNum) {
	binary.LittleEndian.PutUint64(b.rep, uint64(seq))
}

// Contents exposes the backing buffer. The caller must not modify it.
func (b *WriteBatchMV) Contents() []byte {
	return b.rep
}

// SetContents replaces the batch with a buffer recovered from the log.
func (b *WriteBatchMV) SetContents(contents []byte) {
	if len(contents) < headerSize {
		panic("batch: contents smaller than a WriteBatchMV header")
	}
	b.rep = append(b.rep[:0], contents...)
}
