package base

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKey_Views(t *testing.T) {
	tests := []struct {
		name    string
		userKey []byte
		seq     SeqNum
	}{
		{name: "short key stays inline", userKey: []byte("user"), seq: 42},
		{name: "empty key", userKey: []byte{}, seq: 0},
		{name: "large key spills to pool", userKey: make([]byte, 500), seq: MaxSeqNum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lk := NewLookupKey(tt.userKey, tt.seq)
			defer lk.Release()

			assert.Equal(t, tt.userKey, lk.UserKey())

			ikey := lk.InternalKey()
			require.Len(t, ikey, len(tt.userKey)+TrailerLen)
			parsed, ok := ParseInternalKey(ikey)
			require.True(t, ok)
			assert.Equal(t, tt.seq, parsed.SeqNum())
			assert.Equal(t, KeyKindSeek, parsed.Kind())

			// the memtable key is the internal key behind a varint32 length
			mkey := lk.MemtableKey()
			l, n := binary.Uvarint(mkey)
			require.Positive(t, n)
			assert.Equal(t, uint64(len(tt.userKey)+TrailerLen), l)
			assert.Equal(t, ikey, mkey[n:])
		})
	}
}

func TestMVLookupKey_Views(t *testing.T) {
	tests := []struct {
		name    string
		userKey []byte
		seq     SeqNum
		vt      ValidTime
	}{
		{name: "short key stays inline", userKey: []byte("user"), seq: 42, vt: 7},
		{name: "large key spills to pool", userKey: make([]byte, 300), seq: 1, vt: MinValidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lk := NewMVLookupKey(tt.userKey, tt.seq, tt.vt)
			defer lk.Release()

			assert.Equal(t, tt.userKey, lk.UserKey())

			ikey := lk.InternalKey()
			require.Len(t, ikey, len(tt.userKey)+MVTrailerLen)
			parsed, ok := ParseMVInternalKey(ikey)
			require.True(t, ok)
			assert.Equal(t, tt.seq, parsed.SeqNum())
			assert.Equal(t, KeyKindSeek, parsed.Kind())
			assert.Equal(t, tt.vt, parsed.ValidTime)

			mkey := lk.MemtableKey()
			l, n := binary.Uvarint(mkey)
			require.Positive(t, n)
			assert.Equal(t, uint64(len(tt.userKey)+MVTrailerLen), l)
			assert.Equal(t, ikey, mkey[n:])
		})
	}
}

func TestLookupKey_SeeksNewestRecord(t *testing.T) {
	// A probe at sequence s must sort at or before every record of the same
	// user key with sequence <= s, and after records with sequence > s.
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), false)
	lk := NewLookupKey([]byte("k"), 10)
	defer lk.Release()

	newer := AppendInternalKey(nil, MakeKey([]byte("k"), 11, KeyKindSet))
	visible := AppendInternalKey(nil, MakeKey([]byte("k"), 10, KeyKindDelete))
	older := AppendInternalKey(nil, MakeKey([]byte("k"), 9, KeyKindSet))

	assert.Positive(t, cmp.Compare(lk.InternalKey(), newer))
	assert.Negative(t, cmp.Compare(lk.InternalKey(), visible))
	assert.Negative(t, cmp.Compare(lk.InternalKey(), older))
}
