package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essethon/go-lsm-format/base"
)

type memTableCall struct {
	seq   base.SeqNum
	kind  base.KeyKind
	key   string
	vt    base.ValidTime
	value string
	mv    bool
}

type recordingMemTable struct {
	calls []memTableCall
}

func (m *recordingMemTable) Add(seq base.SeqNum, kind base.KeyKind, key, value []byte) {
	m.calls = append(m.calls, memTableCall{seq: seq, kind: kind, key: string(key), value: string(value)})
}

func (m *recordingMemTable) AddMV(seq base.SeqNum, kind base.KeyKind, key []byte, vt base.ValidTime, value []byte) {
	m.calls = append(m.calls, memTableCall{seq: seq, kind: kind, key: string(key), vt: vt, value: string(value), mv: true})
}

func TestInsertInto(t *testing.T) {
	b := NewWriteBatch()
	b.SetSequence(100)
	b.Put([]byte("k1"), []byte("v1"))
	b.Delete([]byte("k2"))

	var mem recordingMemTable
	require.NoError(t, InsertInto(b, &mem))
	assert.Equal(t, []memTableCall{
		{seq: 100, kind: base.KeyKindSet, key: "k1", value: "v1"},
		{seq: 101, kind: base.KeyKindDelete, key: "k2"},
	}, mem.calls)
}

func TestInsertInto_SequenceRange(t *testing.T) {
	b := NewWriteBatch()
	b.SetSequence(512)
	for i := 0; i < 10; i++ {
		b.Put([]byte{byte(i)}, []byte{byte(i)})
	}

	var mem recordingMemTable
	require.NoError(t, InsertInto(b, &mem))
	require.Len(t, mem.calls, int(b.Count()))
	for i, call := range mem.calls {
		assert.Equal(t, b.Sequence()+base.SeqNum(i), call.seq)
	}
}

func TestInsertInto_PropagatesCorruption(t *testing.T) {
	b := NewWriteBatch()
	b.Put([]byte("k"), []byte("v"))
	b.SetCount(2)

	var mem recordingMemTable
	err := InsertInto(b, &mem)
	assert.ErrorIs(t, err, base.ErrCorruption)
}

func TestInsertIntoMV(t *testing.T) {
	b := NewWriteBatchMV()
	b.SetSequence(7)
	b.Put([]byte("k"), 42, []byte("v"))
	b.Delete([]byte("k"), 43)

	var mem recordingMemTable
	require.NoError(t, InsertIntoMV(b, &mem))
	assert.Equal(t, []memTableCall{
		{seq: 7, kind: base.KeyKindSet, key: "k", vt: 42, value: "v", mv: true},
		{seq: 8, kind: base.KeyKindDelete, key: "k", vt: 43, mv: true},
	}, mem.calls)
}
