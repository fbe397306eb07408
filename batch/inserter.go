package batch

import "github.com/essethon/go-lsm-format/base"

// memTableInserter replays batch records into a memtable, handing out one
// sequence number per record starting from the batch's base sequence.
type memTableInserter struct {
	seq base.SeqNum
	mem MemTable
}

func (ins *memTableInserter) Put(key, value []byte) {
	ins.mem.Add(ins.seq, base.KeyKindSet, key, value)
	ins.seq++
}

func (ins *memTableInserter) Delete(key []byte) {
	ins.mem.Add(ins.seq, base.KeyKindDelete, key, nil)
	ins.seq++
}

type memTableMVInserter struct {
	seq base.SeqNum
	mem MemTable
}

func (ins *memTableMVInserter) Put(key []byte, vt base.ValidTime, value []byte) {
	ins.mem.AddMV(ins.seq, base.KeyKindSet, key, vt, value)
	ins.seq++
}

func (ins *memTableMVInserter) Delete(key []byte, vt base.ValidTime) {
	ins.mem.AddMV(ins.seq, base.KeyKindDelete, key, vt, nil)
	ins.seq++
}

// InsertInto replays b into mem. On success the memtable holds exactly
// b.Count() new records at sequence numbers [b.Sequence(), b.Sequence() +
// b.Count()).
func InsertInto(b *WriteBatch, mem MemTable) error {
	return b.Iterate(&memTableInserter{seq: b.Sequence(), mem: mem})
}

// InsertIntoMV replays a multi-version batch into mem with the same sequence
// number guarantees as InsertInto.
func InsertIntoMV(b *WriteBatchMV, mem MemTable) error {
	return b.Iterate(&memTableMVInserter{seq: b.Sequence(), mem: mem})
}

var (
	_ Handler   = (*memTableInserter)(nil)
	_ MVHandler = (*memTableMVInserter)(nil)
)
