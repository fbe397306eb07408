// Package go_lsm_format implements the key and record encoding core of a
// log-structured key-value storage engine: encoded internal keys and their
// comparator, memtable lookup keys, the filter-policy adapter, and the
// count-prefixed write batches that stage and replay mutations. An optional
// multi-version mode attaches an application-supplied valid time to every
// record.
package go_lsm_format

import (
	"github.com/essethon/go-lsm-format/base"
	"github.com/essethon/go-lsm-format/batch"
	"github.com/essethon/go-lsm-format/filter"
	"github.com/essethon/go-lsm-format/memtable"
)

type (
	KeyKind       = base.KeyKind
	SeqNum        = base.SeqNum
	ValidTime     = base.ValidTime
	Trailer       = base.Trailer
	InternalKey   = base.InternalKey
	MVInternalKey = base.MVInternalKey
	LookupKey     = base.LookupKey
	MVLookupKey   = base.MVLookupKey
	IComparer     = base.IComparer

	WriteBatch   = batch.WriteBatch
	WriteBatchMV = batch.WriteBatchMV

	FilterPolicy = filter.Policy

	MemTable = memtable.MemTable
)

const (
	KeyKindDelete = base.KeyKindDelete
	KeyKindSet    = base.KeyKindSet
	KeyKindSeek   = base.KeyKindSeek

	MaxSeqNum    = base.MaxSeqNum
	MinValidTime = base.MinValidTime
)

// ErrCorruption marks structurally invalid batch data.
var ErrCorruption = base.ErrCorruption

// NewWriteBatch returns an empty single-version batch.
func NewWriteBatch() *WriteBatch {
	return batch.NewWriteBatch()
}

// NewWriteBatchMV returns an empty multi-version batch.
func NewWriteBatchMV() *WriteBatchMV {
	return batch.NewWriteBatchMV()
}

// NewMemTable builds an empty memtable; see the memtable package for options.
func NewMemTable(opts ...memtable.OptionFn) *MemTable {
	return memtable.New(opts...)
}

// NewInternalKeyComparator wraps a user comparer into the ordering used for
// encoded internal keys.
func NewInternalKeyComparator(userCmp IComparer, multiVersion bool) *base.InternalKeyComparator {
	return base.NewInternalKeyComparator(userCmp, multiVersion)
}

// NewBytewiseComparer returns the default lexicographic user-key comparer.
func NewBytewiseComparer() IComparer {
	return base.NewBytewiseComparer()
}

// NewBloomPolicy returns the default blocked-bloom filter policy over user
// keys.
func NewBloomPolicy() FilterPolicy {
	return filter.NewBloomPolicy()
}

// NewInternalFilterPolicy adapts a user-key filter policy to the encoded
// internal keys the table layer hands it.
func NewInternalFilterPolicy(user FilterPolicy) FilterPolicy {
	return filter.NewInternalPolicy(user)
}

// InsertInto replays a sealed batch into a memtable; see batch.InsertInto.
func InsertInto(b *WriteBatch, mem *MemTable) error {
	return batch.InsertInto(b, mem)
}

// InsertIntoMV replays a sealed multi-version batch into a memtable.
func InsertIntoMV(b *WriteBatchMV, mem *MemTable) error {
	return batch.InsertIntoMV(b, mem)
}
