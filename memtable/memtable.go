package memtable

import (
	"errors"
	"sync/atomic"

	"github.com/zhangyunhao116/skipmap"

	"github.com/essethon/go-lsm-format/base"
)

// ErrNotFound is returned by Get for a key whose newest visible record is a
// tombstone. The lookup is conclusive; later tables need not be consulted.
var ErrNotFound = errors.New("memtable: not found")

type orderedTable = skipmap.FuncMap[[]byte, []byte]

// MemTable is an in-memory, sorted buffer of encoded internal keys. Entries
// are never overwritten: each Add stores a new version under a fresh
// sequence number, and readers pick the newest version at or below their
// snapshot. Concurrent readers are safe; writers must be serialized by the
// caller so sequence numbers stay gap-free.
type MemTable struct {
	opts  options
	cmp   *base.InternalKeyComparator
	table *orderedTable
	size  atomic.Int64
}

// New builds an empty memtable. By default it orders user keys bytewise in
// single-version mode; see WithComparer and WithMultiVersion.
func New(opts ...OptionFn) *MemTable {
	m := &MemTable{opts: defaultOptions}
	for _, o := range opts {
		o(m)
	}
	m.cmp = base.NewInternalKeyComparator(m.opts.userCmp, m.opts.multiVersion)
	m.table = skipmap.NewFunc[[]byte, []byte](func(a, b []byte) bool {
		return m.cmp.Compare(a, b) < 0
	})
	return m
}

// Add inserts a record under seq. The key and value are copied. The memtable
// must have been built in single-version mode.
func (m *MemTable) Add(seq base.SeqNum, kind base.KeyKind, key, value []byte) {
	ikey := base.AppendInternalKey(make([]byte, 0, len(key)+base.TrailerLen), base.MakeKey(key, seq, kind))
	m.store(ikey, value)
}

// AddMV inserts a multi-version record under seq at valid time vt. The
// memtable must have been built with WithMultiVersion.
func (m *MemTable) AddMV(seq base.SeqNum, kind base.KeyKind, key []byte, vt base.ValidTime, value []byte) {
	ikey := base.AppendMVInternalKey(make([]byte, 0, len(key)+base.MVTrailerLen), base.MakeMVKey(key, seq, kind, vt))
	m.store(ikey, value)
}

func (m *MemTable) store(ikey, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	m.table.Store(ikey, v)
	m.size.Add(int64(len(ikey) + len(v)))
}

// Get looks up the newest record of lk's user key visible at lk's snapshot.
// It reports ok=false when the memtable holds no version of the key visible
// at that snapshot; a tombstone yields ok=true together with ErrNotFound.
func (m *MemTable) Get(lk *base.LookupKey) (value []byte, ok bool, err error) {
	return m.seekFirst(lk.InternalKey(), lk.UserKey(), base.ExtractUserKey)
}

// GetMV is the multi-version analogue of Get.
func (m *MemTable) GetMV(lk *base.MVLookupKey) (value []byte, ok bool, err error) {
	return m.seekFirst(lk.InternalKey(), lk.UserKey(), base.MVExtractUserKey)
}

// seekFirst scans to the first entry at or after the probe key. Because the
// probe carries the seek kind, that entry is the newest version of the user
// key at or below the probe's sequence number, if any version exists.
func (m *MemTable) seekFirst(seek, userKey []byte, extract func([]byte) []byte) (value []byte, ok bool, err error) {
	userCmp := m.cmp.UserComparer()
	m.table.Range(func(ikey, v []byte) bool {
		if m.cmp.Compare(ikey, seek) < 0 {
			return true
		}
		if userCmp.Compare(extract(ikey), userKey) != 0 {
			return false
		}
		k, valid := base.ParseInternalKey(ikey[:len(ikey)-m.suffixPadding()])
		if !valid {
			return false
		}
		ok = true
		if k.Kind() == base.KeyKindDelete {
			err = ErrNotFound
			return false
		}
		value = v
		return false
	})
	return value, ok, err
}

func (m *MemTable) suffixPadding() int {
	if m.opts.multiVersion {
		return base.MVTrailerLen - base.TrailerLen
	}
	return 0
}

// Len returns the number of records held, every version counted.
func (m *MemTable) Len() int {
	return m.table.Len()
}

// ApproximateMemoryUsage returns the byte size of all stored keys and values.
func (m *MemTable) ApproximateMemoryUsage() int64 {
	return m.size.Load()
}

// Comparer returns the internal key comparator ordering this memtable.
func (m *MemTable) Comparer() *base.InternalKeyComparator {
	return m.cmp
}
