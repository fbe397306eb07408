package batch

import "github.com/essethon/go-lsm-format/base"

// Handler receives the records of a WriteBatch in insertion order.
type Handler interface {
	Put(key, value []byte)
	Delete(key []byte)
}

// MVHandler receives the records of a WriteBatchMV in insertion order, with
// the valid time of each record.
type MVHandler interface {
	Put(key []byte, vt base.ValidTime, value []byte)
	Delete(key []byte, vt base.ValidTime)
}

// MemTable is the insert surface a batch is replayed into. Implementations
// own the physical key encoding; callers hand over parsed parts.
type MemTable interface {
	Add(seq base.SeqNum, kind base.KeyKind, key, value []byte)
	AddMV(seq base.SeqNum, kind base.KeyKind, key []byte, vt base.ValidTime, value []byte)
}
