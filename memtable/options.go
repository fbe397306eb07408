package memtable

import "github.com/essethon/go-lsm-format/base"

type OptionFn func(*MemTable)

type options struct {
	// userCmp orders the user-key portions of stored entries.
	userCmp base.IComparer

	// multiVersion selects the valid-time key layout. It must match the mode
	// of the batches replayed into this table.
	multiVersion bool
}

var defaultOptions = options{
	userCmp:      base.NewBytewiseComparer(),
	multiVersion: false,
}

func WithComparer(cmp base.IComparer) OptionFn {
	return func(m *MemTable) {
		m.opts.userCmp = cmp
	}
}

func WithMultiVersion() OptionFn {
	return func(m *MemTable) {
		m.opts.multiVersion = true
	}
}
