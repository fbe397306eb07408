package filter

import (
	go_blocked_bloom_filter "github.com/datnguyenzzz/nogodb/lib/go-blocked-bloom-filter"
)

// bloomPolicy adapts the blocked bloom filter into the Policy shape: the
// writer's Add/Build pair becomes a one-shot CreateFilter.
type bloomPolicy struct {
	bf go_blocked_bloom_filter.IFilter
}

// NewBloomPolicy returns the default filter policy, a blocked bloom filter
// with the library's default bits per key.
func NewBloomPolicy() Policy {
	return &bloomPolicy{bf: go_blocked_bloom_filter.NewBloomFilter()}
}

func (p *bloomPolicy) Name() string {
	return p.bf.Name()
}

func (p *bloomPolicy) CreateFilter(keys [][]byte, dst *[]byte) {
	w := p.bf.NewWriter()
	for _, k := range keys {
		w.Add(k)
	}
	w.Build(dst)
}

func (p *bloomPolicy) KeyMayMatch(key, filter []byte) bool {
	return p.bf.MayContain(filter, key)
}

var _ Policy = (*bloomPolicy)(nil)
