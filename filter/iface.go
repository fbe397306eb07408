package filter

// Policy builds and probes per-table filters (typically bloom filters) over a
// set of keys. Implementations must be safe for concurrent probing.
type Policy interface {
	// Name identifies the filter encoding. It is persisted alongside the
	// filter blocks, so changing it invalidates stored filters.
	Name() string

	// CreateFilter appends a filter summarizing keys to dst. The filter must
	// answer KeyMayMatch(k) == true for every k in keys.
	CreateFilter(keys [][]byte, dst *[]byte)

	// KeyMayMatch returns whether the encoded filter may contain the given
	// key. False positives are possible, false negatives are not.
	KeyMayMatch(key, filter []byte) bool
}
