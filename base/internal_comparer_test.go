package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(userKey string, seq SeqNum, kind KeyKind) []byte {
	return AppendInternalKey(nil, MakeKey([]byte(userKey), seq, kind))
}

func encodeMV(userKey string, seq SeqNum, kind KeyKind, vt ValidTime) []byte {
	return AppendMVInternalKey(nil, MakeMVKey([]byte(userKey), seq, kind, vt))
}

func TestInternalKeyComparator_Name(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), false)
	assert.Equal(t, "leveldb.InternalKeyComparator", cmp.Name())

	mvCmp := NewInternalKeyComparator(NewBytewiseComparer(), true)
	assert.Equal(t, "leveldb.InternalKeyComparator", mvCmp.Name())
}

func TestInternalKeyComparator_Order(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), false)
	tests := []struct {
		name string
		a    []byte
		b    []byte
		want int
	}{
		{
			name: "user key dominates sequence",
			a:    encode("abc", 5, KeyKindSet),
			b:    encode("abd", 1, KeyKindSet),
			want: -1,
		},
		{
			name: "higher sequence sorts first",
			a:    encode("abc", 7, KeyKindDelete),
			b:    encode("abc", 5, KeyKindSet),
			want: -1,
		},
		{
			name: "same sequence, set before delete",
			a:    encode("abc", 5, KeyKindSet),
			b:    encode("abc", 5, KeyKindDelete),
			want: -1,
		},
		{
			name: "identical keys compare equal",
			a:    encode("abc", 5, KeyKindSet),
			b:    encode("abc", 5, KeyKindSet),
			want: 0,
		},
		{
			name: "empty user key orders before all",
			a:    encode("", MaxSeqNum, KeyKindSet),
			b:    encode("a", 0, KeyKindDelete),
			want: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cmp.Compare(tt.a, tt.b))
			// antisymmetry
			assert.Equal(t, -tt.want, cmp.Compare(tt.b, tt.a))
		})
	}
}

func TestInternalKeyComparator_OrderMV(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), true)
	tests := []struct {
		name string
		a    []byte
		b    []byte
		want int
	}{
		{
			name: "user key dominates",
			a:    encodeMV("abc", 5, KeyKindSet, 100),
			b:    encodeMV("abd", 9, KeyKindSet, 1),
			want: -1,
		},
		{
			name: "higher sequence sorts first",
			a:    encodeMV("k", 7, KeyKindSet, 10),
			b:    encodeMV("k", 5, KeyKindSet, 10),
			want: -1,
		},
		{
			name: "equal trailer, higher valid time sorts first",
			a:    encodeMV("k", 5, KeyKindSet, 90),
			b:    encodeMV("k", 5, KeyKindSet, 40),
			want: -1,
		},
		{
			name: "bytewise-equal keys compare equal",
			a:    encodeMV("k", 5, KeyKindSet, 40),
			b:    encodeMV("k", 5, KeyKindSet, 40),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cmp.Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, cmp.Compare(tt.b, tt.a))
		})
	}
}

func TestInternalKeyComparator_Transitive(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), false)
	// ordered witnesses: decreasing sequence within a user key, then the
	// next user key
	keys := [][]byte{
		encode("a", 9, KeyKindSet),
		encode("a", 9, KeyKindDelete),
		encode("a", 3, KeyKindSet),
		encode("b", 100, KeyKindSet),
		encode("b", 1, KeyKindDelete),
		encode("c", 50, KeyKindSet),
	}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			assert.Negative(t, cmp.Compare(keys[i], keys[j]),
				"expected %s < %s", DebugBytes(keys[i]), DebugBytes(keys[j]))
			assert.Positive(t, cmp.Compare(keys[j], keys[i]))
		}
	}
}

func TestInternalKeyComparator_Separator(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), false)

	t.Run("shortens between distinct user keys", func(t *testing.T) {
		start := encode("helloworld", 100, KeyKindSet)
		limit := encode("helloxyz", 200, KeyKindSet)

		got := cmp.Separator(nil, start, limit)
		want := AppendInternalKey(nil, MakeKey([]byte("hellox"), MaxSeqNum, KeyKindSeek))
		require.Equal(t, want, got)

		assert.Negative(t, cmp.Compare(start, got))
		assert.Negative(t, cmp.Compare(got, limit))
		assert.LessOrEqual(t, len(got), len(start))
	})

	t.Run("same user key stays unchanged", func(t *testing.T) {
		start := encode("samekey", 100, KeyKindSet)
		limit := encode("samekey", 50, KeyKindSet)
		got := cmp.Separator(nil, start, limit)
		assert.Equal(t, start, got)
	})

	t.Run("unshortenable stays unchanged", func(t *testing.T) {
		start := encode("ab", 5, KeyKindSet)
		limit := encode("ab\x00", 5, KeyKindSet)
		got := cmp.Separator(nil, start, limit)
		assert.Equal(t, start, got)
	})
}

func TestInternalKeyComparator_SeparatorMV(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), true)

	start := encodeMV("helloworld", 100, KeyKindSet, 77)
	limit := encodeMV("helloxyz", 200, KeyKindSet, 12)

	got := cmp.Separator(nil, start, limit)
	want := AppendMVInternalKey(nil, MakeMVKey([]byte("hellox"), MaxSeqNum, KeyKindSeek, MinValidTime))
	require.Equal(t, want, got)

	assert.Negative(t, cmp.Compare(start, got))
	assert.Negative(t, cmp.Compare(got, limit))
}

func TestInternalKeyComparator_Successor(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), false)

	t.Run("shortens", func(t *testing.T) {
		key := encode("hello", 42, KeyKindSet)
		got := cmp.Successor(nil, key)
		want := AppendInternalKey(nil, MakeKey([]byte("i"), MaxSeqNum, KeyKindSeek))
		require.Equal(t, want, got)
		assert.Negative(t, cmp.Compare(key, got))
	})

	t.Run("all 0xff stays unchanged", func(t *testing.T) {
		key := encode("\xff\xff", 42, KeyKindSet)
		got := cmp.Successor(nil, key)
		assert.Equal(t, key, got)
	})
}

func TestInternalKeyComparator_SuccessorMV(t *testing.T) {
	cmp := NewInternalKeyComparator(NewBytewiseComparer(), true)

	key := encodeMV("hello", 42, KeyKindSet, 99)
	got := cmp.Successor(nil, key)
	want := AppendMVInternalKey(nil, MakeMVKey([]byte("i"), MaxSeqNum, KeyKindSeek, MinValidTime))
	require.Equal(t, want, got)
	assert.Negative(t, cmp.Compare(key, got))
}
