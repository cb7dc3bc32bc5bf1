package lsdoc

import "fmt"

// ============================================================
// Name Table
// ============================================================
//
// LSF interns every node and attribute name into a 512-bucket hash table and
// the records reference names as (bucket, index) pairs. The hash and bucket
// fold are fixed by the format; changing either breaks name resolution in
// files written by other tools.

// nameBuckets is the bucket count of the on-disk table.
const nameBuckets = 512

// nullNameIndex marks an absent name reference in either half of the pair.
const nullNameIndex = 0xffff

// hashName computes the format's dual-accumulator string hash. Both
// accumulators start at 5381 and fold alternating bytes.
func hashName(s string) uint32 {
	h1 := uint32(5381)
	h2 := h1
	for i := 0; i < len(s); i += 2 {
		h1 = ((h1 << 5) + h1) ^ uint32(s[i])
		if i+1 < len(s) {
			h2 = ((h2 << 5) + h2) ^ uint32(s[i+1])
		}
	}
	return h1 + h2*1566083941
}

// nameBucket folds a hash into a bucket index by xoring its 9-bit slices.
func nameBucket(h uint32) uint16 {
	return uint16((h & 0x1ff) ^ ((h >> 9) & 0x1ff) ^ ((h >> 18) & 0x1ff) ^ ((h >> 27) & 0x1ff))
}

// nameRef is a resolved (bucket, index) name pair.
type nameRef struct {
	outer uint16
	inner uint16
}

// ============================================================
// Writing
// ============================================================

// nameTable builds the interned table while encoding. Interning the same
// string twice yields the same pair, so output is deterministic for a given
// insertion order.
type nameTable struct {
	buckets [nameBuckets][]string
	refs    map[string]nameRef
}

func newNameTable() *nameTable {
	return &nameTable{refs: make(map[string]nameRef)}
}

func (t *nameTable) intern(s string) nameRef {
	if ref, ok := t.refs[s]; ok {
		return ref
	}
	outer := nameBucket(hashName(s))
	ref := nameRef{outer: outer, inner: uint16(len(t.buckets[outer]))}
	t.buckets[outer] = append(t.buckets[outer], s)
	t.refs[s] = ref
	return ref
}

// encode writes the full table: bucket count, then per bucket an entry count
// followed by length-prefixed strings. Empty buckets are written with a zero
// count.
func (t *nameTable) encode(w *byteWriter) {
	w.u32(nameBuckets)
	for _, bucket := range t.buckets {
		w.u16(uint16(len(bucket)))
		for _, s := range bucket {
			w.u16(uint16(len(s)))
			w.bytes([]byte(s))
		}
	}
}

// ============================================================
// Reading
// ============================================================

// nameList is the decoded table. Lookups are by the (bucket, index) pairs
// stored in node and attribute records.
type nameList struct {
	buckets [][]string
}

func decodeNameTable(r *byteReader) (*nameList, error) {
	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	l := &nameList{buckets: make([][]string, count)}
	for i := uint32(0); i < count; i++ {
		entries, err := r.u16()
		if err != nil {
			return nil, err
		}
		bucket := make([]string, entries)
		for j := uint16(0); j < entries; j++ {
			n, err := r.u16()
			if err != nil {
				return nil, err
			}
			b, err := r.take(int(n))
			if err != nil {
				return nil, err
			}
			bucket[j] = decodeRawString(b)
		}
		l.buckets[i] = bucket
	}
	return l, nil
}

// get resolves a name pair. The null sentinel in either half resolves to the
// empty string; any other out-of-range pair is corruption.
func (l *nameList) get(outer, inner uint16) (string, error) {
	if outer == nullNameIndex || inner == nullNameIndex {
		return "", nil
	}
	if int(outer) >= len(l.buckets) {
		return "", fmt.Errorf("%w: bucket %d of %d", ErrInvalidStringIndex, outer, len(l.buckets))
	}
	bucket := l.buckets[outer]
	if int(inner) >= len(bucket) {
		return "", fmt.Errorf("%w: entry %d of %d in bucket %d",
			ErrInvalidStringIndex, inner, len(bucket), outer)
	}
	return bucket[inner], nil
}
