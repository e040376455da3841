package qtree

import (
	"encoding/binary"
	"iter"
)

// Bucket holds the ascending-sorted set of indices at one cost level, ready
// to be walked by a later level's combination passes.
type Bucket interface {
	// All yields every index in ascending order.
	All() iter.Seq[int]
	// Len reports how many indices the bucket holds.
	Len() int
}

// sliceBucket is the teacher-idiomatic default: a plain slice, the same
// shape the rest of this module uses for small fixed collections.
type sliceBucket []int

func (b sliceBucket) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, n := range b {
			if !yield(n) {
				return
			}
		}
	}
}

func (b sliceBucket) Len() int { return len(b) }

// gapBucket is spec.md §4.5's low-memory variant: ascending indices encoded
// as the gap from the previous index, varint-packed, decoded on the fly.
// Equivalent externally to sliceBucket; trades CPU for memory when m is
// large and costs cluster densely within a level.
type gapBucket []byte

func newGapBucket(indices []int) gapBucket {
	buf := make([]byte, 0, len(indices)*2)
	prev := 0
	var tmp [binary.MaxVarintLen64]byte
	for _, n := range indices {
		gap := uint64(n - prev)
		k := binary.PutUvarint(tmp[:], gap)
		buf = append(buf, tmp[:k]...)
		prev = n
	}

	return gapBucket(buf)
}

func (b gapBucket) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		buf := []byte(b)
		cur := 0
		for len(buf) > 0 {
			gap, n := binary.Uvarint(buf)
			if n <= 0 {
				return
			}
			cur += int(gap)
			if !yield(cur) {
				return
			}
			buf = buf[n:]
		}
	}
}

func (b gapBucket) Len() int {
	n := 0
	for range b.All() {
		n++
	}

	return n
}

// newBucket builds the bucket representation Config.LowMemory selects from
// an already ascending-sorted slice of indices.
func newBucket(lowMemory bool, indices []int) Bucket {
	if lowMemory {
		return newGapBucket(indices)
	}

	return sliceBucket(indices)
}
