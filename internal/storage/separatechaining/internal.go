package separatechaining

import (
	"github.com/gostonefire/chainmap/internal/conf"
)

// newBuckets - Returns n empty chains
func newBuckets(n int64) []chain {
	buckets := make([]chain, n)
	for i := range buckets {
		buckets[i] = chain{head: conf.NilIndex, tail: conf.NilIndex}
	}
	return buckets
}

// find - Scans a bucket chain for key.
//
// It returns:
//   - index is the arena index of the match, conf.NilIndex if none
//   - prev is the arena index of the entry before the match in the chain, conf.NilIndex if the match is the head
func (S *SCTable[K, V]) find(bucketNo int64, key K) (index, prev int64) {
	prev = conf.NilIndex
	for index = S.buckets[bucketNo].head; index != conf.NilIndex; index = S.arena.At(index).NextInBucket {
		if S.arena.At(index).Key == key {
			return
		}
		prev = index
	}

	prev = conf.NilIndex
	return
}

// appendToChain - Links the entry at index to the tail of a bucket chain
func (S *SCTable[K, V]) appendToChain(bucketNo, index int64) {
	S.arena.At(index).NextInBucket = conf.NilIndex

	c := &S.buckets[bucketNo]
	if c.tail == conf.NilIndex {
		c.head = index
	} else {
		S.arena.At(c.tail).NextInBucket = index
	}
	c.tail = index
}

// unlinkFromChain - Removes the entry at index from a bucket chain, prev being its predecessor in the chain
func (S *SCTable[K, V]) unlinkFromChain(bucketNo, index, prev int64) {
	c := &S.buckets[bucketNo]
	next := S.arena.At(index).NextInBucket

	if prev == conf.NilIndex {
		c.head = next
	} else {
		S.arena.At(prev).NextInBucket = next
	}
	if c.tail == index {
		c.tail = prev
	}

	S.arena.At(index).NextInBucket = conf.NilIndex
}

// relink - Rebuilds all chains of the current bucket array from walk, used to roll back a failed extend
func (S *SCTable[K, V]) relink(walk func(fn func(index int64) bool)) {
	S.buckets = newBuckets(int64(len(S.buckets)))
	walk(func(index int64) bool {
		if bucketNo, err := S.GetBucketNo(S.arena.At(index).Key); err == nil {
			S.appendToChain(bucketNo, index)
		}
		return true
	})
}
