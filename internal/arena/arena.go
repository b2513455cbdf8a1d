package arena

import (
	"github.com/gostonefire/chainmap/internal/conf"
	"github.com/gostonefire/chainmap/internal/model"
	"golang.org/x/exp/constraints"
)

// Arena - Index-stable storage of entries. An entry keeps its index for as long as it lives, freed slots
// are handed out again by later calls to Alloc.
type Arena[K constraints.Signed, V any] struct {
	entries []model.Entry[K, V]
	free    []int64
	live    int64
}

// NewArena - Returns a pointer to a new, empty Arena
func NewArena[K constraints.Signed, V any]() *Arena[K, V] {
	return &Arena[K, V]{}
}

// Alloc - Stores a new entry with all links set to conf.NilIndex and returns its index
func (A *Arena[K, V]) Alloc(key K, value V) (index int64) {
	e := model.Entry[K, V]{
		State:        model.RecordOccupied,
		Key:          key,
		Value:        value,
		NextInBucket: conf.NilIndex,
		PrevInOrder:  conf.NilIndex,
		NextInOrder:  conf.NilIndex,
	}

	if n := len(A.free); n > 0 {
		index = A.free[n-1]
		A.free = A.free[:n-1]
		A.entries[index] = e
	} else {
		index = int64(len(A.entries))
		A.entries = append(A.entries, e)
	}
	A.live++

	return
}

// Free - Releases the slot at index. Freeing a slot that is not occupied does nothing.
func (A *Arena[K, V]) Free(index int64) {
	if !A.IsLive(index) {
		return
	}
	A.entries[index] = model.Entry[K, V]{
		State:        model.RecordDeleted,
		NextInBucket: conf.NilIndex,
		PrevInOrder:  conf.NilIndex,
		NextInOrder:  conf.NilIndex,
	}
	A.free = append(A.free, index)
	A.live--
}

// At - Returns a pointer to the entry at index, the pointer is valid until the next Alloc
func (A *Arena[K, V]) At(index int64) *model.Entry[K, V] {
	return &A.entries[index]
}

// IsLive - Returns true if index addresses an occupied slot
func (A *Arena[K, V]) IsLive(index int64) bool {
	return index >= 0 && index < int64(len(A.entries)) && A.entries[index].State == model.RecordOccupied
}

// Len - Returns the number of live entries
func (A *Arena[K, V]) Len() int64 {
	return A.live
}
