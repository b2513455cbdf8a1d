package order

import (
	"github.com/gostonefire/chainmap/internal/arena"
	"github.com/gostonefire/chainmap/internal/conf"
	"golang.org/x/exp/constraints"
)

// List - Doubly linked list of arena entries kept in the order they were first inserted.
// The list only navigates, entries are owned by the arena.
type List[K constraints.Signed, V any] struct {
	arena *arena.Arena[K, V]
	head  int64
	tail  int64
}

// NewList - Returns a pointer to a new, empty List over the given arena
func NewList[K constraints.Signed, V any](a *arena.Arena[K, V]) *List[K, V] {
	return &List[K, V]{arena: a, head: conf.NilIndex, tail: conf.NilIndex}
}

// PushBack - Appends the entry at index to the tail of the list
func (L *List[K, V]) PushBack(index int64) {
	e := L.arena.At(index)
	e.NextInOrder = conf.NilIndex
	e.PrevInOrder = L.tail

	if L.tail == conf.NilIndex {
		L.head = index
	} else {
		L.arena.At(L.tail).NextInOrder = index
	}
	L.tail = index
}

// Unlink - Splices the entry at index out of the list, moving head or tail if it was an endpoint
func (L *List[K, V]) Unlink(index int64) {
	e := L.arena.At(index)

	if e.PrevInOrder != conf.NilIndex {
		L.arena.At(e.PrevInOrder).NextInOrder = e.NextInOrder
	} else {
		L.head = e.NextInOrder
	}
	if e.NextInOrder != conf.NilIndex {
		L.arena.At(e.NextInOrder).PrevInOrder = e.PrevInOrder
	} else {
		L.tail = e.PrevInOrder
	}

	e.PrevInOrder = conf.NilIndex
	e.NextInOrder = conf.NilIndex
}

// Head - Returns the index of the first entry, conf.NilIndex if empty
func (L *List[K, V]) Head() int64 {
	return L.head
}

// Next - Returns the index following index, conf.NilIndex at the tail
func (L *List[K, V]) Next(index int64) int64 {
	return L.arena.At(index).NextInOrder
}

// Walk - Calls fn for each entry index from head to tail until fn returns false.
// fn must not unlink entries.
func (L *List[K, V]) Walk(fn func(index int64) bool) {
	for i := L.head; i != conf.NilIndex; i = L.arena.At(i).NextInOrder {
		if !fn(i) {
			return
		}
	}
}
