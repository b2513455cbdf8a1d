package chainmap

import (
	"github.com/gostonefire/chainmap/crt"
	"github.com/gostonefire/chainmap/internal/conf"
	"golang.org/x/exp/constraints"
)

// OrderIterator - Is used to iterate over records one by one in the order they were first inserted.
// The hash map must not be modified while iterating.
type OrderIterator[K constraints.Signed, V any] struct {
	hashMap *HashMap[K, V]
	index   int64
}

// NewOrderIterator - Returns a pointer to a new OrderIterator positioned before the first record
func (H *HashMap[K, V]) NewOrderIterator() *OrderIterator[K, V] {
	return &OrderIterator[K, V]{
		hashMap: H,
		index:   H.order.Head(),
	}
}

// HasNext - Returns true if there are more records to be fetched from a call to Next.
func (O *OrderIterator[K, V]) HasNext() bool {
	return O.index != conf.NilIndex
}

// Next - Returns the next record.
// It returns:
//   - key and value of the next record.
//   - err is of type crt.NoRecordFound if there are no more records when calling this function.
func (O *OrderIterator[K, V]) Next() (key K, value V, err error) {
	if O.index == conf.NilIndex {
		err = crt.NoRecordFound{}
		return
	}

	e := O.hashMap.arena.At(O.index)
	key, value = e.Key, e.Value
	O.index = O.hashMap.order.Next(O.index)

	return
}
