package separatechaining

import (
	"fmt"
	"github.com/gostonefire/chainmap/crt"
	"github.com/gostonefire/chainmap/hashfunc"
	"github.com/gostonefire/chainmap/internal/arena"
	"github.com/gostonefire/chainmap/internal/conf"
	"github.com/gostonefire/chainmap/internal/hash"
	"github.com/gostonefire/chainmap/internal/model"
	"github.com/gostonefire/chainmap/logger"
	"golang.org/x/exp/constraints"
)

// chain - Head and tail arena indices of one bucket, conf.NilIndex when the bucket is empty
type chain struct {
	head int64
	tail int64
}

// SCTable - Represents an implementation of the Separate Chaining Collision Resolution Technique.
// Every bucket is a singly linked list of arena entries threaded through Entry.NextInBucket, new entries
// are appended at the tail so chain order is insertion order within the bucket.
type SCTable[K constraints.Signed, V any] struct {
	arena             *arena.Arena[K, V]
	buckets           []chain
	hashAlgorithm     hashfunc.BucketAlgorithm
	internalAlgorithm bool
	logs              ilog.ILOG
}

// NewSCTable - Returns a pointer to a new instance of the Separate Chaining table.
//   - crtConf is a model.CRTConf struct providing the initial number of buckets and hash algorithm
//   - a is the arena holding the entries the chains link together
//
// It returns:
//   - scTable which is a pointer to the created instance
//   - err which is of type crt.InvalidConfiguration if the number of buckets is not positive
func NewSCTable[K constraints.Signed, V any](crtConf model.CRTConf, a *arena.Arena[K, V]) (scTable *SCTable[K, V], err error) {
	if crtConf.NumberOfBuckets <= 0 {
		err = crt.NewInvalidConfiguration(fmt.Sprintf("number of buckets must be positive, got %d", crtConf.NumberOfBuckets))
		return
	}

	// If no HashAlgorithm was given then use the default internal
	var internalAlg bool
	if crtConf.HashAlgorithm == nil {
		crtConf.HashAlgorithm = hash.NewModuloHashAlgorithm(crtConf.NumberOfBuckets)
		internalAlg = true
	} else {
		crtConf.HashAlgorithm.SetTableSize(crtConf.NumberOfBuckets)
	}

	tableSize := crtConf.HashAlgorithm.GetTableSize()
	if tableSize <= 0 {
		err = crt.NewBucketAlgorithm(fmt.Sprintf("hash algorithm reports table size %d", tableSize))
		return
	}

	scTable = &SCTable[K, V]{
		arena:             a,
		buckets:           newBuckets(tableSize),
		hashAlgorithm:     crtConf.HashAlgorithm,
		internalAlgorithm: internalAlg,
		logs:              crtConf.Logger,
	}

	return
}

// GetStorageParameters - Returns a struct with storage parameters from SCTable
func (S *SCTable[K, V]) GetStorageParameters() (params model.StorageParameters) {
	params = model.StorageParameters{
		NumberOfBuckets:   int64(len(S.buckets)),
		Records:           S.arena.Len(),
		InternalAlgorithm: S.internalAlgorithm,
	}

	return
}

// GetBucketNo - Returns which bucket number that the given key results in
func (S *SCTable[K, V]) GetBucketNo(key K) (bucketNo int64, err error) {
	bucketNo = S.hashAlgorithm.HashFunc1(int64(key))
	if bucketNo < 0 || bucketNo >= int64(len(S.buckets)) {
		err = crt.NewBucketAlgorithm(fmt.Sprintf("bucket number %d for key %d outside 0 -> %d", bucketNo, key, len(S.buckets)-1))
		return
	}

	return
}

// GetBucket - Returns a bucket with its records, in chain order, given the bucket number
//   - bucketNo is the identifier of a bucket, the number can be retrieved by call to GetBucketNo
func (S *SCTable[K, V]) GetBucket(bucketNo int64) (bucket model.Bucket[K, V], err error) {
	if bucketNo < 0 || bucketNo >= int64(len(S.buckets)) {
		err = fmt.Errorf("bucket number %d outside 0 -> %d", bucketNo, len(S.buckets)-1)
		return
	}

	bucket.BucketNo = bucketNo
	for i := S.buckets[bucketNo].head; i != conf.NilIndex; i = S.arena.At(i).NextInBucket {
		e := S.arena.At(i)
		bucket.Records = append(bucket.Records, model.Record[K, V]{Index: i, Key: e.Key, Value: e.Value})
	}

	return
}

// ChainLength - Returns the number of entries in a bucket without copying them
func (S *SCTable[K, V]) ChainLength(bucketNo int64) (n int64) {
	for i := S.buckets[bucketNo].head; i != conf.NilIndex; i = S.arena.At(i).NextInBucket {
		n++
	}
	return
}

// Get - Gets the arena index of the entry with the given key.
//
// It returns:
//   - index is the arena index of the matching entry, conf.NilIndex if not found.
//   - err is either of type crt.NoRecordFound or crt.BucketAlgorithm
func (S *SCTable[K, V]) Get(key K) (index int64, err error) {
	bucketNo, err := S.GetBucketNo(key)
	if err != nil {
		index = conf.NilIndex
		return
	}

	index, _ = S.find(bucketNo, key)
	if index == conf.NilIndex {
		err = crt.NoRecordFound{}
	}

	return
}

// Update - Overwrites the value of an existing entry.
//
// It returns:
//   - index is the arena index of the updated entry
//   - err is of type crt.NoRecordFound if there is no entry with that key, in which case nothing was changed
func (S *SCTable[K, V]) Update(key K, value V) (index int64, err error) {
	index, err = S.Get(key)
	if err != nil {
		return
	}
	S.arena.At(index).Value = value

	return
}

// Insert - Allocates a new entry and appends it to the tail of its bucket chain.
// The key must not already be present, the caller checks that with Get or Update.
//
// It returns:
//   - index is the arena index of the new entry
//   - err is of type crt.BucketAlgorithm if the key could not be placed
func (S *SCTable[K, V]) Insert(key K, value V) (index int64, err error) {
	bucketNo, err := S.GetBucketNo(key)
	if err != nil {
		index = conf.NilIndex
		return
	}

	index = S.arena.Alloc(key, value)
	S.appendToChain(bucketNo, index)

	return
}

// Delete - Unlinks the entry with the given key from its bucket chain. The arena slot is not freed so the caller
// can still read the entry and unlink it from other structures before freeing it.
//
// It returns:
//   - index is the arena index of the unlinked entry
//   - err is either of type crt.NoRecordFound or crt.BucketAlgorithm
func (S *SCTable[K, V]) Delete(key K) (index int64, err error) {
	bucketNo, err := S.GetBucketNo(key)
	if err != nil {
		index = conf.NilIndex
		return
	}

	index, prev := S.find(bucketNo, key)
	if index == conf.NilIndex {
		err = crt.NoRecordFound{}
		return
	}

	S.unlinkFromChain(bucketNo, index, prev)

	return
}

// Extend - Replaces the bucket array with one sized for tableSize and relinks every entry into it.
// Entries are visited in the order given by walk, so entries sharing a new bucket are chained in that order.
// The arena is untouched apart from the NextInBucket links.
//   - tableSize is the requested number of buckets, the hash algorithm may round it
//   - walk calls its argument for every live entry index
func (S *SCTable[K, V]) Extend(tableSize int64, walk func(fn func(index int64) bool)) (err error) {
	oldSize := int64(len(S.buckets))
	S.hashAlgorithm.SetTableSize(tableSize)
	newSize := S.hashAlgorithm.GetTableSize()
	if newSize <= 0 {
		S.hashAlgorithm.SetTableSize(oldSize)
		err = crt.NewBucketAlgorithm(fmt.Sprintf("hash algorithm reports table size %d", newSize))
		return
	}

	old := S.buckets
	S.buckets = newBuckets(newSize)

	walk(func(index int64) bool {
		var bucketNo int64
		bucketNo, err = S.GetBucketNo(S.arena.At(index).Key)
		if err != nil {
			return false
		}
		S.appendToChain(bucketNo, index)
		return true
	})

	if err != nil {
		// Put the old chains back, their links are rebuilt from the same walk order
		S.buckets = old
		S.hashAlgorithm.SetTableSize(oldSize)
		S.relink(walk)
		err = fmt.Errorf("error while extending bucket array: %w", err)
		return
	}

	if S.logs != nil {
		S.logs.Debug("extend buckets=%d->%d records=%d", oldSize, newSize, S.arena.Len())
	}

	return
}
