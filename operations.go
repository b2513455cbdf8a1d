package chainmap

import (
	"errors"
	"fmt"
	"github.com/gostonefire/chainmap/crt"
	"github.com/gostonefire/chainmap/internal/conf"
	"github.com/gostonefire/chainmap/internal/utils"
	"github.com/valyala/bytebufferpool"
	"io"
	"os"
	"strconv"
)

// Get - Gets the value stored for key.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record if found, the zero value otherwise.
//   - err is of type crt.NoRecordFound if the key is absent, or crt.BucketAlgorithm if a custom algorithm misbehaved
func (H *HashMap[K, V]) Get(key K) (value V, err error) {
	index, err := H.table.Get(key)
	if err != nil {
		return
	}

	value = H.arena.At(index).Value

	return
}

// Contains - Returns true if key is present
func (H *HashMap[K, V]) Contains(key K) bool {
	_, err := H.table.Get(key)
	return err == nil
}

// Put - Updates an existing record with a new value or adds it if no record with the same key exists.
// Updating keeps the record's position in insertion order. Adding appends the record to the insertion order
// and, if the new record would push the load factor above 2/3, first doubles the number of buckets.
//   - key is the identifier of a record
//   - value is the value to store
//
// It returns:
//   - err is nil unless a custom bucket algorithm misbehaved, then it is of type crt.BucketAlgorithm
func (H *HashMap[K, V]) Put(key K, value V) (err error) {
	_, err = H.table.Update(key, value)
	if err == nil {
		return
	}
	if !errors.Is(err, crt.NoRecordFound{}) {
		err = fmt.Errorf("error while updating record: %w", err)
		return
	}

	if utils.ExceedsThreshold(H.arena.Len()+1, H.Capacity()) {
		err = H.extend()
		if err != nil {
			return
		}
	}

	index, err := H.table.Insert(key, value)
	if err != nil {
		err = fmt.Errorf("error while adding record: %w", err)
		return
	}
	H.order.PushBack(index)

	return
}

// Remove - Removes the record with the given key. Removing an absent key does nothing.
// The number of buckets never shrinks.
//
// It returns:
//   - err is nil unless a custom bucket algorithm misbehaved, then it is of type crt.BucketAlgorithm
func (H *HashMap[K, V]) Remove(key K) (err error) {
	_, err = H.Pop(key)
	if errors.Is(err, crt.NoRecordFound{}) {
		err = nil
	}

	return
}

// Pop - Returns the value corresponding to key and removes the record from the hash map.
//
// It returns:
//   - value is the value of the removed record, the zero value if none was found.
//   - err is of type crt.NoRecordFound if the key is absent, or crt.BucketAlgorithm if a custom algorithm misbehaved
func (H *HashMap[K, V]) Pop(key K) (value V, err error) {
	index, err := H.table.Delete(key)
	if err != nil {
		return
	}

	value = H.arena.At(index).Value
	H.order.Unlink(index)
	H.arena.Free(index)

	return
}

// Len - Returns the number of records
func (H *HashMap[K, V]) Len() int64 {
	return H.arena.Len()
}

// Capacity - Returns the current number of buckets
func (H *HashMap[K, V]) Capacity() int64 {
	return H.table.GetStorageParameters().NumberOfBuckets
}

// LoadFactor - Returns records divided by buckets
func (H *HashMap[K, V]) LoadFactor() float64 {
	return utils.LoadFactor(H.Len(), H.Capacity())
}

// GetBucketNo - Returns which bucket number that the given key results in with the current capacity
func (H *HashMap[K, V]) GetBucketNo(key K) (bucketNo int64, err error) {
	return H.table.GetBucketNo(key)
}

// BucketKeys - Returns the keys held in one bucket, in chain order
//   - bucketNo is the identifier of a bucket, the number can be retrieved by call to GetBucketNo
//
// It returns:
//   - keys is empty for an unused bucket
//   - err is set if bucketNo is outside 0 -> Capacity()-1
func (H *HashMap[K, V]) BucketKeys(bucketNo int64) (keys []K, err error) {
	bucket, err := H.table.GetBucket(bucketNo)
	if err != nil {
		err = fmt.Errorf("error while getting bucket: %w", err)
		return
	}

	keys = make([]K, 0, len(bucket.Records))
	for _, record := range bucket.Records {
		keys = append(keys, record.Key)
	}

	return
}

// Stat - Walks through the entire set of buckets and produce a HashMapStat struct with information.
//   - includeDistribution set to true will include a slice of length NumberOfBuckets with number of records per bucket, false will set HashMapStat.BucketDistribution to nil.
func (H *HashMap[K, V]) Stat(includeDistribution bool) *HashMapStat {
	sp := H.table.GetStorageParameters()
	hms := HashMapStat{
		Records:         sp.Records,
		NumberOfBuckets: sp.NumberOfBuckets,
		LoadFactor:      utils.LoadFactor(sp.Records, sp.NumberOfBuckets),
	}

	if includeDistribution {
		hms.BucketDistribution = make([]int64, sp.NumberOfBuckets)
	}

	for i := int64(0); i < sp.NumberOfBuckets; i++ {
		n := H.table.ChainLength(i)
		if n > 0 {
			hms.UsedBuckets++
		}
		if n > hms.LongestChain {
			hms.LongestChain = n
		}
		if includeDistribution {
			hms.BucketDistribution[i] = n
		}
	}

	return &hms
}

// Keys - Returns all keys in the order they were first inserted
func (H *HashMap[K, V]) Keys() []K {
	keys := make([]K, 0, H.Len())
	H.order.Walk(func(index int64) bool {
		keys = append(keys, H.arena.At(index).Key)
		return true
	})
	return keys
}

// Print - Writes the keys in insertion order to stdout, e.g. "1 -> 2 -> 3 -> null"
func (H *HashMap[K, V]) Print() {
	_ = H.Fprint(os.Stdout)
}

// Fprint - Writes the keys in insertion order to w followed by a newline
func (H *HashMap[K, V]) Fprint(w io.Writer) (err error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	H.appendOrder(buf)
	_ = buf.WriteByte('\n')
	_, err = w.Write(buf.B)

	return
}

// String - Returns the keys in insertion order, e.g. "1 -> 2 -> 3 -> null"
func (H *HashMap[K, V]) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	H.appendOrder(buf)

	return buf.String()
}

// appendOrder - Appends "k1 -> k2 -> ... -> null" to buf
func (H *HashMap[K, V]) appendOrder(buf *bytebufferpool.ByteBuffer) {
	H.order.Walk(func(index int64) bool {
		buf.B = strconv.AppendInt(buf.B, int64(H.arena.At(index).Key), 10)
		_, _ = buf.WriteString(" -> ")
		return true
	})
	_, _ = buf.WriteString("null")
}

// extend - Doubles the number of buckets and relinks every record, visiting records in insertion order
func (H *HashMap[K, V]) extend() (err error) {
	err = H.table.Extend(H.Capacity()*conf.ExtendRatio, H.order.Walk)
	if err != nil {
		if H.logs != nil {
			H.logs.Error("extend failed capacity=%d size=%d: %v", H.Capacity(), H.Len(), err)
		}
		return
	}

	return
}
