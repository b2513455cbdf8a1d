package model

import (
	"github.com/gostonefire/chainmap/hashfunc"
	"github.com/gostonefire/chainmap/logger"
	"golang.org/x/exp/constraints"
)

// RecordOccupied - State indicating an arena slot holding a live entry
const RecordOccupied uint8 = 1

// RecordDeleted - State indicating an arena slot that has been in use but was removed
const RecordDeleted uint8 = 2

// Entry - Represents one key/value pair stored in the arena.
// All links are arena indices, conf.NilIndex marks a missing link.
type Entry[K constraints.Signed, V any] struct {
	State        uint8
	Key          K
	Value        V
	NextInBucket int64
	PrevInOrder  int64
	NextInOrder  int64
}

// Record - A detached copy of a live entry together with its arena index
type Record[K constraints.Signed, V any] struct {
	Index int64
	Key   K
	Value V
}

// Bucket - Represents all records in one bucket chain, in chain order
type Bucket[K constraints.Signed, V any] struct {
	BucketNo int64
	Records  []Record[K, V]
}

// StorageParameters - Represents parameters specific for the separate chaining table
type StorageParameters struct {
	NumberOfBuckets   int64
	Records           int64
	InternalAlgorithm bool
}

// CRTConf - Is a struct to be passed in the call to NewSCTable and contains configuration that affects
// bucket processing.
//   - NumberOfBuckets is the number of buckets to start with
//   - HashAlgorithm is the bucket selection algorithm to use, nil selects the internal modulo algorithm
//   - Logger is an optional leveled logger
type CRTConf struct {
	NumberOfBuckets int64
	HashAlgorithm   hashfunc.BucketAlgorithm
	Logger          ilog.ILOG
}
