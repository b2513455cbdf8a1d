// Package chainmap implements a hash table using separate chaining that also remembers the order in which
// keys were first inserted.
//
// Keys are signed integers placed in buckets by key mod capacity (or a custom hashfunc.BucketAlgorithm).
// The bucket array starts with 4 buckets and doubles whenever an insert would push the load factor above 2/3.
// A HashMap is not safe for concurrent use.
package chainmap

import (
	"fmt"
	"github.com/gostonefire/chainmap/hashfunc"
	"github.com/gostonefire/chainmap/internal/arena"
	"github.com/gostonefire/chainmap/internal/conf"
	"github.com/gostonefire/chainmap/internal/model"
	"github.com/gostonefire/chainmap/internal/order"
	"github.com/gostonefire/chainmap/internal/storage/separatechaining"
	"github.com/gostonefire/chainmap/logger"
	"golang.org/x/exp/constraints"
)

// HashMapConf - Optional configuration for NewHashMap, the zero value gives the default behaviour.
//   - InitialCapacity is the number of buckets to start with, 0 gives 4
//   - BucketAlgorithm is a custom bucket selection algorithm, nil gives key mod capacity
//   - Logger receives debug messages on bucket array extension, nil disables logging
type HashMapConf struct {
	InitialCapacity int64
	BucketAlgorithm hashfunc.BucketAlgorithm
	Logger          ilog.ILOG
}

// HashMapInfo - Information structure about the configuration of a hash map
//   - Capacity is the current number of buckets
//   - Size is the number of live records
//   - LoadFactorThreshold is the ratio that triggers extension when exceeded
//   - ExtendRatio is the multiplier applied to capacity on extension
//   - InternalAlgorithm is true when the built-in modulo bucket algorithm is used
type HashMapInfo struct {
	Capacity            int64
	Size                int64
	LoadFactorThreshold float64
	ExtendRatio         int64
	InternalAlgorithm   bool
}

// HashMapStat - Statistics on the overall usage and distribution over buckets
//   - Records is the total number of records stored
//   - NumberOfBuckets is the current capacity
//   - UsedBuckets is the number of buckets holding at least one record
//   - LongestChain is the number of records in the fullest bucket
//   - LoadFactor is Records / NumberOfBuckets
//   - BucketDistribution is the number of records stored in each bucket, nil unless asked for
type HashMapStat struct {
	Records            int64   `json:"records"`
	NumberOfBuckets    int64   `json:"numberOfBuckets"`
	UsedBuckets        int64   `json:"usedBuckets"`
	LongestChain       int64   `json:"longestChain"`
	LoadFactor         float64 `json:"loadFactor"`
	BucketDistribution []int64 `json:"bucketDistribution,omitempty"`
}

// HashMap - The main implementation struct.
// Entries live in an index-stable arena, the bucket chains and the insertion order list both link entries by
// arena index.
type HashMap[K constraints.Signed, V any] struct {
	arena *arena.Arena[K, V]
	table *separatechaining.SCTable[K, V]
	order *order.List[K, V]
	logs  ilog.ILOG
}

// New - Returns a new, empty hash map with 4 buckets and the modulo bucket algorithm
func New[K constraints.Signed, V any]() *HashMap[K, V] {
	hm, err := NewHashMap[K, V](HashMapConf{})
	if err != nil {
		// The default configuration is always valid
		panic(err)
	}
	return hm
}

// NewHashMap - Returns a new, empty hash map.
//   - hashMapConf is a HashMapConf struct, its zero value gives the same hash map as New
//
// It returns:
//   - hashMap is a pointer to a HashMap struct
//   - err is of type crt.InvalidConfiguration if InitialCapacity is negative, or crt.BucketAlgorithm if the
//     custom algorithm reports a table size that is not positive
func NewHashMap[K constraints.Signed, V any](hashMapConf HashMapConf) (hashMap *HashMap[K, V], err error) {
	capacity := hashMapConf.InitialCapacity
	if capacity == 0 {
		capacity = conf.InitialCapacity
	}

	a := arena.NewArena[K, V]()
	table, err := separatechaining.NewSCTable(model.CRTConf{
		NumberOfBuckets: capacity,
		HashAlgorithm:   hashMapConf.BucketAlgorithm,
		Logger:          hashMapConf.Logger,
	}, a)
	if err != nil {
		err = fmt.Errorf("error while creating hash map: %w", err)
		return
	}

	hashMap = &HashMap[K, V]{
		arena: a,
		table: table,
		order: order.NewList(a),
		logs:  hashMapConf.Logger,
	}

	return
}

// Info - Returns configuration and size information for the hash map
func (H *HashMap[K, V]) Info() HashMapInfo {
	sp := H.table.GetStorageParameters()
	return HashMapInfo{
		Capacity:            sp.NumberOfBuckets,
		Size:                sp.Records,
		LoadFactorThreshold: conf.LoadFactorThreshold,
		ExtendRatio:         conf.ExtendRatio,
		InternalAlgorithm:   sp.InternalAlgorithm,
	}
}
