package utils

import (
	"encoding/binary"
	"github.com/gostonefire/chainmap/internal/conf"
)

// Mod - Returns key modulo n mapped into 0 -> n - 1, also for negative keys.
// n must be positive.
func Mod(key, n int64) int64 {
	return ((key % n) + n) % n
}

// LoadFactor - Returns records divided by buckets, zero buckets gives zero
func LoadFactor(records, buckets int64) float64 {
	if buckets <= 0 {
		return 0
	}
	return float64(records) / float64(buckets)
}

// ExceedsThreshold - Returns true if records over buckets is strictly above conf.LoadFactorThreshold
func ExceedsThreshold(records, buckets int64) bool {
	return LoadFactor(records, buckets) > conf.LoadFactorThreshold
}

// KeyToBytes - Returns the little endian byte representation of key
func KeyToBytes(key int64) []byte {
	b := make([]byte, conf.KeyBytes)
	binary.LittleEndian.PutUint64(b, uint64(key))
	return b
}
