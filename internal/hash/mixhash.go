package hash

import (
	"encoding/binary"
	"github.com/cespare/xxhash"
	"github.com/dchest/siphash"
	"github.com/gostonefire/chainmap/internal/utils"
)

// XXHashAlgorithm - Bucket selection that mixes the key with xxhash before applying the modulo.
// Useful when keys are clustered on multiples of the table size.
type XXHashAlgorithm struct {
	tableSize int64
}

// NewXXHashAlgorithm - Returns a pointer to a new XXHashAlgorithm instance
func NewXXHashAlgorithm(tableSize int64) *XXHashAlgorithm {
	ha := &XXHashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm
func (X *XXHashAlgorithm) SetTableSize(tableSize int64) {
	X.tableSize = tableSize
}

// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
func (X *XXHashAlgorithm) HashFunc1(key int64) int64 {
	h := xxhash.Sum64(utils.KeyToBytes(key))
	return int64(h % uint64(X.tableSize))
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (X *XXHashAlgorithm) GetTableSize() int64 {
	return X.tableSize
}

// SipHashAlgorithm - Bucket selection that mixes the key with a salted SipHash-2-4 before applying the modulo.
// The salt makes bucket placement unpredictable to whoever supplies the keys.
type SipHashAlgorithm struct {
	tableSize int64
	key0      uint64
	key1      uint64
}

// NewSipHashAlgorithm - Returns a pointer to a new SipHashAlgorithm instance
//   - tableSize is the number of buckets
//   - salt is the 16 byte SipHash key, split into two little endian halves
func NewSipHashAlgorithm(tableSize int64, salt [16]byte) *SipHashAlgorithm {
	ha := &SipHashAlgorithm{
		key0: binary.LittleEndian.Uint64(salt[:8]),
		key1: binary.LittleEndian.Uint64(salt[8:]),
	}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm
func (S *SipHashAlgorithm) SetTableSize(tableSize int64) {
	S.tableSize = tableSize
}

// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
func (S *SipHashAlgorithm) HashFunc1(key int64) int64 {
	h := siphash.Hash(S.key0, S.key1, utils.KeyToBytes(key))
	return int64(h % uint64(S.tableSize))
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (S *SipHashAlgorithm) GetTableSize() int64 {
	return S.tableSize
}
