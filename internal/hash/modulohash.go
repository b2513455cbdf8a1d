package hash

import (
	"github.com/gostonefire/chainmap/internal/utils"
)

// ModuloHashAlgorithm - The internally used bucket selection algorithm, bucket = key mod tableSize where the
// result is kept non-negative for negative keys.
type ModuloHashAlgorithm struct {
	tableSize int64
}

// NewModuloHashAlgorithm - Returns a pointer to a new ModuloHashAlgorithm instance
func NewModuloHashAlgorithm(tableSize int64) *ModuloHashAlgorithm {
	ha := &ModuloHashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm, the size is used as is.
//   - tableSize is the number of buckets
func (M *ModuloHashAlgorithm) SetTableSize(tableSize int64) {
	M.tableSize = tableSize
}

// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
func (M *ModuloHashAlgorithm) HashFunc1(key int64) int64 {
	return utils.Mod(key, M.tableSize)
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (M *ModuloHashAlgorithm) GetTableSize() int64 {
	return M.tableSize
}
