package hashfunc

// BucketAlgorithm - Interface that permits an implementation using the HashMap to supply a custom bucket
// selection algorithm suited for its particular distribution of keys.
type BucketAlgorithm interface {
	// SetTableSize - Sets the table size for the bucket algorithm.
	// It is called when the hash map is created and every time the hash map extends its bucket array. If an
	// implementation rounds the size (to a power of 2, a prime or similar) it must report the rounded value
	// from GetTableSize, since that value becomes the actual number of buckets.
	//   - tableSize is the number of buckets requested
	SetTableSize(tableSize int64)

	// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
	// Any number returned outside the table size (0 -> table size - 1) will result in an error down stream.
	HashFunc1(key int64) int64

	// GetTableSize - Returns the table size the implemented hash function is supporting
	GetTableSize() int64
}
