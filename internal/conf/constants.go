package conf

// InitialCapacity - Number of buckets a new hash map starts with unless configured otherwise
const InitialCapacity int64 = 4

// LoadFactorThreshold - Ratio of records to buckets that, when exceeded by an insert, extends the bucket array
const LoadFactorThreshold float64 = 2.0 / 3.0

// ExtendRatio - Multiplier applied to the number of buckets on each extend
const ExtendRatio int64 = 2

// NilIndex - Arena index marking the absence of a link (end of chain, head or tail of the order list)
const NilIndex int64 = -1

// KeyBytes - Number of bytes a key occupies when fed to byte oriented hash functions
const KeyBytes int = 8
