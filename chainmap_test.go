//go:build unit

package chainmap

import (
	"bytes"
	"errors"
	"github.com/gostonefire/chainmap/crt"
	"github.com/gostonefire/chainmap/internal/hash"
	"github.com/gostonefire/chainmap/logger"
	"github.com/stretchr/testify/assert"
	"testing"
)

// roundingAlgorithm - Rounds the table size up to the next multiple of 5
type roundingAlgorithm struct {
	tableSize int64
}

func (R *roundingAlgorithm) SetTableSize(tableSize int64) {
	R.tableSize = (tableSize + 4) / 5 * 5
}
func (R *roundingAlgorithm) HashFunc1(key int64) int64 {
	if key < 0 {
		key = -key
	}
	return key % R.tableSize
}
func (R *roundingAlgorithm) GetTableSize() int64 { return R.tableSize }

func TestNew(t *testing.T) {
	t.Run("creates an empty hash map with four buckets", func(t *testing.T) {
		// Execute
		hm := New[int, string]()

		// Check
		info := hm.Info()
		assert.Equal(t, int64(4), info.Capacity, "initial capacity")
		assert.Equal(t, int64(0), info.Size, "empty")
		assert.InDelta(t, 2.0/3.0, info.LoadFactorThreshold, 1e-12, "threshold")
		assert.Equal(t, int64(2), info.ExtendRatio, "extend ratio")
		assert.True(t, info.InternalAlgorithm, "internal algorithm")
		assert.Equal(t, "null", hm.String(), "nothing to print")
	})
}

func TestNewHashMap(t *testing.T) {
	t.Run("honours initial capacity", func(t *testing.T) {
		// Execute
		hm, err := NewHashMap[int64, string](HashMapConf{InitialCapacity: 16})

		// Check
		assert.NoError(t, err, "creates hash map")
		assert.Equal(t, int64(16), hm.Capacity(), "initial capacity")
	})

	t.Run("rejects negative initial capacity", func(t *testing.T) {
		// Execute
		_, err := NewHashMap[int64, string](HashMapConf{InitialCapacity: -1})

		// Check
		assert.True(t, errors.Is(err, crt.InvalidConfiguration{}), "invalid configuration")
	})

	t.Run("uses the rounded table size of a custom algorithm", func(t *testing.T) {
		// Prepare
		alg := &roundingAlgorithm{}

		// Execute
		hm, err := NewHashMap[int, string](HashMapConf{BucketAlgorithm: alg})
		assert.NoError(t, err, "creates hash map")
		for i := 1; i <= 4; i++ {
			assert.NoError(t, hm.Put(i, "v"), "put")
		}

		// Check
		assert.False(t, hm.Info().InternalAlgorithm, "external algorithm")
		assert.Equal(t, int64(10), hm.Capacity(), "5 extended to 10 rounds to 10")
		for i := 1; i <= 4; i++ {
			assert.True(t, hm.Contains(i), "still found")
		}
	})

	t.Run("works with mixing algorithms", func(t *testing.T) {
		// Prepare
		hm, err := NewHashMap[int64, int64](HashMapConf{BucketAlgorithm: hash.NewXXHashAlgorithm(4)})
		assert.NoError(t, err, "creates hash map")

		// Execute
		for i := int64(0); i < 100; i++ {
			assert.NoError(t, hm.Put(i*64, i), "put")
		}

		// Check
		for i := int64(0); i < 100; i++ {
			v, err := hm.Get(i * 64)
			assert.NoError(t, err, "found")
			assert.Equal(t, i, v, "value")
		}
		assert.Greater(t, hm.Stat(false).UsedBuckets, int64(1), "keys spread over buckets")
	})

	t.Run("logs extension at debug level", func(t *testing.T) {
		// Prepare
		var buf bytes.Buffer
		hm, err := NewHashMap[int, string](HashMapConf{Logger: ilog.NewWriterLogger(ilog.DEBUG, &buf)})
		assert.NoError(t, err, "creates hash map")

		// Execute
		for i := 0; i < 3; i++ {
			_ = hm.Put(i, "v")
		}

		// Check
		assert.Contains(t, buf.String(), "extend buckets=4->8 records=2", "extension logged")
	})
}
