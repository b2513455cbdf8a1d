//go:build stress

package test

import (
	"errors"
	"github.com/google/go-cmp/cmp"
	"github.com/gostonefire/chainmap"
	"github.com/gostonefire/chainmap/crt"
	"github.com/stretchr/testify/assert"
	"math/rand"
	"strconv"
	"testing"
)

// reference - Plain map plus first-insert order, used to check the hash map against
type reference struct {
	values map[int64]string
	order  []int64
}

func newReference() *reference {
	return &reference{values: make(map[int64]string)}
}

func (R *reference) put(key int64, value string) {
	if _, ok := R.values[key]; !ok {
		R.order = append(R.order, key)
	}
	R.values[key] = value
}

func (R *reference) remove(key int64) {
	if _, ok := R.values[key]; !ok {
		return
	}
	delete(R.values, key)
	for i, k := range R.order {
		if k == key {
			R.order = append(R.order[:i], R.order[i+1:]...)
			return
		}
	}
}

func TestRandomOperations(t *testing.T) {
	t.Run("hash map behaves like the reference model", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(42))
		hm := chainmap.New[int64, string]()
		ref := newReference()
		lastCapacity := hm.Capacity()

		// Execute
		for i := 0; i < 200000; i++ {
			key := rnd.Int63n(5000) - 2500
			switch rnd.Intn(10) {
			case 0, 1, 2, 3, 4:
				value := strconv.Itoa(i)
				assert.NoError(t, hm.Put(key, value), "put")
				ref.put(key, value)

				got, err := hm.Get(key)
				if !assert.NoError(t, err, "get after put") || got != value {
					t.Fatalf("get(%d) after put = %q, want %q", key, got, value)
				}
			case 5, 6, 7:
				assert.NoError(t, hm.Remove(key), "remove")
				ref.remove(key)

				_, err := hm.Get(key)
				if !errors.Is(err, crt.NoRecordFound{}) {
					t.Fatalf("get(%d) after remove: %v", key, err)
				}
			default:
				got, err := hm.Get(key)
				want, ok := ref.values[key]
				if ok {
					assert.NoError(t, err, "get present key")
					assert.Equal(t, want, got, "value")
				} else {
					assert.True(t, errors.Is(err, crt.NoRecordFound{}), "get absent key")
				}
			}

			if c := hm.Capacity(); c < lastCapacity {
				t.Fatalf("capacity shrank from %d to %d", lastCapacity, c)
			} else {
				lastCapacity = c
			}
			if hm.Len() != int64(len(ref.values)) {
				t.Fatalf("size %d, want %d", hm.Len(), len(ref.values))
			}
		}

		// Check
		if diff := cmp.Diff(ref.order, hm.Keys()); diff != "" {
			t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
		}
		stat := hm.Stat(true)
		var total int64
		for _, n := range stat.BucketDistribution {
			total += n
		}
		assert.Equal(t, hm.Len(), total, "every record in exactly one bucket")
		assert.Equal(t, hm.Len(), stat.Records, "stat records")
	})
}
