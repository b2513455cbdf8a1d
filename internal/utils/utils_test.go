//go:build unit

package utils

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMod(t *testing.T) {
	t.Run("positive keys are plain modulo", func(t *testing.T) {
		// Execute
		r1 := Mod(12836, 4)
		r2 := Mod(16840, 4)
		r3 := Mod(3, 8)

		// Check
		assert.Equal(t, int64(0), r1, "12836 mod 4")
		assert.Equal(t, int64(0), r2, "16840 mod 4")
		assert.Equal(t, int64(3), r3, "3 mod 8")
	})

	t.Run("negative keys are mapped into the table", func(t *testing.T) {
		// Prepare
		input := []int64{-1, -4, -5, -9223372036854775808}
		expected := []int64{3, 0, 3, 0}

		for i := range input {
			// Execute
			r := Mod(input[i], 4)

			// Check
			assert.Equal(t, expected[i], r, "negative key mapped to non-negative bucket")
		}
	})
}

func TestExceedsThreshold(t *testing.T) {
	t.Run("threshold is strictly greater than two thirds", func(t *testing.T) {
		// Check
		assert.False(t, ExceedsThreshold(2, 4), "2/4 is below")
		assert.True(t, ExceedsThreshold(3, 4), "3/4 is above")
		assert.False(t, ExceedsThreshold(2, 3), "2/3 is not above")
		assert.True(t, ExceedsThreshold(6, 8), "6/8 is above")
		assert.False(t, ExceedsThreshold(5, 8), "5/8 is below")
	})

	t.Run("zero buckets never exceeds", func(t *testing.T) {
		// Check
		assert.Equal(t, float64(0), LoadFactor(10, 0), "zero load factor")
		assert.False(t, ExceedsThreshold(10, 0), "zero buckets")
	})
}

func TestKeyToBytes(t *testing.T) {
	t.Run("key is little endian", func(t *testing.T) {
		// Execute
		b := KeyToBytes(0x0102)

		// Check
		assert.Equal(t, []byte{2, 1, 0, 0, 0, 0, 0, 0}, b, "little endian bytes")
	})
}
