package chaincache

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDJB2_deterministic(t *testing.T) {
	for _, buckets := range []int{1, 2, 10, 10000} {
		for _, key := range []string{"", "a", "user:001", "quite a long key with spaces"} {
			i := DJB2([]byte(key), buckets)

			assert.Equal(t, i, DJB2([]byte(key), buckets))
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, buckets)
		}
	}
}

func TestDJB2_knownValues(t *testing.T) {
	// Reference values of the unreduced hash: 5381 for the empty key,
	// then h = h*33 + c per byte.
	assert.Equal(t, 5381%97, DJB2(nil, 97))
	assert.Equal(t, int((uint32(5381)*33+'a')%97), DJB2([]byte("a"), 97))
}

func TestHashers_spread(t *testing.T) {
	for name, h := range map[string]Hasher{"djb2": DJB2, "xxh": XXH} {
		h := h

		t.Run(name, func(t *testing.T) {
			const (
				buckets = 64
				keys    = 6400
			)

			counts := make([]int, buckets)
			for i := 0; i < keys; i++ {
				counts[h([]byte("key"+strconv.Itoa(i)), buckets)]++
			}

			// Sequential keys must not pile into a handful of chains.
			for i, cnt := range counts {
				assert.Greater(t, cnt, 0, "bucket %d is empty", i)
				assert.Less(t, cnt, 10*keys/buckets, "bucket %d is overloaded", i)
			}
		})
	}
}

func TestXXH_deterministic(t *testing.T) {
	for _, buckets := range []int{1, 3, 64} {
		i := XXH([]byte("user:001"), buckets)

		assert.Equal(t, i, XXH([]byte("user:001"), buckets))
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, buckets)
	}
}
