package chaincache

import "github.com/cespare/xxhash/v2"

// Hasher maps a key to a bucket index in [0, buckets).
//
// A hasher must be deterministic for a fixed key and bucket count. Bucket
// indexes are recomputed against the current bucket count on every lookup and
// rehash, they are never stored.
type Hasher func(key []byte, buckets int) int

// DJB2 is a multiplicative string hash reduced by modulo.
//
// It is the default Hasher.
func DJB2(key []byte, buckets int) int {
	h := uint32(5381)

	for _, c := range key {
		h = h*33 + uint32(c)
	}

	return int(h % uint32(buckets))
}

// XXH is a Hasher backed by xxHash, faster on long keys.
func XXH(key []byte, buckets int) int {
	return int(xxhash.Sum64(key) % uint64(buckets))
}
