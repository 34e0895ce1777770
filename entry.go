package chaincache

import "time"

// entry is a bucket chain node.
//
// The bucket head (or the preceding entry) exclusively owns the entries
// linked after it. Key and value buffers are owned copies of caller input.
type entry struct {
	key  []byte
	val  []byte
	exp  time.Time
	next *entry
}

// Key returns the entry key.
func (e *entry) Key() []byte {
	return e.key
}

// Value returns the stored value.
func (e *entry) Value() []byte {
	return e.val
}

// ExpireAt returns the expiration time.
func (e *entry) ExpireAt() time.Time {
	return e.exp
}

func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.exp)
}

// copyBytes returns an owned copy, so that mutations of the original
// argument do not leak into the cache.
func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)

	return c
}
