package chaincache

import (
	"context"
	"time"
)

// DefaultTTL indicates default (configured) value for entry expiration time.
const DefaultTTL = time.Duration(0)

// Reader reads from cache.
type Reader interface {
	// Read returns cached value or ErrNotFound.
	// Expired entries read as not found.
	Read(ctx context.Context, key []byte) ([]byte, error)
}

// Writer writes to cache.
type Writer interface {
	// Write stores value in cache with a given key.
	Write(ctx context.Context, key, value []byte) error
}

// Deleter deletes from cache.
type Deleter interface {
	// Delete removes a cached entry, ErrNotFound is returned for a missing key.
	Delete(ctx context.Context, key []byte) error
}

// ReadWriter reads from and writes to cache.
type ReadWriter interface {
	Reader
	Writer
}

// Entry is a cached entry exposed to walkers.
type Entry interface {
	Key() []byte
	Value() []byte
	ExpireAt() time.Time
}

// Walker calls function for every entry in cache and fails on first error
// returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(e Entry) error) (int, error)
}
