package chaincache

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Default configuration values, fixed for compatibility with existing
// deployments. Longer keys and values are truncated unless FailOnOversize
// is enabled.
const (
	// DefaultMaxKeyLength is the default maximum key length in bytes.
	DefaultMaxKeyLength = 256

	// DefaultMaxValueLength is the default maximum value length in bytes.
	DefaultMaxValueLength = 1024

	// DefaultInitialBuckets is the default initial size of the bucket table.
	DefaultInitialBuckets = 10000

	// DefaultLoadFactor is the default live entries to buckets ratio that
	// triggers table growth.
	DefaultLoadFactor = 0.7
)

// Config controls ChainMap instance.
type Config struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// TimeToLive is delay before entry expiration, default 5m.
	// Entries written with WithTTL in context use the context value instead.
	TimeToLive time.Duration

	// MaxKeyLength bounds key size in bytes, default 256.
	MaxKeyLength int

	// MaxValueLength bounds value size in bytes, default 1024.
	MaxValueLength int

	// InitialBuckets is the starting size of the bucket table, default 10000.
	// The table only ever doubles, it never shrinks.
	InitialBuckets int

	// LoadFactor is the live entries to buckets ratio that triggers growth,
	// default 0.7. Growth happens before the insertion that would cross it.
	LoadFactor float64

	// FailOnOversize rejects oversized keys and values with ErrKeyTooLarge or
	// ErrValueTooLarge instead of silently truncating them.
	FailOnOversize bool

	// ExpirationJitter is a fraction of TTL to randomize, disabled by default.
	// If positive, entry TTL is altered in bounds of ±(ExpirationJitter * TTL / 2)
	// to de-synchronize mass expiration.
	ExpirationJitter float64

	// Hasher maps keys to buckets, DJB2 by default.
	Hasher Hasher

	// Clock provides current time, SystemClock by default.
	Clock Clock
}

var (
	_ ReadWriter = &ChainMap{}
	_ Deleter    = &ChainMap{}
	_ Walker     = &ChainMap{}
)

// ChainMap is an in-memory cache backed by a chained-bucket hash table.
//
// A single exclusive lock serializes all operations on an instance, including
// the rehashing a write may trigger. Reads take the same lock as writes
// because an expired entry found during the scan is unlinked in place.
//
// Please use NewChainMap to create instance.
type ChainMap struct {
	mu    sync.Mutex
	table *bucketTable

	config Config
	clock  Clock
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewChainMap creates an instance of in-memory cache with optional configuration.
func NewChainMap(cfg ...Config) *ChainMap {
	config := Config{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.TimeToLive == 0 {
		config.TimeToLive = 5 * time.Minute
	}

	if config.MaxKeyLength == 0 {
		config.MaxKeyLength = DefaultMaxKeyLength
	}

	if config.MaxValueLength == 0 {
		config.MaxValueLength = DefaultMaxValueLength
	}

	if config.InitialBuckets <= 0 {
		config.InitialBuckets = DefaultInitialBuckets
	}

	if config.LoadFactor == 0 {
		config.LoadFactor = DefaultLoadFactor
	}

	if config.Hasher == nil {
		config.Hasher = DJB2
	}

	if config.Clock == nil {
		config.Clock = SystemClock
	}

	return &ChainMap{
		table:  newBucketTable(config.InitialBuckets, config.Hasher),
		config: config,
		clock:  config.Clock,
		log:    config.Logger,
		stat:   config.Stats,
	}
}

// Write sets value.
//
// Time to live is taken from context (see WithTTL) and falls back to
// configured TimeToLive. Writing a key that is already cached does not touch
// the existing entry, the new one is chained ahead of it and shadows it until
// either expires.
func (c *ChainMap) Write(ctx context.Context, k, v []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrClosed
	}

	k, err := c.bound(ctx, k, c.config.MaxKeyLength, ErrKeyTooLarge)
	if err != nil {
		return err
	}

	v, err = c.bound(ctx, v, c.config.MaxValueLength, ErrValueTooLarge)
	if err != nil {
		return err
	}

	ttl := TTL(ctx)
	if ttl == DefaultTTL {
		ttl = c.config.TimeToLive
	}

	if c.config.ExpirationJitter > 0 {
		ttl += time.Duration(float64(ttl) * c.config.ExpirationJitter * (rand.Float64() - 0.5))
	}

	if c.table.overloaded(c.config.LoadFactor) {
		c.grow(ctx)
	}

	c.table.insert(&entry{
		key: k,
		val: v,
		exp: c.clock.Now().Add(ttl),
	})

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache",
			"name", c.config.Name,
			"key", string(k),
			"ttl", ttl,
		)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
		c.stat.Set(ctx, MetricItems, float64(c.table.live), "name", c.config.Name)
	}

	return nil
}

// bound enforces a size limit on an input buffer and returns an owned copy.
func (c *ChainMap) bound(ctx context.Context, b []byte, max int, oversize SentinelError) ([]byte, error) {
	if len(b) <= max {
		return copyBytes(b), nil
	}

	if c.config.FailOnOversize {
		return nil, oversize
	}

	if c.log != nil {
		c.log.Warn(ctx, "truncated oversized input",
			"name", c.config.Name,
			"len", len(b),
			"max", max,
		)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricTruncated, 1, "name", c.config.Name)
	}

	return copyBytes(b[:max]), nil
}

// grow doubles the bucket table, must be called with the lock held.
func (c *ChainMap) grow(ctx context.Context) {
	started := time.Now()
	c.table.grow()

	if c.log != nil {
		c.log.Important(ctx, "grew cache bucket table",
			"name", c.config.Name,
			"buckets", len(c.table.buckets),
			"live", c.table.live,
			"elapsed", time.Since(started).String(),
		)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricGrow, 1, "name", c.config.Name)
	}
}

// Read gets value.
//
// The most recently written live entry for the key is returned. Expired
// entries for the key encountered during the scan are unlinked, an older
// duplicate that is still live can then be served.
func (c *ChainMap) Read(ctx context.Context, key []byte) ([]byte, error) {
	if SkipRead(ctx) {
		return nil, ErrNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return nil, ErrClosed
	}

	now := c.clock.Now()
	i := c.table.index(key)

	var prev *entry

	for e := c.table.buckets[i]; e != nil; {
		next := e.next

		if string(e.key) != string(key) {
			prev = e
			e = next

			continue
		}

		if !e.expired(now) {
			if c.log != nil {
				c.log.Debug(ctx, "cache hit",
					"name", c.config.Name,
					"key", string(key),
				)
			}

			if c.stat != nil {
				c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
			}

			return copyBytes(e.val), nil
		}

		// Lazy expiry, the entry is released instead of lingering flagged.
		c.table.unlink(prev, e, i)

		if c.stat != nil {
			c.stat.Add(ctx, MetricExpired, 1, "name", c.config.Name)
			c.stat.Set(ctx, MetricItems, float64(c.table.live), "name", c.config.Name)
		}

		e = next
	}

	if c.log != nil {
		c.log.Debug(ctx, "cache miss",
			"name", c.config.Name,
			"key", string(key),
		)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
	}

	return nil, ErrNotFound
}

// Delete removes the first entry matching key, ErrNotFound is returned for a
// missing key. Older duplicates of the key, if any, become visible to reads.
func (c *ChainMap) Delete(ctx context.Context, key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrClosed
	}

	if c.table.removeFirst(key) == nil {
		return ErrNotFound
	}

	if c.log != nil {
		c.log.Debug(ctx, "deleted cache entry",
			"name", c.config.Name,
			"key", string(key),
		)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricDelete, 1, "name", c.config.Name)
		c.stat.Set(ctx, MetricItems, float64(c.table.live), "name", c.config.Name)
	}

	return nil
}

// ExpireAll marks all entries as expired, the next read drops them.
func (c *ChainMap) ExpireAll(ctx context.Context) {
	started := time.Now()
	now := c.clock.Now()
	cnt := 0

	c.mu.Lock()
	if c.table != nil {
		cnt, _ = c.table.each(func(e *entry) error {
			e.exp = now

			return nil
		})
	}
	c.mu.Unlock()

	if c.log != nil {
		c.log.Important(ctx, "expired all entries in cache",
			"name", c.config.Name,
			"count", cnt,
			"elapsed", time.Since(started).String(),
		)
	}
}

// RemoveAll deletes all entries and resets the bucket table to its initial
// size.
func (c *ChainMap) RemoveAll(ctx context.Context) {
	c.mu.Lock()
	cnt := 0

	if c.table != nil {
		cnt = c.table.live
		c.table = newBucketTable(c.config.InitialBuckets, c.config.Hasher)
	}
	c.mu.Unlock()

	if c.log != nil {
		c.log.Important(ctx, "removed all entries in cache",
			"name", c.config.Name,
			"count", cnt,
		)
	}

	if c.stat != nil {
		c.stat.Set(ctx, MetricItems, 0, "name", c.config.Name)
	}
}

// Len returns number of entries in cache, expired but not yet dropped entries
// included.
func (c *ChainMap) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return 0
	}

	return c.table.live
}

// Walk walks cached entries.
//
// The lock is held for the whole walk, walkFn must not call back into the
// cache.
func (c *ChainMap) Walk(walkFn func(e Entry) error) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return 0, ErrClosed
	}

	return c.table.each(func(e *entry) error {
		return walkFn(e)
	})
}

// Close releases the bucket table and all entries owned by it.
//
// Operations on a closed cache return ErrClosed. Close is safe to call
// multiple times.
func (c *ChainMap) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table = nil

	return nil
}
