// Package chaincache provides an in-process key/value cache with per-entry
// expiration, built on a chained-bucket hash table with proactive growth.
//
// Features:
//
//   - Explicit data structure: an owned bucket table of singly-linked chains,
//     doubled in size before the load factor crosses a threshold.
//   - Per-entry TTL with lazy expiry: expired entries are unlinked when a read
//     encounters them, no background sweeper.
//   - Re-insertion chains a new entry ahead of the old one, so reads prefer
//     the most recent value for a key.
//   - One exclusive lock serializes all operations, including rehashing.
//   - Bounded key and value sizes with a choice of truncation or rejection.
//   - Allows logging, stats collection.
//   - Propagates context to allow better control of application components.
//   - Allows mass expiration and removal (drop cache).
package chaincache
