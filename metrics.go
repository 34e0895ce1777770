package chaincache

// Stats tracker metric names.
const (
	// MetricHit is a name of a metric to count cache hits.
	MetricHit = "cache_hit"

	// MetricMiss is a name of a metric to count cache misses.
	MetricMiss = "cache_miss"

	// MetricExpired is a name of a metric to count expired entries dropped on read.
	MetricExpired = "cache_expired"

	// MetricWrite is a name of a metric to count cache writes.
	MetricWrite = "cache_write"

	// MetricDelete is a name of a metric to count cache deletions.
	MetricDelete = "cache_delete"

	// MetricTruncated is a name of a metric to count truncated keys and values.
	MetricTruncated = "cache_truncated"

	// MetricGrow is a name of a metric to count bucket table growths.
	MetricGrow = "cache_grow"

	// MetricItems is a name of a gauge to report count of live cached entries.
	MetricItems = "cache_items"
)
