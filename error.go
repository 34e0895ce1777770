package chaincache

// SentinelError is an error.
type SentinelError string

const (
	// ErrNotFound indicates missing cache entry.
	ErrNotFound = SentinelError("missing cache item")

	// ErrClosed indicates cache was closed and must not be used.
	ErrClosed = SentinelError("cache is closed")

	// ErrKeyTooLarge indicates a key over MaxKeyLength with FailOnOversize enabled.
	ErrKeyTooLarge = SentinelError("key exceeds maximum length")

	// ErrValueTooLarge indicates a value over MaxValueLength with FailOnOversize enabled.
	ErrValueTooLarge = SentinelError("value exceeds maximum length")

	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
