package chaincache

import (
	"context"
)

// NoOp is a ReadWriter and Deleter stub.
type NoOp struct{}

var (
	_ ReadWriter = NoOp{}
	_ Deleter    = NoOp{}
)

// Read does not find anything.
func (NoOp) Read(_ context.Context, _ []byte) ([]byte, error) {
	return nil, ErrNotFound
}

// Write discards value.
func (NoOp) Write(_ context.Context, _, _ []byte) error {
	return nil
}

// Delete does not find anything.
func (NoOp) Delete(_ context.Context, _ []byte) error {
	return ErrNotFound
}
