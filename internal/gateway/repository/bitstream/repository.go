package bitstream

import (
	"context"
	"errors"
)

// Store defines operations for persisting the files attached to a
// submission's upload section.
type Store interface {
	Put(ctx context.Context, submissionID, name string, content []byte) error
	Get(ctx context.Context, submissionID, name string) ([]byte, error)
	List(ctx context.Context, submissionID string) ([]string, error)
	URL(ctx context.Context, submissionID, name string) (string, error)
}

var ErrNotFound = errors.New("bitstream not found")
