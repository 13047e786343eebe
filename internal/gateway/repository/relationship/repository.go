package relationship

import (
	"context"
	"errors"

	"reposit/internal/core"
)

// Store defines operations for persisting item relationships.
type Store interface {
	Get(ctx context.Context, id string) (core.Relationship, error)
	Put(ctx context.Context, rel core.Relationship) error
	SetPlace(ctx context.Context, id string, side core.Side, place int) error
	Delete(ctx context.Context, id string) error
	ListByItem(ctx context.Context, itemLink string) ([]core.Relationship, error)
}

var ErrNotFound = errors.New("relationship not found")
