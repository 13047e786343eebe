package relationship

import (
	"context"
	"fmt"
	"strings"

	"reposit/internal/core"
	relrepo "reposit/internal/gateway/repository/relationship"
)

// Service is the persistence facade for relationships. State-store
// dispatch stays with the callers; this layer only validates and writes.
// It satisfies the submission layer's PlaceWriter and RelationshipRemover.
type Service struct {
	repo relrepo.Store
}

func New(repo relrepo.Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (core.Relationship, error) {
	if s == nil || s.repo == nil {
		return core.Relationship{}, fmt.Errorf("relationship service is not available")
	}
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByItem(ctx context.Context, itemLink string) ([]core.Relationship, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("relationship service is not available")
	}
	return s.repo.ListByItem(ctx, strings.TrimSpace(itemLink))
}

func (s *Service) Save(ctx context.Context, rel core.Relationship) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("relationship service is not available")
	}
	if strings.TrimSpace(rel.ID) == "" {
		return fmt.Errorf("relationship id is required")
	}
	return s.repo.Put(ctx, rel)
}

// SetPlace writes the new ordinal place of one endpoint.
func (s *Service) SetPlace(ctx context.Context, id string, side core.Side, place int) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("relationship service is not available")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("relationship id is required")
	}
	if place < 0 {
		return fmt.Errorf("place must not be negative")
	}
	return s.repo.SetPlace(ctx, id, side, place)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("relationship service is not available")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("relationship id is required")
	}
	return s.repo.Delete(ctx, id)
}
