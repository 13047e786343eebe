package relationship

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"reposit/internal/core"
)

// MemoryStore keeps relationships in memory. Used in tests and when no
// DSN is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]core.Relationship
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]core.Relationship),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (core.Relationship, error) {
	if s == nil {
		return core.Relationship{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rel, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return core.Relationship{}, ErrNotFound
	}
	return rel, nil
}

func (s *MemoryStore) Put(_ context.Context, rel core.Relationship) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(rel.ID) == "" {
		return fmt.Errorf("relationship id is required")
	}
	s.mu.Lock()
	s.byID[rel.ID] = rel
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetPlace(_ context.Context, id string, side core.Side, place int) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return ErrNotFound
	}
	rel.SetPlace(side, place)
	s.byID[rel.ID] = rel
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(id)
	if _, ok := s.byID[key]; !ok {
		return ErrNotFound
	}
	delete(s.byID, key)
	return nil
}

func (s *MemoryStore) ListByItem(_ context.Context, itemLink string) ([]core.Relationship, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rels := make([]core.Relationship, 0, 8)
	for _, rel := range s.byID {
		if rel.LeftItemLink == itemLink || rel.RightItemLink == itemLink {
			rels = append(rels, rel)
		}
	}
	sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })
	return rels, nil
}
