package relationship

import (
	"context"
	"time"

	memcache "reposit/internal/cache/memory"
	"reposit/internal/core"
	relrepo "reposit/internal/gateway/repository/relationship"
)

type Store = relrepo.Store

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        time.Minute,
		MaxEntries: 1024,
	}
}

// CachedStore wraps an origin store with a read-through LRU-TTL cache.
// Writes go to the origin first and refresh or drop the cached entry.
type CachedStore struct {
	origin Store
	rels   *memcache.LRUTTL[string, core.Relationship]
}

func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &CachedStore{
		origin: origin,
		rels:   memcache.NewLRUTTL[string, core.Relationship](cfg.MaxEntries, cfg.TTL),
	}
}

func (s *CachedStore) Get(ctx context.Context, id string) (core.Relationship, error) {
	if rel, ok := s.rels.Get(id); ok {
		return rel, nil
	}
	rel, err := s.origin.Get(ctx, id)
	if err != nil {
		return core.Relationship{}, err
	}
	s.rels.Set(rel.ID, rel)
	return rel, nil
}

func (s *CachedStore) Put(ctx context.Context, rel core.Relationship) error {
	if err := s.origin.Put(ctx, rel); err != nil {
		return err
	}
	s.rels.Set(rel.ID, rel)
	return nil
}

func (s *CachedStore) SetPlace(ctx context.Context, id string, side core.Side, place int) error {
	if err := s.origin.SetPlace(ctx, id, side, place); err != nil {
		return err
	}
	if rel, ok := s.rels.Get(id); ok {
		rel.SetPlace(side, place)
		s.rels.Set(id, rel)
	}
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.origin.Delete(ctx, id); err != nil {
		return err
	}
	s.rels.Delete(id)
	return nil
}

// ListByItem always hits the origin; membership of the list changes out
// from under any per-item cache too easily.
func (s *CachedStore) ListByItem(ctx context.Context, itemLink string) ([]core.Relationship, error) {
	return s.origin.ListByItem(ctx, itemLink)
}
