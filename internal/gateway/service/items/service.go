package items

import (
	"context"
	"fmt"

	"reposit/internal/core"
	"reposit/internal/objectcache"
	"reposit/internal/rest"
)

// Service resolves item links: cache first, upstream on a miss. It
// satisfies the submission layer's ItemResolver.
type Service struct {
	cache  *objectcache.Cache
	client *rest.Client
	parser *rest.Parser
}

func New(cache *objectcache.Cache, client *rest.Client, parser *rest.Parser) *Service {
	return &Service{cache: cache, client: client, parser: parser}
}

func (s *Service) ResolveItem(ctx context.Context, href string) (*core.Item, error) {
	if s == nil {
		return nil, fmt.Errorf("item service is not available")
	}
	if obj, ok := s.cache.Get(href); ok {
		if item, ok := obj.(*core.Item); ok {
			return item, nil
		}
	}
	if s.client == nil || s.parser == nil {
		return nil, fmt.Errorf("item %s is not cached and no upstream client is wired", href)
	}

	req, env, err := s.client.Get(ctx, href)
	if err != nil {
		return nil, fmt.Errorf("fetch item: %w", err)
	}
	res, err := s.parser.Parse(req, env)
	if err != nil {
		return nil, err
	}
	for _, obj := range res.Objects {
		if item, ok := obj.(*core.Item); ok {
			return item, nil
		}
	}
	return nil, fmt.Errorf("response for %s carried no item", href)
}
