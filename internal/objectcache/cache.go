// Package objectcache keeps recently seen repository objects, keyed by
// self link, so view components can resolve links without another round
// trip. The parser feeds it a copy of every response it handles.
package objectcache

import (
	"log"
	"time"

	memcache "reposit/internal/cache/memory"
	"reposit/internal/core"
	"reposit/internal/rest"
)

type Config struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultConfig() Config {
	return Config{
		TTL:        2 * time.Minute,
		MaxEntries: 2048,
	}
}

// Cache is an LRU-TTL cache of typed repository objects.
type Cache struct {
	objects *memcache.LRUTTL[string, core.Object]
}

func New(cfg Config) *Cache {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &Cache{
		objects: memcache.NewLRUTTL[string, core.Object](cfg.MaxEntries, cfg.TTL),
	}
}

// Ingest implements rest.CachePopulator: it walks the payload of a
// successful response and caches every object carrying a self link.
// Failed responses are ignored.
func (c *Cache) Ingest(_ rest.Request, env rest.Envelope) {
	if c == nil || !env.Success() || len(env.Payload) == 0 {
		return
	}
	c.ingestValue(env.Payload)
}

func (c *Cache) ingestValue(v any) {
	switch x := v.(type) {
	case map[string]any:
		if _, typed := x["type"].(string); typed {
			obj, err := rest.DecodeObject(x)
			if err != nil {
				log.Printf("objectcache: skipping undecodable object: %v", err)
			} else if obj.Link() != "" {
				c.objects.Set(obj.Link(), obj)
			}
		}
		if embedded, ok := x["_embedded"].(map[string]any); ok {
			for _, nested := range embedded {
				c.ingestValue(nested)
			}
		}
	case []any:
		for _, el := range x {
			c.ingestValue(el)
		}
	}
}

// Get returns the cached object for a self link.
func (c *Cache) Get(href string) (core.Object, bool) {
	if c == nil {
		return nil, false
	}
	return c.objects.Get(href)
}

// Put caches one object under its self link.
func (c *Cache) Put(obj core.Object) {
	if c == nil || obj == nil || obj.Link() == "" {
		return
	}
	c.objects.Set(obj.Link(), obj)
}

// Evict drops the entry for a self link.
func (c *Cache) Evict(href string) {
	if c == nil {
		return
	}
	c.objects.Delete(href)
}

// Len reports how many objects are currently cached.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.objects.Len()
}
