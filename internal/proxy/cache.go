package proxy

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"kinview/internal/model"
)

type cacheKey struct {
	kind   model.Kind
	handle model.Handle
}

type objectCache interface {
	get(key cacheKey) (model.Object, bool)
	put(key cacheKey, obj model.Object)
}

// mapCache keeps every entry for the life of the proxy.
type mapCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]model.Object
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[cacheKey]model.Object)}
}

func (c *mapCache) get(key cacheKey) (model.Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.entries[key]
	return obj, ok
}

func (c *mapCache) put(key cacheKey, obj model.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = obj
}

type lruCache struct {
	entries *lru.Cache[cacheKey, model.Object]
}

func (c *lruCache) get(key cacheKey) (model.Object, bool) {
	return c.entries.Get(key)
}

func (c *lruCache) put(key cacheKey, obj model.Object) {
	c.entries.Add(key, obj)
}

func newObjectCache(size int) (objectCache, error) {
	if size <= 0 {
		return newMapCache(), nil
	}
	entries, err := lru.New[cacheKey, model.Object](size)
	if err != nil {
		return nil, err
	}
	return &lruCache{entries: entries}, nil
}
