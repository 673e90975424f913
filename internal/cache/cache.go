// Package cache holds query results keyed by logical resource name and
// environment so category loads can skip the network until the cache is
// cleared.
package cache

import (
	"sort"
	"sync"

	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// Cache maps resource names to cached item lists, one list per environment.
// A result is only ever served to the environment it was fetched for, even
// when its load finishes after an environment switch.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]map[string][]menu.Item
	epoch   uint64
}

// New returns a cache that knows every resource provided.
func New(resources ...string) *Cache {
	c := &Cache{entries: make(map[string]map[string][]menu.Item, len(resources))}
	for _, resource := range resources {
		c.entries[resource] = map[string][]menu.Item{}
	}
	return c
}

// Get returns the items cached for resource in env. The boolean is false
// when nothing usable is cached, including entries emptied by Clear.
func (c *Cache) Get(env, resource string) ([]menu.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.entries[resource][env]
	if len(items) == 0 {
		return nil, false
	}
	return menu.CloneItems(items), true
}

// Put stores items under resource for env.
func (c *Cache) Put(env, resource string, items []menu.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(env, resource, items)
}

// Epoch identifies the cache contents between two Clear calls.
func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// PutIf stores items only when no Clear happened since epoch was read.
func (c *Cache) PutIf(epoch uint64, env, resource string, items []menu.Item) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.store(env, resource, items)
	return true
}

func (c *Cache) store(env, resource string, items []menu.Item) {
	if items == nil {
		items = []menu.Item{}
	}
	byEnv, ok := c.entries[resource]
	if !ok {
		byEnv = map[string][]menu.Item{}
		c.entries[resource] = byEnv
	}
	byEnv[env] = menu.CloneItems(items)
}

// Clear empties every entry of every environment. Resource names are kept
// so Keys stays stable.
func (c *Cache) Clear() {
	c.mu.Lock()
	for resource := range c.entries {
		c.entries[resource] = map[string][]menu.Item{}
	}
	c.epoch++
	c.mu.Unlock()
	events.Config.CacheCleared(c.Keys())
}

// Keys returns the known resource names in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for resource := range c.entries {
		keys = append(keys, resource)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of items cached for resource across all
// environments.
func (c *Cache) Len(resource string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, items := range c.entries[resource] {
		n += len(items)
	}
	return n
}
