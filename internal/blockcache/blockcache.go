// Package blockcache provides a byte-bounded LRU cache for immutable
// archive blocks. Cached slices must be treated as read-only.
package blockcache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// Key identifies a cached block: a blob name plus a block index.
type Key struct {
	Name  string
	Block uint64
}

// Cache is a byte-capacity LRU over immutable blocks.
type Cache struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[Key]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   Key
	value []byte
}

// New creates a cache holding at most capacity bytes of block data.
func New(capacity int64) *Cache {
	return &Cache{
		capacity:  capacity,
		items:     make(map[Key]*list.Element),
		evictList: list.New(),
	}
}

// Get returns a cached block. ok is false if missing.
func (c *Cache) Get(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)

		return ent.Value.(*entry).value, true
	}

	c.misses.Add(1)

	return nil, false
}

// Set caches a block. The caller must not mutate b afterwards.
func (c *Cache) Set(key Key, b []byte) {
	if int64(len(b)) > c.capacity {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		old := ent.Value.(*entry)
		c.size += int64(len(b)) - int64(len(old.value))
		old.value = b
		c.evictList.MoveToFront(ent)
	} else {
		c.items[key] = c.evictList.PushFront(&entry{key: key, value: b})
		c.size += int64(len(b))
	}

	for c.size > c.capacity {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}

		c.removeElement(oldest)
	}
}

// Invalidate removes entries matching the predicate.
func (c *Cache) Invalidate(predicate func(key Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, ent := range c.items {
		if predicate(key) {
			c.removeElement(ent)
		}
	}
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the current cached byte count.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

func (c *Cache) removeElement(ent *list.Element) {
	e := ent.Value.(*entry)
	delete(c.items, e.key)
	c.evictList.Remove(ent)
	c.size -= int64(len(e.value))
}
