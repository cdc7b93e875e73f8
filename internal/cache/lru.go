package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/launcherkit/resource"
)

// SizeFunc reports the memory charged for a value.
type SizeFunc[V any] func(V) int64

// LRU is a size-bounded least-recently-used cache. It is safe for
// concurrent use.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[K]*list.Element
	evictList *list.List
	sizeOf    SizeFunc[V]
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
	size  int64
}

// New creates an LRU holding at most capacity bytes as measured by sizeOf.
// rc may be nil.
func New[K comparable, V any](capacity int64, sizeOf SizeFunc[V], rc *resource.Controller) *LRU[K, V] {
	return &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		sizeOf:    sizeOf,
		rc:        rc,
	}
}

// NewBytes creates an LRU of byte slices charged by length.
func NewBytes[K comparable](capacity int64, rc *resource.Controller) *LRU[K, []byte] {
	return New[K](capacity, func(b []byte) int64 { return int64(len(b)) }, rc)
}

// Get returns the cached value for key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches value under key. Values larger than the capacity, or refused by
// the resource controller, are not cached.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.sizeOf(value)
	if size > c.capacity {
		if el, ok := c.items[key]; ok {
			c.removeElement(el)
		}
		return
	}

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[K, V])
		if delta := size - ent.size; delta > 0 && !c.rc.TryAcquireMemory(delta) {
			return
		} else if delta < 0 {
			c.rc.ReleaseMemory(-delta)
		}
		c.size += size - ent.size
		ent.value, ent.size = value, size
		c.evictList.MoveToFront(el)
		c.evictOver(c.capacity)
		return
	}

	// Make room locally first so evictions release budget before we ask for it.
	c.evictOver(c.capacity - size)
	if !c.rc.TryAcquireMemory(size) {
		return
	}
	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value, size: size})
	c.size += size
}

// Remove drops key, reporting whether it was cached.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok
}

// Invalidate removes every entry whose key matches pred.
func (c *LRU[K, V]) Invalidate(pred func(K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, el := range c.items {
		if pred(key) {
			c.removeElement(el)
		}
	}
}

// Purge removes all entries.
func (c *LRU[K, V]) Purge() {
	c.Invalidate(func(K) bool { return true })
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Size returns the bytes held.
func (c *LRU[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns hit and miss counts.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *LRU[K, V]) evictOver(limit int64) {
	for c.size > limit {
		el := c.evictList.Back()
		if el == nil {
			return
		}
		c.removeElement(el)
	}
}

func (c *LRU[K, V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	ent := el.Value.(*entry[K, V])
	delete(c.items, ent.key)
	c.size -= ent.size
	c.rc.ReleaseMemory(ent.size)
}
