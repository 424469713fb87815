package cache

import (
	"sync"
	"time"
)

type node[K comparable, V any] struct {
	key        K
	value      V
	expiresAt  time.Time
	prev, next *node[K, V]
}

// LRUCache is a thread-safe, fixed-capacity cache that evicts the least
// recently used entry on overflow. Entries may also carry a time to live.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[K]*node[K, V]
	head     node[K, V] // sentinel: head.next is the most recent entry
	onEvict  func(key K, value V)
	now      func() time.Time
}

// NewLRUCache creates a cache holding at most capacity entries. A positive
// ttl expires entries that long after their last write. Panics if capacity
// is not positive.
func NewLRUCache[K comparable, V any](capacity int, ttl time.Duration) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRUCache[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*node[K, V], capacity),
		now:      time.Now,
	}
	c.head.next = &c.head
	c.head.prev = &c.head
	return c
}

// OnEvict registers a callback invoked for entries dropped because of
// capacity or expiry. It is called with the cache lock held.
func (c *LRUCache[K, V]) OnEvict(fn func(key K, value V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get returns the value for key and marks it as most recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if !ok || c.expired(n) {
		if ok {
			c.drop(n, true)
		}
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Peek returns the value for key without touching its recency.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if !ok || c.expired(n) {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Put inserts or replaces the value for key.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if n, ok := c.items[key]; ok {
		n.value = value
		n.expiresAt = expiresAt
		c.moveToFront(n)
		return
	}

	n := &node[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = n
	c.insertFront(n)

	if len(c.items) > c.capacity {
		c.drop(c.head.prev, true)
	}
}

// Remove deletes key and reports whether it was present. The eviction
// callback is not invoked for explicit removals.
func (c *LRUCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if ok {
		c.drop(n, false)
	}
	return ok
}

// Len returns the number of entries, expired ones not yet collected included.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge removes every entry.
func (c *LRUCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*node[K, V], c.capacity)
	c.head.next = &c.head
	c.head.prev = &c.head
}

func (c *LRUCache[K, V]) expired(n *node[K, V]) bool {
	return !n.expiresAt.IsZero() && c.now().After(n.expiresAt)
}

func (c *LRUCache[K, V]) insertFront(n *node[K, V]) {
	n.prev = &c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRUCache[K, V]) unlink(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

func (c *LRUCache[K, V]) moveToFront(n *node[K, V]) {
	if c.head.next == n {
		return
	}
	c.unlink(n)
	c.insertFront(n)
}

func (c *LRUCache[K, V]) drop(n *node[K, V], evicted bool) {
	c.unlink(n)
	delete(c.items, n.key)
	if evicted && c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
}
