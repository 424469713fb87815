package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/easycookie/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3, 0)
		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("missing key", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3, 0)
		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, val)
	})

	t.Run("replace keeps single entry", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3, 0)
		c.Put("a", 1)
		c.Put("a", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3, 0)
		c.Put("a", 1)

		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("purge", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3, 0)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Purge()

		assert.Equal(t, 0, c.Len())
		c.Put("c", 3)
		val, ok := c.Get("c")
		assert.True(t, ok)
		assert.Equal(t, 3, val)
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("drops least recently used", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2, 0)

		var evicted []string
		c.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

		c.Put("a", 1)
		c.Put("b", 2)
		_, _ = c.Get("a") // b becomes the oldest
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []string{"b"}, evicted)
	})

	t.Run("peek does not refresh recency", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2, 0)
		c.Put("a", 1)
		c.Put("b", 2)
		_, _ = c.Peek("a")
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("remove does not call evict callback", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2, 0)
		called := false
		c.OnEvict(func(string, int) { called = true })
		c.Put("a", 1)
		c.Remove("a")
		assert.False(t, called)
	})
}

func TestLRUCache_InvalidCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRUCache[string, int](0, 0) })
}

func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[int, int](64, 0)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 200 {
				c.Put(g*1000+i, i)
				_, _ = c.Get(g*1000 + i)
			}
		}(g)
	}
	wg.Wait()

	require.LessOrEqual(t, c.Len(), 64)
}
