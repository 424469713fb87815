// Package cache provides a small generic LRU cache with optional per-entry
// expiry.
//
// The cookie package uses it to keep recently read attribute documents in
// memory in front of a remote Storage (redis, postgres, mongo):
//
//	lru := cache.NewLRUCache[string, []byte](512, time.Hour)
//	lru.Put("theme", []byte(`{"path":"/"}`))
//	if v, ok := lru.Get("theme"); ok {
//		_ = v
//	}
//
// All methods are safe for concurrent use. Get, Put and Remove are O(1).
// When the cache is full, Put drops the least recently used entry and calls
// the OnEvict callback for it.
package cache
