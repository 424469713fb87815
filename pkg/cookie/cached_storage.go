package cookie

import (
	"context"
	"time"

	"github.com/dmitrymomot/easycookie/pkg/cache"
)

// CachedStorage keeps recently used attribute documents in an LRU cache in
// front of another Storage. Writes and deletes go through to the backend
// first and only then update the cache. Misses are not cached.
type CachedStorage struct {
	next  Storage
	cache *cache.LRUCache[string, []byte]
}

// NewCachedStorage wraps next with an LRU of the given size. A positive ttl
// bounds how long a cached document may be served without hitting next.
func NewCachedStorage(next Storage, size int, ttl time.Duration) *CachedStorage {
	return &CachedStorage{
		next:  next,
		cache: cache.NewLRUCache[string, []byte](size, ttl),
	}
}

func (s *CachedStorage) Get(key string) ([]byte, error) {
	if val, ok := s.cache.Get(key); ok {
		return val, nil
	}

	val, err := s.next.Get(key)
	if err != nil || val == nil {
		return val, err
	}
	s.cache.Put(key, val)
	return val, nil
}

func (s *CachedStorage) Set(key string, val []byte, exp time.Duration) error {
	if err := s.next.Set(key, val, exp); err != nil {
		s.cache.Remove(key)
		return err
	}
	s.cache.Put(key, val)
	return nil
}

func (s *CachedStorage) Delete(key string) error {
	s.cache.Remove(key)
	return s.next.Delete(key)
}

// DeletePrefix forwards to the wrapped storage when it implements
// PrefixDeleter and drops the whole cache, which does not index keys by
// prefix. Without backend support it only drops the cache.
func (s *CachedStorage) DeletePrefix(ctx context.Context, prefix string) error {
	defer s.cache.Purge()
	if pd, ok := s.next.(PrefixDeleter); ok {
		return pd.DeletePrefix(ctx, prefix)
	}
	return nil
}
