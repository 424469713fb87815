package cookie

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Transport is the document cookie capability: a single string property
// that returns every cookie on read and accepts one cookie per write.
// Writes carry no error signal; a rejected cookie simply does not show up
// on the next read.
type Transport interface {
	Cookies() string
	SetCookie(cookie string)
}

// PathProvider is implemented by transports that know the current document
// path. The manager uses it as the default path attribute.
type PathProvider interface {
	Path() string
}

// Storage persists the attribute set used for each cookie. Get returns
// nil, nil for missing keys. A zero expiration keeps the entry forever.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// PrefixDeleter is implemented by storages that can drop every entry whose
// key starts with a prefix, such as all attribute sets of one manager.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStorage is an in-process Storage. Expired entries are dropped lazily on read.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	entry := memoryEntry{value: make([]byte, len(val))}
	copy(entry.value, val)
	if exp > 0 {
		entry.expiresAt = s.now().Add(exp)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// DeletePrefix removes every entry whose key starts with prefix.
func (s *MemoryStorage) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
