package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultScanBatchSize = 1000

// Storage keeps cookie attribute documents in Redis. It satisfies
// cookie.Storage: missing keys read as nil, a zero expiration never expires.
type Storage struct {
	db            redis.UniversalClient
	opTimeout     time.Duration
	scanBatchSize int64
}

// NewStorage wraps a connected client with default settings.
func NewStorage(client redis.UniversalClient) *Storage {
	return &Storage{
		db:            client,
		scanBatchSize: defaultScanBatchSize,
	}
}

// NewStorageWithConfig wraps a connected client using the timeout and scan
// settings from cfg.
func NewStorageWithConfig(client redis.UniversalClient, cfg Config) *Storage {
	s := NewStorage(client)
	s.opTimeout = cfg.OpTimeout
	if cfg.ScanBatchSize > 0 {
		s.scanBatchSize = cfg.ScanBatchSize
	}
	return s
}

func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := s.context()
	defer cancel()

	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return val, nil
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	if err := s.db.Set(ctx, key, val, exp).Err(); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	if err := s.db.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// Keys returns every key starting with prefix. SCAN is used so a large
// keyspace does not block the server.
func (s *Storage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.db.Scan(ctx, cursor, prefixPattern(prefix), s.scanBatchSize).Result()
		if err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// DeletePrefix removes every key starting with prefix.
func (s *Storage) DeletePrefix(ctx context.Context, prefix string) error {
	keys, err := s.Keys(ctx, prefix)
	if err != nil || len(keys) == 0 {
		return err
	}
	if err := s.db.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *Storage) context() (context.Context, context.CancelFunc) {
	if s.opTimeout > 0 {
		return context.WithTimeout(context.Background(), s.opTimeout)
	}
	return context.WithCancel(context.Background())
}

// prefixPattern builds a MATCH pattern for keys starting with prefix. Glob
// metacharacters in prefix are escaped so they match literally.
func prefixPattern(prefix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 2)
	for _, r := range prefix {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('*')
	return b.String()
}
