package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getOptionsQuery = `SELECT value FROM cookie_options
WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`

	upsertOptionsQuery = `INSERT INTO cookie_options (key, value, expires_at, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`

	deleteOptionsQuery       = `DELETE FROM cookie_options WHERE key = $1`
	deletePrefixOptionsQuery = `DELETE FROM cookie_options WHERE starts_with(key, $1)`
	deleteExpiredQuery       = `DELETE FROM cookie_options WHERE expires_at IS NOT NULL AND expires_at <= now()`
)

// Storage keeps cookie attribute documents in the cookie_options table
// created by Migrate. It satisfies cookie.Storage.
type Storage struct {
	pool      *pgxpool.Pool
	opTimeout time.Duration
	now       func() time.Time
}

// NewStorage wraps a connected pool. cfg.OpTimeout bounds every query.
func NewStorage(pool *pgxpool.Pool, cfg Config) *Storage {
	return &Storage{
		pool:      pool,
		opTimeout: cfg.OpTimeout,
		now:       time.Now,
	}
}

func (s *Storage) Get(key string) ([]byte, error) {
	ctx, cancel := s.context()
	defer cancel()

	var val []byte
	err := s.pool.QueryRow(ctx, getOptionsQuery, key).Scan(&val)
	if IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return val, nil
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	ctx, cancel := s.context()
	defer cancel()

	var expiresAt *time.Time
	if exp > 0 {
		t := s.now().Add(exp)
		expiresAt = &t
	}

	if _, err := s.pool.Exec(ctx, upsertOptionsQuery, key, val, expiresAt); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *Storage) Delete(key string) error {
	ctx, cancel := s.context()
	defer cancel()

	if _, err := s.pool.Exec(ctx, deleteOptionsQuery, key); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// DeletePrefix removes every document whose key starts with prefix.
func (s *Storage) DeletePrefix(ctx context.Context, prefix string) error {
	if _, err := s.pool.Exec(ctx, deletePrefixOptionsQuery, prefix); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// DeleteExpired purges documents past their expiration and returns how many
// were removed. Expired rows are already invisible to Get.
func (s *Storage) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteExpiredQuery)
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return tag.RowsAffected(), nil
}

func (s *Storage) context() (context.Context, context.CancelFunc) {
	if s.opTimeout > 0 {
		return context.WithTimeout(context.Background(), s.opTimeout)
	}
	return context.WithCancel(context.Background())
}
