package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
	"github.com/dmitrymomot/easycookie/pkg/httpserver"
	"github.com/dmitrymomot/easycookie/pkg/logger"
	"github.com/dmitrymomot/easycookie/pkg/mongo"
	"github.com/dmitrymomot/easycookie/pkg/pg"
	"github.com/dmitrymomot/easycookie/pkg/redis"
)

// backend is an opened options storage together with its readiness checks
// and the function releasing its connections.
type backend struct {
	storage cookie.Storage
	checks  map[string]httpserver.CheckFunc
	close   func()
}

func openStorage(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Component("storage"), logger.Driver(cfg.StorageDriver))

	var (
		b   *backend
		err error
	)
	switch cfg.StorageDriver {
	case driverMemory, "":
		b = &backend{storage: cookie.NewMemoryStorage(), close: func() {}}
	case driverRedis:
		b, err = openRedis(ctx, cfg.Redis)
	case driverPostgres:
		b, err = openPostgres(ctx, cfg, log)
	case driverMongo:
		b, err = openMongo(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDriver, cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.OptionsCacheSize > 0 {
		b.storage = cookie.NewCachedStorage(b.storage, cfg.OptionsCacheSize, cfg.OptionsCacheTTL)
	}

	log.InfoContext(ctx, "options storage ready", slog.Int("cache_size", cfg.OptionsCacheSize))
	return b, nil
}

func openRedis(ctx context.Context, cfg redis.Config) (*backend, error) {
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &backend{
		storage: redis.NewStorageWithConfig(client, cfg),
		checks:  map[string]httpserver.CheckFunc{driverRedis: redis.Healthcheck(client)},
		close:   func() { _ = client.Close() },
	}, nil
}

func openPostgres(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
		pool.Close()
		return nil, err
	}

	storage := pg.NewStorage(pool, cfg.Postgres)
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go runJanitor(janitorCtx, storage, cfg.JanitorInterval, log)

	return &backend{
		storage: storage,
		checks:  map[string]httpserver.CheckFunc{driverPostgres: pg.Healthcheck(pool)},
		close: func() {
			stopJanitor()
			pool.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg mongo.Config) (*backend, error) {
	db, err := mongo.NewWithDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage := mongo.NewStorage(db, cfg)
	if err := storage.EnsureIndexes(ctx); err != nil {
		_ = db.Client().Disconnect(context.Background())
		return nil, err
	}

	return &backend{
		storage: storage,
		checks:  map[string]httpserver.CheckFunc{driverMongo: mongo.Healthcheck(db.Client())},
		close:   func() { _ = db.Client().Disconnect(context.Background()) },
	}, nil
}

// runJanitor purges expired option rows until ctx is cancelled.
func runJanitor(ctx context.Context, storage *pg.Storage, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := storage.DeleteExpired(ctx)
			if err != nil {
				log.ErrorContext(ctx, "failed to purge expired options", logger.Error(err))
				continue
			}
			if n > 0 {
				log.InfoContext(ctx, "purged expired options", slog.Int64("count", n))
			}
		}
	}
}
