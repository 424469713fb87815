// Command cookied serves the cookie manager over HTTP. Every request gets a
// manager bound to its cookies; persisted options live in the configured
// storage driver.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/easycookie/pkg/config"
	"github.com/dmitrymomot/easycookie/pkg/httpserver"
	"github.com/dmitrymomot/easycookie/pkg/logger"
	"github.com/dmitrymomot/easycookie/pkg/visitor"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestIDExtractor(), visitor.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	// Fail at startup rather than on the first request.
	if _, err := cfg.Cookie.Attributes(); err != nil {
		return err
	}

	b, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to open options storage", logger.Driver(cfg.StorageDriver), logger.Error(err))
		return err
	}
	defer b.close()

	h := &handler{
		storage:       b.storage,
		cookieCfg:     cfg.Cookie,
		visitorCookie: cfg.VisitorCookie,
		maxBodySize:   cfg.MaxBodySize,
		log:           log,
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(cfg, h, b.checks, log))
}
