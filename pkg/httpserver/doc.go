// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, health endpoints and slog lifecycle logging.
//
//   - Graceful shutdown: Run blocks until the context is cancelled or an
//     interrupt/TERM signal is received, then calls http.Server.Shutdown
//     with a configurable deadline.
//
//   - Functional options: New and NewFromConfig take Option helpers such as
//     WithAddr, WithReadTimeout and WithLogger. Invalid values panic at
//     construction time.
//
//   - Hooks: WithStartHook and WithStopHook run around the server lifecycle.
//
//   - Health: LivenessHandler and ReadinessHandler serve JSON probe
//     responses; readiness runs named dependency checks such as
//     redis.Healthcheck.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second,
//		map[string]httpserver.CheckFunc{"redis": redis.Healthcheck(client)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
