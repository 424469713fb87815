// Package logger builds log/slog loggers with functional options and
// provides attribute helpers so key names stay consistent across packages.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// handler with LogHandlerDecorator, which injects values taken from the
// record's context (for example a request id):
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "cookied"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	log.InfoContext(ctx, "cookie set", logger.CookieName("theme"))
//
// Helpers such as Error return an empty attribute for nil input, so they can
// be passed without a nil check.
package logger
