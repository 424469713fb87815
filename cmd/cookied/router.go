package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/easycookie/pkg/httpserver"
	"github.com/dmitrymomot/easycookie/pkg/logger"
	"github.com/dmitrymomot/easycookie/pkg/visitor"
)

func newRouter(cfg appConfig, h *handler, checks map[string]httpserver.CheckFunc, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.ReadyTimeout, checks))

	r.Route("/cookies", func(r chi.Router) {
		r.Use(visitor.Middleware(
			visitor.WithCookieName(cfg.VisitorCookie),
			visitor.WithSecure(cfg.Cookie.Secure),
		))

		r.Get("/", h.list)
		r.Delete("/", h.removeAll)
		r.Get("/{name}", h.get)
		r.Put("/{name}", h.set)
		r.Delete("/{name}", h.remove)
		r.Get("/{name}/options", h.options)
	})

	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request handled",
				logger.Component("http"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func requestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
