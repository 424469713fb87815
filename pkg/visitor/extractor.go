package visitor

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/easycookie/pkg/logger"
)

// LoggerExtractor adds the visitor ID to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.VisitorID(id), true
		}
		return slog.Attr{}, false
	}
}
