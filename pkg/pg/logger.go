package pg

import "context"

// logger is the subset of *slog.Logger that Migrate needs for goose output.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
