// Package pg stores cookie attribute documents in PostgreSQL using the
// pgx/v5 driver.
//
// The package keeps a small API surface on top of pgx/v5 for connectivity
// and goose/v3 for schema migrations:
//
//   • Config – populated from environment variables via
//     github.com/caarlos0/env. It controls pool limits, retry cadence and the
//     goose version table.
//
//   • Connect – opens a *pgxpool.Pool based on Config, retrying until the
//     database becomes available.
//
//   • Migrate – applies the migrations embedded in the binary, creating the
//     cookie_options table.
//
//   • Storage – a cookie.Storage over cookie_options. Expired rows are
//     invisible to Get and can be purged with DeleteExpired.
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//	    panic(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
//
//	m := cookie.New(doc, pg.NewStorage(pool, cfg))
//
// # Error Handling
//
// Storage failures are wrapped in ErrStorage with errors.Join. A missing or
// expired key reads as nil without an error.
package pg
