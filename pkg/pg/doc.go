// Package pg provides utilities for interacting with PostgreSQL using the
// pgx/v5 driver. It offers a thin abstraction around connection pooling,
// migrations, health checks, and common error helpers so that applications can
// bootstrap a resilient database layer with only a few lines of code.
//
// The package keeps a very small API surface while relying on upstream
// libraries (pgx/v5 for connectivity and goose/v3 for schema migrations), so
// callers are never locked in and can freely extend the behaviour.
//
// # Architecture
//
// The package exposes three cooperating building blocks:
//
//   - Config is a declarative struct whose fields are populated from
//     environment variables via github.com/caarlos0/env. It controls
//     connection pool limits, health-check cadence and migration paths.
//
//   - Connect opens a *pgxpool.Pool based on Config, retrying with a
//     growing backoff until the database becomes available.
//
//   - Migrate and MigrateFS run goose migrations against the same pool,
//     from a directory or an embedded filesystem, so the schema is
//     up to date before the service starts serving traffic.
//
// # Usage
//
//	package main
//
//	import (
//	    "context"
//	    "log/slog"
//
//	    "github.com/schooldesk/schoolkit/migrations"
//	    "github.com/schooldesk/schoolkit/pkg/config"
//	    "github.com/schooldesk/schoolkit/pkg/pg"
//	)
//
//	func main() {
//	    var cfg pg.Config
//	    config.MustLoad(&cfg)
//
//	    ctx := context.Background()
//	    pool, err := pg.Connect(ctx, cfg)
//	    if err != nil {
//	        panic(err)
//	    }
//	    defer pool.Close()
//
//	    if err := pg.MigrateFS(ctx, pool, migrations.FS, cfg, slog.Default()); err != nil {
//	        panic(err)
//	    }
//
//	    health := pg.Healthcheck(pool)
//	    if err := health(ctx); err != nil {
//	        panic(err)
//	    }
//	}
//
// # Configuration
//
// All configuration values are provided through environment variables so that
// they can be tuned per-environment without code changes. Refer to the field
// tags in Config for exact variable names and defaults.
//
// # Error Handling
//
// Convenience helpers such as [pg.IsDuplicateKeyError] or
// [pg.IsForeignKeyViolationError] unwrap errors returned by pgx/
// `*pgconn.PgError` and make error classification trivial inside business
// logic.
package pg
