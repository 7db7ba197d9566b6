package enforcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schoolkit/migrations"
	"github.com/schooldesk/schoolkit/pkg/audit"
	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/config"
	"github.com/schooldesk/schoolkit/pkg/entitlement"
	"github.com/schooldesk/schoolkit/pkg/environment"
	"github.com/schooldesk/schoolkit/pkg/httpserver"
	"github.com/schooldesk/schoolkit/pkg/logger"
	"github.com/schooldesk/schoolkit/pkg/mongo"
	"github.com/schooldesk/schoolkit/pkg/pg"
	"github.com/schooldesk/schoolkit/pkg/ratelimit"
	"github.com/schooldesk/schoolkit/pkg/redis"
	"github.com/schooldesk/schoolkit/pkg/requestid"
	"github.com/schooldesk/schoolkit/pkg/restriction"
	"github.com/schooldesk/schoolkit/pkg/tenant"
	"github.com/schooldesk/schoolkit/pkg/usage"
)

// ServiceConfig collects everything needed to run the enforcement API as
// a standalone process. Values come from the environment via config.Load.
type ServiceConfig struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"enforcement"`

	// PlanCatalogPath points at a YAML plan catalog. Empty means the
	// built-in catalog.
	PlanCatalogPath string `env:"PLAN_CATALOG_PATH"`

	// SnapshotTTL bounds how stale a cached plan snapshot may get.
	SnapshotTTL time.Duration `env:"PLAN_SNAPSHOT_TTL" envDefault:"30s"`

	// BillingQueueSize caps the in-memory billing signal queue.
	BillingQueueSize int `env:"BILLING_QUEUE_SIZE" envDefault:"1000"`

	// AuditBackend selects where audit events land: postgres or mongo.
	AuditBackend string `env:"AUDIT_BACKEND" envDefault:"postgres"`
	// AuditBuffer sizes the async audit writer; 0 writes synchronously.
	AuditBuffer int `env:"AUDIT_BUFFER_SIZE" envDefault:"256"`
	// MongoDatabase names the database used when AuditBackend is mongo.
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"schoolkit"`

	// RatePerMinute throttles admin callers; 0 disables rate limiting.
	RatePerMinute int `env:"ADMIN_RATE_PER_MINUTE" envDefault:"120"`
	RateBurst     int `env:"ADMIN_RATE_BURST" envDefault:"0"`

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config
}

// Run loads ServiceConfig from the environment and serves until the
// context is canceled or the process receives a termination signal.
func Run(ctx context.Context) error {
	var cfg ServiceConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	return Serve(ctx, cfg)
}

// Serve assembles the enforcement service from cfg and blocks serving
// it. Postgres backs the tenant directory and audit trail, and Redis
// backs the plan snapshot cache. The catalog comes from YAML when
// PlanCatalogPath is set.
func Serve(ctx context.Context, cfg ServiceConfig) error {
	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.MigrateFS(ctx, pool, migrations.FS, cfg.PG, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	store := tenant.NewPostgresStore(pool)

	var src catalog.Source
	plans := catalog.Default()
	if cfg.PlanCatalogPath != "" {
		src = catalog.NewYAMLSource(cfg.PlanCatalogPath)
		if plans, err = src.Load(ctx); err != nil {
			return fmt.Errorf("load plan catalog: %w", err)
		}
	}

	entitlements, err := entitlement.NewService(ctx, store, src,
		entitlement.WithCache(entitlement.NewRedisCache(redisClient, cfg.ServiceName, log)),
		entitlement.WithCacheTTL(cfg.SnapshotTTL),
		entitlement.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("build entitlement service: %w", err)
	}
	defer func() { _ = entitlements.Close() }()

	tracker := usage.NewMemoryTracker(plans,
		usage.WithSignalQueueSize(cfg.BillingQueueSize),
		usage.WithLogger(log),
	)

	health := []func(context.Context) error{
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	}

	var auditStorage audit.Storage
	switch cfg.AuditBackend {
	case "mongo":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return err
		}
		db, err := mongo.NewWithDatabase(ctx, mongoCfg, cfg.MongoDatabase)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() { _ = db.Client().Disconnect(context.Background()) }()
		health = append(health, mongo.Healthcheck(db.Client()))
		auditStorage = audit.NewMongoStorage(db)
	case "postgres":
		auditStorage = audit.NewPostgresStorage(pool)
	default:
		return fmt.Errorf("unknown audit backend %q", cfg.AuditBackend)
	}

	auditLogger := audit.NewLogger(auditStorage, audit.WithLogger(log))
	var flushAudit func(context.Context) error
	if cfg.AuditBuffer > 0 {
		auditLogger, flushAudit = audit.NewAsyncLogger(auditStorage, cfg.AuditBuffer, audit.WithLogger(log))
	}

	restrictions := restriction.NewService(store, plans,
		restriction.WithAuditLogger(auditLogger),
		restriction.WithInvalidator(entitlements),
		restriction.WithUsageResetter(tracker),
	)

	opts := RouterOptions{
		Entitlements: entitlements,
		Usage:        tracker,
		Restrictions: restrictions,
		Audit:        audit.NewReader(auditStorage),
		Logger:       log,
	}
	if cfg.RatePerMinute > 0 {
		limiterOpts := []ratelimit.TokenBucketOption{}
		if cfg.RateBurst > 0 {
			limiterOpts = append(limiterOpts, ratelimit.WithBurst(cfg.RateBurst))
		}
		limiter, err := ratelimit.NewTokenBucket(cfg.RatePerMinute, time.Minute, limiterOpts...)
		if err != nil {
			return fmt.Errorf("build rate limiter: %w", err)
		}
		opts.RateLimit = limiter
	}

	root := chi.NewRouter()
	root.Use(environment.Middleware(environment.Environment(cfg.AppEnv)))
	root.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	root.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, health...))
	root.Mount("/api/enforcement", Router(opts))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("enforcement API listening",
				slog.String("addr", cfg.HTTP.Addr),
				slog.String("env", cfg.AppEnv))
		}),
	)

	runErr := srv.Run(ctx, root)
	if flushAudit != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := flushAudit(flushCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			log.Error("audit flush on shutdown failed", slog.Any("error", err))
		}
	}
	return runErr
}
