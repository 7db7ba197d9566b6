// Package redis provides helpers for connecting to a Redis server and wiring
// it into the rest of the toolkit.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the initial ping using the supplied
//     configuration before handing back a ready client.
//   - A health-check helper to integrate Redis into HTTP liveness and
//     readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	import (
//	    "github.com/schooldesk/schoolkit/pkg/config"
//	    "github.com/schooldesk/schoolkit/pkg/redis"
//	)
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	ctx := context.Background()
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
// The client plugs straight into the snapshot cache used by the entitlement
// resolver:
//
//	cache := entitlement.NewRedisCache(client, "entitlement", slog.Default())
//	svc, err := entitlement.NewService(ctx, store, nil,
//	    entitlement.WithCache(cache),
//	)
//
// Register a health check alongside the database one:
//
//	checker := redis.Healthcheck(client)
//	if err := checker(ctx); err != nil {
//	    // redis is not healthy
//	}
//
// # Errors
//
// The package defines sentinel errors (e.g. ErrRedisNotReady) that wrap the
// underlying go-redis errors using errors.Join, so callers can compare with
// errors.Is and still reach the cause.
package redis
