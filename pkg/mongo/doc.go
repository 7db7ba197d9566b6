// Package mongo provides MongoDB connection management with environment-based
// configuration, retry logic, and connection pooling defaults that work for
// small-to-medium workloads without manual tuning.
//
// Key features:
//   - Environment-driven configuration via github.com/caarlos0/env
//   - Built-in retry logic for transient failures during startup
//   - Health check integration for Kubernetes/Docker orchestration
//   - Error types compatible with errors.Is() for clean error handling
//
// # Usage
//
//	import (
//		"context"
//
//		"github.com/schooldesk/schoolkit/pkg/audit"
//		"github.com/schooldesk/schoolkit/pkg/config"
//		"github.com/schooldesk/schoolkit/pkg/mongo"
//	)
//
//	func main() {
//		var cfg mongo.Config
//		config.MustLoad(&cfg)
//
//		ctx := context.Background()
//		db, err := mongo.NewWithDatabase(ctx, cfg, "schooldesk")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer db.Client().Disconnect(ctx)
//
//		// A Mongo collection can serve as long-retention audit storage.
//		store := audit.NewMongoStorage(db)
//		_ = store
//
//		health := mongo.Healthcheck(db.Client())
//		if err := health(ctx); err != nil {
//			log.Println("mongo is unavailable:", err)
//		}
//	}
//
// # Configuration
//
// All configuration values come from environment variables so credentials stay
// out of the codebase. Refer to the field tags in Config for exact variable
// names and defaults.
//
// # See Also
//
// Documentation for the official driver: https://pkg.go.dev/go.mongodb.org/mongo-driver.
package mongo
