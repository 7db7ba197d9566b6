// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package standardises structured logging across services through a
// single factory, New, that creates a *slog.Logger configured by a set of
// Option functions. These options allow you to:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that inject attributes pulled
//     from a context value every time Handle is invoked
//
// # Architecture
//
// New determines the concrete slog.Handler implementation, slog.NewTextHandler
// or slog.NewJSONHandler, from the configured Format. It then wraps the
// handler with LogHandlerDecorator, which runs any registered
// ContextExtractor callbacks before delegating to the underlying handler.
//
// Helper constructors such as Group, Error, TenantID and Action live in
// attr.go and keep attribute naming consistent across the codebase.
//
// # Usage
//
//	import "github.com/schooldesk/schoolkit/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithProduction("enforcement-api"),
//	        logger.WithContextExtractors(tenant.LoggerExtractor()),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.InfoContext(ctx, "feature denied",
//	        logger.TenantID(tenantID),
//	        logger.Feature(code),
//	        logger.Tier(info.Tier),
//	    )
//	}
//
// # Configuration
//
// The behaviour of New can be tuned with a variety of Option helpers:
//
//   - WithDevelopment / WithStaging / WithProduction set per-environment defaults.
//   - WithFormat / WithTextFormatter / WithJSONFormatter override output format.
//   - WithLevel sets a custom slog.Level.
//   - WithAttr attaches static attributes.
//   - WithContextExtractors / WithContextValue inject attributes from context.
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation succeeded", logger.Error(err))
//
// without an additional nil check.
package logger
