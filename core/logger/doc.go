// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("sitekit"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, stdout
//	devLogger := logger.New(logger.WithDevelopment("sitekit"))
//
//	// Production: JSON format, info level, stdout
//	prodLogger := logger.New(logger.WithProduction("sitekit"))
//
// NewFromConfig selects one of them from APP_ENV and applies LOG_LEVEL.
//
// # Context-Aware Logging
//
// Context extractors add request-scoped attributes to every record logged with a context:
//
//	log := logger.New(
//		logger.WithProduction("sitekit"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			c, ok := culture.FromContext(ctx)
//			return logger.Culture(c), ok
//		}),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, so they can be passed
// unconditionally:
//
//	log.Error("menu build failed", logger.Error(err), logger.Culture(c))
package logger
