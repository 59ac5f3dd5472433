// Package logging provides structured logging for the botdash client.
//
// This package wraps zap with convenience functions for the logging
// patterns used across the dashboard: connectivity probes, API calls,
// backend notifications and bot lifecycle actions.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (probe outcomes, stream frames)
//   - Info: Normal operations (bot actions, connection changes)
//   - Warn: Non-fatal issues (failed API calls, stream reconnects)
//   - Error: Fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("bot action",
//	    zap.String("bot_id", "woodcutter"),
//	    zap.String("action", "start"),
//	)
//
// # Configuration
//
// Logging is silent by default so it never corrupts the terminal UI.
// Set BOTDASH_LOG_LEVEL to enable output, which goes to stderr:
//
//	BOTDASH_LOG_LEVEL=debug botdash
//
// Programmatic initialization at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
