// Package logging provides structured logging for the data-flow analysis
// engine.
//
// # Overview
//
// The logging package wraps log/slog with the handful of fields an analysis
// run actually tags its diagnostics with: a run ID attached once via
// WithField, the method and context ID a lifecycle event concerns.
//
// # Log Levels
//
//   - DEBUG: per-context diagnostics (only useful with Config.Verbose)
//   - INFO: analysis start/complete
//   - WARN: contexts left unanalysed when DoAnalysis returns
//
// # Basic Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Pretty: true,
//	})
//	if err != nil {
//	    // Level named something New doesn't recognise.
//	}
//
//	logger.WithField("run_id", runID).Info("analysis started")
//	logger.WithMethod(fmt.Sprint(method)).WithContextID(ctx.ID).Debug("context stabilised")
//
// # Output Formats
//
// JSON (default, production):
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"analysis started","run_id":"..."}
//
// Text (Config.Pretty, development):
//
//	time=2026-01-15T10:30:00.000Z level=INFO msg="analysis started" run_id=...
//
// # Thread Safety
//
// All logger operations are safe for concurrent use. The engine's own driver
// is single-threaded, but a Logger value returned by WithField et al. may
// still be shared with, or read from, an observer or telemetry goroutine.
package logging
