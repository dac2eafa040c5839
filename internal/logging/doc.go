// Package logging provides structured logging for tapcalc.
//
// This package wraps a package-level zap logger with convenience functions
// and a few calculator-specific helpers. Logging is silent by default so the
// terminal UI is never disturbed; set TAPCALC_LOG_LEVEL or pass --log-level
// to enable it, and --log-file to send it somewhere other than stderr.
//
// # Log Levels
//
//   - Debug: button presses and action classification
//   - Info: evaluation requests and responses
//   - Error: failed evaluations (transport, semantic or protocol)
//
// # Usage
//
//	if err := logging.Initialize("debug", "/tmp/tapcalc.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.LogRequest(id, endpoint, "2*3")
package logging
