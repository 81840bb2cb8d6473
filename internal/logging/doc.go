// Package logging provides structured logging for roseday.
//
// The package wraps a global zap logger with convenience functions. Logging
// is silent by default so the terminal UI and the command output stay
// clean; set ROSEDAY_LOG_LEVEL to "debug", "info", "warn" or "error" to
// enable it.
//
// # Log Levels
//
//   - Debug: screen transitions, provider requests and responses
//   - Info: completed generation steps, share server events
//   - Warn: failed generation steps, missing credentials
//   - Error: startup failures
//
// # Output
//
// Logs go to stderr unless ROSEDAY_LOG_FILE (or the output argument of
// Initialize) names a file. The interactive UI always passes a file path
// because it owns the whole terminal:
//
//	if err := logging.Initialize(level, filepath.Join(dir, "roseday.log")); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Domain Helpers
//
//	logging.LogScreenTransition("choice", "result", epoch)
//	logging.LogGenerationStep("candidates", "Poetic", d, len(text), err)
//	logging.LogProviderRequest("together", model, len(prompt))
//	logging.LogShareEvent(remoteAddr, "websocket_opened")
//
// All functions are safe for concurrent use.
package logging
