package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar controls logging verbosity. When unset or empty, logging
// is silent.
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ROSEDAY_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file instead of stderr.
const LogFileEnvVar = "ROSEDAY_LOG_FILE"

// Initialize creates the global logger with the given level and output.
// An empty level falls back to ROSEDAY_LOG_LEVEL; if that is empty too the
// logger is a no-op. An empty output falls back to ROSEDAY_LOG_FILE, then
// to stderr.
func Initialize(level, output string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if output == "" {
		output = os.Getenv(LogFileEnvVar)
	}
	if output == "" {
		output = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stderr" || output == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from ROSEDAY_LOG_LEVEL and
// ROSEDAY_LOG_FILE only.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// Enabled reports whether a level was requested via the argument or the
// environment. The TUI uses it to decide whether it needs a log file.
func Enabled(level string) bool {
	return level != "" || os.Getenv(LogLevelEnvVar) != ""
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown but explicitly set: be useful rather than silent
		return zapcore.InfoLevel
	}
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogScreenTransition logs a controller state change
func LogScreenTransition(from, to string, epoch uint64) {
	Debug("Screen transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.Uint64("epoch", epoch),
	)
}

// LogGenerationStep logs the outcome of one pipeline step
func LogGenerationStep(step string, style string, duration time.Duration, textLen int, err error) {
	fields := []zap.Field{
		zap.String("step", step),
		zap.String("style", style),
		zap.Duration("duration", duration),
		zap.Int("text_length", textLen),
	}
	if err != nil {
		Warn("Generation step failed", append(fields, zap.Error(err))...)
		return
	}
	Info("Generation step completed", fields...)
}

// LogProviderRequest logs an outbound completion request
func LogProviderRequest(provider, model string, promptLen int) {
	Debug("Provider request",
		zap.String("provider", provider),
		zap.String("model", model),
		zap.Int("prompt_length", promptLen),
	)
}

// LogProviderResponse logs a completion response
func LogProviderResponse(provider string, statusCode int, textLen int, duration time.Duration) {
	Debug("Provider response",
		zap.String("provider", provider),
		zap.Int("status_code", statusCode),
		zap.Int("text_length", textLen),
		zap.Duration("duration", duration),
	)
}

// LogShareEvent logs a share server event for a remote peer
func LogShareEvent(remoteAddr string, event string) {
	Info("Share event",
		zap.String("remote_addr", remoteAddr),
		zap.String("event", event),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
