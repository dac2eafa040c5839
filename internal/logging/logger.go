package logging

import (
	"fmt"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "TAPCALC_LOG_LEVEL"

// DefaultOutput is where logs go when no file is configured. The terminal UI
// owns stdout, so logs never go there.
const DefaultOutput = "stderr"

// maxBodyLog limits how much of a response body is logged
const maxBodyLog = 256

// Initialize creates a new logger with the specified level and output path.
// If level is empty, it checks the TAPCALC_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode). An empty output
// selects DefaultOutput.
func Initialize(level, output string) error {
	// If no level provided, check environment variable
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if output == "" {
		output = DefaultOutput
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// ParseLevel maps a level name to a zap level.
// Unknown names fall back to info.
func ParseLevel(level string) zapcore.Level {
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
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger (tests use zaptest/observer loggers)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
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

// LogButton logs a button activation and the action it was classified as
func LogButton(label, action string) {
	Debug("Button pressed",
		zap.String("label", label),
		zap.String("action", action),
	)
}

// LogRequest logs an expression being sent for evaluation
func LogRequest(requestID, endpoint, expression string) {
	Info("Expression sent to evaluator",
		zap.String("request_id", requestID),
		zap.String("endpoint", endpoint),
		zap.String("expression", expression),
	)
}

// LogResponse logs an evaluator response
func LogResponse(requestID string, statusCode int, body []byte) {
	Info("Evaluator response",
		zap.String("request_id", requestID),
		zap.Int("status_code", statusCode),
		zap.Int("length", len(body)),
		zap.String("body", truncate(body)),
	)
}

// LogCalculationError logs a failed evaluation
func LogCalculationError(expression, kind, message string) {
	Error("Calculation error",
		zap.String("expression", expression),
		zap.String("kind", kind),
		zap.String("message", message),
	)
}

func truncate(data []byte) string {
	if len(data) <= maxBodyLog {
		return string(data)
	}
	cut := maxBodyLog
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return string(data[:cut]) + "..."
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
