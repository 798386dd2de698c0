// Package log provides a structured logging interface for mlhousing preprocessing runs.
//
// This package defines a minimal, slog-compatible logging interface that allows for
// flexible implementation switching while providing pipeline-specific structured
// logging capabilities. The default backend is zerolog, emitting JSON lines to a
// log file so that one-shot batch runs leave a complete audit trail.
//
// Key features:
//   - slog-compatible level values for future-proofing
//   - Pipeline-specific structured attributes (operations, data shapes, run IDs)
//   - Context-aware logging with field chaining
//   - Test-friendly with configurable output destinations
//
// Example usage:
//
//	logger := log.GetLoggerWithName("preprocessing").With(
//	    log.RunIDKey, runID,
//	)
//	logger.Info("Split completed",
//	    log.OperationKey, log.OperationSplit,
//	    log.SamplesKey, 16512,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// This interface provides the core logging methods with structured field support,
// allowing for rich contextual information to be included with log messages.
// It's designed to be implementation-agnostic, enabling easy switching between
// different logging backends while maintaining a consistent API.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Debug logs are typically used for detailed diagnostic information
	// such as per-column medians or intermediate frame shapes.
	//
	// Example:
	//
	//	logger.Debug("Imputation statistics computed",
	//	    "columns", 8,
	//	    "strategy", "median",
	//	)
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	// Info logs are used for general operational information about
	// the pipeline's execution flow.
	//
	// Example:
	//
	//	logger.Info("Output written",
	//	    log.PathKey, "/data/housing_train.csv",
	//	    log.SamplesKey, 16512,
	//	)
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Warning logs indicate potentially problematic situations that
	// don't prevent the pipeline from continuing, such as non-finite
	// values in derived ratio features.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is provided as a field, stack trace information
	// is automatically included when available.
	//
	// Example:
	//
	//	logger.Error("Preprocessing failed",
	//	    "error", err,
	//	    log.OperationKey, log.OperationLoad,
	//	)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	// This method enables creation of contextual loggers that automatically
	// include common fields in all subsequent log messages.
	//
	// Example:
	//
	//	runLogger := logger.With(log.RunIDKey, runID)
	//	runLogger.Info("Starting preprocessing")  // Automatically includes run ID
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// This method can be used to avoid expensive operations when constructing
	// log messages that won't be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
// This type allows for level-based filtering of log messages.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
// This interface allows for dependency injection and testing with different
// logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
