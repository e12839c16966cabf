// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// ConfigureLogger replaces GlobalLogger with one writing to w at the given
// level ("debug", "info", "warn", "error") and format ("json" or "text").
func ConfigureLogger(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	GlobalLogger = &Logger{Logger: slog.New(handler)}
	return GlobalLogger
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// Context keys for logging
const (
	CorrelationID LogContextKey = "correlation_id"
)

// LoggingConfig defines which types of automated logging are enabled.
type LoggingConfig struct {
	EnableCorrelationID bool
	EnableStoreLogging  bool
}

var (
	// Config holds the current logging configuration.
	Config = LoggingConfig{
		EnableCorrelationID: true,
		EnableStoreLogging:  true,
	}
)

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// EnsureCorrelationID returns ctx unchanged when it already carries a
// correlation ID, and a child context with a fresh one otherwise.
func EnsureCorrelationID(ctx context.Context) context.Context {
	if id, ok := ctx.Value(CorrelationID).(string); ok && id != "" {
		return ctx
	}
	return WithCorrelationID(ctx, GenerateCorrelationID())
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if !Config.EnableCorrelationID {
		return ""
	}
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// StoreLogger provides structured logging for key-value storage operations.
type StoreLogger struct {
	backend string
}

// NewStoreLogger creates a new StoreLogger for the given backend.
func NewStoreLogger(backend string) *StoreLogger {
	return &StoreLogger{backend: backend}
}

func (l *StoreLogger) attrs(ctx context.Context, operation, key string) []any {
	return []any{
		slog.String("backend", l.backend),
		slog.String("operation", operation),
		slog.String("key", key),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
}

// LogRead logs a storage read.
func (l *StoreLogger) LogRead(ctx context.Context, key string, found bool) {
	if !Config.EnableStoreLogging {
		return
	}
	GlobalLogger.DebugContext(ctx, "storage read", append(l.attrs(ctx, "read", key), slog.Bool("found", found))...)
}

// LogWrite logs a storage write.
func (l *StoreLogger) LogWrite(ctx context.Context, key string, size int) {
	if !Config.EnableStoreLogging {
		return
	}
	GlobalLogger.DebugContext(ctx, "storage write", append(l.attrs(ctx, "write", key), slog.Int("bytes", size))...)
}

// LogCorruption logs a document that could not be decoded and was replaced by the fallback.
func (l *StoreLogger) LogCorruption(ctx context.Context, key string, err error) {
	if !Config.EnableStoreLogging {
		return
	}
	GlobalLogger.WarnContext(ctx, "storage document unreadable, using fallback",
		append(l.attrs(ctx, "read", key), slog.String("error", err.Error()))...)
}

// LogError logs a storage error.
func (l *StoreLogger) LogError(ctx context.Context, err error, operation, key string) {
	if !Config.EnableStoreLogging {
		return
	}
	GlobalLogger.ErrorContext(ctx, "storage error",
		append(l.attrs(ctx, operation, key), slog.String("error", err.Error()))...)
}

// StructuredLogger provides a general-purpose structured logger.
type StructuredLogger struct{}

// NewStructuredLogger creates a new StructuredLogger instance.
func NewStructuredLogger() *StructuredLogger {
	return &StructuredLogger{}
}

// LogServiceCall logs a service method call.
func (l *StructuredLogger) LogServiceCall(ctx context.Context, service, method string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("service", service),
		slog.String("method", method),
		slog.String("type", "service_call"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	GlobalLogger.InfoContext(ctx, "service call", attrs...)
}

// LogServiceError logs a failed service call.
func (l *StructuredLogger) LogServiceError(ctx context.Context, service, method string, err error) {
	GlobalLogger.WarnContext(ctx, "service call failed",
		slog.String("service", service),
		slog.String("method", method),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}
