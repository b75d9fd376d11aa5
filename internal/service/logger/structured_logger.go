package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/savethegov/govbudget/internal/ports"
)

// structuredLogger implements ports.Logger with logrus
type structuredLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

// Config configures the structured logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
}

// NewStructuredLogger creates a logrus-backed logger
func NewStructuredLogger(config Config) ports.Logger {
	logrusLogger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrusLogger.SetLevel(level)

	if config.Format == "json" {
		logrusLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logrusLogger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}

	logrusLogger.SetOutput(os.Stdout)

	return &structuredLogger{
		logger: logrusLogger,
		fields: map[string]interface{}{
			"service": config.ServiceName,
		},
	}
}

// Info logging for informational messages
func (l *structuredLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(nil, fields).Info(message)
}

// Error logging for error messages
func (l *structuredLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.entry(err, fields).Error(message)
}

// Warn logging for warning messages
func (l *structuredLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(nil, fields).Warn(message)
}

// Debug logging for debug messages
func (l *structuredLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(nil, fields).Debug(message)
}

// WithFields creates a new logger with additional base fields
func (l *structuredLogger) WithFields(fields map[string]interface{}) ports.Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &structuredLogger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *structuredLogger) entry(err error, fields map[string]interface{}) *logrus.Entry {
	merged := logrus.Fields{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	return l.logger.WithFields(merged)
}

// noopLogger discards everything; useful for commands and tests
type noopLogger struct{}

// NewNoop returns a logger that drops all entries
func NewNoop() ports.Logger {
	return noopLogger{}
}

func (noopLogger) Info(ctx context.Context, message string, fields map[string]interface{})  {}
func (noopLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
}
func (noopLogger) Warn(ctx context.Context, message string, fields map[string]interface{})  {}
func (noopLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {}
func (noopLogger) WithFields(fields map[string]interface{}) ports.Logger                    { return noopLogger{} }
