package interfaces

import "context"

// Logger is the leveled logging contract used across the postkit runtime.
// It mirrors the surface exposed by github.com/goliatone/go-logger so host
// applications can plug that package in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Implementations may hand back the
// same instance for every name or scope children per component.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields. Providers supporting it return a new logger that emits the fields
// with every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
