// Package log wraps log/slog with component-scoped loggers so every record
// carries the subsystem it came from.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger bound to a named component.
type Logger struct {
	*slog.Logger
}

// Config holds logger construction options.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New creates a component logger. A nil Handler defaults to a text handler
// on stdout at the configured level.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.Level})
	}
	component := config.Component
	if component == "" {
		component = ComponentApp
	}
	return &Logger{
		Logger: slog.New(handler).With(FieldComponent, component),
	}
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
