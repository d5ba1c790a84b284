package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     slog.Level
	}{
		{"DEBUG level", "DEBUG", slog.LevelDebug},
		{"debug level lowercase", "debug", slog.LevelDebug},
		{"INFO level", "INFO", slog.LevelInfo},
		{"WARN level", "WARN", slog.LevelWarn},
		{"WARNING alias", "WARNING", slog.LevelWarn},
		{"ERROR level", "ERROR", slog.LevelError},
		{"whitespace is trimmed", "  error  ", slog.LevelError},
		{"invalid value defaults to info", "TRACE", slog.LevelInfo},
		{"unset defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.envValue)
			if got := GetLogLevel(); got != tt.want {
				t.Errorf("GetLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")

	logger := NewLogger("reconcile-secrets")
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("logger should honor LOG_LEVEL=DEBUG")
	}
}
