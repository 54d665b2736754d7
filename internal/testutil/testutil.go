// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/trly/dockr/internal/config"
	"github.com/trly/dockr/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
func NewTestLogger(t testing.TB) log.Logger {
	handler := &testHandler{t: t}
	return log.NewSlogAdapter(slog.New(handler))
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithListenAddr sets the HTTP listen address.
func WithListenAddr(addr string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.ListenAddr = addr
	}
}

// WithVerbose sets verbose logging.
func WithVerbose(verbose bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Verbose = verbose
	}
}

// WithGeneratorName sets the name written into generated headers.
func WithGeneratorName(name string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.GeneratorName = name
	}
}

// NewMockConfig creates a config provider for testing with optional customizations.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	t.Helper()

	cfg := &config.Settings{
		ListenAddr:      "127.0.0.1:0",
		ShutdownTimeout: config.DefaultShutdownTimeout,
		DefaultPreset:   config.DefaultPreset,
		GeneratorName:   config.DefaultGeneratorName,
		OutputFormat:    config.DefaultOutputFormat,
		Verbose:         true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	provider := config.NewDefaultConfigProvider()
	provider.SetConfig(cfg)
	return provider
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t testing.TB
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	h.t.Logf("[%s] %s", record.Level.String(), record.Message)
	return nil
}

func (h *testHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}
