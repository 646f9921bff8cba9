package internal

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger          *slog.Logger
	baseCtx         context.Context
	onListen        func(net.Addr)
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

func buildRunConfig(opts ...RunOption) *runConfig {
	rc := &runConfig{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Logger sets the logger for lifecycle messages; the App logger is the
// default.
func Logger(l *slog.Logger) RunOption {
	return func(rc *runConfig) {
		if l != nil {
			rc.logger = l
		}
	}
}

// WithContext sets a base context whose cancellation stops the server the
// same way SIGTERM does.
func WithContext(ctx context.Context) RunOption {
	return func(rc *runConfig) {
		if ctx != nil {
			rc.baseCtx = ctx
		}
	}
}

// OnListen is called with the bound address, which makes ":0" usable in
// tests.
func OnListen(fn func(net.Addr)) RunOption {
	return func(rc *runConfig) { rc.onListen = fn }
}

// ShutdownTimeout bounds draining plus all shutdown hooks.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(rc *runConfig) {
		if d > 0 {
			rc.shutdownTimeout = d
		}
	}
}

// ShutdownHook runs fn after the server has stopped accepting requests.
// Hooks run in registration order and a failing hook does not stop the
// rest.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(rc *runConfig) {
		if fn != nil {
			rc.shutdownHooks = append(rc.shutdownHooks, fn)
		}
	}
}
