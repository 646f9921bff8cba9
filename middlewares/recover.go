package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/packwoodplates/site/internal"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 8192

type recoverConfig struct {
	stackSize int
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

// WithStackSize caps the captured stack trace. Zero or less disables
// stack capture.
func WithStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.stackSize = size
	}
}

// Recover converts a panic in the rest of the chain into a *PanicError
// carrying the request method and path, and logs it once.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{
					Value:  r,
					Method: c.Request().Method,
					Path:   c.Request().URL.Path,
				}
				if cfg.stackSize > 0 {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
				}

				c.LogError("panic recovered",
					slog.Any("panic", r),
					slog.String("method", pe.Method),
					slog.String("path", pe.Path),
					slog.Int("stack_bytes", len(pe.Stack)),
				)
				err = pe
			}()

			return next(c)
		}
	}
}
