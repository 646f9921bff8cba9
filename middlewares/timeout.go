package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/packwoodplates/site/internal"
)

// DefaultTimeout applies when Timeout is given a non-positive duration.
// It leaves room for the outbound mail call plus form parsing.
const DefaultTimeout = 45 * time.Second

// Timeout bounds the rest of the chain by d. The deadline is installed on
// the request so c.Context() observes it; when it passes first the
// middleware returns a *TimeoutError while the handler finishes in the
// background. A panic in the handler goroutine becomes a *PanicError.
// The handler writes through a detached writer that is closed on timeout,
// so it cannot add to the response after the middleware has returned.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.SetContext(ctx)

			r := c.Request()
			hc, release := internal.Detach(c)
			done := make(chan error, 1)
			go func() {
				defer func() {
					if v := recover(); v != nil {
						done <- &PanicError{
							Value:  v,
							Stack:  debug.Stack(),
							Method: r.Method,
							Path:   r.URL.Path,
						}
					}
				}()
				done <- next(hc)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				release()
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return ctx.Err()
				}
				c.LogWarn("request deadline exceeded",
					slog.Duration("timeout", d),
					slog.String("path", r.URL.Path),
				)
				return &TimeoutError{Duration: d, Path: r.URL.Path}
			}
		}
	}
}
