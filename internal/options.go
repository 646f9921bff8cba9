package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/packwoodplates/site/pkg/health"
)

// staticMaxAge is the Cache-Control max-age of embedded assets.
const staticMaxAge = "public, max-age=3600"

// Option configures an App.
type Option func(*App)

// WithMiddleware appends global middleware; the first one given is the
// outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers route handlers in order.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStatic serves fsys under prefix, e.g. "/static/".
// Directory paths answer 404 instead of a listing.
func WithStatic(prefix string, fsys fs.FS) Option {
	return func(a *App) {
		files := http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServerFS(fsys))
		a.staticRoutes = append(a.staticRoutes, staticRoute{
			pattern: prefix,
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/") {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Cache-Control", staticMaxAge)
				w.Header().Set("X-Content-Type-Options", "nosniff")
				files.ServeHTTP(w, r)
			}),
		})
	}
}

// WithErrorHandler sets the handler for errors returned by handlers and
// middleware.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

// WithNotFoundHandler sets the handler for unknown routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFoundHandler = h }
}

// WithMethodNotAllowedHandler sets the handler for known routes hit with
// another method.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowedHandler = h }
}

// WithHealthChecks mounts /health/live and /health/ready. Readiness runs
// every check added with WithReadinessCheck.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
