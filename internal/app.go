package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/packwoodplates/site/pkg/health"
	"github.com/packwoodplates/site/pkg/logger"
)

// Server limits. WriteTimeout covers the request timeout plus the outbound
// mail call; the body limit itself is enforced by the contact parser.
const (
	defaultReadTimeout       = 30 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultWriteTimeout      = 60 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// App routes requests through global middleware to registered handlers.
// It is immutable once New returns.
type App struct {
	mux                     chi.Router
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
	healthConfig            *healthConfig
}

type staticRoute struct {
	pattern string
	handler http.Handler
}

type healthConfig struct {
	livenessPath  string
	readinessPath string
	checks        health.Checks
}

// HealthOption configures the health endpoints.
type HealthOption func(*healthConfig)

// WithReadinessCheck adds a named check to /health/ready. Checks run in
// parallel.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}

// New builds an App from opts and mounts every route.
func New(opts ...Option) *App {
	a := &App{
		mux:    chi.NewRouter(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.mount()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Run serves on addr until shutdown. See RunOption for lifecycle hooks.
func (a *App) Run(addr string, opts ...RunOption) error {
	rc := buildRunConfig(opts...)
	log := rc.logger
	if log == nil {
		log = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.mux,
		address:         addr,
		logger:          log,
		shutdownTimeout: rc.shutdownTimeout,
		shutdownHooks:   rc.shutdownHooks,
		baseCtx:         rc.baseCtx,
		onListen:        rc.onListen,
	})
}

// mount wires the chi mux. chi requires global middleware before routes.
func (a *App) mount() {
	for _, mw := range a.middlewares {
		a.mux.Use(a.chiMiddleware(mw))
	}

	if a.notFoundHandler != nil {
		a.mux.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.mux.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, sr := range a.staticRoutes {
		a.mux.Mount(sr.pattern, sr.handler)
	}

	if hc := a.healthConfig; hc != nil {
		a.mux.Get(hc.livenessPath, health.LivenessHandler())
		a.mux.Get(hc.readinessPath, health.ReadinessHandler(hc.checks, health.WithLogger(a.logger)))
	}

	r := &chiRouter{mux: a.mux, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler adapts h to net/http, sending returned errors to the error
// handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	switch {
	case c.Written():
		c.LogWarn("error after response was written", slog.String("error", err.Error()))
	case a.errorHandler == nil:
		http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", slog.String("error", herr.Error()))
		}
	}
}
