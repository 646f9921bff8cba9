package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/packwoodplates/site/pkg/htmx"
)

// Component is anything that renders HTML; templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context is the per-request view handlers and middleware work with.
// It is itself a context.Context backed by the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	// Context returns the current request context.
	Context() context.Context
	// SetContext replaces the request context, e.g. to add a deadline.
	SetContext(ctx context.Context)

	// Set stores a request-scoped value on the request context; Get reads it.
	Set(key, value any)
	Get(key any) any

	Query(name string) string
	SetHeader(name, value string)
	IsHTMX() bool

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	// Redirect answers HTMX requests with HX-Redirect and others with a
	// Location redirect.
	Redirect(code int, url string) error
	// Render writes component as HTML. HTMX options apply only to HTMX
	// requests.
	Render(code int, component Component, opts ...htmx.RenderOption) error
	// RenderPartial renders partial for HTMX requests and page otherwise.
	RenderPartial(code int, page, partial Component, opts ...htmx.RenderOption) error
	// Error builds an *HTTPError for the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError
	// Written reports whether a status line has gone out.
	Written() bool

	// The Log methods pass the request context so extractors can add
	// request_id and client_request_id.
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)
}

type requestContext struct {
	w   *ResponseWriter
	r   *http.Request
	log *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) *requestContext {
	return &requestContext{
		w:   NewResponseWriter(w, htmx.IsHTMX(r)),
		r:   r,
		log: log,
	}
}

// Detach returns a Context for c's request whose writer is layered over
// c's. After release the detached side can no longer write, while c stays
// usable for the error response.
func Detach(c Context) (detached Context, release func()) {
	rc, ok := c.(*requestContext)
	if !ok {
		return c, func() {}
	}
	d := &requestContext{
		w:   NewResponseWriter(rc.w, false),
		r:   rc.r,
		log: rc.log,
	}
	return d, d.w.Close
}

func (c *requestContext) Request() *http.Request        { return c.r }
func (c *requestContext) Response() http.ResponseWriter { return c.w }
func (c *requestContext) Context() context.Context      { return c.r.Context() }

func (c *requestContext) SetContext(ctx context.Context) {
	c.r = c.r.WithContext(ctx)
}

func (c *requestContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *requestContext) Err() error                  { return c.r.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.r.Context().Value(key) }

func (c *requestContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.r.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.r.Context().Value(key) }

func (c *requestContext) Query(name string) string { return c.r.URL.Query().Get(name) }

func (c *requestContext) SetHeader(name, value string) { c.w.Header().Set(name, value) }

func (c *requestContext) IsHTMX() bool { return htmx.IsHTMX(c.r) }

func (c *requestContext) JSON(code int, v any) error {
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(code)
	return json.NewEncoder(c.w).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := io.WriteString(c.w, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.w.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.Redirect(c.w, c.r, url, code)
	return nil
}

// Render sets HTMX response headers before the status line; the
// ResponseWriter then downgrades error codes to 200 for HTMX so the
// fragment is swapped in.
func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if len(opts) > 0 && c.IsHTMX() {
		htmx.NewConfig(opts...).ApplyHeaders(c.w)
	}
	c.w.WriteHeader(code)
	return component.Render(c.r.Context(), c.w)
}

func (c *requestContext) RenderPartial(code int, page, partial Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, page)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool { return c.w.Written() }

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.log.InfoContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.log.WarnContext(c.r.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.log.ErrorContext(c.r.Context(), msg, attrs...)
}
