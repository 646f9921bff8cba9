package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/middlewares"
	"github.com/packwoodplates/site/views"
)

// ErrorHandler renders errors that reach the app boundary. API paths get
// the contact JSON shape, htmx requests an error banner and pages a full
// error page.
func ErrorHandler(site views.Site) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		code, message := classify(err)
		requestID := middlewares.GetRequestID(c)

		if code >= http.StatusInternalServerError {
			attrs := []any{slog.Int("status", code), slog.String("error", err.Error())}
			if pe, ok := middlewares.AsPanicError(err); ok && len(pe.Stack) > 0 {
				attrs = append(attrs, slog.String("stack", string(pe.Stack)))
			}
			c.LogError("request failed", attrs...)
		}

		switch {
		case isAPI(c.Request()):
			return c.JSON(code, Response{OK: false, Message: message, RequestID: requestID})
		case c.IsHTMX():
			return c.Render(code, views.ErrorFragment(message, requestID))
		default:
			return c.Render(code, views.ErrorPage(site, code, message))
		}
	}
}

// NotFound renders 404 for unknown routes.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound("Page not found.")
}

// MethodNotAllowed renders 405 for known routes with the wrong method.
func MethodNotAllowed(c internal.Context) error {
	return internal.ErrMethodNotAllowed("Method not allowed.")
}

// classify maps err to a status and a message safe to show. Panics,
// timeouts and *internal.HTTPError all implement middlewares.PublicError.
func classify(err error) (int, string) {
	if pe, ok := middlewares.AsPublicError(err); ok {
		return pe.StatusCode(), pe.PublicMessage()
	}
	return http.StatusInternalServerError, "Internal server error."
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
