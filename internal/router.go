package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what a Handler sees when it declares its routes.
// Route middleware passed to GET or POST runs inside the global chain,
// first argument outermost.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	// Group declares routes under a shared path prefix.
	Group(prefix string, fn func(r Router))
}

type chiRouter struct {
	mux chi.Router
	app *App
}

func (r *chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Method(http.MethodGet, path, r.endpoint(h, mw))
}

func (r *chiRouter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Method(http.MethodPost, path, r.endpoint(h, mw))
}

func (r *chiRouter) Group(prefix string, fn func(Router)) {
	r.mux.Route(prefix, func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

func (r *chiRouter) endpoint(h HandlerFunc, mw []Middleware) http.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return r.app.wrapHandler(h)
}

// chiMiddleware lets a Middleware written against Context sit in chi's
// http.Handler chain. Each layer builds its own Context, so values set with
// c.Set travel on the request.
func (a *App) chiMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.wrapHandler(mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}
