package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/packwoodplates/site/internal"
)

type routeHandler struct {
	method string
	path   string
	fn     internal.HandlerFunc
}

func (h routeHandler) Routes(r internal.Router) {
	switch h.method {
	case http.MethodPost:
		r.POST(h.path, h.fn)
	default:
		r.GET(h.path, h.fn)
	}
}

func serve(app *internal.App, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}
