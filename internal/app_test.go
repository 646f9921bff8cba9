package internal_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/pkg/htmx"
)

type ctxKey struct{}

type testHandler struct{}

func (testHandler) Routes(r internal.Router) {
	r.GET("/hello", func(c internal.Context) error {
		return c.String(http.StatusOK, "hello "+c.Query("name"))
	})
	r.GET("/value", func(c internal.Context) error {
		v, _ := c.Get(ctxKey{}).(string)
		return c.JSON(http.StatusOK, map[string]string{"value": v})
	})
	r.POST("/fail", func(c internal.Context) error {
		return internal.ErrNotFound("nothing here")
	})
	r.GET("/render", func(c internal.Context) error {
		return c.Render(http.StatusBadRequest, component("<p>bad</p>"), htmx.WithTrigger("failed"))
	})
	r.Group("/api", func(r internal.Router) {
		r.GET("/scoped", func(c internal.Context) error {
			return c.NoContent(http.StatusNoContent)
		}, func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetHeader("X-Scoped", "yes")
				return next(c)
			}
		})
	})
}

type component string

func (s component) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

func newTestApp(opts ...internal.Option) *internal.App {
	base := []internal.Option{
		internal.WithHandlers(testHandler{}),
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Set(ctxKey{}, "from middleware")
				return next(c)
			}
		}),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			code := http.StatusInternalServerError
			if httpErr := internal.AsHTTPError(err); httpErr != nil {
				code = httpErr.Code
			}
			return c.JSON(code, map[string]string{"error": err.Error()})
		}),
	}
	return internal.New(append(base, opts...)...)
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/hello?name=jamie", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello jamie", rec.Body.String())

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/value", nil))
	assert.JSONEq(t, `{"value":"from middleware"}`, rec.Body.String())

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/api/scoped", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Scoped"))
}

func TestApp_ErrorHandler(t *testing.T) {
	t.Parallel()

	rec := serve(newTestApp(), httptest.NewRequest(http.MethodPost, "/fail", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"nothing here"}`, rec.Body.String())
}

func TestApp_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(testHandler{}))
	rec := serve(app, httptest.NewRequest(http.MethodPost, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestApp_RenderHTMX(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))

	req := httptest.NewRequest(http.MethodGet, "/render", nil)
	req.Header.Set("HX-Request", "true")
	rec = serve(app, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "failed", rec.Header().Get("HX-Trigger"))
	assert.Equal(t, "<p>bad</p>", rec.Body.String())
}

func TestApp_NotFoundHandler(t *testing.T) {
	t.Parallel()

	app := newTestApp(internal.WithNotFoundHandler(func(c internal.Context) error {
		return c.String(http.StatusNotFound, "no such page")
	}))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no such page", rec.Body.String())
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := newTestApp(internal.WithHealthChecks(
		internal.WithReadinessCheck("mailer", func(context.Context) error { return errors.New("no key") }),
	))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{"site.css": &fstest.MapFile{Data: []byte("body{}")}}
	app := newTestApp(internal.WithStatic("/static/", assets))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/static/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_Run_GracefulShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	hookCalled := make(chan struct{})

	errCh := make(chan error, 1)
	go func() {
		errCh <- newTestApp().Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.OnListen(func(a net.Addr) { addrCh <- a }),
			internal.ShutdownHook(func(context.Context) error {
				close(hookCalled)
				return nil
			}),
		)
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr.String() + "/hello?name=run")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "hello run", string(body))

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	<-hookCalled
}
