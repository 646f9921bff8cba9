package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/packwoodplates/site/handlers"
	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/internal/contact"
	"github.com/packwoodplates/site/middlewares"
	"github.com/packwoodplates/site/pkg/mailer"
	"github.com/packwoodplates/site/views"
)

type fakeSender struct {
	mu     sync.Mutex
	emails []*mailer.Email
	id     string
	err    error
}

func (f *fakeSender) Send(_ context.Context, email *mailer.Email) (mailer.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, email)
	if f.err != nil {
		return mailer.Receipt{}, f.err
	}
	return mailer.Receipt{ID: f.id}, nil
}

func (f *fakeSender) sent() []*mailer.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*mailer.Email(nil), f.emails...)
}

type appOptions struct {
	noCredential bool
	extra        []internal.Handler
}

func newTestApp(t *testing.T, sender mailer.Sender, opts appOptions) *internal.App {
	t.Helper()

	m := mailer.New(sender, contact.NewRenderer(), mailer.Config{
		DefaultLayout:   contact.InquiryLayout,
		FallbackSubject: "Website inquiry",
	})
	svc := contact.NewService(m, contact.Config{
		From:          "orders@packwoodplates.com",
		To:            "owner@packwoodplates.com",
		SiteName:      "Packwood Plates",
		SiteHost:      "packwoodplates.com",
		HasCredential: !opts.noCredential,
		SendTimeout:   time.Second,
	})
	site := views.Site{Name: "Packwood Plates", URL: "https://packwoodplates.com"}

	hs := []internal.Handler{handlers.NewPageHandler(site), handlers.NewContactHandler(svc)}
	hs = append(hs, opts.extra...)

	return internal.New(
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(5*time.Second),
		),
		internal.WithErrorHandler(handlers.ErrorHandler(site)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHandlers(hs...),
	)
}

type upload struct {
	filename    string
	contentType string
	content     []byte
}

func contactRequest(t *testing.T, fields map[string]string, file *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="attachment"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/contact", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jamieFields() map[string]string {
	return map[string]string{
		"name":             "Jamie Carter",
		"email":            "jamie@example.com",
		"phone":            "",
		"details":          "Want a turtle plate",
		"_clientRequestId": "client-abc",
	}
}

func do(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlers.Response {
	t.Helper()
	var resp handlers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
