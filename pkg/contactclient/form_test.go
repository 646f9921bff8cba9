package contactclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwoodplates/site/pkg/contactclient"
)

func TestForm_SuccessResetsFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true,"requestId":"r"}`)
	}))
	defer srv.Close()

	form := contactclient.NewForm(contactclient.New(srv.URL))
	assert.Equal(t, contactclient.StatusIdle, form.State().Status)
	assert.True(t, form.Fields().ConsentToText)

	require.NoError(t, form.Navigate(url.Values{"source": {"nameplates"}}))
	require.NoError(t, form.Edit(func(f *contactclient.Fields) {
		f.Name = "Jamie Carter"
		f.Email = "jamie@example.com"
		f.ConsentToText = false
	}))

	state, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactclient.StatusSuccess, state.Status)
	assert.Equal(t, contactclient.Fields{ConsentToText: true}, form.Fields())
}

func TestForm_ErrorKeepsFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"message":"Please complete name, email, and details."}`)
	}))
	defer srv.Close()

	form := contactclient.NewForm(contactclient.New(srv.URL))
	require.NoError(t, form.Edit(func(f *contactclient.Fields) { f.Name = "Jamie" }))

	state, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactclient.StatusError, state.Status)
	assert.Equal(t, "Please complete name, email, and details.", state.Message)
	assert.Equal(t, "Jamie", form.Fields().Name)

	// A new attempt is allowed after an error.
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
}

func TestForm_BusyWhileSending(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	form := contactclient.NewForm(contactclient.New(srv.URL))

	done := make(chan contactclient.State, 1)
	go func() {
		state, _ := form.Submit(context.Background())
		done <- state
	}()

	require.Eventually(t, func() bool {
		return form.State().Status == contactclient.StatusSending
	}, time.Second, 5*time.Millisecond)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, contactclient.ErrBusy)
	assert.ErrorIs(t, form.Edit(func(f *contactclient.Fields) { f.Name = "x" }), contactclient.ErrBusy)
	assert.ErrorIs(t, form.Navigate(url.Values{"source": {"nameplates"}}), contactclient.ErrBusy)

	close(release)
	assert.Equal(t, contactclient.StatusSuccess, (<-done).Status)
}

func TestForm_NavigateNeverOverwritesTypedText(t *testing.T) {
	t.Parallel()

	form := contactclient.NewForm(contactclient.New("http://127.0.0.1:0"))

	require.NoError(t, form.Navigate(url.Values{
		"source":  {"nameplates"},
		"product": {"Classic Name Plate"},
		"price":   {"$39"},
	}))
	assert.True(t, strings.HasPrefix(form.Fields().Details, "I would like to order the Classic Name Plate ($39)."))

	require.NoError(t, form.Edit(func(f *contactclient.Fields) { f.Details = "my own words" }))
	require.NoError(t, form.Navigate(url.Values{"source": {"sports-teams"}}))
	assert.Equal(t, "my own words", form.Fields().Details)
}
