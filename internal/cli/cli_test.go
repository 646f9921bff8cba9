package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	site "github.com/packwoodplates/site"
	"github.com/packwoodplates/site/internal/cli"
	"github.com/packwoodplates/site/internal/config"
	"github.com/packwoodplates/site/pkg/logger"
	"github.com/packwoodplates/site/pkg/mailer"
	"github.com/packwoodplates/site/pkg/mailer/resend"
)

type captureSender struct {
	mu     sync.Mutex
	emails []*mailer.Email
}

func (s *captureSender) Send(_ context.Context, email *mailer.Email) (mailer.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	return mailer.Receipt{ID: "mail-42"}, nil
}

func (s *captureSender) sent() []*mailer.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mailer.Email(nil), s.emails...)
}

func startSite(t *testing.T, apiKey string) (*httptest.Server, *captureSender) {
	t.Helper()
	sender := &captureSender{}
	s, err := site.New(config.Config{
		Resend:         resend.Config{APIKey: apiKey, SenderEmail: "orders@packwoodplates.com"},
		Mailer:         mailer.Config{FallbackSubject: "Website inquiry", DefaultLayout: "base.html"},
		ContactTo:      "owner@packwoodplates.com",
		SiteName:       "Packwood Plates",
		SiteURL:        "https://packwoodplates.com",
		SendTimeout:    time.Second,
		RequestTimeout: 5 * time.Second,
	}, site.WithLogger(logger.NewNope()), site.WithSender(sender))
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return srv, sender
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand("v1.2.3")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSubmit(t *testing.T) {
	t.Parallel()
	srv, sender := startSite(t, "re_test")

	dir := t.TempDir()
	photo := filepath.Join(dir, "plate.pdf")
	require.NoError(t, os.WriteFile(photo, []byte("%PDF-1.4"), 0o600))

	out, err := execute(t, "submit",
		"--endpoint", srv.URL+"/api/contact",
		"--name", "Jamie Carter",
		"--email", "jamie@example.com",
		"--phone", "555-0100",
		"--details", "Want a turtle plate",
		"--file", photo,
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "mail id: mail-42")

	emails := sender.sent()
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].Text, "Want a turtle plate")
	assert.Contains(t, emails[0].Text, "OK to text: Yes")
	require.Len(t, emails[0].Attachments, 1)
	assert.Equal(t, "plate.pdf", emails[0].Attachments[0].Filename)
}

func TestSubmit_ReferralPrefill(t *testing.T) {
	t.Parallel()
	srv, sender := startSite(t, "re_test")

	_, err := execute(t, "submit",
		"--endpoint", srv.URL+"/api/contact",
		"--name", "Jamie Carter",
		"--email", "jamie@example.com",
		"--phone", "555-0100",
		"--text-ok=false",
		"--referral", "source=sports-teams&team=Bears",
	)
	require.NoError(t, err)

	emails := sender.sent()
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].Text, "I would like to request a Bears sports team plate.")
	assert.Contains(t, emails[0].Text, "OK to text: No")
}

func TestSubmit_ReferralKeepsTypedDetails(t *testing.T) {
	t.Parallel()
	srv, sender := startSite(t, "re_test")

	out, err := execute(t, "submit",
		"--endpoint", srv.URL+"/api/contact",
		"--name", "Jamie Carter",
		"--email", "jamie@example.com",
		"--details", "Walnut, 12 inches",
		"--referral", "source=nameplates&product=Desk+Plate",
	)
	require.NoError(t, err, out)

	emails := sender.sent()
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].Text, "Walnut, 12 inches")
	assert.NotContains(t, emails[0].Text, "I would like to order the Desk Plate.")
}

func TestSubmit_NoPhone(t *testing.T) {
	t.Parallel()
	srv, sender := startSite(t, "re_test")

	_, err := execute(t, "submit",
		"--endpoint", srv.URL+"/api/contact",
		"--name", "Jamie Carter",
		"--email", "jamie@example.com",
		"--details", "Want a turtle plate",
	)
	require.NoError(t, err)

	emails := sender.sent()
	require.Len(t, emails, 1)
	assert.Contains(t, emails[0].Text, "Phone: (not provided)")
	assert.Contains(t, emails[0].Text, "OK to text: (n/a)")
}

func TestSubmit_ServerError(t *testing.T) {
	t.Parallel()
	srv, sender := startSite(t, "")

	out, err := execute(t, "submit",
		"--endpoint", srv.URL+"/api/contact",
		"--name", "Jamie Carter",
		"--email", "jamie@example.com",
		"--details", "Want a turtle plate",
	)
	require.Error(t, err)
	assert.Contains(t, out, "error: Missing RESEND_API_KEY on the server.")
	assert.Contains(t, out, "request id: ")
	assert.Empty(t, sender.sent())
}

func TestSubmit_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "submit", "--file", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read attachment")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "site v1.2.3")

	out, err = execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "v1.2.3", info["version"])

	_, err = execute(t, "version", "--format", "yaml")
	assert.Error(t, err)
}

func TestServe_InvalidConfig(t *testing.T) {
	t.Setenv("SEND_TIMEOUT", "not-a-duration")

	_, err := execute(t, "serve", "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
