package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/packwoodplates/site/pkg/id"
	"github.com/packwoodplates/site/pkg/logger"
)

// Messages shown when the server gives nothing better.
const (
	RequestFailedMessage = "Request failed. Please try again."
	NetworkErrorMessage  = "Network error. Please try again."
)

// Status is the display state of a submission.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// File is an optional upload.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Fields are the values of the contact form.
type Fields struct {
	Name          string
	Email         string
	Phone         string
	ConsentToText bool
	Details       string
	Attachment    *File
}

// State is the outcome of a submission as the form displays it.
type State struct {
	Status          Status
	Message         string
	RequestID       string
	MailID          string
	ClientRequestID string
}

type apiResponse struct {
	OK        bool   `json:"ok"`
	Message   any    `json:"message"`
	RequestID any    `json:"requestId"`
	MailID    string `json:"mailId"`
}

// Client submits the contact form to the site's API.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
	newID    func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for submissions.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator sets the correlation id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a client posting to endpoint, e.g. "https://packwoodplates.com/api/contact".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
		logger:   logger.NewNope(),
		newID:    id.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send submits f once and returns the resulting state. It never fails:
// every outcome, including transport errors, is a State with
// StatusSuccess or StatusError.
func (c *Client) Send(ctx context.Context, f Fields) State {
	clientRequestID := c.newID()
	log := c.logger.With(slog.String("client_request_id", clientRequestID))

	body, contentType, err := encode(f, clientRequestID)
	if err != nil {
		log.ErrorContext(ctx, "contact form encoding failed", slog.String("error", err.Error()))
		return State{Status: StatusError, Message: RequestFailedMessage, ClientRequestID: clientRequestID}
	}

	log.InfoContext(ctx, "contact form submit",
		slog.Bool("has_attachment", f.Attachment != nil && len(f.Attachment.Content) > 0),
		slog.Int("details_len", len(f.Details)),
		slog.Bool("has_email", f.Email != ""),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		log.ErrorContext(ctx, "contact form request failed", slog.String("error", err.Error()))
		return State{Status: StatusError, Message: RequestFailedMessage, ClientRequestID: clientRequestID}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.ErrorContext(ctx, "contact form network error", slog.String("error", err.Error()))
		return State{Status: StatusError, Message: NetworkErrorMessage, ClientRequestID: clientRequestID}
	}
	defer resp.Body.Close()

	log.InfoContext(ctx, "contact form response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	raw, readErr := io.ReadAll(resp.Body)
	var decoded apiResponse
	decodeErr := readErr
	if decodeErr == nil {
		decodeErr = json.Unmarshal(raw, &decoded)
	}

	state := State{ClientRequestID: clientRequestID}
	if rid, ok := decoded.RequestID.(string); ok && decodeErr == nil {
		state.RequestID = rid
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		state.Status = StatusError
		state.Message = RequestFailedMessage
		if decodeErr == nil {
			if msg, ok := decoded.Message.(string); ok && strings.TrimSpace(msg) != "" {
				state.Message = msg
			}
		}
		log.ErrorContext(ctx, "contact form request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", state.RequestID),
		)
		return state
	}

	if decodeErr != nil {
		log.ErrorContext(ctx, "contact form network error", slog.String("error", decodeErr.Error()))
		return State{Status: StatusError, Message: NetworkErrorMessage, ClientRequestID: clientRequestID}
	}

	if !decoded.OK {
		state.Status = StatusError
		state.Message, _ = decoded.Message.(string)
		if strings.TrimSpace(state.Message) == "" {
			state.Message = RequestFailedMessage
		}
		log.ErrorContext(ctx, "contact form send failed", slog.String("request_id", state.RequestID))
		return state
	}

	state.Status = StatusSuccess
	state.MailID = decoded.MailID
	return state
}

func encode(f Fields, clientRequestID string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	values := [][2]string{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"details", f.Details},
		{"_clientRequestId", clientRequestID},
	}
	if f.ConsentToText {
		values = append(values, [2]string{"consentText", "yes"})
	}
	for _, kv := range values {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}

	if f.Attachment != nil && len(f.Attachment.Content) > 0 {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="attachment"; filename="`+escapeQuotes(f.Attachment.Name)+`"`)
		ct := f.Attachment.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Attachment.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "", "\n", "")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
