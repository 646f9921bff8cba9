package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/internal/contact"
	"github.com/packwoodplates/site/internal/prefill"
	"github.com/packwoodplates/site/middlewares"
	"github.com/packwoodplates/site/pkg/htmx"
	"github.com/packwoodplates/site/pkg/id"
	"github.com/packwoodplates/site/views"
)

// htmx events fired after a submission.
const (
	EventSent   = "contact:sent"
	EventFailed = "contact:failed"
)

// Response is the JSON body of the contact API.
type Response struct {
	OK        bool           `json:"ok"`
	Message   string         `json:"message,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	MailID    string         `json:"mailId,omitempty"`
	Debug     *contact.Debug `json:"debug,omitempty"`
}

// ContactHandler serves the contact submission API.
type ContactHandler struct {
	service *contact.Service
}

// NewContactHandler creates a contact handler sending through service.
func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Routes implements internal.Handler.
func (h *ContactHandler) Routes(r internal.Router) {
	r.POST("/api/contact", h.submit)
}

// submit validates one submission and sends exactly one email.
// htmx requests get the re-rendered form; everything else gets JSON.
func (h *ContactHandler) submit(c internal.Context) error {
	requestID := middlewares.GetRequestID(c)
	if requestID == "" {
		requestID = id.New()
		c.SetHeader(middlewares.RequestIDHeader, requestID)
	}

	debug := h.service.Debug()
	c.LogInfo("contact submission started", slog.Bool("htmx", c.IsHTMX()))
	c.LogInfo("contact config",
		slog.String("from", debug.From),
		slog.String("to", debug.To),
		slog.Bool("has_credential", debug.HasCredential),
	)

	if err := h.service.Ready(); err != nil {
		c.LogError("contact submission rejected", slog.String("reason", err.Error()))
		if c.IsHTMX() {
			// The error fragment echoes the typed values from PostForm.
			_, _ = contact.Parse(c.Response(), c.Request())
		}
		return h.respond(c, requestID, contact.Receipt{}, err)
	}

	sub, err := contact.Parse(c.Response(), c.Request())
	c.SetContext(contact.WithClientRequestID(c.Context(), formValue(c.Request(), contact.FieldClientRequestID)))
	if err != nil {
		c.LogWarn("contact submission rejected", slog.String("reason", err.Error()))
		return h.respond(c, requestID, contact.Receipt{}, err)
	}

	attachmentSize := int64(0)
	if sub.Attachment != nil {
		attachmentSize = sub.Attachment.Size
	}
	c.LogInfo("contact submission parsed",
		slog.Int("name_len", len(sub.Name)),
		slog.Int("email_len", len(sub.Email)),
		slog.Bool("has_phone", sub.Phone != ""),
		slog.Bool("consent_text", sub.ConsentToText),
		slog.Int("details_len", len(sub.Details)),
		slog.Bool("has_attachment", sub.HasAttachment()),
		slog.Int64("attachment_size", attachmentSize),
	)

	receipt, err := h.service.Submit(c.Context(), sub, requestID)
	return h.respond(c, requestID, receipt, err)
}

func (h *ContactHandler) respond(c internal.Context, requestID string, receipt contact.Receipt, err error) error {
	code := contact.StatusCode(err)

	if c.IsHTMX() {
		return h.renderForm(c, code, requestID, err)
	}

	resp := Response{
		OK:        err == nil,
		Message:   contact.UserMessage(err),
		RequestID: requestID,
		MailID:    receipt.MailID,
	}
	var de *contact.DeliveryError
	if errors.As(err, &de) {
		debug := h.service.Debug()
		resp.Debug = &debug
	}
	return c.JSON(code, resp)
}

// renderForm answers htmx with the form fragment. Success resets every
// field; errors keep what was typed and reapply prefill to empty details.
func (h *ContactHandler) renderForm(c internal.Context, code int, requestID string, err error) error {
	r := c.Request()

	if err == nil {
		state := views.NewForm(id.New(), "")
		state.Status = views.StatusSuccess
		state.RequestID = requestID
		return c.Render(code, views.ContactForm(state), htmx.WithTrigger(EventSent))
	}

	state := views.FormState{
		Status:          views.StatusError,
		Message:         contact.UserMessage(err),
		RequestID:       requestID,
		ClientRequestID: id.New(),
		Values: views.FormValues{
			Name:    formValue(r, contact.FieldName),
			Email:   formValue(r, contact.FieldEmail),
			Phone:   formValue(r, contact.FieldPhone),
			Consent: formValue(r, contact.FieldConsentText) == "yes",
			Details: prefill.Apply(formValue(r, contact.FieldDetails), prefill.Derive(htmx.CurrentQuery(r))),
		},
	}
	return c.Render(code, views.ContactForm(state), htmx.WithTrigger(EventFailed))
}

// formValue reads an already parsed form value. It never triggers parsing.
func formValue(r *http.Request, key string) string {
	if r.PostForm == nil {
		return ""
	}
	return r.PostForm.Get(key)
}
