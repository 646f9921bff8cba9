package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	texttemplate "text/template"
)

// Mailer provides high-level email sending with template rendering.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	To       string // Single recipient
	Template string // Template pair name (e.g., "inquiry")
	Data     any    // Template data

	// Optional overrides
	Subject     string            // Override template subject
	Layout      string            // Override default layout
	From        string            // Sender, provider default when empty
	ReplyTo     string
	Headers     map[string]string // Custom headers, e.g. X-Request-ID
	Tags        Tags
	Attachments []Attachment
}

// Send renders a template and sends exactly one email.
// Subject resolution: params.Subject > template metadata > config fallback.
// The subject is itself executed as a text template against Data.
func (m *Mailer) Send(ctx context.Context, params SendParams) (Receipt, error) {
	if params.To == "" {
		return Receipt{}, ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return Receipt{}, errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject = result.Subject()
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return Receipt{}, errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:          []string{params.To},
		Subject:     subject,
		HTML:        result.HTML,
		Text:        result.Text,
		From:        params.From,
		ReplyTo:     params.ReplyTo,
		Headers:     params.Headers,
		Tags:        params.Tags,
		Attachments: params.Attachments,
	})
}

// SendRaw sends a pre-built email without template rendering.
// Emails with line breaks in any header field are refused before the
// provider is called.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) (Receipt, error) {
	if len(email.To) == 0 {
		return Receipt{}, ErrNoRecipient
	}
	if email.Subject == "" {
		return Receipt{}, ErrNoSubject
	}
	if email.HTML == "" && email.Text == "" {
		return Receipt{}, ErrNoContent
	}
	if err := CheckHeaders(email); err != nil {
		return Receipt{}, err
	}

	receipt, err := m.sender.Send(ctx, email)
	if err != nil {
		return Receipt{}, &SendError{Err: err}
	}
	if receipt.ID == "" {
		return Receipt{}, ErrNoMailID
	}

	return receipt, nil
}

// CheckHeaders reports ErrHeaderInjection when any value that ends up in
// a message header contains CR or LF.
func CheckHeaders(email *Email) error {
	check := func(name string, values ...string) error {
		for _, v := range values {
			if strings.ContainsAny(v, "\r\n") {
				return fmt.Errorf("%w: %s", ErrHeaderInjection, name)
			}
		}
		return nil
	}

	errs := []error{
		check("From", email.From),
		check("Reply-To", email.ReplyTo),
		check("Subject", email.Subject),
		check("To", email.To...),
		check("Cc", email.CC...),
		check("Bcc", email.BCC...),
	}
	for k, v := range email.Headers {
		errs = append(errs, check("custom header", k, v))
	}
	for _, a := range email.Attachments {
		errs = append(errs, check("attachment", a.Filename, a.ContentType))
	}

	return errors.Join(errs...)
}

func executeSubject(subject string, data any) (string, error) {
	if !strings.Contains(subject, "{{") {
		return subject, nil
	}

	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
