package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("email must have a text or HTML body")

	// ErrHeaderInjection indicates a header field still contains CR or LF.
	ErrHeaderInjection = errors.New("header value contains line break")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrNoMailID indicates the provider accepted the call but returned no message id.
	ErrNoMailID = errors.New("provider returned no message id")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)

// SendError wraps a Sender failure. It matches both ErrSendFailed and the
// underlying provider error with errors.Is.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return ErrSendFailed.Error() + ": " + e.Err.Error()
}

func (e *SendError) Unwrap() []error {
	return []error{ErrSendFailed, e.Err}
}
