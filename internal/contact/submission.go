package contact

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Size limits.
const (
	// MaxAttachmentSize is the largest accepted attachment (5 MiB).
	MaxAttachmentSize = 5 * 1024 * 1024
	// MaxBodySize caps the whole request body.
	MaxBodySize = 10 * 1024 * 1024
)

// Attachment defaults.
const (
	DefaultFilename    = "attachment"
	DefaultContentType = "application/octet-stream"
)

// Attachment is an uploaded file.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// Fields are the raw, untrimmed form values.
type Fields struct {
	Name            string
	Email           string
	Phone           string
	ConsentText     string // "yes" when the box is ticked
	Details         string
	ClientRequestID string
	Attachment      *Attachment
}

// Submission is a validated contact request. It is never mutated after
// NewSubmission returns it.
type Submission struct {
	Name            string
	Email           string
	Phone           string
	ConsentToText   bool
	Details         string
	ClientRequestID string
	Attachment      *Attachment
}

// HasAttachment reports whether a non-empty file was uploaded.
func (s Submission) HasAttachment() bool {
	return s.Attachment != nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func emailValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// NewSubmission trims and validates f. Checks run in order: required
// fields, email format, attachment size. The first failure is returned as
// an *InputError.
func NewSubmission(f Fields) (Submission, error) {
	sub := Submission{
		Name:            strings.TrimSpace(f.Name),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		ConsentToText:   strings.TrimSpace(f.ConsentText) == "yes",
		Details:         strings.TrimSpace(f.Details),
		ClientRequestID: strings.TrimSpace(f.ClientRequestID),
	}

	if sub.Name == "" || sub.Email == "" || sub.Details == "" {
		return Submission{}, inputError(ErrMissingFields)
	}
	if err := emailValidator().Var(sub.Email, "email"); err != nil {
		return Submission{}, inputError(ErrInvalidEmail)
	}

	if a := normalizeAttachment(f.Attachment); a != nil {
		if a.Size > MaxAttachmentSize {
			return Submission{}, inputError(ErrAttachmentTooLarge)
		}
		sub.Attachment = a
	}

	return sub, nil
}

// normalizeAttachment drops empty files and fills in default metadata.
// The returned value is a copy.
func normalizeAttachment(a *Attachment) *Attachment {
	if a == nil {
		return nil
	}
	out := *a
	if out.Size == 0 {
		out.Size = int64(len(out.Content))
	}
	if out.Size == 0 {
		return nil
	}
	if strings.TrimSpace(out.Filename) == "" {
		out.Filename = DefaultFilename
	}
	if strings.TrimSpace(out.ContentType) == "" {
		out.ContentType = DefaultContentType
	}
	return &out
}
