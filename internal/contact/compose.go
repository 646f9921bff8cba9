package contact

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/packwoodplates/site/pkg/mailer"
	"github.com/packwoodplates/site/pkg/sanitizer"
)

// Template names within the embedded filesystem.
const (
	InquiryTemplate = "inquiry"
	InquiryLayout   = "base.html"
)

//go:embed templates
var templatesFS embed.FS

// Templates returns the email templates rooted at the template directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewRenderer returns a renderer over the embedded inquiry templates. The
// rendered HTML fragment is passed through the email sanitizer policy.
func NewRenderer() *mailer.Renderer {
	return mailer.NewRendererWithConfig(Templates(), mailer.RendererConfig{
		ContentFilter: sanitizer.SanitizeEmailHTML,
	})
}

// InquiryData is the template data for the inquiry email.
// Plain fields are verbatim user input for the text body. HTML holds the
// same values already escaped for the HTML body. Header holds values safe
// for header lines.
type InquiryData struct {
	Site           string
	Name           string
	Email          string
	Phone          string
	ConsentToText  bool
	Details        string
	AttachmentName string

	HTML   InquiryHTML
	Header InquiryHeader
}

// InquiryHTML holds entity-escaped values for the HTML card.
type InquiryHTML struct {
	Name           template.HTML
	Email          template.HTML
	Phone          template.HTML
	Details        template.HTML
	AttachmentName template.HTML
}

// InquiryHeader holds values with line breaks collapsed.
type InquiryHeader struct {
	Name  string
	Email string
}

// NewInquiryData builds the template data for sub. This is the escaping
// stage; templates only place the prepared values.
func NewInquiryData(site string, sub Submission) InquiryData {
	d := InquiryData{
		Site:          site,
		Name:          sub.Name,
		Email:         sub.Email,
		Phone:         sub.Phone,
		ConsentToText: sub.ConsentToText,
		Details:       sub.Details,
		HTML: InquiryHTML{
			Name:    template.HTML(sanitizer.EscapeHTML(sub.Name)),
			Email:   template.HTML(sanitizer.EscapeHTML(sub.Email)),
			Phone:   template.HTML(sanitizer.EscapeHTML(sub.Phone)),
			Details: template.HTML(sanitizer.MultilineHTML(sub.Details)),
		},
		Header: InquiryHeader{
			Name:  sanitizer.Header(sub.Name),
			Email: sanitizer.Header(sub.Email),
		},
	}
	if sub.Attachment != nil {
		d.AttachmentName = sub.Attachment.Filename
		d.HTML.AttachmentName = template.HTML(sanitizer.EscapeHTML(sub.Attachment.Filename))
	}
	return d
}

// composeParams turns sub into mail parameters. The request id travels as
// the X-Request-ID header of the outbound email.
func (s *Service) composeParams(sub Submission, requestID string) mailer.SendParams {
	params := mailer.SendParams{
		To:       s.cfg.To,
		From:     mailer.Address(s.cfg.SiteName, s.cfg.From),
		Template: InquiryTemplate,
		Layout:   InquiryLayout,
		Data:     NewInquiryData(s.cfg.SiteHost, sub),
		ReplyTo:  sanitizer.Header(sub.Email),
		Tags:     mailer.Tags{"category": "inquiry"},
	}
	if requestID != "" {
		params.Headers = map[string]string{"X-Request-ID": sanitizer.Header(requestID)}
	}
	if sub.Attachment != nil {
		params.Attachments = []mailer.Attachment{{
			Filename:    sanitizer.Header(sub.Attachment.Filename),
			ContentType: sanitizer.Header(sub.Attachment.ContentType),
			Content:     sub.Attachment.Content,
		}}
	}
	return params
}
