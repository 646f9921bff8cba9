// Package contact implements the contact-submission pipeline: parsing a
// form into an immutable Submission, validating it, composing the inquiry
// email and sending it through a mailer with a bounded timeout.
//
// Validation order is fixed: missing credential, malformed body, missing
// required fields, email format, attachment size. Errors are typed so the
// HTTP layer can map them with StatusCode and UserMessage:
//
//	ErrNotConfigured   500
//	*InputError        400
//	*DeliveryError     502
//
// Escaping and templating are separate stages. NewInquiryData prepares
// verbatim, HTML-escaped and header-safe copies of every value; the
// embedded templates only place them.
package contact
