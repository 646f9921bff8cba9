package contact

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
)

// Form field names.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldConsentText     = "consentText"
	FieldDetails         = "details"
	FieldAttachment      = "attachment"
	FieldClientRequestID = "_clientRequestId"
)

// multipartMemory is the in-memory budget before parts spill to disk.
const multipartMemory = 8 << 20

// Parse reads a multipart or url-encoded form from r in one pass and
// validates it into a Submission. The body is capped at MaxBodySize; a
// larger body is reported as an oversized attachment.
func Parse(w http.ResponseWriter, r *http.Request) (Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return Submission{}, inputError(fmt.Errorf("%w: %v", ErrMalformedForm, err))
	}

	switch mediaType {
	case "multipart/form-data":
		err = r.ParseMultipartForm(multipartMemory)
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	default:
		return Submission{}, inputError(fmt.Errorf("%w: unsupported content type %q", ErrMalformedForm, mediaType))
	}
	if err != nil {
		return Submission{}, parseError(err)
	}

	fields := Fields{
		Name:            r.PostFormValue(FieldName),
		Email:           r.PostFormValue(FieldEmail),
		Phone:           r.PostFormValue(FieldPhone),
		ConsentText:     r.PostFormValue(FieldConsentText),
		Details:         r.PostFormValue(FieldDetails),
		ClientRequestID: r.PostFormValue(FieldClientRequestID),
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File[FieldAttachment]; len(files) > 0 {
			fields.Attachment, err = readAttachment(files[0])
			if err != nil {
				return Submission{}, parseError(err)
			}
		}
	}

	return NewSubmission(fields)
}

// readAttachment loads the file content unless it is over the limit, in
// which case only its size is kept for validation.
func readAttachment(fh *multipart.FileHeader) (*Attachment, error) {
	a := &Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if fh.Size == 0 || fh.Size > MaxAttachmentSize {
		return a, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a.Content, err = io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	a.Size = int64(len(a.Content))
	return a, nil
}

func parseError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return inputError(fmt.Errorf("%w: body over %d bytes", ErrAttachmentTooLarge, maxErr.Limit))
	}
	return inputError(fmt.Errorf("%w: %v", ErrMalformedForm, err))
}
