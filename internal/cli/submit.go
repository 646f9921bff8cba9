package cli

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packwoodplates/site/pkg/contactclient"
)

// DefaultEndpoint is the production contact endpoint.
const DefaultEndpoint = "https://packwoodplates.com/api/contact"

var errSubmitFailed = errors.New("submission failed")

func newSubmitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send an inquiry to a running site",
		Long: `Send one inquiry through the contact endpoint, the way the website form does.

When --details is empty and --referral carries a known referral query
(for example "source=nameplates&product=Classic+Name+Plate"), the details
are prefilled from it.`,
		Args: cobra.NoArgs,
		RunE: runSubmit,
	}

	f := cmd.Flags()
	f.String("endpoint", DefaultEndpoint, "contact endpoint URL")
	f.String("name", "", "your name")
	f.String("email", "", "your email address")
	f.String("phone", "", "phone number")
	f.Bool("text-ok", true, "consent to text messages")
	f.String("details", "", "plate details")
	f.String("referral", "", "referral query string used to prefill details")
	f.String("file", "", "path to an image or PDF to attach")
	return cmd
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	endpoint, _ := f.GetString("endpoint")
	referral, _ := f.GetString("referral")
	path, _ := f.GetString("file")

	var attachment *contactclient.File
	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return err
		}
		attachment = file
	}

	form := contactclient.NewForm(contactclient.New(endpoint))
	if err := form.Edit(func(fields *contactclient.Fields) {
		fields.Name, _ = f.GetString("name")
		fields.Email, _ = f.GetString("email")
		fields.Phone, _ = f.GetString("phone")
		fields.ConsentToText, _ = f.GetBool("text-ok")
		fields.Details, _ = f.GetString("details")
		fields.Attachment = attachment
	}); err != nil {
		return err
	}

	if referral != "" {
		q, err := url.ParseQuery(referral)
		if err != nil {
			return fmt.Errorf("invalid --referral: %w", err)
		}
		if err := form.Navigate(q); err != nil {
			return err
		}
	}

	state, err := form.Submit(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if state.Status != contactclient.StatusSuccess {
		fmt.Fprintf(out, "error: %s\n", state.Message)
		if state.RequestID != "" {
			fmt.Fprintf(out, "request id: %s\n", state.RequestID)
		}
		return errSubmitFailed
	}

	fmt.Fprintln(out, "sent")
	fmt.Fprintf(out, "request id: %s\n", state.RequestID)
	if state.MailID != "" {
		fmt.Fprintf(out, "mail id: %s\n", state.MailID)
	}
	return nil
}

func readFile(path string) (*contactclient.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	return &contactclient.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Content:     content,
	}, nil
}
