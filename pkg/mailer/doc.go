// Package mailer provides a provider-agnostic email sending interface with
// template rendering.
//
// The package consists of three components:
//
//   - Sender: interface that email providers implement; returns a Receipt
//     carrying the provider's message id
//   - Renderer: renders a template pair (name.txt with YAML frontmatter and
//     an optional name.html fragment) into text and HTML bodies
//   - Mailer: combines Sender and Renderer and refuses to hand the provider
//     any email whose header fields contain CR or LF
//
// # Usage
//
//	sender := resend.New(resend.Config{APIKey: cfg.ResendAPIKey})
//	renderer := mailer.NewRendererWithConfig(templates.FS, mailer.RendererConfig{
//		ContentFilter: sanitizer.SanitizeEmailHTML,
//	})
//	m := mailer.New(sender, renderer, mailer.Config{DefaultLayout: "base.html"})
//
//	receipt, err := m.Send(ctx, mailer.SendParams{
//		To:       "orders@example.com",
//		From:     mailer.Address("Packwood Plates", "orders@example.com"),
//		ReplyTo:  replyTo,
//		Template: "inquiry",
//		Data:     data,
//		Headers:  map[string]string{"X-Request-ID": requestID},
//	})
//
// # Templates
//
// The text part carries the metadata:
//
//	---
//	Subject: Packwood Plates Inquiry — {{.Name}}
//	---
//	Name: {{.Name}}
//
// The subject is executed as a text template against the same data.
// The HTML part is an html/template fragment; RendererConfig.ContentFilter
// runs over it before it is placed into the layout as {{.Content}}.
//
// # Errors
//
// Render failures are joined with ErrRenderFailed. Sender failures come back
// as *SendError, which matches ErrSendFailed and the provider error alike.
// A provider call that succeeds without a message id yields ErrNoMailID.
package mailer
