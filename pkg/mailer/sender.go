package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
type Sender interface {
	// Send delivers an email message and returns the provider's receipt.
	// An accepted message always carries a non-empty Receipt.ID.
	Send(ctx context.Context, email *Email) (Receipt, error)
}

// SenderFunc adapts a plain function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (Receipt, error)

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) (Receipt, error) {
	return f(ctx, email)
}
