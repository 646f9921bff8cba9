package site

import (
	"log/slog"

	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/pkg/mailer"
)

// Option configures a Server.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	sender     mailer.Sender
	handlers   []internal.Handler
	runOptions []internal.RunOption
}

// WithLogger replaces the logger built from configuration.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSender replaces the Resend sender. Tests use it to capture outgoing
// mail.
func WithSender(s mailer.Sender) Option {
	return func(o *options) {
		if s != nil {
			o.sender = s
		}
	}
}

// WithHandlers registers additional route handlers.
func WithHandlers(h ...internal.Handler) Option {
	return func(o *options) {
		o.handlers = append(o.handlers, h...)
	}
}

// WithRunOptions appends runtime options applied by Run.
func WithRunOptions(opts ...internal.RunOption) Option {
	return func(o *options) {
		o.runOptions = append(o.runOptions, opts...)
	}
}
