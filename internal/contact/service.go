package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/packwoodplates/site/pkg/logger"
	"github.com/packwoodplates/site/pkg/mailer"
)

// DefaultSendTimeout bounds the outbound mail call.
const DefaultSendTimeout = 15 * time.Second

// Mailer sends one templated email.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) (mailer.Receipt, error)
}

// Config is the slice of site configuration the service needs.
type Config struct {
	From          string
	To            string
	SiteName      string
	SiteHost      string
	HasCredential bool
	SendTimeout   time.Duration
}

// Debug is the non-secret configuration snapshot returned with delivery
// failures.
type Debug struct {
	From          string `json:"from"`
	To            string `json:"to"`
	HasCredential bool   `json:"hasCredential"`
}

// Receipt is the result of an accepted submission.
type Receipt struct {
	MailID string
}

// Service validates configuration and sends inquiry emails.
type Service struct {
	mailer Mailer
	logger *slog.Logger
	cfg    Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service sending through m.
func NewService(m Mailer, cfg Config, opts ...Option) *Service {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	s := &Service{
		mailer: m,
		logger: logger.NewNope(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready returns ErrNotConfigured when no mail credential is configured.
func (s *Service) Ready() error {
	if !s.cfg.HasCredential {
		return ErrNotConfigured
	}
	return nil
}

// Debug returns the configuration snapshot. The credential itself is never
// part of it.
func (s *Service) Debug() Debug {
	return Debug{From: s.cfg.From, To: s.cfg.To, HasCredential: s.cfg.HasCredential}
}

// Submit sends exactly one inquiry email for sub and waits for the result,
// at most SendTimeout. Failures are returned as *DeliveryError.
func (s *Service) Submit(ctx context.Context, sub Submission, requestID string) (Receipt, error) {
	if err := s.Ready(); err != nil {
		return Receipt{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	params := s.composeParams(sub, requestID)

	s.logger.InfoContext(ctx, "sending inquiry email",
		slog.Int("details_len", len(sub.Details)),
		slog.Bool("has_attachment", sub.HasAttachment()),
	)
	start := time.Now()

	type result struct {
		receipt mailer.Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: &DeliveryError{
					Kind:        KindPanic,
					Description: MessageUnknown,
					Err:         fmt.Errorf("panic: %v", r),
				}}
			}
		}()
		receipt, err := s.mailer.Send(ctx, params)
		done <- result{receipt: receipt, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if err := s.classify(res.receipt, res.err); err != nil {
		var de *DeliveryError
		errors.As(err, &de)
		s.logger.ErrorContext(ctx, "inquiry email failed",
			slog.String("kind", string(de.Kind)),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return Receipt{}, err
	}

	s.logger.InfoContext(ctx, "inquiry email sent",
		slog.String("mail_id", res.receipt.ID),
		slog.Duration("duration", time.Since(start)),
	)
	return Receipt{MailID: res.receipt.ID}, nil
}

func (s *Service) classify(receipt mailer.Receipt, err error) error {
	var (
		de      *DeliveryError
		sendErr *mailer.SendError
	)
	switch {
	case err == nil && receipt.ID == "":
		return &DeliveryError{Kind: KindNoID, Description: MessageUnknown, Err: mailer.ErrNoMailID}
	case err == nil:
		return nil
	case errors.As(err, &de):
		return de
	case errors.Is(err, context.DeadlineExceeded):
		return &DeliveryError{
			Kind:        KindTimeout,
			Description: fmt.Sprintf("request timed out after %s", s.cfg.SendTimeout),
			Err:         err,
		}
	case errors.Is(err, mailer.ErrNoMailID):
		return &DeliveryError{Kind: KindNoID, Description: MessageUnknown, Err: err}
	case errors.As(err, &sendErr):
		return &DeliveryError{Kind: KindRejected, Description: rootCause(sendErr.Err).Error(), Err: err}
	default:
		return &DeliveryError{Kind: KindInternal, Description: MessageUnknown, Err: err}
	}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
