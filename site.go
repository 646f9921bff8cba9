package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/packwoodplates/site/handlers"
	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/internal/config"
	"github.com/packwoodplates/site/internal/contact"
	"github.com/packwoodplates/site/middlewares"
	"github.com/packwoodplates/site/pkg/logger"
	"github.com/packwoodplates/site/pkg/mailer"
	"github.com/packwoodplates/site/pkg/mailer/resend"
	"github.com/packwoodplates/site/views"
)

// Server is the assembled web server.
type Server struct {
	app        *internal.App
	cfg        config.Config
	logger     *slog.Logger
	service    *contact.Service
	runOptions []internal.RunOption
}

// New builds a Server from cfg.
// A missing mail credential does not fail construction; the contact
// endpoint reports it per request and the readiness probe fails.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := o.logger
	if log == nil {
		log = logger.New(cfg.Logger,
			middlewares.RequestIDExtractor(),
			contact.ClientRequestIDExtractor(),
		)
	}

	sender := o.sender
	if sender == nil {
		rs, err := resend.New(cfg.Resend)
		if err != nil {
			return nil, fmt.Errorf("site: %w", err)
		}
		sender = rs
	}

	renderer := contact.NewRenderer()
	if err := renderer.Preload(contact.InquiryLayout, contact.InquiryTemplate); err != nil {
		return nil, fmt.Errorf("site: email templates: %w", err)
	}

	svc := contact.NewService(
		mailer.New(sender, renderer, cfg.Mailer),
		contact.Config{
			From:          cfg.From(),
			To:            cfg.ContactTo,
			SiteName:      cfg.SiteName,
			SiteHost:      cfg.SiteHost(),
			HasCredential: cfg.HasCredential(),
			SendTimeout:   cfg.SendTimeout,
		},
		contact.WithLogger(log),
	)

	site := views.Site{Name: cfg.SiteName, URL: cfg.SiteURL}

	routes := append([]internal.Handler{
		handlers.NewPageHandler(site),
		handlers.NewContactHandler(svc),
	}, o.handlers...)

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		internal.WithErrorHandler(handlers.ErrorHandler(site)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithStatic("/static/", views.Static()),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("mailer", func(context.Context) error {
				return svc.Ready()
			}),
			internal.WithReadinessCheck("templates", func(context.Context) error {
				return renderer.Preload(contact.InquiryLayout, contact.InquiryTemplate)
			}),
		),
		internal.WithHandlers(routes...),
	)

	return &Server{
		app:        app,
		cfg:        cfg,
		logger:     log,
		service:    svc,
		runOptions: o.runOptions,
	}, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// Run listens on the configured address and blocks until ctx is cancelled
// or the process receives SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	if !s.cfg.HasCredential() {
		s.logger.Warn("RESEND_API_KEY is not set; contact submissions will fail")
	}
	s.logger.Info("contact mail configured",
		slog.String("from", s.service.Debug().From),
		slog.String("to", s.service.Debug().To),
	)

	opts := append([]internal.RunOption{
		internal.WithContext(ctx),
		internal.ShutdownTimeout(s.cfg.ShutdownTimeout),
		internal.ShutdownHook(logger.Flush()),
	}, s.runOptions...)

	return s.app.Run(s.cfg.Address, opts...)
}
