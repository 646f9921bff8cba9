package mailer

// Config holds mailer defaults, parsed with caarlos0/env as part of the
// site configuration.
type Config struct {
	// FallbackSubject is used when a template has no Subject frontmatter.
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Website inquiry"`
	// DefaultLayout wraps HTML bodies when SendParams.Layout is empty.
	DefaultLayout string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
}
