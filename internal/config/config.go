// Package config loads the site configuration from the environment.
//
// Config is built once at start-up and passed to every component by
// parameter; nothing below main reads the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/packwoodplates/site/pkg/logger"
	"github.com/packwoodplates/site/pkg/mailer"
	"github.com/packwoodplates/site/pkg/mailer/resend"
)

// Config is the complete site configuration.
type Config struct {
	Resend resend.Config
	Mailer mailer.Config
	Logger logger.Config

	ContactTo string `env:"CONTACT_TO" envDefault:"orders@packwoodplates.com"`
	SiteName  string `env:"SITE_NAME" envDefault:"Packwood Plates"`
	SiteURL   string `env:"SITE_URL" envDefault:"https://packwoodplates.com"`

	Address         string        `env:"ADDRESS" envDefault:":8080"`
	SendTimeout     time.Duration `env:"SEND_TIMEOUT" envDefault:"15s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"45s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads the optional .env files and parses the environment into Config.
// Missing .env files are ignored; values already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	return Parse()
}

// Parse builds Config from the current environment only.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports settings the server cannot run with.
// A missing mail credential is not one of them: it is reported per request.
func (c Config) Validate() error {
	var errs []error
	if c.ContactTo == "" {
		errs = append(errs, errors.New("config: CONTACT_TO is empty"))
	}
	if c.Resend.SenderEmail == "" {
		errs = append(errs, errors.New("config: RESEND_FROM is empty"))
	}
	if c.SendTimeout <= 0 {
		errs = append(errs, errors.New("config: SEND_TIMEOUT must be positive"))
	}
	if _, err := url.Parse(c.SiteURL); err != nil {
		errs = append(errs, fmt.Errorf("config: SITE_URL: %w", err))
	}
	return errors.Join(errs...)
}

// HasCredential reports whether an outbound mail API key is configured.
func (c Config) HasCredential() bool {
	return c.Resend.APIKey != ""
}

// From is the configured sender address.
func (c Config) From() string {
	return c.Resend.SenderEmail
}

// SiteHost returns the host of SiteURL, e.g. "packwoodplates.com".
func (c Config) SiteHost() string {
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(strings.TrimPrefix(c.SiteURL, "https://"), "http://")
	}
	return u.Host
}

func (c *Config) normalize() {
	c.Resend.APIKey = strings.TrimSpace(c.Resend.APIKey)
	c.Resend.SenderEmail = mailer.CleanAddress(c.Resend.SenderEmail)
	c.ContactTo = mailer.CleanAddress(c.ContactTo)
	if c.Resend.SenderName == "" {
		c.Resend.SenderName = c.SiteName
	}
}
