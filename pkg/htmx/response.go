package htmx

import (
	"net/http"
	"strings"
)

// Config holds the HTMX response headers of one render.
type Config struct {
	Triggers []string
}

// RenderOption configures a render.
type RenderOption func(*Config)

// WithTrigger fires client-side events named in HX-Trigger once the
// response is swapped in.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, events...)
	}
}

// NewConfig applies opts to an empty Config.
func NewConfig(opts ...RenderOption) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplyHeaders writes c onto w. Call it before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil || len(c.Triggers) == 0 {
		return
	}
	w.Header().Set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
}

// Redirect sends HX-Redirect with 200 to HTMX requests, which follow it in
// the browser, and a normal redirect with status to everything else.
func Redirect(w http.ResponseWriter, r *http.Request, target string, status int) {
	if !IsHTMX(r) {
		http.Redirect(w, r, target, status)
		return
	}
	w.Header().Set(HeaderHXRedirect, target)
	w.WriteHeader(http.StatusOK)
}
