package mailer

import (
	"fmt"
	"strings"
)

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Address formats a display name and address as `"Name" <addr>`.
// An address that already carries an angle-bracket wrapper is returned
// unchanged, as is any address when name is empty.
func Address(name, addr string) string {
	if name == "" || strings.Contains(addr, "<") {
		return addr
	}
	return fmt.Sprintf("%q <%s>", name, addr)
}

// CleanAddress trims whitespace and strips one layer of matching single
// or double quotes, as left behind by hand-edited env files.
func CleanAddress(s string) string {
	v := strings.TrimSpace(s)
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers     map[string]string // Custom headers
	Tags        Tags              // Provider-specific tags/categories
	Subject     string
	HTML        string // Optional HTML body
	Text        string // Plain text body
	From        string
	ReplyTo     string
	To          []string // At least one required
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string // Optional Content-ID for inline attachments
	Content     []byte
}

// Receipt is what the provider hands back for an accepted message.
type Receipt struct {
	ID string
}
