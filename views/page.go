package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HTMXScript is the htmx build the pages load.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Site is the page chrome shared by every page.
type Site struct {
	Name string
	URL  string
}

func layout(site Site, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(` | `)
		h.text(site.Name)
		h.raw(`</title><link rel="stylesheet" href="/static/site.css">`)
		h.raw(`<script src="`, HTMXScript, `" defer></script></head><body>`)
		h.raw(`<header class="site-header"><a class="brand" href="/">`)
		h.text(site.Name)
		h.raw(`</a></header><main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// ContactPage renders the full contact page around the form.
func ContactPage(site Site, form FormState) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="hero"><p class="eyebrow">CONTACT</p>`,
			`<h1>Let’s Build Your Plate</h1>`,
			`<p class="lead">Tell us what you want — a team, a name, a logo, or something totally custom.</p></section>`,
			`<section class="card">`)
		if h.err != nil {
			return h.err
		}
		if err := ContactForm(form).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</section>`)
		return h.err
	})
	return layout(site, "Contact", body)
}

// ErrorPage renders a full-page error for non-htmx page requests.
func ErrorPage(site Site, code int, message string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="hero"><p class="eyebrow">`, strconv.Itoa(code), `</p><h1>`)
		h.text(message)
		h.raw(`</h1><p class="lead"><a href="/contact">Back to the contact page</a></p></section>`)
		return h.err
	})
	return layout(site, "Error", body)
}

// ErrorFragment renders an error banner for htmx requests.
func ErrorFragment(message, requestID string) templ.Component {
	return StatusBanner(StatusError, message, requestID)
}
