package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Status is the display state of the contact form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Banner texts.
const (
	SuccessMessage      = "Sent — we’ll reply soon."
	NetworkErrorMessage = "Network error. Please try again."
)

// FormValues are the values shown in the form inputs.
type FormValues struct {
	Name    string
	Email   string
	Phone   string
	Consent bool
	Details string
}

// FormState is everything needed to render the contact form.
type FormState struct {
	Status          Status
	Message         string
	RequestID       string
	ClientRequestID string
	Values          FormValues
}

// NewForm returns an idle form with the consent box ticked and details
// prefilled.
func NewForm(clientRequestID, details string) FormState {
	return FormState{
		Status:          StatusIdle,
		ClientRequestID: clientRequestID,
		Values:          FormValues{Consent: true, Details: details},
	}
}

const inputClass = "field-input"

// ContactForm renders the htmx contact form. The fieldset is disabled while
// a request is in flight; the server answers with a re-rendered form.
func ContactForm(state FormState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		v := state.Values

		h.raw(`<form id="contact-form" class="contact-form" method="post" action="/api/contact"`,
			` enctype="multipart/form-data" hx-post="/api/contact" hx-encoding="multipart/form-data"`,
			` hx-target="this" hx-swap="outerHTML" hx-disabled-elt="find fieldset"`)
		h.attr("data-status", string(state.Status))
		h.attr("hx-on::send-error", "var s = this.querySelector('#contact-status'); s.hidden = false;"+
			" s.className = 'banner banner-error'; s.setAttribute('role', 'alert'); s.textContent = '"+NetworkErrorMessage+"';")
		h.raw(">")

		h.raw(`<input type="hidden" name="_clientRequestId"`)
		h.attr("value", state.ClientRequestID)
		h.raw(">")

		h.raw(`<fieldset class="contact-fields">`)

		h.raw(`<div class="grid">`)
		h.raw(`<label class="field">Name<input class="`, inputClass, `" type="text" name="name" placeholder="Jamie Carter" autocomplete="name" required`)
		h.attr("value", v.Name)
		h.raw(`></label>`)
		h.raw(`<label class="field">Email<input class="`, inputClass, `" type="email" name="email" placeholder="you@example.com" autocomplete="email" required`)
		h.attr("value", v.Email)
		h.raw(`></label>`)
		h.raw(`</div>`)

		h.raw(`<div class="grid">`)
		h.raw(`<label class="field">Phone (optional)<input class="`, inputClass, `" type="tel" name="phone" placeholder="(941) 555-0123" autocomplete="tel" inputmode="tel"`)
		h.attr("value", v.Phone)
		h.raw(`><span class="hint">Optional for quick clarifying questions.</span></label>`)
		h.raw(`<label class="consent"><input type="checkbox" name="consentText" value="yes"`)
		h.flag("checked", v.Consent)
		h.raw(`><span>OK to text me about this quote. Uncheck if you do not want text updates.`,
			`<span class="hint">Only for updates about this request. Msg/data rates may apply.</span></span></label>`)
		h.raw(`</div>`)

		h.raw(`<label class="field">What do you want made?<textarea class="`, inputClass, `" name="details" rows="7" required`,
			` placeholder="Team name, colors, sizes, where it’s going, and any logo you want us to use.">`)
		h.text(v.Details)
		h.raw(`</textarea></label>`)

		h.raw(`<label class="field">Upload design or logo (optional)`,
			`<input class="file-input" type="file" name="attachment" accept="image/*,.pdf">`,
			`<span class="hint">Max 5MB. PNG/JPG/PDF works best.</span></label>`)

		if h.err != nil {
			return h.err
		}
		if err := StatusBanner(state.Status, state.Message, state.RequestID).Render(ctx, w); err != nil {
			return err
		}

		h.raw(`<button type="submit" class="submit">`,
			`<span class="label-idle">Send My Design</span><span class="label-sending">Sending…</span></button>`)
		h.raw(`</fieldset>`)
		h.raw(`<p class="turnaround">You’ll receive a quote within 1–2 business days.</p>`)
		h.raw(`</form>`)
		return h.err
	})
}

// StatusBanner renders the form status line. Idle renders an empty
// placeholder that the network-error hook can replace.
func StatusBanner(status Status, message, requestID string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		switch status {
		case StatusSuccess:
			h.raw(`<div id="contact-status" class="banner banner-success" role="status">`)
			h.text(SuccessMessage)
			h.raw(`</div>`)
		case StatusError:
			h.raw(`<div id="contact-status" class="banner banner-error" role="alert"`)
			if requestID != "" {
				h.attr("data-request-id", requestID)
			}
			h.raw(`>`)
			h.text(message)
			h.raw(`</div>`)
		default:
			h.raw(`<div id="contact-status" hidden></div>`)
		}
		return h.err
	})
}
