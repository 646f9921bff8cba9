package contactclient

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/packwoodplates/site/internal/prefill"
)

// ErrBusy is returned when the form is edited or submitted while a
// submission is in flight.
var ErrBusy = errors.New("contactclient: submission in flight")

// Form holds the fields and status of one contact form instance.
// Transitions: idle -> sending -> success | error, and back to sending on
// the next Submit.
type Form struct {
	client *Client
	fields Fields
	state  State
	mu     sync.Mutex
}

// NewForm returns an idle form with the consent box ticked.
func NewForm(client *Client) *Form {
	return &Form{
		client: client,
		fields: blankFields(),
		state:  State{Status: StatusIdle},
	}
}

func blankFields() Fields {
	return Fields{ConsentToText: true}
}

// State returns the current display state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fields returns a copy of the current field values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Edit changes field values. Inputs are disabled while sending.
func (f *Form) Edit(fn func(*Fields)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Status == StatusSending {
		return ErrBusy
	}
	fn(&f.fields)
	return nil
}

// Navigate applies the prefill derived from the page query. Typed details
// are never replaced.
func (f *Form) Navigate(q url.Values) error {
	p := prefill.Derive(q)
	if p == "" {
		return nil
	}
	return f.Edit(func(fields *Fields) {
		fields.Details = prefill.Apply(fields.Details, p)
	})
}

// Submit sends the current fields and waits for the outcome. A second
// Submit while one is in flight returns ErrBusy. On success every field is
// reset, prefilled text included.
func (f *Form) Submit(ctx context.Context) (State, error) {
	f.mu.Lock()
	if f.state.Status == StatusSending {
		f.mu.Unlock()
		return State{}, ErrBusy
	}
	f.state = State{Status: StatusSending}
	fields := f.fields
	f.mu.Unlock()

	result := f.client.Send(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = result
	if result.Status == StatusSuccess {
		f.fields = blankFields()
	}
	return result, nil
}
