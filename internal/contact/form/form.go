// Package form holds the state of a contact form that validates locally and
// hands the submission to an email relay.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/whyideas/whyideas/internal/contact"
	"github.com/whyideas/whyideas/internal/relay"
)

// Status is the lifecycle state of a Form.
type Status string

// Form states.
const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// User visible messages.
const (
	MessageSuccess    = "Thank you! Your message has been sent successfully. We'll get back to you soon."
	messageFailPrefix = "Failed to send message: "
	messageFailSuffix = ". Please try again or contact us directly."
	messageUnexpected = "An unexpected error occurred. Please try again or contact us directly."
)

// ErrSubmitInProgress is returned when Submit is called while a submission
// is still in flight.
var ErrSubmitInProgress = errors.New("submission already in progress")

// Sender delivers a validated submission.
type Sender interface {
	Send(ctx context.Context, e relay.Email) error
}

// State is a snapshot of a Form.
type State struct {
	Status      Status
	Values      contact.Submission
	FieldErrors map[string]string
	Message     string
}

// Busy reports whether the submit control should be disabled.
func (s State) Busy() bool {
	return s.Status == StatusSubmitting
}

// Form is safe for concurrent use. At most one submission runs at a time.
type Form struct {
	sender Sender

	mu    sync.Mutex
	state State
}

// New returns an idle form that relays through sender.
func New(sender Sender) *Form {
	return &Form{
		sender: sender,
		state:  State{Status: StatusIdle},
	}
}

// State returns a copy of the current form state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.state
	if f.state.FieldErrors != nil {
		s.FieldErrors = make(map[string]string, len(f.state.FieldErrors))
		for k, v := range f.state.FieldErrors {
			s.FieldErrors[k] = v
		}
	}

	return s
}

// Submit validates raw and relays it. Validation failures return a
// *contact.ValidationError and leave the form idle. Relay failures, including
// a missing relay credential, leave the form in StatusError with the entered
// values kept.
func (f *Form) Submit(ctx context.Context, raw map[string]any) (State, error) {
	f.mu.Lock()
	if f.state.Status == StatusSubmitting {
		f.mu.Unlock()
		return f.State(), ErrSubmitInProgress
	}
	f.state = State{Status: StatusSubmitting, Values: rawValues(raw)}
	f.mu.Unlock()

	sub, err := contact.Validate(raw)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			contact.Observe(contact.PathRelay, contact.ResultInvalid)
			f.finish(State{Status: StatusIdle, Values: f.values(), FieldErrors: verr.ByField()})
			return f.State(), err
		}
		f.finish(State{Status: StatusError, Values: f.values(), Message: messageUnexpected})
		return f.State(), err
	}

	err = f.sender.Send(ctx, relay.Email{
		FromName:  sub.Name,
		FromEmail: sub.Email,
		Message:   sub.Message,
	})
	if err != nil {
		log.Warn().Err(err).Str("email", sub.Email).Msg("relay send failed")
		contact.Observe(contact.PathRelay, contact.ResultFailed)
		f.finish(State{Status: StatusError, Values: sub, Message: failureMessage(err)})
		return f.State(), err
	}

	contact.Observe(contact.PathRelay, contact.ResultAccepted)
	f.finish(State{Status: StatusSuccess, Message: MessageSuccess})

	return f.State(), nil
}

func (f *Form) values() contact.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state.Values
}

func (f *Form) finish(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func failureMessage(err error) string {
	reason := strings.TrimSuffix(strings.TrimSpace(err.Error()), ".")
	if reason == "" {
		return messageUnexpected
	}

	return messageFailPrefix + reason + messageFailSuffix
}

// rawValues keeps whatever the user typed so the form can be re-rendered.
func rawValues(raw map[string]any) contact.Submission {
	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}

	return contact.Submission{
		Name:    str(contact.FieldName),
		Email:   str(contact.FieldEmail),
		Message: str(contact.FieldMessage),
	}
}
