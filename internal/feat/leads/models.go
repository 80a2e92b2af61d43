package leads

import (
	"time"

	"github.com/google/uuid"
)

// DemoRequest is a validated lead ready to be stored.
type DemoRequest struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Company               string    `json:"company,omitempty"`
	Message               string    `json:"message,omitempty"`
	SubscribeToNewsletter bool      `json:"subscribeToNewsletter"`
	CreatedAt             time.Time `json:"createdAt"`
}

// FormInput holds the raw form values as typed. A nil Subscribe means the
// field was not sent and defaults to true.
type FormInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	Subscribe *bool  `json:"subscribeToNewsletter,omitempty"`
}

// DefaultFormInput returns an empty form with the newsletter box ticked.
func DefaultFormInput() FormInput {
	subscribe := true
	return FormInput{Subscribe: &subscribe}
}

// WantsNewsletter resolves the newsletter flag, defaulting to true.
func (f FormInput) WantsNewsletter() bool {
	if f.Subscribe == nil {
		return true
	}
	return *f.Subscribe
}

// State is the lifecycle of one lead form surface.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a copy of a controller's observable state.
type Snapshot struct {
	State       State             `json:"state"`
	Open        bool              `json:"open"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Values      FormInput         `json:"values"`
}

// FieldError returns the message for field, or "".
func (s Snapshot) FieldError(field string) string {
	return s.FieldErrors[field]
}
