package models

import "errors"

// Operation tags a lifecycle event with the write path it requests.
type Operation string

const (
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpUpdateStatus Operation = "updateStatus"
)

// UserPayload carries the partial user fields of an inbound event.
// Which fields are honored depends on the operation.
type UserPayload struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	DOB       string `json:"dob,omitempty"`
	Status    string `json:"status,omitempty"`
}

// EventEnvelope is the wire shape of a queue message body.
type EventEnvelope struct {
	User      *UserPayload `json:"user"`
	Operation Operation    `json:"operation"`
}

var (
	ErrMissingUser      = errors.New("event has no user payload")
	ErrMissingOperation = errors.New("event has no operation")
)

// Validate checks the presence requirements an envelope must meet
// before it can be dispatched.
func (e *EventEnvelope) Validate() error {
	if e.User == nil {
		return ErrMissingUser
	}
	if e.Operation == "" {
		return ErrMissingOperation
	}
	return nil
}
