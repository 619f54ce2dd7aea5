package models

import "time"

// User statuses managed by the consumer.
const (
	StatusActive  = "active"
	StatusUpdated = "updated"
)

// User represents a stored user record. The id is generated by the
// consumer on create and never changes afterwards. Email and dob are
// looked up together as a secondary key.
type User struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"firstName,omitempty" db:"first_name"`
	LastName  string    `json:"lastName,omitempty" db:"last_name"`
	Email     string    `json:"email,omitempty" db:"email"`
	DOB       string    `json:"dob,omitempty" db:"dob"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UserStatus is the response shape of the status lookup endpoint.
type UserStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
