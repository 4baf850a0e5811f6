// Package contact implements validation and storage contracts for contact
// form submissions.
package contact

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when no record matches the id.
var ErrNotFound = errors.New("contact not found")

// Submission is a contact form submission. After Validate the fields are
// trimmed and the email is lowercased.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Record is a stored submission. ID and CreatedAt are assigned by the store.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists submissions. Implementations serialize writes themselves.
type Store interface {
	// Insert stores a validated submission and returns the stored record.
	Insert(ctx context.Context, s Submission) (Record, error)
	// ListAllDescending returns every record, newest first.
	ListAllDescending(ctx context.Context) ([]Record, error)
	// FindByID returns the record with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (Record, error)
}
