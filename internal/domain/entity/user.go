// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a tutor account. It carries only the identity information
// the address book needs; pets, appointments and payment data live in other
// services.
type User struct {
	ID        uuid.UUID `json:"id"`         // The unique identifier for the user.
	Email     string    `json:"email"`      // The user's login identifier.
	Name      string    `json:"name"`       // The user's display name.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this account was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}
