package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail identifies the email+password credential provider.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
// Email/password is currently the only provider; the record shape leaves room
// for external providers later.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this specific authentication record.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // The authentication provider, e.g., "email".
	ProviderUserID string    // The user's unique ID at the provider; the email itself for the email provider.
	PasswordHash   string    // The bcrypt-hashed password, only set when Provider is "email".
	CreatedAt      time.Time // Timestamp of when this credential was created.
}
