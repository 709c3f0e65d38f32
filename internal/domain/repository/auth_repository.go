package repository

import (
	"context"

	"vetgonow/internal/domain/entity"
	"vetgonow/internal/errors"
)

// ErrAuthNotFound is returned when no credential exists for the given provider identity.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines the interface for credential persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new credential for a user.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves a credential by provider and provider-side
	// user ID (the email itself for the email provider).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)
}
