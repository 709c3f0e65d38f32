// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vetgonow/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAddressInput defines the data required to create a new address.
// The owner is never part of the input; it always comes from the
// authenticated identity.
type CreateAddressInput struct {
	Label       string
	FullAddress string
	Latitude    float64
	Longitude   float64
	AccessNotes string
	Commune     string
	Region      string
	IsDefault   bool
}

// UpdateAddressInput defines a partial update; nil fields are left untouched.
type UpdateAddressInput struct {
	Label       *string
	FullAddress *string
	Latitude    *float64
	Longitude   *float64
	AccessNotes *string
	Commune     *string
	Region      *string
	IsDefault   *bool
}

// AddressUsecase defines the interface for the tutor address book.
// Every operation is scoped to the authenticated owner; setting the default
// flag through any path leaves the owner with at most one default address.
type AddressUsecase interface {
	// ListAddresses returns all of the owner's addresses, default first,
	// then by ascending creation time.
	ListAddresses(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error)

	// CreateAddress persists a new address for the owner.
	CreateAddress(ctx context.Context, ownerID uuid.UUID, input *CreateAddressInput) (*entity.Address, error)

	// UpdateAddress applies a partial update to one of the owner's addresses.
	UpdateAddress(ctx context.Context, ownerID, addressID uuid.UUID, input *UpdateAddressInput) (*entity.Address, error)

	// DeleteAddress removes one of the owner's addresses. Deleting the
	// current default does not promote another address.
	DeleteAddress(ctx context.Context, ownerID, addressID uuid.UUID) error

	// SetDefaultAddress marks one of the owner's addresses as the default,
	// demoting any previous default in the same transaction.
	SetDefaultAddress(ctx context.Context, ownerID, addressID uuid.UUID) (*entity.Address, error)
}
