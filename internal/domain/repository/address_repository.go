// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"vetgonow/internal/domain/entity"
	"vetgonow/internal/errors"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address does not exist or does not
// belong to the given owner. The two cases are deliberately merged: every
// lookup is filtered by (id, owner_id), so callers cannot distinguish a
// foreign address from a missing one.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for address-related database operations.
// All single-record operations are scoped by the owning user.
type AddressRepository interface {
	// CreateAddress persists a new address for an owner.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressesByOwner retrieves all addresses for an owner, default
	// address first, then by ascending creation time.
	FindAddressesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error)

	// FindAddressByIDAndOwner retrieves a single address by its ID, restricted
	// to the given owner. Returns ErrAddressNotFound otherwise.
	FindAddressByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Address, error)

	// UpdateAddress updates an existing address record.
	UpdateAddress(ctx context.Context, address *entity.Address) error

	// DeleteAddress removes the owner's address entirely. Returns
	// ErrAddressNotFound when no row matched.
	DeleteAddress(ctx context.Context, id, ownerID uuid.UUID) error

	// ClearDefaults unsets the default flag on every address of the owner
	// except the given one. Pass uuid.Nil to clear all of them.
	ClearDefaults(ctx context.Context, ownerID, exceptID uuid.UUID) error
}
