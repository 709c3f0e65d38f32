// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vetgonow/internal/domain/entity"
	domainerrors "vetgonow/internal/domain/errors"
	"vetgonow/internal/domain/repository"
	"vetgonow/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// addressService implements the AddressUsecase interface.
//
// The single-default invariant (at most one default address per owner) is
// enforced here, not in a persistence hook: every write path that can set
// IsDefault=true clears the owner's sibling defaults inside the same database
// transaction. Under READ COMMITTED two concurrent transactions can still
// each miss the other's uncommitted default; the partial unique index on
// addresses(owner_id) WHERE is_default makes the second commit fail instead
// of leaving two defaults behind.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(
	txManager repository.TransactionManager,
	addressRepo repository.AddressRepository,
	logger *slog.Logger,
) usecase.AddressUsecase {
	return &addressService{
		txManager:   txManager,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// ListAddresses returns all of the owner's addresses, default first.
func (srv *addressService) ListAddresses(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error) {
	addresses, err := srv.addressRepo.FindAddressesByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by owner")
	}

	return addresses, nil
}

// CreateAddress persists a new address for the owner. The owner always comes
// from the authenticated identity, never from the request payload.
func (srv *addressService) CreateAddress(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateAddressInput) (*entity.Address, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	address := &entity.Address{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Label:       strings.TrimSpace(input.Label),
		FullAddress: strings.TrimSpace(input.FullAddress),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		AccessNotes: input.AccessNotes,
		Commune:     input.Commune,
		Region:      input.Region,
		IsDefault:   input.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A non-default address is a single insert; no siblings are touched.
	if !input.IsDefault {
		if err := srv.addressRepo.CreateAddress(ctx, address); err != nil {
			return nil, errors.Wrap(err, "failed to create address")
		}

		return address, nil
	}

	// Creating the new default demotes every sibling in the same transaction.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if err := addressRepo.ClearDefaults(ctx, ownerID, uuid.Nil); err != nil {
			return errors.Wrap(err, "failed to clear previous default")
		}

		return errors.Wrap(addressRepo.CreateAddress(ctx, address), "failed to create address")
	})
	if err != nil {
		srv.logger.Error("failed to create default address", "ownerID", ownerID, "error", err)

		return nil, err
	}

	return address, nil
}

// UpdateAddress applies a partial update to one of the owner's addresses.
func (srv *addressService) UpdateAddress(ctx context.Context, ownerID, addressID uuid.UUID, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	// Field validation happens before any write.
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	// Promoting to default is a two-step change (demote siblings, save the
	// target); run it inside one transaction.
	if input.IsDefault != nil && *input.IsDefault {
		return srv.updateAndPromote(ctx, ownerID, addressID, input)
	}

	address, err := srv.addressRepo.FindAddressByIDAndOwner(ctx, addressID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound.WrapMessage("address not found for owner")
		}

		return nil, errors.Wrap(err, "failed to find address")
	}

	applyAddressUpdates(address, input)

	if err := srv.addressRepo.UpdateAddress(ctx, address); err != nil {
		return nil, errors.Wrap(err, "failed to update address")
	}

	return address, nil
}

// updateAndPromote saves the updated address as the owner's only default.
func (srv *addressService) updateAndPromote(ctx context.Context, ownerID, addressID uuid.UUID, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	var updated *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := addressRepo.FindAddressByIDAndOwner(ctx, addressID, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return domainerrors.ErrAddressNotFound.WrapMessage("address not found for owner")
			}

			return errors.Wrap(err, "failed to find address")
		}

		applyAddressUpdates(address, input)

		if err := addressRepo.ClearDefaults(ctx, ownerID, address.ID); err != nil {
			return errors.Wrap(err, "failed to clear previous default")
		}

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}
		updated = address

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAddress removes one of the owner's addresses. If the deleted record
// was the default, no sibling is promoted; the owner simply has no default.
func (srv *addressService) DeleteAddress(ctx context.Context, ownerID, addressID uuid.UUID) error {
	if err := srv.addressRepo.DeleteAddress(ctx, addressID, ownerID); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return domainerrors.ErrAddressNotFound.WrapMessage("address not found for owner")
		}

		return errors.Wrap(err, "failed to delete address")
	}

	return nil
}

// SetDefaultAddress marks one of the owner's addresses as the default,
// demoting any previous default in the same transaction.
func (srv *addressService) SetDefaultAddress(ctx context.Context, ownerID, addressID uuid.UUID) (*entity.Address, error) {
	var updated *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := addressRepo.FindAddressByIDAndOwner(ctx, addressID, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return domainerrors.ErrAddressNotFound.WrapMessage("address not found for owner")
			}

			return errors.Wrap(err, "failed to find address")
		}

		if err := addressRepo.ClearDefaults(ctx, ownerID, address.ID); err != nil {
			return errors.Wrap(err, "failed to clear previous default")
		}

		address.IsDefault = true
		address.UpdatedAt = time.Now()

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}
		updated = address

		return nil
	})
	if err != nil {
		srv.logger.Error("failed to set default address", "ownerID", ownerID, "addressID", addressID, "error", err)

		return nil, err
	}

	srv.logger.Debug("default address changed", "ownerID", ownerID, "addressID", addressID)

	return updated, nil
}

// applyAddressUpdates applies the update input to an address. OwnerID is
// deliberately not touchable through this path.
func applyAddressUpdates(address *entity.Address, input *usecase.UpdateAddressInput) {
	if input.Label != nil {
		address.Label = strings.TrimSpace(*input.Label)
	}
	if input.FullAddress != nil {
		address.FullAddress = strings.TrimSpace(*input.FullAddress)
	}
	if input.Latitude != nil {
		address.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		address.Longitude = *input.Longitude
	}
	if input.AccessNotes != nil {
		address.AccessNotes = *input.AccessNotes
	}
	if input.Commune != nil {
		address.Commune = *input.Commune
	}
	if input.Region != nil {
		address.Region = *input.Region
	}
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}
	address.UpdatedAt = time.Now()
}

func validateCreateInput(input *usecase.CreateAddressInput) error {
	if strings.TrimSpace(input.Label) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("label is required")
	}
	if strings.TrimSpace(input.FullAddress) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("full address is required")
	}

	return validateCoordinates(input.Latitude, input.Longitude)
}

func validateUpdateInput(input *usecase.UpdateAddressInput) error {
	if input.Label != nil && strings.TrimSpace(*input.Label) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("label cannot be empty")
	}
	if input.FullAddress != nil && strings.TrimSpace(*input.FullAddress) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("full address cannot be empty")
	}

	lat, lng := 0.0, 0.0
	if input.Latitude != nil {
		lat = *input.Latitude
	}
	if input.Longitude != nil {
		lng = *input.Longitude
	}

	return validateCoordinates(lat, lng)
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return domainerrors.ErrValidationFailed.WrapMessage("latitude out of range")
	}
	if lng < -180 || lng > 180 {
		return domainerrors.ErrValidationFailed.WrapMessage("longitude out of range")
	}

	return nil
}
