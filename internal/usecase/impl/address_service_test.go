package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"vetgonow/internal/domain/entity"
	domainerrors "vetgonow/internal/domain/errors"
	"vetgonow/internal/domain/repository"
	mockRepo "vetgonow/internal/mocks/repository"
	"vetgonow/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// addressServiceFixtures holds all test dependencies for address service tests.
type addressServiceFixtures struct {
	service     usecase.AddressUsecase
	txManager   *mockRepo.MockTransactionManager
	addressRepo *mockRepo.MockAddressRepository
}

func createTestAddressService(t *testing.T) addressServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	addressRepo := mockRepo.NewMockAddressRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAddressService(txManager, addressRepo, logger)

	return addressServiceFixtures{
		service:     service,
		txManager:   txManager,
		addressRepo: addressRepo,
	}
}

func validCreateInput() *usecase.CreateAddressInput {
	return &usecase.CreateAddressInput{
		Label:       "Casa",
		FullAddress: "Av. Providencia 1234, Depto 5B",
		Latitude:    -33.4489,
		Longitude:   -70.6693,
		AccessNotes: "Timbre 5B, portón negro",
		Commune:     "Providencia",
		Region:      "Región Metropolitana",
	}
}

func TestAddressService_ListAddresses(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	// Ordering itself comes from the repository query; this only checks the
	// list is handed through untouched.
	expected := []*entity.Address{
		{ID: uuid.New(), OwnerID: ownerID, Label: "Casa", IsDefault: true},
		{ID: uuid.New(), OwnerID: ownerID, Label: "Trabajo"},
		{ID: uuid.New(), OwnerID: ownerID, Label: "Casa de mis padres"},
	}

	fx.addressRepo.EXPECT().
		FindAddressesByOwner(ctx, ownerID).
		Return(expected, nil)

	addresses, err := fx.service.ListAddresses(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, expected, addresses)
}

func TestAddressService_ListAddresses_Empty(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()

	fx.addressRepo.EXPECT().
		FindAddressesByOwner(ctx, ownerID).
		Return([]*entity.Address{}, nil)

	addresses, err := fx.service.ListAddresses(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestAddressService_CreateAddress_NonDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	input := validCreateInput()

	// A non-default create never enters a transaction.
	fx.addressRepo.EXPECT().
		CreateAddress(ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil)

	address, err := fx.service.CreateAddress(ctx, ownerID, input)
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Equal(t, ownerID, address.OwnerID)
	assert.Equal(t, input.Label, address.Label)
	assert.Equal(t, input.FullAddress, address.FullAddress)
	assert.False(t, address.IsDefault)
	assert.NotEqual(t, uuid.Nil, address.ID)
}

func TestAddressService_CreateAddress_Default_DemotesSiblings(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	input := validCreateInput()
	input.IsDefault = true

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			// Every sibling default is cleared before the new default lands.
			mockAddressRepo.EXPECT().
				ClearDefaults(ctx, ownerID, uuid.Nil).
				Return(nil)

			mockAddressRepo.EXPECT().
				CreateAddress(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					assert.True(t, address.IsDefault)
					assert.Equal(t, ownerID, address.OwnerID)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.CreateAddress(ctx, ownerID, input)
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.True(t, address.IsDefault)
}

func TestAddressService_CreateAddress_MissingLabel(t *testing.T) {
	fx := createTestAddressService(t)

	input := validCreateInput()
	input.Label = "   "

	address, err := fx.service.CreateAddress(context.Background(), uuid.New(), input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAddressService_CreateAddress_MissingFullAddress(t *testing.T) {
	fx := createTestAddressService(t)

	input := validCreateInput()
	input.FullAddress = ""

	address, err := fx.service.CreateAddress(context.Background(), uuid.New(), input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAddressService_CreateAddress_CoordinatesOutOfRange(t *testing.T) {
	fx := createTestAddressService(t)

	input := validCreateInput()
	input.Latitude = 91.0

	address, err := fx.service.CreateAddress(context.Background(), uuid.New(), input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	input = validCreateInput()
	input.Longitude = -180.5

	address, err = fx.service.CreateAddress(context.Background(), uuid.New(), input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAddressService_UpdateAddress_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()
	newLabel := "Casa de la playa"
	newNotes := "Dejar en conserjería"
	input := &usecase.UpdateAddressInput{
		Label:       &newLabel,
		AccessNotes: &newNotes,
	}

	existing := &entity.Address{
		ID:          addressID,
		OwnerID:     ownerID,
		Label:       "Casa",
		FullAddress: "Av. Providencia 1234",
		Latitude:    -33.4489,
		Longitude:   -70.6693,
		CreatedAt:   time.Now().Add(-time.Hour),
	}

	fx.addressRepo.EXPECT().
		FindAddressByIDAndOwner(ctx, addressID, ownerID).
		Return(existing, nil)

	fx.addressRepo.EXPECT().
		UpdateAddress(ctx, existing).
		Return(nil)

	address, err := fx.service.UpdateAddress(ctx, ownerID, addressID, input)
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Equal(t, newLabel, address.Label)
	assert.Equal(t, newNotes, address.AccessNotes)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Av. Providencia 1234", address.FullAddress)
	assert.InDelta(t, -33.4489, address.Latitude, 0.0001)
}

func TestAddressService_UpdateAddress_NotFoundForOtherOwner(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()
	newLabel := "Casa"
	input := &usecase.UpdateAddressInput{Label: &newLabel}

	// An address belonging to someone else looks exactly like a missing one.
	fx.addressRepo.EXPECT().
		FindAddressByIDAndOwner(ctx, addressID, ownerID).
		Return(nil, repository.ErrAddressNotFound)

	address, err := fx.service.UpdateAddress(ctx, ownerID, addressID, input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAddressService_UpdateAddress_EmptyLabelRejected(t *testing.T) {
	fx := createTestAddressService(t)

	emptyLabel := "  "
	input := &usecase.UpdateAddressInput{Label: &emptyLabel}

	address, err := fx.service.UpdateAddress(context.Background(), uuid.New(), uuid.New(), input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAddressService_UpdateAddress_PromoteToDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()
	isDefault := true
	input := &usecase.UpdateAddressInput{IsDefault: &isDefault}

	existing := &entity.Address{
		ID:      addressID,
		OwnerID: ownerID,
		Label:   "Trabajo",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindAddressByIDAndOwner(ctx, addressID, ownerID).
				Return(existing, nil)

			// The promoted address itself is excluded from the demotion.
			mockAddressRepo.EXPECT().
				ClearDefaults(ctx, ownerID, addressID).
				Return(nil)

			mockAddressRepo.EXPECT().
				UpdateAddress(ctx, existing).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.UpdateAddress(ctx, ownerID, addressID, input)
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.True(t, address.IsDefault)
}

func TestAddressService_UpdateAddress_PromoteNotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()
	isDefault := true
	input := &usecase.UpdateAddressInput{IsDefault: &isDefault}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindAddressByIDAndOwner(ctx, addressID, ownerID).
				Return(nil, repository.ErrAddressNotFound)

			return fn(mockFactory)
		})

	address, err := fx.service.UpdateAddress(ctx, ownerID, addressID, input)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAddressService_DeleteAddress_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()

	// Deleting the default is a plain delete; no sibling gets promoted.
	fx.addressRepo.EXPECT().
		DeleteAddress(ctx, addressID, ownerID).
		Return(nil)

	err := fx.service.DeleteAddress(ctx, ownerID, addressID)
	require.NoError(t, err)
}

func TestAddressService_DeleteAddress_NotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()

	fx.addressRepo.EXPECT().
		DeleteAddress(ctx, addressID, ownerID).
		Return(repository.ErrAddressNotFound)

	err := fx.service.DeleteAddress(ctx, ownerID, addressID)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAddressService_SetDefaultAddress_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()

	existing := &entity.Address{
		ID:      addressID,
		OwnerID: ownerID,
		Label:   "Trabajo",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindAddressByIDAndOwner(ctx, addressID, ownerID).
				Return(existing, nil)

			mockAddressRepo.EXPECT().
				ClearDefaults(ctx, ownerID, addressID).
				Return(nil)

			mockAddressRepo.EXPECT().
				UpdateAddress(ctx, existing).
				Run(func(ctx context.Context, address *entity.Address) {
					assert.True(t, address.IsDefault)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.SetDefaultAddress(ctx, ownerID, addressID)
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.True(t, address.IsDefault)
}

func TestAddressService_SetDefaultAddress_AlreadyDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()

	existing := &entity.Address{
		ID:        addressID,
		OwnerID:   ownerID,
		Label:     "Casa",
		IsDefault: true,
	}

	// Re-asserting the current default is a no-op for siblings and succeeds.
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindAddressByIDAndOwner(ctx, addressID, ownerID).
				Return(existing, nil)

			mockAddressRepo.EXPECT().
				ClearDefaults(ctx, ownerID, addressID).
				Return(nil)

			mockAddressRepo.EXPECT().
				UpdateAddress(ctx, existing).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.SetDefaultAddress(ctx, ownerID, addressID)
	require.NoError(t, err)
	assert.True(t, address.IsDefault)
}

func TestAddressService_SetDefaultAddress_NotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	addressID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindAddressByIDAndOwner(ctx, addressID, ownerID).
				Return(nil, repository.ErrAddressNotFound)

			return fn(mockFactory)
		})

	address, err := fx.service.SetDefaultAddress(ctx, ownerID, addressID)
	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}
