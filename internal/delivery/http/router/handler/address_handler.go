// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"vetgonow/internal/delivery/http/response"
	domainerrors "vetgonow/internal/domain/errors"
	"vetgonow/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateAddressRequest is the payload for creating an address.
// Coordinates are pointers so that a legitimate 0 value is distinguishable
// from an absent field.
type CreateAddressRequest struct {
	Label       string   `json:"label" validate:"required,max=120"`
	FullAddress string   `json:"full_address" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	AccessNotes string   `json:"access_notes"`
	Commune     string   `json:"commune"`
	Region      string   `json:"region"`
	IsDefault   bool     `json:"is_default"`
}

// UpdateAddressRequest is the payload for a partial address update.
// Only the fields present in the JSON body are applied.
type UpdateAddressRequest struct {
	Label       *string  `json:"label" validate:"omitempty,max=120"`
	FullAddress *string  `json:"full_address"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	AccessNotes *string  `json:"access_notes"`
	Commune     *string  `json:"commune"`
	Region      *string  `json:"region"`
	IsDefault   *bool    `json:"is_default"`
}

// AddressHandler holds dependencies for the address book handlers.
type AddressHandler struct {
	uc     usecase.AddressUsecase
	logger *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler, injected by Fx.
func NewAddressHandler(uc usecase.AddressUsecase, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListAddresses returns every address belonging to the authenticated tutor.
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		return err
	}

	addresses, err := h.uc.ListAddresses(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, addresses, "Addresses retrieved successfully")
}

// CreateAddress handles the address creation request.
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	address, err := h.uc.CreateAddress(c.Request().Context(), ownerID, &usecase.CreateAddressInput{
		Label:       req.Label,
		FullAddress: req.FullAddress,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		AccessNotes: req.AccessNotes,
		Commune:     req.Commune,
		Region:      req.Region,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, address, "Address created successfully")
}

// UpdateAddress handles a partial update to one of the tutor's addresses.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		return err
	}
	addressID, err := addressIDFromPath(c)
	if err != nil {
		return err
	}

	var req UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	address, err := h.uc.UpdateAddress(c.Request().Context(), ownerID, addressID, &usecase.UpdateAddressInput{
		Label:       req.Label,
		FullAddress: req.FullAddress,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AccessNotes: req.AccessNotes,
		Commune:     req.Commune,
		Region:      req.Region,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Address updated successfully")
}

// DeleteAddress handles the address deletion request.
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		return err
	}
	addressID, err := addressIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAddress(c.Request().Context(), ownerID, addressID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Address deleted successfully"}, "Address deleted successfully")
}

// SetDefaultAddress marks an address as the tutor's default.
func (h *AddressHandler) SetDefaultAddress(c echo.Context) error {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		return err
	}
	addressID, err := addressIDFromPath(c)
	if err != nil {
		return err
	}

	address, err := h.uc.SetDefaultAddress(c.Request().Context(), ownerID, addressID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Default address updated successfully")
}

// ownerIDFromContext reads the authenticated user ID stored by the auth middleware.
func ownerIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrInvalidCredentials
	}
	return userID, nil
}

// addressIDFromPath parses the :id path parameter. A malformed ID is
// indistinguishable from a missing address.
func addressIDFromPath(c echo.Context) (uuid.UUID, error) {
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrAddressNotFound
	}
	return addressID, nil
}
