package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vetgonow/internal/delivery/http/validator"
	"vetgonow/internal/domain/entity"
	domainerrors "vetgonow/internal/domain/errors"
	mockUC "vetgonow/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAddressHandlerTest(t *testing.T) (*AddressHandler, *mockUC.MockAddressUsecase, *echo.Echo) {
	uc := mockUC.NewMockAddressUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewAddressHandler(uc, logger)

	e := echo.New()
	e.Validator = validator.New()

	return h, uc, e
}

func TestAddressHandler_CreateAddress_Success(t *testing.T) {
	h, uc, e := newAddressHandlerTest(t)

	ownerID := uuid.New()
	body := `{
		"label": "Casa",
		"full_address": "Av. Providencia 1234, Depto 5B",
		"latitude": -33.4489,
		"longitude": -70.6693,
		"commune": "Providencia",
		"region": "Región Metropolitana",
		"is_default": true
	}`

	req := httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", ownerID)

	created := &entity.Address{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Label:       "Casa",
		FullAddress: "Av. Providencia 1234, Depto 5B",
		IsDefault:   true,
	}

	uc.EXPECT().
		CreateAddress(req.Context(), ownerID, mock.AnythingOfType("*usecase.CreateAddressInput")).
		Return(created, nil)

	err := h.CreateAddress(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), created.ID.String())
}

func TestAddressHandler_CreateAddress_MissingCoordinates(t *testing.T) {
	h, _, e := newAddressHandlerTest(t)

	ownerID := uuid.New()
	// A zero coordinate is valid; an absent one is not.
	body := `{"label": "Casa", "full_address": "Av. Providencia 1234"}`

	req := httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", ownerID)

	err := h.CreateAddress(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddressHandler_CreateAddress_ZeroCoordinatesAccepted(t *testing.T) {
	h, uc, e := newAddressHandlerTest(t)

	ownerID := uuid.New()
	body := `{"label": "Null Island", "full_address": "Somewhere", "latitude": 0, "longitude": 0}`

	req := httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", ownerID)

	uc.EXPECT().
		CreateAddress(req.Context(), ownerID, mock.AnythingOfType("*usecase.CreateAddressInput")).
		Return(&entity.Address{ID: uuid.New(), OwnerID: ownerID}, nil)

	err := h.CreateAddress(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddressHandler_ListAddresses_Success(t *testing.T) {
	h, uc, e := newAddressHandlerTest(t)

	ownerID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/addresses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", ownerID)

	addresses := []*entity.Address{
		{ID: uuid.New(), OwnerID: ownerID, Label: "Casa", IsDefault: true},
		{ID: uuid.New(), OwnerID: ownerID, Label: "Trabajo"},
	}

	uc.EXPECT().
		ListAddresses(req.Context(), ownerID).
		Return(addresses, nil)

	err := h.ListAddresses(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Casa")
	assert.Contains(t, rec.Body.String(), "Trabajo")
}

func TestAddressHandler_ListAddresses_MissingIdentity(t *testing.T) {
	h, _, e := newAddressHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/addresses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListAddresses(c)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAddressHandler_SetDefaultAddress_Success(t *testing.T) {
	h, uc, e := newAddressHandlerTest(t)

	ownerID := uuid.New()
	addressID := uuid.New()

	req := httptest.NewRequest(http.MethodPut, "/addresses/"+addressID.String()+"/default", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(addressID.String())
	c.Set("userID", ownerID)

	uc.EXPECT().
		SetDefaultAddress(req.Context(), ownerID, addressID).
		Return(&entity.Address{ID: addressID, OwnerID: ownerID, IsDefault: true}, nil)

	err := h.SetDefaultAddress(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddressHandler_SetDefaultAddress_MalformedID(t *testing.T) {
	h, _, e := newAddressHandlerTest(t)

	req := httptest.NewRequest(http.MethodPut, "/addresses/not-a-uuid/default", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	c.Set("userID", uuid.New())

	err := h.SetDefaultAddress(c)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAddressHandler_DeleteAddress_Success(t *testing.T) {
	h, uc, e := newAddressHandlerTest(t)

	ownerID := uuid.New()
	addressID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/addresses/"+addressID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(addressID.String())
	c.Set("userID", ownerID)

	uc.EXPECT().
		DeleteAddress(req.Context(), ownerID, addressID).
		Return(nil)

	err := h.DeleteAddress(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "Address deleted successfully")
}
