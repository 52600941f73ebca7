package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/Domenick1991/carbooking/internal/rules"
	"github.com/Domenick1991/carbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ConfirmBooking(ctx context.Context, input booking.ConfirmBookingInput) (uuid.UUID, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const requestJSON = `{
	"drivingLicenseNumber":"DL12345",
	"age":25,
	"startDate":"2025-11-07",
	"endDate":"2025-11-11",
	"carSegment":"MEDIUM"
}`

func expectedInput() booking.ConfirmBookingInput {
	return booking.ConfirmBookingInput{
		DrivingLicenseNumber: "DL12345",
		Age:                  25,
		StartDate:            time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC),
		CarSegment:           "MEDIUM",
	}
}

func newCreateContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte(body)))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, discardLogger())
	c, w := newCreateContext(requestJSON)

	id := uuid.New()
	mockService.On("ConfirmBooking", c.Request.Context(), expectedInput()).Return(id, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response confirmBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, id.String(), response.BookingID)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_BusinessRuleFailure(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, discardLogger())
	c, w := newCreateContext(requestJSON)

	mockService.On("ConfirmBooking", c.Request.Context(), expectedInput()).
		Return(uuid.Nil, failure.BusinessRule(rules.LicenseRejectedReason))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Booking Error", resp.Error)
	assert.Equal(t, rules.LicenseRejectedReason, resp.Message)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestBookingHandler_create_FailureStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"validation", failure.Validation("Request contains invalid fields", []failure.FieldError{{Field: "age", Message: "Customer must be at least 18 years old"}}), http.StatusBadRequest, "Validation Failed"},
		{"license not found", failure.Upstream(failure.UpstreamNotFound, "Driving license not found: DL12345", nil), http.StatusNotFound, "Upstream Error"},
		{"provider bad request", failure.Upstream(failure.UpstreamBadRequest, "Invalid car category", nil), http.StatusBadRequest, "Upstream Error"},
		{"provider outage", failure.Upstream(failure.UpstreamServerError, "Car Pricing API error: down", nil), http.StatusBadGateway, "Upstream Error"},
		{"provider unreachable", failure.Upstream(failure.UpstreamTransport, "Failed to call Car Pricing API", nil), http.StatusBadGateway, "Upstream Error"},
		{"persistence", failure.Persistence("Failed to save booking", nil), http.StatusInternalServerError, "Internal Server Error"},
		{"unclassified", assert.AnError, http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService, discardLogger())
			c, w := newCreateContext(requestJSON)
			mockService.On("ConfirmBooking", mock.Anything, mock.Anything).Return(uuid.Nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.title, resp.Error)
			assert.NotContains(t, resp.Message, assert.AnError.Error())
		})
	}
}

func TestBookingHandler_create_BadPayload(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		field string
	}{
		{"not json", `{"age":`, ""},
		{"bad start date", `{"drivingLicenseNumber":"DL12345","age":25,"startDate":"07.11.2025","endDate":"2025-11-11","carSegment":"MEDIUM"}`, "startDate"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService, discardLogger())
			c, w := newCreateContext(tc.body)

			handler.create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "Validation Failed", resp.Error)
			if tc.field != "" {
				require.Len(t, resp.FieldErrors, 1)
				assert.Equal(t, tc.field, resp.FieldErrors[0].Field)
			}
			mockService.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, discardLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	id := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id.String(), nil)

	created := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	mockService.On("GetBooking", c.Request.Context(), id).Return(&domain.Booking{
		ID:                   id,
		DrivingLicenseNumber: "DL12345",
		CustomerName:         "John Doe",
		Age:                  25,
		StartDate:            time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC),
		CarCategory:          domain.CarCategoryMedium,
		RentalPrice:          decimal.NewFromInt(100),
		CreatedAt:            created,
	}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response bookingDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, bookingDetailsResponse{
		BookingID:            id.String(),
		DrivingLicenseNumber: "DL12345",
		CustomerName:         "John Doe",
		Age:                  25,
		StartDate:            "2025-11-07",
		EndDate:              "2025-11-11",
		CarSegment:           "MEDIUM",
		RentalPrice:          "100.00",
		CreatedAt:            created,
	}, response)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, discardLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	id := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id.String(), nil)
	mockService.On("GetBooking", c.Request.Context(), id).
		Return(nil, failure.NotFound("Car Rental Booking details not found: "+id.String()))

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeError(t, w).Message, id.String())
}

func TestBookingHandler_get_InvalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, discardLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/bookings/not-a-uuid", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetBooking", mock.Anything, mock.Anything)
}
