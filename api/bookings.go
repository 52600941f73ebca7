package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/Domenick1991/carbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	service booking.BookingUseCase
	logger  *slog.Logger
}

type confirmBookingRequest struct {
	DrivingLicenseNumber string `json:"drivingLicenseNumber"`
	Age                  int    `json:"age"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	CarSegment           string `json:"carSegment"`
}

type confirmBookingResponse struct {
	BookingID string `json:"bookingId"`
}

type bookingDetailsResponse struct {
	BookingID            string    `json:"bookingId"`
	DrivingLicenseNumber string    `json:"drivingLicenseNumber"`
	CustomerName         string    `json:"customerName"`
	Age                  int       `json:"age"`
	StartDate            string    `json:"startDate"`
	EndDate              string    `json:"endDate"`
	CarSegment           string    `json:"carSegment"`
	RentalPrice          string    `json:"rentalPrice"`
	CreatedAt            time.Time `json:"createdAt"`
}

func NewBookingHandler(service booking.BookingUseCase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req confirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, failure.Validation("Malformed request body", nil))
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("received booking request", "car_segment", req.CarSegment)
	id, err := h.service.ConfirmBooking(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("booking confirmed", "booking_id", id)
	c.JSON(http.StatusCreated, confirmBookingResponse{BookingID: id.String()})
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeError(c, failure.Validation("Invalid booking id", []failure.FieldError{{Field: "id", Message: "must be a UUID"}}))
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDetailsResponse(b))
}

func (r confirmBookingRequest) toInput() (booking.ConfirmBookingInput, error) {
	var fields []failure.FieldError
	parse := func(field, value string) time.Time {
		if value == "" {
			return time.Time{}
		}
		d, err := domain.ParseDate(value)
		if err != nil {
			fields = append(fields, failure.FieldError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
		}
		return d
	}

	input := booking.ConfirmBookingInput{
		DrivingLicenseNumber: r.DrivingLicenseNumber,
		Age:                  r.Age,
		StartDate:            parse("startDate", r.StartDate),
		EndDate:              parse("endDate", r.EndDate),
		CarSegment:           r.CarSegment,
	}
	if len(fields) > 0 {
		return input, failure.Validation("Request contains invalid fields", fields)
	}
	return input, nil
}

func toDetailsResponse(b *domain.Booking) bookingDetailsResponse {
	return bookingDetailsResponse{
		BookingID:            b.ID.String(),
		DrivingLicenseNumber: b.DrivingLicenseNumber,
		CustomerName:         b.CustomerName,
		Age:                  b.Age,
		StartDate:            b.StartDate.Format(domain.DateLayout),
		EndDate:              b.EndDate.Format(domain.DateLayout),
		CarSegment:           string(b.CarCategory),
		RentalPrice:          b.RentalPrice.StringFixed(2),
		CreatedAt:            b.CreatedAt,
	}
}
