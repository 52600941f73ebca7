package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/Domenick1991/carbooking/internal/kafka"
	"github.com/Domenick1991/carbooking/internal/obs"
	"github.com/Domenick1991/carbooking/internal/repository"
	"github.com/Domenick1991/carbooking/internal/rules"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (uuid.UUID, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type LicenseProvider interface {
	GetLicense(ctx context.Context, number string) (*domain.LicenseRecord, error)
}

type RateProvider interface {
	GetRate(ctx context.Context, category string) (*domain.RateQuote, error)
}

type Cache interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	SetBooking(ctx context.Context, booking *domain.Booking) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService confirms bookings and serves lookups. It keeps no state
// between requests; everything per request lives on the stack.
type BookingService struct {
	bookings    repository.BookingRepository
	licenses    LicenseProvider
	rates       RateProvider
	cache       Cache
	producer    Producer
	eventsTopic string
	now         func() time.Time
	newID       func() uuid.UUID
	logger      *slog.Logger
}

// ConfirmBookingInput carries the request as received. Zero dates and an
// empty CarSegment mean the field was absent.
type ConfirmBookingInput struct {
	DrivingLicenseNumber string
	Age                  int
	StartDate            time.Time
	EndDate              time.Time
	CarSegment           string
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) BookingServiceOption {
	return func(s *BookingService) {
		s.newID = newID
	}
}

func WithLogger(logger *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	licenses LicenseProvider,
	rates RateProvider,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		licenses: licenses,
		rates:    rates,
		now:      time.Now,
		newID:    uuid.New,
		logger:   obs.Discard(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ConfirmBooking validates the request, checks the license, prices the
// rental and persists it. Steps run strictly in order and nothing is written
// unless every earlier step succeeded. Errors are *failure.Failure.
func (s *BookingService) ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (uuid.UUID, error) {
	category, err := validate(input)
	if err != nil {
		s.logger.WarnContext(ctx, "booking request rejected", "error", err)
		return uuid.Nil, err
	}

	masked := obs.MaskLicense(input.DrivingLicenseNumber)
	s.logger.InfoContext(ctx, "confirming booking", "license", masked, "car_segment", category)

	license, err := s.licenses.GetLicense(ctx, input.DrivingLicenseNumber)
	if err != nil {
		return uuid.Nil, upstreamFailure(err, "Failed to call Driving License API")
	}
	if err := rules.CheckEligible(license, s.now()); err != nil {
		s.logger.WarnContext(ctx, "license validation failed", "license", masked)
		return uuid.Nil, failure.BusinessRule(err.Error())
	}
	s.logger.InfoContext(ctx, "license validated", "license", masked)

	quote, err := s.rates.GetRate(ctx, category.String())
	if err != nil {
		return uuid.Nil, upstreamFailure(err, "Failed to call Car Pricing API")
	}

	total := rules.ComputeTotal(quote.RatePerDay, input.StartDate, input.EndDate)
	s.logger.DebugContext(ctx, "total price calculated", "rate", quote.RatePerDay.String(), "total", total.StringFixed(2))

	booking := &domain.Booking{
		ID:                   s.newID(),
		DrivingLicenseNumber: input.DrivingLicenseNumber,
		CustomerName:         license.OwnerName,
		Age:                  input.Age,
		StartDate:            domain.DateOf(input.StartDate),
		EndDate:              domain.DateOf(input.EndDate),
		CarCategory:          category,
		RentalPrice:          total,
		CreatedAt:            s.now().UTC(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		s.logger.ErrorContext(ctx, "save booking", "error", err)
		return uuid.Nil, failure.Persistence("Failed to save booking", err)
	}
	s.logger.InfoContext(ctx, "booking saved", "booking_id", booking.ID)

	if err := s.publish(ctx, booking); err != nil {
		s.logger.WarnContext(ctx, "publish booking event", "booking_id", booking.ID, "error", err)
	}
	return booking.ID, nil
}

// GetBooking is a point lookup. Unknown identifiers yield a NotFound failure.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBooking(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "booking cache read", "booking_id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, failure.NotFound("Car Rental Booking details not found: " + id.String())
		}
		s.logger.ErrorContext(ctx, "load booking", "booking_id", id, "error", err)
		return nil, failure.Persistence("Failed to load booking", err)
	}

	if s.cache != nil {
		if err := s.cache.SetBooking(ctx, booking); err != nil {
			s.logger.WarnContext(ctx, "booking cache write", "booking_id", id, "error", err)
		}
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, booking *domain.Booking) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(kafka.EventBookingConfirmed, booking)
	return s.producer.Publish(ctx, s.eventsTopic, booking.ID.String(), event)
}

// upstreamFailure keeps provider failures as classified by the provider and
// treats anything unclassified as a transport fault.
func upstreamFailure(err error, fallback string) error {
	if f, ok := failure.As(err); ok && f.Kind == failure.KindUpstream {
		return f
	}
	return failure.Upstream(failure.UpstreamTransport, fallback, err)
}

var _ BookingUseCase = (*BookingService)(nil)
