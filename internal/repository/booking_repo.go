package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDuplicateBooking = errors.New("booking id already exists")
)

// BookingRepository owns booking records once written. Records are created
// once and never updated or deleted.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}
