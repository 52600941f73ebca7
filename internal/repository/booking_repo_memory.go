package repository

import (
	"context"
	"sync"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/google/uuid"
)

// MemoryBookingRepository keeps bookings in process. Create and GetByID are
// serialized by a single mutex, which is as strong as serializable isolation
// for a store with no multi-record operations.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]domain.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return ErrDuplicateBooking
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
