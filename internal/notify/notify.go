package notify

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/carbooking/internal/kafka"
)

// Sender delivers booking confirmation notices. Delivery is a structured
// log entry; there is no outbound mail gateway.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.logger.InfoContext(ctx, "booking confirmation notice",
		"type", event.Type,
		"booking_id", event.BookingID,
		"customer", event.CustomerName,
		"car_segment", event.CarSegment,
		"start_date", event.StartDate,
		"end_date", event.EndDate,
		"rental_price", event.RentalPrice,
	)
	return nil
}
