package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventHandler receives decoded booking events. A returned error stops the
// consumer without committing the offset, so the event is redelivered.
type EventHandler func(ctx context.Context, event BookingEvent) error

// messageReader is the part of *kafka.Reader the consumer relies on.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader messageReader
	logger *slog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads until ctx is done. Messages that are not booking_confirmed
// events or fail to decode are committed and skipped.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		event, ok, err := decodeEvent(msg.Value)
		switch {
		case err != nil:
			c.logger.Warn("skipping undecodable event", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		case !ok:
			c.logger.Debug("skipping event", "type", event.Type, "offset", msg.Offset)
		default:
			if err := handler(ctx, event); err != nil {
				return fmt.Errorf("handle event %s: %w", event.BookingID, err)
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

func decodeEvent(value []byte) (BookingEvent, bool, error) {
	var event BookingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return BookingEvent{}, false, err
	}
	return event, event.Type == EventBookingConfirmed, nil
}
