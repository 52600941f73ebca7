package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a read-through cache for booking lookups. Bookings never
// change after creation, so entries only expire by TTL.
type RedisCache struct {
	client     redis.UniversalClient
	bookingTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, bookingTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		bookingTTL,
	)
}

func NewRedisCacheWithClient(client redis.UniversalClient, bookingTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, bookingTTL: bookingTTL}
}

// GetBooking returns nil, nil on a miss.
func (c *RedisCache) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	data, err := c.client.Get(ctx, bookingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeBooking(data)
}

func (c *RedisCache) SetBooking(ctx context.Context, booking *domain.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookingKey(booking.ID), payload, c.bookingTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func decodeBooking(data []byte) (*domain.Booking, error) {
	var b domain.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func bookingKey(id uuid.UUID) string {
	return "cache:booking:" + id.String()
}
