package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/bootstrap"
	"github.com/Domenick1991/carbooking/internal/cache"
	"github.com/Domenick1991/carbooking/internal/kafka"
	"github.com/Domenick1991/carbooking/internal/obs"
	"github.com/Domenick1991/carbooking/internal/provider/license"
	"github.com/Domenick1991/carbooking/internal/provider/pricing"
	"github.com/Domenick1991/carbooking/internal/repository"
	"github.com/Domenick1991/carbooking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Log.Env, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bookingRepo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		logger.Error("init booking store", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	opts := []booking.BookingServiceOption{booking.WithLogger(logger)}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.LookupCacheTTL)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, lookups will hit the store", "error", err)
		}
		opts = append(opts, booking.WithCache(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka unavailable, booking events may be lost", "error", err)
		}
		opts = append(opts, booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic))
	}

	bookingService := booking.NewBookingService(
		bookingRepo,
		license.NewClient(cfg.Providers.LicenseBaseURL, cfg.Providers.Timeout(), logger),
		pricing.NewClient(cfg.Providers.PricingBaseURL, cfg.Providers.Timeout(), logger),
		opts...,
	)

	if err := bootstrap.Run(ctx, cfg, bookingService, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newRepository(ctx context.Context, cfg *config.Config) (repository.BookingRepository, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return repository.NewMemoryBookingRepository(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewBookingRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}
