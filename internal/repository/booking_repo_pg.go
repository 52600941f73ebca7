package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

const schema = `CREATE TABLE IF NOT EXISTS bookings (
	id                     UUID PRIMARY KEY,
	driving_license_number TEXT NOT NULL,
	customer_name          TEXT NOT NULL,
	age                    INT NOT NULL,
	start_date             DATE NOT NULL,
	end_date               DATE NOT NULL,
	car_segment            TEXT NOT NULL,
	rental_price           NUMERIC(10, 2) NOT NULL,
	created_at             TIMESTAMPTZ NOT NULL
)`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *PGBookingRepository {
	return &PGBookingRepository{db: db}
}

// Migrate creates the bookings table if it does not exist.
func (r *PGBookingRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate bookings: %w", err)
	}
	return nil
}

// Create inserts the booking inside a serializable transaction.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO bookings
		(id, driving_license_number, customer_name, age, start_date, end_date, car_segment, rental_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9)`,
		booking.ID.String(),
		booking.DrivingLicenseNumber,
		booking.CustomerName,
		booking.Age,
		booking.StartDate,
		booking.EndDate,
		string(booking.CarCategory),
		booking.RentalPrice.StringFixed(2),
		booking.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, driving_license_number, customer_name, age, start_date, end_date, car_segment, rental_price::text, created_at
		FROM bookings WHERE id=$1`, id.String())

	var (
		b        domain.Booking
		rawID    string
		category string
		price    string
	)
	if err := row.Scan(&rawID, &b.DrivingLicenseNumber, &b.CustomerName, &b.Age, &b.StartDate, &b.EndDate, &category, &price, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("select booking: %w", err)
	}

	var err error
	if b.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("parse booking id: %w", err)
	}
	if b.RentalPrice, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse rental price: %w", err)
	}
	b.CarCategory = domain.CarCategory(category)
	b.StartDate = domain.DateOf(b.StartDate)
	b.EndDate = domain.DateOf(b.EndDate)
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
