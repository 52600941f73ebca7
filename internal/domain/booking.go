package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is a confirmed rental. It is written once and never updated.
type Booking struct {
	ID                   uuid.UUID
	DrivingLicenseNumber string
	CustomerName         string
	Age                  int
	StartDate            time.Time
	EndDate              time.Time
	CarCategory          CarCategory
	RentalPrice          decimal.Decimal
	CreatedAt            time.Time
}

// LicenseRecord is what the license provider knows about a driving license.
// Zero dates mean the provider did not return them.
type LicenseRecord struct {
	LicenseNumber string
	OwnerName     string
	IssueDate     time.Time
	ExpiryDate    time.Time
}

// RateQuote is the per-day price of a car category.
type RateQuote struct {
	Category   string
	RatePerDay decimal.Decimal
}
