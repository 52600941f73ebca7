// Package rules holds the pure booking policies: rental period limits,
// license eligibility and price computation.
package rules

import (
	"errors"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	MaxRentalDays = 30

	// assumed validity of a driving license, used to derive its issue point
	licenseValidityYears = 10
	minLicenseAgeYears   = 1
)

const LicenseRejectedReason = "Please provide valid License: Driving License must be at least 1 year old or Driving License has been expired"

var ErrLicenseRejected = errors.New(LicenseRejectedReason)

// IsValidRange accepts a period when both dates are present, start is not
// after end and the inclusive day count is at most MaxRentalDays.
func IsValidRange(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	if domain.DateOf(start).After(domain.DateOf(end)) {
		return false
	}
	return domain.InclusiveDays(start, end) <= MaxRentalDays
}

// CheckEligible returns ErrLicenseRejected when the license is missing,
// expired, or was issued less than a year before today. The issue point is
// derived from the expiry date and a fixed validity window; the record's own
// IssueDate is not consulted.
func CheckEligible(record *domain.LicenseRecord, today time.Time) error {
	if record == nil || record.ExpiryDate.IsZero() {
		return ErrLicenseRejected
	}
	today = domain.DateOf(today)
	expiry := domain.DateOf(record.ExpiryDate)
	if !expiry.After(today) {
		return ErrLicenseRejected
	}
	derivedIssue := domain.AddYears(expiry, -licenseValidityYears)
	if derivedIssue.After(domain.AddYears(today, -minLicenseAgeYears)) {
		return ErrLicenseRejected
	}
	return nil
}

// ComputeTotal multiplies the daily rate by the inclusive day count and
// rounds half-up to cents.
func ComputeTotal(rate decimal.Decimal, start, end time.Time) decimal.Decimal {
	days := decimal.NewFromInt(int64(domain.InclusiveDays(start, end)))
	return rate.Mul(days).Round(2)
}
