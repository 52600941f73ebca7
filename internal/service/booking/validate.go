package booking

import (
	"regexp"
	"strings"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/Domenick1991/carbooking/internal/rules"
)

const minCustomerAge = 18

var licenseNumberPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{5,20}$`)

// validate checks the request shape and collects every violation.
func validate(input ConfirmBookingInput) (domain.CarCategory, error) {
	var fields []failure.FieldError
	add := func(field, msg string) {
		fields = append(fields, failure.FieldError{Field: field, Message: msg})
	}

	switch {
	case strings.TrimSpace(input.DrivingLicenseNumber) == "":
		add("drivingLicenseNumber", "licenseNumber is required")
	case !licenseNumberPattern.MatchString(input.DrivingLicenseNumber):
		add("drivingLicenseNumber", "Invalid driving license number format")
	}

	if input.Age < minCustomerAge {
		add("age", "Customer must be at least 18 years old")
	}

	if input.StartDate.IsZero() {
		add("startDate", "Start date is required")
	}
	if input.EndDate.IsZero() {
		add("endDate", "End date is required")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && !rules.IsValidRange(input.StartDate, input.EndDate) {
		if domain.DateOf(input.StartDate).After(domain.DateOf(input.EndDate)) {
			add("bookingDates", "Start date must be before or equal to end date")
		} else {
			add("bookingDates", "Reservation duration cannot exceed 30 days")
		}
	}

	var category domain.CarCategory
	if strings.TrimSpace(input.CarSegment) == "" {
		add("carSegment", "Car segment is required")
	} else if parsed, err := domain.ParseCarCategory(input.CarSegment); err != nil {
		add("carSegment", "Unknown car segment: "+input.CarSegment)
	} else {
		category = parsed
	}

	if len(fields) > 0 {
		return "", failure.Validation("Request contains invalid fields", fields)
	}
	return category, nil
}
