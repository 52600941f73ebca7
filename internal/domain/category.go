package domain

import (
	"fmt"
	"strings"
)

type CarCategory string

const (
	CarCategorySmall      CarCategory = "SMALL"
	CarCategoryMedium     CarCategory = "MEDIUM"
	CarCategoryLarge      CarCategory = "LARGE"
	CarCategoryExtraLarge CarCategory = "EXTRA_LARGE"
)

func (c CarCategory) String() string {
	return string(c)
}

func (c CarCategory) Valid() bool {
	switch c {
	case CarCategorySmall, CarCategoryMedium, CarCategoryLarge, CarCategoryExtraLarge:
		return true
	default:
		return false
	}
}

// ParseCarCategory is case-insensitive and accepts the spelling variants
// clients send for EXTRA_LARGE.
func ParseCarCategory(s string) (CarCategory, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL":
		return CarCategorySmall, nil
	case "MEDIUM":
		return CarCategoryMedium, nil
	case "LARGE":
		return CarCategoryLarge, nil
	case "EXTRA_LARGE", "EXTRALARGE", "EXTRA-LARGE", "EXTRA LARGE", "EXTRA":
		return CarCategoryExtraLarge, nil
	default:
		return "", fmt.Errorf("unknown car category: %q", s)
	}
}
