package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCarCategory(t *testing.T) {
	testCases := []struct {
		in   string
		want CarCategory
	}{
		{"SMALL", CarCategorySmall},
		{"medium", CarCategoryMedium},
		{" Large ", CarCategoryLarge},
		{"EXTRA_LARGE", CarCategoryExtraLarge},
		{"extralarge", CarCategoryExtraLarge},
		{"Extra-Large", CarCategoryExtraLarge},
		{"extra large", CarCategoryExtraLarge},
		{"EXTRA", CarCategoryExtraLarge},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCarCategory(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Valid())
		})
	}

	_, err := ParseCarCategory("TRUCK")
	assert.Error(t, err)
	assert.False(t, CarCategory("TRUCK").Valid())
}

func TestInclusiveDays(t *testing.T) {
	start := time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, InclusiveDays(start, start))
	assert.Equal(t, 5, InclusiveDays(start, time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, InclusiveDays(start, start.AddDate(0, 0, -1)))

	// clock part and zone are ignored
	moscow := time.FixedZone("MSK", 3*3600)
	late := time.Date(2025, 11, 11, 23, 30, 0, 0, moscow)
	assert.Equal(t, 5, InclusiveDays(start.Add(2*time.Hour), late))
}

func TestAddYears(t *testing.T) {
	leap := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), AddYears(leap, -1))
	assert.Equal(t, time.Date(2034, 2, 28, 0, 0, 0, 0, time.UTC), AddYears(leap, 10))
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), AddYears(leap, 4))
	assert.Equal(t, time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), AddYears(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC), -10))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("07/11/2025")
	assert.Error(t, err)
}
