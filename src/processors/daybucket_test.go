package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSourceDayRollsPastMidnight(t *testing.T) {
	// 2024-01-01T16:30:00Z is already Jan 2 under the source platform's
	// UTC+8 reporting day.
	instant := time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC)
	require.Equal(t, "2024-01-02", SourceDay(instant))
}

func TestSourceDaySameDay(t *testing.T) {
	instant := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-01-01", SourceDay(instant))
}

func TestDisplayRangeBounds(t *testing.T) {
	start, end, err := DisplayRangeBounds("2024-01-01")
	require.NoError(t, err)

	// Start of day in UTC-3 is 03:00 UTC; the range spans exactly one day.
	require.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC), end)
}

func TestDisplayRangeContainsAfternoonInstant(t *testing.T) {
	// 16:30Z is 13:30 in UTC-3, still the selected calendar day, even though
	// the same instant buckets to the next source business day.
	instant := time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC)

	start, end, err := DisplayRangeBounds("2024-01-01")
	require.NoError(t, err)
	require.False(t, instant.Before(start))
	require.True(t, instant.Before(end))

	require.Equal(t, "2024-01-02", SourceDay(instant),
		"bucketing and range bounding use different fixed offsets")
}

func TestDisplayRangeBoundsInvalidDate(t *testing.T) {
	_, _, err := DisplayRangeBounds("01/01/2024")
	require.Error(t, err)

	_, _, err = DisplayRangeBounds("")
	require.Error(t, err)
}
