package processors

import (
	"fmt"
	"time"
)

// The source platform cuts its reporting day at UTC+8; the dashboard shows
// dates to users in UTC-3. The two offsets serve different conversions and
// are never interchangeable: bucketing groups stored instants into the
// platform's business days, range bounding turns a user-selected local date
// into UTC query bounds.
var (
	sourceZone  = time.FixedZone("UTC+8", 8*60*60)
	displayZone = time.FixedZone("UTC-3", -3*60*60)
)

const dayFormat = "2006-01-02"

// SourceDay buckets an absolute instant into the source platform's calendar
// day.
func SourceDay(t time.Time) string {
	return t.In(sourceZone).Format(dayFormat)
}

// DisplayRangeBounds converts a user-selected calendar date in the display
// timezone into the UTC instant range [start-of-day, end-of-day) for querying
// stored timestamps.
func DisplayRangeBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dayFormat, date, displayZone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC(), nil
}
