package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// BatchRunHour is when a chained batch fires, ahead of the first 06:58 Day slot.
const BatchRunHour = 5

// ResolveToday returns midnight UTC of the batch's first day.
// If dateOverride is non-empty it must be YYYY-MM-DD; otherwise today's date in UTC is used.
func ResolveToday(dateOverride string, now time.Time) (time.Time, error) {
	if dateOverride != "" {
		day, err := time.ParseInLocation(dateLayout, dateOverride, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateOverride, err)
		}
		return day, nil
	}
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NextBatchTime is when the batch after the one starting on today should run.
func NextBatchTime(today time.Time) time.Time {
	next := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, DaysPerBatch)
	return next.Add(BatchRunHour * time.Hour)
}

// FormatDate renders a day as YYYY-MM-DD.
func FormatDate(day time.Time) string {
	return day.UTC().Format(dateLayout)
}
