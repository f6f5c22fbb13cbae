package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDateRange parses a yyyy-mm-dd pair into a half-open window: start
// of the first day up to (exclusive) the start of the day after the last.
// The end date is inclusive from the caller's point of view.
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", endDate)
	}
	end = end.AddDate(0, 0, 1)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
	}
	return start, end, nil
}
