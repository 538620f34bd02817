package service

import (
	"strings"
	"time"
)

// DayLayout calendar-day format used on the wire
const DayLayout = "2006-01-02"

// DateRange an inclusive UTC range; nil bounds are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange reads optional start/end days. Start is moved to 00:00:00.000 UTC
// and end to 23:59:59.999 UTC of the given day.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if s := strings.TrimSpace(start); s != "" {
		day, err := parseDay(s)
		if err != nil {
			return r, Invalid("startDate must be YYYY-MM-DD")
		}
		r.Start = &day
	}
	if e := strings.TrimSpace(end); e != "" {
		day, err := parseDay(e)
		if err != nil {
			return r, Invalid("endDate must be YYYY-MM-DD")
		}
		last := day.Add(24*time.Hour - time.Millisecond)
		r.End = &last
	}
	return r, nil
}

// parseDay accepts YYYY-MM-DD or an RFC 3339 timestamp, truncated to its UTC day.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Bounds formats the range as days for storage, empty for open bounds.
func (r DateRange) Bounds() (start, end string) {
	if r.Start != nil {
		start = r.Start.Format(DayLayout)
	}
	if r.End != nil {
		end = r.End.Format(DayLayout)
	}
	return start, end
}
