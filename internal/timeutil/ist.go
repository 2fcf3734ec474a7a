package timeutil

import (
	"time"
)

// IST is the business timezone (UTC+5:30). Report buckets and day
// boundaries are computed in it.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseDate parses a YYYY-MM-DD value as midnight IST
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// StartOfDay returns the start of day (00:00:00) in IST for the given time
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns the end of day (23:59:59.999999999) in IST for the given time
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}

// MonthKey returns the YYYY-MM bucket of t in IST
func MonthKey(t time.Time) string {
	return t.In(IST).Format(MonthLayout)
}

// AddDays moves t by n calendar days
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

const (
	DateLayout     = "2006-01-02"
	MonthLayout    = "2006-01"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)
