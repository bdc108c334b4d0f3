package utils

import "time"

// DateKeyLayout is the layout used for trading-day map keys.
const DateKeyLayout = "2006-01-02"

// DateKey returns the calendar-date key for a timestamp, in UTC.
// Intraday time-of-day is deliberately discarded: aggregation is keyed at
// trading-day granularity.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}
