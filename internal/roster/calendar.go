package roster

import "time"

// DateString formats a date as the external ISO representation used
// everywhere in ScheduleInput/ScheduleOutput.
func DateString(d time.Time) string {
	return d.Format("2006-01-02")
}

// MonthDays returns every calendar day in year/month, in order.
func MonthDays(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeeksOf partitions a month's days into Monday-starting weeks. Partial
// weeks at the month's boundaries are kept as-is (1-6 days); they are not
// padded with days from adjacent months.
func WeeksOf(year int, month time.Month) [][]time.Time {
	days := MonthDays(year, month)
	var weeks [][]time.Time
	var current []time.Time
	for _, d := range days {
		if len(current) > 0 && d.Weekday() == time.Monday {
			weeks = append(weeks, current)
			current = nil
		}
		current = append(current, d)
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}
