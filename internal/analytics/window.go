package analytics

import "time"

// DefaultWindowDays is the renewal window used by the dashboard and the insight prompt.
const DefaultWindowDays = 30

// InWindow reports whether date falls in [now, now+windowDays days], both ends inclusive.
func InWindow(date, now time.Time, windowDays int) bool {
	end := now.AddDate(0, 0, windowDays)
	return !date.Before(now) && !date.After(end)
}

// StartOfDay truncates t to midnight UTC. Renewal dates are stored as calendar
// dates, so passing StartOfDay(now) to InWindow gives calendar-date semantics.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
