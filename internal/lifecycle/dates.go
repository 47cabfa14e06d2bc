package lifecycle

import "time"

// startOfDay truncates an instant to date granularity in its own location.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days elapsed from one instant to another,
// time of day zeroed. Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)) / (24 * time.Hour))
}

// beforeToday reports whether the given date is strictly in the past at date
// granularity relative to now.
func beforeToday(t time.Time, now time.Time) bool {
	return startOfDay(t).Before(startOfDay(now))
}
