package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayAfter returns midnight of the calendar day following t.
func DayAfter(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}
