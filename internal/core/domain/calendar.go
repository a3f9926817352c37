package domain

import "time"

// Calendar decides which days the market publishes filings.
// A full market-holiday calendar is out of scope; implementations beyond
// weekend skipping can be plugged in here.
type Calendar interface {
	// IsBusinessDay reports whether the market publishes on the given day.
	IsBusinessDay(t time.Time) bool
}

// WeekendCalendar treats every weekday as a business day.
type WeekendCalendar struct{}

// IsBusinessDay returns false on Saturdays and Sundays.
func (WeekendCalendar) IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// MostRecentBusinessDay walks backwards from t (inclusive) to the nearest
// business day according to cal.
func MostRecentBusinessDay(t time.Time, cal Calendar) time.Time {
	day := t
	for !cal.IsBusinessDay(day) {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// PreviousBusinessDay returns the business day strictly before t.
func PreviousBusinessDay(t time.Time, cal Calendar) time.Time {
	return MostRecentBusinessDay(t.AddDate(0, 0, -1), cal)
}
