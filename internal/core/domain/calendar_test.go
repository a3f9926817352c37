package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekendCalendar_IsBusinessDay(t *testing.T) {
	cal := WeekendCalendar{}

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"monday", date(2024, time.March, 4), true},
		{"friday", date(2024, time.March, 8), true},
		{"saturday", date(2024, time.March, 9), false},
		{"sunday", date(2024, time.March, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cal.IsBusinessDay(tc.day))
		})
	}
}

func TestMostRecentBusinessDay(t *testing.T) {
	cal := WeekendCalendar{}

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"weekday unchanged", date(2024, time.March, 6), date(2024, time.March, 6)},
		{"saturday walks to friday", date(2024, time.March, 9), date(2024, time.March, 8)},
		{"sunday walks to friday", date(2024, time.March, 10), date(2024, time.March, 8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MostRecentBusinessDay(tc.from, cal))
		})
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	cal := WeekendCalendar{}

	// Monday's previous business day is Friday.
	got := PreviousBusinessDay(date(2024, time.March, 11), cal)
	assert.Equal(t, date(2024, time.March, 8), got)

	// Mid-week steps back one day.
	got = PreviousBusinessDay(date(2024, time.March, 7), cal)
	assert.Equal(t, date(2024, time.March, 6), got)
}
