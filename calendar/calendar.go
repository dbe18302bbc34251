// Package calendar provides holiday calendars and business-day arithmetic.
package calendar

import (
	"time"

	"github.com/xyuan/quantlib/utils"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// TARGET is the Trans-European Automated Real-time Gross settlement
	// Express Transfer calendar (weekends plus TARGET closing days).
	TARGET CalendarID = "TARGET"
	// None treats every day, weekends included, as a business day. Useful
	// for theoretical curves and tests.
	None CalendarID = "NONE"
)

// TimeUnit is the unit of a calendar period.
type TimeUnit int

const (
	Days TimeUnit = iota
	Weeks
	Months
	Years
)

var targetHolidays = map[string]struct{}{
	// Fixed TARGET closing days; Good Friday and Easter Monday are omitted
	// from this static set.
	"01-01": {}, // New Year's Day
	"05-01": {}, // Labour Day
	"12-25": {}, // Christmas
	"12-26": {}, // Day of Goodwill
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		_, ok := targetHolidays[t.Format("01-02")]
		return ok
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == None {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	adjusted := AdjustFollowing(cal, t)
	if adjusted.Month() != t.Month() {
		adjusted = adjusted.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, adjusted) {
			adjusted = adjusted.AddDate(0, 0, -1)
		}
	}
	return adjusted
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// Advance moves t by n units of the given period and adjusts the result with
// Modified Following, except for Days which advances business days directly.
func Advance(cal CalendarID, t time.Time, n int, unit TimeUnit) time.Time {
	switch unit {
	case Days:
		return AddBusinessDays(cal, t, n)
	case Weeks:
		return Adjust(cal, t.AddDate(0, 0, 7*n))
	case Months:
		return Adjust(cal, utils.AddMonth(t, n))
	default:
		return Adjust(cal, utils.AddMonth(t, 12*n))
	}
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	// Move to first day of next month, go back to the prior business day.
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal CalendarID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
