// Package utils holds small date and numeric helpers shared across packages.
package utils

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DateLayout is the canonical textual date format used throughout.
const DateLayout = "2006-01-02"

// SearchDate returns the index of the first date >= target in a sorted slice,
// or len(dates) if every date is before target.
func SearchDate(dates []time.Time, target time.Time) int {
	return sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})
}

// AdjacentDates returns the two dates from a sorted date slice that bracket
// target. If target is outside the range, the nearest boundary pair is
// returned so callers can extrapolate.
func AdjacentDates(target time.Time, dates []time.Time) (time.Time, time.Time) {
	if len(dates) < 2 {
		panic("AdjacentDates: need at least 2 dates")
	}

	i := SearchDate(dates, target)
	if i <= 0 {
		return dates[0], dates[1]
	}
	if i >= len(dates) {
		return dates[len(dates)-2], dates[len(dates)-1]
	}
	return dates[i-1], dates[i]
}

// ParseDate converts YYYY-MM-DD to a UTC time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: %w", err)
	}
	return t, nil
}

// Days returns the whole and fractional days between two dates.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization
// surprises (Jan 31 + 1 month is Feb 28/29, not Mar 2/3).
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if target.Month() == t.AddDate(0, months, 0).Month() {
		return t.AddDate(0, months, 0)
	}

	d := t.AddDate(0, months, 0)
	origMonth := d.Month()
	for d.Month() == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
