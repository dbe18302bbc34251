package utils_test

import (
	"testing"
	"time"

	"github.com/xyuan/quantlib/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSearchDate(t *testing.T) {
	t.Parallel()

	dates := []time.Time{date(2026, 1, 1), date(2026, 6, 1), date(2027, 1, 1)}

	if i := utils.SearchDate(dates, date(2026, 6, 1)); i != 1 {
		t.Fatalf("exact match: got index %d want 1", i)
	}
	if i := utils.SearchDate(dates, date(2026, 3, 1)); i != 1 {
		t.Fatalf("between nodes: got index %d want 1", i)
	}
	if i := utils.SearchDate(dates, date(2028, 1, 1)); i != 3 {
		t.Fatalf("past the end: got index %d want 3", i)
	}
}

func TestAdjacentDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{date(2026, 1, 1), date(2026, 6, 1), date(2027, 1, 1)}

	d1, d2 := utils.AdjacentDates(date(2026, 9, 1), dates)
	if !d1.Equal(date(2026, 6, 1)) || !d2.Equal(date(2027, 1, 1)) {
		t.Fatalf("interior bracket: got [%s, %s]", d1.Format("2006-01-02"), d2.Format("2006-01-02"))
	}

	// Outside the range the nearest boundary pair comes back.
	d1, d2 = utils.AdjacentDates(date(2028, 1, 1), dates)
	if !d1.Equal(date(2026, 6, 1)) || !d2.Equal(date(2027, 1, 1)) {
		t.Fatalf("past-the-end bracket: got [%s, %s]", d1.Format("2006-01-02"), d2.Format("2006-01-02"))
	}
	d1, d2 = utils.AdjacentDates(date(2025, 1, 1), dates)
	if !d1.Equal(date(2026, 1, 1)) || !d2.Equal(date(2026, 6, 1)) {
		t.Fatalf("before-the-start bracket: got [%s, %s]", d1.Format("2006-01-02"), d2.Format("2006-01-02"))
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := utils.ParseDate("2026-08-26")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if !got.Equal(date(2026, 8, 26)) {
		t.Fatalf("ParseDate: got %s", got.Format("2006-01-02"))
	}

	if _, err := utils.ParseDate("26/08/2026"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestDays(t *testing.T) {
	t.Parallel()

	if got := utils.Days(date(2026, 1, 15), date(2026, 7, 15)); got != 181 {
		t.Fatalf("Days: got %v want 181", got)
	}
}

func TestAddMonthKeepsMonthEnd(t *testing.T) {
	t.Parallel()

	// Jan 31 + 1 month is Feb 28, not Mar 3.
	if got := utils.AddMonth(date(2026, 1, 31), 1); !got.Equal(date(2026, 2, 28)) {
		t.Fatalf("AddMonth: got %s want 2026-02-28", got.Format("2006-01-02"))
	}
	// Leap year keeps the 29th.
	if got := utils.AddMonth(date(2028, 1, 31), 1); !got.Equal(date(2028, 2, 29)) {
		t.Fatalf("AddMonth leap: got %s want 2028-02-29", got.Format("2006-01-02"))
	}
	// Plain dates are unchanged besides the month.
	if got := utils.AddMonth(date(2026, 8, 26), -12); !got.Equal(date(2025, 8, 26)) {
		t.Fatalf("AddMonth back a year: got %s want 2025-08-26", got.Format("2006-01-02"))
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	if got := utils.RoundTo(4.54671, 2); got != 4.55 {
		t.Fatalf("RoundTo: got %v want 4.55", got)
	}
	if got := utils.RoundTo(-1.005, 1); got != -1.0 {
		t.Fatalf("RoundTo negative: got %v want -1.0", got)
	}
}
