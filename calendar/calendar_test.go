package calendar_test

import (
	"testing"
	"time"

	"github.com/xyuan/quantlib/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdjustModifiedFollowing(t *testing.T) {
	t.Parallel()

	// 2026-05-30 is a Saturday; Following would give Monday 06-01, but
	// Modified Following rolls back within the month.
	got := calendar.Adjust(calendar.TARGET, date(2026, 5, 30))
	want := date(2026, 5, 29)
	if !got.Equal(want) {
		t.Fatalf("Adjust: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdjustFollowingCrossesMonth(t *testing.T) {
	t.Parallel()

	// Following, unlike Modified Following, is allowed to leave the month.
	got := calendar.AdjustFollowing(calendar.TARGET, date(2026, 5, 30))
	want := date(2026, 6, 1)
	if !got.Equal(want) {
		t.Fatalf("AdjustFollowing: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestLastBusinessDayOfMonth(t *testing.T) {
	t.Parallel()

	// February 2027 ends on a Sunday; the last business day is Friday the 26th.
	eom := calendar.LastBusinessDayOfMonth(calendar.TARGET, date(2027, 2, 10))
	if !eom.Equal(date(2027, 2, 26)) {
		t.Fatalf("LastBusinessDayOfMonth: got %s want 2027-02-26", eom.Format("2006-01-02"))
	}

	if !calendar.IsEndOfMonth(calendar.TARGET, date(2027, 2, 26)) {
		t.Fatalf("2027-02-26 must be end of month")
	}
	if calendar.IsEndOfMonth(calendar.TARGET, date(2027, 2, 25)) {
		t.Fatalf("2027-02-25 must not be end of month")
	}
}

func TestAddBusinessDaysSkipsWeekend(t *testing.T) {
	t.Parallel()

	// Friday + 2 business days = Tuesday.
	got := calendar.AddBusinessDays(calendar.TARGET, date(2026, 8, 21), 2)
	want := date(2026, 8, 25)
	if !got.Equal(want) {
		t.Fatalf("AddBusinessDays: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestNoneCalendarCountsEveryDay(t *testing.T) {
	t.Parallel()

	if !calendar.IsBusinessDay(calendar.None, date(2026, 8, 22)) {
		t.Fatalf("None calendar must treat Saturday as a business day")
	}
	got := calendar.AddBusinessDays(calendar.None, date(2026, 8, 21), 30)
	want := date(2026, 9, 20)
	if !got.Equal(want) {
		t.Fatalf("AddBusinessDays on None: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdvanceUnits(t *testing.T) {
	t.Parallel()

	start := date(2026, 8, 26) // Wednesday

	if got := calendar.Advance(calendar.TARGET, start, 1, calendar.Weeks); !got.Equal(date(2026, 9, 2)) {
		t.Fatalf("Advance 1W: got %s", got.Format("2006-01-02"))
	}
	if got := calendar.Advance(calendar.TARGET, start, 3, calendar.Months); !got.Equal(date(2026, 11, 26)) {
		t.Fatalf("Advance 3M: got %s", got.Format("2006-01-02"))
	}
	if got := calendar.Advance(calendar.TARGET, start, 1, calendar.Years); !got.Equal(date(2027, 8, 26)) {
		t.Fatalf("Advance 1Y: got %s", got.Format("2006-01-02"))
	}

	// Month-end stays month-end: Jan 31 + 1M is Feb 28 (a Saturday in
	// 2026), which Modified Following rolls back to Friday the 27th.
	if got := calendar.Advance(calendar.TARGET, date(2026, 1, 31), 1, calendar.Months); !got.Equal(date(2026, 2, 27)) {
		t.Fatalf("Advance 1M from month-end: got %s", got.Format("2006-01-02"))
	}
}
