package daycount_test

import (
	"math"
	"testing"
	"time"

	"github.com/xyuan/quantlib/daycount"
)

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		conv daycount.Convention
		want float64
	}{
		{daycount.Act360, 181.0 / 360.0},
		{daycount.Act365F, 181.0 / 365.0},
		{daycount.Thirty360, 180.0 / 360.0},
	}

	for _, tc := range cases {
		got := tc.conv.YearFraction(start, end)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("%s: got %.12f want %.12f", tc.conv, got, tc.want)
		}
	}
}

func TestThirty360CapsMonthEnd(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	got := daycount.Thirty360.YearFraction(start, end)
	if math.Abs(got-60.0/360.0) > 1e-12 {
		t.Fatalf("30E/360 month-end: got %.12f want %.12f", got, 60.0/360.0)
	}
}
