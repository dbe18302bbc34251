// Package daycount provides day-count fraction conventions used as the time
// axis of curve construction and coupon accrual.
package daycount

import (
	"time"

	"github.com/xyuan/quantlib/utils"
)

// Convention identifies a day-count convention. The set of conventions is
// closed: the constants below are the only valid values.
type Convention string

const (
	Act360    Convention = "ACT/360"
	Act365F   Convention = "ACT/365F"
	Thirty360 Convention = "30E/360" // 30E/360 ISDA (Eurobond basis)
)

// YearFraction computes the year fraction between two dates under the
// convention. A Convention outside the closed constant set reads as ACT/365F,
// the standard basis for curve time axes.
func (c Convention) YearFraction(start, end time.Time) float64 {
	switch c {
	case Act360:
		return utils.Days(start, end) / 360.0
	case Thirty360:
		// D1 and D2 are capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return utils.Days(start, end) / 365.0
	}
}
