// Package curve bootstraps discount curves from market instruments. Each
// instrument is wrapped in a RateHelper that prices itself against a trial
// curve; the bootstrapper solves one curve node per helper so the finished
// curve reprices every quote exactly.
package curve

import (
	"fmt"
	"time"

	"github.com/xyuan/quantlib/calendar"
	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/observer"
	"github.com/xyuan/quantlib/quote"
	"github.com/xyuan/quantlib/termstructure"
	"github.com/xyuan/quantlib/utils"
)

// RateHelper represents one market instrument used as a bootstrap input: a
// quote, a maturity pinning the curve node, and the instrument's pricing
// against a candidate curve. Helpers are observable and forward their quote's
// notifications, so a curve built on them learns about market moves.
type RateHelper interface {
	observer.Observable
	MaturityDate() time.Time
	Quote() float64
	ImpliedQuote(trial termstructure.TermStructure) (float64, error)
}

// baseHelper carries the quote handle and maturity shared by all helpers and
// relays quote notifications to helper observers.
type baseHelper struct {
	observer.Base
	quote    *quote.Handle
	maturity time.Time
}

func newBaseHelper(q *quote.Handle, maturity time.Time) baseHelper {
	return baseHelper{quote: q, maturity: maturity}
}

func (h *baseHelper) OnNotify() { h.NotifyObservers() }

// MaturityDate returns the date of the curve node this helper pins.
func (h *baseHelper) MaturityDate() time.Time { return h.maturity }

// Quote returns the current market quote, or 0 through an empty handle.
func (h *baseHelper) Quote() float64 {
	q, ok := h.quote.Link()
	if !ok {
		return 0
	}
	return q.Value()
}

// DepositRateHelper wraps a money-market deposit quoted as a simple rate over
// a single period from settlement to maturity.
type DepositRateHelper struct {
	baseHelper
	settlement time.Time
	dc         daycount.Convention
}

// NewDepositRateHelper builds a deposit helper for a tenor of n units past
// settlement, adjusted on the given calendar.
func NewDepositRateHelper(rate *quote.Handle, settlement time.Time, n int, unit calendar.TimeUnit, cal calendar.CalendarID, dc daycount.Convention) *DepositRateHelper {
	maturity := calendar.Advance(cal, settlement, n, unit)
	h := &DepositRateHelper{
		baseHelper: newBaseHelper(rate, maturity),
		settlement: settlement,
		dc:         dc,
	}
	observer.RegisterWith(h, rate)
	return h
}

// ImpliedQuote returns the simple rate the trial curve assigns to the deposit
// period: (D(settlement)/D(maturity) - 1) / accrual.
func (h *DepositRateHelper) ImpliedQuote(trial termstructure.TermStructure) (float64, error) {
	dfStart, err := trial.Discount(h.settlement)
	if err != nil {
		return 0, fmt.Errorf("deposit %s: %w", h.maturity.Format(utils.DateLayout), err)
	}
	dfEnd, err := trial.Discount(h.maturity)
	if err != nil {
		return 0, fmt.Errorf("deposit %s: %w", h.maturity.Format(utils.DateLayout), err)
	}
	accrual := h.dc.YearFraction(h.settlement, h.maturity)
	return (dfStart/dfEnd - 1) / accrual, nil
}

// swapCoupon is one fixed-leg accrual period.
type swapCoupon struct {
	payDate time.Time
	accrual float64
}

// SwapRateHelper wraps a par swap quote: an annual fixed leg against a
// floating leg worth par, so the implied quote is the trial curve's par rate
// (D(start) - D(end)) / annuity.
type SwapRateHelper struct {
	baseHelper
	settlement time.Time
	coupons    []swapCoupon
}

// NewSwapRateHelper builds a swap helper for a whole-year tenor with annual
// fixed coupons. The schedule rolls backward from maturity so coupon dates
// align with the swap's end, then each date is adjusted Modified Following.
// When settlement is the last business day of its month, the schedule keeps
// the end-of-month convention: every coupon date falls on the last business
// day of its month.
func NewSwapRateHelper(rate *quote.Handle, settlement time.Time, years int, cal calendar.CalendarID, fixedDC daycount.Convention) *SwapRateHelper {
	maturityUnadj := utils.AddMonth(settlement, 12*years)

	// Unadjusted annual dates rolling backward from maturity.
	unadjusted := []time.Time{}
	current := maturityUnadj
	for current.After(settlement) {
		unadjusted = append([]time.Time{current}, unadjusted...)
		current = utils.AddMonth(current, -12)
	}
	unadjusted = append([]time.Time{settlement}, unadjusted...)

	endOfMonth := calendar.IsEndOfMonth(cal, settlement)
	adjust := func(d time.Time) time.Time {
		if endOfMonth {
			return calendar.LastBusinessDayOfMonth(cal, d)
		}
		return calendar.Adjust(cal, d)
	}

	coupons := make([]swapCoupon, 0, len(unadjusted)-1)
	for i := 0; i < len(unadjusted)-1; i++ {
		start := adjust(unadjusted[i])
		end := adjust(unadjusted[i+1])
		coupons = append(coupons, swapCoupon{
			payDate: end,
			accrual: fixedDC.YearFraction(start, end),
		})
	}

	h := &SwapRateHelper{
		baseHelper: newBaseHelper(rate, coupons[len(coupons)-1].payDate),
		settlement: settlement,
		coupons:    coupons,
	}
	observer.RegisterWith(h, rate)
	return h
}

// ImpliedQuote returns the par rate the trial curve assigns to the swap.
func (h *SwapRateHelper) ImpliedQuote(trial termstructure.TermStructure) (float64, error) {
	dfStart, err := trial.Discount(h.settlement)
	if err != nil {
		return 0, fmt.Errorf("swap %s: %w", h.maturity.Format(utils.DateLayout), err)
	}

	annuity := 0.0
	for _, cpn := range h.coupons {
		df, err := trial.Discount(cpn.payDate)
		if err != nil {
			return 0, fmt.Errorf("swap %s: %w", h.maturity.Format(utils.DateLayout), err)
		}
		annuity += cpn.accrual * df
	}

	dfEnd, err := trial.Discount(h.maturity)
	if err != nil {
		return 0, fmt.Errorf("swap %s: %w", h.maturity.Format(utils.DateLayout), err)
	}

	return (dfStart - dfEnd) / annuity, nil
}
