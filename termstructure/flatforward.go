package termstructure

import (
	"math"
	"time"

	"github.com/xyuan/quantlib/calendar"
	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/observer"
	"github.com/xyuan/quantlib/quote"
)

// FlatForward is a curve with a single constant continuously-compounded
// forward rate. The rate is held in a quote handle, so moving the underlying
// quote reprices every dependent curve.
//
// The reference date is either fixed at construction or derived from an
// EvaluationDate cell plus a settlement lag, in which case moving the
// evaluation date slides the whole curve.
type FlatForward struct {
	*Base
	rate *quote.Handle
	dc   daycount.Convention

	// fixed-reference flavor
	reference time.Time

	// moving-reference flavor
	eval           *EvaluationDate
	settlementDays int
	cal            calendar.CalendarID
}

// NewFlatForward returns a flat curve anchored at a fixed reference date.
func NewFlatForward(reference time.Time, rate float64, dc daycount.Convention) *FlatForward {
	return NewFlatForwardFromQuote(reference, quote.NewHandle(quote.NewSimpleQuote(rate)), dc)
}

// NewFlatForwardFromQuote is NewFlatForward with an observable rate.
func NewFlatForwardFromQuote(reference time.Time, rate *quote.Handle, dc daycount.Convention) *FlatForward {
	ff := &FlatForward{rate: rate, dc: dc, reference: reference}
	ff.Base = NewBase(ff)
	observer.RegisterWith(ff, rate)
	return ff
}

// NewFlatForwardMoving returns a flat curve whose reference date floats at
// settlementDays business days after the evaluation date. The caller owns the
// EvaluationDate cell.
func NewFlatForwardMoving(eval *EvaluationDate, settlementDays int, cal calendar.CalendarID, rate float64, dc daycount.Convention) *FlatForward {
	ff := &FlatForward{
		rate:           quote.NewHandle(quote.NewSimpleQuote(rate)),
		dc:             dc,
		eval:           eval,
		settlementDays: settlementDays,
		cal:            cal,
	}
	ff.Base = NewBase(ff)
	observer.RegisterWith(ff, eval)
	observer.RegisterWith(ff, ff.rate)
	return ff
}

// ReferenceDate returns the date at which the discount factor is 1.
func (ff *FlatForward) ReferenceDate() time.Time {
	if ff.eval != nil {
		return calendar.AddBusinessDays(ff.cal, ff.eval.Date(), ff.settlementDays)
	}
	return ff.reference
}

// MaxDate bounds the curve domain at 100 years past the reference date.
func (ff *FlatForward) MaxDate() time.Time {
	return ff.ReferenceDate().AddDate(100, 0, 0)
}

// DayCount returns the curve's time basis.
func (ff *FlatForward) DayCount() daycount.Convention {
	return ff.dc
}

// DiscountImpl computes exp(-r * T(d)).
func (ff *FlatForward) DiscountImpl(d time.Time) (float64, error) {
	q, ok := ff.rate.Link()
	if !ok {
		return 0, ErrNotLinked
	}
	t := ff.dc.YearFraction(ff.ReferenceDate(), d)
	return math.Exp(-q.Value() * t), nil
}
