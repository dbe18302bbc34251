package termstructure

import (
	"math"
	"time"

	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/observer"
	"github.com/xyuan/quantlib/quote"
)

// ForwardSpreaded shifts an upstream curve's instantaneous forward rate by an
// observable spread s; the discount factor is the integral of the shifted
// forward curve:
//
//	discount(t) = upstream.discount(t) * exp(-s * T(t))
type ForwardSpreaded struct {
	*Base
	upstream *Handle
	spread   *quote.Handle
}

// NewForwardSpreaded wraps upstream with an additive forward spread. Both
// handles may be relinked after construction.
func NewForwardSpreaded(upstream *Handle, spread *quote.Handle) *ForwardSpreaded {
	ts := &ForwardSpreaded{upstream: upstream, spread: spread}
	ts.Base = NewBase(ts)
	observer.RegisterWith(ts, upstream)
	observer.RegisterWith(ts, spread)
	return ts
}

// ReferenceDate delegates to the upstream curve; zero when unlinked.
func (ts *ForwardSpreaded) ReferenceDate() time.Time {
	up, ok := ts.upstream.Link()
	if !ok {
		return time.Time{}
	}
	return up.ReferenceDate()
}

// MaxDate delegates to the upstream curve; zero when unlinked.
func (ts *ForwardSpreaded) MaxDate() time.Time {
	up, ok := ts.upstream.Link()
	if !ok {
		return time.Time{}
	}
	return up.MaxDate()
}

// DayCount delegates to the upstream curve.
func (ts *ForwardSpreaded) DayCount() daycount.Convention {
	up, ok := ts.upstream.Link()
	if !ok {
		return daycount.Act365F
	}
	return up.DayCount()
}

// DiscountImpl integrates the spread over [reference, d] on top of the
// upstream discount.
func (ts *ForwardSpreaded) DiscountImpl(d time.Time) (float64, error) {
	up, ok := ts.upstream.Link()
	if !ok {
		return 0, ErrNotLinked
	}
	s, ok := ts.spread.Link()
	if !ok {
		return 0, ErrNotLinked
	}
	df, err := up.Discount(d)
	if err != nil {
		return 0, err
	}
	t := up.DayCount().YearFraction(up.ReferenceDate(), d)
	return df * math.Exp(-s.Value()*t), nil
}

// ZeroSpreaded shifts an upstream curve's zero yield by an observable spread
// s; the discount factor re-exponentiates the shifted zero rate:
//
//	discount(t) = exp(-(z(t) + s) * T(t))
type ZeroSpreaded struct {
	*Base
	upstream *Handle
	spread   *quote.Handle
}

// NewZeroSpreaded wraps upstream with an additive zero-yield spread.
func NewZeroSpreaded(upstream *Handle, spread *quote.Handle) *ZeroSpreaded {
	ts := &ZeroSpreaded{upstream: upstream, spread: spread}
	ts.Base = NewBase(ts)
	observer.RegisterWith(ts, upstream)
	observer.RegisterWith(ts, spread)
	return ts
}

// ReferenceDate delegates to the upstream curve; zero when unlinked.
func (ts *ZeroSpreaded) ReferenceDate() time.Time {
	up, ok := ts.upstream.Link()
	if !ok {
		return time.Time{}
	}
	return up.ReferenceDate()
}

// MaxDate delegates to the upstream curve; zero when unlinked.
func (ts *ZeroSpreaded) MaxDate() time.Time {
	up, ok := ts.upstream.Link()
	if !ok {
		return time.Time{}
	}
	return up.MaxDate()
}

// DayCount delegates to the upstream curve.
func (ts *ZeroSpreaded) DayCount() daycount.Convention {
	up, ok := ts.upstream.Link()
	if !ok {
		return daycount.Act365F
	}
	return up.DayCount()
}

// DiscountImpl re-exponentiates the shifted zero yield.
func (ts *ZeroSpreaded) DiscountImpl(d time.Time) (float64, error) {
	up, ok := ts.upstream.Link()
	if !ok {
		return 0, ErrNotLinked
	}
	s, ok := ts.spread.Link()
	if !ok {
		return 0, ErrNotLinked
	}
	z, err := up.ZeroYield(d)
	if err != nil {
		return 0, err
	}
	t := up.DayCount().YearFraction(up.ReferenceDate(), d)
	return math.Exp(-(z + s.Value()) * t), nil
}
