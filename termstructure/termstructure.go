// Package termstructure models yield term structures: observable entities
// anchored at a reference date and queried for discount factors, zero yields
// and instantaneous forward rates. Derived quantities are cached per curve;
// the cache is cleared, never patched, whenever an upstream input (evaluation
// date, quote, handle link) notifies a change, and rebuilt lazily on the next
// query.
package termstructure

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/observer"
	"github.com/xyuan/quantlib/utils"
)

// ErrNotLinked is returned when a curve is queried through an empty handle.
var ErrNotLinked = errors.New("term structure handle is not linked")

// InvalidDateError reports a query date outside a curve's domain.
type InvalidDateError struct {
	Date          time.Time
	ReferenceDate time.Time
	MaxDate       time.Time
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date %s outside curve domain [%s, %s]",
		e.Date.Format(utils.DateLayout),
		e.ReferenceDate.Format(utils.DateLayout),
		e.MaxDate.Format(utils.DateLayout))
}

// TermStructure is an observable discount curve. Discount(reference) is 1 by
// construction; zero yields and instantaneous forwards are the standard
// continuously-compounded transforms of the discount curve.
type TermStructure interface {
	observer.Observable
	ReferenceDate() time.Time
	MaxDate() time.Time
	DayCount() daycount.Convention
	Discount(d time.Time) (float64, error)
	ZeroYield(d time.Time) (float64, error)
	InstantaneousForward(d time.Time) (float64, error)
}

// Handle is a relinkable indirection to a shared TermStructure.
type Handle = observer.Handle[TermStructure]

// NewHandle returns a handle linked to ts; pass nil for an empty handle.
func NewHandle(ts TermStructure) *Handle {
	return observer.NewHandle[TermStructure](ts)
}

// Provider is the curve-specific half of a term structure: domain bounds,
// time basis, and the raw (uncached) discount computation.
type Provider interface {
	ReferenceDate() time.Time
	MaxDate() time.Time
	DayCount() daycount.Convention
	DiscountImpl(d time.Time) (float64, error)
}

// Base supplies caching, domain checks and the discount-derived transforms on
// top of a Provider. Concrete curves embed *Base and pass themselves as the
// provider. Base is also the curve's observable identity: notifying it clears
// the cache of every downstream curve.
type Base struct {
	observer.Base
	provider Provider
	cache    map[time.Time]float64
}

// NewBase wires a Base to its provider.
func NewBase(p Provider) *Base {
	return &Base{provider: p, cache: make(map[time.Time]float64)}
}

// OnNotify drops every cached value and cascades the notification. Values
// are recomputed lazily on the next query.
func (b *Base) OnNotify() {
	b.Invalidate()
	b.NotifyObservers()
}

// Invalidate clears the discount cache.
func (b *Base) Invalidate() {
	clear(b.cache)
}

func (b *Base) checkRange(d time.Time) error {
	ref := b.provider.ReferenceDate()
	max := b.provider.MaxDate()
	if max.IsZero() {
		return ErrNotLinked
	}
	if d.Before(ref) || d.After(max) {
		return &InvalidDateError{Date: d, ReferenceDate: ref, MaxDate: max}
	}
	return nil
}

// Discount returns the discount factor at d, caching the result.
func (b *Base) Discount(d time.Time) (float64, error) {
	if err := b.checkRange(d); err != nil {
		return 0, err
	}
	if df, ok := b.cache[d]; ok {
		return df, nil
	}
	df, err := b.provider.DiscountImpl(d)
	if err != nil {
		return 0, err
	}
	b.cache[d] = df
	return df, nil
}

// ZeroYield returns the continuously-compounded zero rate at d, defined as
// -ln(discount(d)) / T(d). At the reference date it degenerates to the
// instantaneous forward.
func (b *Base) ZeroYield(d time.Time) (float64, error) {
	if err := b.checkRange(d); err != nil {
		return 0, err
	}
	t := b.provider.DayCount().YearFraction(b.provider.ReferenceDate(), d)
	if t <= 0 {
		return b.InstantaneousForward(d)
	}
	df, err := b.Discount(d)
	if err != nil {
		return 0, err
	}
	return -math.Log(df) / t, nil
}

// InstantaneousForward returns the negative logarithmic derivative of the
// discount curve at d, approximated by a one-day centered finite difference
// (one-sided at the domain boundaries).
func (b *Base) InstantaneousForward(d time.Time) (float64, error) {
	if err := b.checkRange(d); err != nil {
		return 0, err
	}
	ref := b.provider.ReferenceDate()
	max := b.provider.MaxDate()

	d1 := d.AddDate(0, 0, -1)
	if d1.Before(ref) {
		d1 = ref
	}
	d2 := d.AddDate(0, 0, 1)
	if d2.After(max) {
		d2 = max
	}
	if !d2.After(d1) {
		return 0, fmt.Errorf("InstantaneousForward: degenerate curve domain at %s", d.Format(utils.DateLayout))
	}

	df1, err := b.Discount(d1)
	if err != nil {
		return 0, err
	}
	df2, err := b.Discount(d2)
	if err != nil {
		return 0, err
	}
	dt := b.provider.DayCount().YearFraction(d1, d2)
	return math.Log(df1/df2) / dt, nil
}
