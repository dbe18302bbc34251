package termstructure

import (
	"time"

	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/observer"
)

// Implied re-anchors an upstream curve at a new reference date R:
//
//	discount(t) = upstream.discount(t) / upstream.discount(R)
//
// Forward and zero rates keep their values, only the time origin moves. The
// curve holds a handle to, not a copy of, its upstream, so upstream changes
// (including relinks) are visible without reconstruction.
type Implied struct {
	*Base
	upstream  *Handle
	reference time.Time
}

// NewImplied returns a curve implied from upstream at the given reference
// date. The handle may be empty at construction and linked later.
func NewImplied(upstream *Handle, reference time.Time) *Implied {
	ts := &Implied{upstream: upstream, reference: reference}
	ts.Base = NewBase(ts)
	observer.RegisterWith(ts, upstream)
	return ts
}

// ReferenceDate returns the re-anchoring date.
func (ts *Implied) ReferenceDate() time.Time {
	return ts.reference
}

// MaxDate delegates to the upstream curve; zero when unlinked.
func (ts *Implied) MaxDate() time.Time {
	up, ok := ts.upstream.Link()
	if !ok {
		return time.Time{}
	}
	return up.MaxDate()
}

// DayCount delegates to the upstream curve.
func (ts *Implied) DayCount() daycount.Convention {
	up, ok := ts.upstream.Link()
	if !ok {
		return daycount.Act365F
	}
	return up.DayCount()
}

// DiscountImpl rescales the upstream discount so that discount(reference) is 1.
func (ts *Implied) DiscountImpl(d time.Time) (float64, error) {
	up, ok := ts.upstream.Link()
	if !ok {
		return 0, ErrNotLinked
	}
	base, err := up.Discount(ts.reference)
	if err != nil {
		return 0, err
	}
	df, err := up.Discount(d)
	if err != nil {
		return 0, err
	}
	return df / base, nil
}
