// Package quote models single observable market values, the leaves of the
// dependency graph feeding curve construction.
package quote

import "github.com/xyuan/quantlib/observer"

// Quote is an observable scalar market value (a rate, a spread, a price).
type Quote interface {
	observer.Observable
	Value() float64
}

// Handle is a relinkable indirection to a shared Quote.
type Handle = observer.Handle[Quote]

// NewHandle returns a handle linked to q; pass nil for an empty handle.
func NewHandle(q Quote) *Handle {
	return observer.NewHandle[Quote](q)
}

// SimpleQuote is a plain mutable value. The zero value holds 0.0.
type SimpleQuote struct {
	observer.Base
	value float64
}

// NewSimpleQuote returns a quote holding value.
func NewSimpleQuote(value float64) *SimpleQuote {
	return &SimpleQuote{value: value}
}

// Value returns the current value.
func (q *SimpleQuote) Value() float64 {
	return q.value
}

// SetValue stores a new value and notifies observers. A set that does not
// change the value is a no-op.
func (q *SimpleQuote) SetValue(value float64) {
	if value == q.value {
		return
	}
	q.value = value
	q.NotifyObservers()
}
