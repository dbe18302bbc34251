package termstructure

import (
	"time"

	"github.com/xyuan/quantlib/observer"
)

// EvaluationDate is an observable "today" cell. It replaces an ambient global
// evaluation date: each call site constructs its own and passes it explicitly
// to the curves that need one. Moving-reference curves observe it and
// re-derive their reference date when it changes.
type EvaluationDate struct {
	observer.Base
	date time.Time
}

// NewEvaluationDate returns a cell holding d.
func NewEvaluationDate(d time.Time) *EvaluationDate {
	return &EvaluationDate{date: d}
}

// Date returns the current evaluation date.
func (e *EvaluationDate) Date() time.Time {
	return e.date
}

// SetDate moves the evaluation date and notifies observers. Setting the same
// date again is a no-op.
func (e *EvaluationDate) SetDate(d time.Time) {
	if d.Equal(e.date) {
		return
	}
	e.date = d
	e.NotifyObservers()
}
