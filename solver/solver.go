// Package solver provides a 1-D root-finding framework: a shared bracketing
// engine plus pluggable update rules (bisection, secant, Brent). All
// algorithms share the same contract: the returned root is within the target
// accuracy on the independent variable, and the objective is evaluated at
// most MaxEvaluations times across bracket search and iteration.
package solver

import (
	"fmt"
	"math"
)

// Objective is the scalar function whose root is sought. It is assumed pure:
// bracketing logic relies on re-evaluation returning the same value.
type Objective func(x float64) float64

// DefaultMaxEvaluations bounds the objective evaluations per solve call when
// no explicit bound is set.
const DefaultMaxEvaluations = 100

// NonConvergenceError reports that the evaluation budget was exhausted before
// the target accuracy was reached.
type NonConvergenceError struct {
	MaxEvaluations int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("maximum number of function evaluations (%d) exceeded", e.MaxEvaluations)
}

// engine holds the per-invocation bracket state shared by every algorithm.
// It is created at the start of a solve call and discarded at the end.
type engine struct {
	root, xMin, xMax float64
	fxMin, fxMax     float64
	evaluations      int
	maxEvaluations   int
}

// stepFunc runs one algorithm over an oriented bracket until convergence or
// budget exhaustion.
type stepFunc func(e *engine, f Objective, accuracy float64) (float64, error)

// Solver1D finds a root of an objective function. Construct one with
// NewBisection, NewSecant or NewBrent; the update rule is fixed at
// construction, the evaluation budget and bounds are optional knobs.
type Solver1D struct {
	impl           stepFunc
	maxEvaluations int
	lowerBound     float64
	upperBound     float64
	hasLowerBound  bool
	hasUpperBound  bool
}

func newSolver(impl stepFunc) *Solver1D {
	return &Solver1D{impl: impl, maxEvaluations: DefaultMaxEvaluations}
}

// SetMaxEvaluations replaces the per-call evaluation budget.
func (s *Solver1D) SetMaxEvaluations(n int) {
	s.maxEvaluations = n
}

// SetLowerBound clamps every trial point at xMin from below.
func (s *Solver1D) SetLowerBound(x float64) {
	s.lowerBound = x
	s.hasLowerBound = true
}

// SetUpperBound clamps every trial point at xMax from above.
func (s *Solver1D) SetUpperBound(x float64) {
	s.upperBound = x
	s.hasUpperBound = true
}

func (s *Solver1D) enforceBounds(x float64) float64 {
	if s.hasLowerBound && x < s.lowerBound {
		return s.lowerBound
	}
	if s.hasUpperBound && x > s.upperBound {
		return s.upperBound
	}
	return x
}

// Solve searches for a root starting from guess, expanding a bracket by step
// (growing geometrically) until the objective changes sign, then iterates the
// algorithm down to accuracy.
func (s *Solver1D) Solve(f Objective, accuracy, guess, step float64) (float64, error) {
	if accuracy <= 0 {
		return 0, fmt.Errorf("Solve: accuracy must be positive, got %v", accuracy)
	}
	if step == 0 {
		return 0, fmt.Errorf("Solve: step must be non-zero")
	}

	const growthFactor = 1.6
	flipflop := -1

	e := &engine{maxEvaluations: s.maxEvaluations}
	e.root = s.enforceBounds(guess)
	e.fxMax = f(e.root)
	e.evaluations = 1

	// Monotonically crossed the zero line already?
	if e.fxMax == 0 {
		return e.root, nil
	} else if e.fxMax > 0 {
		e.xMin = s.enforceBounds(e.root - step)
		e.fxMin = f(e.xMin)
		e.xMax = e.root
	} else {
		e.xMin = e.root
		e.fxMin = e.fxMax
		e.xMax = s.enforceBounds(e.root + step)
		e.fxMax = f(e.xMax)
	}
	e.evaluations = 2

	for e.evaluations <= e.maxEvaluations {
		if e.fxMin*e.fxMax <= 0 {
			if e.fxMin == 0 {
				return e.xMin, nil
			}
			if e.fxMax == 0 {
				return e.xMax, nil
			}
			e.root = (e.xMax + e.xMin) / 2
			return s.impl(e, f, accuracy)
		}
		switch {
		case math.Abs(e.fxMin) < math.Abs(e.fxMax):
			e.xMin = s.enforceBounds(e.xMin + growthFactor*(e.xMin-e.xMax))
			e.fxMin = f(e.xMin)
		case math.Abs(e.fxMin) > math.Abs(e.fxMax):
			e.xMax = s.enforceBounds(e.xMax + growthFactor*(e.xMax-e.xMin))
			e.fxMax = f(e.xMax)
		case flipflop == -1:
			e.xMin = s.enforceBounds(e.xMin + growthFactor*(e.xMin-e.xMax))
			e.fxMin = f(e.xMin)
			flipflop = 1
		default:
			e.xMax = s.enforceBounds(e.xMax + growthFactor*(e.xMax-e.xMin))
			e.fxMax = f(e.xMax)
			flipflop = -1
		}
		e.evaluations++
	}

	return 0, &NonConvergenceError{MaxEvaluations: s.maxEvaluations}
}

// SolveBracketed iterates the algorithm over a caller-supplied bracket
// [xMin, xMax] whose endpoint function values must have opposite signs.
func (s *Solver1D) SolveBracketed(f Objective, accuracy, xMin, xMax float64) (float64, error) {
	if accuracy <= 0 {
		return 0, fmt.Errorf("SolveBracketed: accuracy must be positive, got %v", accuracy)
	}
	if xMin >= xMax {
		return 0, fmt.Errorf("SolveBracketed: invalid range: xMin (%v) >= xMax (%v)", xMin, xMax)
	}

	e := &engine{maxEvaluations: s.maxEvaluations}
	e.xMin = xMin
	e.xMax = xMax
	e.fxMin = f(e.xMin)
	if e.fxMin == 0 {
		return e.xMin, nil
	}
	e.fxMax = f(e.xMax)
	if e.fxMax == 0 {
		return e.xMax, nil
	}
	e.evaluations = 2

	if e.fxMin*e.fxMax >= 0 {
		return 0, fmt.Errorf("SolveBracketed: root not bracketed: f(%v) = %v, f(%v) = %v",
			e.xMin, e.fxMin, e.xMax, e.fxMax)
	}

	e.root = (e.xMax + e.xMin) / 2
	return s.impl(e, f, accuracy)
}
