package solver

import "math"

// NewBisection returns a solver using the bisection rule: orient the bracket
// so that the positive side is reached by adding to the current estimate,
// then halve the bracket each iteration, keeping the half that preserves the
// sign change.
func NewBisection() *Solver1D {
	return newSolver(bisectionStep)
}

func bisectionStep(e *engine, f Objective, accuracy float64) (float64, error) {
	var dx float64

	// Orient the search so that f > 0 lies at root + dx.
	if e.fxMin < 0 {
		dx = e.xMax - e.xMin
		e.root = e.xMin
	} else {
		dx = e.xMin - e.xMax
		e.root = e.xMax
	}

	for e.evaluations <= e.maxEvaluations {
		dx /= 2
		xMid := e.root + dx
		fMid := f(xMid)
		e.evaluations++
		if fMid <= 0 {
			e.root = xMid
		}
		if math.Abs(dx) < accuracy || fMid == 0 {
			return e.root, nil
		}
	}

	return 0, &NonConvergenceError{MaxEvaluations: e.maxEvaluations}
}
