package solver

import "math"

// NewSecant returns a solver using the secant rule: each iteration replaces
// the current estimate by the root of the line through the last two points.
// Convergence is superlinear on smooth objectives but, unlike bisection, the
// iterates may leave the initial bracket.
func NewSecant() *Solver1D {
	return newSolver(secantStep)
}

func secantStep(e *engine, f Objective, accuracy float64) (float64, error) {
	var xl, fl, froot float64

	// Pick the endpoint with the smaller function value as the latest guess.
	if math.Abs(e.fxMin) < math.Abs(e.fxMax) {
		e.root = e.xMin
		froot = e.fxMin
		xl = e.xMax
		fl = e.fxMax
	} else {
		e.root = e.xMax
		froot = e.fxMax
		xl = e.xMin
		fl = e.fxMin
	}

	for e.evaluations <= e.maxEvaluations {
		dx := (xl - e.root) * froot / (froot - fl)
		xl = e.root
		fl = froot
		e.root += dx
		froot = f(e.root)
		e.evaluations++
		if math.Abs(dx) < accuracy || froot == 0 {
			return e.root, nil
		}
	}

	return 0, &NonConvergenceError{MaxEvaluations: e.maxEvaluations}
}
