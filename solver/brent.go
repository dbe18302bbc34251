package solver

import "math"

// NewBrent returns a solver using Brent's rule, combining inverse quadratic
// interpolation with bisection fallback. It keeps bisection's bracketing
// guarantee while converging superlinearly on smooth objectives.
func NewBrent() *Solver1D {
	return newSolver(brentStep)
}

func brentStep(e *engine, f Objective, accuracy float64) (float64, error) {
	var d, ePrev float64

	// The engine enters with root at the bracket midpoint; move it onto one
	// side so the triplet (xMin, root, xMax) brackets the sign change.
	froot := f(e.root)
	e.evaluations++
	if froot*e.fxMin < 0 {
		e.xMax = e.xMin
		e.fxMax = e.fxMin
	} else {
		e.xMin = e.xMax
		e.fxMin = e.fxMax
	}
	d = e.root - e.xMax
	ePrev = d

	for e.evaluations <= e.maxEvaluations {
		if (froot > 0 && e.fxMax > 0) || (froot < 0 && e.fxMax < 0) {
			// Rename so the root remains bracketed between root and xMax.
			e.xMax = e.xMin
			e.fxMax = e.fxMin
			d = e.root - e.xMin
			ePrev = d
		}
		if math.Abs(e.fxMax) < math.Abs(froot) {
			e.xMin = e.root
			e.root = e.xMax
			e.xMax = e.xMin
			e.fxMin = froot
			froot = e.fxMax
			e.fxMax = e.fxMin
		}

		xAcc1 := 2*machineEps*math.Abs(e.root) + accuracy/2
		xMid := (e.xMax - e.root) / 2
		if math.Abs(xMid) <= xAcc1 || froot == 0 {
			return e.root, nil
		}

		if math.Abs(ePrev) >= xAcc1 && math.Abs(e.fxMin) > math.Abs(froot) {
			// Attempt inverse quadratic interpolation.
			var p, q, r float64
			s := froot / e.fxMin
			if e.xMin == e.xMax {
				p = 2 * xMid * s
				q = 1 - s
			} else {
				q = e.fxMin / e.fxMax
				r = froot / e.fxMax
				p = s * (2*xMid*q*(q-r) - (e.root-e.xMin)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xMid*q - math.Abs(xAcc1*q)
			min2 := math.Abs(ePrev * q)
			if 2*p < math.Min(min1, min2) {
				// Interpolation accepted.
				ePrev = d
				d = p / q
			} else {
				// Interpolation failed, fall back to bisection.
				d = xMid
				ePrev = d
			}
		} else {
			d = xMid
			ePrev = d
		}

		e.xMin = e.root
		e.fxMin = froot
		if math.Abs(d) > xAcc1 {
			e.root += d
		} else {
			e.root += math.Copysign(xAcc1, xMid)
		}
		froot = f(e.root)
		e.evaluations++
	}

	return 0, &NonConvergenceError{MaxEvaluations: e.maxEvaluations}
}

const machineEps = 2.220446049250313e-16
