package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/observer"
	"github.com/xyuan/quantlib/solver"
	"github.com/xyuan/quantlib/termstructure"
	"github.com/xyuan/quantlib/utils"
)

// Algorithm selects the root finder used per bootstrap node.
type Algorithm string

const (
	Bisection Algorithm = "bisection"
	Secant    Algorithm = "secant"
	Brent     Algorithm = "brent"
)

// Options carries the solver knobs for curve construction. The zero value is
// usable: unset fields fall back to DefaultOptions.
type Options struct {
	// Accuracy is the solver tolerance on the discount factor node.
	Accuracy float64
	// MaxEvaluations bounds the objective evaluations per node.
	MaxEvaluations int
	// Algorithm picks the root finder; Brent by default.
	Algorithm Algorithm
}

// DefaultOptions are the documented construction defaults.
var DefaultOptions = Options{
	Accuracy:       1e-12,
	MaxEvaluations: solver.DefaultMaxEvaluations,
	Algorithm:      Brent,
}

func (o Options) withDefaults() Options {
	if o.Accuracy <= 0 {
		o.Accuracy = DefaultOptions.Accuracy
	}
	if o.MaxEvaluations <= 0 {
		o.MaxEvaluations = DefaultOptions.MaxEvaluations
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultOptions.Algorithm
	}
	return o
}

func (o Options) newSolver() *solver.Solver1D {
	var s *solver.Solver1D
	switch o.Algorithm {
	case Bisection:
		s = solver.NewBisection()
	case Secant:
		s = solver.NewSecant()
	default:
		s = solver.NewBrent()
	}
	s.SetMaxEvaluations(o.MaxEvaluations)
	return s
}

// minDiscount floors trial discount factors to keep the objective defined.
const minDiscount = 1e-12

// maxDiscount caps trial discount factors; values above it imply rates below
// any market environment worth bootstrapping.
const maxDiscount = 10.0

// ConfigurationError reports malformed bootstrapper input, detected before
// any solving begins.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid bootstrap input: " + e.Reason
}

// BootstrapError reports that a specific helper's node could not be solved.
// The whole construction fails; partial curves are never returned.
type BootstrapError struct {
	HelperIndex int
	Maturity    time.Time
	Err         error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap failed at helper %d (maturity %s): %v",
		e.HelperIndex, e.Maturity.Format(utils.DateLayout), e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// PiecewiseFlatForward is a discount curve bootstrapped node by node from
// rate helpers, flat-forward (log-linear in the discount factor) between
// nodes. It observes its helpers' quotes: a quote move invalidates the curve
// and the next query re-runs the bootstrap.
type PiecewiseFlatForward struct {
	*termstructure.Base
	reference time.Time
	dc        daycount.Convention
	helpers   []RateHelper
	opts      Options

	dates          []time.Time
	discounts      []float64
	needsBootstrap bool
}

// NewPiecewiseFlatForward validates the helpers, bootstraps the curve and
// returns it. Helper maturities must be strictly increasing and after the
// reference date. Construction is all-or-nothing: any node failure aborts it.
func NewPiecewiseFlatForward(reference time.Time, helpers []RateHelper, dc daycount.Convention, opts Options) (*PiecewiseFlatForward, error) {
	if len(helpers) == 0 {
		return nil, &ConfigurationError{Reason: "no rate helpers"}
	}
	prev := reference
	for i, h := range helpers {
		m := h.MaturityDate()
		if !m.After(prev) {
			return nil, &ConfigurationError{Reason: fmt.Sprintf(
				"helper %d maturity %s not after %s: maturities must be strictly increasing",
				i, m.Format(utils.DateLayout), prev.Format(utils.DateLayout))}
		}
		prev = m
	}

	c := &PiecewiseFlatForward{
		reference:      reference,
		dc:             dc,
		helpers:        helpers,
		opts:           opts.withDefaults(),
		needsBootstrap: true,
	}
	c.Base = termstructure.NewBase(c)
	for _, h := range helpers {
		observer.RegisterWith(c, h)
	}

	if err := c.bootstrap(); err != nil {
		return nil, err
	}
	return c, nil
}

// OnNotify marks the curve stale: the cache is dropped and the next query
// re-runs the bootstrap against the moved quotes.
func (c *PiecewiseFlatForward) OnNotify() {
	c.needsBootstrap = true
	c.Invalidate()
	c.NotifyObservers()
}

// ReferenceDate returns the curve anchor, where the discount factor is 1.
func (c *PiecewiseFlatForward) ReferenceDate() time.Time { return c.reference }

// MaxDate returns the last helper's maturity.
func (c *PiecewiseFlatForward) MaxDate() time.Time {
	return c.helpers[len(c.helpers)-1].MaturityDate()
}

// DayCount returns the curve's time basis.
func (c *PiecewiseFlatForward) DayCount() daycount.Convention { return c.dc }

// Nodes returns copies of the bootstrapped node dates and discount factors,
// re-running the bootstrap first if the curve is stale.
func (c *PiecewiseFlatForward) Nodes() ([]time.Time, []float64, error) {
	if c.needsBootstrap {
		if err := c.bootstrap(); err != nil {
			return nil, nil, err
		}
	}
	dates := make([]time.Time, len(c.dates))
	copy(dates, c.dates)
	discounts := make([]float64, len(c.discounts))
	copy(discounts, c.discounts)
	return dates, discounts, nil
}

// DiscountImpl interpolates the bootstrapped nodes log-linearly.
func (c *PiecewiseFlatForward) DiscountImpl(d time.Time) (float64, error) {
	if c.needsBootstrap {
		if err := c.bootstrap(); err != nil {
			return 0, err
		}
	}

	i := utils.SearchDate(c.dates, d)
	if i < len(c.dates) && c.dates[i].Equal(d) {
		return c.discounts[i], nil
	}

	d1, d2 := utils.AdjacentDates(d, c.dates)
	i1 := utils.SearchDate(c.dates, d1)
	i2 := utils.SearchDate(c.dates, d2)
	df1, df2 := c.discounts[i1], c.discounts[i2]

	t1 := c.dc.YearFraction(c.reference, d1)
	t2 := c.dc.YearFraction(c.reference, d2)
	tTarget := c.dc.YearFraction(c.reference, d)
	if t2 == t1 {
		return df1, nil
	}
	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-forwardRate*(tTarget-t1)), nil
}

// bootstrap solves one node per helper in maturity order. Each objective
// evaluation writes the trial value into the node being solved and reprices
// the helper against the partially built curve; flat-forward interpolation
// keeps later nodes out of the picture, so a single 1-D solve per node
// suffices and earlier nodes are never revisited.
func (c *PiecewiseFlatForward) bootstrap() error {
	c.needsBootstrap = false

	c.dates = []time.Time{c.reference}
	c.discounts = []float64{1.0}

	for i, h := range c.helpers {
		maturity := h.MaturityDate()
		prev := c.discounts[len(c.discounts)-1]

		c.dates = append(c.dates, maturity)
		c.discounts = append(c.discounts, prev)
		node := len(c.discounts) - 1

		var objErr error
		objective := func(x float64) float64 {
			c.discounts[node] = x
			c.Invalidate()
			implied, err := h.ImpliedQuote(c)
			if err != nil {
				if objErr == nil {
					objErr = err
				}
				return math.NaN()
			}
			return implied - h.Quote()
		}

		s := c.opts.newSolver()
		s.SetLowerBound(minDiscount)
		s.SetUpperBound(maxDiscount)

		step := prev / 10
		root, err := s.Solve(objective, c.opts.Accuracy, prev, step)
		if objErr != nil {
			c.needsBootstrap = true
			return &BootstrapError{HelperIndex: i, Maturity: maturity, Err: objErr}
		}
		if err != nil {
			c.needsBootstrap = true
			return &BootstrapError{HelperIndex: i, Maturity: maturity, Err: err}
		}

		c.discounts[node] = root
		c.Invalidate()
	}

	return nil
}
