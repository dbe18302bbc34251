package curve_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/xyuan/quantlib/calendar"
	"github.com/xyuan/quantlib/curve"
	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/quote"
	"github.com/xyuan/quantlib/termstructure"
)

type flag struct {
	count int
}

func (f *flag) OnNotify() { f.count++ }

var settlement = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

// marketHelpers builds the standard deposit+swap input set used across tests.
func marketHelpers() ([]curve.RateHelper, []*quote.SimpleQuote) {
	depositData := []struct {
		months int
		rate   float64
	}{
		{1, 0.04581},
		{3, 0.04557},
		{6, 0.04496},
		{9, 0.04490},
	}
	swapData := []struct {
		years int
		rate  float64
	}{
		{1, 0.0454},
		{5, 0.0499},
		{10, 0.0547},
	}

	var helpers []curve.RateHelper
	var quotes []*quote.SimpleQuote
	for _, d := range depositData {
		q := quote.NewSimpleQuote(d.rate)
		quotes = append(quotes, q)
		helpers = append(helpers, curve.NewDepositRateHelper(
			quote.NewHandle(q), settlement, d.months, calendar.Months,
			calendar.TARGET, daycount.Act360))
	}
	for _, s := range swapData {
		q := quote.NewSimpleQuote(s.rate)
		quotes = append(quotes, q)
		helpers = append(helpers, curve.NewSwapRateHelper(
			quote.NewHandle(q), settlement, s.years,
			calendar.TARGET, daycount.Thirty360))
	}
	return helpers, quotes
}

func TestBootstrapRepricesHelpers(t *testing.T) {
	t.Parallel()

	helpers, _ := marketHelpers()
	ts, err := curve.NewPiecewiseFlatForward(settlement, helpers, daycount.Act365F, curve.DefaultOptions)
	if err != nil {
		t.Fatalf("NewPiecewiseFlatForward error: %v", err)
	}

	if df, err := ts.Discount(settlement); err != nil || df != 1.0 {
		t.Fatalf("discount(reference) = %v (err %v), want exactly 1", df, err)
	}

	for i, h := range helpers {
		implied, err := h.ImpliedQuote(ts)
		if err != nil {
			t.Fatalf("helper %d ImpliedQuote error: %v", i, err)
		}
		if math.Abs(implied-h.Quote()) > 1e-9 {
			t.Fatalf("helper %d not repriced: implied %.12f quote %.12f", i, implied, h.Quote())
		}
	}
}

func TestBootstrapDiscountsDecrease(t *testing.T) {
	t.Parallel()

	helpers, _ := marketHelpers()
	ts, err := curve.NewPiecewiseFlatForward(settlement, helpers, daycount.Act365F, curve.DefaultOptions)
	if err != nil {
		t.Fatalf("NewPiecewiseFlatForward error: %v", err)
	}

	_, discounts, err := ts.Nodes()
	if err != nil {
		t.Fatalf("Nodes error: %v", err)
	}
	for i := 1; i < len(discounts); i++ {
		if discounts[i] >= discounts[i-1] {
			t.Fatalf("discount factors not decreasing at node %d: %.12f >= %.12f",
				i, discounts[i], discounts[i-1])
		}
	}
}

func TestBootstrapPerAlgorithm(t *testing.T) {
	t.Parallel()

	for _, algo := range []curve.Algorithm{curve.Bisection, curve.Secant, curve.Brent} {
		helpers, _ := marketHelpers()
		opts := curve.Options{Accuracy: 1e-10, MaxEvaluations: 200, Algorithm: algo}
		ts, err := curve.NewPiecewiseFlatForward(settlement, helpers, daycount.Act365F, opts)
		if err != nil {
			t.Fatalf("%s: NewPiecewiseFlatForward error: %v", algo, err)
		}
		for i, h := range helpers {
			implied, err := h.ImpliedQuote(ts)
			if err != nil {
				t.Fatalf("%s: helper %d ImpliedQuote error: %v", algo, i, err)
			}
			if math.Abs(implied-h.Quote()) > 1e-8 {
				t.Fatalf("%s: helper %d not repriced: implied %.12f quote %.12f",
					algo, i, implied, h.Quote())
			}
		}
	}
}

func TestQuoteChangeTriggersRebootstrap(t *testing.T) {
	t.Parallel()

	helpers, quotes := marketHelpers()
	ts, err := curve.NewPiecewiseFlatForward(settlement, helpers, daycount.Act365F, curve.DefaultOptions)
	if err != nil {
		t.Fatalf("NewPiecewiseFlatForward error: %v", err)
	}

	f := &flag{}
	ts.RegisterObserver(f)

	last := helpers[len(helpers)-1]
	before, err := ts.Discount(last.MaturityDate())
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}

	quotes[len(quotes)-1].SetValue(0.06)
	if f.count != 1 {
		t.Fatalf("curve observer not notified of quote change: got %d", f.count)
	}

	after, err := ts.Discount(last.MaturityDate())
	if err != nil {
		t.Fatalf("Discount error after quote change: %v", err)
	}
	if before == after {
		t.Fatalf("curve not re-bootstrapped after quote change")
	}

	implied, err := last.ImpliedQuote(ts)
	if err != nil {
		t.Fatalf("ImpliedQuote error: %v", err)
	}
	if math.Abs(implied-0.06) > 1e-9 {
		t.Fatalf("moved quote not repriced: implied %.12f want 0.06", implied)
	}
}

func TestEmptyHelperSetRejected(t *testing.T) {
	t.Parallel()

	var ce *curve.ConfigurationError
	_, err := curve.NewPiecewiseFlatForward(settlement, nil, daycount.Act365F, curve.DefaultOptions)
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError for empty helpers, got %v", err)
	}
}

func TestNonIncreasingMaturitiesRejected(t *testing.T) {
	t.Parallel()

	q := quote.NewSimpleQuote(0.05)
	h6m := curve.NewDepositRateHelper(quote.NewHandle(q), settlement, 6, calendar.Months, calendar.TARGET, daycount.Act360)
	h3m := curve.NewDepositRateHelper(quote.NewHandle(q), settlement, 3, calendar.Months, calendar.TARGET, daycount.Act360)
	dup := curve.NewDepositRateHelper(quote.NewHandle(q), settlement, 6, calendar.Months, calendar.TARGET, daycount.Act360)

	var ce *curve.ConfigurationError
	if _, err := curve.NewPiecewiseFlatForward(settlement,
		[]curve.RateHelper{h6m, h3m}, daycount.Act365F, curve.DefaultOptions); !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError for decreasing maturities, got %v", err)
	}
	if _, err := curve.NewPiecewiseFlatForward(settlement,
		[]curve.RateHelper{h6m, dup}, daycount.Act365F, curve.DefaultOptions); !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError for duplicate maturities, got %v", err)
	}
}

func TestUnsolvableHelperFailsConstruction(t *testing.T) {
	t.Parallel()

	// A deposit at -1000% cannot be matched by any positive discount factor.
	q := quote.NewSimpleQuote(-10.0)
	h := curve.NewDepositRateHelper(quote.NewHandle(q), settlement, 6, calendar.Months, calendar.TARGET, daycount.Act360)

	_, err := curve.NewPiecewiseFlatForward(settlement, []curve.RateHelper{h}, daycount.Act365F, curve.DefaultOptions)
	var be *curve.BootstrapError
	if !errors.As(err, &be) {
		t.Fatalf("expected BootstrapError, got %v", err)
	}
	if be.HelperIndex != 0 {
		t.Fatalf("expected failing helper index 0, got %d", be.HelperIndex)
	}
	if !be.Maturity.Equal(h.MaturityDate()) {
		t.Fatalf("expected failing maturity %s, got %s",
			h.MaturityDate().Format("2006-01-02"), be.Maturity.Format("2006-01-02"))
	}
}

func TestImpliedCurveOverBootstrappedBase(t *testing.T) {
	t.Parallel()

	const tolerance = 1e-10
	helpers, _ := marketHelpers()
	base, err := curve.NewPiecewiseFlatForward(settlement, helpers, daycount.Act365F, curve.DefaultOptions)
	if err != nil {
		t.Fatalf("NewPiecewiseFlatForward error: %v", err)
	}

	newReference := settlement.AddDate(3, 0, 0)
	testDate := newReference.AddDate(5, 0, 0)
	implied := termstructure.NewImplied(termstructure.NewHandle(base), newReference)

	baseAtRef, err := base.Discount(newReference)
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	baseAtTest, err := base.Discount(testDate)
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	impliedAtTest, err := implied.Discount(testDate)
	if err != nil {
		t.Fatalf("implied Discount error: %v", err)
	}

	if math.Abs(baseAtTest-baseAtRef*impliedAtTest) > tolerance {
		t.Fatalf("implied composition over bootstrapped curve: base %.12f, base(R)*implied %.12f",
			baseAtTest, baseAtRef*impliedAtTest)
	}
}
