// curvecalc bootstraps a piecewise flat-forward discount curve from market
// quotes and prints a JSON table of discount factors, zero yields and
// instantaneous forwards at the bootstrap nodes.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/xyuan/quantlib/calendar"
	"github.com/xyuan/quantlib/curve"
	"github.com/xyuan/quantlib/daycount"
	"github.com/xyuan/quantlib/marketdata"
	"github.com/xyuan/quantlib/quote"
	"github.com/xyuan/quantlib/termstructure"
	"github.com/xyuan/quantlib/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "curvecalc",
	Short: "Discount curve bootstrapping from deposit and swap quotes",
	Long: `curvecalc builds a piecewise flat-forward discount curve from a
market quote snapshot (YAML file or Postgres) and reports discount
factors, continuously-compounded zero yields and instantaneous
forward rates at each bootstrap node.`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(bootstrapCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("curvecalc %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// CurveNode is one row of the output table.
type CurveNode struct {
	Date       string  `json:"date"`
	Discount   float64 `json:"discount"`
	ZeroPct    float64 `json:"zero_pct"`
	ForwardPct float64 `json:"forward_pct"`
}

// CurveOutput is the JSON output schema.
type CurveOutput struct {
	CurveID       string      `json:"curve_id"`
	CurveDate     string      `json:"curve_date"`
	Settlement    string      `json:"settlement_date"`
	Algorithm     string      `json:"algorithm"`
	ZeroSpreadBps float64     `json:"zero_spread_bps,omitempty"`
	Nodes         []CurveNode `json:"nodes"`
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Bootstrap a discount curve and print its node table",
	RunE:  runBootstrap,
}

func init() {
	bootstrapCmd.Flags().String("file", "", "YAML quote file path")
	bootstrapCmd.Flags().String("pg-dsn", "", "Postgres DSN for the curve_quotes table")
	bootstrapCmd.Flags().String("curve", "", "curve identifier in the quote source")
	bootstrapCmd.Flags().String("date", "", "curve date (YYYY-MM-DD)")
	bootstrapCmd.Flags().Int("settlement-days", 2, "business days from curve date to settlement")
	bootstrapCmd.Flags().String("algorithm", string(curve.Brent), "root finder: bisection, secant or brent")
	bootstrapCmd.Flags().Float64("accuracy", 1e-12, "solver tolerance on discount factor nodes")
	bootstrapCmd.Flags().Float64("zero-spread-bps", 0, "parallel zero spread applied to the bootstrapped curve, in basis points")

	bootstrapCmd.MarkFlagRequired("curve")
	bootstrapCmd.MarkFlagRequired("date")
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	curveID, _ := cmd.Flags().GetString("curve")
	dateStr, _ := cmd.Flags().GetString("date")
	settlementDays, _ := cmd.Flags().GetInt("settlement-days")
	algorithm, _ := cmd.Flags().GetString("algorithm")
	accuracy, _ := cmd.Flags().GetFloat64("accuracy")
	spreadBps, _ := cmd.Flags().GetFloat64("zero-spread-bps")

	curveDate, err := utils.ParseDate(dateStr)
	if err != nil {
		return err
	}

	switch curve.Algorithm(algorithm) {
	case curve.Bisection, curve.Secant, curve.Brent:
	default:
		return fmt.Errorf("unknown algorithm %q", algorithm)
	}

	src, cleanup, err := openSource(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := src.Load(curveID, curveDate)
	if err != nil {
		return err
	}

	cal := calendar.TARGET
	settlement := calendar.AddBusinessDays(cal, curveDate, settlementDays)

	helpers, err := buildHelpers(snap, settlement, cal)
	if err != nil {
		return err
	}

	opts := curve.Options{
		Accuracy:  accuracy,
		Algorithm: curve.Algorithm(algorithm),
	}
	pw, err := curve.NewPiecewiseFlatForward(settlement, helpers, daycount.Act365F, opts)
	if err != nil {
		return err
	}

	var ts termstructure.TermStructure = pw
	if spreadBps != 0 {
		h := termstructure.NewHandle(pw)
		spread := quote.NewHandle(quote.NewSimpleQuote(spreadBps / 10000))
		ts = termstructure.NewZeroSpreaded(h, spread)
	}

	dates, _, err := pw.Nodes()
	if err != nil {
		return err
	}

	out := CurveOutput{
		CurveID:       curveID,
		CurveDate:     curveDate.Format(utils.DateLayout),
		Settlement:    settlement.Format(utils.DateLayout),
		Algorithm:     algorithm,
		ZeroSpreadBps: spreadBps,
		Nodes:         make([]CurveNode, 0, len(dates)),
	}
	for _, d := range dates {
		df, err := ts.Discount(d)
		if err != nil {
			return err
		}
		zero, err := ts.ZeroYield(d)
		if err != nil {
			return err
		}
		fwd, err := ts.InstantaneousForward(d)
		if err != nil {
			return err
		}
		out.Nodes = append(out.Nodes, CurveNode{
			Date:       d.Format(utils.DateLayout),
			Discount:   df,
			ZeroPct:    utils.RoundTo(zero*100, 9),
			ForwardPct: utils.RoundTo(fwd*100, 9),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// openSource picks the quote source from flags. Exactly one of --file and
// --pg-dsn must be set.
func openSource(cmd *cobra.Command) (marketdata.Source, func(), error) {
	file, _ := cmd.Flags().GetString("file")
	dsn, _ := cmd.Flags().GetString("pg-dsn")

	switch {
	case file != "" && dsn != "":
		return nil, nil, fmt.Errorf("--file and --pg-dsn are mutually exclusive")
	case file != "":
		src, err := marketdata.NewFileSource(file)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	case dsn != "":
		src, err := marketdata.OpenPG(dsn)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { src.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("one of --file or --pg-dsn is required")
	}
}

// buildHelpers converts a snapshot into rate helpers sorted by maturity.
// Deposits accrue Act/360, swap fixed legs 30E/360, both TARGET adjusted.
func buildHelpers(snap marketdata.Snapshot, settlement time.Time, cal calendar.CalendarID) ([]curve.RateHelper, error) {
	helpers := make([]curve.RateHelper, 0, len(snap.Deposits)+len(snap.Swaps))

	for tenor, rate := range snap.Deposits {
		n, unit, err := marketdata.ParseTenor(tenor)
		if err != nil {
			return nil, fmt.Errorf("deposit %q: %w", tenor, err)
		}
		h := quote.NewHandle(quote.NewSimpleQuote(rate))
		helpers = append(helpers, curve.NewDepositRateHelper(h, settlement, n, unit, cal, daycount.Act360))
	}

	for tenor, rate := range snap.Swaps {
		n, unit, err := marketdata.ParseTenor(tenor)
		if err != nil {
			return nil, fmt.Errorf("swap %q: %w", tenor, err)
		}
		if unit != calendar.Years {
			return nil, fmt.Errorf("swap %q: only whole-year tenors are supported", tenor)
		}
		h := quote.NewHandle(quote.NewSimpleQuote(rate))
		helpers = append(helpers, curve.NewSwapRateHelper(h, settlement, n, cal, daycount.Thirty360))
	}

	sort.Slice(helpers, func(i, j int) bool {
		return helpers[i].MaturityDate().Before(helpers[j].MaturityDate())
	})
	return helpers, nil
}
