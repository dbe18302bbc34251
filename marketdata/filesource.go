package marketdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// FileSource reads quote snapshots from a YAML file of the form:
//
//	curves:
//	  eur-ois:
//	    2026-08-26:
//	      deposits: {1M: "4.581", 6M: "4.496"}
//	      swaps:    {1Y: "4.54",  10Y: "5.47"}
//
// Rates are quoted in percent as strings and parsed exactly, so "4.581"
// becomes 0.04581 without a float round-trip through the config layer.
type FileSource struct {
	v *viper.Viper
}

// NewFileSource loads the file eagerly and fails on unreadable input.
func NewFileSource(path string) (*FileSource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("NewFileSource: %w", err)
	}
	return &FileSource{v: v}, nil
}

// Load returns the snapshot for a curve identifier and date.
func (f *FileSource) Load(curveID string, curveDate time.Time) (Snapshot, error) {
	key := fmt.Sprintf("curves.%s.%s", curveID, curveDate.Format("2006-01-02"))
	if !f.v.IsSet(key) {
		return Snapshot{}, fmt.Errorf("no snapshot for curve %q on %s", curveID, curveDate.Format("2006-01-02"))
	}

	deposits, err := parseRates(f.v.GetStringMapString(key + ".deposits"))
	if err != nil {
		return Snapshot{}, fmt.Errorf("curve %q deposits: %w", curveID, err)
	}
	swaps, err := parseRates(f.v.GetStringMapString(key + ".swaps"))
	if err != nil {
		return Snapshot{}, fmt.Errorf("curve %q swaps: %w", curveID, err)
	}

	return Snapshot{CurveDate: curveDate, Deposits: deposits, Swaps: swaps}, nil
}

var oneHundred = decimal.NewFromInt(100)

// parseRates converts percent strings to decimal rates.
func parseRates(raw map[string]string) (map[string]float64, error) {
	rates := make(map[string]float64, len(raw))
	for tenor, s := range raw {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("tenor %q: malformed rate %q: %w", tenor, s, err)
		}
		// viper lower-cases map keys; tenor labels are canonically upper.
		rates[strings.ToUpper(tenor)] = d.Div(oneHundred).InexactFloat64()
	}
	return rates, nil
}
