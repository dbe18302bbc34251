// Package marketdata supplies quote snapshots for curve construction. A
// Source returns, for one curve and one curve date, the deposit and swap par
// quotes keyed by tenor label. Sources exist for static maps (testing), YAML
// files and Postgres.
package marketdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xyuan/quantlib/calendar"
)

// Snapshot is one curve date's market quotes. Rates are decimals (0.0454,
// not 4.54); tenor keys are labels like "1M", "6M", "10Y".
type Snapshot struct {
	CurveDate time.Time
	Deposits  map[string]float64
	Swaps     map[string]float64
}

// Source loads the snapshot for a curve identifier and date.
type Source interface {
	Load(curveID string, curveDate time.Time) (Snapshot, error)
}

// ParseTenor converts labels like "1W", "3M", "10Y" to a count and unit.
func ParseTenor(tenor string) (int, calendar.TimeUnit, error) {
	tenor = strings.TrimSpace(strings.ToUpper(tenor))
	if len(tenor) < 2 {
		return 0, 0, fmt.Errorf("ParseTenor: malformed tenor %q", tenor)
	}

	n, err := strconv.Atoi(tenor[:len(tenor)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("ParseTenor: malformed tenor %q: %w", tenor, err)
	}

	switch tenor[len(tenor)-1] {
	case 'D':
		return n, calendar.Days, nil
	case 'W':
		return n, calendar.Weeks, nil
	case 'M':
		return n, calendar.Months, nil
	case 'Y':
		return n, calendar.Years, nil
	default:
		return 0, 0, fmt.Errorf("ParseTenor: unknown unit in tenor %q", tenor)
	}
}

// MapSource is a static in-memory Source for development and testing.
type MapSource struct {
	snapshots map[string]Snapshot // key: curveID|date
}

// NewMapSource returns an empty map-backed source.
func NewMapSource() *MapSource {
	return &MapSource{snapshots: make(map[string]Snapshot)}
}

// Put stores a snapshot for a curve identifier.
func (m *MapSource) Put(curveID string, snap Snapshot) {
	m.snapshots[mapKey(curveID, snap.CurveDate)] = snap
}

// Load returns the stored snapshot, or an error when none exists.
func (m *MapSource) Load(curveID string, curveDate time.Time) (Snapshot, error) {
	snap, ok := m.snapshots[mapKey(curveID, curveDate)]
	if !ok {
		return Snapshot{}, fmt.Errorf("no snapshot for curve %q on %s", curveID, curveDate.Format("2006-01-02"))
	}
	return snap, nil
}

func mapKey(curveID string, d time.Time) string {
	return curveID + "|" + d.Format("2006-01-02")
}
