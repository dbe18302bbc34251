package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// PGSource loads quote snapshots from a Postgres table:
//
//	CREATE TABLE curve_quotes (
//	    curve_id   text        NOT NULL,
//	    curve_date date        NOT NULL,
//	    instrument text        NOT NULL, -- 'deposit' or 'swap'
//	    tenor      text        NOT NULL,
//	    rate       numeric     NOT NULL, -- decimal, e.g. 0.04581
//	    PRIMARY KEY (curve_id, curve_date, instrument, tenor)
//	);
type PGSource struct {
	db *sql.DB
}

// OpenPG connects to Postgres with the given DSN.
func OpenPG(dsn string) (*PGSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenPG: %w", err)
	}
	return &PGSource{db: db}, nil
}

// Close releases the connection pool.
func (p *PGSource) Close() error {
	return p.db.Close()
}

// Load returns the snapshot for a curve identifier and date.
func (p *PGSource) Load(curveID string, curveDate time.Time) (Snapshot, error) {
	rows, err := p.db.Query(
		`SELECT instrument, tenor, rate
		   FROM curve_quotes
		  WHERE curve_id = $1 AND curve_date = $2`,
		curveID, curveDate)
	if err != nil {
		return Snapshot{}, fmt.Errorf("PGSource.Load: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{
		CurveDate: curveDate,
		Deposits:  make(map[string]float64),
		Swaps:     make(map[string]float64),
	}
	for rows.Next() {
		var instrument, tenor string
		var rate float64
		if err := rows.Scan(&instrument, &tenor, &rate); err != nil {
			return Snapshot{}, fmt.Errorf("PGSource.Load: %w", err)
		}
		switch instrument {
		case "deposit":
			snap.Deposits[tenor] = rate
		case "swap":
			snap.Swaps[tenor] = rate
		default:
			return Snapshot{}, fmt.Errorf("PGSource.Load: unknown instrument %q", instrument)
		}
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("PGSource.Load: %w", err)
	}
	if len(snap.Deposits) == 0 && len(snap.Swaps) == 0 {
		return Snapshot{}, fmt.Errorf("no snapshot for curve %q on %s", curveID, curveDate.Format("2006-01-02"))
	}
	return snap, nil
}
