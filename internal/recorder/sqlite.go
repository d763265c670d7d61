package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"MoonSentinel/internal/model"
)

// SQLiteRecorder persists fetched price bars to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the CLI can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite bar cache opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bar_fetches (
			symbol     TEXT NOT NULL,
			period     TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, period)
		)`,
		`CREATE TABLE IF NOT EXISTS price_bars (
			symbol      TEXT NOT NULL,
			period      TEXT NOT NULL,
			seq         INTEGER NOT NULL,
			date_unix   INTEGER NOT NULL,
			zone_name   TEXT NOT NULL,
			zone_offset INTEGER NOT NULL,
			close       TEXT NOT NULL,
			PRIMARY KEY (symbol, period, seq)
		)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) LoadBars(symbol string, period model.Period, maxAge time.Duration) ([]model.PricePoint, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fetchedAt int64
	err := r.db.QueryRow(`SELECT fetched_at FROM bar_fetches WHERE symbol = ? AND period = ?`,
		symbol, string(period)).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query fetch stamp: %w", err)
	}
	if r.now().Sub(time.Unix(0, fetchedAt)) >= maxAge {
		return nil, false, nil
	}

	rows, err := r.db.Query(`SELECT date_unix, zone_name, zone_offset, close
		FROM price_bars WHERE symbol = ? AND period = ? ORDER BY seq`,
		symbol, string(period))
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.PricePoint
	for rows.Next() {
		var (
			unix     int64
			zone     string
			offset   int
			closeStr string
		)
		if err := rows.Scan(&unix, &zone, &offset, &closeStr); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		c, err := decimal.NewFromString(closeStr)
		if err != nil {
			return nil, false, fmt.Errorf("parse close %q: %w", closeStr, err)
		}
		bars = append(bars, model.PricePoint{
			Date:  time.Unix(unix, 0).In(location(zone, offset)),
			Close: c,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(bars) == 0 {
		return nil, false, nil
	}
	return bars, true, nil
}

func (r *SQLiteRecorder) SaveBars(symbol string, period model.Period, bars []model.PricePoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM price_bars WHERE symbol = ? AND period = ?`, symbol, string(period)); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO price_bars
		(symbol, period, seq, date_unix, zone_name, zone_offset, close)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range bars {
		zone, offset := b.Date.Zone()
		if _, err := stmt.Exec(symbol, string(period), i, b.Date.Unix(),
			b.Date.Location().String(), offset, b.Close.String()); err != nil {
			return fmt.Errorf("insert bar %d (%s): %w", i, zone, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO bar_fetches (symbol, period, fetched_at) VALUES (?,?,?)
		ON CONFLICT(symbol, period) DO UPDATE SET fetched_at = excluded.fetched_at`,
		symbol, string(period), r.now().UnixNano()); err != nil {
		return fmt.Errorf("stamp fetch: %w", err)
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite bar cache")
	return r.db.Close()
}

// location restores the zone a bar was stored in. Named zones are reloaded so
// DST rules survive; unknown names fall back to the recorded offset.
func location(name string, offset int) *time.Location {
	switch name {
	case "UTC", "":
		if offset == 0 {
			return time.UTC
		}
	case "Local":
	default:
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone(name, offset)
}
