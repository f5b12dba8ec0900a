// Package store keeps a SQLite snapshot of the last dashboard figures seen
// from the server. The snapshot exists only so the status command can show
// something when the server is unreachable; it is never read to answer a
// query the server could answer, and mutations never touch it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spesecasa/cassa/internal/api"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Snapshots provides SQLite-backed dashboard snapshots.
type Snapshots struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Snapshots, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Snapshots{db: db}, nil
}

// Close closes the snapshot database.
func (s *Snapshots) Close() error {
	return s.db.Close()
}

// SaveSummary records the latest server summary for its period.
func (s *Snapshots) SaveSummary(sum api.Summary) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO summaries
		(month, year, income, expense, balance, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sum.Period.Month, sum.Period.Year,
		sum.Income.String(), sum.Expense.String(), sum.Balance.String(), now,
	)
	return err
}

// LoadSummary returns the stored summary for a period and when it was
// fetched. The bool is false when no snapshot exists for that period.
func (s *Snapshots) LoadSummary(month, year int) (api.Summary, time.Time, bool, error) {
	var income, expense, balance, fetched string
	err := s.db.QueryRow(`SELECT income, expense, balance, fetched_at
		FROM summaries WHERE month = ? AND year = ?`, month, year).
		Scan(&income, &expense, &balance, &fetched)
	if err == sql.ErrNoRows {
		return api.Summary{}, time.Time{}, false, nil
	}
	if err != nil {
		return api.Summary{}, time.Time{}, false, err
	}

	sum := api.Summary{Period: api.Period{Month: month, Year: year}}
	if sum.Income, err = decimal.NewFromString(income); err != nil {
		return api.Summary{}, time.Time{}, false, fmt.Errorf("corrupt snapshot income: %w", err)
	}
	if sum.Expense, err = decimal.NewFromString(expense); err != nil {
		return api.Summary{}, time.Time{}, false, fmt.Errorf("corrupt snapshot expense: %w", err)
	}
	if sum.Balance, err = decimal.NewFromString(balance); err != nil {
		return api.Summary{}, time.Time{}, false, fmt.Errorf("corrupt snapshot balance: %w", err)
	}

	fetchedAt, _ := time.Parse(time.RFC3339, fetched)
	return sum, fetchedAt, true, nil
}

// SaveYears replaces the stored list of years that have data.
func (s *Snapshots) SaveYears(years []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM available_years"); err != nil {
		return err
	}
	for _, y := range years {
		if _, err := tx.Exec("INSERT INTO available_years (year) VALUES (?)", y); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadYears returns the stored years in ascending order.
func (s *Snapshots) LoadYears() ([]int, error) {
	rows, err := s.db.Query("SELECT year FROM available_years ORDER BY year")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
