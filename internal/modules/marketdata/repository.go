package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository persists ingested equity snapshots for audit and restart
// recovery. It is an optional collaborator: services treat a nil
// repository as "persistence unavailable".
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new market data repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "marketdata").Logger(),
	}
}

// SaveEquities stores a batch of equity snapshots.
func (r *Repository) SaveEquities(equities []EquitySnapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO equity_data (symbol, name, last_price, change_pct, volume, high_price, low_price, prev_close, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range equities {
		_, err := stmt.Exec(e.Symbol, e.Name, e.LastPrice, e.ChangePct, e.Volume,
			nullableFloat(e.High), nullableFloat(e.Low), nullableFloat(e.PrevClose), e.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot for %s: %w", e.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}

	r.log.Debug().Int("count", len(equities)).Msg("Persisted equity snapshots")
	return nil
}

// LatestEquities returns the most recently ingested snapshot per symbol.
func (r *Repository) LatestEquities() ([]EquitySnapshot, error) {
	rows, err := r.db.Query(`
		SELECT symbol, name, last_price, change_pct, volume, high_price, low_price, prev_close, ingested_at
		FROM equity_data
		WHERE ingested_at = (SELECT MAX(ingested_at) FROM equity_data)
		ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest equities: %w", err)
	}
	defer rows.Close()

	var equities []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		var high, low, prevClose sql.NullFloat64
		var ingestedAt time.Time

		if err := rows.Scan(&e.Symbol, &e.Name, &e.LastPrice, &e.ChangePct, &e.Volume,
			&high, &low, &prevClose, &ingestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan equity row: %w", err)
		}

		if high.Valid {
			e.High = &high.Float64
		}
		if low.Valid {
			e.Low = &low.Float64
		}
		if prevClose.Valid {
			e.PrevClose = &prevClose.Float64
		}
		e.Timestamp = ingestedAt

		equities = append(equities, e)
	}

	return equities, rows.Err()
}

// DeleteOlderThan removes snapshots ingested before cutoff.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM equity_data WHERE ingested_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", err)
	}
	return res.RowsAffected()
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
