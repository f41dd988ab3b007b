package ranking

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository keeps a history of computed rankings. It is an optional
// collaborator; a nil repository simply skips persistence.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a ranking repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "ranking").Logger(),
	}
}

// Save stores every ranked asset of a result under its fingerprint.
func (r *Repository) Save(result Result, fingerprint string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO asset_rankings
			(result_id, fingerprint, symbol, name, score, confidence, rank_position, recommendation, last_price, change, asset_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, a := range result.Rankings {
		_, err := stmt.Exec(result.ID, fingerprint, a.Symbol, a.Name, a.Score, a.Confidence,
			a.Rank, string(a.Recommendation), a.LastPrice, a.Change, string(a.AssetType), now)
		if err != nil {
			return fmt.Errorf("failed to insert ranking for %s: %w", a.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rankings: %w", err)
	}

	r.log.Debug().Int("count", len(result.Rankings)).Str("result_id", result.ID).Msg("Persisted rankings")
	return nil
}

// DeleteOlderThan removes ranking history created before cutoff.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM asset_rankings WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old rankings: %w", err)
	}
	return res.RowsAffected()
}
