package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Data older than this is dropped by the cleanup job.
const historyRetention = 7 * 24 * time.Hour

// Refresher triggers a market data ingest cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// HistoryPruner deletes persisted rows older than a cutoff.
type HistoryPruner interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// RefreshJob re-ingests market data on a schedule so rankings never
// serve stale snapshots.
type RefreshJob struct {
	service Refresher
	timeout time.Duration
	log     zerolog.Logger
}

// NewRefreshJob creates a market data refresh job.
func NewRefreshJob(service Refresher, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		service: service,
		timeout: 2 * time.Minute,
		log:     log.With().Str("job", "market_refresh").Logger(),
	}
}

// Name implements Job.
func (j *RefreshJob) Name() string { return "market_refresh" }

// Run implements Job.
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	return j.service.Refresh(ctx)
}

// CleanupJob prunes old snapshot and ranking history from the database.
type CleanupJob struct {
	pruners []HistoryPruner
	log     zerolog.Logger
}

// NewCleanupJob creates a history cleanup job. Nil pruners are skipped.
func NewCleanupJob(log zerolog.Logger, pruners ...HistoryPruner) *CleanupJob {
	var active []HistoryPruner
	for _, p := range pruners {
		if p != nil {
			active = append(active, p)
		}
	}
	return &CleanupJob{
		pruners: active,
		log:     log.With().Str("job", "history_cleanup").Logger(),
	}
}

// Name implements Job.
func (j *CleanupJob) Name() string { return "history_cleanup" }

// Run implements Job.
func (j *CleanupJob) Run() error {
	cutoff := time.Now().Add(-historyRetention)

	var total int64
	for _, p := range j.pruners {
		deleted, err := p.DeleteOlderThan(cutoff)
		if err != nil {
			return err
		}
		total += deleted
	}

	j.log.Info().Int64("deleted", total).Time("cutoff", cutoff).Msg("Pruned history")
	return nil
}
