package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chimera/internal/cache"
	"chimera/internal/modules/marketdata"
)

// Funds join an ALL-type ranking only for conservative profiles or
// investments above this amount.
const fundInclusionAmount = 100_000

// SnapshotProvider supplies the current market data batch.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (marketdata.Batch, error)
}

// Service orchestrates provider, engine and cache into the public
// ranking operation. Rank never fails outward: every internal failure
// degrades to a synthesized result.
type Service struct {
	provider SnapshotProvider
	engine   *Engine
	store    cache.Store
	repo     *Repository // optional
	source   Source
	log      zerolog.Logger
}

// NewService creates the ranking orchestrator. The repository may be
// nil; persistence is best-effort either way. liveQuotes selects the
// clamping policy matching the provider's equity feed.
func NewService(provider SnapshotProvider, engine *Engine, store cache.Store, repo *Repository, liveQuotes bool, log zerolog.Logger) *Service {
	source := SourceEquityTable
	if liveQuotes {
		source = SourceLive
	}
	return &Service{
		provider: provider,
		engine:   engine,
		store:    store,
		repo:     repo,
		source:   source,
		log:      log.With().Str("component", "ranking").Logger(),
	}
}

// Rank computes the ranked asset list for a profile.
func (s *Service) Rank(ctx context.Context, profile Profile) (result Result) {
	start := time.Now()
	fingerprint := profile.Fingerprint()

	if cached, ok := s.store.Get(fingerprint); ok {
		if r, ok := cached.(Result); ok {
			r.Metadata.CacheHit = true
			r.Metadata.DataSource = "Cache + " + r.Metadata.DataSource
			r.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()
			s.log.Debug().Str("fingerprint", fingerprint).Msg("Returning cached rankings")
			return r
		}
	}

	// Anything that blows up between here and the response becomes a
	// fallback result; the caller never sees an error.
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("Ranking computation failed, using fallback")
			result = s.fallbackResult(profile, start)
		}
	}()

	batch, err := s.provider.Snapshot(ctx)
	if err != nil || batch.Empty() || !batch.Fresh(time.Now()) {
		if err != nil {
			s.log.Warn().Err(err).Msg("Market data unavailable, synthesizing rankings")
		}
		result = s.mockResult(profile, start)
		s.persist(result, fingerprint)
		return result
	}

	rankings, total := s.scoreBatch(batch, profile)
	if len(rankings) == 0 {
		result = s.mockResult(profile, start)
		s.persist(result, fingerprint)
		return result
	}

	// Rank assignment needs the fully sorted set; ties keep their
	// original relative order.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	if len(rankings) > profile.MaxResults {
		rankings = rankings[:profile.MaxResults]
	}
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	result = Result{
		ID:       uuid.NewString(),
		Status:   "success",
		Rankings: rankings,
		Metadata: Metadata{
			TotalAssets:      total,
			DisplayedAssets:  len(rankings),
			DataSource:       "NSE/BSE EOD + AMFI NAV",
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			LastUpdated:      timestampIST(time.Now()),
			Disclaimer:       Disclaimer,
		},
	}

	s.persist(result, fingerprint)
	return result
}

// scoreBatch runs every eligible snapshot through the engine and
// returns the unsorted candidates plus the total asset count.
func (s *Service) scoreBatch(batch marketdata.Batch, profile Profile) ([]RankedAsset, int) {
	fresh := batch.Fresh(time.Now())
	var rankings []RankedAsset

	// ETFs trade like equities; the equity feed is their closest class.
	scoreEquities := profile.AssetType == AssetEquity ||
		profile.AssetType == AssetETF ||
		profile.AssetType == AssetAll

	if scoreEquities {
		for _, e := range batch.Equities {
			in := Input{
				Symbol:    e.Symbol,
				Name:      e.Name,
				Price:     e.LastPrice,
				ChangePct: e.ChangePct,
				High:      e.High,
				Low:       e.Low,
				PrevClose: e.PrevClose,
				Fresh:     fresh,
			}
			if e.Volume > 0 {
				v := e.Volume
				in.Volume = &v
			}

			score, confidence, rec := s.engine.Score(in, profile, s.source)
			rankings = append(rankings, RankedAsset{
				Symbol:         e.Symbol,
				Name:           e.Name,
				Score:          score,
				Confidence:     confidence,
				Recommendation: rec,
				LastPrice:      e.LastPrice,
				Change:         fmt.Sprintf("%+.2f%%", e.ChangePct),
				AssetType:      AssetEquity,
			})
		}
	}

	wantsFunds := profile.AssetType == AssetMutualFund ||
		(profile.AssetType == AssetAll &&
			(profile.IsConservative() || profile.Amount > fundInclusionAmount) &&
			len(rankings) < profile.MaxResults)

	if wantsFunds {
		for _, f := range batch.Funds {
			in := Input{
				Symbol:    f.SchemeCode,
				Name:      f.SchemeName,
				Price:     f.NAV,
				ChangePct: f.ChangePct,
				Fresh:     fresh,
				Fund:      true,
			}

			score, confidence, rec := s.engine.Score(in, profile, SourceFund)
			rankings = append(rankings, RankedAsset{
				Symbol:         f.SchemeCode,
				Name:           f.SchemeName,
				Score:          score,
				Confidence:     confidence,
				Recommendation: rec,
				LastPrice:      f.NAV,
				Change:         fmt.Sprintf("%+.2f%%", f.ChangePct),
				AssetType:      AssetMutualFund,
			})
		}
	}

	return rankings, len(batch.Equities) + len(batch.Funds)
}

// persist writes the result through to cache and repository. Both are
// best-effort: failures are logged, never raised.
func (s *Service) persist(result Result, fingerprint string) {
	s.store.Set(fingerprint, result, cache.RankingTTL)

	if s.repo != nil {
		if err := s.repo.Save(result, fingerprint); err != nil {
			s.log.Warn().Err(err).Msg("Failed to persist rankings")
		}
	}
}

// mockResult covers the data-unavailable case: a synthesized but
// structurally complete response.
func (s *Service) mockResult(profile Profile, start time.Time) Result {
	rankings := generateMockRankings(profile)

	return Result{
		ID:       uuid.NewString(),
		Status:   "success",
		Rankings: rankings,
		Metadata: Metadata{
			TotalAssets:      len(rankings) * 5,
			DisplayedAssets:  len(rankings),
			DataSource:       "Mock Data",
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			LastUpdated:      timestampIST(time.Now()),
			Disclaimer:       Disclaimer,
		},
	}
}

// fallbackResult covers computation errors.
func (s *Service) fallbackResult(profile Profile, start time.Time) Result {
	result := s.mockResult(profile, start)
	result.Status = "fallback"
	result.Metadata.DataSource = "Mock Data (Fallback)"
	result.Metadata.Disclaimer = Disclaimer + " Note: Using fallback data due to system error."
	return result
}
