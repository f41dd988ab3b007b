package marketdata

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"
)

// fetchLiveQuotes pulls current quotes for the curated NSE symbols via
// Yahoo Finance. NSE listings use the ".NS" suffix there. Partial
// results are fine; symbols that fail are skipped.
func fetchLiveQuotes(log zerolog.Logger, now time.Time) ([]EquitySnapshot, error) {
	equities := make([]EquitySnapshot, 0, len(sampleEquities))

	for _, s := range sampleEquities {
		q, err := quote.Get(s.symbol + ".NS")
		if err != nil || q == nil {
			log.Warn().Str("symbol", s.symbol).Err(err).Msg("Live quote fetch failed, skipping symbol")
			continue
		}

		if q.RegularMarketPrice <= 0 {
			continue
		}

		high := q.RegularMarketDayHigh
		low := q.RegularMarketDayLow
		prevClose := q.RegularMarketPreviousClose

		snap := EquitySnapshot{
			Symbol:    s.symbol,
			Name:      s.name,
			LastPrice: q.RegularMarketPrice,
			ChangePct: q.RegularMarketChangePercent,
			Volume:    int64(q.RegularMarketVolume),
			Timestamp: now,
		}
		if high > 0 {
			snap.High = &high
		}
		if low > 0 {
			snap.Low = &low
		}
		if prevClose > 0 {
			snap.PrevClose = &prevClose
		}

		equities = append(equities, snap)
	}

	if len(equities) == 0 {
		return nil, fmt.Errorf("no live quotes could be fetched")
	}

	return equities, nil
}
