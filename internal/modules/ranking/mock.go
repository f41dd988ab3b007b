package ranking

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"chimera/pkg/formulas"
)

// Well-known NSE symbols used whenever real data is unavailable.
var mockAssets = []struct {
	symbol string
	name   string
}{
	{"RELIANCE", "Reliance Industries Ltd."},
	{"TCS", "Tata Consultancy Services Ltd."},
	{"INFY", "Infosys Ltd."},
	{"HDFC", "HDFC Bank Ltd."},
	{"ICICI", "ICICI Bank Ltd."},
	{"BAJAJ-AUTO", "Bajaj Auto Ltd."},
	{"WIPRO", "Wipro Ltd."},
	{"ITC", "ITC Ltd."},
	{"SBIN", "State Bank of India"},
	{"LT", "Larsen & Toubro Ltd."},
}

// generateMockRankings synthesizes a bounded, plausible ranking set.
// The generator is seeded by the request fingerprint so the same
// profile always produces the same fallback set.
func generateMockRankings(profile Profile) []RankedAsset {
	h := fnv.New64a()
	h.Write([]byte(profile.Fingerprint()))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	count := len(mockAssets)
	if profile.MaxResults < count {
		count = profile.MaxResults
	}

	rankings := make([]RankedAsset, 0, count)
	for i := 0; i < count; i++ {
		base := 0.9 - float64(i)*0.05
		score := formulas.Clamp(base+(rng.Float64()-0.5)*0.1, 0.20, 0.95)

		confidence := 95 - i*3
		if confidence < 70 {
			confidence = 70
		}

		rec := RecommendHold
		if score > 0.75 {
			rec = RecommendBuy
		}

		rankings = append(rankings, RankedAsset{
			Symbol:         mockAssets[i].symbol,
			Name:           mockAssets[i].name,
			Score:          formulas.Round2(score),
			Confidence:     confidence,
			Recommendation: rec,
			LastPrice:      formulas.Round2(1000 + rng.Float64()*3000),
			Change:         fmt.Sprintf("%+.2f%%", (rng.Float64()-0.5)*8),
			AssetType:      AssetEquity,
		})
	}

	// Jitter can reorder neighbours; ranks must still follow score.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	return rankings
}
