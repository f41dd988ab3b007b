package ranking

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

func mustProfile(t *testing.T, risk RiskPreference) Profile {
	t.Helper()
	p, err := NewProfile(50_000, 365, risk, AssetAll, 10)
	assert.NoError(t, err)
	return p
}

func TestScoreFullEquitySnapshot(t *testing.T) {
	e := testEngine()
	profile := mustProfile(t, RiskModerate)

	volume := int64(2_000_000)
	high, low, prev := 101.0, 99.0, 99.5
	in := Input{
		Symbol:    "RELIANCE",
		Price:     100,
		ChangePct: 1.0,
		Volume:    &volume,
		High:      &high,
		Low:       &low,
		PrevClose: &prev,
		Fresh:     true,
	}

	score, confidence, rec := e.Score(in, profile, SourceEquityTable)

	// base 0.5 + momentum 0.003 + liquidity 0.20 + stability 0.245
	assert.InDelta(t, 0.948, score, 0.0001)
	assert.Equal(t, 90, confidence)
	assert.Equal(t, RecommendBuy, rec)
}

func TestScoreFundSnapshot(t *testing.T) {
	e := testEngine()
	profile := mustProfile(t, RiskModerate)

	in := Input{
		Symbol:    "120503",
		Price:     100,
		ChangePct: 2.0,
		Fresh:     true,
		Fund:      true,
	}

	score, confidence, rec := e.Score(in, profile, SourceFund)

	// fund base 0.6 + momentum 0.002 + moderate band bonus 0.05
	assert.InDelta(t, 0.652, score, 0.0001)
	assert.Equal(t, 70, confidence)
	assert.Equal(t, RecommendBuy, rec)
}

func TestScoreMissingPriceFallsBackToBase(t *testing.T) {
	e := testEngine()
	profile := mustProfile(t, RiskModerate)

	score, _, _ := e.Score(Input{Symbol: "BROKEN", Price: 0}, profile, SourceEquityTable)
	assert.Equal(t, 0.5, score)
}

func TestScoreStaysWithinSourceBounds(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name      string
		changePct float64
		risk      RiskPreference
		src       Source
	}{
		{"crash conservative", -25.0, RiskConservative, SourceEquityTable},
		{"rally aggressive", 30.0, RiskAggressive, SourceEquityTable},
		{"crash live", -25.0, RiskModerate, SourceLive},
		{"rally live", 30.0, RiskModerate, SourceLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			volume := int64(50_000_000)
			in := Input{Symbol: "X", Price: 500, ChangePct: tt.changePct, Volume: &volume}

			score, confidence, _ := e.Score(in, mustProfile(t, tt.risk), tt.src)
			assert.GreaterOrEqual(t, score, tt.src.ClampMin)
			assert.LessOrEqual(t, score, tt.src.ClampMax)
			assert.GreaterOrEqual(t, confidence, 30)
			assert.LessOrEqual(t, confidence, 95)
		})
	}
}

func TestRiskAdjustment(t *testing.T) {
	tests := []struct {
		name        string
		risk        RiskPreference
		dailyReturn float64
		want        float64
	}{
		{"conservative calm", RiskConservative, 0.01, 0.3},
		{"conservative volatile", RiskConservative, 0.03, -0.2},
		{"conservative calm negative", RiskConservative, -0.015, 0.3},
		{"aggressive volatile", RiskAggressive, 0.06, 0.3},
		{"aggressive calm", RiskAggressive, 0.02, -0.1},
		{"moderate in band", RiskModerate, 0.02, 0.2},
		{"moderate below band", RiskModerate, 0.005, 0.0},
		{"moderate above band", RiskModerate, 0.05, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, riskAdjustment(tt.risk, tt.dailyReturn))
		})
	}
}

func TestConfidenceCapsWithSparseData(t *testing.T) {
	e := testEngine()
	profile := mustProfile(t, RiskModerate)

	// EOD rows without volume or high/low never claim more than 65.
	prev := 99.0
	in := Input{Symbol: "THIN", Price: 100, ChangePct: 0.5, PrevClose: &prev}

	_, confidence, _ := e.Score(in, profile, SourceEquityTable)
	assert.LessOrEqual(t, confidence, 65)
}

func TestRecommendationLadder(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		confidence int
		risk       RiskPreference
		want       Recommendation
	}{
		{"low confidence always holds", 0.9, 55, RiskAggressive, RecommendHold},
		{"strong score buys", 0.8, 70, RiskConservative, RecommendBuy},
		{"decent score buys", 0.65, 70, RiskModerate, RecommendBuy},
		{"decent score conservative holds", 0.65, 70, RiskConservative, RecommendHold},
		{"middling score holds", 0.5, 70, RiskModerate, RecommendHold},
		{"weak score sells", 0.3, 70, RiskModerate, RecommendSell},
		{"weak score aggressive holds", 0.3, 70, RiskAggressive, RecommendHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfile(50_000, 365, tt.risk, AssetAll, 10)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, recommend(tt.score, tt.confidence, p))
		})
	}
}

func TestProfileValidation(t *testing.T) {
	_, err := NewProfile(-100, 365, RiskModerate, AssetAll, 10)
	assert.Error(t, err)

	_, err = NewProfile(50_000, 0, RiskModerate, AssetAll, 10)
	assert.Error(t, err)

	_, err = NewProfile(50_000, 365, "RECKLESS", AssetAll, 10)
	assert.Error(t, err)

	_, err = NewProfile(50_000, 365, RiskModerate, "CRYPTO", 10)
	assert.Error(t, err)

	_, err = NewProfile(50_000, 365, RiskModerate, AssetAll, 100)
	assert.Error(t, err)

	p, err := NewProfile(50_000, 365, "", "", 0)
	assert.NoError(t, err)
	assert.Equal(t, RiskModerate, p.Risk)
	assert.Equal(t, AssetAll, p.AssetType)
	assert.Equal(t, 10, p.MaxResults)
}

func TestFingerprintStableAcrossEqualProfiles(t *testing.T) {
	a, err := NewProfile(50_000, 365, RiskModerate, AssetEquity, 10)
	assert.NoError(t, err)
	b, err := NewProfile(50_000, 365, RiskModerate, AssetEquity, 10)
	assert.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c, err := NewProfile(50_001, 365, RiskModerate, AssetEquity, 10)
	assert.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
