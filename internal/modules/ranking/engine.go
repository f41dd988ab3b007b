package ranking

import (
	"math"

	"github.com/rs/zerolog"

	"chimera/pkg/formulas"
)

// Risk adjustment bands. Signal is the absolute daily return fraction.
const (
	conservativeThreshold = 0.02
	aggressiveThreshold   = 0.05
	moderateBandLow       = 0.01
	moderateBandHigh      = 0.04

	// Below this confidence every asset is a HOLD regardless of score.
	confidenceFloor = 60
)

// Scoring weights of the additive model.
const (
	baseScore       = 0.5
	fundBaseScore   = 0.6
	momentumWeight  = 0.30
	fundMomentum    = 0.10
	liquidityWeight = 0.20
	stabilityWeight = 0.25
	riskWeight      = 0.25
)

// Source describes a data source's field availability and clamping
// policy, so one engine serves every ingestion path.
type Source struct {
	Label           string
	BaseConfidence  int
	FreshBonus      int     // confidence bonus when data is recent
	ClampMin        float64 // scores never leave [ClampMin, ClampMax]
	ClampMax        float64
	LowExtreme      float64 // scores below this are penalized as extreme
	ReferenceVolume float64 // volume that counts as fully liquid
}

// The source policies in use. Equity table data is complete enough to
// use the full [0,1] range; live and fund data stay clamped away from
// the extremes.
var (
	SourceEquityTable = Source{
		Label:           "NSE/BSE EOD",
		BaseConfidence:  50,
		ClampMin:        0.0,
		ClampMax:        1.0,
		LowExtreme:      0.2,
		ReferenceVolume: 1_000_000,
	}
	SourceLive = Source{
		Label:           "Live Feed",
		BaseConfidence:  60,
		FreshBonus:      10,
		ClampMin:        0.20,
		ClampMax:        0.95,
		LowExtreme:      0.3,
		ReferenceVolume: 10_000_000,
	}
	SourceFund = Source{
		Label:          "AMFI NAV",
		BaseConfidence: 60,
		FreshBonus:     10,
		ClampMin:       0.20,
		ClampMax:       0.95,
		LowExtreme:     0.3,
	}
)

// Input is a single asset fed to the engine. Pointer fields are
// optional; the engine only uses what the source provides.
type Input struct {
	Symbol    string
	Name      string
	Price     float64
	ChangePct float64 // daily change in percent
	Volume    *int64
	High      *float64
	Low       *float64
	PrevClose *float64
	Fresh     bool
	Fund      bool
}

// Engine is the pure scoring function. It holds no state beyond a
// logger and never fails: bad input degrades to the base score.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a score engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "engine").Logger()}
}

// Score maps one asset snapshot to (score, confidence, recommendation)
// for the given profile. Score is clamped to the source's range,
// confidence to [30, 95].
func (e *Engine) Score(in Input, profile Profile, src Source) (float64, int, Recommendation) {
	score := e.score(in, profile, src)
	confidence := e.confidence(in, src, score)
	rec := recommend(score, confidence, profile)
	return score, confidence, rec
}

func (e *Engine) score(in Input, profile Profile, src Source) float64 {
	if in.Price <= 0 {
		e.log.Warn().Str("symbol", in.Symbol).Msg("Snapshot missing price, using base score")
		return baseScore
	}

	dailyReturn := in.ChangePct / 100

	var score float64
	if in.Fund {
		// Funds carry only NAV and change; flatter base, smaller
		// momentum fraction, no liquidity or stability terms.
		score = fundBaseScore + dailyReturn*fundMomentum
	} else {
		score = baseScore + dailyReturn*momentumWeight

		if in.Volume != nil && src.ReferenceVolume > 0 {
			liquidity := math.Min(float64(*in.Volume)/src.ReferenceVolume, 1.0)
			score += liquidity * liquidityWeight
		}

		if in.High != nil && in.Low != nil {
			spread := (*in.High - *in.Low) / in.Price
			stability := math.Max(0, 1.0-spread)
			score += stability * stabilityWeight
		}
	}

	score += riskAdjustment(profile.Risk, dailyReturn) * riskWeight

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return baseScore
	}

	return formulas.Clamp(score, src.ClampMin, src.ClampMax)
}

// riskAdjustment rewards assets whose volatility matches the stated
// preference: conservative profiles reward calm assets, aggressive
// profiles reward large moves, moderate profiles a middle band.
func riskAdjustment(risk RiskPreference, dailyReturn float64) float64 {
	signal := math.Abs(dailyReturn)

	switch risk {
	case RiskConservative:
		if signal < conservativeThreshold {
			return 0.3
		}
		return -0.2
	case RiskAggressive:
		if signal > aggressiveThreshold {
			return 0.3
		}
		return -0.1
	default:
		if signal > moderateBandLow && signal < moderateBandHigh {
			return 0.2
		}
		return 0.0
	}
}

// confidence reflects data completeness, not conviction. Scores near
// the extremes lose confidence; the result never claims certainty.
func (e *Engine) confidence(in Input, src Source, score float64) int {
	confidence := src.BaseConfidence

	if in.Volume != nil && *in.Volume > 0 {
		confidence += 20
	}
	if in.High != nil && in.Low != nil {
		confidence += 15
	}
	if in.PrevClose != nil {
		confidence += 15
	}
	if in.Fresh {
		confidence += src.FreshBonus
	}

	if score > 0.8 || score < src.LowExtreme {
		confidence -= 10
	}

	if confidence > 95 {
		confidence = 95
	}
	if confidence < 30 {
		confidence = 30
	}

	return confidence
}

// recommend derives the action label. Low confidence always holds;
// borderline scores defer to the risk preference.
func recommend(score float64, confidence int, profile Profile) Recommendation {
	if confidence < confidenceFloor {
		return RecommendHold
	}

	switch {
	case score > 0.75:
		return RecommendBuy
	case score > 0.6:
		if profile.IsConservative() {
			return RecommendHold
		}
		return RecommendBuy
	case score > 0.4:
		return RecommendHold
	default:
		if profile.IsAggressive() {
			return RecommendHold
		}
		return RecommendSell
	}
}
