// Package ranking scores market snapshots against an investment
// profile and produces ordered, confidence-scored recommendations.
package ranking

import (
	"fmt"
	"time"
)

// RiskPreference is the investor's stated risk appetite.
type RiskPreference string

const (
	RiskConservative RiskPreference = "CONSERVATIVE"
	RiskModerate     RiskPreference = "MODERATE"
	RiskAggressive   RiskPreference = "AGGRESSIVE"
)

// AssetType filters which instrument classes a ranking considers.
type AssetType string

const (
	AssetEquity     AssetType = "EQUITY"
	AssetMutualFund AssetType = "MUTUAL_FUND"
	AssetETF        AssetType = "ETF"
	AssetAll        AssetType = "ALL"
)

// Recommendation is the action label attached to a ranked asset.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendHold Recommendation = "HOLD"
	RecommendSell Recommendation = "SELL"
)

// Profile is an immutable ranking request. Build one with NewProfile;
// two profiles with equal fingerprints are interchangeable for caching.
type Profile struct {
	Amount      float64        `json:"amountInr"`
	HorizonDays int            `json:"horizonDays"`
	Risk        RiskPreference `json:"riskPreference"`
	AssetType   AssetType      `json:"assetType"`
	MaxResults  int            `json:"maxResults"`
}

// NewProfile validates and normalizes the request parameters.
func NewProfile(amount float64, horizonDays int, risk RiskPreference, assetType AssetType, maxResults int) (Profile, error) {
	if amount <= 0 {
		return Profile{}, fmt.Errorf("amount must be positive, got %.2f", amount)
	}
	if horizonDays < 1 || horizonDays > 3650 {
		return Profile{}, fmt.Errorf("horizon must be between 1 and 3650 days, got %d", horizonDays)
	}

	switch risk {
	case RiskConservative, RiskModerate, RiskAggressive:
	case "":
		risk = RiskModerate
	default:
		return Profile{}, fmt.Errorf("unknown risk preference %q", risk)
	}

	switch assetType {
	case AssetEquity, AssetMutualFund, AssetETF, AssetAll:
	case "":
		assetType = AssetAll
	default:
		return Profile{}, fmt.Errorf("unknown asset type %q", assetType)
	}

	if maxResults == 0 {
		maxResults = 10
	}
	if maxResults < 1 || maxResults > 50 {
		return Profile{}, fmt.Errorf("maxResults must be between 1 and 50, got %d", maxResults)
	}

	return Profile{
		Amount:      amount,
		HorizonDays: horizonDays,
		Risk:        risk,
		AssetType:   assetType,
		MaxResults:  maxResults,
	}, nil
}

// Fingerprint derives the canonical cache identity for this profile.
func (p Profile) Fingerprint() string {
	return fmt.Sprintf("rankings:amount=%.2f|horizon=%d|risk=%s|type=%s|max=%d",
		p.Amount, p.HorizonDays, p.Risk, p.AssetType, p.MaxResults)
}

// IsConservative reports whether the profile prefers stability.
func (p Profile) IsConservative() bool { return p.Risk == RiskConservative }

// IsAggressive reports whether the profile tolerates volatility.
func (p Profile) IsAggressive() bool { return p.Risk == RiskAggressive }

// RankedAsset is one scored instrument inside a result set. Immutable
// once created; rank is dense, 1-based and unique within the set.
type RankedAsset struct {
	Symbol         string         `json:"symbol"`
	Name           string         `json:"name"`
	Score          float64        `json:"score"`
	Confidence     int            `json:"confidence"`
	Rank           int            `json:"rank"`
	Recommendation Recommendation `json:"recommendation"`
	LastPrice      float64        `json:"lastPrice"`
	Change         string         `json:"change"`
	AssetType      AssetType      `json:"assetType"`
}

// Metadata describes how a result set was produced.
type Metadata struct {
	TotalAssets      int    `json:"totalAssets"`
	DisplayedAssets  int    `json:"displayedAssets"`
	DataSource       string `json:"dataSource"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
	CacheHit         bool   `json:"cacheHit"`
	LastUpdated      string `json:"lastUpdated"`
	Disclaimer       string `json:"disclaimer"`
}

// Result is the outcome of one ranking request, ordered rank-ascending.
type Result struct {
	ID       string        `json:"id"`
	Status   string        `json:"status"` // success | fallback | error
	Rankings []RankedAsset `json:"rankings"`
	Metadata Metadata      `json:"metadata"`
}

// Disclaimer is attached to every response, success or fallback.
const Disclaimer = "This analysis is for educational purposes only and should not be considered as investment advice. " +
	"Please consult with a financial advisor before making investment decisions."

func timestampIST(t time.Time) string {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return t.UTC().Format("2006-01-02 15:04:05") + " UTC"
	}
	return t.In(loc).Format("2006-01-02 15:04:05") + " IST"
}
