package marketdata

import "time"

// EquitySnapshot is a single point-in-time market data record for one
// listed equity. Snapshots are immutable once produced; high/low and
// previous close are optional depending on the feed.
type EquitySnapshot struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	LastPrice float64   `json:"lastPrice"`
	ChangePct float64   `json:"changePct"` // daily change in percent, e.g. +2.3
	Volume    int64     `json:"volume"`
	High      *float64  `json:"high,omitempty"`
	Low       *float64  `json:"low,omitempty"`
	PrevClose *float64  `json:"prevClose,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FundSnapshot is a mutual fund NAV record as published by AMFI.
type FundSnapshot struct {
	SchemeCode string    `json:"schemeCode"`
	SchemeName string    `json:"schemeName"`
	NAV        float64   `json:"nav"`
	ChangePct  float64   `json:"changePct"`
	Date       time.Time `json:"date"`
}

// Batch is one refresh cycle's worth of snapshots.
type Batch struct {
	Equities   []EquitySnapshot
	Funds      []FundSnapshot
	IngestedAt time.Time
}

// Empty reports whether the batch carries no usable data.
func (b Batch) Empty() bool {
	return len(b.Equities) == 0 && len(b.Funds) == 0
}

// Fresh reports whether the batch is recent enough to rank against.
// Data older than two hours is treated the same as no data.
func (b Batch) Fresh(now time.Time) bool {
	if b.IngestedAt.IsZero() {
		return false
	}
	return now.Sub(b.IngestedAt) < 2*time.Hour
}

// BatchStats summarises a refresh cycle for the freshness endpoint.
type BatchStats struct {
	EquityCount   int     `json:"equityCount"`
	FundCount     int     `json:"fundCount"`
	MeanChangePct float64 `json:"meanChangePct"`
	ChangeStdDev  float64 `json:"changeStdDev"`
}
