// Package budget tracks the daily spend on language-model calls and
// guards the configured budget ceiling.
package budget

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Ledger days older than this are pruned on write.
const retentionDays = 7

// Stats is the usage snapshot exposed over the API.
type Stats struct {
	DailyUsage      float64 `json:"dailyUsage"`
	DailyLimit      float64 `json:"dailyLimit"`
	UsagePercent    float64 `json:"usagePercent"`
	RemainingBudget float64 `json:"remainingBudget"`
	IsNearLimit     bool    `json:"isNearLimit"`
	IsOverLimit     bool    `json:"isOverLimit"`
}

// Ledger accumulates per-day cost. Money is held as decimals so
// repeated small increments never drift; day keys roll the totals over
// without an explicit reset.
type Ledger struct {
	mu          sync.Mutex
	totals      map[string]decimal.Decimal
	dailyLimit  decimal.Decimal
	costPer1K   decimal.Decimal
	nearPercent decimal.Decimal
	log         zerolog.Logger
}

// NewLedger creates a spend ledger with the given daily limit and
// per-1000-token cost, both in dollars.
func NewLedger(dailyLimit, costPer1KTokens float64, log zerolog.Logger) *Ledger {
	return &Ledger{
		totals:      make(map[string]decimal.Decimal),
		dailyLimit:  decimal.NewFromFloat(dailyLimit),
		costPer1K:   decimal.NewFromFloat(costPer1KTokens),
		nearPercent: decimal.NewFromInt(80),
		log:         log.With().Str("component", "budget").Logger(),
	}
}

// Today returns the current calendar day key.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Track adds an incremental cost to a day's total. Costs only ever
// accumulate; negative increments are ignored.
func (l *Ledger) Track(day string, cost decimal.Decimal) {
	if cost.IsNegative() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.totals[day] = l.totals[day].Add(cost)
	l.prune(day)

	l.log.Debug().Str("day", day).Str("total", l.totals[day].StringFixed(6)).Msg("Tracked spend")
}

// TrackTokens converts a token count to cost and records it.
func (l *Ledger) TrackTokens(day string, tokens int) decimal.Decimal {
	cost := decimal.NewFromInt(int64(tokens)).Div(decimal.NewFromInt(1000)).Mul(l.costPer1K)
	l.Track(day, cost)
	return cost
}

// DailyTotal returns the accumulated cost for a day.
func (l *Ledger) DailyTotal(day string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals[day]
}

// IsOverLimit reports whether a day's spend has reached the limit.
func (l *Ledger) IsOverLimit(day string) bool {
	return l.DailyTotal(day).GreaterThanOrEqual(l.dailyLimit)
}

// IsNearLimit reports whether a day's spend exceeds 80% of the limit.
func (l *Ledger) IsNearLimit(day string) bool {
	threshold := l.dailyLimit.Mul(l.nearPercent).Div(decimal.NewFromInt(100))
	return l.DailyTotal(day).GreaterThan(threshold)
}

// Stats returns the usage snapshot for a day.
func (l *Ledger) Stats(day string) Stats {
	used := l.DailyTotal(day)

	remaining := l.dailyLimit.Sub(used)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var percent decimal.Decimal
	if l.dailyLimit.IsPositive() {
		percent = used.Div(l.dailyLimit).Mul(decimal.NewFromInt(100))
	}

	usedF, _ := used.Round(6).Float64()
	limitF, _ := l.dailyLimit.Float64()
	percentF, _ := percent.Round(2).Float64()
	remainingF, _ := remaining.Round(6).Float64()

	return Stats{
		DailyUsage:      usedF,
		DailyLimit:      limitF,
		UsagePercent:    percentF,
		RemainingBudget: remainingF,
		IsNearLimit:     l.IsNearLimit(day),
		IsOverLimit:     l.IsOverLimit(day),
	}
}

// prune drops day keys older than the retention window. Caller holds
// the lock.
func (l *Ledger) prune(currentDay string) {
	current, err := time.Parse("2006-01-02", currentDay)
	if err != nil {
		return
	}
	cutoff := current.AddDate(0, 0, -retentionDays)

	for day := range l.totals {
		t, err := time.Parse("2006-01-02", day)
		if err != nil || t.Before(cutoff) {
			delete(l.totals, day)
		}
	}
}
