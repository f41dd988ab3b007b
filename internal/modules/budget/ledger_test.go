package budget

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testLedger() *Ledger {
	return NewLedger(5.00, 0.002, zerolog.Nop())
}

func TestTrackAccumulates(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	l.Track(day, decimal.NewFromFloat(0.10))
	l.Track(day, decimal.NewFromFloat(0.25))

	assert.True(t, l.DailyTotal(day).Equal(decimal.NewFromFloat(0.35)))
}

func TestTrackIgnoresNegative(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	l.Track(day, decimal.NewFromFloat(1.00))
	l.Track(day, decimal.NewFromFloat(-0.50))

	assert.True(t, l.DailyTotal(day).Equal(decimal.NewFromFloat(1.00)))
}

func TestTrackTokensConvertsCost(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	// 1500 tokens at $0.002/1k = $0.003
	cost := l.TrackTokens(day, 1500)
	assert.True(t, cost.Equal(decimal.NewFromFloat(0.003)))
	assert.True(t, l.DailyTotal(day).Equal(decimal.NewFromFloat(0.003)))
}

func TestDayIsolation(t *testing.T) {
	l := testLedger()

	l.Track("2026-08-28", decimal.NewFromFloat(3.00))
	l.Track("2026-08-29", decimal.NewFromFloat(1.00))

	assert.True(t, l.DailyTotal("2026-08-28").Equal(decimal.NewFromFloat(3.00)))
	assert.True(t, l.DailyTotal("2026-08-29").Equal(decimal.NewFromFloat(1.00)))
	assert.True(t, l.DailyTotal("2026-08-30").IsZero())
}

func TestLimitThresholds(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	assert.False(t, l.IsNearLimit(day))
	assert.False(t, l.IsOverLimit(day))

	l.Track(day, decimal.NewFromFloat(4.01))
	assert.True(t, l.IsNearLimit(day))
	assert.False(t, l.IsOverLimit(day))

	l.Track(day, decimal.NewFromFloat(0.99))
	assert.True(t, l.IsOverLimit(day))
}

func TestStats(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	l.Track(day, decimal.NewFromFloat(1.25))
	stats := l.Stats(day)

	assert.Equal(t, 1.25, stats.DailyUsage)
	assert.Equal(t, 5.00, stats.DailyLimit)
	assert.Equal(t, 25.0, stats.UsagePercent)
	assert.Equal(t, 3.75, stats.RemainingBudget)
	assert.False(t, stats.IsNearLimit)
	assert.False(t, stats.IsOverLimit)
}

func TestStatsRemainingNeverNegative(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	l.Track(day, decimal.NewFromFloat(7.00))
	stats := l.Stats(day)

	assert.Equal(t, 0.0, stats.RemainingBudget)
	assert.True(t, stats.IsOverLimit)
}

func TestConcurrentTrackNoLostUpdates(t *testing.T) {
	l := testLedger()
	day := "2026-08-29"

	const workers = 50
	const perWorker = 20
	increment := decimal.NewFromFloat(0.001)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				l.Track(day, increment)
			}
		}()
	}
	wg.Wait()

	want := increment.Mul(decimal.NewFromInt(workers * perWorker))
	assert.True(t, l.DailyTotal(day).Equal(want),
		"got %s, want %s", l.DailyTotal(day), want)
}

func TestPruneDropsOldDays(t *testing.T) {
	l := testLedger()

	l.Track("2026-08-01", decimal.NewFromFloat(1.00))
	l.Track("2026-08-29", decimal.NewFromFloat(1.00))

	assert.True(t, l.DailyTotal("2026-08-01").IsZero())
	assert.True(t, l.DailyTotal("2026-08-29").Equal(decimal.NewFromFloat(1.00)))
}
