package marketdata

import (
	"math/rand"
	"time"
)

// Curated NSE-listed companies used when no live feed is configured.
// Prices and changes reflect realistic end-of-day characteristics.
var sampleEquities = []struct {
	symbol    string
	name      string
	price     float64
	changePct float64
}{
	{"RELIANCE", "Reliance Industries Ltd.", 2850.50, 2.3},
	{"TCS", "Tata Consultancy Services Ltd.", 4125.75, 1.8},
	{"INFY", "Infosys Ltd.", 1875.25, 1.2},
	{"HDFC", "HDFC Bank Ltd.", 2650.00, 0.9},
	{"ICICI", "ICICI Bank Ltd.", 1235.60, 0.5},
	{"BHARTIARTL", "Bharti Airtel Ltd.", 1156.30, -0.8},
	{"ITC", "ITC Ltd.", 495.80, 1.5},
	{"LT", "Larsen & Toubro Ltd.", 3890.25, 2.1},
	{"WIPRO", "Wipro Ltd.", 689.40, 0.7},
	{"MARUTI", "Maruti Suzuki India Ltd.", 12450.60, 1.9},
	{"HCLTECH", "HCL Technologies Ltd.", 1789.35, 1.1},
	{"BAJFINANCE", "Bajaj Finance Ltd.", 8920.80, 2.8},
	{"ASIANPAINT", "Asian Paints Ltd.", 3456.20, 1.3},
	{"NESTLEIND", "Nestle India Ltd.", 27890.45, 0.6},
	{"COALINDIA", "Coal India Ltd.", 456.70, -0.4},
}

var sampleFunds = []struct {
	code string
	name string
	nav  float64
}{
	{"100001", "Aditya Birla Sun Life Equity Fund - Growth", 785.45},
	{"100002", "SBI Blue Chip Fund - Growth", 92.34},
	{"100003", "ICICI Prudential Focused Blue Chip Equity Fund - Growth", 156.78},
	{"100004", "HDFC Top 100 Fund - Growth", 1245.67},
	{"100005", "Axis Blue Chip Fund - Growth", 89.23},
	{"100006", "Kotak Select Focus Fund - Growth", 234.56},
	{"100007", "Franklin India Blue Chip Fund - Growth", 567.89},
	{"100008", "DSP Top 100 Equity Fund - Growth", 345.12},
	{"100009", "Mirae Asset Large Cap Fund - Growth", 123.45},
	{"100010", "Nippon India Large Cap Fund - Growth", 678.90},
}

// generateSampleEquities builds a full equity batch from the curated
// list, synthesising the fields the static table does not carry.
func generateSampleEquities(now time.Time) []EquitySnapshot {
	equities := make([]EquitySnapshot, 0, len(sampleEquities))

	for _, s := range sampleEquities {
		// Intraday range proportional to the day's move
		spread := s.price * 0.01 * (1 + rand.Float64())
		high := s.price + spread/2
		low := s.price - spread/2
		prevClose := s.price / (1 + s.changePct/100)

		equities = append(equities, EquitySnapshot{
			Symbol:    s.symbol,
			Name:      s.name,
			LastPrice: s.price,
			ChangePct: s.changePct,
			Volume:    100_000 + rand.Int63n(9_900_000), // 100K to 10M
			High:      &high,
			Low:       &low,
			PrevClose: &prevClose,
			Timestamp: now,
		})
	}

	return equities
}

// generateSampleFunds builds a mutual fund batch from the curated list.
func generateSampleFunds(now time.Time) []FundSnapshot {
	funds := make([]FundSnapshot, 0, len(sampleFunds))

	for _, s := range sampleFunds {
		funds = append(funds, FundSnapshot{
			SchemeCode: s.code,
			SchemeName: s.name,
			NAV:        s.nav,
			ChangePct:  (rand.Float64() - 0.5) * 6, // -3% to +3%
			Date:       now,
		})
	}

	return funds
}
