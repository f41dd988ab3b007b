package explain

import (
	"strings"
	"time"
)

// Canned answers for the symbols users actually ask about.
var symbolFallbacks = map[string]string{
	"RELIANCE": "Reliance Industries is a diversified conglomerate with strong presence in petrochemicals, " +
		"oil refining, and digital services through Jio. Key metrics include debt reduction, " +
		"Retail expansion, and green energy investments. Educational only. Not investment advice.",
	"TCS": "TCS is India's largest IT services company with consistent revenue growth and industry-leading " +
		"margins (25%+). Strong digital transformation capabilities and global client base provide " +
		"stability. Educational only. Not investment advice.",
	"HDFC": "HDFC Bank maintains strong fundamentals with robust deposit growth, quality loan book, " +
		"and consistent profitability. Digital transformation and branch expansion support growth. " +
		"Educational only. Not investment advice.",
	"INFY": "Infosys shows stable IT services growth with focus on digital technologies and cloud services. " +
		"Strong cash position and dividend yield appeal to conservative investors. " +
		"Educational only. Not investment advice.",
}

// fallbackAnswer picks a deterministic canned answer: symbol-specific
// when known, keyword-routed otherwise.
func fallbackAnswer(symbol, question string) string {
	if answer, ok := symbolFallbacks[strings.ToUpper(symbol)]; ok {
		return answer
	}

	lowerQ := strings.ToLower(question)

	if strings.Contains(lowerQ, "score") || strings.Contains(lowerQ, "rank") {
		return "Rankings consider quantitative factors: returns, volatility, liquidity, and momentum. " +
			"Risk-adjusted scores help evaluate investment potential across different time horizons. " +
			"Educational only. Not investment advice."
	}

	if strings.Contains(lowerQ, "buy") || strings.Contains(lowerQ, "sell") || strings.Contains(lowerQ, "invest") {
		return "Investment decisions should consider individual financial goals, risk tolerance, and market conditions. " +
			"Our analysis provides educational insights based on quantitative metrics and market data. " +
			"Always consult qualified financial advisors. Educational only. Not investment advice."
	}

	return "Financial analysis considers multiple factors including company performance, market conditions, " +
		"and sector trends. Our system evaluates these systematically for educational insights. " +
		"Educational only. Not investment advice."
}

// citations returns the fixed source list stamped with today's date.
func citations(now time.Time) []string {
	today := now.Format("2006-01-02")
	return []string{
		"NSE Bhavcopy - " + today,
		"AMFI NAV - " + today,
		"Market Analysis - " + today,
	}
}
