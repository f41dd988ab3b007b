package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chimera/internal/cache"
	"chimera/internal/clients/openai"
	"chimera/internal/config"
	"chimera/internal/modules/budget"
	"chimera/internal/modules/explain"
	"chimera/internal/modules/marketdata"
	"chimera/internal/modules/ranking"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	log := zerolog.Nop()

	cfg := &config.Config{
		Port:                  8080,
		DevMode:               true,
		DailyBudgetLimit:      5.0,
		CostPer1KTokens:       0.002,
		ChatRequestsPerMinute: 2,
	}

	store := cache.NewNoop()
	marketData := marketdata.NewService(nil, nil, false, log)

	engine := ranking.NewEngine(log)
	rankingService := ranking.NewService(marketData, engine, store, nil, false, log)

	ledger := budget.NewLedger(cfg.DailyBudgetLimit, cfg.CostPer1KTokens, log)
	llm := openai.NewClient(openai.Config{}, log)
	explainService := explain.NewService(llm, ledger, store, explain.Options{CostProtection: true}, log)

	return New(Config{
		Log:            log,
		Config:         cfg,
		RankingHandler: ranking.NewHandler(rankingService, log),
		ExplainHandler: explain.NewHandler(explainService, log),
		BudgetHandler:  budget.NewHandler(ledger, log),
		SystemHandlers: NewSystemHandlers(marketData, log),
	})
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRankEndpoint(t *testing.T) {
	s := testServer(t)

	body := []byte(`{"amountInr": 50000, "horizonDays": 365, "riskPreference": "MODERATE", "assetType": "EQUITY", "maxResults": 5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/rank", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result ranking.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.NotEmpty(t, result.Rankings)
	assert.LessOrEqual(t, len(result.Rankings), 5)
	assert.Equal(t, 1, result.Rankings[0].Rank)
	assert.NotEmpty(t, result.Metadata.Disclaimer)
}

func TestRankEndpointRejectsBadInput(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"amountInr": `},
		{"negative amount", `{"amountInr": -5, "horizonDays": 30}`},
		{"bad horizon", `{"amountInr": 50000, "horizonDays": 9999}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/rank", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestChatEndpointFallsBackWithoutKey(t *testing.T) {
	s := testServer(t)

	body := []byte(`{"symbol": "RELIANCE", "question": "why is this ranked high?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp explain.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "fallback", resp.Status)
	assert.NotEmpty(t, resp.Disclaimer)
}

func TestChatEndpointRequiresQuestion(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{"symbol": "TCS"}`)))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpointRateLimited(t *testing.T) {
	s := testServer(t)

	body := `{"symbol": "TCS", "question": "outlook?"}`
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(body)))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestUsageEndpoint(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats budget.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))

	assert.Equal(t, 5.0, stats.DailyLimit)
	assert.False(t, stats.IsOverLimit)
}

func TestFreshnessEndpoint(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/freshness", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fresh")
}
