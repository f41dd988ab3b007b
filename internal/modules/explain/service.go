package explain

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chimera/internal/cache"
	"chimera/internal/modules/budget"
)

// Options tune the gateway. Zero values fall back to the defaults the
// budget was calculated around.
type Options struct {
	CostProtection bool
	MaxTokens      int
	Temperature    float64
}

// Service is the explanation gateway. Explain never fails outward:
// missing credentials, exhausted budget, transport errors and
// unparseable responses all degrade to a canned answer.
type Service struct {
	client         CompletionClient
	ledger         *budget.Ledger
	store          cache.Store
	costProtection bool
	maxTokens      int
	temperature    float64
	log            zerolog.Logger
	now            func() time.Time
}

// NewService creates the explanation gateway.
func NewService(client CompletionClient, ledger *budget.Ledger, store cache.Store, opts Options, log zerolog.Logger) *Service {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = completionMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = completionTemp
	}
	return &Service{
		client:         client,
		ledger:         ledger,
		store:          store,
		costProtection: opts.CostProtection,
		maxTokens:      opts.MaxTokens,
		temperature:    opts.Temperature,
		log:            log.With().Str("component", "explain").Logger(),
		now:            time.Now,
	}
}

// Explain answers a question about a symbol's ranking.
func (s *Service) Explain(ctx context.Context, symbol, question, contextText string) Response {
	if !s.client.Configured() {
		s.log.Info().Str("symbol", symbol).Msg("Completion client not configured, using fallback")
		return s.fallback(symbol, question)
	}

	today := budget.Today()
	if s.costProtection && s.ledger.IsOverLimit(today) {
		s.log.Warn().Str("day", today).Msg("Daily budget exceeded, using fallback")
		return s.fallback(symbol, question)
	}

	key := cacheKey(symbol, question)
	if cached, ok := s.store.Get(key); ok {
		if resp, ok := cached.(Response); ok {
			s.log.Debug().Str("symbol", symbol).Msg("Returning cached explanation")
			return resp
		}
	}

	completion, err := s.client.Complete(ctx, systemPrompt,
		buildUserPrompt(symbol, question, contextText), s.maxTokens, s.temperature)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("Completion call failed, using fallback")
		return s.fallback(symbol, question)
	}

	answer := strings.TrimSpace(completion.Text)
	if answer == "" {
		s.log.Warn().Str("symbol", symbol).Msg("Empty completion, using fallback")
		return s.fallback(symbol, question)
	}

	response := Response{
		Status:      "success",
		Answer:      ensureDisclaimer(answer),
		Citations:   citations(s.now()),
		Confidence:  answerConfidence(answer),
		Disclaimer:  disclaimerSuffix,
		LastUpdated: s.now().Format("2006-01-02 15:04:05"),
	}

	if completion.TotalTokens > 0 {
		cost := s.ledger.TrackTokens(today, completion.TotalTokens)
		s.log.Info().Int("tokens", completion.TotalTokens).
			Str("cost", cost.StringFixed(6)).Msg("Tracked completion spend")
	}

	s.store.Set(key, response, cache.ExplanationTTL)
	return response
}

func (s *Service) fallback(symbol, question string) Response {
	return Response{
		Status:      "fallback",
		Answer:      fallbackAnswer(symbol, question),
		Citations:   citations(s.now()),
		Confidence:  fallbackConfidence,
		Disclaimer:  fallbackDisclaimer,
		LastUpdated: s.now().Format("2006-01-02 15:04:05"),
	}
}

// cacheKey normalizes (symbol, question) into the cache identity.
// Case and punctuation never produce distinct entries.
func cacheKey(symbol, question string) string {
	normalize := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}
	return "explain:" + strings.Map(normalize, symbol) + ":" + strings.Map(normalize, question)
}
