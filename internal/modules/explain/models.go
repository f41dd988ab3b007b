// Package explain answers "why is this ranked that way" questions with
// a budget-and-cache-guarded language-model call.
package explain

import (
	"context"

	"chimera/internal/clients/openai"
)

// CompletionClient is the language-model boundary. Satisfied by
// openai.Client; tests substitute their own.
type CompletionClient interface {
	Configured() bool
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (openai.Completion, error)
}

// Response is the outcome of one explanation request. Success and
// fallback responses share the same shape; only status and content
// quality differ.
type Response struct {
	Status      string   `json:"status"` // success | fallback
	Answer      string   `json:"answer"`
	Citations   []string `json:"citations"`
	Confidence  int      `json:"confidence"`
	Disclaimer  string   `json:"disclaimer"`
	LastUpdated string   `json:"lastUpdated"`
}

// Disclaimer text every answer must end with.
const (
	disclaimerSuffix     = "Educational only. Not investment advice."
	fallbackDisclaimer   = "Educational analysis only. Not investment advice."
	fallbackConfidence   = 75
	completionMaxTokens  = 150
	completionTemp       = 0.3
	maxQuestionLen       = 100
	baseAnswerConfidence = 70
	maxAnswerConfidence  = 85
)
