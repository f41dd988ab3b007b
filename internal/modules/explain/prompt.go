package explain

import (
	"strings"
)

// Token count is money here: prompts stay as small as the model lets
// us get away with.
const systemPrompt = "Financial analyst. Answer briefly (<80 words).\n" +
	"MUST end: 'Educational only. Not investment advice.'"

// buildUserPrompt assembles the compact user message.
func buildUserPrompt(symbol, question, context string) string {
	var b strings.Builder
	b.Grow(200)

	if context != "" {
		c := context
		if len(c) > 200 {
			c = c[:200] + "..."
		}
		b.WriteString("Context: ")
		b.WriteString(c)
		b.WriteString("\n")
	}

	if symbol != "" {
		b.WriteString("Stock: ")
		b.WriteString(symbol)
		b.WriteString("\n")
	}

	q := question
	if len(q) > maxQuestionLen {
		q = q[:maxQuestionLen] + "..."
	}
	b.WriteString("Q: ")
	b.WriteString(q)
	b.WriteString("\nA:")

	return b.String()
}

// Keywords that signal the model actually talked about finance.
var financialTerms = []string{"revenue", "profit", "growth", "margin", "debt", "equity", "performance", "earnings"}

// answerConfidence grades a generated answer: longer and more
// finance-literate answers score higher, capped well below certainty.
func answerConfidence(answer string) int {
	confidence := baseAnswerConfidence

	if len(answer) > 100 {
		confidence += 5
	}
	if len(answer) > 200 {
		confidence += 5
	}

	lower := strings.ToLower(answer)
	keywords := 0
	for _, term := range financialTerms {
		if strings.Contains(lower, term) {
			keywords++
		}
	}
	if keywords > 5 {
		keywords = 5
	}
	confidence += keywords * 2

	if confidence > maxAnswerConfidence {
		confidence = maxAnswerConfidence
	}
	return confidence
}

// ensureDisclaimer appends the canonical disclaimer when the model
// dropped it.
func ensureDisclaimer(answer string) string {
	lower := strings.ToLower(answer)
	if strings.Contains(lower, "educational") || strings.Contains(lower, "not investment advice") {
		return answer
	}
	return answer + " " + disclaimerSuffix
}
