package classifier

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = "You are a support ticket classification system. Respond only with JSON."

// Sampling settings shared by the remote classifiers. Classification wants
// near-deterministic, short answers.
const (
	llmTemperature = 0.3
	llmMaxTokens   = 150
)

// defaultLLMConfidence is used when the model reply carries no confidence.
const defaultLLMConfidence = 0.5

// buildPrompt renders the classification prompt: the category names and
// descriptions (fallback excluded) followed by the ticket text and the
// required JSON reply shape.
func buildPrompt(categories []Category, ticket string) string {
	var list strings.Builder
	for _, c := range categories {
		if c.Name == FallbackName {
			continue
		}
		fmt.Fprintf(&list, "- %s: %s\n", c.Name, c.Description)
	}

	return fmt.Sprintf(`Classify the following support ticket into one of these categories:

%s
Ticket: %q

Respond with a JSON object containing:
- category: the category name (exactly as listed above, or %q if no match)
- confidence: a number between 0 and 1 indicating confidence
- reasoning: brief explanation of classification

Example response:
{"category": "password_reset", "confidence": 0.95, "reasoning": "User explicitly mentions forgot password"}

Your response (JSON only):`, list.String(), ticket, FallbackName)
}

// llmReply is the JSON object the model is instructed to return.
type llmReply struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseReply turns the raw model output into a Result against the given
// table. A reply naming a category outside the table falls back to "other"
// by design; unparseable JSON is an error surfaced to the caller.
func parseReply(content string, categories []Category, ticket string) (Result, error) {
	content = stripCodeFence(strings.TrimSpace(content))

	var reply llmReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return Result{}, fmt.Errorf("parse model reply as JSON: %w (reply: %q)", err, content)
	}

	confidence := reply.Confidence
	if confidence == 0 {
		confidence = defaultLLMConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	category, ok := CategoryByName(categories, reply.Category)
	if !ok {
		fb, found := CategoryByName(categories, FallbackName)
		if !found {
			return Result{}, fmt.Errorf("model returned unknown category %q and table has no %q entry", reply.Category, FallbackName)
		}
		category = fb
	}

	var matched []string
	if reply.Reasoning != "" {
		matched = []string{reply.Reasoning}
	}
	return Result{
		Category:        category,
		Confidence:      confidence,
		MatchedPatterns: matched,
		Text:            ticket,
	}, nil
}

// stripCodeFence unwraps replies the model insists on fencing as markdown.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
