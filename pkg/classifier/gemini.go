package classifier

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured for the Gemini
// provider.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClassifier classifies tickets through the Google Gemini API, using
// the same prompt and reply contract as the OpenAI-compatible classifier.
type GeminiClassifier struct {
	client     *genai.Client
	model      string
	categories []Category
}

// NewGeminiClassifier creates a Gemini-backed classifier. An empty apiKey
// falls back to the GEMINI_API_KEY environment variable. Close must be
// called when done.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, categories []Category) (*GeminiClassifier, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini provider requires an API key")
	}
	if categories == nil {
		categories = DefaultCategories()
	}
	if len(categories) == 0 {
		return nil, ErrEmptyTable
	}
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	log.Debugf("Gemini classifier initialized with model %s", model)

	return &GeminiClassifier{client: client, model: model, categories: categories}, nil
}

// Close releases the underlying API client.
func (c *GeminiClassifier) Close() error {
	return c.client.Close()
}

// Classify sends one generation request and maps the reply back into the
// table. Request failures surface as errors.
func (c *GeminiClassifier) Classify(ctx context.Context, ticket string) (Result, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(llmTemperature)
	model.SetMaxOutputTokens(llmMaxTokens)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(c.categories, ticket)))
	if err != nil {
		return Result{}, fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Result{}, ErrNoChoices
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}

	result, err := parseReply(reply.String(), c.categories, ticket)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("Gemini classified ticket as %q (confidence %.2f)", result.Category.Name, result.Confidence)
	return result, nil
}

var _ Classifier = (*GeminiClassifier)(nil)
