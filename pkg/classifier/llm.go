package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// Provider selects which chat-completion backend the LLM classifier talks to.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderAzure  Provider = "azure"
	ProviderLocal  Provider = "local"
	ProviderGemini Provider = "gemini"
)

const (
	// DefaultLocalBaseURL is where LM Studio and similar local servers
	// expose their OpenAI-compatible API by default.
	DefaultLocalBaseURL = "http://127.0.0.1:1234/v1"
	DefaultModel        = "gpt-3.5-turbo"
)

var ErrNoChoices = errors.New("no choices returned by provider")

// LLMConfig configures a remote classifier. It selects the provider and the
// endpoint; it defines no protocol of its own.
type LLMConfig struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	Model    string
}

func (c LLMConfig) validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAzure:
		if c.APIKey == "" {
			return fmt.Errorf("%s provider requires an API key", c.Provider)
		}
		if c.Provider == ProviderAzure && c.BaseURL == "" {
			return fmt.Errorf("azure provider requires a base URL")
		}
	case ProviderLocal:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}

// ChatCompleter is the slice of the OpenAI client the classifier needs.
// Tests inject a mock here.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMClassifier classifies tickets with one chat-completion request per
// ticket against an OpenAI-compatible endpoint (hosted, Azure, or local).
type LLMClassifier struct {
	client     ChatCompleter
	model      string
	categories []Category
}

// NewLLMClassifier builds a classifier from provider configuration. The
// categories default to DefaultCategories when nil; they must all validate.
func NewLLMClassifier(cfg LLMConfig, categories []Category) (*LLMClassifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var clientCfg openai.ClientConfig
	switch cfg.Provider {
	case ProviderOpenAI:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	case ProviderAzure:
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
	case ProviderLocal:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.BaseURL
		if clientCfg.BaseURL == "" {
			clientCfg.BaseURL = DefaultLocalBaseURL
		}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	log.Debugf("LLM classifier initialized: provider=%s model=%s", cfg.Provider, model)

	return NewLLMClassifierWithClient(openai.NewClientWithConfig(clientCfg), model, categories)
}

// NewLLMClassifierWithClient wires an existing chat-completion client,
// bypassing provider configuration.
func NewLLMClassifierWithClient(client ChatCompleter, model string, categories []Category) (*LLMClassifier, error) {
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
	return &LLMClassifier{client: client, model: model, categories: categories}, nil
}

// Categories returns a copy of the table the classifier resolves names into.
func (c *LLMClassifier) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Classify sends one request and maps the reply back into the table.
// Request failures surface as errors; only an unrecognized category name in
// an otherwise well-formed reply falls back to "other".
func (c *LLMClassifier) Classify(ctx context.Context, ticket string) (Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: llmTemperature,
		MaxTokens:   llmMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(c.categories, ticket)},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, ErrNoChoices
	}

	result, err := parseReply(strings.TrimSpace(resp.Choices[0].Message.Content), c.categories, ticket)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("LLM classified ticket as %q (confidence %.2f)", result.Category.Name, result.Confidence)
	return result, nil
}

var _ Classifier = (*LLMClassifier)(nil)
