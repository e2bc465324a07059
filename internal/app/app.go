package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"triage/internal/config"
	"triage/internal/textprep"
	"triage/pkg/classifier"
)

// ErrLLMNotConfigured is returned when a caller asks for the LLM engine but
// no provider is configured.
var ErrLLMNotConfigured = errors.New("no LLM provider configured")

// App wires the configured classifiers together. Built once at startup and
// shared by the CLI commands and the HTTP handlers.
type App struct {
	Config  *config.Config
	Pattern *classifier.PatternClassifier
	// LLM is nil when llm.provider is unset.
	LLM classifier.Classifier
}

// NewApp builds the category table (defaults plus the optional categories
// file), the pattern classifier, and, when configured, the LLM classifier.
func NewApp(cfg *config.Config) (*App, error) {
	configureLogging(cfg.Log.Level)

	categories := classifier.DefaultCategories()
	if cfg.Classifier.CategoriesFile != "" {
		custom, err := classifier.LoadCategoriesFile(cfg.Classifier.CategoriesFile)
		if err != nil {
			return nil, fmt.Errorf("load custom categories: %w", err)
		}
		log.Infof("Loaded %d custom categories from %s", len(custom), cfg.Classifier.CategoriesFile)
		categories = append(categories, custom...)
	}

	pattern, err := classifier.NewPatternClassifier(categories)
	if err != nil {
		return nil, fmt.Errorf("build pattern classifier: %w", err)
	}
	if cfg.Classifier.Threshold > 0 {
		if err := pattern.SetThreshold(cfg.Classifier.Threshold); err != nil {
			return nil, err
		}
	}

	app := &App{Config: cfg, Pattern: pattern}

	if cfg.LLM.Provider != "" {
		llm, err := buildLLM(cfg, categories)
		if err != nil {
			return nil, fmt.Errorf("build LLM classifier: %w", err)
		}
		app.LLM = llm
		log.Infof("LLM classifier enabled: provider=%s model=%s", cfg.LLM.Provider, cfg.LLM.Model)
	}

	return app, nil
}

func buildLLM(cfg *config.Config, categories []classifier.Category) (classifier.Classifier, error) {
	provider := classifier.Provider(cfg.LLM.Provider)
	if provider == classifier.ProviderGemini {
		return classifier.NewGeminiClassifier(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model, categories)
	}
	return classifier.NewLLMClassifier(classifier.LLMConfig{
		Provider: provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
	}, categories)
}

// Classify runs one ticket through the requested engine after text
// preparation. The LLM path additionally trims long tickets to the
// configured sentence budget.
func (a *App) Classify(ctx context.Context, text string, useLLM bool) (classifier.Result, error) {
	clean := textprep.Normalize(textprep.FlattenHTML(text))

	if useLLM {
		if a.LLM == nil {
			return classifier.Result{}, ErrLLMNotConfigured
		}
		if n := a.Config.LLM.MaxTicketSentences; n > 0 {
			clean = textprep.Excerpt(clean, n)
		}
		return a.LLM.Classify(ctx, clean)
	}
	return a.Pattern.Classify(ctx, clean)
}

// ClassifyBatch classifies tickets sequentially with the pattern engine.
func (a *App) ClassifyBatch(ctx context.Context, texts []string) ([]classifier.Result, error) {
	results := make([]classifier.Result, len(texts))
	for i, t := range texts {
		r, err := a.Classify(ctx, t, false)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

func configureLogging(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
