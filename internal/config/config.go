package config

import (
	"fmt"

	"github.com/spf13/viper"

	"triage/pkg/classifier"
)

// Config is the full application configuration, read from config.yaml in
// the working directory and from the environment.
type Config struct {
	Classifier struct {
		Threshold      float64 `mapstructure:"threshold"`
		CategoriesFile string  `mapstructure:"categories_file"`
	} `mapstructure:"classifier"`

	LLM struct {
		Provider string `mapstructure:"provider"` // "openai", "azure", "local", "gemini", or empty to disable
		APIKey   string `mapstructure:"api_key"`
		BaseURL  string `mapstructure:"base_url"`
		Model    string `mapstructure:"model"`
		// MaxTicketSentences caps how much of a long ticket goes into the
		// prompt. Zero sends the whole ticket.
		MaxTicketSentences int `mapstructure:"max_ticket_sentences"`
	} `mapstructure:"llm"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig reads config.yaml (optional) plus environment variables and
// validates the result. OPENAI_API_KEY is bound without a prefix so
// existing shell setups keep working; the Gemini classifier reads
// GEMINI_API_KEY itself.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("classifier.threshold", classifier.DefaultThreshold)
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.max_ticket_sentences", 0)
	viper.SetDefault("server.addr", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()
	viper.BindEnv("llm.api_key", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the classifiers would refuse later anyway, so
// misconfiguration surfaces at startup.
func (c *Config) Validate() error {
	if c.Classifier.Threshold < 0 || c.Classifier.Threshold > 1 {
		return fmt.Errorf("classifier.threshold must be in [0,1], got %v", c.Classifier.Threshold)
	}
	switch classifier.Provider(c.LLM.Provider) {
	case "", classifier.ProviderOpenAI, classifier.ProviderAzure, classifier.ProviderLocal, classifier.ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be one of openai, azure, local, gemini (got %q)", c.LLM.Provider)
	}
	if c.LLM.MaxTicketSentences < 0 {
		return fmt.Errorf("llm.max_ticket_sentences cannot be negative")
	}
	return nil
}
