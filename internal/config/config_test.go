package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage/pkg/classifier"
)

// chdir moves into dir for the duration of the test; viper reads config.yaml
// from the working directory.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, classifier.DefaultThreshold, cfg.Classifier.Threshold)
	assert.Empty(t, cfg.LLM.Provider)
	assert.Equal(t, "localhost", cfg.Server.Addr)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	content := `
classifier:
  threshold: 0.4
llm:
  provider: local
  model: llama3
  max_ticket_sentences: 6
server:
  port: "9090"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.4, cfg.Classifier.Threshold)
	assert.Equal(t, "local", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, 6, cfg.LLM.MaxTicketSentences)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"threshold out of range", "classifier:\n  threshold: 1.5\n"},
		{"unknown provider", "llm:\n  provider: hal9000\n"},
		{"negative sentence budget", "llm:\n  max_ticket_sentences: -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tc.content), 0o644))
			chdir(t, dir)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	var cfg Config
	assert.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "openai"
	assert.NoError(t, cfg.Validate())

	cfg.Classifier.Threshold = -0.1
	assert.Error(t, cfg.Validate())
}
