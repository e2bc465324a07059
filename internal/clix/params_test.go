package clix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThresholdFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("threshold", 0.25, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestParseThreshold(t *testing.T) {
	// Unset flag reports not-set so callers fall back to config.
	_, set, err := ParseThreshold(newThresholdFlags(t))
	require.NoError(t, err)
	assert.False(t, set)

	v, set, err := ParseThreshold(newThresholdFlags(t, "--threshold=0.4"))
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, 0.4, v)

	_, _, err = ParseThreshold(newThresholdFlags(t, "--threshold=1.5"))
	assert.Error(t, err)
}

func TestReadTicketLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.txt")
	content := "I forgot my password\n\n  C drive full  \nPrinter not working\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tickets, err := ReadTicketLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"I forgot my password", "C drive full", "Printer not working"}, tickets)
}

func TestReadTicketLines_Missing(t *testing.T) {
	_, err := ReadTicketLines(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly-10", Truncate("exactly-10", 10))
	assert.Equal(t, "a long ...", Truncate("a long ticket text", 10))
}
