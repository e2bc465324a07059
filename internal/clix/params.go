package clix

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// ParseThreshold reads the --threshold flag. The boolean reports whether
// the flag was set at all, so callers can fall back to config.
func ParseThreshold(flags *pflag.FlagSet) (float64, bool, error) {
	if !flags.Changed("threshold") {
		return 0, false, nil
	}
	t, err := flags.GetFloat64("threshold")
	if err != nil {
		return 0, false, err
	}
	if t < 0 || t > 1 {
		return 0, false, fmt.Errorf("threshold must be in [0,1], got %v", t)
	}
	return t, true, nil
}

// ReadTicketLines loads tickets from a file, one per line, skipping blanks.
func ReadTicketLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tickets file: %w", err)
	}
	defer f.Close()

	var tickets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			tickets = append(tickets, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tickets file: %w", err)
	}
	return tickets, nil
}

// Truncate shortens s for table display.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
