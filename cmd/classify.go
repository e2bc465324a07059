package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"triage/internal/clix"
	"triage/pkg/classifier"
)

var (
	classifyLLM  bool
	classifyJSON bool
)

// classifyCmd classifies a single ticket given as arguments. Its "batch"
// subcommand (classify_batch.go) handles multiple tickets.
var classifyCmd = &cobra.Command{
	Use:   "classify <ticket text...>",
	Short: "Classify a single support ticket",
	Long: `Classifies the given ticket text and prints the matched category,
confidence, priority, and whether the ticket is auto-resolvable.

Uses the deterministic pattern matcher by default; --llm switches to the
configured LLM provider.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if t, set, err := clix.ParseThreshold(cmd.Flags()); err != nil {
			return err
		} else if set {
			if err := appInstance.Pattern.SetThreshold(t); err != nil {
				return err
			}
		}

		text := strings.Join(args, " ")
		result, err := appInstance.Classify(cmd.Context(), text, classifyLLM)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		if classifyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resultJSON(result))
		}

		printResult(result)
		return nil
	},
}

func printResult(r classifier.Result) {
	fmt.Printf("Category:        %s\n", r.Category.Name)
	fmt.Printf("Description:     %s\n", r.Category.Description)
	fmt.Printf("Confidence:      %.2f\n", r.Confidence)
	fmt.Print("Priority:        ")
	priorityColor(r.Category.Priority).Println(r.Category.Priority)
	fmt.Printf("Auto-resolvable: %v\n", r.Category.AutoResolvable)
	if len(r.MatchedPatterns) > 0 {
		fmt.Printf("Matched:         %s\n", strings.Join(r.MatchedPatterns, ", "))
	}
}

func priorityColor(priority string) *color.Color {
	switch priority {
	case classifier.PriorityCritical:
		return color.New(color.FgHiRed, color.Bold)
	case classifier.PriorityHigh:
		return color.New(color.FgRed)
	case classifier.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// resultJSON mirrors the flattened shape the HTTP API returns.
func resultJSON(r classifier.Result) map[string]interface{} {
	return map[string]interface{}{
		"category":         r.Category.Name,
		"description":      r.Category.Description,
		"confidence":       r.Confidence,
		"priority":         r.Category.Priority,
		"auto_resolvable":  r.Category.AutoResolvable,
		"matched_patterns": r.MatchedPatterns,
	}
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyLLM, "llm", false, "Use the configured LLM provider instead of pattern matching")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print the result as JSON")
	classifyCmd.Flags().Float64("threshold", classifier.DefaultThreshold, "Minimum confidence before falling back to \"other\"")
}
