package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"triage/internal/clix"
)

var batchFile string

// classifyBatchCmd classifies multiple tickets with the pattern engine and
// prints a summary table.
var classifyBatchCmd = &cobra.Command{
	Use:   "batch [ticket...]",
	Short: "Classify multiple tickets",
	Long: `Classifies each argument as one ticket, or reads tickets from --file
(one per line), and prints a summary table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		tickets := args
		if batchFile != "" {
			fromFile, err := clix.ReadTicketLines(batchFile)
			if err != nil {
				return err
			}
			tickets = append(tickets, fromFile...)
		}
		if len(tickets) == 0 {
			return fmt.Errorf("no tickets provided: pass them as arguments or via --file")
		}

		results, err := appInstance.ClassifyBatch(cmd.Context(), tickets)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "Ticket", "Category", "Confidence", "Priority", "Auto"})
		table.SetBorder(true)
		table.SetRowLine(true)

		for i, r := range results {
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				clix.Truncate(r.Text, 40),
				r.Category.Name,
				fmt.Sprintf("%.2f", r.Confidence),
				r.Category.Priority,
				fmt.Sprintf("%v", r.Category.AutoResolvable),
			})
		}

		table.Render()
		return nil
	},
}

func init() {
	classifyCmd.AddCommand(classifyBatchCmd)
	classifyBatchCmd.Flags().StringVar(&batchFile, "file", "", "Read tickets from a file, one per line")
}
