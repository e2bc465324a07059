package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"triage/internal/clix"
)

// categoriesCmd lists the active category table, including any custom
// categories loaded from classifier.categories_file.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the active category table",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Description", "Priority", "Auto", "Keywords", "Patterns"})
		table.SetBorder(true)

		for _, c := range appInstance.Pattern.Categories() {
			table.Append([]string{
				c.Name,
				clix.Truncate(c.Description, 50),
				c.Priority,
				fmt.Sprintf("%v", c.AutoResolvable),
				fmt.Sprintf("%d", len(c.Keywords)),
				fmt.Sprintf("%d", len(c.Patterns)),
			})
		}

		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
