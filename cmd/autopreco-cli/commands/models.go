package commands

import (
	"strings"

	"autopreco-backend/cmd/autopreco-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:   "models <brand>",
	Short: "Lists the models of a brand, with their submodels.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := loadCatalog()

		result := cat.ValidateSearchParams(args[0], "", "")
		if !result.Valid {
			return validationError(cat, args[0], result)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Model", "Value", "Submodels"})
		for _, m := range cat.ModelsForBrand(args[0]) {
			var submodels []string
			for _, s := range m.Submodels {
				submodels = append(submodels, s.Text)
			}
			t.AppendRow(table.Row{m.Text, m.Value, strings.Join(submodels, ", ")})
		}
		t.Render()
		return nil
	},
}
