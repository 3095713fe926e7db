package commands

import (
	"autopreco-backend/cmd/autopreco-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(brandsCmd)
}

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Lists the brands known to the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		cat := loadCatalog()

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Brand", "Value", "Models"})
		for _, name := range cat.Brands() {
			value, _ := cat.BrandValue(name)
			t.AppendRow(table.Row{name, value, len(cat.ModelsForBrand(name))})
		}
		t.Render()
	},
}
