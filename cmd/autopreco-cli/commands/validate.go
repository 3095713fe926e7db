package commands

import (
	"fmt"
	"strings"

	"autopreco-backend/cmd/autopreco-cli/utils"
	"autopreco-backend/services/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	validateModel    *string
	validateSubmodel *string
)

func init() {
	validateModel = validateCmd.Flags().String("model", "", "The model to validate under the brand.")
	validateSubmodel = validateCmd.Flags().String("submodel", "", "The submodel to validate under the model.")
	rootCmd.AddCommand(validateCmd)
}

// validationError renders a failed validation with "did you mean" hints.
// Substring suggestions come attached to the result; when there are none,
// fall back to fuzzy ranking against the brand names.
func validationError(cat *catalog.Catalog, brand string, result catalog.ValidationResult) error {
	msg := strings.Join(result.Errors, "; ")

	var hints []string
	hints = append(hints, result.Suggestions.Brands...)
	hints = append(hints, result.Suggestions.Models...)
	hints = append(hints, result.Suggestions.Submodels...)
	if len(hints) == 0 {
		for _, match := range catalog.Nearest(brand, cat.Brands(), 3) {
			if match.Similarity >= 0.8 {
				hints = append(hints, match.Name)
			}
		}
	}

	if len(hints) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(hints, ", "))
	}
	return fmt.Errorf("%s", msg)
}

var validateCmd = &cobra.Command{
	Use:   "validate <brand> [--model <model>] [--submodel <submodel>]",
	Short: "Checks a brand/model/submodel against the catalog and prints the canonical slugs.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := loadCatalog()

		result := cat.ValidateSearchParams(args[0], *validateModel, *validateSubmodel)
		if !result.Valid {
			return validationError(cat, args[0], result)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Input", "Canonical value"})
		t.AppendRow(table.Row{args[0], result.BrandValue})
		if result.ModelValue != "" {
			t.AppendRow(table.Row{*validateModel, result.ModelValue})
		}
		if result.SubmodelValue != "" {
			t.AppendRow(table.Row{*validateSubmodel, result.SubmodelValue})
		}
		t.Render()
		return nil
	},
}
