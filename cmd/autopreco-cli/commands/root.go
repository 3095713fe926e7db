package commands

import (
	"context"
	"fmt"
	"os"

	"autopreco-backend/services/catalog"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autopreco-cli",
	Short: "autopreco-cli checks used car prices on standvirtual.com.",
}

var catalogFile *string

func init() {
	catalogFile = rootCmd.PersistentFlags().String("catalog", "catalog.json", "The brand/model catalog to validate against.")
}

func loadCatalog() *catalog.Catalog {
	return catalog.LoadOrDefault(*catalogFile)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
