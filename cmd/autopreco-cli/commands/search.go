package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"autopreco-backend/cmd/autopreco-cli/utils"
	"autopreco-backend/lib/scrapers/standvirtual"
	"autopreco-backend/lib/serviceutil"
	"autopreco-backend/lib/sqliteutil"
	"autopreco-backend/services/listings"
	"autopreco-backend/services/listings/db"
	"autopreco-backend/services/pricecheck"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	searchDb       *string
	searchModel    *string
	searchSubmodel *string
	searchYearMin  *int
	searchYearMax  *int
	searchMileage  *int
	searchPriceMax *int
	searchFuel     *string
	searchGearbox  *string
)

func init() {
	searchDb = searchCmd.Flags().String("db", "results.db", "The database to write scrape results to.")
	searchModel = searchCmd.Flags().String("model", "", "The model to search for.")
	searchSubmodel = searchCmd.Flags().String("submodel", "", "The submodel to search for.")
	searchYearMin = searchCmd.Flags().Int("year-min", 0, "The minimum first registration year.")
	searchYearMax = searchCmd.Flags().Int("year-max", 0, "The maximum first registration year.")
	searchMileage = searchCmd.Flags().Int("mileage-max", 0, "The maximum mileage in km.")
	searchPriceMax = searchCmd.Flags().Int("price-max", 0, "The maximum price in euros.")
	searchFuel = searchCmd.Flags().String("fuel", "", "The fuel type (gasolina, gasoleo, hibrido, eletrico...).")
	searchGearbox = searchCmd.Flags().String("gearbox", "", "The gearbox type (manual, automatica).")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <brand> [flags]",
	Short: "Scrapes listings for a vehicle and prints a price report.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cat := loadCatalog()

		client, err := standvirtual.NewClient(standvirtual.ClientOptions{})
		if err != nil {
			serviceutil.Fatal("failed to initialize standvirtual client", err)
		}

		out, err := sqliteutil.OpenDB(db.Schema, *searchDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()

		service := pricecheck.NewService(cat, client, listings.NewService(out))

		t1 := time.Now()
		report, err := service.Search(cmd.Context(), pricecheck.SearchParams{
			Brand:      args[0],
			Model:      *searchModel,
			Submodel:   *searchSubmodel,
			YearMin:    *searchYearMin,
			YearMax:    *searchYearMax,
			MileageMax: *searchMileage,
			PriceMax:   *searchPriceMax,
			Fuel:       *searchFuel,
			Gearbox:    *searchGearbox,
		})
		if err != nil {
			var verr pricecheck.ValidationError
			if errors.As(err, &verr) {
				serviceutil.Fatal("invalid vehicle", validationError(cat, args[0], verr.Result))
			}
			serviceutil.Fatal("price check failed", err)
		}
		t2 := time.Now()

		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds(), "run_id", report.RunID)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Title", "Price", "Year", "Mileage", "Fuel"})
		for _, l := range report.Listings {
			t.AppendRow(table.Row{l.Title, l.Price, l.Year, l.Mileage, l.Fuel})
		}
		t.Render()

		if report.Prices.Mean == nil {
			slog.Warn("no usable prices found")
			return
		}

		summary := utils.NewTable()
		summary.AppendHeader(table.Row{"Min", "Max", "Mean", "Considered", "Outliers removed"})
		summary.AppendRow(table.Row{
			fmt.Sprintf("%.0f €", *report.Prices.Min),
			fmt.Sprintf("%.0f €", *report.Prices.Max),
			fmt.Sprintf("%.0f €", *report.Prices.Mean),
			report.Prices.Considered,
			report.Prices.OutliersRemoved,
		})
		summary.Render()
	},
}
