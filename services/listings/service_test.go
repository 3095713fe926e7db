package listings

import (
	"context"
	"testing"
	"time"

	"autopreco-backend/lib/scrapers/standvirtual"
	"autopreco-backend/lib/testutil"
	"autopreco-backend/services/listings/db"
	"autopreco-backend/services/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestService(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/listings",
		DbSchema: db.Schema,
	})
	defer cleanup()
	service := NewService(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	started := time.Unix(1700000000, 0)
	finished := started.Add(time.Minute)
	scraped := []standvirtual.Listing{
		{Title: "BMW 320d Pack M", Price: 21500, Year: 2019, Mileage: 98000, Fuel: "Diesel", Url: "https://www.standvirtual.com/carros/anuncio/bmw-320d-1.html"},
		{Title: "BMW 320d Touring", Price: 19900, Year: 2018, Mileage: 132000, Fuel: "Diesel", Url: "https://www.standvirtual.com/carros/anuncio/bmw-320d-2.html"},
	}
	report := pricing.Aggregate([]float64{21500, 19900})

	runID, err := service.RecordRun(ctx, RecordRunParams{
		Brand:      "bmw",
		Model:      "serie-3",
		Submodel:   "320d",
		StartedAt:  started,
		FinishedAt: finished,
		Listings:   scraped,
		Report:     report,
	})
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := service.GetRun(ctx, runID)
	require.NoError(t, err)
	require.Equal(t, "bmw", run.Brand)
	require.Equal(t, "serie-3", run.Model)
	require.Equal(t, "320d", run.Submodel)
	require.Equal(t, 2, run.ListingCount)
	require.True(t, run.StartedAt.Equal(started))
	require.True(t, run.FinishedAt.Equal(finished))
	require.Empty(t, cmp.Diff(scraped, run.Listings))

	require.NotNil(t, run.Report)
	require.Equal(t, float64(19900), *run.Report.Min)
	require.Equal(t, float64(21500), *run.Report.Max)
	require.Equal(t, float64(20700), *run.Report.Mean)
	require.Equal(t, 2, run.Report.Considered)
	require.Equal(t, 0, run.Report.OutliersRemoved)
}

func TestRunWithoutReport(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/listings",
		DbSchema: db.Schema,
	})
	defer cleanup()
	service := NewService(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	now := time.Unix(1700000000, 0)
	runID, err := service.RecordRun(ctx, RecordRunParams{
		Brand:      "bmw",
		StartedAt:  now,
		FinishedAt: now,
	})
	require.NoError(t, err)

	run, err := service.GetRun(ctx, runID)
	require.NoError(t, err)
	require.Nil(t, run.Report)
	require.Empty(t, run.Listings)
}

func TestRecentRuns(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/listings",
		DbSchema: db.Schema,
	})
	defer cleanup()
	service := NewService(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	base := time.Unix(1700000000, 0)
	for i, brand := range []string{"bmw", "audi", "opel"} {
		_, err := service.RecordRun(ctx, RecordRunParams{
			Brand:      brand,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := service.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "opel", runs[0].Brand)
	require.Equal(t, "audi", runs[1].Brand)
}
