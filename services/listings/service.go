// Package listings persists the results of scrape runs: the raw listings, the
// run metadata and the price report computed from each batch.
package listings

import (
	"context"
	"database/sql"
	"time"

	"autopreco-backend/lib/scrapers/standvirtual"
	"autopreco-backend/services/listings/db"
	"autopreco-backend/services/pricing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/listings")

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

type Run struct {
	ID           string                 `json:"id"`
	Brand        string                 `json:"brand"`
	Model        string                 `json:"model,omitempty"`
	Submodel     string                 `json:"submodel,omitempty"`
	StartedAt    time.Time              `json:"started_at"`
	FinishedAt   time.Time              `json:"finished_at"`
	ListingCount int                    `json:"listing_count"`
	Listings     []standvirtual.Listing `json:"listings,omitempty"`
	Report       *pricing.Result        `json:"report,omitempty"`
}

type RecordRunParams struct {
	Brand      string
	Model      string
	Submodel   string
	StartedAt  time.Time
	FinishedAt time.Time
	Listings   []standvirtual.Listing
	Report     pricing.Result
}

// RecordRun stores a scrape run, its listings and its price report in a
// single transaction and returns the generated run id.
func (s Service) RecordRun(ctx context.Context, arg RecordRunParams) (string, error) {
	ctx, span := tracer.Start(ctx, "RecordRun")
	defer span.End()

	span.SetAttributes(
		attribute.String("brand", arg.Brand),
		attribute.String("model", arg.Model),
		attribute.Int("listings", len(arg.Listings)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	runID := uuid.NewString()
	err = txqry.CreateScrapeRun(ctx, db.CreateScrapeRunParams{
		ID:           runID,
		Brand:        arg.Brand,
		Model:        arg.Model,
		Submodel:     arg.Submodel,
		StartedAt:    arg.StartedAt.Unix(),
		FinishedAt:   arg.FinishedAt.Unix(),
		ListingCount: int64(len(arg.Listings)),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	for _, l := range arg.Listings {
		err := txqry.CreateListing(ctx, db.CreateListingParams{
			RunID:   runID,
			Title:   l.Title,
			Price:   l.Price,
			Year:    int64(l.Year),
			Mileage: int64(l.Mileage),
			Fuel:    l.Fuel,
			Url:     l.Url,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", err
		}
	}

	if arg.Report.Considered > 0 {
		err := txqry.CreatePriceReport(ctx, db.CreatePriceReportParams{
			RunID:           runID,
			MinPrice:        *arg.Report.Min,
			MaxPrice:        *arg.Report.Max,
			MeanPrice:       *arg.Report.Mean,
			Considered:      int64(arg.Report.Considered),
			OutliersRemoved: int64(arg.Report.OutliersRemoved),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return runID, nil
}

// GetRun returns a stored run with its listings and report.
func (s Service) GetRun(ctx context.Context, id string) (Run, error) {
	ctx, span := tracer.Start(ctx, "GetRun")
	defer span.End()

	span.SetAttributes(attribute.String("run_id", id))

	row, err := s.qry.GetScrapeRun(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Run{}, err
	}

	rows, err := s.qry.GetListingsForRun(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Run{}, err
	}
	listings := make([]standvirtual.Listing, len(rows))
	for i, l := range rows {
		listings[i] = standvirtual.Listing{
			Title:   l.Title,
			Price:   l.Price,
			Year:    int(l.Year),
			Mileage: int(l.Mileage),
			Fuel:    l.Fuel,
			Url:     l.Url,
		}
	}

	run := Run{
		ID:           row.ID,
		Brand:        row.Brand,
		Model:        row.Model,
		Submodel:     row.Submodel,
		StartedAt:    time.Unix(row.StartedAt, 0),
		FinishedAt:   time.Unix(row.FinishedAt, 0),
		ListingCount: int(row.ListingCount),
		Listings:     listings,
	}

	report, err := s.qry.GetPriceReport(ctx, id)
	if err == nil {
		run.Report = &pricing.Result{
			Min:             &report.MinPrice,
			Max:             &report.MaxPrice,
			Mean:            &report.MeanPrice,
			Considered:      int(report.Considered),
			OutliersRemoved: int(report.OutliersRemoved),
		}
	} else if err != sql.ErrNoRows {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Run{}, err
	}

	return run, nil
}

// RecentRuns returns run metadata for the most recent runs, newest first.
func (s Service) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx, span := tracer.Start(ctx, "RecentRuns")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.qry.GetRecentScrapeRuns(ctx, int64(limit))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	runs := make([]Run, len(rows))
	for i, r := range rows {
		runs[i] = Run{
			ID:           r.ID,
			Brand:        r.Brand,
			Model:        r.Model,
			Submodel:     r.Submodel,
			StartedAt:    time.Unix(r.StartedAt, 0),
			FinishedAt:   time.Unix(r.FinishedAt, 0),
			ListingCount: int(r.ListingCount),
		}
	}
	return runs, nil
}
