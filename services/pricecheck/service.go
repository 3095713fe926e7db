// Package pricecheck orchestrates a price check: validate the requested
// vehicle against the catalog, scrape matching listings, aggregate their
// prices and persist the run.
package pricecheck

import (
	"context"
	"strings"
	"time"

	"autopreco-backend/lib/scrapers/standvirtual"
	"autopreco-backend/services/catalog"
	"autopreco-backend/services/listings"
	"autopreco-backend/services/pricing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/pricecheck")

// Scraper abstracts the listing source so tests can substitute a fake.
type Scraper interface {
	Search(ctx context.Context, query standvirtual.SearchQuery) ([]standvirtual.Listing, error)
}

// ValidationError is returned when the requested brand, model or submodel is
// not in the catalog. It carries the full result so callers can surface the
// suggestions to the user.
type ValidationError struct {
	Result catalog.ValidationResult
}

func (e ValidationError) Error() string {
	return strings.Join(e.Result.Errors, "; ")
}

type Service struct {
	catalog *catalog.Catalog
	scraper Scraper
	store   listings.Service
}

func NewService(cat *catalog.Catalog, scraper Scraper, store listings.Service) Service {
	return Service{
		catalog: cat,
		scraper: scraper,
		store:   store,
	}
}

type SearchParams struct {
	Brand      string `json:"brand"`
	Model      string `json:"model,omitempty"`
	Submodel   string `json:"submodel,omitempty"`
	YearMin    int    `json:"year_min,omitempty"`
	YearMax    int    `json:"year_max,omitempty"`
	MileageMax int    `json:"mileage_max,omitempty"`
	PriceMax   int    `json:"price_max,omitempty"`
	Fuel       string `json:"fuel,omitempty"`
	Gearbox    string `json:"gearbox,omitempty"`
}

type Report struct {
	RunID    string                 `json:"run_id"`
	Brand    string                 `json:"brand"`
	Model    string                 `json:"model,omitempty"`
	Submodel string                 `json:"submodel,omitempty"`
	Listings []standvirtual.Listing `json:"listings"`
	Prices   pricing.Result         `json:"prices"`
}

// Search runs a full price check. The brand is required; model and submodel
// narrow the search when present. Catalog failures come back as a
// ValidationError, scrape failures are returned as-is.
func (s Service) Search(ctx context.Context, params SearchParams) (Report, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	span.SetAttributes(
		attribute.String("brand", params.Brand),
		attribute.String("model", params.Model),
		attribute.String("submodel", params.Submodel),
	)

	if strings.TrimSpace(params.Brand) == "" {
		err := ValidationError{Result: catalog.ValidationResult{
			Errors: []string{"brand is required"},
		}}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	validation := s.catalog.ValidateSearchParams(params.Brand, params.Model, params.Submodel)
	if !validation.Valid {
		err := ValidationError{Result: validation}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	started := time.Now()
	scraped, err := s.scraper.Search(ctx, standvirtual.SearchQuery{
		Brand:      validation.BrandValue,
		Model:      validation.ModelValue,
		Submodel:   validation.SubmodelValue,
		YearMin:    params.YearMin,
		YearMax:    params.YearMax,
		MileageMax: params.MileageMax,
		PriceMax:   params.PriceMax,
		Fuel:       params.Fuel,
		Gearbox:    params.Gearbox,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}
	finished := time.Now()

	prices := make([]float64, 0, len(scraped))
	for _, l := range scraped {
		prices = append(prices, l.Price)
	}
	result := pricing.Aggregate(prices)

	runID, err := s.store.RecordRun(ctx, listings.RecordRunParams{
		Brand:      validation.BrandValue,
		Model:      validation.ModelValue,
		Submodel:   validation.SubmodelValue,
		StartedAt:  started,
		FinishedAt: finished,
		Listings:   scraped,
		Report:     result,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	span.SetAttributes(attribute.Int("listings", len(scraped)))

	return Report{
		RunID:    runID,
		Brand:    validation.BrandValue,
		Model:    validation.ModelValue,
		Submodel: validation.SubmodelValue,
		Listings: scraped,
		Prices:   result,
	}, nil
}
