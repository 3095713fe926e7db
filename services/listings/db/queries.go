package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type ScrapeRun struct {
	ID           string
	Brand        string
	Model        string
	Submodel     string
	StartedAt    int64
	FinishedAt   int64
	ListingCount int64
}

type Listing struct {
	ID      int64
	RunID   string
	Title   string
	Price   float64
	Year    int64
	Mileage int64
	Fuel    string
	Url     string
}

type PriceReport struct {
	RunID           string
	MinPrice        float64
	MaxPrice        float64
	MeanPrice       float64
	Considered      int64
	OutliersRemoved int64
}

const createScrapeRun = `
INSERT INTO scrape_runs (id, brand, model, submodel, started_at, finished_at, listing_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateScrapeRunParams struct {
	ID           string
	Brand        string
	Model        string
	Submodel     string
	StartedAt    int64
	FinishedAt   int64
	ListingCount int64
}

func (q *Queries) CreateScrapeRun(ctx context.Context, arg CreateScrapeRunParams) error {
	_, err := q.db.ExecContext(ctx, createScrapeRun,
		arg.ID,
		arg.Brand,
		arg.Model,
		arg.Submodel,
		arg.StartedAt,
		arg.FinishedAt,
		arg.ListingCount,
	)
	return err
}

const getScrapeRun = `
SELECT id, brand, model, submodel, started_at, finished_at, listing_count
FROM scrape_runs WHERE id = ?
`

func (q *Queries) GetScrapeRun(ctx context.Context, id string) (ScrapeRun, error) {
	row := q.db.QueryRowContext(ctx, getScrapeRun, id)
	var r ScrapeRun
	err := row.Scan(
		&r.ID,
		&r.Brand,
		&r.Model,
		&r.Submodel,
		&r.StartedAt,
		&r.FinishedAt,
		&r.ListingCount,
	)
	return r, err
}

const getRecentScrapeRuns = `
SELECT id, brand, model, submodel, started_at, finished_at, listing_count
FROM scrape_runs ORDER BY finished_at DESC LIMIT ?
`

func (q *Queries) GetRecentScrapeRuns(ctx context.Context, limit int64) ([]ScrapeRun, error) {
	rows, err := q.db.QueryContext(ctx, getRecentScrapeRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ScrapeRun
	for rows.Next() {
		var r ScrapeRun
		err := rows.Scan(
			&r.ID,
			&r.Brand,
			&r.Model,
			&r.Submodel,
			&r.StartedAt,
			&r.FinishedAt,
			&r.ListingCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createListing = `
INSERT INTO listings (run_id, title, price, year, mileage, fuel, url)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateListingParams struct {
	RunID   string
	Title   string
	Price   float64
	Year    int64
	Mileage int64
	Fuel    string
	Url     string
}

func (q *Queries) CreateListing(ctx context.Context, arg CreateListingParams) error {
	_, err := q.db.ExecContext(ctx, createListing,
		arg.RunID,
		arg.Title,
		arg.Price,
		arg.Year,
		arg.Mileage,
		arg.Fuel,
		arg.Url,
	)
	return err
}

const getListingsForRun = `
SELECT id, run_id, title, price, year, mileage, fuel, url
FROM listings WHERE run_id = ? ORDER BY id
`

func (q *Queries) GetListingsForRun(ctx context.Context, runID string) ([]Listing, error) {
	rows, err := q.db.QueryContext(ctx, getListingsForRun, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Listing
	for rows.Next() {
		var l Listing
		err := rows.Scan(
			&l.ID,
			&l.RunID,
			&l.Title,
			&l.Price,
			&l.Year,
			&l.Mileage,
			&l.Fuel,
			&l.Url,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const createPriceReport = `
INSERT INTO price_reports (run_id, min_price, max_price, mean_price, considered, outliers_removed)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreatePriceReportParams struct {
	RunID           string
	MinPrice        float64
	MaxPrice        float64
	MeanPrice       float64
	Considered      int64
	OutliersRemoved int64
}

func (q *Queries) CreatePriceReport(ctx context.Context, arg CreatePriceReportParams) error {
	_, err := q.db.ExecContext(ctx, createPriceReport,
		arg.RunID,
		arg.MinPrice,
		arg.MaxPrice,
		arg.MeanPrice,
		arg.Considered,
		arg.OutliersRemoved,
	)
	return err
}

const getPriceReport = `
SELECT run_id, min_price, max_price, mean_price, considered, outliers_removed
FROM price_reports WHERE run_id = ?
`

func (q *Queries) GetPriceReport(ctx context.Context, runID string) (PriceReport, error) {
	row := q.db.QueryRowContext(ctx, getPriceReport, runID)
	var r PriceReport
	err := row.Scan(
		&r.RunID,
		&r.MinPrice,
		&r.MaxPrice,
		&r.MeanPrice,
		&r.Considered,
		&r.OutliersRemoved,
	)
	return r, err
}
