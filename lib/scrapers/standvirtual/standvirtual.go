package standvirtual

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"autopreco-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("autopreco.scrapers.standvirtual")

const DefaultBaseUrl = "https://www.standvirtual.com"
const searchPath = "/carros"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	maxPages   int
	maxResults int
}

type ClientOptions struct {
	// BaseUrl defaults to the production site.
	BaseUrl string
	// MaxPages bounds how many result pages one search walks, 0 means
	// a sensible default.
	MaxPages int
	// MaxResults bounds how many listings one search returns.
	MaxResults int
}

func NewClient(opts ClientOptions) (*Client, error) {
	rawUrl := opts.BaseUrl
	if rawUrl == "" {
		rawUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(rawUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("accept-language", "pt-PT,pt;q=0.9,en;q=0.8")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/standvirtual/http")

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = 25
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 1000
	}

	return &Client{
		BaseUrl:    baseUrl,
		Http:       client,
		maxPages:   maxPages,
		maxResults: maxResults,
	}, nil
}

// Search walks the paginated results for a query and returns every
// extracted listing. Pagination stops at the first empty page, the page
// budget, or the result budget, whichever comes first.
func (c *Client) Search(ctx context.Context, query SearchQuery) ([]Listing, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	values, err := query.Values()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid search query")
		return nil, err
	}
	span.SetAttributes(attribute.String("query", values.Encode()))

	var all []Listing
	for page := 1; page <= c.maxPages; page++ {
		if page > 1 {
			// keep some jitter between page fetches so the walk
			// doesn't look like a tight loop
			delay, err := random.IntRange(500, 1500)
			if err == nil {
				select {
				case <-time.After(time.Duration(delay) * time.Millisecond):
				case <-ctx.Done():
					return all, ctx.Err()
				}
			}
			values.Set("page", strconv.Itoa(page))
		}

		listings, err := c.fetchPage(ctx, values)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			slog.WarnContext(ctx, "stopping pagination on fetch failure", "page", page, "err", err)
			break
		}
		if len(listings) == 0 {
			break
		}

		all = append(all, listings...)
		if len(all) >= c.maxResults {
			all = all[:c.maxResults]
			break
		}
	}

	slog.InfoContext(ctx, "search finished", "listings", len(all))
	span.SetAttributes(attribute.Int("listings", len(all)))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, values url.Values) ([]Listing, error) {
	ctx, span := tracer.Start(ctx, "fetchPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(values).
		Get(searchPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search page")
		return nil, err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("search page returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search page html")
		return nil, err
	}

	listings, err := extractListings(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract listings")
		return nil, err
	}

	span.SetAttributes(attribute.Int("listings", len(listings)))
	return listings, nil
}
