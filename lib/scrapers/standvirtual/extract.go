package standvirtual

import (
	"encoding/json"
	"fmt"
	"strings"

	"autopreco-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Listing is one advertised vehicle on a search results page. Zero values
// mean the field was not advertised, there are no sentinel strings.
type Listing struct {
	Title     string  `json:"title"`
	PriceText string  `json:"price_text"`
	Price     float64 `json:"price"`
	Year      int     `json:"year,omitempty"`
	Mileage   int     `json:"mileage,omitempty"`
	Fuel      string  `json:"fuel,omitempty"`
	Url       string  `json:"url,omitempty"`
}

type jsonLdMileage struct {
	Value    any    `json:"value"`
	UnitCode string `json:"unitCode"`
}

type jsonLdVehicle struct {
	Name      string        `json:"name"`
	Brand     string        `json:"brand"`
	FuelType  string        `json:"fuelType"`
	ModelDate any           `json:"modelDate"`
	Mileage   jsonLdMileage `json:"mileageFromOdometer"`
}

type jsonLdPriceSpec struct {
	Price    any    `json:"price"`
	Currency string `json:"priceCurrency"`
}

type jsonLdOffer struct {
	Type      string          `json:"@type"`
	Url       string          `json:"url"`
	Id        string          `json:"@id"`
	PriceSpec jsonLdPriceSpec `json:"priceSpecification"`
	Vehicle   jsonLdVehicle   `json:"itemOffered"`
}

type jsonLdDocument struct {
	MainEntity struct {
		ItemListElement []jsonLdOffer `json:"itemListElement"`
	} `json:"mainEntity"`
}

func asString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.0f", value)
	case json.Number:
		return value.String()
	}
	return ""
}

func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		price, err := ParsePrice(value)
		if err != nil {
			return 0
		}
		return price
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// extractListings pulls listings from the structured JSON-LD block the
// site embeds in its search pages, falling back to the anchor DOM when the
// block is absent. Listing urls only appear in the DOM, so both sources
// are combined by index.
func extractListings(doc *goquery.Document) ([]Listing, error) {
	adUrls := extractAdUrls(doc)

	raw := doc.Find(`script[data-testid="listing-json-ld"]`).Text()
	if strings.Trim(raw, " \n\t") == "" {
		return extractListingsFromDom(doc, adUrls), nil
	}

	var document jsonLdDocument
	err := json.Unmarshal([]byte(raw), &document)
	if err != nil {
		return nil, fmt.Errorf("parse listing json-ld: %w", err)
	}

	var listings []Listing
	for _, offer := range document.MainEntity.ItemListElement {
		if offer.Type != "Offer" {
			continue
		}

		listing := Listing{
			Title: offer.Vehicle.Name,
			Price: asFloat(offer.PriceSpec.Price),
			Year:  ExtractYear(asString(offer.Vehicle.ModelDate)),
			Fuel:  offer.Vehicle.FuelType,
		}

		currency := offer.PriceSpec.Currency
		if currency == "" {
			currency = "EUR"
		}
		listing.PriceText = fmt.Sprintf("%.0f %s", listing.Price, currency)

		if km := asFloat(offer.Vehicle.Mileage.Value); km > 0 {
			listing.Mileage = int(km)
		}

		// anchors exist only for real ads, so the pairing index is
		// the number of offers extracted so far, not the position in
		// itemListElement (which also holds non-offer entries)
		switch {
		case len(listings) < len(adUrls):
			listing.Url = adUrls[len(listings)]
		case offer.Url != "":
			listing.Url = offer.Url
		default:
			listing.Url = offer.Id
		}

		listings = append(listings, listing)
	}
	return listings, nil
}

const adPathMarker = "/carros/anuncio/"

func extractAdUrls(doc *goquery.Document) []string {
	var urls []string
	seen := map[string]struct{}{}

	doc.Find(fmt.Sprintf(`a[href*=%q]`, adPathMarker)).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = DefaultBaseUrl + href
		}
		if _, duplicate := seen[href]; duplicate {
			return
		}
		seen[href] = struct{}{}
		urls = append(urls, href)
	})

	return urls
}

// extractListingsFromDom is the selector driven fallback for pages served
// without the JSON-LD block.
func extractListingsFromDom(doc *goquery.Document, adUrls []string) []Listing {
	var listings []Listing

	doc.Find("article").Each(func(i int, article *goquery.Selection) {
		title := strings.Trim(article.Find("h1, h2, h3").First().Text(), " \n\t")
		if title == "" {
			return
		}

		priceText := ""
		article.Find(`[data-testid="ad-price"], .offer-price, .e1b25f6f9`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			priceText = strings.Trim(htmlutil.CleanText(sel.Nodes[0]), " \n\t")
			return priceText == ""
		})
		price, err := ParsePrice(priceText)
		if err != nil {
			return
		}

		listing := Listing{
			Title:     title,
			PriceText: priceText,
			Price:     price,
			Year:      ExtractYear(article.Text()),
		}
		if mileageText := article.Find(`[data-parameter="mileage"]`).Text(); mileageText != "" {
			if km, err := ParseMileage(mileageText); err == nil {
				listing.Mileage = km
			}
		}
		if i < len(adUrls) {
			listing.Url = adUrls[i]
		}

		listings = append(listings, listing)
	})

	return listings
}
