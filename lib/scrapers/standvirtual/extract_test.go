package standvirtual

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const searchPageFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json" data-testid="listing-json-ld">
{
  "mainEntity": {
    "itemListElement": [
      {
        "@type": "Offer",
        "priceSpecification": {"price": 18500, "priceCurrency": "EUR"},
        "itemOffered": {
          "name": "BMW 320d Pack M",
          "brand": "BMW",
          "fuelType": "Diesel",
          "modelDate": "2018",
          "mileageFromOdometer": {"value": 132000, "unitCode": "KMT"}
        }
      },
      {
        "@type": "Offer",
        "priceSpecification": {"price": "21.900", "priceCurrency": "EUR"},
        "itemOffered": {
          "name": "BMW 320d Touring",
          "brand": "BMW",
          "fuelType": "Diesel",
          "modelDate": "2019"
        }
      },
      {
        "@type": "ListItem",
        "itemOffered": {"name": "not an offer"}
      }
    ]
  }
}
</script>
</head><body>
<a href="/carros/anuncio/bmw-320d-pack-m-ID1.html">BMW 320d Pack M</a>
<a href="https://www.standvirtual.com/carros/anuncio/bmw-320d-touring-ID2.html">BMW 320d Touring</a>
<a href="/carros/anuncio/bmw-320d-pack-m-ID1.html">duplicate</a>
</body></html>`

func TestExtractListingsFromJsonLd(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchPageFixture))
	require.NoError(t, err)

	listings, err := extractListings(doc)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	require.Equal(t, "BMW 320d Pack M", first.Title)
	require.Equal(t, 18500.0, first.Price)
	require.Equal(t, "18500 EUR", first.PriceText)
	require.Equal(t, 2018, first.Year)
	require.Equal(t, 132000, first.Mileage)
	require.Equal(t, "Diesel", first.Fuel)
	require.Equal(t, "https://www.standvirtual.com/carros/anuncio/bmw-320d-pack-m-ID1.html", first.Url)

	second := listings[1]
	require.Equal(t, "BMW 320d Touring", second.Title)
	require.Equal(t, 21900.0, second.Price)
	require.Equal(t, 2019, second.Year)
	require.Equal(t, 0, second.Mileage)
	require.Equal(t, "https://www.standvirtual.com/carros/anuncio/bmw-320d-touring-ID2.html", second.Url)
}

// the site sometimes emits non-offer entries (breadcrumb ListItems) ahead
// of the offers while the page only carries anchors for real ads
const leadingListItemFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json" data-testid="listing-json-ld">
{
  "mainEntity": {
    "itemListElement": [
      {
        "@type": "ListItem",
        "itemOffered": {"name": "Carros usados"}
      },
      {
        "@type": "Offer",
        "priceSpecification": {"price": 12500, "priceCurrency": "EUR"},
        "itemOffered": {"name": "Renault Clio 1.0 TCe", "modelDate": "2020"}
      },
      {
        "@type": "Offer",
        "priceSpecification": {"price": 13900, "priceCurrency": "EUR"},
        "itemOffered": {"name": "Renault Clio 1.3 TCe", "modelDate": "2021"}
      }
    ]
  }
}
</script>
</head><body>
<a href="/carros/anuncio/renault-clio-10-tce-ID3.html">Renault Clio 1.0 TCe</a>
<a href="/carros/anuncio/renault-clio-13-tce-ID4.html">Renault Clio 1.3 TCe</a>
</body></html>`

func TestExtractListingsPairsUrlsAcrossNonOfferEntries(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(leadingListItemFixture))
	require.NoError(t, err)

	listings, err := extractListings(doc)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	require.Equal(t, "Renault Clio 1.0 TCe", listings[0].Title)
	require.Equal(t, "https://www.standvirtual.com/carros/anuncio/renault-clio-10-tce-ID3.html", listings[0].Url)
	require.Equal(t, "Renault Clio 1.3 TCe", listings[1].Title)
	require.Equal(t, "https://www.standvirtual.com/carros/anuncio/renault-clio-13-tce-ID4.html", listings[1].Url)
}

const domOnlyFixture = `<!DOCTYPE html>
<html><body>
<a href="/carros/anuncio/opel-corsa-12-ID9.html">Opel Corsa</a>
<article>
  <h2>Opel Corsa 1.2</h2>
  <p data-testid="ad-price">9 750 €</p>
  <span>2016</span>
  <span data-parameter="mileage">98 000 km</span>
</article>
<article>
  <h2>Sem preço</h2>
</article>
</body></html>`

func TestExtractListingsFromDomFallback(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(domOnlyFixture))
	require.NoError(t, err)

	listings, err := extractListings(doc)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	listing := listings[0]
	require.Equal(t, "Opel Corsa 1.2", listing.Title)
	require.Equal(t, 9750.0, listing.Price)
	require.Equal(t, 2016, listing.Year)
	require.Equal(t, 98000, listing.Mileage)
	require.Equal(t, "https://www.standvirtual.com/carros/anuncio/opel-corsa-12-ID9.html", listing.Url)
}

func TestExtractListingsRejectsCorruptJsonLd(t *testing.T) {
	page := `<html><head><script data-testid="listing-json-ld">{not json</script></head></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	_, err = extractListings(doc)
	require.Error(t, err)
}
