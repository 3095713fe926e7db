package standvirtual

import (
	"fmt"
	"net/url"
	"strconv"
)

// FuelTypes maps the canonical fuel names accepted on search input to the
// values the site's search form actually submits.
var FuelTypes = map[string]string{
	"gasolina":       "gaz",
	"gasoleo":        "diesel",
	"diesel":         "diesel",
	"hibrido":        "hibride-gaz",
	"hibrido-plugin": "plugin-hybrid",
	"eletrico":       "electric",
	"gpl":            "GPL",
	"gnc":            "GNC",
}

var Gearboxes = map[string]string{
	"manual":     "manual",
	"automatica": "automatic",
}

// SearchQuery describes one listing search. Brand, Model and Submodel hold
// the canonical slugs produced by catalog validation, never raw display
// text.
type SearchQuery struct {
	Brand      string
	Model      string
	Submodel   string
	YearMin    int
	YearMax    int
	MileageMax int
	PriceMax   int
	Fuel       string
	Gearbox    string
}

// Values renders the query in the site's form encoding. Unknown fuel or
// gearbox names are an input error, not something to silently drop.
func (q SearchQuery) Values() (url.Values, error) {
	values := url.Values{}

	if q.Brand != "" {
		values.Set("search[filter_enum_make]", q.Brand)
	}
	if q.Model != "" {
		values.Set("search[filter_enum_model]", q.Model)
	}
	if q.Submodel != "" {
		values.Set("search[filter_enum_version]", q.Submodel)
	}
	if q.YearMin > 0 {
		values.Set("search[filter_float_first_registration_year:from]", strconv.Itoa(q.YearMin))
	}
	if q.YearMax > 0 {
		values.Set("search[filter_float_first_registration_year:to]", strconv.Itoa(q.YearMax))
	}
	if q.MileageMax > 0 {
		values.Set("search[filter_float_mileage:to]", strconv.Itoa(q.MileageMax))
	}
	if q.PriceMax > 0 {
		values.Set("search[filter_float_price:to]", strconv.Itoa(q.PriceMax))
	}

	if q.Fuel != "" {
		mapped, ok := FuelTypes[q.Fuel]
		if !ok {
			return nil, fmt.Errorf("unknown fuel type %q", q.Fuel)
		}
		values.Set("search[filter_enum_fuel_type]", mapped)
	}
	if q.Gearbox != "" {
		mapped, ok := Gearboxes[q.Gearbox]
		if !ok {
			return nil, fmt.Errorf("unknown gearbox %q", q.Gearbox)
		}
		values.Set("search[filter_enum_gearbox]", mapped)
	}

	return values, nil
}
