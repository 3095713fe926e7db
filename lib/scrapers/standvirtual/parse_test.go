package standvirtual

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"15.000 €", 15000},
		{"15,000.00 €", 15000},
		{"15.000,50 €", 15000.50},
		{"9 500 EUR", 9500},
		{"1.250", 1250},
		{"899,99", 899.99},
		{"42", 42},
	}

	for _, test := range testCases {
		got, err := ParsePrice(test.input)
		require.NoError(t, err, "input: %q", test.input)
		require.Equal(t, test.expected, got, "input: %q", test.input)
	}

	_, err := ParsePrice("sob consulta")
	require.Error(t, err)
	_, err = ParsePrice("")
	require.Error(t, err)
}

func TestParseMileage(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"120 000 km", 120000},
		{"120.000 km", 120000},
		{"35000", 35000},
	}

	for _, test := range testCases {
		got, err := ParseMileage(test.input)
		require.NoError(t, err, "input: %q", test.input)
		require.Equal(t, test.expected, got, "input: %q", test.input)
	}

	_, err := ParseMileage("n/d")
	require.Error(t, err)
}

func TestExtractYear(t *testing.T) {
	require.Equal(t, 2018, ExtractYear("BMW Série 3 320d de 2018"))
	require.Equal(t, 1999, ExtractYear("1999"))
	require.Equal(t, 0, ExtractYear("sem ano"))
	require.Equal(t, 0, ExtractYear("ref 123456"))
}

func TestSearchQueryValues(t *testing.T) {
	values, err := SearchQuery{
		Brand:      "bmw",
		Model:      "serie-3",
		Submodel:   "320d",
		YearMin:    2015,
		YearMax:    2020,
		MileageMax: 150000,
		PriceMax:   30000,
		Fuel:       "gasoleo",
		Gearbox:    "manual",
	}.Values()
	require.NoError(t, err)

	require.Equal(t, "bmw", values.Get("search[filter_enum_make]"))
	require.Equal(t, "serie-3", values.Get("search[filter_enum_model]"))
	require.Equal(t, "320d", values.Get("search[filter_enum_version]"))
	require.Equal(t, "2015", values.Get("search[filter_float_first_registration_year:from]"))
	require.Equal(t, "2020", values.Get("search[filter_float_first_registration_year:to]"))
	require.Equal(t, "150000", values.Get("search[filter_float_mileage:to]"))
	require.Equal(t, "30000", values.Get("search[filter_float_price:to]"))
	require.Equal(t, "diesel", values.Get("search[filter_enum_fuel_type]"))
	require.Equal(t, "manual", values.Get("search[filter_enum_gearbox]"))
}

func TestSearchQueryValuesEmpty(t *testing.T) {
	values, err := SearchQuery{}.Values()
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestSearchQueryRejectsUnknownEnums(t *testing.T) {
	_, err := SearchQuery{Fuel: "vapor"}.Values()
	require.Error(t, err)
	_, err = SearchQuery{Gearbox: "cvt?"}.Values()
	require.Error(t, err)
}
