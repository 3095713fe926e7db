package catalog

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchParams(t *testing.T) {
	c := testCatalog()

	for _, test := range []struct {
		name     string
		brand    string
		model    string
		submodel string
		expected ValidationResult
	}{
		{
			name:     "empty params are valid",
			expected: ValidationResult{Valid: true},
		},
		{
			name:  "brand only",
			brand: "bmw",
			expected: ValidationResult{
				Valid:      true,
				BrandValue: "bmw",
			},
		},
		{
			name:     "full triple",
			brand:    "bmw",
			model:    "série 3",
			submodel: "320D",
			expected: ValidationResult{
				Valid:         true,
				BrandValue:    "bmw",
				ModelValue:    "serie-3",
				SubmodelValue: "320d",
			},
		},
		{
			name:  "unknown brand without suggestions",
			brand: "Nonexistent",
			expected: ValidationResult{
				Errors: []string{`brand "Nonexistent" not found`},
			},
		},
		{
			name:  "unknown brand with suggestions",
			brand: "merc",
			expected: ValidationResult{
				Errors: []string{`brand "merc" not found`},
				Suggestions: Suggestions{
					Brands: []string{"Mercedes-Benz"},
				},
			},
		},
		{
			name:  "misspelled brand gets no substring suggestions",
			brand: "bmv",
			expected: ValidationResult{
				Errors: []string{`brand "bmv" not found`},
			},
		},
		{
			name:  "unknown model under valid brand",
			brand: "BMW",
			model: "Golf",
			expected: ValidationResult{
				BrandValue: "bmw",
				Errors:     []string{`model "Golf" not found for brand "BMW"`},
			},
		},
		{
			name:  "unknown model with suggestions",
			brand: "BMW",
			model: "série",
			expected: ValidationResult{
				BrandValue: "bmw",
				Errors:     []string{`model "série" not found for brand "BMW"`},
				Suggestions: Suggestions{
					Models: []string{"Série 3"},
				},
			},
		},
		{
			name:     "unknown submodel with suggestions",
			brand:    "BMW",
			model:    "Série 3",
			submodel: "320",
			expected: ValidationResult{
				BrandValue: "bmw",
				ModelValue: "serie-3",
				Errors:     []string{`submodel "320" not found for model "Série 3"`},
				Suggestions: Suggestions{
					Submodels: []string{"320d"},
				},
			},
		},
		{
			name:     "model without brand is ignored",
			model:    "Série 3",
			expected: ValidationResult{Valid: true},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := c.ValidateSearchParams(test.brand, test.model, test.submodel)
			diff := cmp.Diff(test.expected, got)
			require.Empty(t, diff)
		})
	}
}

func TestValidateSearchParamsIsIdempotent(t *testing.T) {
	c := testCatalog()

	first := c.ValidateSearchParams("bmw", "série 3", "")
	second := c.ValidateSearchParams("bmw", "série 3", "")
	require.Empty(t, cmp.Diff(first, second))
}

func TestValidateSearchParamsCapsSuggestions(t *testing.T) {
	models := make([]Model, 8)
	for i := range models {
		models[i] = Model{Text: fmt.Sprintf("Variant %c", 'A'+i)}
	}
	c := New([]Brand{{Name: "Testmarque", Models: models}})

	got := c.ValidateSearchParams("Testmarque", "Variant", "")
	require.False(t, got.Valid)
	require.Len(t, got.Suggestions.Models, 5)
}
