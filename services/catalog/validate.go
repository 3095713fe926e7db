package catalog

import "fmt"

const maxSuggestions = 5

type Suggestions struct {
	Brands    []string `json:"brands,omitempty"`
	Models    []string `json:"models,omitempty"`
	Submodels []string `json:"submodels,omitempty"`
}

// ValidationResult reports whether a (brand, model, submodel) triple refers
// to real catalog entries. On success the canonical slugs are filled in,
// those are the values the collector must search with, not the raw display
// text the user typed.
type ValidationResult struct {
	Valid         bool        `json:"valid"`
	BrandValue    string      `json:"brand_value,omitempty"`
	ModelValue    string      `json:"model_value,omitempty"`
	SubmodelValue string      `json:"submodel_value,omitempty"`
	Errors        []string    `json:"errors,omitempty"`
	Suggestions   Suggestions `json:"suggestions"`
}

func capStrings(list []string) []string {
	if len(list) > maxSuggestions {
		return list[:maxSuggestions]
	}
	return list
}

func modelTexts(models []Model) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.Text
	}
	return out
}

func submodelTexts(submodels []Submodel) []string {
	out := make([]string, len(submodels))
	for i, s := range submodels {
		out[i] = s.Text
	}
	return out
}

// ValidateSearchParams checks a user-supplied triple, any element of which
// may be empty (absent). An entirely empty triple is trivially valid. A
// miss is a normal negative result carrying suggestions, never an error.
func (c *Catalog) ValidateSearchParams(brand, model, submodel string) ValidationResult {
	result := ValidationResult{Valid: true}

	if brand != "" {
		value, ok := c.BrandValue(brand)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("brand %q not found", brand))
			result.Suggestions.Brands = capStrings(c.SuggestBrands(brand))
			return result
		}
		result.BrandValue = value
	}

	if model != "" && brand != "" {
		value, ok := c.ModelValue(brand, model)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("model %q not found for brand %q", model, brand))
			result.Suggestions.Models = capStrings(modelTexts(c.SuggestModels(brand, model)))
			return result
		}
		result.ModelValue = value
	}

	if submodel != "" && model != "" && brand != "" {
		value, ok := c.SubmodelValue(brand, model, submodel)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("submodel %q not found for model %q", submodel, model))
			result.Suggestions.Submodels = capStrings(submodelTexts(c.SuggestSubmodels(brand, model, submodel)))
			return result
		}
		result.SubmodelValue = value
	}

	return result
}
