package catalog

import (
	"slices"

	"autopreco-backend/lib/textutil"
)

type Submodel struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type Model struct {
	Text      string     `json:"text"`
	Value     string     `json:"value"`
	Submodels []Submodel `json:"submodels,omitempty"`
}

type Brand struct {
	Name   string  `json:"name"`
	Value  string  `json:"value"`
	Models []Model `json:"models"`
}

// Catalog is the reference set of valid brand/model/submodel combinations.
// It is immutable after construction and safe for concurrent readers.
type Catalog struct {
	brands   []Brand
	brandIdx map[string]int
}

// New builds a catalog over the given brands. Brands are sorted by display
// name so suggestion order is deterministic. Missing canonical values are
// derived from the display text.
func New(brands []Brand) *Catalog {
	sorted := slices.Clone(brands)
	slices.SortFunc(sorted, func(a, b Brand) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})

	idx := make(map[string]int, len(sorted))
	for i := range sorted {
		if sorted[i].Value == "" {
			sorted[i].Value = textutil.Slugify(sorted[i].Name)
		}
		models := slices.Clone(sorted[i].Models)
		for j := range models {
			if models[j].Value == "" {
				models[j].Value = textutil.Slugify(models[j].Text)
			}
			submodels := slices.Clone(models[j].Submodels)
			for k := range submodels {
				if submodels[k].Value == "" {
					submodels[k].Value = textutil.Slugify(submodels[k].Text)
				}
			}
			models[j].Submodels = submodels
		}
		sorted[i].Models = models
		idx[textutil.FoldKey(sorted[i].Name)] = i
	}

	return &Catalog{brands: sorted, brandIdx: idx}
}

// Brands returns every brand display name in catalog order.
func (c *Catalog) Brands() []string {
	names := make([]string, len(c.brands))
	for i, b := range c.brands {
		names[i] = b.Name
	}
	return names
}

func (c *Catalog) brand(name string) (Brand, bool) {
	i, ok := c.brandIdx[textutil.FoldKey(name)]
	if !ok {
		return Brand{}, false
	}
	return c.brands[i], true
}

func (c *Catalog) model(brandName, modelText string) (Model, bool) {
	brand, ok := c.brand(brandName)
	if !ok {
		return Model{}, false
	}
	key := textutil.FoldKey(modelText)
	for _, m := range brand.Models {
		if textutil.FoldKey(m.Text) == key {
			return m, true
		}
	}
	return Model{}, false
}

func (c *Catalog) submodel(brandName, modelText, submodelText string) (Submodel, bool) {
	model, ok := c.model(brandName, modelText)
	if !ok {
		return Submodel{}, false
	}
	key := textutil.FoldKey(submodelText)
	for _, s := range model.Submodels {
		if textutil.FoldKey(s.Text) == key {
			return s, true
		}
	}
	return Submodel{}, false
}

// IsValidBrand reports whether name matches a brand display name. Matching
// is case- and accent-insensitive, there is no fuzzy matching at this stage.
func (c *Catalog) IsValidBrand(name string) bool {
	_, ok := c.brand(name)
	return ok
}

// ModelsForBrand returns the models of a brand, or an empty slice if the
// brand is unknown. An unknown brand is not an error here.
func (c *Catalog) ModelsForBrand(brandName string) []Model {
	brand, ok := c.brand(brandName)
	if !ok {
		return []Model{}
	}
	// deep copy, the submodel slices must not alias the catalog's
	// backing arrays
	models := slices.Clone(brand.Models)
	for i := range models {
		models[i].Submodels = slices.Clone(models[i].Submodels)
	}
	return models
}

func (c *Catalog) IsValidModel(brandName, modelText string) bool {
	_, ok := c.model(brandName, modelText)
	return ok
}

func (c *Catalog) IsValidSubmodel(brandName, modelText, submodelText string) bool {
	_, ok := c.submodel(brandName, modelText, submodelText)
	return ok
}

// BrandValue returns the canonical slug used by the collector for a brand.
func (c *Catalog) BrandValue(name string) (string, bool) {
	brand, ok := c.brand(name)
	return brand.Value, ok
}

func (c *Catalog) ModelValue(brandName, modelText string) (string, bool) {
	model, ok := c.model(brandName, modelText)
	return model.Value, ok
}

func (c *Catalog) SubmodelValue(brandName, modelText, submodelText string) (string, bool) {
	submodel, ok := c.submodel(brandName, modelText, submodelText)
	return submodel.Value, ok
}

// SuggestBrands returns every brand whose display name contains partial as
// a case-insensitive substring, in catalog order.
func (c *Catalog) SuggestBrands(partial string) []string {
	var out []string
	for _, b := range c.brands {
		if textutil.ContainsFold(b.Name, partial) {
			out = append(out, b.Name)
		}
	}
	return out
}

// SuggestModels is the same substring containment contract as
// SuggestBrands, scoped to the named brand.
func (c *Catalog) SuggestModels(brandName, partial string) []Model {
	brand, ok := c.brand(brandName)
	if !ok {
		return nil
	}
	var out []Model
	for _, m := range brand.Models {
		if textutil.ContainsFold(m.Text, partial) {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) SuggestSubmodels(brandName, modelText, partial string) []Submodel {
	model, ok := c.model(brandName, modelText)
	if !ok {
		return nil
	}
	var out []Submodel
	for _, s := range model.Submodels {
		if textutil.ContainsFold(s.Text, partial) {
			out = append(out, s)
		}
	}
	return out
}

type Stats struct {
	Brands    int `json:"brands"`
	Models    int `json:"models"`
	Submodels int `json:"submodels"`
}

func (c *Catalog) Stats() Stats {
	stats := Stats{Brands: len(c.brands)}
	for _, b := range c.brands {
		stats.Models += len(b.Models)
		for _, m := range b.Models {
			stats.Submodels += len(m.Submodels)
		}
	}
	return stats
}
