package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

type fileSubmodel struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type fileModel struct {
	Text      string         `json:"text"`
	Value     string         `json:"value"`
	Submodels []fileSubmodel `json:"submodels"`
}

type fileBrand struct {
	BrandValue string      `json:"brand_value"`
	Models     []fileModel `json:"models"`
}

type fileCatalog struct {
	Brands map[string]fileBrand `json:"brands"`
}

// Load reads a catalog reference file. It understands both the wrapped
// format `{brands: {...}, metadata: {...}}` and the legacy format where
// the brand map is the document root. Malformed entries are a data
// integrity error, not a validation miss.
func Load(path string) (*Catalog, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped fileCatalog
	err = json.Unmarshal(contents, &wrapped)
	if err != nil || len(wrapped.Brands) == 0 {
		legacy := map[string]fileBrand{}
		legacyErr := json.Unmarshal(contents, &legacy)
		if legacyErr != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, legacyErr)
		}
		wrapped.Brands = legacy
	}
	if len(wrapped.Brands) == 0 {
		return nil, fmt.Errorf("catalog %s contains no brands", path)
	}

	names := make([]string, 0, len(wrapped.Brands))
	for name := range wrapped.Brands {
		names = append(names, name)
	}
	sort.Strings(names)

	brands := make([]Brand, 0, len(names))
	for _, name := range names {
		entry := wrapped.Brands[name]
		if name == "" {
			return nil, fmt.Errorf("catalog %s: brand with empty display name", path)
		}

		models := make([]Model, 0, len(entry.Models))
		for i, m := range entry.Models {
			if m.Text == "" {
				return nil, fmt.Errorf("catalog %s: brand %q: model %d has no display text", path, name, i)
			}
			submodels := make([]Submodel, 0, len(m.Submodels))
			for j, s := range m.Submodels {
				if s.Text == "" {
					return nil, fmt.Errorf("catalog %s: brand %q: model %q: submodel %d has no display text", path, name, m.Text, j)
				}
				submodels = append(submodels, Submodel{Text: s.Text, Value: s.Value})
			}
			models = append(models, Model{Text: m.Text, Value: m.Value, Submodels: submodels})
		}

		brands = append(brands, Brand{
			Name:   name,
			Value:  entry.BrandValue,
			Models: models,
		})
	}

	return New(brands), nil
}

// LoadOrDefault loads the reference catalog, falling back to the built-in
// default when the file is missing or corrupt. Availability wins over
// completeness here, but the fallback is reported so operators can tell the
// rich catalog failed to load.
func LoadOrDefault(path string) *Catalog {
	c, err := Load(path)
	if err != nil {
		slog.Warn(
			"failed to load catalog reference file, falling back to the built-in catalog",
			"path", path,
			"err", err,
		)
		return Default()
	}
	slog.Info("loaded catalog reference file", "path", path, "brands", len(c.brands))
	return c
}
