package catalog

// defaultBrands is the built-in fallback used when the reference file
// cannot be loaded: ten major brands with their common models.
var defaultBrands = map[string][]string{
	"Audi":          {"A1", "A3", "A4", "A5", "A6", "A7", "A8", "Q2", "Q3", "Q5", "Q7", "Q8", "TT", "R8"},
	"BMW":           {"Série 1", "Série 2", "Série 3", "Série 4", "Série 5", "Série 6", "Série 7", "Série 8", "X1", "X2", "X3", "X4", "X5", "X6", "X7", "Z4"},
	"Mercedes-Benz": {"Classe A", "Classe B", "Classe C", "Classe E", "Classe S", "CLA", "CLS", "GLA", "GLB", "GLC", "GLE", "GLS"},
	"Volkswagen":    {"Polo", "Golf", "Jetta", "Passat", "Tiguan", "Touran", "Sharan", "Touareg"},
	"Toyota":        {"Yaris", "Corolla", "Camry", "Prius", "Auris", "Avensis", "RAV4"},
	"Ford":          {"Fiesta", "Focus", "Mondeo", "Mustang", "Kuga", "EcoSport"},
	"Opel":          {"Corsa", "Astra", "Insignia", "Mokka", "Crossland", "Grandland"},
	"Renault":       {"Clio", "Megane", "Scenic", "Captur", "Kadjar", "Koleos"},
	"Peugeot":       {"108", "208", "308", "508", "2008", "3008", "5008"},
	"Citroën":       {"C1", "C3", "C4", "C5", "C3 Aircross", "C5 Aircross"},
}

// Default builds the built-in fallback catalog. Canonical values are
// derived from the display names by New.
func Default() *Catalog {
	brands := make([]Brand, 0, len(defaultBrands))
	for name, modelNames := range defaultBrands {
		models := make([]Model, 0, len(modelNames))
		for _, text := range modelNames {
			models = append(models, Model{Text: text})
		}
		brands = append(brands, Brand{Name: name, Models: models})
	}
	return New(brands)
}
