package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedProducts is the demo inventory the canned prompts run against.
var seedProducts = []Product{
	{Name: "Gelato 41", Strain: "hybrid", Tier: TierExotic, WeightLbs: 42, PricePerLb: 2200, THCa: 31.2, WeeklySalesLbs: 6},
	{Name: "Runtz", Strain: "hybrid", Tier: TierExotic, WeightLbs: 18.5, PricePerLb: 2400, THCa: 29.8, WeeklySalesLbs: 4},
	{Name: "Zkittlez", Strain: "indica", Tier: TierExotic, WeightLbs: 27, PricePerLb: 2100, THCa: 28.4, WeeklySalesLbs: 3.5},
	{Name: "Blue Dream", Strain: "sativa", Tier: TierPremium, WeightLbs: 65, PricePerLb: 1600, THCa: 24.1, WeeklySalesLbs: 9},
	{Name: "OG Kush", Strain: "hybrid", Tier: TierPremium, WeightLbs: 48, PricePerLb: 1700, THCa: 25.6, WeeklySalesLbs: 7},
	{Name: "Wedding Cake", Strain: "indica", Tier: TierPremium, WeightLbs: 33.5, PricePerLb: 1750, THCa: 26.3, WeeklySalesLbs: 5},
	{Name: "Sour Diesel", Strain: "sativa", Tier: TierMids, WeightLbs: 120, PricePerLb: 900, THCa: 19.7, WeeklySalesLbs: 14},
	{Name: "Northern Lights", Strain: "indica", Tier: TierMids, WeightLbs: 88, PricePerLb: 850, THCa: 18.9, WeeklySalesLbs: 11},
	{Name: "Green Crack", Strain: "sativa", Tier: TierSmalls, WeightLbs: 150, PricePerLb: 450, THCa: 16.2, WeeklySalesLbs: 20},
	{Name: "Purple Punch", Strain: "indica", Tier: TierSmalls, WeightLbs: 95, PricePerLb: 500, THCa: 17.5, WeeklySalesLbs: 12},
}

// SeedProducts returns a copy of the built-in dataset.
func SeedProducts() []Product {
	out := make([]Product, len(seedProducts))
	copy(out, seedProducts)
	return out
}

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// LoadFile reads products from a YAML file of the form
//
//	products:
//	  - name: Blue Dream
//	    tier: Premium
//	    ...
func LoadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	seen := make(map[string]bool, len(f.Products))
	for _, p := range f.Products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[key(p.Name)] {
			return nil, fmt.Errorf("duplicate product %q in %s", p.Name, path)
		}
		seen[key(p.Name)] = true
	}
	return f.Products, nil
}
