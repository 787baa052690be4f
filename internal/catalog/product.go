// Package catalog holds the product inventory the agent tools work over:
// the product model, the built-in seed dataset, stores to read it from and
// the analysis helpers behind the menu, summary and forecast tools.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProductNotFound is returned when no product matches a name.
var ErrProductNotFound = errors.New("product not found")

// QualityTier is the shelf grade of a product.
type QualityTier string

const (
	TierExotic  QualityTier = "Exotic"
	TierPremium QualityTier = "Premium"
	TierMids    QualityTier = "Mids"
	TierSmalls  QualityTier = "Smalls"
)

var tierRank = map[QualityTier]int{
	TierExotic:  0,
	TierPremium: 1,
	TierMids:    2,
	TierSmalls:  3,
}

// QualityTiers returns every tier from best to worst.
func QualityTiers() []QualityTier {
	return []QualityTier{TierExotic, TierPremium, TierMids, TierSmalls}
}

// Rank orders tiers best first. Unknown tiers sort last.
func (t QualityTier) Rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return len(tierRank)
}

// ParseQualityTier matches a tier name case-insensitively.
func ParseQualityTier(s string) (QualityTier, error) {
	for _, t := range QualityTiers() {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Product is one line of inventory. Weight is stock on hand in pounds and
// price is per pound. THCa is a percentage reported by the lab and is never
// computed here.
type Product struct {
	Name           string      `json:"name" yaml:"name"`
	Strain         string      `json:"strain" yaml:"strain"`
	Tier           QualityTier `json:"tier" yaml:"tier"`
	WeightLbs      float64     `json:"weight_lbs" yaml:"weight_lbs"`
	PricePerLb     float64     `json:"price_per_lb" yaml:"price_per_lb"`
	THCa           float64     `json:"thca" yaml:"thca"`
	WeeklySalesLbs float64     `json:"weekly_sales_lbs" yaml:"weekly_sales_lbs"`
}

// Value is the stock value of the product at list price.
func (p Product) Value() float64 {
	return p.WeightLbs * p.PricePerLb
}

// Validate checks the fields a store relies on.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("product name is required")
	case p.Tier.Rank() == len(tierRank):
		return fmt.Errorf("product %q: unknown tier %q", p.Name, p.Tier)
	case p.WeightLbs < 0:
		return fmt.Errorf("product %q: weight cannot be negative", p.Name)
	case p.PricePerLb <= 0:
		return fmt.Errorf("product %q: price must be positive", p.Name)
	case p.THCa < 0 || p.THCa > 100:
		return fmt.Errorf("product %q: THCa must be between 0 and 100", p.Name)
	case p.WeeklySalesLbs < 0:
		return fmt.Errorf("product %q: weekly sales cannot be negative", p.Name)
	}
	return nil
}
